// controllers/reminder.go
package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Samilincoln/Study-Sync/schedule"
	"github.com/Samilincoln/Study-Sync/utils"
)

// SendReminderInput defines the expected JSON structure
type SendReminderInput struct {
	CustomMessage *string `json:"customMessage"`
}

type ReminderController struct {
	Coordinator *schedule.Coordinator
}

// SendReminder fires a reminder for a class immediately, bypassing the
// schedule. Unlike background fires, failures surface to the caller.
func (rc *ReminderController) SendReminder(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid class ID format")
		return
	}

	// An empty body means no custom message.
	var input SendReminderInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	override := ""
	if input.CustomMessage != nil {
		override = *input.CustomMessage
	}

	if err := rc.Coordinator.FireNow(c.Request.Context(), classID, override); err != nil {
		if errors.Is(err, schedule.ErrUnknownClass) {
			utils.RespondWithError(c, http.StatusNotFound, "Class not found")
			return
		}
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to send reminder: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder sent successfully"})
}
