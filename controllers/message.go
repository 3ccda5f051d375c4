// controllers/message.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Samilincoln/Study-Sync/models"
	"github.com/Samilincoln/Study-Sync/utils"
)

type MessageController struct {
	DB *gorm.DB
}

// GetMessages returns recent messages sent to the authenticated guardian
func (mc *MessageController) GetMessages(c *gin.Context) {
	phone, ok := phoneFromContext(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Phone not found in context")
		return
	}

	var messages []models.MessageLog
	if err := mc.DB.Where("phone = ?", phone).
		Order("sent_at desc").Limit(50).Find(&messages).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}
