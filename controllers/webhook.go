// controllers/webhook.go
package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Samilincoln/Study-Sync/schedule"
	"github.com/Samilincoln/Study-Sync/services"
	"github.com/Samilincoln/Study-Sync/utils"
)

// WebhookInput is the inbound WhatsApp message payload
type WebhookInput struct {
	Phone string `json:"phone" binding:"required"`
	Text  string `json:"text"`
}

// WebhookController answers inbound WhatsApp messages with a keyword
// dispatcher: "classes" lists the guardian's schedule, "today" lists
// today's classes, anything else gets the help text.
type WebhookController struct {
	Store  *services.Store
	Sender schedule.Sender
	Log    *zap.Logger
}

func (wc *WebhookController) HandleWhatsApp(c *gin.Context) {
	var input WebhookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	text := strings.ToLower(input.Text)

	var reply string
	switch {
	case strings.Contains(text, "classes"):
		reply = wc.classesReply(c, input.Phone)
	case strings.Contains(text, "today"):
		reply = wc.todayReply(c, input.Phone)
	default:
		reply = "I'm your tutoring reminder assistant! Commands:\n" +
			"• 'classes' - View your classes\n" +
			"• 'today' - Today's classes\n" +
			"• 'help' - Show commands"
	}

	if err := wc.Sender.Send(c.Request.Context(), input.Phone, reply); err != nil {
		wc.Log.Error("failed to send webhook reply",
			zap.String("phone", input.Phone),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}

func (wc *WebhookController) classesReply(c *gin.Context, phone string) string {
	classes, err := wc.Store.ListByGuardian(c.Request.Context(), phone)
	if err != nil {
		wc.Log.Error("failed to list classes for webhook", zap.Error(err))
		return "Sorry, something went wrong fetching your classes."
	}
	if len(classes) == 0 {
		return "No classes scheduled yet."
	}

	var b strings.Builder
	b.WriteString("Your scheduled classes:\n\n")
	for _, class := range classes {
		fmt.Fprintf(&b, "📚 %s - %s\n", class.Subject, class.StudentName)
		fmt.Fprintf(&b, "📅 %s at %s\n", class.DayOfWeek, class.StartTime)
		fmt.Fprintf(&b, "🔔 Reminder: %d min before\n\n", class.LeadMinutes)
	}
	return strings.TrimSpace(b.String())
}

func (wc *WebhookController) todayReply(c *gin.Context, phone string) string {
	today := time.Now().Weekday().String()

	classes, err := wc.Store.ListByGuardian(c.Request.Context(), phone)
	if err != nil {
		wc.Log.Error("failed to list classes for webhook", zap.Error(err))
		return "Sorry, something went wrong fetching your classes."
	}

	var b strings.Builder
	count := 0
	fmt.Fprintf(&b, "Today's classes (%s):\n\n", today)
	for _, class := range classes {
		if class.DayOfWeek != today {
			continue
		}
		fmt.Fprintf(&b, "📚 %s - %s\n⏰ %s\n\n", class.Subject, class.StudentName, class.StartTime)
		count++
	}
	if count == 0 {
		return fmt.Sprintf("No classes scheduled for today (%s).", today)
	}
	return strings.TrimSpace(b.String())
}
