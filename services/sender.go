// services/sender.go
package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Samilincoln/Study-Sync/models"
	"github.com/Samilincoln/Study-Sync/schedule"
)

// NewSenderFromEnv returns the Twilio transport when credentials are
// configured and the console simulator otherwise, so the service runs
// end-to-end without an account.
func NewSenderFromEnv(db *gorm.DB, log *zap.Logger) schedule.Sender {
	if os.Getenv("TWILIO_ACCOUNT_SID") == "" {
		log.Info("TWILIO_ACCOUNT_SID not set, using simulated message transport")
		return NewConsoleSender(db, log)
	}
	return NewTwilioSender(db, log)
}

// TwilioSender delivers messages over Twilio, preferring WhatsApp for
// E.164 numbers, and appends every attempt to the message log.
type TwilioSender struct {
	client *twilio.RestClient
	db     *gorm.DB
	log    *zap.Logger
}

func NewTwilioSender(db *gorm.DB, log *zap.Logger) *TwilioSender {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &TwilioSender{
		db:  db,
		log: log,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *TwilioSender) Send(ctx context.Context, phone, body string) error {
	// WhatsApp if phone is in E.164 format and starts with '+'
	channel := "sms"
	to := phone
	if strings.HasPrefix(phone, "+") {
		to = "whatsapp:" + phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(body)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, sendErr := s.client.Api.CreateMessage(params)

	status := "sent"
	errorMsg := ""
	if sendErr != nil {
		status = "failed"
		errorMsg = sendErr.Error()
	} else if resp.Sid != nil {
		s.log.Info("message sent", zap.String("phone", phone), zap.String("sid", *resp.Sid))
	} else {
		s.log.Warn("message sent but no SID returned", zap.String("phone", phone))
	}

	s.appendLog(ctx, phone, body, channel, status, errorMsg)

	if sendErr != nil {
		return fmt.Errorf("twilio send to %s: %w", phone, sendErr)
	}
	return nil
}

func (s *TwilioSender) appendLog(ctx context.Context, phone, body, channel, status, errorMsg string) {
	entry := models.MessageLog{
		Phone:        phone,
		Body:         body,
		Channel:      channel,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Error("failed to log message", zap.String("phone", phone), zap.Error(err))
	}
}

// ConsoleSender simulates delivery by logging the message and recording it
// in the message log.
type ConsoleSender struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewConsoleSender(db *gorm.DB, log *zap.Logger) *ConsoleSender {
	return &ConsoleSender{db: db, log: log}
}

func (s *ConsoleSender) Send(ctx context.Context, phone, body string) error {
	s.log.Info("message sent (simulated)",
		zap.String("phone", phone),
		zap.String("body", body))

	entry := models.MessageLog{
		Phone:   phone,
		Body:    body,
		Channel: "console",
		Status:  "sent",
		SentAt:  time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Error("failed to log message", zap.String("phone", phone), zap.Error(err))
	}
	return nil
}
