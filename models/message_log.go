// models/message_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Phone        string    `gorm:"index;not null"`
	Body         string    `gorm:"type:text"`
	Channel      string    `gorm:"type:varchar(20)"` // whatsapp, sms, console
	Status       string    `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string    `gorm:"type:text"`
	SentAt       time.Time
}

func (m *MessageLog) BeforeCreate(tx *gorm.DB) (err error) {
	m.ID = uuid.New()
	return
}
