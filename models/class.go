package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Class struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	GuardianPhone string    `gorm:"index;not null"`

	Subject     string `gorm:"not null"`
	StudentName string `gorm:"not null"`

	DayOfWeek   string `gorm:"type:varchar(10);not null"` // Monday, Tuesday, ...
	StartTime   string `gorm:"type:varchar(5);not null"`  // "14:30"
	LeadMinutes int    `gorm:"default:30"`
	IsActive    bool   `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Class) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
