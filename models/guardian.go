package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Samilincoln/Study-Sync/utils"
)

type Guardian struct {
	Phone    string `gorm:"primary_key"`
	Name     string `gorm:"not null"`
	Password string `gorm:"not null" json:"-"`

	Children StringList `gorm:"type:jsonb;default:'[]'"`
	Timezone string     `gorm:"type:varchar(40);default:'UTC'"`

	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Hash password before storing
func (g *Guardian) BeforeCreate(tx *gorm.DB) (err error) {
	hashed, err := utils.HashPassword(g.Password)
	if err != nil {
		return err
	}
	g.Password = hashed
	return
}

// Custom JSONB-backed type for the children list
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, l)
}
