package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// ParentPreferences holds a parent's notification settings, stored as a JSON column.
type ParentPreferences struct {
	Notifications     bool   `json:"notifications"`
	ReminderFrequency string `json:"reminderFrequency"`
	Language          string `json:"language"`
}

func (p ParentPreferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *ParentPreferences) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, p)
}

// DefaultParentPreferences mirrors the defaults applied when a parent is
// created without explicit preferences.
func DefaultParentPreferences() ParentPreferences {
	return ParentPreferences{
		Notifications:     true,
		ReminderFrequency: "daily",
		Language:          "en",
	}
}

// Parent represents an account holder who owns one or more child profiles.
type Parent struct {
	BaseModel
	Name        string            `gorm:"size:255;not null" json:"name"`
	Email       string            `gorm:"size:255;not null" json:"email"`
	Phone       string            `gorm:"size:50;not null" json:"phone"`
	Preferences ParentPreferences `gorm:"type:json" json:"preferences"`
}
