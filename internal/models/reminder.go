package models

import "time"

// ReminderFrequency represents how often a reminder recurs
type ReminderFrequency string

const (
	FrequencyOnce    ReminderFrequency = "once"
	FrequencyDaily   ReminderFrequency = "daily"
	FrequencyWeekly  ReminderFrequency = "weekly"
	FrequencyMonthly ReminderFrequency = "monthly"
)

// Reminder represents a scheduled care reminder for a child. Time is an
// HH:MM wall-clock value; Date is optional. A dateless reminder is treated
// as recurring and is always inside the upcoming window.
type Reminder struct {
	BaseModel
	ChildID       string            `gorm:"size:36;index" json:"childId"`
	Type          string            `gorm:"size:50;not null" json:"type"`
	Title         string            `gorm:"size:255;not null" json:"title"`
	Time          string            `gorm:"size:5" json:"time,omitempty"`
	Date          string            `gorm:"size:30" json:"date,omitempty"`
	Frequency     ReminderFrequency `gorm:"size:20" json:"frequency"`
	Notes         string            `gorm:"type:text" json:"notes"`
	IsActive      bool              `gorm:"default:true" json:"isActive"`
	LastTriggered *time.Time        `json:"lastTriggered,omitempty"`
}

// OwnerChildID implements ChildOwned.
func (r *Reminder) OwnerChildID() string { return r.ChildID }
