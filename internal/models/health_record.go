package models

import "time"

// HealthRecordStatus represents the lifecycle state of a health record
type HealthRecordStatus string

const (
	StatusScheduled HealthRecordStatus = "scheduled"
	StatusCompleted HealthRecordStatus = "completed"
	StatusCancelled HealthRecordStatus = "cancelled"
)

// HealthRecord represents a single health event for a child: a checkup,
// vaccination, illness, measurement and so on.
type HealthRecord struct {
	BaseModel
	ChildID     string             `gorm:"size:36;index" json:"childId"`
	Type        string             `gorm:"size:50;not null" json:"type"`
	Title       string             `gorm:"size:255;not null" json:"title"`
	Date        string             `gorm:"size:30;not null" json:"date"`
	Status      HealthRecordStatus `gorm:"size:20" json:"status"`
	Notes       string             `gorm:"type:text" json:"notes"`
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
}

// OwnerChildID implements ChildOwned.
func (r *HealthRecord) OwnerChildID() string { return r.ChildID }
