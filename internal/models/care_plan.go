package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Task is a single actionable item inside a care plan.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	DueDate     string     `json:"dueDate"` // YYYY-MM-DD
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// TaskList is the ordered task collection, stored as a JSON column.
type TaskList []Task

func (l TaskList) Value() (driver.Value, error) {
	if l == nil {
		l = TaskList{}
	}
	return json.Marshal(l)
}

func (l *TaskList) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, l)
}

// CarePlan represents a structured set of care tasks for a child.
type CarePlan struct {
	BaseModel
	ChildID     string   `gorm:"size:36;index" json:"childId"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Tasks       TaskList `gorm:"type:json" json:"tasks"`
	AIGenerated bool     `json:"aiGenerated"`
}

// OwnerChildID implements ChildOwned.
func (p *CarePlan) OwnerChildID() string { return p.ChildID }
