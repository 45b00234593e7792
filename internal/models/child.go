package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Gender represents a child's recorded gender
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// StringList is a JSON-encoded list column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
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

// MedicalHistory holds a child's allergies, conditions and medications,
// stored as a JSON column.
type MedicalHistory struct {
	Allergies         StringList `json:"allergies"`
	ChronicConditions StringList `json:"chronicConditions"`
	Medications       StringList `json:"medications"`
}

func (m MedicalHistory) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *MedicalHistory) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, m)
}

// EmptyMedicalHistory returns a history with empty (not nil) lists so the
// JSON rendering shows arrays rather than nulls.
func EmptyMedicalHistory() MedicalHistory {
	return MedicalHistory{
		Allergies:         StringList{},
		ChronicConditions: StringList{},
		Medications:       StringList{},
	}
}

// PhysicalMilestones tracks measured growth.
type PhysicalMilestones struct {
	Height      float64   `json:"height"`
	Weight      float64   `json:"weight"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// CognitiveMilestones tracks observed developmental milestones.
type CognitiveMilestones struct {
	Milestones  StringList `json:"milestones"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

// DevelopmentMilestones is the JSON column combining both tracks.
type DevelopmentMilestones struct {
	Physical  PhysicalMilestones  `json:"physical"`
	Cognitive CognitiveMilestones `json:"cognitive"`
}

func (d DevelopmentMilestones) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *DevelopmentMilestones) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, d)
}

// NewDevelopmentMilestones returns the zeroed milestone document assigned to
// a freshly created child profile.
func NewDevelopmentMilestones(now time.Time) DevelopmentMilestones {
	return DevelopmentMilestones{
		Physical:  PhysicalMilestones{LastUpdated: now},
		Cognitive: CognitiveMilestones{Milestones: StringList{}, LastUpdated: now},
	}
}

// Child represents a child profile owned by a parent.
type Child struct {
	BaseModel
	Name                  string                `gorm:"size:255;not null" json:"name"`
	DateOfBirth           string                `gorm:"size:10;not null" json:"dateOfBirth"` // YYYY-MM-DD
	Gender                Gender                `gorm:"size:10;not null" json:"gender"`
	ParentID              string                `gorm:"size:36;index" json:"parentId"`
	MedicalHistory        MedicalHistory        `gorm:"type:json" json:"medicalHistory"`
	DevelopmentMilestones DevelopmentMilestones `gorm:"type:json" json:"developmentMilestones"`
}

// ChildDetails is the aggregate returned for a single-child lookup: the
// profile plus every record that references it.
type ChildDetails struct {
	Child
	HealthRecords []HealthRecord `json:"healthRecords"`
	Reminders     []Reminder     `json:"reminders"`
	CarePlans     []CarePlan     `json:"carePlans"`
	AIInsights    []AIInsight    `json:"aiInsights"`
}
