package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// BaseModel contains common columns for all tables
type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

// GetID returns the entity's id.
func (base *BaseModel) GetID() string { return base.ID }

// EnsureID assigns a fresh UUID when none is set. Used by storage backends
// that do not run gorm hooks.
func (base *BaseModel) EnsureID() {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
}

// Stamp sets creation and update timestamps on first insert.
func (base *BaseModel) Stamp(t time.Time) {
	if base.CreatedAt.IsZero() {
		base.CreatedAt = t
	}
	base.UpdatedAt = t
}

// Touch refreshes the update timestamp.
func (base *BaseModel) Touch(t time.Time) {
	base.UpdatedAt = t
}

// Entity is implemented by every persisted model (via BaseModel).
type Entity interface {
	GetID() string
	EnsureID()
	Stamp(t time.Time)
	Touch(t time.Time)
}

// ChildOwned is implemented by models that belong to a single child.
type ChildOwned interface {
	OwnerChildID() string
}

// InitDB initializes database connection
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(config.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto migrate the database models
	err = db.AutoMigrate(
		&Parent{},
		&Child{},
		&HealthRecord{},
		&Reminder{},
		&CarePlan{},
		&AIInsight{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN string
}
