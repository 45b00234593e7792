package store

import (
	"context"
	"errors"
	"time"

	"parenting-copilot-server/internal/models"
	"parenting-copilot-server/internal/utils"
)

// ErrNotFound is returned when no record matches the requested id.
var ErrNotFound = errors.New("record not found")

// Repository is the uniform CRUD contract over a single entity kind. Update
// applies the mutation to the stored record and refreshes its update
// timestamp; it returns ErrNotFound when the id has no match. Delete reports
// whether a record existed. FindByChildID on an entity kind that is not owned
// by a child returns an empty slice.
type Repository[T any] interface {
	Create(ctx context.Context, item *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	FindByChildID(ctx context.Context, childID string) ([]T, error)
	Update(ctx context.Context, id string, mutate func(*T)) (*T, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetAll(ctx context.Context) ([]T, error)
}

// Store aggregates the per-entity repositories plus the two derived queries.
// Backends are interchangeable: callers never see which one is wired.
type Store interface {
	Parents() Repository[models.Parent]
	Children() Repository[models.Child]
	HealthRecords() Repository[models.HealthRecord]
	Reminders() Repository[models.Reminder]
	CarePlans() Repository[models.CarePlan]
	Insights() Repository[models.AIInsight]

	// ChildWithDetails assembles a child and every record referencing it.
	ChildWithDetails(ctx context.Context, childID string) (*models.ChildDetails, error)
	// UpcomingReminders returns active reminders dated within [now, now+24h]
	// plus all active reminders with no date.
	UpcomingReminders(ctx context.Context, now time.Time) ([]models.Reminder, error)

	Close() error
}

// entity asserts the pointer form of a model as Entity. Every repository
// element type embeds BaseModel, so the assertion always holds.
func entity[T any](item *T) models.Entity {
	return any(item).(models.Entity)
}

func ownedBy[T any](item *T) (string, bool) {
	if owned, ok := any(item).(models.ChildOwned); ok {
		return owned.OwnerChildID(), true
	}
	return "", false
}

// reminderUpcoming is the shared upcoming-window predicate. A dateless active
// reminder is always upcoming; a dated one must fall within the closed
// interval [now, now+24h]. Unparsable dates are excluded.
func reminderUpcoming(r models.Reminder, now time.Time) bool {
	if !r.IsActive {
		return false
	}
	if r.Date == "" {
		return true
	}
	at, err := utils.ParseEventDate(r.Date)
	if err != nil {
		return false
	}
	return !at.Before(now) && !at.After(now.Add(24*time.Hour))
}
