package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"parenting-copilot-server/internal/models"
)

// GormStore is the database-backed Store. Concurrency is handled by the
// underlying connection pool; entity-level races remain last-write-wins.
type GormStore struct {
	db            *gorm.DB
	parents       Repository[models.Parent]
	children      Repository[models.Child]
	healthRecords Repository[models.HealthRecord]
	reminders     Repository[models.Reminder]
	carePlans     Repository[models.CarePlan]
	insights      Repository[models.AIInsight]
}

// NewGormStore wraps an initialized gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:            db,
		parents:       &gormRepo[models.Parent]{db: db},
		children:      &gormRepo[models.Child]{db: db},
		healthRecords: &gormRepo[models.HealthRecord]{db: db},
		reminders:     &gormRepo[models.Reminder]{db: db},
		carePlans:     &gormRepo[models.CarePlan]{db: db},
		insights:      &gormRepo[models.AIInsight]{db: db},
	}
}

func (s *GormStore) Parents() Repository[models.Parent]             { return s.parents }
func (s *GormStore) Children() Repository[models.Child]             { return s.children }
func (s *GormStore) HealthRecords() Repository[models.HealthRecord] { return s.healthRecords }
func (s *GormStore) Reminders() Repository[models.Reminder]         { return s.reminders }
func (s *GormStore) CarePlans() Repository[models.CarePlan]         { return s.carePlans }
func (s *GormStore) Insights() Repository[models.AIInsight]         { return s.insights }

// ChildWithDetails assembles the child aggregate. Related slices are always
// non-nil so an empty profile serializes with empty arrays.
func (s *GormStore) ChildWithDetails(ctx context.Context, childID string) (*models.ChildDetails, error) {
	child, err := s.children.FindByID(ctx, childID)
	if err != nil {
		return nil, err
	}

	records, err := s.healthRecords.FindByChildID(ctx, childID)
	if err != nil {
		return nil, err
	}
	reminders, err := s.reminders.FindByChildID(ctx, childID)
	if err != nil {
		return nil, err
	}
	plans, err := s.carePlans.FindByChildID(ctx, childID)
	if err != nil {
		return nil, err
	}
	insights, err := s.insights.FindByChildID(ctx, childID)
	if err != nil {
		return nil, err
	}

	return &models.ChildDetails{
		Child:         *child,
		HealthRecords: records,
		Reminders:     reminders,
		CarePlans:     plans,
		AIInsights:    insights,
	}, nil
}

// UpcomingReminders narrows to active rows in SQL, then applies the
// date-window predicate in Go since dates are stored as strings.
func (s *GormStore) UpcomingReminders(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	active := []models.Reminder{}
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Find(&active).Error; err != nil {
		return nil, err
	}

	upcoming := []models.Reminder{}
	for _, r := range active {
		if reminderUpcoming(r, now) {
			upcoming = append(upcoming, r)
		}
	}
	return upcoming, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormRepo implements Repository for one table.
type gormRepo[T any] struct {
	db *gorm.DB
}

func (r *gormRepo[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *gormRepo[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormRepo[T]) FindByChildID(ctx context.Context, childID string) ([]T, error) {
	var zero T
	if _, ok := ownedBy(&zero); !ok {
		return []T{}, nil
	}

	items := []T{}
	if err := r.db.WithContext(ctx).Where("child_id = ?", childID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormRepo[T]) Update(ctx context.Context, id string, mutate func(*T)) (*T, error) {
	item, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mutate(item)
	entity(item).Touch(time.Now())

	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *gormRepo[T]) Delete(ctx context.Context, id string) (bool, error) {
	var zero T
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&zero)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *gormRepo[T]) GetAll(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := r.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
