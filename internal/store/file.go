package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"parenting-copilot-server/internal/models"
)

// document is the persisted layout: one JSON file with a top-level array per
// collection.
type document struct {
	Parents       []models.Parent       `json:"parents"`
	Children      []models.Child        `json:"children"`
	HealthRecords []models.HealthRecord `json:"healthRecords"`
	Reminders     []models.Reminder     `json:"reminders"`
	CarePlans     []models.CarePlan     `json:"carePlans"`
	AIInsights    []models.AIInsight    `json:"aiInsights"`
}

// FileStore is the in-process JSON-file Store. A single RWMutex guards the
// whole document; every write persists the full file.
type FileStore struct {
	mu   sync.RWMutex
	path string
	doc  document

	parents       Repository[models.Parent]
	children      Repository[models.Child]
	healthRecords Repository[models.HealthRecord]
	reminders     Repository[models.Reminder]
	carePlans     Repository[models.CarePlan]
	insights      Repository[models.AIInsight]
}

// NewFileStore loads the document at path, starting empty when the file does
// not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &s.doc); err != nil {
			return nil, fmt.Errorf("corrupt data file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// first run
	default:
		return nil, err
	}

	s.parents = &fileRepo[models.Parent]{store: s, items: func() *[]models.Parent { return &s.doc.Parents }}
	s.children = &fileRepo[models.Child]{store: s, items: func() *[]models.Child { return &s.doc.Children }}
	s.healthRecords = &fileRepo[models.HealthRecord]{store: s, items: func() *[]models.HealthRecord { return &s.doc.HealthRecords }}
	s.reminders = &fileRepo[models.Reminder]{store: s, items: func() *[]models.Reminder { return &s.doc.Reminders }}
	s.carePlans = &fileRepo[models.CarePlan]{store: s, items: func() *[]models.CarePlan { return &s.doc.CarePlans }}
	s.insights = &fileRepo[models.AIInsight]{store: s, items: func() *[]models.AIInsight { return &s.doc.AIInsights }}

	return s, nil
}

func (s *FileStore) Parents() Repository[models.Parent]             { return s.parents }
func (s *FileStore) Children() Repository[models.Child]             { return s.children }
func (s *FileStore) HealthRecords() Repository[models.HealthRecord] { return s.healthRecords }
func (s *FileStore) Reminders() Repository[models.Reminder]         { return s.reminders }
func (s *FileStore) CarePlans() Repository[models.CarePlan]         { return s.carePlans }
func (s *FileStore) Insights() Repository[models.AIInsight]         { return s.insights }

// save persists the whole document. Caller must hold the write lock.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *FileStore) ChildWithDetails(ctx context.Context, childID string) (*models.ChildDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var child *models.Child
	for i := range s.doc.Children {
		if s.doc.Children[i].ID == childID {
			c := s.doc.Children[i]
			child = &c
			break
		}
	}
	if child == nil {
		return nil, ErrNotFound
	}

	details := &models.ChildDetails{
		Child:         *child,
		HealthRecords: []models.HealthRecord{},
		Reminders:     []models.Reminder{},
		CarePlans:     []models.CarePlan{},
		AIInsights:    []models.AIInsight{},
	}
	for _, r := range s.doc.HealthRecords {
		if r.ChildID == childID {
			details.HealthRecords = append(details.HealthRecords, r)
		}
	}
	for _, r := range s.doc.Reminders {
		if r.ChildID == childID {
			details.Reminders = append(details.Reminders, r)
		}
	}
	for _, p := range s.doc.CarePlans {
		if p.ChildID == childID {
			details.CarePlans = append(details.CarePlans, p)
		}
	}
	for _, i := range s.doc.AIInsights {
		if i.ChildID == childID {
			details.AIInsights = append(details.AIInsights, i)
		}
	}
	return details, nil
}

func (s *FileStore) UpcomingReminders(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	upcoming := []models.Reminder{}
	for _, r := range s.doc.Reminders {
		if reminderUpcoming(r, now) {
			upcoming = append(upcoming, r)
		}
	}
	return upcoming, nil
}

func (s *FileStore) Close() error { return nil }

// fileRepo implements Repository over one of the document's arrays.
type fileRepo[T any] struct {
	store *FileStore
	items func() *[]T
}

func (r *fileRepo[T]) Create(ctx context.Context, item *T) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e := entity(item)
	e.EnsureID()
	e.Stamp(time.Now())

	items := r.items()
	*items = append(*items, *item)
	if err := r.store.save(); err != nil {
		return fmt.Errorf("storage write failed: %w", err)
	}
	return nil
}

func (r *fileRepo[T]) FindByID(ctx context.Context, id string) (*T, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	items := *r.items()
	for i := range items {
		if entity(&items[i]).GetID() == id {
			item := items[i]
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileRepo[T]) FindByChildID(ctx context.Context, childID string) ([]T, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := []T{}
	items := *r.items()
	for i := range items {
		if owner, ok := ownedBy(&items[i]); ok && owner == childID {
			matches = append(matches, items[i])
		}
	}
	return matches, nil
}

func (r *fileRepo[T]) Update(ctx context.Context, id string, mutate func(*T)) (*T, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := r.items()
	for i := range *items {
		e := entity(&(*items)[i])
		if e.GetID() != id {
			continue
		}
		mutate(&(*items)[i])
		e.Touch(time.Now())
		if err := r.store.save(); err != nil {
			return nil, fmt.Errorf("storage write failed: %w", err)
		}
		item := (*items)[i]
		return &item, nil
	}
	return nil, ErrNotFound
}

func (r *fileRepo[T]) Delete(ctx context.Context, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := r.items()
	for i := range *items {
		if entity(&(*items)[i]).GetID() != id {
			continue
		}
		*items = append((*items)[:i], (*items)[i+1:]...)
		if err := r.store.save(); err != nil {
			return false, fmt.Errorf("storage write failed: %w", err)
		}
		return true, nil
	}
	return false, nil
}

func (r *fileRepo[T]) GetAll(ctx context.Context) ([]T, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	items := *r.items()
	out := make([]T, len(items))
	copy(out, items)
	return out, nil
}
