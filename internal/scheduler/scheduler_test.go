package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"parenting-copilot-server/internal/models"
	"parenting-copilot-server/internal/store"
)

func TestFireTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		name     string
		reminder models.Reminder
		want     time.Time
	}{
		{
			name:     "no date no time",
			reminder: models.Reminder{},
			want:     now,
		},
		{
			name:     "time only overlays today",
			reminder: models.Reminder{Time: "09:15"},
			want:     time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC),
		},
		{
			name:     "date only",
			reminder: models.Reminder{Date: "2026-03-11"},
			want:     time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "date and time",
			reminder: models.Reminder{Date: "2026-03-11", Time: "18:00"},
			want:     time.Date(2026, 3, 11, 18, 0, 0, 0, time.UTC),
		},
		{
			name:     "invalid time ignored",
			reminder: models.Reminder{Date: "2026-03-11", Time: "25:99"},
			want:     time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FireTime(tt.reminder, now)
			if !got.Equal(tt.want) {
				t.Errorf("FireTime = %v, want %v", got, tt.want)
			}
		})
	}
}

func newSweepStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewFileStore(filepath.Join(t.TempDir(), "models.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s
}

func TestSweepStampsDueReminders(t *testing.T) {
	s := newSweepStore(t)
	ctx := context.Background()
	now := time.Now()

	due := &models.Reminder{
		ChildID: "child-1", Type: "feeding", Title: "Lunch",
		Time: now.Format("15:04"), IsActive: true, Frequency: models.FrequencyDaily,
	}
	notDue := &models.Reminder{
		ChildID: "child-1", Type: "feeding", Title: "Dinner",
		Time: now.Add(3 * time.Hour).Format("15:04"), IsActive: true, Frequency: models.FrequencyDaily,
	}
	for _, r := range []*models.Reminder{due, notDue} {
		if err := s.Reminders().Create(ctx, r); err != nil {
			t.Fatalf("create reminder: %v", err)
		}
	}

	sched := NewReminderScheduler(s)
	sched.now = func() time.Time { return now }

	if err := sched.Sweep(ctx); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	gotDue, err := s.Reminders().FindByID(ctx, due.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if gotDue.LastTriggered == nil {
		t.Error("due reminder was not stamped")
	}

	gotNotDue, err := s.Reminders().FindByID(ctx, notDue.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if gotNotDue.LastTriggered != nil {
		t.Error("reminder outside the window was stamped")
	}
}

func TestSweepSkipsInactiveReminders(t *testing.T) {
	s := newSweepStore(t)
	ctx := context.Background()
	now := time.Now()

	paused := &models.Reminder{
		ChildID: "child-1", Type: "feeding", Title: "Paused",
		Time: now.Format("15:04"), IsActive: false,
	}
	if err := s.Reminders().Create(ctx, paused); err != nil {
		t.Fatalf("create reminder: %v", err)
	}

	sched := NewReminderScheduler(s)
	sched.now = func() time.Time { return now }
	if err := sched.Sweep(ctx); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	got, err := s.Reminders().FindByID(ctx, paused.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.LastTriggered != nil {
		t.Error("inactive reminder was stamped")
	}
}

// Errors from mocked methods
var errMockUpdate = errors.New("update error")

// mockReminderRepo implements store.Repository[models.Reminder] for error
// injection.
type mockReminderRepo struct {
	store.Repository[models.Reminder]
	updateFunc func(ctx context.Context, id string, mutate func(*models.Reminder)) (*models.Reminder, error)
}

func (m *mockReminderRepo) Update(ctx context.Context, id string, mutate func(*models.Reminder)) (*models.Reminder, error) {
	return m.updateFunc(ctx, id, mutate)
}

// mockStore wraps a real store but serves the mocked reminder repository.
type mockStore struct {
	store.Store
	reminders store.Repository[models.Reminder]
}

func (m *mockStore) Reminders() store.Repository[models.Reminder] { return m.reminders }

func TestSweepIsolatesPerReminderFailures(t *testing.T) {
	s := newSweepStore(t)
	ctx := context.Background()
	now := time.Now()

	first := &models.Reminder{
		ChildID: "child-1", Type: "feeding", Title: "First",
		Time: now.Format("15:04"), IsActive: true,
	}
	second := &models.Reminder{
		ChildID: "child-1", Type: "feeding", Title: "Second",
		Time: now.Format("15:04"), IsActive: true,
	}
	for _, r := range []*models.Reminder{first, second} {
		if err := s.Reminders().Create(ctx, r); err != nil {
			t.Fatalf("create reminder: %v", err)
		}
	}

	updates := 0
	wrapped := &mockStore{
		Store: s,
		reminders: &mockReminderRepo{
			Repository: s.Reminders(),
			updateFunc: func(ctx context.Context, id string, mutate func(*models.Reminder)) (*models.Reminder, error) {
				updates++
				if id == first.ID {
					return nil, errMockUpdate
				}
				return s.Reminders().Update(ctx, id, mutate)
			},
		},
	}

	sched := NewReminderScheduler(wrapped)
	sched.now = func() time.Time { return now }
	if err := sched.Sweep(ctx); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	if updates != 2 {
		t.Errorf("expected both reminders attempted, got %d updates", updates)
	}
	got, err := s.Reminders().FindByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.LastTriggered == nil {
		t.Error("second reminder should have been stamped despite the first failing")
	}
}
