package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"parenting-copilot-server/internal/models"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "models.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s
}

func createChild(t *testing.T, s *FileStore, name string) *models.Child {
	t.Helper()
	child := &models.Child{
		Name:        name,
		DateOfBirth: "2022-01-01",
		Gender:      models.GenderFemale,
		ParentID:    "parent-1",
	}
	if err := s.Children().Create(context.Background(), child); err != nil {
		t.Fatalf("create child: %v", err)
	}
	return child
}

func TestFileStoreCreateAssignsIDAndTimestamps(t *testing.T) {
	s := newTestStore(t)
	child := createChild(t, s, "Ava")

	if child.ID == "" {
		t.Fatal("expected generated id")
	}
	if child.CreatedAt.IsZero() || child.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	found, err := s.Children().FindByID(context.Background(), child.ID)
	if err != nil {
		t.Fatalf("FindByID after create: %v", err)
	}
	if found.Name != "Ava" || found.DateOfBirth != "2022-01-01" {
		t.Errorf("round trip mismatch: %+v", found)
	}
}

func TestFileStorePersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	child := createChild(t, s, "Ben")

	reloaded, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	found, err := reloaded.Children().FindByID(context.Background(), child.ID)
	if err != nil {
		t.Fatalf("FindByID after reload: %v", err)
	}
	if found.Name != "Ben" {
		t.Errorf("got %q, want Ben", found.Name)
	}
}

func TestFileStoreFindByIDMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Children().FindByID(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreUpdateMergesFields(t *testing.T) {
	s := newTestStore(t)
	child := createChild(t, s, "Ava")
	before := child.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	updated, err := s.Children().Update(context.Background(), child.ID, func(c *models.Child) {
		c.Name = "Ava Marie"
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Name != "Ava Marie" {
		t.Errorf("name not updated: %q", updated.Name)
	}
	if updated.DateOfBirth != "2022-01-01" {
		t.Errorf("untouched field changed: %q", updated.DateOfBirth)
	}
	if !updated.UpdatedAt.After(before) {
		t.Errorf("UpdatedAt not refreshed: %v vs %v", updated.UpdatedAt, before)
	}
}

func TestFileStoreUpdateMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Children().Update(context.Background(), "nope", func(c *models.Child) {})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreDelete(t *testing.T) {
	s := newTestStore(t)
	child := createChild(t, s, "Ava")
	ctx := context.Background()

	existed, err := s.Children().Delete(ctx, child.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !existed {
		t.Fatal("expected delete to report existing record")
	}
	if _, err := s.Children().FindByID(ctx, child.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	existed, err = s.Children().Delete(ctx, child.ID)
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if existed {
		t.Fatal("expected delete on absent id to report false")
	}
}

func TestFileStoreFindByChildID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	child := createChild(t, s, "Ava")
	other := createChild(t, s, "Ben")

	for _, childID := range []string{child.ID, child.ID, other.ID} {
		record := &models.Reminder{
			ChildID: childID, Type: "medication", Title: "Vitamin D", IsActive: true,
		}
		if err := s.Reminders().Create(ctx, record); err != nil {
			t.Fatalf("create reminder: %v", err)
		}
	}

	got, err := s.Reminders().FindByChildID(ctx, child.ID)
	if err != nil {
		t.Fatalf("FindByChildID: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d reminders, want 2", len(got))
	}

	// A collection that is not child-owned yields an empty slice.
	parents, err := s.Parents().FindByChildID(ctx, child.ID)
	if err != nil {
		t.Fatalf("FindByChildID on parents: %v", err)
	}
	if len(parents) != 0 {
		t.Errorf("expected no parents, got %d", len(parents))
	}
}

func TestFileStoreChildWithDetailsEmpty(t *testing.T) {
	s := newTestStore(t)
	child := createChild(t, s, "Ava")

	details, err := s.ChildWithDetails(context.Background(), child.ID)
	if err != nil {
		t.Fatalf("ChildWithDetails: %v", err)
	}
	if details.HealthRecords == nil || details.Reminders == nil ||
		details.CarePlans == nil || details.AIInsights == nil {
		t.Fatal("expected empty, non-nil related slices")
	}
	if len(details.HealthRecords)+len(details.Reminders)+len(details.CarePlans)+len(details.AIInsights) != 0 {
		t.Fatal("expected no related records")
	}

	if _, err := s.ChildWithDetails(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing child, got %v", err)
	}
}

func TestFileStoreUpcomingReminders(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	add := func(title, date string, active bool) {
		r := &models.Reminder{
			ChildID: "child-1", Type: "checkup", Title: title,
			Date: date, IsActive: active, Frequency: models.FrequencyOnce,
		}
		if err := s.Reminders().Create(ctx, r); err != nil {
			t.Fatalf("create reminder: %v", err)
		}
	}

	add("dateless daily", "", true)
	add("inside window", now.Add(2*time.Hour).Format(time.RFC3339), true)
	add("outside window", now.Add(48*time.Hour).Format(time.RFC3339), true)
	add("in the past", now.Add(-2*time.Hour).Format(time.RFC3339), true)
	add("inactive", now.Add(2*time.Hour).Format(time.RFC3339), false)

	upcoming, err := s.UpcomingReminders(ctx, now)
	if err != nil {
		t.Fatalf("UpcomingReminders: %v", err)
	}

	titles := map[string]bool{}
	for _, r := range upcoming {
		titles[r.Title] = true
	}
	if len(upcoming) != 2 || !titles["dateless daily"] || !titles["inside window"] {
		t.Errorf("unexpected upcoming set: %v", titles)
	}
}
