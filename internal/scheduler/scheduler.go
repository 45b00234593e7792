package scheduler

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"parenting-copilot-server/internal/models"
	"parenting-copilot-server/internal/store"
	"parenting-copilot-server/internal/utils"
)

// triggerWindow is how close to its fire time a reminder must be to count as
// due. The sweep runs every minute, so the window matches the tick.
const triggerWindow = 60 * time.Second

// ReminderScheduler periodically re-evaluates which reminders are due and
// stamps their LastTriggered timestamp. Notification delivery is out of
// scope; only the bookkeeping happens here.
type ReminderScheduler struct {
	store store.Store
	cron  *cron.Cron
	now   func() time.Time
}

func NewReminderScheduler(s store.Store) *ReminderScheduler {
	return &ReminderScheduler{
		store: s,
		cron:  cron.New(),
		now:   time.Now,
	}
}

// Start begins the once-per-minute sweep.
func (s *ReminderScheduler) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.Sweep(context.Background()); err != nil {
			log.Printf("scheduler: sweep failed: %v", err)
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("Reminder scheduler started")
	return nil
}

// Stop halts the cron loop, waiting for a running sweep to finish.
func (s *ReminderScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep runs one due-evaluation pass. Failures on individual reminders are
// logged and do not abort the rest of the pass.
func (s *ReminderScheduler) Sweep(ctx context.Context) error {
	now := s.now()
	upcoming, err := s.store.UpcomingReminders(ctx, now)
	if err != nil {
		return err
	}

	for _, reminder := range upcoming {
		fireAt := FireTime(reminder, now)
		diff := now.Sub(fireAt)
		if diff < 0 {
			diff = -diff
		}
		if diff > triggerWindow {
			continue
		}

		log.Printf("Reminder triggered: %s for child %s", reminder.Title, reminder.ChildID)
		triggered := now
		_, err := s.store.Reminders().Update(ctx, reminder.ID, func(r *models.Reminder) {
			r.LastTriggered = &triggered
		})
		if err != nil {
			log.Printf("scheduler: failed to mark reminder %s triggered: %v", reminder.ID, err)
		}
	}
	return nil
}

// FireTime computes the moment a reminder targets: its date if set (else the
// current moment), with the HH:MM time-of-day overlaid when present, seconds
// zeroed.
func FireTime(r models.Reminder, now time.Time) time.Time {
	target := now
	if r.Date != "" {
		if parsed, err := utils.ParseEventDate(r.Date); err == nil {
			target = parsed
		}
	}

	if hour, minute, ok := parseClock(r.Time); ok {
		target = time.Date(target.Year(), target.Month(), target.Day(), hour, minute, 0, 0, target.Location())
	}
	return target
}

// parseClock parses an HH:MM wall-clock value.
func parseClock(s string) (hour, minute int, ok bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
