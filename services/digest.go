// services/digest.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Samilincoln/Study-Sync/models"
	"github.com/Samilincoln/Study-Sync/schedule"
)

// DefaultDigestCron sends the morning digest at 07:00 every day.
const DefaultDigestCron = "0 7 * * *"

// ClassLister is the slice of storage the digest needs.
type ClassLister interface {
	ListByDay(ctx context.Context, dayOfWeek string) ([]models.Class, error)
}

// Digest sends each guardian one summary message of their classes for the
// day. It runs on a fixed cron schedule, independent of the per-class
// reminder engine.
type Digest struct {
	store  ClassLister
	sender schedule.Sender
	log    *zap.Logger

	now  func() time.Time
	cron *cron.Cron
}

func NewDigest(store ClassLister, sender schedule.Sender, log *zap.Logger) *Digest {
	return &Digest{
		store:  store,
		sender: sender,
		log:    log,
		now:    time.Now,
	}
}

// Start schedules the digest at spec (standard 5-field cron expression).
func (d *Digest) Start(spec string) error {
	if spec == "" {
		spec = DefaultDigestCron
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, d.Run); err != nil {
		return fmt.Errorf("invalid digest cron spec %q: %w", spec, err)
	}
	c.Start()
	d.cron = c
	d.log.Info("daily digest scheduled", zap.String("cron", spec))
	return nil
}

func (d *Digest) Stop() {
	if d.cron != nil {
		<-d.cron.Stop().Done()
	}
}

// Run sends today's digest to every guardian with at least one active
// class today. Send failures are logged per guardian and never retried.
func (d *Digest) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	today := d.now().Weekday().String()
	classes, err := d.store.ListByDay(ctx, today)
	if err != nil {
		d.log.Error("failed to load today's classes for digest", zap.Error(err))
		return
	}

	byGuardian := make(map[string][]models.Class)
	for _, class := range classes {
		byGuardian[class.GuardianPhone] = append(byGuardian[class.GuardianPhone], class)
	}

	for phone, list := range byGuardian {
		if err := d.sender.Send(ctx, phone, renderDigest(today, list)); err != nil {
			d.log.Error("failed to send digest",
				zap.String("phone", phone),
				zap.Error(err))
		}
	}

	d.log.Info("daily digest processed",
		zap.String("day", today),
		zap.Int("guardians", len(byGuardian)))
}

func renderDigest(day string, classes []models.Class) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Today's classes (%s):\n\n", day)
	for _, class := range classes {
		fmt.Fprintf(&b, "📚 %s - %s\n⏰ %s\n\n", class.Subject, class.StudentName, class.StartTime)
	}
	return strings.TrimSpace(b.String())
}
