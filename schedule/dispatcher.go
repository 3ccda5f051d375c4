package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Samilincoln/Study-Sync/models"
)

// ErrUnknownClass is returned when a reminder fires for a class that no
// longer exists in storage.
var ErrUnknownClass = errors.New("class not found")

// ClassStore is the record-storage collaborator the engine reads from.
// Get returns ErrUnknownClass when no record exists for id.
type ClassStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Class, error)
	ListByGuardian(ctx context.Context, phone string) ([]models.Class, error)
	All(ctx context.Context) ([]models.Class, error)
}

// Sender is the outbound message transport collaborator.
type Sender interface {
	Send(ctx context.Context, phone, body string) error
}

// Dispatcher resolves a class at fire time, checks that it is still active
// and hands the rendered reminder to the transport. It never mutates the
// registry and never retries a failed send.
type Dispatcher struct {
	store  ClassStore
	sender Sender
	log    *zap.Logger
}

func NewDispatcher(store ClassStore, sender Sender, log *zap.Logger) *Dispatcher {
	return &Dispatcher{store: store, sender: sender, log: log}
}

// Fire sends the templated reminder for the class. A class that has been
// deactivated since scheduling is a success no-op; a class that has been
// removed returns ErrUnknownClass.
func (d *Dispatcher) Fire(ctx context.Context, id uuid.UUID) error {
	return d.fire(ctx, id, "")
}

// FireWith sends body instead of the rendered template. Empty body falls
// back to the template.
func (d *Dispatcher) FireWith(ctx context.Context, id uuid.UUID, body string) error {
	return d.fire(ctx, id, body)
}

func (d *Dispatcher) fire(ctx context.Context, id uuid.UUID, override string) error {
	class, err := d.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUnknownClass) {
			return fmt.Errorf("class %s: %w", id, ErrUnknownClass)
		}
		return fmt.Errorf("resolve class %s: %w", id, err)
	}

	if !class.IsActive {
		// Deactivation does not unschedule; the gate lives here.
		d.log.Info("skipping reminder for inactive class",
			zap.String("class_id", id.String()))
		return nil
	}

	body := override
	if body == "" {
		body = renderReminder(class)
	}

	if err := d.sender.Send(ctx, class.GuardianPhone, body); err != nil {
		d.log.Error("failed to send reminder",
			zap.String("class_id", id.String()),
			zap.String("phone", class.GuardianPhone),
			zap.Error(err))
		return fmt.Errorf("send reminder for class %s: %w", id, err)
	}

	d.log.Info("reminder sent",
		zap.String("class_id", id.String()),
		zap.String("phone", class.GuardianPhone))
	return nil
}

func renderReminder(class *models.Class) string {
	return fmt.Sprintf(`🔔 Class Reminder!

📚 Subject: %s
👶 Student: %s
⏰ Time: %s
📅 Today: %s

Don't forget! Class starts in %d minutes.`,
		class.Subject, class.StudentName, class.StartTime, class.DayOfWeek, class.LeadMinutes)
}
