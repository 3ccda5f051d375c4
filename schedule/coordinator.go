package schedule

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Samilincoln/Study-Sync/models"
)

const dispatchTimeout = 30 * time.Second

// Coordinator keeps the registry in step with class create/update/delete
// events and drives the background timing loop that fires due reminders.
// It is the only component that writes to the registry.
type Coordinator struct {
	store      ClassStore
	registry   *Registry
	dispatcher *Dispatcher
	log        *zap.Logger

	now func() time.Time

	mu     sync.Mutex
	stopCh chan struct{}
	wg     sync.WaitGroup

	// Per-class mutation locks. Entries are never reclaimed; the map is
	// bounded by the number of classes ever mutated.
	lmu   sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewCoordinator(store ClassStore, registry *Registry, dispatcher *Dispatcher, log *zap.Logger) *Coordinator {
	return &Coordinator{
		store:      store,
		registry:   registry,
		dispatcher: dispatcher,
		log:        log,
		now:        time.Now,
		locks:      make(map[uuid.UUID]*sync.Mutex),
	}
}

func (c *Coordinator) lockFor(id uuid.UUID) *sync.Mutex {
	c.lmu.Lock()
	defer c.lmu.Unlock()
	l, ok := c.locks[id]
	if !ok {
		l = &sync.Mutex{}
		c.locks[id] = l
	}
	return l
}

// OnCreate computes the fire spec for a new class, runs commit to persist
// the record and installs the entry. An invalid schedule aborts before
// commit runs, so the whole mutation is rejected. commit may be nil for
// records that are already persisted.
//
// The per-class lock spans commit and the registry write: for any single
// class the registry is updated in the order the record mutations commit.
func (c *Coordinator) OnCreate(class *models.Class, commit func() error) error {
	return c.install(class, commit, "reminder scheduled")
}

// OnUpdate recomputes the fire spec from the updated fields and replaces
// the existing entry, with the same commit/locking contract as OnCreate.
// Flipping IsActive alone never touches the registry membership; the
// dispatcher's activation check gates dormant classes at fire time.
func (c *Coordinator) OnUpdate(class *models.Class, commit func() error) error {
	return c.install(class, commit, "reminder rescheduled")
}

func (c *Coordinator) install(class *models.Class, commit func() error, event string) error {
	spec, err := FireSpecFor(class.DayOfWeek, class.StartTime, class.LeadMinutes)
	if err != nil {
		return err
	}

	l := c.lockFor(class.ID)
	l.Lock()
	defer l.Unlock()

	if commit != nil {
		if err := commit(); err != nil {
			return err
		}
	}

	c.registry.Install(class.ID, spec)
	c.log.Info(event,
		zap.String("class_id", class.ID.String()),
		zap.String("fires_at", spec.String()))
	return nil
}

// OnDelete drops the class's registry entry once commit has deleted the
// record; when commit fails the entry is left alone. Absent entries are a
// no-op. A fire already in flight is allowed to complete and is caught by
// the dispatcher's record lookup.
func (c *Coordinator) OnDelete(id uuid.UUID, commit func() error) error {
	l := c.lockFor(id)
	l.Lock()
	defer l.Unlock()

	if commit != nil {
		if err := commit(); err != nil {
			return err
		}
	}

	c.registry.Remove(id)
	c.log.Info("reminder unscheduled", zap.String("class_id", id.String()))
	return nil
}

// FireNow dispatches a reminder immediately, bypassing the registry.
// override replaces the templated body when non-empty. Errors (unknown
// class, transport failure) surface to the caller.
func (c *Coordinator) FireNow(ctx context.Context, id uuid.UUID, override string) error {
	return c.dispatcher.FireWith(ctx, id, override)
}

// ActiveJobCount is the number of scheduled registry entries.
func (c *Coordinator) ActiveJobCount() int {
	return c.registry.Len()
}

// Resync rebuilds the registry from stored classes. The registry is not
// durable, so this runs once at startup to restore the one-entry-per-class
// invariant. Classes with unparseable schedule fields are logged and
// skipped rather than blocking boot.
func (c *Coordinator) Resync(ctx context.Context) error {
	classes, err := c.store.All(ctx)
	if err != nil {
		return err
	}
	for i := range classes {
		if err := c.OnCreate(&classes[i], nil); err != nil {
			c.log.Warn("skipping class with invalid schedule during resync",
				zap.String("class_id", classes[i].ID.String()),
				zap.Error(err))
		}
	}
	c.log.Info("registry resynced", zap.Int("scheduled", c.registry.Len()))
	return nil
}

// Start launches the timing loop: one goroutine wakes at each minute
// boundary and evaluates the registry snapshot against the current wall
// clock. Safe to call once; subsequent calls are no-ops until Stop.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopCh != nil {
		return
	}
	c.stopCh = make(chan struct{})

	c.wg.Add(1)
	go c.run(ctx, c.stopCh)
	c.log.Info("reminder scheduler started")
}

// Stop halts the timing loop and waits for it and any in-flight dispatches
// to finish.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if c.stopCh == nil {
		c.mu.Unlock()
		return
	}
	close(c.stopCh)
	c.stopCh = nil
	c.mu.Unlock()

	c.wg.Wait()
	c.log.Info("reminder scheduler stopped")
}

func (c *Coordinator) run(ctx context.Context, stopCh chan struct{}) {
	defer c.wg.Done()

	timer := time.NewTimer(untilNextMinute(c.now()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-timer.C:
			c.evaluate(c.now())
			timer.Reset(untilNextMinute(c.now()))
		}
	}
}

// evaluate fires every registry entry due at t. Each dispatch runs on its
// own goroutine with a bounded timeout so a slow transport call never
// stalls the next tick.
func (c *Coordinator) evaluate(t time.Time) {
	for id, spec := range c.registry.Snapshot() {
		if !spec.Matches(t) {
			continue
		}
		c.wg.Add(1)
		go func(id uuid.UUID) {
			defer c.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
			defer cancel()

			err := c.dispatcher.Fire(ctx, id)
			switch {
			case err == nil:
			case errors.Is(err, ErrUnknownClass):
				c.log.Warn("scheduled reminder for removed class",
					zap.String("class_id", id.String()))
			default:
				c.log.Error("scheduled reminder failed",
					zap.String("class_id", id.String()),
					zap.Error(err))
			}
		}(id)
	}
}

func untilNextMinute(t time.Time) time.Duration {
	next := t.Truncate(time.Minute).Add(time.Minute)
	return next.Sub(t)
}
