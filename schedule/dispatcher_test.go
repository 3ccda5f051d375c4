package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Samilincoln/Study-Sync/models"
)

type fakeStore struct {
	mu      sync.Mutex
	classes map[uuid.UUID]*models.Class
}

func newFakeStore(classes ...*models.Class) *fakeStore {
	s := &fakeStore{classes: make(map[uuid.UUID]*models.Class)}
	for _, c := range classes {
		s.classes[c.ID] = c
	}
	return s
}

func (s *fakeStore) Get(ctx context.Context, id uuid.UUID) (*models.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	class, ok := s.classes[id]
	if !ok {
		return nil, ErrUnknownClass
	}
	copied := *class
	return &copied, nil
}

func (s *fakeStore) ListByGuardian(ctx context.Context, phone string) ([]models.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Class
	for _, class := range s.classes {
		if class.GuardianPhone == phone {
			out = append(out, *class)
		}
	}
	return out, nil
}

func (s *fakeStore) All(ctx context.Context) ([]models.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Class
	for _, class := range s.classes {
		out = append(out, *class)
	}
	return out, nil
}

type sentMessage struct {
	Phone string
	Body  string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (s *fakeSender) Send(ctx context.Context, phone, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMessage{Phone: phone, Body: body})
	return nil
}

func (s *fakeSender) messages() []sentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sentMessage(nil), s.sent...)
}

func testClass() *models.Class {
	return &models.Class{
		ID:            uuid.New(),
		GuardianPhone: "+15550001111",
		Subject:       "Math",
		StudentName:   "Ada",
		DayOfWeek:     "Friday",
		StartTime:     "18:00",
		LeadMinutes:   15,
		IsActive:      true,
	}
}

func TestDispatcherFireSendsTemplate(t *testing.T) {
	class := testClass()
	sender := &fakeSender{}
	d := NewDispatcher(newFakeStore(class), sender, zap.NewNop())

	require.NoError(t, d.Fire(context.Background(), class.ID))

	sent := sender.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "+15550001111", sent[0].Phone)
	assert.Contains(t, sent[0].Body, "Math")
	assert.Contains(t, sent[0].Body, "Ada")
	assert.Contains(t, sent[0].Body, "18:00")
	assert.Contains(t, sent[0].Body, "Friday")
	assert.Contains(t, sent[0].Body, "15 minutes")
}

func TestDispatcherFireUnknownClass(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(newFakeStore(), sender, zap.NewNop())

	err := d.Fire(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUnknownClass)
	assert.Empty(t, sender.messages())
}

func TestDispatcherFireInactiveClassIsNoOp(t *testing.T) {
	class := testClass()
	class.IsActive = false
	sender := &fakeSender{}
	d := NewDispatcher(newFakeStore(class), sender, zap.NewNop())

	require.NoError(t, d.Fire(context.Background(), class.ID))
	assert.Empty(t, sender.messages())
}

func TestDispatcherFireWithOverride(t *testing.T) {
	class := testClass()
	sender := &fakeSender{}
	d := NewDispatcher(newFakeStore(class), sender, zap.NewNop())

	require.NoError(t, d.FireWith(context.Background(), class.ID, "Class moved to 19:00 today"))

	sent := sender.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "Class moved to 19:00 today", sent[0].Body)
}

func TestDispatcherFireTransportError(t *testing.T) {
	class := testClass()
	transportErr := errors.New("twilio unavailable")
	sender := &fakeSender{err: transportErr}
	d := NewDispatcher(newFakeStore(class), sender, zap.NewNop())

	err := d.Fire(context.Background(), class.ID)
	assert.ErrorIs(t, err, transportErr)
}
