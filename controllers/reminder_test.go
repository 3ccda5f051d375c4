package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Samilincoln/Study-Sync/models"
	"github.com/Samilincoln/Study-Sync/schedule"
)

type stubStore struct {
	class *models.Class
}

func (s *stubStore) Get(ctx context.Context, id uuid.UUID) (*models.Class, error) {
	if s.class != nil && s.class.ID == id {
		copied := *s.class
		return &copied, nil
	}
	return nil, schedule.ErrUnknownClass
}

func (s *stubStore) ListByGuardian(ctx context.Context, phone string) ([]models.Class, error) {
	return nil, nil
}

func (s *stubStore) All(ctx context.Context) ([]models.Class, error) {
	return nil, nil
}

type stubSender struct {
	bodies []string
}

func (s *stubSender) Send(ctx context.Context, phone, body string) error {
	s.bodies = append(s.bodies, body)
	return nil
}

func newReminderController(class *models.Class) (*ReminderController, *stubSender) {
	log := zap.NewNop()
	store := &stubStore{class: class}
	sender := &stubSender{}
	dispatcher := schedule.NewDispatcher(store, sender, log)
	coordinator := schedule.NewCoordinator(store, schedule.NewRegistry(), dispatcher, log)
	return &ReminderController{Coordinator: coordinator}, sender
}

func sendReminderRequest(t *testing.T, rc *ReminderController, id string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	c.Request = httptest.NewRequest(http.MethodPost, "/api/reminders/send/"+id, reader)
	c.Params = gin.Params{gin.Param{Key: "id", Value: id}}

	rc.SendReminder(c)
	return w
}

func TestSendReminderEmptyBody(t *testing.T) {
	class := &models.Class{
		ID:            uuid.New(),
		GuardianPhone: "+15550001111",
		Subject:       "Math",
		StudentName:   "Ada",
		DayOfWeek:     "Friday",
		StartTime:     "18:00",
		LeadMinutes:   15,
		IsActive:      true,
	}
	rc, sender := newReminderController(class)

	// No body at all means no custom message, not a bad request.
	w := sendReminderRequest(t, rc, class.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sender.bodies, 1)
	assert.Contains(t, sender.bodies[0], "Math")
}

func TestSendReminderCustomMessage(t *testing.T) {
	class := &models.Class{
		ID:            uuid.New(),
		GuardianPhone: "+15550001111",
		Subject:       "Math",
		StudentName:   "Ada",
		DayOfWeek:     "Friday",
		StartTime:     "18:00",
		LeadMinutes:   15,
		IsActive:      true,
	}
	rc, sender := newReminderController(class)

	w := sendReminderRequest(t, rc, class.ID.String(),
		[]byte(`{"customMessage":"Class moved to 19:00 today"}`))
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sender.bodies, 1)
	assert.Equal(t, "Class moved to 19:00 today", sender.bodies[0])
}

func TestSendReminderMalformedBody(t *testing.T) {
	class := &models.Class{ID: uuid.New(), IsActive: true}
	rc, sender := newReminderController(class)

	w := sendReminderRequest(t, rc, class.ID.String(), []byte(`{"customMessage":`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, sender.bodies)
}

func TestSendReminderUnknownClass(t *testing.T) {
	rc, sender := newReminderController(nil)

	w := sendReminderRequest(t, rc, uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, sender.bodies)
}
