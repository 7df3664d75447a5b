package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/campus-scheduler/internal/middleware"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/campus-scheduler/internal/usecase/appointment"
)

// fakeAppointmentRepo serves one request at a time; Transaction runs fn
// against the same maps.
type fakeAppointmentRepo struct {
	slots        map[uint]models.TimeSlot
	appointments map[uint]models.Appointment
	nextID       uint
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		slots:        make(map[uint]models.TimeSlot),
		appointments: make(map[uint]models.Appointment),
		nextID:       100,
	}
}

func (f *fakeAppointmentRepo) Transaction(_ context.Context, fn func(tx domain.Repository) error) error {
	return fn(f)
}

func (f *fakeAppointmentRepo) LockSlot(_ context.Context, id uint) (*models.TimeSlot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (f *fakeAppointmentRepo) SetSlotAvailability(_ context.Context, id uint, available bool) error {
	s := f.slots[id]
	s.Available = available
	f.slots[id] = s
	return nil
}

func (f *fakeAppointmentRepo) HasActiveAppointment(_ context.Context, studentID uint) (bool, error) {
	for _, ap := range f.appointments {
		if ap.StudentID == studentID && domain.Status(ap.Status).IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.nextID++
	ap.ID = f.nextID
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeAppointmentRepo) LockAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ap, nil
}

func (f *fakeAppointmentRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeAppointmentRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	ap.Slot = f.slots[ap.SlotID]
	return &ap, nil
}

func (f *fakeAppointmentRepo) ListAppointments(context.Context, domain.ListFilter) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListConfirmedOn(context.Context, time.Time) ([]models.Appointment, error) {
	return nil, nil
}

var _ domain.Repository = (*fakeAppointmentRepo)(nil)

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, uint, string, string, *uint) {}

func appointmentRouter(repo *fakeAppointmentRepo) *gin.Engine {
	logger := zap.NewNop()
	h := NewAppointmentHandler(
		ucAppointment.NewBookSlot(repo, nopNotifier{}, nil, fixedClock, logger),
		ucAppointment.NewTransitionAppointment(repo, nopNotifier{}, nil, fixedClock, logger),
		ucAppointment.NewListAppointments(repo),
		ucAppointment.NewGetAppointment(repo),
		nil,
		nil,
		fixedClock,
		logger,
	)

	r := gin.New()
	secured := r.Group("/api", middleware.AuthMiddleware(tokens))
	secured.POST("/appointments", middleware.RequireRole(identity.RoleStudent), h.Book)
	secured.POST("/appointments/:id/:event", h.Transition)
	return r
}

func TestAppointmentHandler_Book(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.slots[1] = models.TimeSlot{
		ID:           1,
		SpecialistID: 5,
		Date:         time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    "10:00",
		EndTime:      "10:30",
		Available:    true,
	}
	r := appointmentRouter(repo)
	body := gin.H{"slot_id": 1, "reason": "Course planning"}

	w := call(r, http.MethodPost, "/api/appointments", bearer(t, 5, identity.RoleSpecialist), body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "role_not_allowed", errorCode(t, w))

	w = call(r, http.MethodPost, "/api/appointments", bearer(t, 7, identity.RoleStudent), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "PENDING", created["status"])
	assert.Equal(t, float64(1), created["slot_id"])
	assert.False(t, repo.slots[1].Available)

	w = call(r, http.MethodPost, "/api/appointments", bearer(t, 8, identity.RoleStudent), body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_unavailable", errorCode(t, w))

	w = call(r, http.MethodPost, "/api/appointments", bearer(t, 8, identity.RoleStudent), gin.H{"slot_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "reason_required", errorCode(t, w))
}

func TestAppointmentHandler_Transition(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.slots[1] = models.TimeSlot{ID: 1, SpecialistID: 5, Date: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), StartTime: "10:00", EndTime: "10:30"}
	repo.appointments[10] = models.Appointment{ID: 10, StudentID: 7, SpecialistID: 5, SlotID: 1, Reason: "r", Status: "PENDING"}
	repo.appointments[11] = models.Appointment{ID: 11, StudentID: 8, SpecialistID: 5, SlotID: 1, Reason: "r", Status: "REJECTED"}
	r := appointmentRouter(repo)
	specialist := bearer(t, 5, identity.RoleSpecialist)

	w := call(r, http.MethodPost, "/api/appointments/10/archive", specialist, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "unknown_event", errorCode(t, w))

	w = call(r, http.MethodPost, "/api/appointments/10/confirm", bearer(t, 7, identity.RoleStudent), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(r, http.MethodPost, "/api/appointments/11/confirm", specialist, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid_state", body["error_code"])
	assert.Equal(t, "REJECTED", body["current_status"])

	w = call(r, http.MethodPost, "/api/appointments/10/confirm", specialist, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "CONFIRMED", body["status"])
	assert.NotNil(t, body["calendar_event_id"])

	w = call(r, http.MethodPost, "/api/appointments/999/cancel", specialist, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
