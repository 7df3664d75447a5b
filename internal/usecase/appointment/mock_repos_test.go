package appointment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

// ======================================================
// In-memory store
// ======================================================

type store struct {
	users        map[uint]models.User
	slots        map[uint]models.TimeSlot
	appointments map[uint]models.Appointment
	nextID       uint

	failUpdate error
}

func (s *store) clone() *store {
	cp := &store{
		users:        make(map[uint]models.User, len(s.users)),
		slots:        make(map[uint]models.TimeSlot, len(s.slots)),
		appointments: make(map[uint]models.Appointment, len(s.appointments)),
		nextID:       s.nextID,
		failUpdate:   s.failUpdate,
	}
	for k, v := range s.users {
		cp.users[k] = v
	}
	for k, v := range s.slots {
		cp.slots[k] = v
	}
	for k, v := range s.appointments {
		cp.appointments[k] = v
	}
	return cp
}

func (s *store) withDetails(ap models.Appointment) models.Appointment {
	ap.Student = s.users[ap.StudentID]
	ap.Specialist = s.users[ap.SpecialistID]
	ap.Slot = s.slots[ap.SlotID]
	return ap
}

// mockRepo emulates Postgres: one mutex stands in for the row locks
// taken inside a transaction, and an error restores the snapshot.
type mockRepo struct {
	mu sync.Mutex
	s  *store
}

func newMockRepo() *mockRepo {
	return &mockRepo{s: &store{
		users:        make(map[uint]models.User),
		slots:        make(map[uint]models.TimeSlot),
		appointments: make(map[uint]models.Appointment),
	}}
}

func (m *mockRepo) addUser(u models.User) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.users[u.ID] = u
	return u
}

func (m *mockRepo) addSlot(sl models.TimeSlot) models.TimeSlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.nextID++
	sl.ID = m.s.nextID
	m.s.slots[sl.ID] = sl
	return sl
}

func (m *mockRepo) addAppointment(ap models.Appointment) models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.nextID++
	ap.ID = m.s.nextID
	m.s.appointments[ap.ID] = ap
	return ap
}

func (m *mockRepo) slot(id uint) models.TimeSlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.slots[id]
}

func (m *mockRepo) appointment(id uint) models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.appointments[id]
}

func (m *mockRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.s.clone()
	if err := fn(&txRepo{s: m.s}); err != nil {
		m.s = snapshot
		return err
	}
	return nil
}

func (m *mockRepo) locked(fn func(tx *txRepo) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(&txRepo{s: m.s})
}

func (m *mockRepo) LockSlot(ctx context.Context, id uint) (out *models.TimeSlot, err error) {
	err = m.locked(func(tx *txRepo) error { out, err = tx.LockSlot(ctx, id); return err })
	return out, err
}

func (m *mockRepo) SetSlotAvailability(ctx context.Context, id uint, available bool) error {
	return m.locked(func(tx *txRepo) error { return tx.SetSlotAvailability(ctx, id, available) })
}

func (m *mockRepo) HasActiveAppointment(ctx context.Context, studentID uint) (ok bool, err error) {
	err = m.locked(func(tx *txRepo) error { ok, err = tx.HasActiveAppointment(ctx, studentID); return err })
	return ok, err
}

func (m *mockRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return m.locked(func(tx *txRepo) error { return tx.CreateAppointment(ctx, ap) })
}

func (m *mockRepo) LockAppointment(ctx context.Context, id uint) (out *models.Appointment, err error) {
	err = m.locked(func(tx *txRepo) error { out, err = tx.LockAppointment(ctx, id); return err })
	return out, err
}

func (m *mockRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return m.locked(func(tx *txRepo) error { return tx.UpdateAppointment(ctx, ap) })
}

func (m *mockRepo) GetAppointment(ctx context.Context, id uint) (out *models.Appointment, err error) {
	err = m.locked(func(tx *txRepo) error { out, err = tx.GetAppointment(ctx, id); return err })
	return out, err
}

func (m *mockRepo) ListAppointments(ctx context.Context, f domain.ListFilter) (out []models.Appointment, err error) {
	err = m.locked(func(tx *txRepo) error { out, err = tx.ListAppointments(ctx, f); return err })
	return out, err
}

func (m *mockRepo) ListConfirmedOn(ctx context.Context, date time.Time) (out []models.Appointment, err error) {
	err = m.locked(func(tx *txRepo) error { out, err = tx.ListConfirmedOn(ctx, date); return err })
	return out, err
}

// ======================================================
// Transaction-bound view (caller holds the mutex)
// ======================================================

type txRepo struct {
	s *store
}

func (t *txRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	return fn(t)
}

func (t *txRepo) LockSlot(_ context.Context, id uint) (*models.TimeSlot, error) {
	sl, ok := t.s.slots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &sl, nil
}

func (t *txRepo) SetSlotAvailability(_ context.Context, id uint, available bool) error {
	sl, ok := t.s.slots[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	sl.Available = available
	t.s.slots[id] = sl
	return nil
}

func (t *txRepo) HasActiveAppointment(_ context.Context, studentID uint) (bool, error) {
	for _, ap := range t.s.appointments {
		if ap.StudentID == studentID && domain.Status(ap.Status).IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (t *txRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	for _, other := range t.s.appointments {
		if !domain.Status(other.Status).IsActive() {
			continue
		}
		if other.SlotID == ap.SlotID {
			return httperr.Conflict("slot_unavailable", "This slot is no longer available.")
		}
		if other.StudentID == ap.StudentID {
			return httperr.Conflict("active_appointment_exists", "You already have an active appointment.")
		}
	}
	t.s.nextID++
	ap.ID = t.s.nextID
	ap.CreatedAt = time.Now().Add(time.Duration(ap.ID) * time.Millisecond)
	ap.UpdatedAt = ap.CreatedAt
	t.s.appointments[ap.ID] = *ap
	return nil
}

func (t *txRepo) LockAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := t.s.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ap, nil
}

func (t *txRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if t.s.failUpdate != nil {
		return t.s.failUpdate
	}
	if _, ok := t.s.appointments[ap.ID]; !ok {
		return errors.New("update of unknown appointment")
	}
	cp := *ap
	cp.Student, cp.Specialist, cp.Slot = models.User{}, models.User{}, models.TimeSlot{}
	t.s.appointments[ap.ID] = cp
	return nil
}

func (t *txRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := t.s.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := t.s.withDetails(ap)
	return &out, nil
}

func (t *txRepo) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range t.s.appointments {
		if f.StudentID != nil && ap.StudentID != *f.StudentID {
			continue
		}
		if f.SpecialistID != nil && ap.SpecialistID != *f.SpecialistID {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, domain.Status(ap.Status)) {
			continue
		}
		out = append(out, t.s.withDetails(ap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (t *txRepo) ListConfirmedOn(_ context.Context, date time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range t.s.appointments {
		sl := t.s.slots[ap.SlotID]
		if ap.Status == string(domain.StatusConfirmed) && sl.Date.Equal(date) {
			out = append(out, t.s.withDetails(ap))
		}
	}
	return out, nil
}

func containsStatus(list []domain.Status, s domain.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ======================================================
// Notifier
// ======================================================

type notification struct {
	userID uint
	title  string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) Notify(_ context.Context, userID uint, title, _ string, _ *uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{userID: userID, title: title})
}

func (n *recordingNotifier) all() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.sent...)
}

var (
	_ domain.Repository = (*mockRepo)(nil)
	_ domain.Repository = (*txRepo)(nil)
)
