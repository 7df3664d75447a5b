package slot

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/campus-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/campus-scheduler/internal/models"
)

type mockSlotRepo struct {
	mu           sync.Mutex
	slots        map[uint]*models.TimeSlot
	appointments map[uint]int64
	nextID       uint

	// simulates a concurrent insert winning the unique index
	raceOnCreate bool
}

func newMockSlotRepo() *mockSlotRepo {
	return &mockSlotRepo{
		slots:        make(map[uint]*models.TimeSlot),
		appointments: make(map[uint]int64),
	}
}

func (m *mockSlotRepo) add(s models.TimeSlot) *models.TimeSlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s.ID = m.nextID
	m.slots[s.ID] = &s
	return &s
}

func (m *mockSlotRepo) CreateSlot(_ context.Context, s *models.TimeSlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raceOnCreate {
		return domain.ErrDuplicate()
	}
	for _, other := range m.slots {
		if other.SpecialistID == s.SpecialistID && other.Date.Equal(s.Date) && other.StartTime == s.StartTime {
			return domain.ErrDuplicate()
		}
	}
	m.nextID++
	s.ID = m.nextID
	cp := *s
	m.slots[s.ID] = &cp
	return nil
}

func (m *mockSlotRepo) SlotExists(_ context.Context, specialistID uint, date time.Time, start string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.slots {
		if s.SpecialistID == specialistID && s.Date.Equal(date) && s.StartTime == start {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSlotRepo) GetSlot(_ context.Context, id uint) (*models.TimeSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockSlotRepo) ListAvailable(_ context.Context, from time.Time, specialistID *uint) ([]models.TimeSlot, error) {
	return m.filter(func(s *models.TimeSlot) bool {
		if !s.Available || s.Date.Before(from) {
			return false
		}
		return specialistID == nil || s.SpecialistID == *specialistID
	}), nil
}

func (m *mockSlotRepo) ListBySpecialist(_ context.Context, specialistID uint) ([]models.TimeSlot, error) {
	return m.filter(func(s *models.TimeSlot) bool { return s.SpecialistID == specialistID }), nil
}

func (m *mockSlotRepo) ListAll(context.Context) ([]models.TimeSlot, error) {
	return m.filter(func(*models.TimeSlot) bool { return true }), nil
}

func (m *mockSlotRepo) CountAppointments(_ context.Context, slotID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appointments[slotID], nil
}

func (m *mockSlotRepo) DeleteSlot(_ context.Context, slotID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.slots[slotID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.slots, slotID)
	return nil
}

func (m *mockSlotRepo) filter(keep func(*models.TimeSlot) bool) []models.TimeSlot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.TimeSlot
	for _, s := range m.slots {
		if keep(s) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

var _ domain.Repository = (*mockSlotRepo)(nil)
