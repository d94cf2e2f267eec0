package scheduling

import (
	"context"
	"sort"
	"sync"
	"time"

	appointmentRepo "careerpath/database/repository/appointment"
	counselorRepo "careerpath/database/repository/counselor"
	userRepo "careerpath/database/repository/user"
	"careerpath/models"

	"go.mongodb.org/mongo-driver/bson"
)

type memAppointments struct {
	mu      sync.Mutex
	byID    map[string]models.Appointment
	creates int
	// createErr, when set, is returned by Create instead of inserting.
	createErr error
	// updateErr, when set, is returned by UpdateStatus instead of updating.
	updateErr error
}

func newMemAppointments() *memAppointments {
	return &memAppointments{byID: map[string]models.Appointment{}}
}

func (m *memAppointments) Create(_ context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, a := range m.byID {
		if a.Status == models.StatusScheduled && a.CounselorID == appt.CounselorID && a.AppointmentTime.Equal(appt.AppointmentTime) {
			return appointmentRepo.ErrDuplicateSlot
		}
	}
	m.byID[appt.ID] = *appt
	m.creates++
	return nil
}

func (m *memAppointments) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	return &a, nil
}

func (m *memAppointments) filter(keep func(models.Appointment) bool, desc bool) []models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range m.byID {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].AppointmentTime.After(out[j].AppointmentTime)
		}
		return out[i].AppointmentTime.Before(out[j].AppointmentTime)
	})
	return out
}

func (m *memAppointments) FindScheduledBetween(_ context.Context, counselorID string, from, to time.Time) ([]models.Appointment, error) {
	return m.filter(func(a models.Appointment) bool {
		return a.CounselorID == counselorID && a.Status == models.StatusScheduled &&
			!a.AppointmentTime.Before(from) && a.AppointmentTime.Before(to)
	}, false), nil
}

func (m *memAppointments) FindScheduledOverlapping(_ context.Context, counselorID string, start, end time.Time) ([]models.Appointment, error) {
	return m.filter(func(a models.Appointment) bool {
		return a.CounselorID == counselorID && a.Status == models.StatusScheduled && a.Overlaps(start, end)
	}, false), nil
}

func (m *memAppointments) UpdateStatus(_ context.Context, id string, status models.AppointmentStatus, notes string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	a, ok := m.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	if status == models.StatusScheduled && a.Status != models.StatusScheduled {
		for _, other := range m.byID {
			if other.ID != id && other.Status == models.StatusScheduled && other.CounselorID == a.CounselorID && other.AppointmentTime.Equal(a.AppointmentTime) {
				return nil, appointmentRepo.ErrDuplicateSlot
			}
		}
	}
	a.Status = status
	if notes != "" {
		a.Notes = notes
	}
	m.byID[id] = a
	return &a, nil
}

func (m *memAppointments) ListByStudent(_ context.Context, studentID string) ([]models.Appointment, error) {
	return m.filter(func(a models.Appointment) bool { return a.StudentID == studentID }, true), nil
}

func (m *memAppointments) ListByCounselor(_ context.Context, counselorID string) ([]models.Appointment, error) {
	return m.filter(func(a models.Appointment) bool { return a.CounselorID == counselorID }, true), nil
}

func (m *memAppointments) EnsureIndexes(context.Context) error { return nil }

func (m *memAppointments) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type memCounselors struct {
	mu   sync.Mutex
	byID map[string]models.Counselor
}

func newMemCounselors(counselors ...models.Counselor) *memCounselors {
	m := &memCounselors{byID: map[string]models.Counselor{}}
	for _, c := range counselors {
		m.byID[c.ID] = c
	}
	return m
}

func (m *memCounselors) GetByID(_ context.Context, id string) (*models.Counselor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, counselorRepo.ErrNotFound
	}
	return &c, nil
}

func (m *memCounselors) GetByUserID(_ context.Context, userID string) (*models.Counselor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byID {
		if c.UserID == userID {
			return &c, nil
		}
	}
	return nil, counselorRepo.ErrNotFound
}

func (m *memCounselors) GetByIDs(_ context.Context, ids []string) (map[string]models.Counselor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]models.Counselor{}
	for _, id := range ids {
		if c, ok := m.byID[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (m *memCounselors) GetAll(context.Context) ([]models.Counselor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Counselor, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memCounselors) Create(_ context.Context, c *models.Counselor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[c.ID] = *c
	return nil
}

func (m *memCounselors) UpdateAvailability(_ context.Context, id string, windows []models.AvailabilityWindow) (*models.Counselor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, counselorRepo.ErrNotFound
	}
	c.Availability = windows
	m.byID[id] = c
	return &c, nil
}

func (m *memCounselors) EnsureIndexes(context.Context) error { return nil }

type memUsers struct {
	byID map[string]models.User
}

func newMemUsers(users ...models.User) *memUsers {
	m := &memUsers{byID: map[string]models.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) GetByIDs(_ context.Context, ids []string) (map[string]models.User, error) {
	out := map[string]models.User{}
	for _, id := range ids {
		if u, ok := m.byID[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.byID[u.ID] = *u
	return nil
}

func (m *memUsers) SetTokenHash(_ context.Context, id, hash string) error {
	u, ok := m.byID[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	u.TokenHash = hash
	m.byID[id] = u
	return nil
}

func (m *memUsers) GetByIDWithProjection(ctx context.Context, id string, _ bson.M) (*models.User, error) {
	return m.GetByID(ctx, id)
}

func (m *memUsers) EnsureIndexes(context.Context) error { return nil }

// recordingCache remembers invalidations and stores nothing.
type recordingCache struct {
	NoopSlotCache
	mu          sync.Mutex
	invalidated []string
	counselors  []string
}

func (c *recordingCache) Invalidate(_ context.Context, counselorID, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, counselorID+"/"+date)
}

func (c *recordingCache) InvalidateCounselor(_ context.Context, counselorID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counselors = append(c.counselors, counselorID)
}
