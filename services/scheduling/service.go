// Package scheduling computes bookable counselor slots and owns the
// appointment lifecycle: booking, student cancellation and counselor status updates.
package scheduling

import (
	"context"
	"time"

	appointmentRepo "careerpath/database/repository/appointment"
	counselorRepo "careerpath/database/repository/counselor"
	userRepo "careerpath/database/repository/user"
	"careerpath/models"

	"go.uber.org/zap"
)

// SlotDuration is the fixed length of every slot and appointment.
const SlotDuration = 60 * time.Minute

// SchedulingService is the surface the HTTP layer consumes.
type SchedulingService interface {
	AvailableSlots(ctx context.Context, counselorID, date string) (*DaySlots, error)
	Book(ctx context.Context, req BookingRequest) (*models.Appointment, error)
	CancelByStudent(ctx context.Context, appointmentID, studentID string) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID, counselorUserID, status, notes string) (*models.Appointment, error)
	ListForStudent(ctx context.Context, studentID string) ([]models.AppointmentView, error)
	ListForCounselorUser(ctx context.Context, userID string) ([]models.AppointmentView, error)
	ListCounselors(ctx context.Context) ([]models.CounselorSummary, error)
	SetAvailability(ctx context.Context, counselorUserID string, windows []models.AvailabilityWindowInput) (*models.CounselorSummary, error)
	View(appt models.Appointment) models.AppointmentView
}

// DefaultSchedulingService implements SchedulingService on top of the repositories.
// Location is the scheduling timezone: weekdays, working hours and rendered
// times are all resolved in it, never in the process's local zone.
type DefaultSchedulingService struct {
	Counselors   counselorRepo.CounselorRepository
	Appointments appointmentRepo.AppointmentRepository
	Users        userRepo.UserRepository
	Cache        SlotCache
	Location     *time.Location
	Now          func() time.Time
	Logger       *zap.Logger
}

// NewDefaultSchedulingService wires a service with the wall clock.
func NewDefaultSchedulingService(
	counselors counselorRepo.CounselorRepository,
	appointments appointmentRepo.AppointmentRepository,
	users userRepo.UserRepository,
	cache SlotCache,
	loc *time.Location,
	logger *zap.Logger,
) *DefaultSchedulingService {
	return &DefaultSchedulingService{
		Counselors:   counselors,
		Appointments: appointments,
		Users:        users,
		Cache:        cache,
		Location:     loc,
		Now:          time.Now,
		Logger:       logger,
	}
}

func (s *DefaultSchedulingService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultSchedulingService) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s *DefaultSchedulingService) cache() SlotCache {
	if s.Cache == nil {
		return NoopSlotCache{}
	}
	return s.Cache
}

func (s *DefaultSchedulingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
