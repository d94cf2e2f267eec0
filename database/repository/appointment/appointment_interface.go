package appointmentRepo

import (
	"careerpath/models"
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no appointment matches the requested ID.
	ErrNotFound = errors.New("appointment not found")
	// ErrDuplicateSlot is returned when the (counselor, appointmentTime) unique index
	// rejects an insert or a status change back to Scheduled.
	ErrDuplicateSlot = errors.New("appointment slot already taken")
)

// AppointmentRepository defines methods for appointment data access.
// Appointments are never deleted; status changes are the only mutation.
type AppointmentRepository interface {
	// Create inserts a new appointment. A duplicate (counselor, appointmentTime)
	// surfaces as ErrDuplicateSlot.
	Create(ctx context.Context, appt *models.Appointment) error
	// GetByID retrieves an appointment by its ID.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// FindScheduledBetween returns Scheduled appointments of a counselor whose
	// start falls in [from, to).
	FindScheduledBetween(ctx context.Context, counselorID string, from, to time.Time) ([]models.Appointment, error)
	// FindScheduledOverlapping returns Scheduled appointments of a counselor
	// intersecting [start, end).
	FindScheduledOverlapping(ctx context.Context, counselorID string, start, end time.Time) ([]models.Appointment, error)
	// UpdateStatus sets the status and, when notes is non-empty, the notes.
	// Reviving a slot that is already taken surfaces as ErrDuplicateSlot.
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus, notes string) (*models.Appointment, error)
	// ListByStudent returns a student's appointments, newest start first.
	ListByStudent(ctx context.Context, studentID string) ([]models.Appointment, error)
	// ListByCounselor returns a counselor's appointments, newest start first.
	ListByCounselor(ctx context.Context, counselorID string) ([]models.Appointment, error)
	// EnsureIndexes creates the collection indexes, including the unique slot index.
	EnsureIndexes(ctx context.Context) error
}
