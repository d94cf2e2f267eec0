package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusNoShow    AppointmentStatus = "No-show"
)

// Known reports whether s is one of the defined statuses.
func (s AppointmentStatus) Known() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// AppointmentMode is how the session takes place.
type AppointmentMode string

const (
	ModeOnline   AppointmentMode = "Online"
	ModeInPerson AppointmentMode = "In-person"
)

// Valid reports whether m is a supported mode.
func (m AppointmentMode) Valid() bool {
	return m == ModeOnline || m == ModeInPerson
}

// Appointment is a booked session between a student and a counselor.
// EndTime is always AppointmentTime plus one slot.
type Appointment struct {
	ID              string            `bson:"id" json:"id"`
	StudentID       string            `bson:"student" json:"student"`
	CounselorID     string            `bson:"counselor" json:"counselor"`
	AppointmentTime time.Time         `bson:"appointmentTime" json:"appointmentTime"`
	EndTime         time.Time         `bson:"endTime" json:"endTime"`
	Status          AppointmentStatus `bson:"status" json:"status"`
	Mode            AppointmentMode   `bson:"mode" json:"mode"`
	Notes           string            `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Overlaps reports whether the appointment intersects the half-open interval [start, end).
func (a Appointment) Overlaps(start, end time.Time) bool {
	return start.Before(a.EndTime) && end.After(a.AppointmentTime)
}

// AppointmentView is an appointment as returned to clients: times rendered in
// the scheduling timezone and the other party populated.
type AppointmentView struct {
	ID              string            `json:"id"`
	Student         *UserSummary      `json:"student"`
	Counselor       *CounselorSummary `json:"counselor"`
	AppointmentTime string            `json:"appointmentTime"`
	EndTime         string            `json:"endTime"`
	Status          AppointmentStatus `json:"status"`
	Mode            AppointmentMode   `json:"mode"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       string            `json:"createdAt"`
	UpdatedAt       string            `json:"updatedAt"`
}

// BookAppointmentRequest is the POST /book payload.
type BookAppointmentRequest struct {
	CounselorID     string `json:"counselorId"`
	AppointmentTime string `json:"appointmentTime"`
	Mode            string `json:"mode"`
}

// UpdateStatusRequest is the PATCH /status/:appointmentId payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}
