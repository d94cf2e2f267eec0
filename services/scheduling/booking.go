package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appointmentRepo "careerpath/database/repository/appointment"
	counselorRepo "careerpath/database/repository/counselor"
	"careerpath/models"
	"careerpath/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingRequest is a student's request for one slot.
type BookingRequest struct {
	CounselorID     string
	StudentID       string
	AppointmentTime string
	Mode            string
}

const slotTakenMessage = "This appointment slot is no longer available."

// Book validates the request against the counselor's availability and
// existing appointments, then inserts a Scheduled appointment. Nothing is
// written when any check fails.
func (s *DefaultSchedulingService) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	if strings.TrimSpace(req.CounselorID) == "" || strings.TrimSpace(req.AppointmentTime) == "" {
		return nil, utils.NewInvalidRequest("Counselor ID and appointment time are required.")
	}
	loc := s.location()
	start, ok := parseAppointmentTime(req.AppointmentTime, loc)
	if !ok {
		return nil, utils.NewInvalidRequest("Appointment time must include both date and time in format YYYY-MM-DDTHH:mm")
	}

	mode := models.ModeOnline
	if req.Mode != "" {
		mode = models.AppointmentMode(req.Mode)
		if !mode.Valid() {
			return nil, utils.NewInvalidRequest(fmt.Sprintf("Mode must be %s or %s.", models.ModeOnline, models.ModeInPerson))
		}
	}

	now := s.now()
	if start.Before(now) {
		return nil, utils.NewInvalidRequest("You cannot book an appointment in the past.")
	}

	counselor, err := s.Counselors.GetByID(ctx, req.CounselorID)
	if err != nil {
		if errors.Is(err, counselorRepo.ErrNotFound) {
			return nil, utils.NewNotFound("Counselor not found.")
		}
		return nil, utils.NewServerError("Failed to load counselor.", err)
	}

	day := weekdayName(start, loc)
	windows := windowsFor(counselor.Availability, day)
	if len(windows) == 0 {
		return nil, utils.NewInvalidRequest(fmt.Sprintf("Counselor is not available on %s.", day))
	}
	// Only the first matching window is consulted, even if a later one would fit.
	window := windows[0]
	startMin, endMin, ok := window.Bounds()
	local := start.In(loc)
	requestedMin := local.Hour()*60 + local.Minute()
	if !ok || requestedMin < startMin || requestedMin >= endMin {
		return nil, utils.NewInvalidRequest(fmt.Sprintf("Appointment time must be between %s and %s on %s.", window.StartTime, window.EndTime, day))
	}

	end := start.Add(SlotDuration)
	clashes, err := s.Appointments.FindScheduledOverlapping(ctx, counselor.ID, start, end)
	if err != nil {
		return nil, utils.NewServerError("Failed to check existing appointments.", err)
	}
	if len(clashes) > 0 {
		return nil, utils.NewConflict(slotTakenMessage)
	}

	appt := &models.Appointment{
		ID:              uuid.New().String(),
		StudentID:       req.StudentID,
		CounselorID:     counselor.ID,
		AppointmentTime: start,
		EndTime:         end,
		Status:          models.StatusScheduled,
		Mode:            mode,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Appointments.Create(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
			s.logger().Info("concurrent booking lost the race",
				zap.String("counselorID", counselor.ID),
				zap.Time("appointmentTime", start),
			)
			return nil, utils.NewConflict(slotTakenMessage)
		}
		return nil, utils.NewServerError("Failed to book appointment.", err)
	}

	s.invalidateSpan(ctx, counselor.ID, start)
	s.logger().Info("appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("counselorID", counselor.ID),
		zap.String("studentID", req.StudentID),
		zap.Time("appointmentTime", start),
	)
	return appt, nil
}
