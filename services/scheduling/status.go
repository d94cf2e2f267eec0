package scheduling

import (
	"context"
	"errors"
	"strings"
	"time"

	appointmentRepo "careerpath/database/repository/appointment"
	counselorRepo "careerpath/database/repository/counselor"
	"careerpath/models"
	"careerpath/utils"

	"go.uber.org/zap"
)

func (s *DefaultSchedulingService) loadAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, utils.NewNotFound("Appointment not found.")
		}
		return nil, utils.NewServerError("Failed to load appointment.", err)
	}
	return appt, nil
}

// invalidateSpan drops the cached listings of every local date the
// appointment touches. A late start can run past midnight into the next day.
func (s *DefaultSchedulingService) invalidateSpan(ctx context.Context, counselorID string, start time.Time) {
	loc := s.location()
	first := start.In(loc).Format(utils.DateLayout)
	s.cache().Invalidate(ctx, counselorID, first)
	if last := start.Add(SlotDuration - time.Nanosecond).In(loc).Format(utils.DateLayout); last != first {
		s.cache().Invalidate(ctx, counselorID, last)
	}
}

// ensureSlotFree rejects reviving appt when another Scheduled appointment of
// the same counselor now overlaps its slot.
func (s *DefaultSchedulingService) ensureSlotFree(ctx context.Context, appt *models.Appointment) error {
	clashes, err := s.Appointments.FindScheduledOverlapping(ctx, appt.CounselorID, appt.AppointmentTime, appt.AppointmentTime.Add(SlotDuration))
	if err != nil {
		return utils.NewServerError("Failed to check existing appointments.", err)
	}
	for _, other := range clashes {
		if other.ID != appt.ID {
			return utils.NewConflict(slotTakenMessage)
		}
	}
	return nil
}

// CancelByStudent cancels a Scheduled appointment owned by studentID.
func (s *DefaultSchedulingService) CancelByStudent(ctx context.Context, appointmentID, studentID string) (*models.Appointment, error) {
	appt, err := s.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.StudentID != studentID {
		return nil, utils.NewForbidden("You are not authorized to cancel this appointment.")
	}
	if appt.Status != models.StatusScheduled {
		return nil, utils.NewInvalidRequest("Only scheduled appointments can be cancelled.")
	}

	updated, err := s.Appointments.UpdateStatus(ctx, appt.ID, models.StatusCancelled, "")
	if err != nil {
		return nil, utils.NewServerError("Failed to cancel appointment.", err)
	}
	s.invalidateSpan(ctx, updated.CounselorID, updated.AppointmentTime)
	s.logger().Info("appointment cancelled", zap.String("appointmentID", appt.ID), zap.String("studentID", studentID))
	return updated, nil
}

// UpdateStatus lets the owning counselor set any status on an appointment.
// Unknown status values are stored as given.
func (s *DefaultSchedulingService) UpdateStatus(ctx context.Context, appointmentID, counselorUserID, status, notes string) (*models.Appointment, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, utils.NewInvalidRequest("Status is required.")
	}

	counselor, err := s.Counselors.GetByUserID(ctx, counselorUserID)
	if err != nil {
		if errors.Is(err, counselorRepo.ErrNotFound) {
			return nil, utils.NewNotFound("Counselor profile not found.")
		}
		return nil, utils.NewServerError("Failed to load counselor profile.", err)
	}

	appt, err := s.loadAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.CounselorID != counselor.ID {
		return nil, utils.NewForbidden("You are not authorized to update this appointment.")
	}

	next := models.AppointmentStatus(status)
	if !next.Known() {
		s.logger().Warn("storing unrecognised appointment status",
			zap.String("appointmentID", appt.ID),
			zap.String("status", status),
		)
	}
	if next == models.StatusScheduled && appt.Status != models.StatusScheduled {
		if err := s.ensureSlotFree(ctx, appt); err != nil {
			return nil, err
		}
	}
	updated, err := s.Appointments.UpdateStatus(ctx, appt.ID, next, notes)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
			return nil, utils.NewConflict(slotTakenMessage)
		}
		return nil, utils.NewServerError("Failed to update appointment status.", err)
	}
	s.invalidateSpan(ctx, updated.CounselorID, updated.AppointmentTime)
	return updated, nil
}
