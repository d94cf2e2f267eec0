package scheduling

import (
	"context"
	"errors"
	"fmt"

	counselorRepo "careerpath/database/repository/counselor"
	"careerpath/models"
	"careerpath/utils"

	"go.uber.org/zap"
)

// SetAvailability replaces the weekly windows of the counselor linked to
// counselorUserID. Windows keep the given order, which decides the
// first-match window at booking time.
func (s *DefaultSchedulingService) SetAvailability(ctx context.Context, counselorUserID string, inputs []models.AvailabilityWindowInput) (*models.CounselorSummary, error) {
	counselor, err := s.Counselors.GetByUserID(ctx, counselorUserID)
	if err != nil {
		if errors.Is(err, counselorRepo.ErrNotFound) {
			return nil, utils.NewNotFound("Counselor profile not found for the logged-in user.")
		}
		return nil, utils.NewServerError("Failed to load counselor profile.", err)
	}

	windows, err := ValidateWindows(inputs)
	if err != nil {
		return nil, err
	}

	updated, err := s.Counselors.UpdateAvailability(ctx, counselor.ID, windows)
	if err != nil {
		if errors.Is(err, counselorRepo.ErrNotFound) {
			return nil, utils.NewNotFound("Counselor profile not found for the logged-in user.")
		}
		return nil, utils.NewServerError("Failed to update availability.", err)
	}
	s.cache().InvalidateCounselor(ctx, counselor.ID)
	s.logger().Info("availability updated", zap.String("counselorID", counselor.ID), zap.Int("windows", len(windows)))

	var user *models.UserSummary
	if u, err := s.Users.GetByID(ctx, counselorUserID); err == nil {
		user = u.Summary()
	}
	summary := s.counselorSummary(*updated, user)
	return &summary, nil
}

// ValidateWindows converts request windows into stored windows, rejecting the
// first invalid one with its position.
func ValidateWindows(inputs []models.AvailabilityWindowInput) ([]models.AvailabilityWindow, error) {
	windows := make([]models.AvailabilityWindow, 0, len(inputs))
	for i, in := range inputs {
		w, err := in.ToWindow()
		if err != nil {
			return nil, utils.NewInvalidRequest(fmt.Sprintf("Availability window %d: %v", i+1, err))
		}
		windows = append(windows, w)
	}
	return windows, nil
}
