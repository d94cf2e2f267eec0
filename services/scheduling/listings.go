package scheduling

import (
	"context"
	"errors"

	counselorRepo "careerpath/database/repository/counselor"
	"careerpath/models"
	"careerpath/utils"
)

// View renders an appointment with bare references to both parties.
func (s *DefaultSchedulingService) View(appt models.Appointment) models.AppointmentView {
	loc := s.location()
	return models.AppointmentView{
		ID:              appt.ID,
		Student:         &models.UserSummary{ID: appt.StudentID},
		Counselor:       &models.CounselorSummary{ID: appt.CounselorID},
		AppointmentTime: formatSlot(appt.AppointmentTime, loc),
		EndTime:         formatSlot(appt.EndTime, loc),
		Status:          appt.Status,
		Mode:            appt.Mode,
		Notes:           appt.Notes,
		CreatedAt:       formatTimestamp(appt.CreatedAt, loc),
		UpdatedAt:       formatTimestamp(appt.UpdatedAt, loc),
	}
}

func (s *DefaultSchedulingService) counselorSummary(c models.Counselor, user *models.UserSummary) models.CounselorSummary {
	loc := s.location()
	if user == nil {
		user = &models.UserSummary{ID: c.UserID}
	}
	return models.CounselorSummary{
		ID:              c.ID,
		User:            user,
		Specializations: c.Specializations,
		Bio:             c.Bio,
		Availability:    c.Availability,
		CreatedAt:       formatTimestamp(c.CreatedAt, loc),
		UpdatedAt:       formatTimestamp(c.UpdatedAt, loc),
	}
}

func (s *DefaultSchedulingService) usersByID(ctx context.Context, ids []string) (map[string]models.User, error) {
	if len(ids) == 0 {
		return map[string]models.User{}, nil
	}
	users, err := s.Users.GetByIDs(ctx, unique(ids))
	if err != nil {
		return nil, utils.NewServerError("Failed to load users.", err)
	}
	return users, nil
}

// ListForStudent returns the student's appointments, latest first, with the
// counselor's name and email populated.
func (s *DefaultSchedulingService) ListForStudent(ctx context.Context, studentID string) ([]models.AppointmentView, error) {
	appts, err := s.Appointments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, utils.NewServerError("Failed to load appointments.", err)
	}

	counselorIDs := make([]string, 0, len(appts))
	for _, a := range appts {
		counselorIDs = append(counselorIDs, a.CounselorID)
	}
	counselors := map[string]models.Counselor{}
	if len(counselorIDs) > 0 {
		counselors, err = s.Counselors.GetByIDs(ctx, unique(counselorIDs))
		if err != nil {
			return nil, utils.NewServerError("Failed to load counselors.", err)
		}
	}
	userIDs := make([]string, 0, len(counselors))
	for _, c := range counselors {
		userIDs = append(userIDs, c.UserID)
	}
	users, err := s.usersByID(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.AppointmentView, 0, len(appts))
	for _, a := range appts {
		view := s.View(a)
		if c, ok := counselors[a.CounselorID]; ok {
			summary := &models.CounselorSummary{ID: c.ID, User: &models.UserSummary{ID: c.UserID}}
			if u, ok := users[c.UserID]; ok {
				summary.User = u.Summary()
			}
			view.Counselor = summary
		}
		views = append(views, view)
	}
	return views, nil
}

// ListForCounselorUser returns the appointments of the counselor profile
// linked to userID, latest first, with student name and email populated.
func (s *DefaultSchedulingService) ListForCounselorUser(ctx context.Context, userID string) ([]models.AppointmentView, error) {
	counselor, err := s.Counselors.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, counselorRepo.ErrNotFound) {
			return nil, utils.NewNotFound("Counselor profile not found for the logged-in user.")
		}
		return nil, utils.NewServerError("Failed to load counselor profile.", err)
	}
	appts, err := s.Appointments.ListByCounselor(ctx, counselor.ID)
	if err != nil {
		return nil, utils.NewServerError("Failed to load appointments.", err)
	}

	studentIDs := make([]string, 0, len(appts))
	for _, a := range appts {
		studentIDs = append(studentIDs, a.StudentID)
	}
	students, err := s.usersByID(ctx, studentIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.AppointmentView, 0, len(appts))
	for _, a := range appts {
		view := s.View(a)
		if u, ok := students[a.StudentID]; ok {
			view.Student = u.Summary()
		}
		views = append(views, view)
	}
	return views, nil
}

// ListCounselors returns every counselor, newest profile first, with the
// linked user's name and email.
func (s *DefaultSchedulingService) ListCounselors(ctx context.Context) ([]models.CounselorSummary, error) {
	counselors, err := s.Counselors.GetAll(ctx)
	if err != nil {
		return nil, utils.NewServerError("Failed to load counselors.", err)
	}
	userIDs := make([]string, 0, len(counselors))
	for _, c := range counselors {
		userIDs = append(userIDs, c.UserID)
	}
	users, err := s.usersByID(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.CounselorSummary, 0, len(counselors))
	for _, c := range counselors {
		var user *models.UserSummary
		if u, ok := users[c.UserID]; ok {
			user = u.Summary()
		}
		summaries = append(summaries, s.counselorSummary(c, user))
	}
	return summaries, nil
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
