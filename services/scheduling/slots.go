package scheduling

import (
	"context"
	"errors"
	"sort"
	"time"

	counselorRepo "careerpath/database/repository/counselor"
	"careerpath/models"
	"careerpath/utils"

	"go.uber.org/zap"
)

// DaySlots is the slot listing for one counselor on one calendar day.
// WorkingDay is false when no enabled window falls on that weekday.
type DaySlots struct {
	Date       string   `json:"date"`
	Slots      []string `json:"slots"`
	WorkingDay bool     `json:"workingDay"`
}

// AvailableSlots lists the bookable slot start times of a counselor on date
// ("YYYY-MM-DD"), rendered as "YYYY-MM-DDTHH:mm" in the scheduling timezone.
func (s *DefaultSchedulingService) AvailableSlots(ctx context.Context, counselorID, date string) (*DaySlots, error) {
	if date == "" {
		return nil, utils.NewInvalidRequest("Date query parameter is required.")
	}
	loc := s.location()
	day, err := parseDay(date, loc)
	if err != nil {
		return nil, utils.NewInvalidRequest("Date must be in format YYYY-MM-DD.")
	}

	if cached, ok := s.cache().Get(ctx, counselorID, date); ok {
		return cached, nil
	}

	counselor, err := s.Counselors.GetByID(ctx, counselorID)
	if err != nil {
		if errors.Is(err, counselorRepo.ErrNotFound) {
			return nil, utils.NewNotFound("Counselor not found.")
		}
		return nil, utils.NewServerError("Failed to load counselor.", err)
	}

	result := &DaySlots{Date: date, Slots: []string{}}
	windows := windowsFor(counselor.Availability, weekdayName(day, loc))
	if len(windows) == 0 {
		s.cache().Set(ctx, counselorID, date, *result)
		return result, nil
	}
	result.WorkingDay = true

	from, to := dayBounds(day, loc)
	// An appointment starting late the previous evening may run past midnight.
	booked, err := s.Appointments.FindScheduledBetween(ctx, counselorID, from.Add(-SlotDuration), to)
	if err != nil {
		return nil, utils.NewServerError("Failed to load appointments.", err)
	}

	for _, slot := range generateSlots(windows, day, booked, loc) {
		result.Slots = append(result.Slots, formatSlot(slot, loc))
	}

	s.logger().Debug("computed slots",
		zap.String("counselorID", counselorID),
		zap.String("date", date),
		zap.Int("windows", len(windows)),
		zap.Int("booked", len(booked)),
		zap.Int("slots", len(result.Slots)),
	)
	s.cache().Set(ctx, counselorID, date, *result)
	return result, nil
}

// generateSlots walks each window in SlotDuration steps and keeps the slots
// that fit entirely inside the window and overlap no booked appointment.
// Slots from all windows are merged and sorted; overlapping windows may yield
// duplicate start times, which are kept.
func generateSlots(windows []models.AvailabilityWindow, day time.Time, booked []models.Appointment, loc *time.Location) []time.Time {
	var slots []time.Time
	for _, w := range windows {
		startMin, endMin, ok := w.Bounds()
		if !ok {
			continue
		}
		windowEnd := atClock(day, endMin, loc)
		for cursor := atClock(day, startMin, loc); !cursor.Add(SlotDuration).After(windowEnd); cursor = cursor.Add(SlotDuration) {
			if !overlapsAny(booked, cursor, cursor.Add(SlotDuration)) {
				slots = append(slots, cursor)
			}
		}
	}
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
	return slots
}

func overlapsAny(booked []models.Appointment, start, end time.Time) bool {
	for _, appt := range booked {
		if appt.Overlaps(start, end) {
			return true
		}
	}
	return false
}
