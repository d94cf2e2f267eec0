package scheduling

import (
	"fmt"
	"regexp"
	"time"

	"careerpath/models"
	"careerpath/utils"
)

// appointmentTimePattern requires both a date and an hour:minute.
var appointmentTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}`)

var localLayouts = []string{"2006-01-02T15:04:05", utils.SlotLayout}

// parseAppointmentTime accepts "YYYY-MM-DDTHH:MM[:SS]" in loc, or RFC 3339
// with an explicit offset.
func parseAppointmentTime(value string, loc *time.Location) (time.Time, bool) {
	if !appointmentTimePattern.MatchString(value) {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Truncate(time.Minute), true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.Truncate(time.Minute), true
		}
	}
	return time.Time{}, false
}

// parseDay parses a "YYYY-MM-DD" calendar day as midnight in loc.
func parseDay(value string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(utils.DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return day, nil
}

// dayBounds returns [midnight, next midnight) of t's calendar day in loc.
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	return start, end
}

// atClock returns the wall-clock time minutes after midnight on day's date in loc.
func atClock(day time.Time, minutes int, loc *time.Location) time.Time {
	local := day.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), minutes/60, minutes%60, 0, 0, loc)
}

// weekdayName returns the weekday of t as seen in loc, e.g. "Monday".
func weekdayName(t time.Time, loc *time.Location) string {
	return t.In(loc).Weekday().String()
}

// windowsFor returns the enabled windows of the given weekday in stored order.
func windowsFor(windows []models.AvailabilityWindow, day string) []models.AvailabilityWindow {
	var matched []models.AvailabilityWindow
	for _, w := range windows {
		if w.Matches(day) {
			matched = append(matched, w)
		}
	}
	return matched
}

func formatSlot(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(utils.SlotLayout)
}

func formatTimestamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(utils.TimestampLayout)
}
