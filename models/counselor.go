package models

import (
	"fmt"
	"time"
)

// Weekdays lists the day names accepted in availability windows, Sunday first.
var Weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// IsWeekday reports whether day is one of Weekdays.
func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// AvailabilityWindow is a recurring weekly time range a counselor accepts bookings in.
type AvailabilityWindow struct {
	Day         string `bson:"day" json:"day"`             // e.g., "Monday"
	StartTime   string `bson:"startTime" json:"startTime"` // e.g., "09:00"
	EndTime     string `bson:"endTime" json:"endTime"`     // e.g., "17:00"
	IsAvailable bool   `bson:"isAvailable" json:"isAvailable"`
}

// Bounds returns the window as minutes from midnight. ok is false when either
// time fails to parse or the window is empty (start >= end).
func (w AvailabilityWindow) Bounds() (start, end int, ok bool) {
	start, err := ParseClock(w.StartTime)
	if err != nil {
		return 0, 0, false
	}
	end, err = ParseClock(w.EndTime)
	if err != nil {
		return 0, 0, false
	}
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

// Matches reports whether the window is open on the given weekday name.
func (w AvailabilityWindow) Matches(day string) bool {
	return w.IsAvailable && w.Day == day
}

// ParseClock parses a zero-padded 24h "HH:MM" string into minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Counselor is a counselor profile linked to exactly one user account.
type Counselor struct {
	ID              string               `bson:"id" json:"id"`
	UserID          string               `bson:"user" json:"user"`
	Specializations []string             `bson:"specializations" json:"specializations"`
	Bio             string               `bson:"bio,omitempty" json:"bio,omitempty"`
	Availability    []AvailabilityWindow `bson:"availability" json:"availability"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// CounselorSummary is the public view of a counselor with its user populated.
type CounselorSummary struct {
	ID              string               `json:"id"`
	User            *UserSummary         `json:"user,omitempty"`
	Specializations []string             `json:"specializations,omitempty"`
	Bio             string               `json:"bio,omitempty"`
	Availability    []AvailabilityWindow `json:"availability,omitempty"`
	CreatedAt       string               `json:"createdAt,omitempty"`
	UpdatedAt       string               `json:"updatedAt,omitempty"`
}

// AvailabilityWindowInput is the request shape for a window; isAvailable defaults to true.
type AvailabilityWindowInput struct {
	Day         string `json:"day" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	IsAvailable *bool  `json:"isAvailable"`
}

// ToWindow validates the input and converts it into a stored window.
func (in AvailabilityWindowInput) ToWindow() (AvailabilityWindow, error) {
	if !IsWeekday(in.Day) {
		return AvailabilityWindow{}, fmt.Errorf("invalid day %q", in.Day)
	}
	w := AvailabilityWindow{
		Day:         in.Day,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		IsAvailable: true,
	}
	if in.IsAvailable != nil {
		w.IsAvailable = *in.IsAvailable
	}
	if _, err := ParseClock(in.StartTime); err != nil {
		return AvailabilityWindow{}, err
	}
	if _, err := ParseClock(in.EndTime); err != nil {
		return AvailabilityWindow{}, err
	}
	if _, _, ok := w.Bounds(); !ok {
		return AvailabilityWindow{}, fmt.Errorf("%s window start %s must be before end %s", in.Day, in.StartTime, in.EndTime)
	}
	return w, nil
}

// SetAvailabilityRequest replaces a counselor's availability windows.
type SetAvailabilityRequest struct {
	Availability []AvailabilityWindowInput `json:"availability" binding:"required,dive"`
}
