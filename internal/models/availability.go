package models

import (
	"fmt"
	"time"
)

// AvailabilityWindow is a recurring weekly slot. DayOfWeek follows the
// storage convention Sunday=0..Saturday=6, which matches time.Weekday.
// Times are wall-clock "15:04" strings on the wire.
type AvailabilityWindow struct {
	ID         int       `json:"id"`
	ProviderID int       `json:"provider_id"`
	DayOfWeek  int       `json:"day_of_week"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	CreatedAt  time.Time `json:"created_at"`
}

type AvailabilityUpdateRequest struct {
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
}

// ParseDailyTime accepts "15:04:05" or "15:04" wall-clock values.
func ParseDailyTime(value string) (time.Time, error) {
	layouts := []string{"15:04:05", "15:04"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format: %s", value)
}

// MinuteOfDay converts a wall-clock string to minutes since midnight.
func MinuteOfDay(value string) (int, error) {
	t, err := ParseDailyTime(value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// WindowsOverlap applies the half-open interval test: [s1,e1) and [s2,e2)
// overlap iff s1 < e2 and s2 < e1. Arguments are minutes since midnight.
func WindowsOverlap(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// Validate checks the start < end invariant.
func (w AvailabilityWindow) Validate() error {
	start, err := MinuteOfDay(w.StartTime)
	if err != nil {
		return ErrInvalidRange
	}
	end, err := MinuteOfDay(w.EndTime)
	if err != nil {
		return ErrInvalidRange
	}
	if start >= end {
		return ErrInvalidRange
	}
	return nil
}

// Contains reports whether the timestamp falls inside the window. Ends are
// inclusive: a 09:00-17:00 window accepts a 17:00 booking.
func (w AvailabilityWindow) Contains(t time.Time) bool {
	if int(t.Weekday()) != w.DayOfWeek {
		return false
	}
	start, err := MinuteOfDay(w.StartTime)
	if err != nil {
		return false
	}
	end, err := MinuteOfDay(w.EndTime)
	if err != nil {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return start <= minute && minute <= end
}
