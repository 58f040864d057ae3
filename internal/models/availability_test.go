package models

import (
	"testing"
	"time"
)

func TestWindowsOverlap(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		want           bool
	}{
		{"disjoint", 540, 600, 660, 720, false},
		{"touching ends do not overlap", 540, 600, 600, 660, false},
		{"partial", 540, 620, 600, 660, true},
		{"contained", 540, 720, 600, 660, true},
		{"identical", 540, 600, 540, 600, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WindowsOverlap(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("WindowsOverlap(%d,%d,%d,%d) = %v, want %v",
					tt.s1, tt.e1, tt.s2, tt.e2, got, tt.want)
			}
			// Overlap is symmetric.
			if got := WindowsOverlap(tt.s2, tt.e2, tt.s1, tt.e1); got != tt.want {
				t.Errorf("WindowsOverlap symmetric case = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWindowValidate(t *testing.T) {
	valid := AvailabilityWindow{StartTime: "09:00", EndTime: "17:00"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid window rejected: %v", err)
	}

	bad := []AvailabilityWindow{
		{StartTime: "17:00", EndTime: "09:00"},
		{StartTime: "09:00", EndTime: "09:00"},
		{StartTime: "not-a-time", EndTime: "17:00"},
	}
	for i, w := range bad {
		if err := w.Validate(); err != ErrInvalidRange {
			t.Fatalf("case %d: got %v, want ErrInvalidRange", i, err)
		}
	}
}

func TestWindowContains(t *testing.T) {
	// Sunday=0 convention: 2026-08-30 is a Sunday.
	w := AvailabilityWindow{DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"}

	at := func(hour, min int) time.Time {
		return time.Date(2026, 8, 30, hour, min, 0, 0, time.UTC)
	}

	if !w.Contains(at(12, 30)) {
		t.Error("midday should be inside the window")
	}
	if !w.Contains(at(9, 0)) {
		t.Error("start is inclusive")
	}
	if !w.Contains(at(17, 0)) {
		t.Error("end is inclusive")
	}
	if w.Contains(at(17, 1)) {
		t.Error("one minute past the end should be outside")
	}
	if w.Contains(time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)) {
		t.Error("Monday timestamp should not match a Sunday window")
	}
}

func TestParseDailyTime(t *testing.T) {
	for _, v := range []string{"09:00", "09:00:00", "23:59"} {
		if _, err := ParseDailyTime(v); err != nil {
			t.Errorf("ParseDailyTime(%q) failed: %v", v, err)
		}
	}
	for _, v := range []string{"25:00", "9am", ""} {
		if _, err := ParseDailyTime(v); err == nil {
			t.Errorf("ParseDailyTime(%q) should fail", v)
		}
	}
}
