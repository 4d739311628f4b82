package util

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same instant", date(2026, 3, 14, 12), date(2026, 3, 14, 12), 0},
		{"same day different hours", date(2026, 3, 14, 1), date(2026, 3, 14, 23), 0},
		{"adjacent days close in time", date(2026, 3, 14, 23), date(2026, 3, 15, 1), 1},
		{"week apart", date(2026, 3, 14, 12), date(2026, 3, 21, 12), 7},
		{"reversed is negative", date(2026, 3, 15, 12), date(2026, 3, 14, 12), -1},
		{"month boundary", date(2026, 3, 31, 12), date(2026, 4, 1, 12), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("loading tz data: %v", err)
	}
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		// US DST begins 2026-03-08: that local day is 23 hours long.
		{"spring forward, consecutive days", time.Date(2026, 3, 8, 12, 0, 0, 0, loc), time.Date(2026, 3, 9, 12, 0, 0, 0, loc), 1},
		{"spring forward, week span", time.Date(2026, 3, 7, 12, 0, 0, 0, loc), time.Date(2026, 3, 14, 12, 0, 0, 0, loc), 7},
		// US DST ends 2026-11-01: that local day is 25 hours long.
		{"fall back, consecutive days", time.Date(2026, 11, 1, 12, 0, 0, 0, loc), time.Date(2026, 11, 2, 12, 0, 0, 0, loc), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	if !SameDay(date(2026, 3, 14, 0), date(2026, 3, 14, 23)) {
		t.Error("expected same calendar day")
	}
	if SameDay(date(2026, 3, 14, 23), date(2026, 3, 15, 0)) {
		t.Error("midnight boundary crossed, days differ")
	}
}

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}
