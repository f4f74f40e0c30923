package appointment

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCancelable(t *testing.T) {
	today := time.Date(2025, 6, 9, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"tomorrow", day(2025, 6, 10), true},
		{"next week", day(2025, 6, 16), true},
		{"same day", day(2025, 6, 9), false},
		{"same day later hour", time.Date(2025, 6, 9, 23, 0, 0, 0, time.UTC), false},
		{"yesterday", day(2025, 6, 8), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cancelable(tt.date, today); got != tt.want {
				t.Errorf("Cancelable(%s) = %v, want %v", tt.date.Format(dayFormat), got, tt.want)
			}
		})
	}
}

func TestCancelableOnMatchesTimeForm(t *testing.T) {
	today := time.Date(2025, 6, 9, 15, 30, 0, 0, time.UTC)
	for _, d := range []string{"2025-06-08", "2025-06-09", "2025-06-10", "2025-07-01"} {
		parsed, err := time.Parse(dayFormat, d)
		if err != nil {
			t.Fatal(err)
		}
		if CancelableOn(d, today) != Cancelable(parsed, today) {
			t.Errorf("CancelableOn(%s) disagrees with Cancelable", d)
		}
	}
}
