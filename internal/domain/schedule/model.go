package schedule

import (
	"fmt"
	"strings"
	"time"
)

// ConsultationLocation is a physical place where a doctor sees patients.
// Client-side identity is the (name, address) composite: the upstream data
// shape names the location inline inside each availability record instead of
// carrying a foreign key, and a server-assigned id may not exist yet for a
// location created in the current session.
type ConsultationLocation struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
}

// Key returns the composite join key used throughout the aggregator and the
// mutation engine.
func (l ConsultationLocation) Key() string {
	return l.Name + "-" + l.Address
}

// Complete reports whether all four user-supplied fields are non-empty after
// trimming whitespace.
func (l ConsultationLocation) Complete() bool {
	return strings.TrimSpace(l.Name) != "" &&
		strings.TrimSpace(l.Address) != "" &&
		strings.TrimSpace(l.City) != "" &&
		strings.TrimSpace(l.State) != ""
}

// TimeSlot is one addressable half-hour block on a calendar day. Equality is
// by value, never by id, so slots awaiting a server-assigned identity compare
// correctly against persisted ones.
type TimeSlot struct {
	ID        string `json:"_id,omitempty"`
	Date      string `json:"date"` // calendar day, YYYY-MM-DD
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsBooked  bool   `json:"isBooked"`
}

// Matches reports value identity within a location: date, start time and end
// time all equal.
func (s TimeSlot) Matches(other TimeSlot) bool {
	return s.Date == other.Date &&
		s.StartTime == other.StartTime &&
		s.EndTime == other.EndTime
}

// Available reports whether the slot can still be booked.
func (s TimeSlot) Available() bool { return !s.IsBooked }

// Window formats the slot as "HH:MM - HH:MM" for display.
func (s TimeSlot) Window() string {
	return s.StartTime + " - " + s.EndTime
}

// AvailabilityGroup is the derived per-location grouping of all known slots.
// It is produced by Aggregate and mutated only by the Service.
type AvailabilityGroup struct {
	Location ConsultationLocation `json:"location"`
	Slots    []TimeSlot           `json:"slots"`
}

const (
	clinicOpenHour  = 8
	clinicCloseHour = 18
)

// DaySlots returns the fixed grid of 20 half-hour windows between 08:00 and
// 18:00 that a doctor may post for any single day. Date and booked state are
// left zero; callers fill them in.
func DaySlots() []TimeSlot {
	slots := make([]TimeSlot, 0, (clinicCloseHour-clinicOpenHour)*2)
	for hour := clinicOpenHour; hour < clinicCloseHour; hour++ {
		slots = append(slots,
			TimeSlot{StartTime: fmt.Sprintf("%02d:00", hour), EndTime: fmt.Sprintf("%02d:30", hour)},
			TimeSlot{StartTime: fmt.Sprintf("%02d:30", hour), EndTime: fmt.Sprintf("%02d:00", hour+1)},
		)
	}
	return slots
}

const dayFormat = "2006-01-02"

// NormalizeDate reduces an incoming timestamp to its calendar day so that two
// slots differing only in sub-day timestamp noise group under the same day.
// Accepts RFC 3339 timestamps and bare YYYY-MM-DD strings; anything else is
// returned unchanged.
func NormalizeDate(raw string) string {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format(dayFormat)
	}
	if len(raw) >= len(dayFormat) {
		if _, err := time.Parse(dayFormat, raw[:len(dayFormat)]); err == nil {
			return raw[:len(dayFormat)]
		}
	}
	return raw
}

// ParseDay parses a YYYY-MM-DD calendar day.
func ParseDay(day string) (time.Time, error) {
	return time.Parse(dayFormat, day)
}
