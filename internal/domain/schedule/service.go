package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors reported by the mutation engine. None of these ever
// reach the network: callers gate the action (disable the control, block the
// submission) before a remote call is issued.
var (
	ErrLocationNotFound = errors.New("consultation location not found")
	ErrSlotNotFound     = errors.New("slot not found")
	ErrSlotExists       = errors.New("slot already exists")
	ErrSlotBooked       = errors.New("slot is already booked")
	ErrPastDate         = errors.New("slot date must be after today")
	ErrEmptyReason      = errors.New("a reason for the appointment is required")
	ErrMissingFields    = errors.New("name, address, city and state are all required")
)

// Service keeps an aggregated availability view consistent with the remote
// source of truth. Local state changes only after the corresponding remote
// call succeeds; a failed call leaves the view untouched, so the worst case
// is a stale view, never a corrupt one.
type Service struct {
	gateway Gateway
	groups  []AvailabilityGroup
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock, fixing "today" for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a Service with an empty view. Call Refresh to load the
// authoritative state before mutating.
func NewService(gw Gateway, opts ...Option) *Service {
	s := &Service{gateway: gw, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh re-runs the full fetch+aggregate cycle, replacing the local view
// with the authoritative one.
func (s *Service) Refresh(ctx context.Context) error {
	locations, records, err := s.gateway.FetchAvailability(ctx)
	if err != nil {
		return fmt.Errorf("fetch availability: %w", err)
	}
	s.groups = Aggregate(locations, records)
	return nil
}

// Groups returns a copy of the current per-location view.
func (s *Service) Groups() []AvailabilityGroup {
	out := make([]AvailabilityGroup, len(s.groups))
	for i, g := range s.groups {
		slots := make([]TimeSlot, len(g.Slots))
		copy(slots, g.Slots)
		out[i] = AvailabilityGroup{Location: g.Location, Slots: slots}
	}
	return out
}

func (s *Service) findGroup(locationKey string) *AvailabilityGroup {
	for i := range s.groups {
		if s.groups[i].Location.Key() == locationKey {
			return &s.groups[i]
		}
	}
	return nil
}

// today is the current calendar day in the clock's location, as YYYY-MM-DD.
// Day strings compare correctly lexicographically.
func (s *Service) today() string {
	return s.now().Format(dayFormat)
}

// AddSlot posts a new half-hour slot for the location identified by
// locationKey. The day must be strictly later than today (the minimum
// selectable day is tomorrow) and no slot with the same window may already
// exist on that day. On success the slot the server accepted is appended to
// the group, unbooked.
func (s *Service) AddSlot(ctx context.Context, locationKey, day, startTime, endTime string) (TimeSlot, error) {
	group := s.findGroup(locationKey)
	if group == nil {
		return TimeSlot{}, ErrLocationNotFound
	}
	if _, err := ParseDay(day); err != nil {
		return TimeSlot{}, fmt.Errorf("invalid date %q: %w", day, err)
	}
	if day <= s.today() {
		return TimeSlot{}, ErrPastDate
	}
	candidate := TimeSlot{Date: day, StartTime: startTime, EndTime: endTime}
	for _, existing := range group.Slots {
		if existing.Matches(candidate) {
			return TimeSlot{}, ErrSlotExists
		}
	}

	created, err := s.gateway.CreateSlot(ctx, group.Location, candidate)
	if err != nil {
		return TimeSlot{}, err
	}
	if created.Date == "" {
		created.Date = day
	}
	created.Date = NormalizeDate(created.Date)
	created.IsBooked = false
	group.Slots = append(group.Slots, created)
	return created, nil
}

// DeleteSlot removes exactly the slot matching (date, startTime, endTime)
// within the location's slot list. Booked slots are never deletable through
// this path; the caller must obtain explicit user confirmation before
// invoking, because the remote call is irrecoverable.
func (s *Service) DeleteSlot(ctx context.Context, locationKey string, slot TimeSlot) error {
	group := s.findGroup(locationKey)
	if group == nil {
		return ErrLocationNotFound
	}
	idx := -1
	for i, existing := range group.Slots {
		if existing.Matches(slot) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrSlotNotFound
	}
	if group.Slots[idx].IsBooked {
		return ErrSlotBooked
	}

	if err := s.gateway.RemoveSlot(ctx, group.Location, group.Slots[idx]); err != nil {
		return err
	}
	group.Slots = append(group.Slots[:idx], group.Slots[idx+1:]...)
	return nil
}

// BookingConfirmation summarizes a successful booking for display.
type BookingConfirmation struct {
	AppointmentID string
	DoctorName    string
	Date          string
	StartTime     string
	EndTime       string
	Reason        string
}

// Message renders the human-readable confirmation shown after booking.
func (c BookingConfirmation) Message() string {
	return fmt.Sprintf("Booking confirmed for Dr. %s at %s on %s with the reason: %q",
		c.DoctorName, c.StartTime, c.Date, c.Reason)
}

// BookSlot books an available slot with the given doctor. The reason must be
// non-empty after trimming; otherwise the request is rejected locally and no
// remote call is issued. On success the slot transitions to booked and stays
// booked: there is no unbook operation, and canceling the resulting
// appointment is a separate lifecycle that does not free the slot here.
func (s *Service) BookSlot(ctx context.Context, doctorID, locationKey string, slot TimeSlot, reason string) (BookingConfirmation, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return BookingConfirmation{}, ErrEmptyReason
	}
	group := s.findGroup(locationKey)
	if group == nil {
		return BookingConfirmation{}, ErrLocationNotFound
	}
	idx := -1
	for i, existing := range group.Slots {
		if existing.Matches(slot) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return BookingConfirmation{}, ErrSlotNotFound
	}
	if group.Slots[idx].IsBooked {
		return BookingConfirmation{}, ErrSlotBooked
	}

	booking, err := s.gateway.Book(ctx, doctorID, group.Location, group.Slots[idx], reason)
	if err != nil {
		return BookingConfirmation{}, err
	}
	group.Slots[idx].IsBooked = true
	return BookingConfirmation{
		AppointmentID: booking.AppointmentID,
		DoctorName:    booking.DoctorName,
		Date:          group.Slots[idx].Date,
		StartTime:     group.Slots[idx].StartTime,
		EndTime:       group.Slots[idx].EndTime,
		Reason:        reason,
	}, nil
}

// AddLocation registers a new consultation location. All four fields are
// required after trimming. The server may normalize details or assign an id
// beyond what was sent, so on success the full fetch+aggregate cycle runs
// instead of appending locally, avoiding local/remote drift.
func (s *Service) AddLocation(ctx context.Context, loc ConsultationLocation) error {
	if !loc.Complete() {
		return ErrMissingFields
	}
	if err := s.gateway.CreateLocation(ctx, loc); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// UpdateLocation replaces the details of the group identified by locationKey.
// All four fields are required; the group's slots are preserved untouched.
func (s *Service) UpdateLocation(ctx context.Context, locationKey string, details ConsultationLocation) error {
	if !details.Complete() {
		return ErrMissingFields
	}
	group := s.findGroup(locationKey)
	if group == nil {
		return ErrLocationNotFound
	}
	if err := s.gateway.SaveLocation(ctx, details); err != nil {
		return err
	}
	if details.ID == "" {
		details.ID = group.Location.ID
	}
	group.Location = details
	return nil
}
