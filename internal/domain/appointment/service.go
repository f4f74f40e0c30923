package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAlreadyCancelled    = errors.New("appointment is already cancelled")
	ErrNotCancelable       = errors.New("appointments can only be cancelled before their date")
)

// Gateway is the remote appointment surface the service drives.
type Gateway interface {
	ListAppointments(ctx context.Context) ([]Appointment, error)
	CancelAppointment(ctx context.Context, id string) error
}

// Service holds a patient's appointment list and applies the cancellation
// policy. As with availability, local state mutates only after the remote
// call succeeds.
type Service struct {
	gateway      Gateway
	appointments []Appointment
	now          func() time.Time
}

type Option func(*Service)

// WithClock overrides the wall clock, fixing "today" for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(gw Gateway, opts ...Option) *Service {
	s := &Service{gateway: gw, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh replaces the local list with the server's.
func (s *Service) Refresh(ctx context.Context) error {
	list, err := s.gateway.ListAppointments(ctx)
	if err != nil {
		return fmt.Errorf("fetch appointments: %w", err)
	}
	s.appointments = list
	return nil
}

// Appointments returns a copy of the current list.
func (s *Service) Appointments() []Appointment {
	out := make([]Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

func (s *Service) find(id string) *Appointment {
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			return &s.appointments[i]
		}
	}
	return nil
}

// CanCancel reports whether the appointment exists, is still scheduled, and
// falls strictly after today.
func (s *Service) CanCancel(id string) bool {
	appt := s.find(id)
	if appt == nil || !appt.Scheduled() {
		return false
	}
	return CancelableOn(appt.Day(), s.now())
}

// Cancel requests cancellation of the appointment. On success the status
// flips to cancelled locally; the entry stays in the list so the history
// remains visible. The freed slot is not reflected in any availability view
// held elsewhere; it reappears as available on the next availability fetch.
func (s *Service) Cancel(ctx context.Context, id string) error {
	appt := s.find(id)
	if appt == nil {
		return ErrAppointmentNotFound
	}
	if !appt.Scheduled() {
		return ErrAlreadyCancelled
	}
	if !CancelableOn(appt.Day(), s.now()) {
		return ErrNotCancelable
	}
	if err := s.gateway.CancelAppointment(ctx, id); err != nil {
		return err
	}
	appt.Status = StatusCancelled
	return nil
}
