package api

import (
	"context"

	"github.com/care360/care360/internal/domain/appointment"
	"github.com/care360/care360/internal/domain/schedule"
)

// ScheduleGateway adapts the API clients to the schedule.Gateway interface.
// With DoctorID unset it serves the signed-in doctor's own schedule; with
// ForDoctor it serves a doctor's public feed to a patient.
type ScheduleGateway struct {
	Doctor   *DoctorClient
	Patient  *PatientClient
	DoctorID string
}

// ForDoctor returns a copy scoped to the given doctor's public availability.
func (g *ScheduleGateway) ForDoctor(id string) *ScheduleGateway {
	cp := *g
	cp.DoctorID = id
	return &cp
}

var _ schedule.Gateway = (*ScheduleGateway)(nil)

func (g *ScheduleGateway) FetchAvailability(ctx context.Context) ([]schedule.ConsultationLocation, []schedule.AvailabilityRecord, error) {
	if g.DoctorID == "" {
		return g.Doctor.Profile(ctx)
	}
	feed, err := g.Patient.DoctorAvailability(ctx, g.DoctorID)
	if err != nil {
		return nil, nil, err
	}
	records := make([]schedule.AvailabilityRecord, 0, len(feed))
	for _, rec := range feed {
		records = append(records, rec.Record())
	}
	// The public feed attaches the doctor's declared locations to each
	// record; any copy carries the full list.
	var locations []schedule.ConsultationLocation
	if len(feed) > 0 {
		locations = feed[0].Doctor.ConsultationLocations
	}
	return locations, records, nil
}

func (g *ScheduleGateway) CreateSlot(ctx context.Context, loc schedule.ConsultationLocation, slot schedule.TimeSlot) (schedule.TimeSlot, error) {
	return g.Doctor.AddAvailability(ctx, loc, slot)
}

func (g *ScheduleGateway) RemoveSlot(ctx context.Context, loc schedule.ConsultationLocation, slot schedule.TimeSlot) error {
	return g.Doctor.DeleteSlot(ctx, loc, slot)
}

func (g *ScheduleGateway) CreateLocation(ctx context.Context, loc schedule.ConsultationLocation) error {
	return g.Doctor.AddConsultationLocation(ctx, loc)
}

func (g *ScheduleGateway) SaveLocation(ctx context.Context, loc schedule.ConsultationLocation) error {
	return g.Doctor.UpdateConsultationLocation(ctx, loc)
}

func (g *ScheduleGateway) Book(ctx context.Context, doctorID string, loc schedule.ConsultationLocation, slot schedule.TimeSlot, reason string) (schedule.Booking, error) {
	appt, err := g.Patient.BookAppointment(ctx, doctorID, loc, slot, reason)
	if err != nil {
		return schedule.Booking{}, err
	}
	return schedule.Booking{
		AppointmentID: appt.ID,
		DoctorName:    appt.Doctor.User.FullName(),
	}, nil
}

// AppointmentGateway adapts the patient client to appointment.Gateway.
type AppointmentGateway struct {
	Patient *PatientClient
}

var _ appointment.Gateway = (*AppointmentGateway)(nil)

func (g *AppointmentGateway) ListAppointments(ctx context.Context) ([]appointment.Appointment, error) {
	return g.Patient.Appointments(ctx)
}

func (g *AppointmentGateway) CancelAppointment(ctx context.Context, id string) error {
	return g.Patient.CancelAppointment(ctx, id)
}
