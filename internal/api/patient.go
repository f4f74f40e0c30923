package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/care360/care360/internal/domain/appointment"
	"github.com/care360/care360/internal/domain/schedule"
)

// PatientClient covers doctor discovery, booking and the patient's own
// appointment list.
type PatientClient struct {
	*Config
}

// The backend returns list payloads under a generic "data" key.
type doctorsResponse struct {
	Doctors []DoctorSummary `json:"data"`
}

// ListDoctors returns the public doctor directory.
func (c *PatientClient) ListDoctors(ctx context.Context) ([]DoctorSummary, error) {
	var res doctorsResponse
	if err := c.do(ctx, http.MethodGet, doctorsPath, nil, nil, &res); err != nil {
		return nil, err
	}
	return res.Doctors, nil
}

type availabilityResponse struct {
	Availability []DoctorAvailabilityRecord `json:"data"`
}

// DoctorAvailability returns a doctor's declared availability records.
func (c *PatientClient) DoctorAvailability(ctx context.Context, doctorID string) ([]DoctorAvailabilityRecord, error) {
	var res availabilityResponse
	if err := c.do(ctx, http.MethodGet, availabilityPath+url.PathEscape(doctorID), nil, nil, &res); err != nil {
		return nil, err
	}
	return res.Availability, nil
}

type bookRequest struct {
	DoctorID        string `json:"doctorId"`
	LocationName    string `json:"locationName"`
	LocationAddress string `json:"locationAddress"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Reason          string `json:"reason"`
}

type bookResponse struct {
	Appointment appointment.Appointment `json:"appointment"`
}

// BookAppointment books the slot with the doctor at the given location.
func (c *PatientClient) BookAppointment(ctx context.Context, doctorID string, loc schedule.ConsultationLocation, slot schedule.TimeSlot, reason string) (appointment.Appointment, error) {
	req := bookRequest{
		DoctorID:        doctorID,
		LocationName:    loc.Name,
		LocationAddress: loc.Address,
		Date:            slot.Date,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		Reason:          reason,
	}
	var res bookResponse
	if err := c.do(ctx, http.MethodPost, bookPath, nil, req, &res); err != nil {
		return appointment.Appointment{}, err
	}
	return res.Appointment, nil
}

type appointmentsResponse struct {
	Appointments []appointment.Appointment `json:"data"`
}

// Appointments lists the patient's appointments, past and upcoming.
func (c *PatientClient) Appointments(ctx context.Context) ([]appointment.Appointment, error) {
	var res appointmentsResponse
	if err := c.do(ctx, http.MethodGet, patientApptsPath, nil, nil, &res); err != nil {
		return nil, err
	}
	return res.Appointments, nil
}

// CancelAppointment asks the backend to cancel the appointment.
func (c *PatientClient) CancelAppointment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, bookPath+"/"+url.PathEscape(id)+"/cancel", nil, nil, nil)
}
