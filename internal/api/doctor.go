package api

import (
	"context"
	"net/http"

	"github.com/care360/care360/internal/domain/appointment"
	"github.com/care360/care360/internal/domain/schedule"
)

// DoctorClient covers the signed-in doctor's own schedule management.
type DoctorClient struct {
	*Config
}

type profileResponse struct {
	Profile struct {
		ConsultationLocations   []schedule.ConsultationLocation `json:"consultationLocations"`
		UpcomingAllAppointments []schedule.AvailabilityRecord   `json:"upcomingAllAppointments"`
	} `json:"upcomingAllAppointments"`
}

// Profile fetches the doctor's declared locations and availability records.
// The outer response field shares its name with the inner record list.
func (c *DoctorClient) Profile(ctx context.Context) ([]schedule.ConsultationLocation, []schedule.AvailabilityRecord, error) {
	var res profileResponse
	if err := c.do(ctx, http.MethodGet, profilePath, nil, nil, &res); err != nil {
		return nil, nil, err
	}
	return res.Profile.ConsultationLocations, res.Profile.UpcomingAllAppointments, nil
}

type addSlotRequest struct {
	Location schedule.ConsultationLocation `json:"consultationLocation"`
	Date     string                        `json:"date"`
	Slots    []schedule.TimeSlot           `json:"timeSlots"`
}

type addSlotResponse struct {
	Availability struct {
		Date  string              `json:"date"`
		Slots []schedule.TimeSlot `json:"timeSlots"`
	} `json:"availability"`
}

// AddAvailability declares one new slot at the location. The slot the server
// stored is returned when present; otherwise the submitted slot stands.
func (c *DoctorClient) AddAvailability(ctx context.Context, loc schedule.ConsultationLocation, slot schedule.TimeSlot) (schedule.TimeSlot, error) {
	req := addSlotRequest{
		Location: loc,
		Date:     slot.Date,
		Slots:    []schedule.TimeSlot{slot},
	}
	var res addSlotResponse
	if err := c.do(ctx, http.MethodPost, addSlotPath, nil, req, &res); err != nil {
		return schedule.TimeSlot{}, err
	}
	if len(res.Availability.Slots) > 0 {
		stored := res.Availability.Slots[len(res.Availability.Slots)-1]
		if stored.Date == "" {
			stored.Date = res.Availability.Date
		}
		return stored, nil
	}
	return slot, nil
}

type deleteSlotRequest struct {
	Location struct {
		Name string `json:"name"`
	} `json:"consultationLocation"`
	Date string `json:"date"`
	Slot struct {
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	} `json:"timeSlot"`
}

// DeleteSlot removes one declared slot. The backend matches the location by
// name and the slot by its time window on the given date.
func (c *DoctorClient) DeleteSlot(ctx context.Context, loc schedule.ConsultationLocation, slot schedule.TimeSlot) error {
	var req deleteSlotRequest
	req.Location.Name = loc.Name
	req.Date = slot.Date
	req.Slot.StartTime = slot.StartTime
	req.Slot.EndTime = slot.EndTime
	return c.do(ctx, http.MethodPost, deleteSlotPath, nil, req, nil)
}

// AddConsultationLocation registers a new practice location. The backend
// expects the four fields flat in the request body, not nested.
func (c *DoctorClient) AddConsultationLocation(ctx context.Context, loc schedule.ConsultationLocation) error {
	return c.do(ctx, http.MethodPost, addLocationPath, nil, loc, nil)
}

// UpdateConsultationLocation replaces an existing location's details.
func (c *DoctorClient) UpdateConsultationLocation(ctx context.Context, loc schedule.ConsultationLocation) error {
	return c.do(ctx, http.MethodPost, saveLocationPath, nil, loc, nil)
}

type upcomingResponse struct {
	Appointments []appointment.Appointment `json:"upcomingAppointments"`
}

// UpcomingAppointments lists the doctor's booked upcoming visits.
func (c *DoctorClient) UpcomingAppointments(ctx context.Context) ([]appointment.Appointment, error) {
	var res upcomingResponse
	if err := c.do(ctx, http.MethodGet, upcomingPath, nil, nil, &res); err != nil {
		return nil, err
	}
	return res.Appointments, nil
}
