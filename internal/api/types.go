package api

import (
	"github.com/care360/care360/internal/domain/appointment"
	"github.com/care360/care360/internal/domain/schedule"
)

// Backend routes, relative to the /api base. The upcoming-appointments path
// keeps the misspelling the backend ships with.
const (
	registerPath     = "/auth/register"
	loginPath        = "/auth/login"
	verifyPath       = "/auth/verify"
	doctorsPath      = "/doctors"
	availabilityPath = "/availability/doctor/"
	profilePath      = "/doctors/doctor/profile"
	addSlotPath      = "/availability"
	deleteSlotPath   = "/doctors/doctor/delete-slot"
	addLocationPath  = "/doctors/addConsultantLocation"
	saveLocationPath = "/doctors/doctor/update-location"
	upcomingPath     = "/doctors/getAppointment/upcomming"
	patientApptsPath = "/patients/appointments"
	bookPath         = "/appointments"
)

// Address is a doctor's practice address as listed in the directory.
type Address struct {
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
}

// DoctorSummary is a directory entry from GET /doctors.
type DoctorSummary struct {
	ID         string           `json:"_id"`
	User       appointment.User `json:"user"`
	Specialty  string           `json:"specialty"`
	Experience int              `json:"experience,omitempty"`
	Fees       int              `json:"fees,omitempty"`
	Address    Address          `json:"address"`
}

// DoctorDetail extends the summary with the doctor's consultation locations,
// as returned inside availability records.
type DoctorDetail struct {
	DoctorSummary
	ConsultationLocations []schedule.ConsultationLocation `json:"consultationLocations"`
}

// DoctorAvailabilityRecord is one declared availability day in a public
// feed, carrying the owning doctor alongside the schedule record.
type DoctorAvailabilityRecord struct {
	ID       string                        `json:"_id"`
	Doctor   DoctorDetail                  `json:"doctor"`
	Location schedule.ConsultationLocation `json:"consultationLocation"`
	Date     string                        `json:"date"`
	Slots    []schedule.TimeSlot           `json:"timeSlots"`
}

// Record converts the wire form to the schedule-level record.
func (r DoctorAvailabilityRecord) Record() schedule.AvailabilityRecord {
	return schedule.AvailabilityRecord{
		Location:  r.Location,
		Date:      r.Date,
		TimeSlots: r.Slots,
	}
}
