package appointment

import (
	"strings"

	"github.com/care360/care360/internal/domain/schedule"
)

// Appointment lifecycle states as they appear on the wire.
const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

// User is the account identity shared by doctors and patients.
type User struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// FullName joins the name parts, tolerating a missing one.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Doctor is the provider side of an appointment.
type Doctor struct {
	ID        string `json:"_id"`
	User      User   `json:"user"`
	Specialty string `json:"specialty,omitempty"`
}

// Patient is the booking side of an appointment.
type Patient struct {
	ID   string `json:"_id"`
	User User   `json:"user"`
}

// Appointment is a booked visit tying a patient to a doctor's slot.
type Appointment struct {
	ID        string                        `json:"_id"`
	Doctor    Doctor                        `json:"doctor"`
	Patient   *Patient                      `json:"patient,omitempty"`
	Location  schedule.ConsultationLocation `json:"consultationLocation"`
	Date      string                        `json:"date"`
	StartTime string                        `json:"startTime"`
	EndTime   string                        `json:"endTime"`
	Reason    string                        `json:"reason"`
	Status    string                        `json:"status"`
}

// Scheduled reports whether the appointment is still active.
func (a Appointment) Scheduled() bool {
	return a.Status != StatusCancelled
}

// Day returns the appointment date normalized to YYYY-MM-DD.
func (a Appointment) Day() string {
	return schedule.NormalizeDate(a.Date)
}
