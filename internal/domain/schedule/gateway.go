package schedule

import "context"

// Gateway is the remote Care360 API surface the mutation engine depends on.
// The concrete implementation lives in internal/api; tests supply mocks.
type Gateway interface {
	// FetchAvailability returns the declared consultation locations and the
	// raw availability records that Aggregate reconciles.
	FetchAvailability(ctx context.Context) ([]ConsultationLocation, []AvailabilityRecord, error)

	// CreateSlot posts one new slot for a location and returns the slot as
	// the server accepted it, including any assigned identity.
	CreateSlot(ctx context.Context, loc ConsultationLocation, slot TimeSlot) (TimeSlot, error)

	// RemoveSlot deletes one posted, unbooked slot. Irrecoverable once issued.
	RemoveSlot(ctx context.Context, loc ConsultationLocation, slot TimeSlot) error

	// CreateLocation registers a new consultation location for the doctor.
	CreateLocation(ctx context.Context, loc ConsultationLocation) error

	// SaveLocation updates an existing consultation location's details.
	SaveLocation(ctx context.Context, loc ConsultationLocation) error

	// Book places a patient booking against one of the doctor's slots.
	Book(ctx context.Context, doctorID string, loc ConsultationLocation, slot TimeSlot, reason string) (Booking, error)
}

// Booking is the server's answer to a successful Book call.
type Booking struct {
	AppointmentID string
	DoctorName    string
}
