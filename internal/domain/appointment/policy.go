package appointment

import "time"

const dayFormat = "2006-01-02"

// midnight truncates t to the start of its calendar day in t's location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Cancelable reports whether an appointment on the given date may still be
// cancelled as of today. Only appointments strictly in the future qualify:
// same-day appointments are already locked in, so the comparison is on
// calendar days, not instants.
func Cancelable(appointmentDate, today time.Time) bool {
	return midnight(today).Before(midnight(appointmentDate))
}

// CancelableOn is the day-string form of Cancelable for dates already
// normalized to YYYY-MM-DD, which compare correctly as strings.
func CancelableOn(day string, today time.Time) bool {
	return today.Format(dayFormat) < day
}
