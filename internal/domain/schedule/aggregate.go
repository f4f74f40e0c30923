package schedule

// AvailabilityRecord is one upstream availability document: a consultation
// location named inline plus the time slots posted for a single date. The
// record's date is authoritative for every slot it carries.
type AvailabilityRecord struct {
	Location  ConsultationLocation `json:"consultationLocation"`
	Date      string               `json:"date"`
	TimeSlots []TimeSlot           `json:"timeSlots"`
}

// Aggregate merges a doctor's declared consultation locations with posted
// availability records into per-location groups.
//
// Locations keep their declared order; a re-declared composite key updates
// the existing group's details in place. Records whose embedded location key
// was never declared are dropped silently; orphaned data is a defined edge
// case, not an error. Slot dates are normalized to the calendar day of the
// record; within a group, slots retain incoming order.
//
// Inputs are never mutated and the function is pure: identical input yields
// structurally equal output.
func Aggregate(locations []ConsultationLocation, records []AvailabilityRecord) []AvailabilityGroup {
	index := make(map[string]int, len(locations))
	groups := make([]AvailabilityGroup, 0, len(locations))
	for _, loc := range locations {
		key := loc.Key()
		if i, ok := index[key]; ok {
			groups[i].Location = loc
			continue
		}
		index[key] = len(groups)
		groups = append(groups, AvailabilityGroup{Location: loc, Slots: []TimeSlot{}})
	}

	for _, rec := range records {
		i, ok := index[rec.Location.Key()]
		if !ok {
			continue
		}
		day := NormalizeDate(rec.Date)
		for _, slot := range rec.TimeSlots {
			groups[i].Slots = append(groups[i].Slots, TimeSlot{
				ID:        slot.ID,
				Date:      day,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
				IsBooked:  slot.IsBooked,
			})
		}
	}
	return groups
}

// GroupByDate reshapes a group's slots into per-day buckets for display.
// Days appear in first-seen order; slots keep incoming order within a day.
// This is a presentation helper, not an aggregation guarantee.
func GroupByDate(slots []TimeSlot) ([]string, map[string][]TimeSlot) {
	var days []string
	byDay := make(map[string][]TimeSlot)
	for _, s := range slots {
		if _, ok := byDay[s.Date]; !ok {
			days = append(days, s.Date)
		}
		byDay[s.Date] = append(byDay[s.Date], s)
	}
	return days, byDay
}
