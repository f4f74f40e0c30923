package schedule

import (
	"reflect"
	"testing"
)

func testLocations() []ConsultationLocation {
	return []ConsultationLocation{
		{ID: "l1", Name: "City Clinic", Address: "12 Main St", City: "Springfield", State: "IL"},
		{ID: "l2", Name: "Westside", Address: "4 Oak Ave", City: "Springfield", State: "IL"},
	}
}

func TestAggregateGroupsByLocationKey(t *testing.T) {
	locs := testLocations()
	records := []AvailabilityRecord{
		{
			Location: ConsultationLocation{Name: "City Clinic", Address: "12 Main St"},
			Date:     "2025-06-10T00:00:00.000Z",
			TimeSlots: []TimeSlot{
				{StartTime: "09:00", EndTime: "09:30"},
				{StartTime: "09:30", EndTime: "10:00", IsBooked: true},
			},
		},
		{
			Location:  ConsultationLocation{Name: "City Clinic", Address: "12 Main St"},
			Date:      "2025-06-11",
			TimeSlots: []TimeSlot{{StartTime: "14:00", EndTime: "14:30"}},
		},
	}

	groups := Aggregate(locs, records)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Location.Name != "City Clinic" || groups[1].Location.Name != "Westside" {
		t.Errorf("groups out of declared order: %q, %q", groups[0].Location.Name, groups[1].Location.Name)
	}
	if len(groups[0].Slots) != 3 {
		t.Fatalf("City Clinic has %d slots, want 3", len(groups[0].Slots))
	}
	if groups[0].Slots[0].Date != "2025-06-10" {
		t.Errorf("slot date = %q, want normalized 2025-06-10", groups[0].Slots[0].Date)
	}
	if !groups[0].Slots[1].IsBooked {
		t.Error("booked flag lost during aggregation")
	}
	if len(groups[1].Slots) != 0 {
		t.Errorf("Westside should have no slots, got %d", len(groups[1].Slots))
	}
}

func TestAggregateDropsOrphanRecords(t *testing.T) {
	records := []AvailabilityRecord{
		{
			Location:  ConsultationLocation{Name: "Ghost", Address: "nowhere"},
			Date:      "2025-06-10",
			TimeSlots: []TimeSlot{{StartTime: "09:00", EndTime: "09:30"}},
		},
	}
	groups := Aggregate(testLocations(), records)
	for _, g := range groups {
		if len(g.Slots) != 0 {
			t.Errorf("orphan record leaked into group %q", g.Location.Name)
		}
	}
}

func TestAggregateRedeclaredKeyUpdatesDetails(t *testing.T) {
	locs := []ConsultationLocation{
		{Name: "City Clinic", Address: "12 Main St", City: "Old Town"},
		{Name: "City Clinic", Address: "12 Main St", City: "Springfield", State: "IL"},
	}
	groups := Aggregate(locs, nil)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1 for duplicate key", len(groups))
	}
	if groups[0].Location.City != "Springfield" {
		t.Errorf("later declaration should win, got city %q", groups[0].Location.City)
	}
}

func TestAggregateIsPure(t *testing.T) {
	locs := testLocations()
	records := []AvailabilityRecord{
		{
			Location:  ConsultationLocation{Name: "City Clinic", Address: "12 Main St"},
			Date:      "2025-06-10T08:00:00Z",
			TimeSlots: []TimeSlot{{StartTime: "09:00", EndTime: "09:30"}},
		},
	}

	first := Aggregate(locs, records)
	second := Aggregate(locs, records)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input produced different output")
	}

	// The record's own timestamp must survive aggregation untouched.
	if records[0].Date != "2025-06-10T08:00:00Z" {
		t.Errorf("input record mutated: date = %q", records[0].Date)
	}
	if records[0].TimeSlots[0].Date != "" {
		t.Errorf("input slot mutated: date = %q", records[0].TimeSlots[0].Date)
	}
}

func TestGroupByDateKeepsFirstSeenOrder(t *testing.T) {
	slots := []TimeSlot{
		{Date: "2025-06-11", StartTime: "09:00", EndTime: "09:30"},
		{Date: "2025-06-10", StartTime: "10:00", EndTime: "10:30"},
		{Date: "2025-06-11", StartTime: "14:00", EndTime: "14:30"},
	}
	days, byDay := GroupByDate(slots)
	if !reflect.DeepEqual(days, []string{"2025-06-11", "2025-06-10"}) {
		t.Errorf("days = %v, want first-seen order", days)
	}
	if len(byDay["2025-06-11"]) != 2 || len(byDay["2025-06-10"]) != 1 {
		t.Errorf("unexpected bucket sizes: %v", byDay)
	}
}
