package schedule

import "time"

// OfficeHours maps a weekday to its ordered bookable slot labels. Friday ends
// the morning session at 10:30 to leave room for prayers; Saturday and Sunday
// have no slots at all.
var OfficeHours = map[time.Weekday][]string{
	time.Monday:    {"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "14:00", "14:30", "15:00", "15:30", "16:00"},
	time.Tuesday:   {"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "14:00", "14:30", "15:00", "15:30", "16:00"},
	time.Wednesday: {"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "14:00", "14:30", "15:00", "15:30", "16:00"},
	time.Thursday:  {"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "14:00", "14:30", "15:00", "15:30", "16:00"},
	time.Friday:    {"09:00", "09:30", "10:00", "10:30", "14:00", "14:30", "15:00", "15:30", "16:00"},
}

// SlotsFor returns the configured slot labels for a weekday. Weekends and any
// unconfigured day yield an empty list.
func SlotsFor(wd time.Weekday) []string {
	return OfficeHours[wd]
}

// AvailableSlots returns the policy slot labels for the given "DD/MM/YYYY"
// date. An unparsable date yields an empty list rather than an error.
func AvailableSlots(dateStr string) []string {
	t, err := ParseDate(dateStr)
	if err != nil {
		return nil
	}
	return SlotsFor(t.Weekday())
}
