package schedule

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("02/03/2026")
	if err != nil {
		t.Fatalf("ParseDate err: %v", err)
	}
	if got.Day() != 2 || got.Month() != time.March || got.Year() != 2026 {
		t.Fatalf("unexpected date: %v", got)
	}
}

func TestParseDateRejectsBadInput(t *testing.T) {
	bad := []string{
		"31/02/2099", // impossible calendar date
		"2026-03-02", // wrong shape
		"2/3/2026",   // missing zero padding
		"ab/cd/efgh", // non-numeric
		"02/03/26",   // two-digit year
		"",
	}
	for _, s := range bad {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) expected error", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	now := time.Date(2026, 2, 25, 15, 0, 0, 0, TimeZone)

	if !IsValidDate("25/02/2026", now) {
		t.Error("same-day date should be valid")
	}
	if !IsValidDate("02/03/2026", now) {
		t.Error("future date should be valid")
	}
	if IsValidDate("24/02/2026", now) {
		t.Error("past date should be invalid")
	}
	if IsValidDate("31/02/2099", now) {
		t.Error("impossible date should be invalid")
	}
}

func TestIsWeekend(t *testing.T) {
	if !IsWeekend("28/02/2026") { // Saturday
		t.Error("Saturday should be a weekend")
	}
	if !IsWeekend("01/03/2026") { // Sunday
		t.Error("Sunday should be a weekend")
	}
	if IsWeekend("02/03/2026") { // Monday
		t.Error("Monday should not be a weekend")
	}
	// Unparsable input is deliberately treated as non-weekend.
	if IsWeekend("not-a-date") {
		t.Error("unparsable date should not count as weekend")
	}
}

func TestSlotStart(t *testing.T) {
	got, err := SlotStart("02/03/2026", "09:30")
	if err != nil {
		t.Fatalf("SlotStart err: %v", err)
	}
	want := time.Date(2026, 3, 2, 9, 30, 0, 0, TimeZone)
	if !got.Equal(want) {
		t.Fatalf("unexpected start: got %v want %v", got, want)
	}

	if _, err := SlotStart("02/03/2026", "9am"); err == nil {
		t.Fatal("expected error for bad time label")
	}
}
