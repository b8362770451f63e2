package schedule

import (
	"context"
	"fmt"
	"time"

	bookingRepo "janjitemu/database/repository/booking"
)

// Availability resolves which slots remain free for a date and officer by
// combining the static office-hours policy with the live booking store.
type Availability struct {
	Repo bookingRepo.BookingRepository
}

// IsSlotAvailable reports whether the given slot can still be booked. It is
// false for an invalid or past date, for a weekend, and for a slot that an
// existing record already occupies for that exact (date, time, officer).
func (a *Availability) IsSlotAvailable(ctx context.Context, date, timeLabel, officer string, now time.Time) (bool, error) {
	if !IsValidDate(date, now) {
		return false, nil
	}
	if IsWeekend(date) {
		return false, nil
	}

	booked, err := a.Repo.ListByDateOfficer(ctx, date, officer)
	if err != nil {
		return false, fmt.Errorf("failed to check slot occupancy: %w", err)
	}
	for _, b := range booked {
		if b.Time == timeLabel {
			return false, nil
		}
	}
	return true, nil
}

// OpenSlots returns the policy slots for the date minus those already booked
// for the officer, preserving policy order. Weekends yield an empty list.
func (a *Availability) OpenSlots(ctx context.Context, date, officer string) ([]string, error) {
	candidates := AvailableSlots(date)
	if len(candidates) == 0 {
		return nil, nil
	}

	booked, err := a.Repo.ListByDateOfficer(ctx, date, officer)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b.Time] = true
	}

	var open []string
	for _, slot := range candidates {
		if !taken[slot] {
			open = append(open, slot)
		}
	}
	return open, nil
}

// Remaining filters an already-offered slot list against the live store,
// used when a chosen slot turns out taken between prompt and reply.
func (a *Availability) Remaining(ctx context.Context, offered []string, date, officer string) ([]string, error) {
	booked, err := a.Repo.ListByDateOfficer(ctx, date, officer)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b.Time] = true
	}

	var remaining []string
	for _, slot := range offered {
		if !taken[slot] {
			remaining = append(remaining, slot)
		}
	}
	return remaining, nil
}
