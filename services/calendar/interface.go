package calendar

import (
	"context"

	"janjitemu/models"
)

// EventCreator pushes a confirmed appointment onto the assigned officer's
// calendar. Creation is best-effort: callers log failures and move on, the
// booking record is already durable by the time this runs.
type EventCreator interface {
	CreateEvent(ctx context.Context, booking models.Booking) error
}

// Noop is an EventCreator that does nothing, for running without Google
// credentials and for tests.
type Noop struct{}

func (Noop) CreateEvent(context.Context, models.Booking) error { return nil }
