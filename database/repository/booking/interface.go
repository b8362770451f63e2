// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"

	"janjitemu/models"
)

// ErrSlotTaken is returned by Append when a confirmed record already exists
// for the same (date, time, officer).
var ErrSlotTaken = errors.New("slot already booked for this date, time and officer")

// BookingRepository is the append-only store of confirmed appointment records.
type BookingRepository interface {
	// Append durably adds one confirmed record.
	Append(ctx context.Context, booking models.Booking) error
	// ListAll returns every record in the store.
	ListAll(ctx context.Context) ([]models.Booking, error)
	// ListByDateOfficer returns the records for one date and officer.
	ListByDateOfficer(ctx context.Context, date, officer string) ([]models.Booking, error)
}
