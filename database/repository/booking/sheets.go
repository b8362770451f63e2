// File: database/repository/booking/sheets.go
package bookingRepo

import (
	"context"
	"fmt"

	"janjitemu/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Column order of the backing sheet. Row one is the header.
// [UserId, Name, Phone, Email, Officer, Purpose, Date, Time, Status]
const sheetColumnSpan = "A:I"

type sheetsBookingRepo struct {
	svc       *sheets.Service
	sheetID   string
	sheetName string
}

// NewSheetsBookingRepo returns a BookingRepository backed by a Google Sheet,
// authenticated with service-account credentials JSON.
func NewSheetsBookingRepo(ctx context.Context, credsJSON []byte, sheetID, sheetName string) (BookingRepository, error) {
	svc, err := sheets.NewService(ctx, option.WithCredentialsJSON(credsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets service: %w", err)
	}
	return &sheetsBookingRepo{
		svc:       svc,
		sheetID:   sheetID,
		sheetName: sheetName,
	}, nil
}

// Append adds one confirmed row at the bottom of the sheet. The sheet cannot
// enforce slot uniqueness on write; callers must re-check availability first.
func (r *sheetsBookingRepo) Append(ctx context.Context, booking models.Booking) error {
	if booking.Status == "" {
		booking.Status = models.BookingStatusConfirmed
	}
	vr := &sheets.ValueRange{
		Values: [][]interface{}{bookingToRow(booking)},
	}
	_, err := r.svc.Spreadsheets.Values.
		Append(r.sheetID, r.sheetName+"!"+sheetColumnSpan, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append booking row: %w", err)
	}
	return nil
}

// ListAll performs a full scan of the sheet, skipping the header row.
func (r *sheetsBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	resp, err := r.svc.Spreadsheets.Values.
		Get(r.sheetID, r.sheetName+"!"+sheetColumnSpan).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read booking rows: %w", err)
	}

	var bookings []models.Booking
	for i, row := range resp.Values {
		if i == 0 {
			continue // header
		}
		bookings = append(bookings, rowToBooking(row))
	}
	return bookings, nil
}

// ListByDateOfficer filters client-side; the sheet backend pushes nothing down.
func (r *sheetsBookingRepo) ListByDateOfficer(ctx context.Context, date, officer string) ([]models.Booking, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var bookings []models.Booking
	for _, b := range all {
		if b.Date == date && b.Officer == officer {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func bookingToRow(b models.Booking) []interface{} {
	return []interface{}{b.UserID, b.Name, b.Phone, b.Email, b.Officer, b.Purpose, b.Date, b.Time, b.Status}
}

func rowToBooking(row []interface{}) models.Booking {
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		s, _ := row[i].(string)
		return s
	}
	return models.Booking{
		UserID:  cell(0),
		Name:    cell(1),
		Phone:   cell(2),
		Email:   cell(3),
		Officer: cell(4),
		Purpose: cell(5),
		Date:    cell(6),
		Time:    cell(7),
		Status:  cell(8),
	}
}
