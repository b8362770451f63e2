package calendar

import (
	"context"
	"fmt"
	"time"

	"janjitemu/models"
	"janjitemu/services/schedule"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Appointments are half an hour.
const eventDuration = 30 * time.Minute

// GoogleCalendar creates 30-minute appointment events on officer calendars
// through the Google Calendar API.
type GoogleCalendar struct {
	svc       *calendar.Service
	calendars map[string]string // officer code -> calendar ID
}

// NewGoogleCalendar builds an EventCreator from service-account credentials
// JSON and the officer-to-calendar mapping.
func NewGoogleCalendar(ctx context.Context, credsJSON []byte, calendars map[string]string) (*GoogleCalendar, error) {
	svc, err := calendar.NewService(ctx, option.WithCredentialsJSON(credsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize calendar service: %w", err)
	}
	return &GoogleCalendar{svc: svc, calendars: calendars}, nil
}

// CreateEvent inserts the appointment into the officer's calendar with a
// 30-minute-before popup reminder.
func (g *GoogleCalendar) CreateEvent(ctx context.Context, booking models.Booking) error {
	calendarID, ok := g.calendars[booking.Officer]
	if !ok {
		return fmt.Errorf("no calendar configured for officer %q", booking.Officer)
	}

	start, err := schedule.SlotStart(booking.Date, booking.Time)
	if err != nil {
		return fmt.Errorf("bad booking date/time %q %q: %w", booking.Date, booking.Time, err)
	}
	end := start.Add(eventDuration)

	event := &calendar.Event{
		Summary:     fmt.Sprintf("Temu Janji: %s", booking.Name),
		Description: fmt.Sprintf("Purpose: %s\nContact: %s", booking.Purpose, booking.Phone),
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: 30},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	_, err = g.svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to insert calendar event: %w", err)
	}
	return nil
}
