package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "janjitemu/database/repository/booking"
	"janjitemu/models"
	"janjitemu/services/calendar"
	"janjitemu/services/schedule"
	"janjitemu/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Replier is the outbound half of the transport: it delivers one message to
// the citizen, optionally with a fixed set of choices rendered as buttons.
type Replier interface {
	Reply(text string) error
	ReplyWithChoices(text string, choices []string) error
}

// ReminderScheduler queues a pre-appointment reminder for a confirmed
// booking. Scheduling is best-effort, like the calendar side effect.
type ReminderScheduler interface {
	Schedule(ctx context.Context, booking models.Booking) error
}

// Machine drives the booking conversation. One inbound message is handled to
// completion before the next for the same chat; different chats are
// independent apart from the shared booking store.
type Machine struct {
	Sessions  SessionStore
	Repo      bookingRepo.BookingRepository
	Avail     *schedule.Availability
	Calendar  calendar.EventCreator
	Reminders ReminderScheduler // optional

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (m *Machine) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Handle processes one inbound message for a chat and replies through r.
func (m *Machine) Handle(ctx context.Context, chatID, text string, r Replier) error {
	text = strings.TrimSpace(text)

	switch text {
	case "/start":
		return r.Reply(msgWelcome)
	case "/book":
		session := &models.Session{ChatID: chatID, State: models.StateChoosingOfficer}
		if err := m.Sessions.Put(ctx, session); err != nil {
			return err
		}
		return r.Reply(msgChooseOfficer)
	case "/cancel":
		if err := m.Sessions.Delete(ctx, chatID); err != nil {
			utils.GetLogger().Warn("failed to delete session on cancel",
				zap.String("chatID", chatID), zap.Error(err))
		}
		return r.Reply(msgCancelled)
	}

	session, err := m.Sessions.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if session == nil {
		// Not in a conversation; point at /book.
		return r.Reply(msgWelcome)
	}

	switch session.State {
	case models.StateChoosingOfficer:
		return m.handleChoosingOfficer(ctx, session, text, r)
	case models.StateGetName:
		return m.collectField(ctx, session, text, r, &session.Name, models.StateGetPhone, msgAskPhone)
	case models.StateGetPhone:
		return m.collectField(ctx, session, text, r, &session.Phone, models.StateGetEmail, msgAskEmail)
	case models.StateGetEmail:
		return m.collectField(ctx, session, text, r, &session.Email, models.StateGetPurpose, msgAskPurpose)
	case models.StateGetPurpose:
		return m.collectField(ctx, session, text, r, &session.Purpose, models.StateGetDate, msgAskDate)
	case models.StateGetDate:
		return m.handleGetDate(ctx, session, text, r)
	case models.StateGetTime:
		return m.handleGetTime(ctx, session, text, r)
	default:
		// Unknown state means a stale or corrupted session; restart cleanly.
		return m.expireSession(ctx, session.ChatID, r)
	}
}

func (m *Machine) handleChoosingOfficer(ctx context.Context, session *models.Session, text string, r Replier) error {
	switch text {
	case "1":
		session.Officer = models.OfficerDO
	case "2":
		session.Officer = models.OfficerADO
	default:
		return r.Reply(msgPickOneOrTwo)
	}

	session.State = models.StateGetName
	if err := m.Sessions.Put(ctx, session); err != nil {
		return err
	}
	return r.Reply(msgAskName)
}

// collectField stores any non-empty trimmed answer verbatim and advances.
// Phone and email formats are deliberately not validated.
func (m *Machine) collectField(ctx context.Context, session *models.Session, text string, r Replier, field *string, next models.SessionState, nextPrompt string) error {
	if text == "" {
		return r.Reply(nextPromptFor(session.State))
	}
	*field = text
	session.State = next
	if err := m.Sessions.Put(ctx, session); err != nil {
		return err
	}
	return r.Reply(nextPrompt)
}

func nextPromptFor(state models.SessionState) string {
	switch state {
	case models.StateGetName:
		return msgAskName
	case models.StateGetPhone:
		return msgAskPhone
	case models.StateGetEmail:
		return msgAskEmail
	default:
		return msgAskPurpose
	}
}

func (m *Machine) handleGetDate(ctx context.Context, session *models.Session, text string, r Replier) error {
	if !schedule.IsValidDate(text, m.now()) {
		return r.Reply(msgInvalidDate)
	}
	if schedule.IsWeekend(text) {
		return r.Reply(msgWeekend)
	}
	slots := schedule.AvailableSlots(text)
	if len(slots) == 0 {
		return r.Reply(msgNoSlots)
	}

	session.Date = text
	session.AvailableSlots = slots
	session.State = models.StateGetTime
	if err := m.Sessions.Put(ctx, session); err != nil {
		return err
	}
	return r.ReplyWithChoices(msgChooseTime, slots)
}

func (m *Machine) handleGetTime(ctx context.Context, session *models.Session, chosen string, r Replier) error {
	logger := utils.GetLogger()

	// A later state without the earlier answers means the session was lost
	// or expired mid-conversation; end it cleanly instead of crashing.
	if !models.KnownOfficer(session.Officer) || session.Name == "" || session.Phone == "" ||
		session.Email == "" || session.Purpose == "" || session.Date == "" ||
		len(session.AvailableSlots) == 0 {
		return m.expireSession(ctx, session.ChatID, r)
	}

	if !contains(session.AvailableSlots, chosen) {
		return r.ReplyWithChoices(msgPickFromOffers, session.AvailableSlots)
	}

	// The offered list can go stale between prompt and reply, so re-validate
	// against the live store rather than trusting it.
	available, err := m.Avail.IsSlotAvailable(ctx, session.Date, chosen, session.Officer, m.now())
	if err != nil {
		logger.Error("availability check failed",
			zap.String("chatID", session.ChatID), zap.Error(err))
		return r.Reply(msgStoreTrouble)
	}
	if !available {
		return m.offerAlternatives(ctx, session, chosen, r)
	}

	booking := models.Booking{
		ID:        uuid.New().String(),
		UserID:    session.ChatID,
		Name:      session.Name,
		Phone:     session.Phone,
		Email:     session.Email,
		Officer:   session.Officer,
		Purpose:   session.Purpose,
		Date:      session.Date,
		Time:      chosen,
		Status:    models.BookingStatusConfirmed,
		CreatedAt: m.now(),
	}

	if err := m.Repo.Append(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			// Lost the race to another session; fall back to alternatives.
			return m.offerAlternatives(ctx, session, chosen, r)
		}
		logger.Error("failed to append booking",
			zap.String("chatID", session.ChatID), zap.Error(err))
		return r.Reply(msgStoreTrouble)
	}

	// Side effects past this point never fail the booking: the record is
	// already durable.
	if err := m.Calendar.CreateEvent(ctx, booking); err != nil {
		logger.Warn("failed to create calendar event",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
	if m.Reminders != nil {
		if err := m.Reminders.Schedule(ctx, booking); err != nil {
			logger.Warn("failed to schedule reminder",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	if err := m.Sessions.Delete(ctx, session.ChatID); err != nil {
		logger.Warn("failed to delete completed session",
			zap.String("chatID", session.ChatID), zap.Error(err))
	}
	return r.Reply(fmt.Sprintf(msgConfirmed, booking.Date, booking.Time, booking.Officer))
}

// offerAlternatives re-prompts with the offered slots that are still free, or
// ends the conversation when the whole day is full.
func (m *Machine) offerAlternatives(ctx context.Context, session *models.Session, chosen string, r Replier) error {
	remaining, err := m.Avail.Remaining(ctx, session.AvailableSlots, session.Date, session.Officer)
	if err != nil {
		utils.GetLogger().Error("failed to compute alternative slots",
			zap.String("chatID", session.ChatID), zap.Error(err))
		return r.Reply(msgStoreTrouble)
	}
	if len(remaining) == 0 {
		if err := m.Sessions.Delete(ctx, session.ChatID); err != nil {
			utils.GetLogger().Warn("failed to delete session",
				zap.String("chatID", session.ChatID), zap.Error(err))
		}
		return r.Reply(msgAllSlotsFull)
	}
	return r.ReplyWithChoices(fmt.Sprintf(msgSlotFull, chosen), remaining)
}

func (m *Machine) expireSession(ctx context.Context, chatID string, r Replier) error {
	if err := m.Sessions.Delete(ctx, chatID); err != nil {
		utils.GetLogger().Warn("failed to delete expired session",
			zap.String("chatID", chatID), zap.Error(err))
	}
	return r.Reply(msgSessionExpired)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
