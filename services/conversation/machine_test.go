package conversation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	bookingRepo "janjitemu/database/repository/booking"
	"janjitemu/models"
	"janjitemu/services/calendar"
	"janjitemu/services/schedule"
)

// testNow is a Wednesday; 02/03/2026 is the following Monday and
// 28/02/2026 the Saturday in between.
var testNow = time.Date(2026, 2, 25, 10, 0, 0, 0, schedule.TimeZone)

type reply struct {
	text    string
	choices []string
}

type fakeReplier struct {
	replies []reply
}

func (r *fakeReplier) Reply(text string) error {
	r.replies = append(r.replies, reply{text: text})
	return nil
}

func (r *fakeReplier) ReplyWithChoices(text string, choices []string) error {
	r.replies = append(r.replies, reply{text: text, choices: choices})
	return nil
}

func (r *fakeReplier) last() reply {
	if len(r.replies) == 0 {
		return reply{}
	}
	return r.replies[len(r.replies)-1]
}

type fakeRepo struct {
	bookings  []models.Booking
	appendErr error
}

func (r *fakeRepo) Append(_ context.Context, b models.Booking) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	for _, existing := range r.bookings {
		if existing.Date == b.Date && existing.Time == b.Time && existing.Officer == b.Officer {
			return bookingRepo.ErrSlotTaken
		}
	}
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeRepo) ListAll(context.Context) ([]models.Booking, error) {
	return r.bookings, nil
}

func (r *fakeRepo) ListByDateOfficer(_ context.Context, date, officer string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date == date && b.Officer == officer {
			out = append(out, b)
		}
	}
	return out, nil
}

func newTestMachine(repo *fakeRepo) *Machine {
	return &Machine{
		Sessions: NewMemorySessionStore(),
		Repo:     repo,
		Avail:    &schedule.Availability{Repo: repo},
		Calendar: calendar.Noop{},
		Now:      func() time.Time { return testNow },
	}
}

func step(t *testing.T, m *Machine, r *fakeReplier, chatID, text string) {
	t.Helper()
	if err := m.Handle(context.Background(), chatID, text, r); err != nil {
		t.Fatalf("Handle(%q) err: %v", text, err)
	}
}

func TestChooseOfficer(t *testing.T) {
	m := newTestMachine(&fakeRepo{})
	r := &fakeReplier{}
	ctx := context.Background()

	step(t, m, r, "c1", "/book")
	step(t, m, r, "c1", "1")

	session, err := m.Sessions.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if session.State != models.StateGetName {
		t.Fatalf("unexpected state: %s", session.State)
	}
	if session.Officer != models.OfficerDO {
		t.Fatalf("unexpected officer: %s", session.Officer)
	}
	if r.last().text != msgAskName {
		t.Fatalf("unexpected prompt: %q", r.last().text)
	}
}

func TestChooseOfficerRepromptOnJunk(t *testing.T) {
	m := newTestMachine(&fakeRepo{})
	r := &fakeReplier{}

	step(t, m, r, "c1", "/book")
	step(t, m, r, "c1", "3")

	session, _ := m.Sessions.Get(context.Background(), "c1")
	if session.State != models.StateChoosingOfficer {
		t.Fatalf("state should not advance, got %s", session.State)
	}
	if r.last().text != msgPickOneOrTwo {
		t.Fatalf("unexpected reply: %q", r.last().text)
	}
}

// advanceToDate walks a fresh chat up to the date prompt.
func advanceToDate(t *testing.T, m *Machine, r *fakeReplier, chatID, officerChoice string) {
	t.Helper()
	step(t, m, r, chatID, "/book")
	step(t, m, r, chatID, officerChoice)
	step(t, m, r, chatID, "Ali")
	step(t, m, r, chatID, "0123456789")
	step(t, m, r, chatID, "a@b.com")
	step(t, m, r, chatID, "Renew IC")
}

func TestGetDateRejectsImpossibleDate(t *testing.T) {
	m := newTestMachine(&fakeRepo{})
	r := &fakeReplier{}

	advanceToDate(t, m, r, "c1", "1")
	step(t, m, r, "c1", "31/02/2099")

	session, _ := m.Sessions.Get(context.Background(), "c1")
	if session.State != models.StateGetDate {
		t.Fatalf("state should stay at get_date, got %s", session.State)
	}
	if r.last().text != msgInvalidDate {
		t.Fatalf("unexpected reply: %q", r.last().text)
	}
}

func TestGetDateRejectsWeekend(t *testing.T) {
	m := newTestMachine(&fakeRepo{})
	r := &fakeReplier{}

	advanceToDate(t, m, r, "c1", "1")
	step(t, m, r, "c1", "28/02/2026") // Saturday

	session, _ := m.Sessions.Get(context.Background(), "c1")
	if session.State != models.StateGetDate {
		t.Fatalf("state should stay at get_date, got %s", session.State)
	}
	if r.last().text != msgWeekend {
		t.Fatalf("unexpected reply: %q", r.last().text)
	}
}

func TestHappyPath(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestMachine(repo)
	r := &fakeReplier{}
	ctx := context.Background()

	advanceToDate(t, m, r, "c1", "2") // ADO
	step(t, m, r, "c1", "02/03/2026") // next Monday

	offered := r.last()
	if offered.text != msgChooseTime {
		t.Fatalf("expected time prompt, got %q", offered.text)
	}
	if !reflect.DeepEqual(offered.choices, schedule.OfficeHours[time.Monday]) {
		t.Fatalf("unexpected slot choices: %v", offered.choices)
	}

	step(t, m, r, "c1", "09:00")

	if len(repo.bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(repo.bookings))
	}
	b := repo.bookings[0]
	if b.Status != models.BookingStatusConfirmed {
		t.Errorf("unexpected status: %s", b.Status)
	}
	if b.Officer != models.OfficerADO || b.Date != "02/03/2026" || b.Time != "09:00" {
		t.Errorf("unexpected booking: %+v", b)
	}
	if b.Name != "Ali" || b.Phone != "0123456789" || b.Email != "a@b.com" || b.Purpose != "Renew IC" {
		t.Errorf("citizen details lost: %+v", b)
	}
	if b.UserID != "c1" {
		t.Errorf("unexpected user id: %s", b.UserID)
	}

	confirmation := r.last().text
	for _, want := range []string{"02/03/2026", "09:00", "ADO"} {
		if !strings.Contains(confirmation, want) {
			t.Errorf("confirmation %q missing %q", confirmation, want)
		}
	}

	session, _ := m.Sessions.Get(ctx, "c1")
	if session != nil {
		t.Fatal("session should be cleared after confirmation")
	}
}

func TestSlotConflictOffersAlternatives(t *testing.T) {
	// Every Monday slot except 16:00 is already booked with the DO.
	repo := &fakeRepo{}
	for _, slot := range schedule.OfficeHours[time.Monday] {
		if slot == "16:00" {
			continue
		}
		repo.bookings = append(repo.bookings, models.Booking{
			Date: "02/03/2026", Time: slot, Officer: models.OfficerDO,
		})
	}
	m := newTestMachine(repo)
	r := &fakeReplier{}

	advanceToDate(t, m, r, "c1", "1")
	step(t, m, r, "c1", "02/03/2026")
	step(t, m, r, "c1", "09:00") // taken

	offer := r.last()
	if !strings.Contains(offer.text, "09:00") {
		t.Fatalf("conflict message should name the slot: %q", offer.text)
	}
	if !reflect.DeepEqual(offer.choices, []string{"16:00"}) {
		t.Fatalf("expected only 16:00 left, got %v", offer.choices)
	}

	step(t, m, r, "c1", "16:00")
	if got := len(repo.bookings); got != len(schedule.OfficeHours[time.Monday]) {
		t.Fatalf("expected booking appended, have %d records", got)
	}
	if !strings.Contains(r.last().text, "16:00") {
		t.Fatalf("confirmation should name the booked slot: %q", r.last().text)
	}
}

func TestAllSlotsFullCancels(t *testing.T) {
	repo := &fakeRepo{}
	for _, slot := range schedule.OfficeHours[time.Monday] {
		repo.bookings = append(repo.bookings, models.Booking{
			Date: "02/03/2026", Time: slot, Officer: models.OfficerDO,
		})
	}
	before := len(repo.bookings)

	m := newTestMachine(repo)
	r := &fakeReplier{}

	advanceToDate(t, m, r, "c1", "1")
	step(t, m, r, "c1", "02/03/2026")
	step(t, m, r, "c1", "09:00")

	if r.last().text != msgAllSlotsFull {
		t.Fatalf("unexpected reply: %q", r.last().text)
	}
	if len(repo.bookings) != before {
		t.Fatal("no record should be appended")
	}
	session, _ := m.Sessions.Get(context.Background(), "c1")
	if session != nil {
		t.Fatal("session should be gone after cancellation")
	}
}

func TestCancelFromAnyState(t *testing.T) {
	m := newTestMachine(&fakeRepo{})
	r := &fakeReplier{}

	advanceToDate(t, m, r, "c1", "1")
	step(t, m, r, "c1", "/cancel")

	if r.last().text != msgCancelled {
		t.Fatalf("unexpected reply: %q", r.last().text)
	}
	session, _ := m.Sessions.Get(context.Background(), "c1")
	if session != nil {
		t.Fatal("session should be deleted on cancel")
	}
}

func TestSessionDataMissing(t *testing.T) {
	m := newTestMachine(&fakeRepo{})
	r := &fakeReplier{}
	ctx := context.Background()

	// A get_time session with the earlier answers lost.
	if err := m.Sessions.Put(ctx, &models.Session{
		ChatID: "c1",
		State:  models.StateGetTime,
		Date:   "02/03/2026",
	}); err != nil {
		t.Fatalf("Put err: %v", err)
	}

	step(t, m, r, "c1", "09:00")

	if r.last().text != msgSessionExpired {
		t.Fatalf("unexpected reply: %q", r.last().text)
	}
	session, _ := m.Sessions.Get(ctx, "c1")
	if session != nil {
		t.Fatal("broken session should be deleted")
	}
}

func TestTimeOutsideOfferedListReprompts(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestMachine(repo)
	r := &fakeReplier{}

	advanceToDate(t, m, r, "c1", "1")
	step(t, m, r, "c1", "02/03/2026")
	step(t, m, r, "c1", "23:59")

	if r.last().text != msgPickFromOffers {
		t.Fatalf("unexpected reply: %q", r.last().text)
	}
	if len(repo.bookings) != 0 {
		t.Fatal("nothing should be booked")
	}
}

func TestStoreFailureSurfacesToUser(t *testing.T) {
	repo := &fakeRepo{appendErr: errors.New("store down")}
	m := newTestMachine(repo)
	r := &fakeReplier{}

	advanceToDate(t, m, r, "c1", "1")
	step(t, m, r, "c1", "02/03/2026")
	step(t, m, r, "c1", "09:00")

	if r.last().text != msgStoreTrouble {
		t.Fatalf("unexpected reply: %q", r.last().text)
	}
	// The session survives so the citizen can retry.
	session, _ := m.Sessions.Get(context.Background(), "c1")
	if session == nil || session.State != models.StateGetTime {
		t.Fatalf("session should remain in get_time, got %+v", session)
	}
}

func TestBlankAnswerReprompts(t *testing.T) {
	m := newTestMachine(&fakeRepo{})
	r := &fakeReplier{}

	step(t, m, r, "c1", "/book")
	step(t, m, r, "c1", "1")
	step(t, m, r, "c1", "   ")

	session, _ := m.Sessions.Get(context.Background(), "c1")
	if session.State != models.StateGetName {
		t.Fatalf("blank name should not advance, got %s", session.State)
	}
	if r.last().text != msgAskName {
		t.Fatalf("unexpected reply: %q", r.last().text)
	}
}

func TestRaceLostAtAppendFallsBackToAlternatives(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestMachine(repo)
	r := &fakeReplier{}

	advanceToDate(t, m, r, "c1", "1")
	step(t, m, r, "c1", "02/03/2026")

	// Another session takes 09:00 after the availability check would pass.
	repo.appendErr = fmt.Errorf("wrapped: %w", bookingRepo.ErrSlotTaken)
	step(t, m, r, "c1", "09:00")

	offer := r.last()
	if !strings.Contains(offer.text, "09:00") {
		t.Fatalf("expected conflict re-prompt, got %q", offer.text)
	}
	if len(offer.choices) == 0 {
		t.Fatal("expected alternative choices")
	}
}
