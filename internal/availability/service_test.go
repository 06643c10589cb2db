package availability

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/planmeet/meeting-scheduler-backend/apperror"
	"github.com/planmeet/meeting-scheduler-backend/config"
	"github.com/planmeet/meeting-scheduler-backend/internal/attendee"
	"github.com/planmeet/meeting-scheduler-backend/internal/event"
)

type fixture struct {
	svc         *Service
	attendeeSvc *attendee.Service

	dateEvent *event.Event // specific_dates, 2025-03-01 + 2025-03-02
	weekEvent *event.Event // days_of_week, Friday only
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&event.Event{}, &event.EventDate{}, &event.EventWeekday{},
		&attendee.Attendee{},
		&SpecificDateAvailability{}, &DayOfWeekAvailability{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{BaseURL: "http://localhost:8080", JWTSecret: "test-secret", JWTAccessTTLHrs: 1}
	eventSvc := event.NewService(event.NewRepository(db), cfg)
	attendeeSvc := attendee.NewService(attendee.NewRepository(db), cfg)

	dateEvent, err := eventSvc.CreateEvent(&event.CreateEventRequest{
		Name: "Team Sync", StartTime: "09:00", EndTime: "17:00", Timezone: "UTC",
		EventType: event.TypeSpecificDates, Dates: []string{"2025-03-01", "2025-03-02"},
	})
	if err != nil {
		t.Fatalf("create date event: %v", err)
	}
	weekEvent, err := eventSvc.CreateEvent(&event.CreateEventRequest{
		Name: "Weekly", StartTime: "09:00", EndTime: "17:00", Timezone: "UTC",
		EventType: event.TypeDaysOfWeek, DaysOfWeek: []string{"Friday"},
	})
	if err != nil {
		t.Fatalf("create week event: %v", err)
	}

	return &fixture{
		svc:         NewService(NewRepository(db), eventSvc),
		attendeeSvc: attendeeSvc,
		dateEvent:   dateEvent,
		weekEvent:   weekEvent,
	}
}

func (f *fixture) signIn(t *testing.T, ev *event.Event, name string) *attendee.Attendee {
	t.Helper()
	a, _, err := f.attendeeSvc.SignIn(ev, &attendee.SignInRequest{Name: name})
	if err != nil {
		t.Fatalf("sign-in %s: %v", name, err)
	}
	return a
}

func TestToggle_SpecificDateRoundTrip(t *testing.T) {
	f := newFixture(t)
	alice := f.signIn(t, f.dateEvent, "Alice")
	link := f.dateEvent.UniqueID.String()

	req := &ToggleRequest{
		StartTime: "2025-03-01T09:00:00Z",
		EndTime:   "2025-03-01T10:00:00Z",
	}

	result, err := f.svc.Toggle(link, alice.ID, alice.EventID, req)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if result.Created == nil || result.Removed {
		t.Fatalf("expected created result, got %+v", result)
	}
	if result.Created.StartTime == nil || !result.Created.StartTime.Equal(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created start %v", result.Created.StartTime)
	}

	result, err = f.svc.Toggle(link, alice.ID, alice.EventID, req)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if !result.Removed || result.Created != nil {
		t.Fatalf("expected removed result, got %+v", result)
	}

	slots, err := f.svc.AttendeeSlots(f.dateEvent, alice.ID)
	if err != nil {
		t.Fatalf("list slots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots after round trip, got %d", len(slots))
	}

	count, err := f.svc.ResponseCount(f.dateEvent)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected response count 0, got %d", count)
	}
}

func TestToggle_StartIdentifiesSlotRegardlessOfEnd(t *testing.T) {
	f := newFixture(t)
	alice := f.signIn(t, f.dateEvent, "Alice")
	link := f.dateEvent.UniqueID.String()

	_, err := f.svc.Toggle(link, alice.ID, alice.EventID, &ToggleRequest{
		StartTime: "2025-03-01T09:00:00Z",
		EndTime:   "2025-03-01T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}

	// Same start with a different end matches the stored row and removes it.
	result, err := f.svc.Toggle(link, alice.ID, alice.EventID, &ToggleRequest{
		StartTime: "2025-03-01T09:00:00Z",
		EndTime:   "2025-03-01T12:00:00Z",
	})
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if !result.Removed {
		t.Fatalf("expected removal on matching start, got %+v", result)
	}
}

func TestToggle_SpecificDateValidation(t *testing.T) {
	f := newFixture(t)
	alice := f.signIn(t, f.dateEvent, "Alice")
	link := f.dateEvent.UniqueID.String()

	hour := 14
	cases := []struct {
		name string
		req  ToggleRequest
	}{
		{"wrong selector shape", ToggleRequest{Day: "Friday", StartHour: &hour}},
		{"missing times", ToggleRequest{StartTime: "2025-03-01T09:00:00Z"}},
		{"malformed timestamp", ToggleRequest{StartTime: "yesterday", EndTime: "2025-03-01T10:00:00Z"}},
		{"end before start", ToggleRequest{StartTime: "2025-03-01T10:00:00Z", EndTime: "2025-03-01T09:00:00Z"}},
		{"end equals start", ToggleRequest{StartTime: "2025-03-01T09:00:00Z", EndTime: "2025-03-01T09:00:00Z"}},
	}
	for _, tc := range cases {
		if _, err := f.svc.Toggle(link, alice.ID, alice.EventID, &tc.req); !apperror.IsKind(err, apperror.KindValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestToggle_DayOfWeek(t *testing.T) {
	f := newFixture(t)
	bob := f.signIn(t, f.weekEvent, "Bob")
	link := f.weekEvent.UniqueID.String()

	hour := 14
	result, err := f.svc.Toggle(link, bob.ID, bob.EventID, &ToggleRequest{Day: "Friday", StartHour: &hour})
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if result.Created == nil {
		t.Fatalf("expected created result, got %+v", result)
	}
	if result.Created.Day != "Friday" || result.Created.StartHour != "14:00" {
		t.Fatalf("unexpected descriptor %+v", result.Created)
	}

	result, err = f.svc.Toggle(link, bob.ID, bob.EventID, &ToggleRequest{Day: "Friday", StartHour: &hour})
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if !result.Removed {
		t.Fatalf("expected removed result, got %+v", result)
	}
}

func TestToggle_DayOfWeekValidation(t *testing.T) {
	f := newFixture(t)
	bob := f.signIn(t, f.weekEvent, "Bob")
	link := f.weekEvent.UniqueID.String()

	outOfRange := 25
	if _, err := f.svc.Toggle(link, bob.ID, bob.EventID, &ToggleRequest{Day: "Friday", StartHour: &outOfRange}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for hour 25, got %v", err)
	}

	// Monday is not configured on this event.
	hour := 14
	if _, err := f.svc.Toggle(link, bob.ID, bob.EventID, &ToggleRequest{Day: "Monday", StartHour: &hour}); !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("expected not-found for unconfigured weekday, got %v", err)
	}

	if _, err := f.svc.Toggle(link, bob.ID, bob.EventID, &ToggleRequest{Day: "Fridayish", StartHour: &hour}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for bad label, got %v", err)
	}

	if _, err := f.svc.Toggle(link, bob.ID, bob.EventID, &ToggleRequest{StartTime: "2025-03-01T09:00:00Z", EndTime: "2025-03-01T10:00:00Z"}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for wrong selector shape, got %v", err)
	}
}

func TestToggle_ForbiddenAcrossEvents(t *testing.T) {
	f := newFixture(t)
	bob := f.signIn(t, f.weekEvent, "Bob")

	// Bob belongs to the weekly event; the date event's link is not his.
	req := &ToggleRequest{StartTime: "2025-03-01T09:00:00Z", EndTime: "2025-03-01T10:00:00Z"}
	if _, err := f.svc.Toggle(f.dateEvent.UniqueID.String(), bob.ID, bob.EventID, req); !apperror.IsKind(err, apperror.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// Forbidden also when the link resolves to nothing at all.
	if _, err := f.svc.Toggle("2e9b1d1f-3f07-4b5f-8a73-cb2ad77b9d44", bob.ID, bob.EventID, req); !apperror.IsKind(err, apperror.KindForbidden) {
		t.Fatalf("expected forbidden for unknown link, got %v", err)
	}
}

func TestEventRosterAndResponseCount(t *testing.T) {
	f := newFixture(t)
	alice := f.signIn(t, f.dateEvent, "Alice")
	bob := f.signIn(t, f.dateEvent, "Bob")
	link := f.dateEvent.UniqueID.String()

	toggles := []struct {
		a          *attendee.Attendee
		start, end string
	}{
		{alice, "2025-03-01T09:00:00Z", "2025-03-01T10:00:00Z"},
		{alice, "2025-03-01T10:00:00Z", "2025-03-01T11:00:00Z"},
		{bob, "2025-03-02T09:00:00Z", "2025-03-02T10:00:00Z"},
	}
	for _, tg := range toggles {
		if _, err := f.svc.Toggle(link, tg.a.ID, tg.a.EventID, &ToggleRequest{StartTime: tg.start, EndTime: tg.end}); err != nil {
			t.Fatalf("toggle %s: %v", tg.start, err)
		}
	}

	roster, err := f.svc.EventRoster(f.dateEvent)
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	if len(roster) != 3 {
		t.Fatalf("expected 3 roster entries, got %d", len(roster))
	}
	// Insertion order, attendee names attached.
	if roster[0].Attendee != "Alice" || roster[2].Attendee != "Bob" {
		t.Fatalf("unexpected roster order: %+v", roster)
	}

	// Alice has two slots, Bob one: two distinct responders.
	count, err := f.svc.ResponseCount(f.dateEvent)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected response count 2, got %d", count)
	}

	own, err := f.svc.AttendeeSlots(f.dateEvent, alice.ID)
	if err != nil {
		t.Fatalf("attendee slots: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("expected 2 slots for Alice, got %d", len(own))
	}
	if own[0].Attendee != "" {
		t.Fatal("own availability entries should not repeat the attendee name")
	}
}

func TestAvailableAt(t *testing.T) {
	f := newFixture(t)
	alice := f.signIn(t, f.dateEvent, "Alice")
	bob := f.signIn(t, f.dateEvent, "Bob")
	link := f.dateEvent.UniqueID.String()

	if _, err := f.svc.Toggle(link, alice.ID, alice.EventID, &ToggleRequest{
		StartTime: "2025-03-01T09:00:00Z", EndTime: "2025-03-01T11:00:00Z",
	}); err != nil {
		t.Fatalf("toggle alice: %v", err)
	}
	if _, err := f.svc.Toggle(link, bob.ID, bob.EventID, &ToggleRequest{
		StartTime: "2025-03-01T10:00:00Z", EndTime: "2025-03-01T12:00:00Z",
	}); err != nil {
		t.Fatalf("toggle bob: %v", err)
	}

	names, err := f.svc.AvailableAt(link, time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("available at: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected both attendees at 10:30, got %v", names)
	}

	// End is exclusive: Alice's slot stops at 11:00.
	names, err = f.svc.AvailableAt(link, time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("available at: %v", err)
	}
	if len(names) != 1 || names[0] != "Bob" {
		t.Fatalf("expected only Bob at 11:00, got %v", names)
	}

	names, err = f.svc.AvailableAt(link, time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("available at: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected nobody at 23:00, got %v", names)
	}

	// Instant queries are undefined for day-of-week events.
	if _, err := f.svc.AvailableAt(f.weekEvent.UniqueID.String(), time.Now()); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for days_of_week event, got %v", err)
	}
}

func TestRepository_DuplicateInsertConflicts(t *testing.T) {
	f := newFixture(t)
	alice := f.signIn(t, f.dateEvent, "Alice")

	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	if err := f.svc.Repo.CreateSpecific(&SpecificDateAvailability{AttendeeID: alice.ID, StartTime: start, EndTime: end}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	// Second insert on the same (attendee, start) key hits the constraint,
	// even with a different end.
	err := f.svc.Repo.CreateSpecific(&SpecificDateAvailability{AttendeeID: alice.ID, StartTime: start, EndTime: end.Add(time.Hour)})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicated key error, got %v", err)
	}
}
