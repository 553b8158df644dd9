package engine

import (
	"testing"
	"time"

	"agendia/studio-server/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// monday is 2025-06-02, a Monday ("Lunes").
var monday = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func activePerson(name string) domain.Person {
	return domain.Person{ID: primitive.NewObjectID(), Name: name, Status: domain.PersonActive}
}

func TestWeekdayName(t *testing.T) {
	sunday := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	want := []string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}
	for i, name := range want {
		day := sunday.AddDate(0, 0, i)
		if got := domain.WeekdayName(day); got != name {
			t.Errorf("day %d: expected %q, got %q", i, name, got)
		}
	}
}

func TestSessionsOnIndividualCapacity(t *testing.T) {
	// An individual session in a 10-person room still holds exactly one.
	space := domain.Space{ID: primitive.NewObjectID(), Name: "Sala A", Capacity: 10}
	sess := domain.Session{
		ID:          primitive.NewObjectID(),
		DayOfWeek:   domain.DayMonday,
		Time:        "09:00",
		SessionType: domain.SessionIndividual,
		SpaceID:     space.ID,
	}
	snap := &Snapshot{Sessions: []domain.Session{sess}, Spaces: []domain.Space{space}}

	got := snap.SessionsOn(monday, SessionFilter{})
	if len(got) != 1 {
		t.Fatalf("expected 1 session, got %d", len(got))
	}
	if got[0].Capacity != 1 {
		t.Errorf("expected capacity 1 for individual session, got %d", got[0].Capacity)
	}
	if got[0].EnrolledCount != 0 || got[0].IsFull {
		t.Errorf("empty session should not be full: count=%d full=%v", got[0].EnrolledCount, got[0].IsFull)
	}

	// One active regular fills it.
	p := activePerson("Ana")
	snap.People = []domain.Person{p}
	snap.Sessions[0].PersonIDs = []primitive.ObjectID{p.ID}

	got = snap.SessionsOn(monday, SessionFilter{})
	if got[0].EnrolledCount != 1 || !got[0].IsFull {
		t.Errorf("expected enrolled=1 full=true, got enrolled=%d full=%v", got[0].EnrolledCount, got[0].IsFull)
	}
}

func TestSessionsOnDeduplicatesOneTimeAttendees(t *testing.T) {
	space := domain.Space{ID: primitive.NewObjectID(), Name: "Sala A", Capacity: 5}
	regular := activePerson("Ana")
	dropIn := activePerson("Bruno")
	sess := domain.Session{
		ID:          primitive.NewObjectID(),
		DayOfWeek:   domain.DayMonday,
		Time:        "09:00",
		SessionType: domain.SessionGroup,
		SpaceID:     space.ID,
		PersonIDs:   []primitive.ObjectID{regular.ID},
	}
	record := domain.AttendanceRecord{
		SessionID: sess.ID,
		Date:      monday.Format(domain.AttendanceDateLayout),
		// The regular also shows up as a one-time attendee; she must be
		// counted once.
		OneTimeAttendees: []primitive.ObjectID{regular.ID, dropIn.ID},
	}
	snap := &Snapshot{
		People:     []domain.Person{regular, dropIn},
		Sessions:   []domain.Session{sess},
		Attendance: []domain.AttendanceRecord{record},
		Spaces:     []domain.Space{space},
	}

	got := snap.SessionsOn(monday, SessionFilter{})
	if len(got) != 1 {
		t.Fatalf("expected 1 session, got %d", len(got))
	}
	if got[0].EnrolledCount != 2 {
		t.Errorf("expected enrolled count 2 after dedup, got %d", got[0].EnrolledCount)
	}
}

func TestSessionsOnExcludesInactiveAndVacationing(t *testing.T) {
	space := domain.Space{ID: primitive.NewObjectID(), Name: "Sala A", Capacity: 5}
	active := activePerson("Ana")
	inactive := domain.Person{ID: primitive.NewObjectID(), Name: "Bruno", Status: domain.PersonInactive}
	away := activePerson("Carla")
	away.Vacations = []domain.VacationRange{{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC),
	}}
	sess := domain.Session{
		ID:          primitive.NewObjectID(),
		DayOfWeek:   domain.DayMonday,
		Time:        "09:00",
		SessionType: domain.SessionGroup,
		SpaceID:     space.ID,
		PersonIDs:   []primitive.ObjectID{active.ID, inactive.ID, away.ID},
	}
	snap := &Snapshot{
		People:   []domain.Person{active, inactive, away},
		Sessions: []domain.Session{sess},
		Spaces:   []domain.Space{space},
	}

	got := snap.SessionsOn(monday, SessionFilter{})
	if got[0].EnrolledCount != 1 {
		t.Errorf("expected only the active, present person to count, got %d", got[0].EnrolledCount)
	}
}

func TestSessionsOnOccupancyBands(t *testing.T) {
	tests := []struct {
		name         string
		capacity     int
		enrolled     int
		isFull       bool
		isNearlyFull bool
	}{
		{"empty", 10, 0, false, false},
		{"below threshold", 10, 7, false, false},
		{"nearly full at 0.8", 10, 8, false, true},
		{"full", 10, 10, true, false},
		{"over capacity", 10, 11, true, false},
		{"zero capacity room", 0, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			space := domain.Space{ID: primitive.NewObjectID(), Name: "Sala", Capacity: tt.capacity}
			sess := domain.Session{
				ID:          primitive.NewObjectID(),
				DayOfWeek:   domain.DayMonday,
				Time:        "10:00",
				SessionType: domain.SessionGroup,
				SpaceID:     space.ID,
			}
			var people []domain.Person
			for i := 0; i < tt.enrolled; i++ {
				p := activePerson("p")
				people = append(people, p)
				sess.PersonIDs = append(sess.PersonIDs, p.ID)
			}
			snap := &Snapshot{People: people, Sessions: []domain.Session{sess}, Spaces: []domain.Space{space}}

			got := snap.SessionsOn(monday, SessionFilter{})
			if got[0].IsFull != tt.isFull || got[0].IsNearlyFull != tt.isNearlyFull {
				t.Errorf("capacity=%d enrolled=%d: got full=%v nearlyFull=%v, want full=%v nearlyFull=%v",
					tt.capacity, tt.enrolled, got[0].IsFull, got[0].IsNearlyFull, tt.isFull, tt.isNearlyFull)
			}
			if got[0].IsFull && got[0].IsNearlyFull {
				t.Error("full and nearly-full must be mutually exclusive")
			}
		})
	}
}

func TestSessionsOnUnresolvedSpace(t *testing.T) {
	sess := domain.Session{
		ID:          primitive.NewObjectID(),
		DayOfWeek:   domain.DayMonday,
		Time:        "09:00",
		SessionType: domain.SessionGroup,
		SpaceID:     primitive.NewObjectID(), // dangling reference
	}
	snap := &Snapshot{Sessions: []domain.Session{sess}}

	got := snap.SessionsOn(monday, SessionFilter{})
	if got[0].Capacity != 0 {
		t.Errorf("expected capacity 0 for unresolved space, got %d", got[0].Capacity)
	}
	if got[0].Utilization != 0 {
		t.Errorf("expected utilization 0 with zero capacity, got %f", got[0].Utilization)
	}
	if got[0].SpaceName != UnknownLabel {
		t.Errorf("expected space name %q, got %q", UnknownLabel, got[0].SpaceName)
	}
}

func TestSessionsOnFilterAndOrder(t *testing.T) {
	specX := domain.Specialist{ID: primitive.NewObjectID(), Name: "X"}
	specY := domain.Specialist{ID: primitive.NewObjectID(), Name: "Y"}
	mk := func(clock string, spec primitive.ObjectID) domain.Session {
		return domain.Session{
			ID:           primitive.NewObjectID(),
			DayOfWeek:    domain.DayMonday,
			Time:         clock,
			SessionType:  domain.SessionGroup,
			SpecialistID: spec,
		}
	}
	snap := &Snapshot{
		Sessions: []domain.Session{
			mk("18:00", specX.ID),
			mk("09:00", specY.ID),
			mk("10:30", specX.ID),
			mk("08:00", specX.ID),
		},
		Specialists: []domain.Specialist{specX, specY},
	}

	got := snap.SessionsOn(monday, SessionFilter{SpecialistID: specX.ID})
	if len(got) != 3 {
		t.Fatalf("expected 3 sessions for specialist X, got %d", len(got))
	}
	wantOrder := []string{"08:00", "10:30", "18:00"}
	for i, clock := range wantOrder {
		if got[i].Session.Time != clock {
			t.Errorf("position %d: expected %s, got %s", i, clock, got[i].Session.Time)
		}
	}

	evening := snap.SessionsOn(monday, SessionFilter{TimeOfDay: Evening})
	if len(evening) != 1 || evening[0].Session.Time != "18:00" {
		t.Errorf("evening filter: expected only the 18:00 session, got %d results", len(evening))
	}
}

func TestTimeOfDayOf(t *testing.T) {
	tests := []struct {
		clock string
		want  TimeOfDay
	}{
		{"00:00", Morning},
		{"11:59", Morning},
		{"12:00", Afternoon},
		{"17:59", Afternoon},
		{"18:00", Evening},
		{"23:30", Evening},
		{"garbage", Afternoon},
		{"", Afternoon},
	}
	for _, tt := range tests {
		if got := TimeOfDayOf(tt.clock); got != tt.want {
			t.Errorf("TimeOfDayOf(%q) = %q, want %q", tt.clock, got, tt.want)
		}
	}
}

func TestAttendanceAllowed(t *testing.T) {
	sess := domain.Session{Time: "09:00", DayOfWeek: domain.DayMonday}
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	windowStart := time.Date(2025, 6, 2, 8, 40, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"one second before window", windowStart.Add(-time.Second), false},
		{"exactly at window start", windowStart, true},
		{"during session", windowStart.Add(time.Hour), true},
		{"hours after", windowStart.Add(12 * time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AttendanceAllowed(sess, day, tt.now); got != tt.want {
				t.Errorf("AttendanceAllowed at %v = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestAttendanceAllowedMalformedTime(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC)
	for _, clock := range []string{"", "nine", "25:00", "09:75", "0900"} {
		sess := domain.Session{Time: clock}
		if AttendanceAllowed(sess, day, late) {
			t.Errorf("malformed time %q must keep the gate closed", clock)
		}
	}
}
