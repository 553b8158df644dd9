package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"agendia/studio-server/internal/domain"
	"agendia/studio-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- In-memory fakes ---

type fakeSessionRepo struct {
	sessions map[primitive.ObjectID]domain.Session
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *domain.Session) (primitive.ObjectID, error) {
	session.ID = primitive.NewObjectID()
	r.sessions[session.ID] = *session
	return session.ID, nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *fakeSessionRepo) GetAll(ctx context.Context) ([]domain.Session, error) {
	var out []domain.Session
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *domain.Session) error {
	if _, ok := r.sessions[session.ID]; !ok {
		return repository.ErrNotFound
	}
	r.sessions[session.ID] = *session
	return nil
}

func (r *fakeSessionRepo) AddPersonToSession(ctx context.Context, sessionID, personID primitive.ObjectID) error {
	s, ok := r.sessions[sessionID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, pid := range s.PersonIDs {
		if pid == personID {
			return nil
		}
	}
	s.PersonIDs = append(s.PersonIDs, personID)
	r.sessions[sessionID] = s
	return nil
}

type fakePersonRepo struct {
	people map[primitive.ObjectID]domain.Person
}

func (r *fakePersonRepo) Create(ctx context.Context, person *domain.Person) (primitive.ObjectID, error) {
	person.ID = primitive.NewObjectID()
	r.people[person.ID] = *person
	return person.ID, nil
}

func (r *fakePersonRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Person, error) {
	p, ok := r.people[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakePersonRepo) GetAll(ctx context.Context) ([]domain.Person, error) {
	var out []domain.Person
	for _, p := range r.people {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePersonRepo) Update(ctx context.Context, person *domain.Person) error {
	if _, ok := r.people[person.ID]; !ok {
		return repository.ErrNotFound
	}
	r.people[person.ID] = *person
	return nil
}

func (r *fakePersonRepo) SetPhotoObjectKey(ctx context.Context, personID primitive.ObjectID, objectKey string) error {
	p, ok := r.people[personID]
	if !ok {
		return repository.ErrNotFound
	}
	p.PhotoObjectKey = objectKey
	r.people[personID] = p
	return nil
}

type fakeAttendanceRepo struct {
	records map[string]domain.AttendanceRecord // keyed sessionID.Hex() + "|" + date
}

func attendanceKey(sessionID primitive.ObjectID, date string) string {
	return sessionID.Hex() + "|" + date
}

func (r *fakeAttendanceRepo) Upsert(ctx context.Context, record *domain.AttendanceRecord) error {
	r.records[attendanceKey(record.SessionID, record.Date)] = *record
	return nil
}

func (r *fakeAttendanceRepo) GetBySessionAndDate(ctx context.Context, sessionID primitive.ObjectID, date string) (*domain.AttendanceRecord, error) {
	rec, ok := r.records[attendanceKey(sessionID, date)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (r *fakeAttendanceRepo) GetAll(ctx context.Context) ([]domain.AttendanceRecord, error) {
	var out []domain.AttendanceRecord
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

// --- Fixtures ---

func newAttendanceFixture(t *testing.T, clock time.Time) (*attendanceService, *fakeSessionRepo, *fakePersonRepo, *fakeAttendanceRepo) {
	t.Helper()
	sessions := &fakeSessionRepo{sessions: map[primitive.ObjectID]domain.Session{}}
	people := &fakePersonRepo{people: map[primitive.ObjectID]domain.Person{}}
	attendance := &fakeAttendanceRepo{records: map[string]domain.AttendanceRecord{}}
	svc := &attendanceService{
		sessionRepo:    sessions,
		personRepo:     people,
		attendanceRepo: attendance,
		now:            func() time.Time { return clock },
	}
	return svc, sessions, people, attendance
}

func addPerson(t *testing.T, repo *fakePersonRepo, name string, status domain.PersonStatus) primitive.ObjectID {
	t.Helper()
	id, err := repo.Create(context.Background(), &domain.Person{Name: name, Status: status})
	if err != nil {
		t.Fatalf("create person: %v", err)
	}
	return id
}

// --- Tests ---

func TestRecordAttendanceWithinWindow(t *testing.T) {
	// Monday 2025-06-02, session at 10:00, clock at 09:45.
	clock := time.Date(2025, 6, 2, 9, 45, 0, 0, time.Local)
	svc, sessions, people, attendance := newAttendanceFixture(t, clock)

	regular := addPerson(t, people, "Ana", domain.PersonActive)
	dropIn := addPerson(t, people, "Bruno", domain.PersonActive)
	sessionID, _ := sessions.Create(context.Background(), &domain.Session{
		DayOfWeek:   domain.DayMonday,
		Time:        "10:00",
		SessionType: domain.SessionGroup,
		PersonIDs:   []primitive.ObjectID{regular},
	})

	record, err := svc.RecordAttendance(context.Background(), sessionID, "2025-06-02", AttendanceChanges{
		PresentIDs:       []primitive.ObjectID{regular},
		OneTimeAttendees: []primitive.ObjectID{dropIn},
	})
	if err != nil {
		t.Fatalf("RecordAttendance: %v", err)
	}
	if record.Date != "2025-06-02" {
		t.Errorf("record date = %q, want 2025-06-02", record.Date)
	}

	stored, err := attendance.GetBySessionAndDate(context.Background(), sessionID, "2025-06-02")
	if err != nil {
		t.Fatalf("stored record missing: %v", err)
	}
	if len(stored.PresentIDs) != 1 || len(stored.OneTimeAttendees) != 1 {
		t.Errorf("stored record = %+v, want one present and one drop-in", stored)
	}
}

func TestRecordAttendanceRejectsEarlySubmission(t *testing.T) {
	// 09:39 is one minute before the 10:00 window opens.
	clock := time.Date(2025, 6, 2, 9, 39, 0, 0, time.Local)
	svc, sessions, _, _ := newAttendanceFixture(t, clock)

	sessionID, _ := sessions.Create(context.Background(), &domain.Session{
		DayOfWeek: domain.DayMonday,
		Time:      "10:00",
	})

	_, err := svc.RecordAttendance(context.Background(), sessionID, "2025-06-02", AttendanceChanges{})
	if !errors.Is(err, ErrAttendanceWindowClosed) {
		t.Fatalf("err = %v, want ErrAttendanceWindowClosed", err)
	}
}

func TestRecordAttendanceValidation(t *testing.T) {
	clock := time.Date(2025, 6, 2, 12, 0, 0, 0, time.Local)
	svc, sessions, _, _ := newAttendanceFixture(t, clock)

	sessionID, _ := sessions.Create(context.Background(), &domain.Session{
		DayOfWeek: domain.DayMonday,
		Time:      "10:00",
	})

	tests := []struct {
		name      string
		sessionID primitive.ObjectID
		date      string
		wantErr   error
	}{
		{"malformed date", sessionID, "02/06/2025", ErrInvalidDate},
		{"wrong weekday", sessionID, "2025-06-03", ErrWrongWeekday},
		{"unknown session", primitive.NewObjectID(), "2025-06-02", ErrSessionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordAttendance(context.Background(), tt.sessionID, tt.date, AttendanceChanges{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRosterExcludesVacationingRegularsButKeepsDropIns(t *testing.T) {
	clock := time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)
	svc, sessions, people, attendance := newAttendanceFixture(t, clock)

	june := func(day int) time.Time { return time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC) }

	present := addPerson(t, people, "Carla", domain.PersonActive)
	inactive := addPerson(t, people, "Diego", domain.PersonInactive)

	away := &domain.Person{
		Name:      "Elena",
		Status:    domain.PersonActive,
		Vacations: []domain.VacationRange{{Start: june(1), End: june(7)}},
	}
	awayID, _ := people.Create(context.Background(), away)

	// Drop-in who is also on vacation that week: vacations only suppress
	// the regular enrollment, not an explicit one-time booking.
	dropIn := &domain.Person{
		Name:      "Franco",
		Status:    domain.PersonActive,
		Vacations: []domain.VacationRange{{Start: june(1), End: june(7)}},
	}
	dropInID, _ := people.Create(context.Background(), dropIn)

	sessionID, _ := sessions.Create(context.Background(), &domain.Session{
		DayOfWeek: domain.DayMonday,
		Time:      "10:00",
		PersonIDs: []primitive.ObjectID{present, inactive, awayID},
	})
	_ = attendance.Upsert(context.Background(), &domain.AttendanceRecord{
		SessionID:        sessionID,
		Date:             "2025-06-02",
		OneTimeAttendees: []primitive.ObjectID{dropInID},
	})

	roster, err := svc.Roster(context.Background(), sessionID, "2025-06-02")
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}

	var names []string
	for _, p := range roster {
		names = append(names, p.Name)
	}
	want := []string{"Carla", "Franco"}
	if len(names) != len(want) {
		t.Fatalf("roster = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("roster[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
