package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"agendia/studio-server/internal/domain"
	"agendia/studio-server/internal/engine"
	"agendia/studio-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidDate            = errors.New("date must be in YYYY-MM-DD format")
	ErrWrongWeekday           = errors.New("date does not fall on the session's weekday")
	ErrAttendanceWindowClosed = errors.New("attendance opens 20 minutes before the session starts")
)

// AttendanceChanges carries the full attendee state for one session
// occurrence: who of the regulars showed up, who dropped in, and which
// regulars were excused.
type AttendanceChanges struct {
	PresentIDs          []primitive.ObjectID `json:"presentIds"`
	OneTimeAttendees    []primitive.ObjectID `json:"oneTimeAttendees"`
	JustifiedAbsenceIDs []primitive.ObjectID `json:"justifiedAbsenceIds"`
}

type AttendanceService interface {
	// RecordAttendance writes the attendance record for a session
	// occurrence. The UI disables the button until the attendance window
	// opens, but the 20-minute gate is enforced again here.
	RecordAttendance(ctx context.Context, sessionID primitive.ObjectID, date string, changes AttendanceChanges) (*domain.AttendanceRecord, error)

	// Roster lists the people enrolled in a session occurrence (active
	// regulars not on vacation plus one-time attendees), sorted by name.
	Roster(ctx context.Context, sessionID primitive.ObjectID, date string) ([]domain.Person, error)
}

// attendanceService implements the AttendanceService interface.
type attendanceService struct {
	sessionRepo    repository.SessionRepository
	personRepo     repository.PersonRepository
	attendanceRepo repository.AttendanceRepository
	now            func() time.Time
}

// NewAttendanceService creates a new instance of attendanceService.
func NewAttendanceService(
	sessionRepo repository.SessionRepository,
	personRepo repository.PersonRepository,
	attendanceRepo repository.AttendanceRepository,
) AttendanceService {
	return &attendanceService{
		sessionRepo:    sessionRepo,
		personRepo:     personRepo,
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

// RecordAttendance validates the occurrence and upserts its record.
func (s *attendanceService) RecordAttendance(ctx context.Context, sessionID primitive.ObjectID, date string, changes AttendanceChanges) (*domain.AttendanceRecord, error) {
	day, err := time.ParseInLocation(domain.AttendanceDateLayout, date, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.DayOfWeek != domain.WeekdayName(day) {
		return nil, ErrWrongWeekday
	}
	if !engine.AttendanceAllowed(*session, day, s.now()) {
		return nil, ErrAttendanceWindowClosed
	}

	record := &domain.AttendanceRecord{
		SessionID:           sessionID,
		Date:                date,
		PresentIDs:          changes.PresentIDs,
		OneTimeAttendees:    changes.OneTimeAttendees,
		JustifiedAbsenceIDs: changes.JustifiedAbsenceIDs,
	}
	if err := s.attendanceRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Roster computes the enrolled people for one session occurrence.
func (s *attendanceService) Roster(ctx context.Context, sessionID primitive.ObjectID, date string) ([]domain.Person, error) {
	day, err := time.ParseInLocation(domain.AttendanceDateLayout, date, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	people, err := s.personRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]domain.Person, len(people))
	for _, p := range people {
		byID[p.ID] = p
	}

	seen := make(map[primitive.ObjectID]bool)
	roster := []domain.Person{}
	add := func(pid primitive.ObjectID, skipVacationing bool) {
		if seen[pid] {
			return
		}
		p, ok := byID[pid]
		if !ok || !p.IsActive() {
			return
		}
		if skipVacationing && engine.OnVacation(&p, day) {
			return
		}
		seen[pid] = true
		roster = append(roster, p)
	}
	for _, pid := range session.PersonIDs {
		add(pid, true)
	}

	record, err := s.attendanceRepo.GetBySessionAndDate(ctx, sessionID, date)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if record != nil {
		// One-time attendees are there regardless of vacation status.
		for _, pid := range record.OneTimeAttendees {
			add(pid, false)
		}
	}

	sort.Slice(roster, func(i, j int) bool { return roster[i].Name < roster[j].Name })
	return roster, nil
}
