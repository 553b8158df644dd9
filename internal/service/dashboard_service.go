package service

import (
	"context"
	"errors"
	"time"

	"agendia/studio-server/internal/domain"
	"agendia/studio-server/internal/engine"
	"agendia/studio-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotificationMismatch = errors.New("notification does not reference this session and person")
	ErrNotWaitlist          = errors.New("notification is not a waitlist notification")
	ErrPersonNotFound       = errors.New("person not found")
	ErrPersonInactive       = errors.New("person is inactive")
	ErrSessionNotFound      = errors.New("session not found")
)

// DashboardService exposes the derived studio state and the commands the
// dashboard can issue against it. Every read loads a fresh snapshot from
// the store and recomputes; there is no cached derived state to go stale.
type DashboardService interface {
	Summary(ctx context.Context) (engine.Summary, error)
	SessionsOn(ctx context.Context, date time.Time, filter engine.SessionFilter) ([]engine.SessionSummary, error)
	Notifications(ctx context.Context) ([]engine.ResolvedNotification, error)

	// EnrollFromWaitlist moves a waitlisted person onto the session's
	// regular roster and removes the notification.
	EnrollFromWaitlist(ctx context.Context, notificationID, sessionID, personID primitive.ObjectID) error
	// DismissNotification removes a notification without acting on it.
	DismissNotification(ctx context.Context, notificationID primitive.ObjectID) error
}

// dashboardService implements the DashboardService interface.
type dashboardService struct {
	personRepo       repository.PersonRepository
	sessionRepo      repository.SessionRepository
	attendanceRepo   repository.AttendanceRepository
	notificationRepo repository.NotificationRepository
	activityRepo     repository.ActivityRepository
	specialistRepo   repository.SpecialistRepository
	spaceRepo        repository.SpaceRepository
}

// NewDashboardService creates a new instance of dashboardService.
func NewDashboardService(
	personRepo repository.PersonRepository,
	sessionRepo repository.SessionRepository,
	attendanceRepo repository.AttendanceRepository,
	notificationRepo repository.NotificationRepository,
	activityRepo repository.ActivityRepository,
	specialistRepo repository.SpecialistRepository,
	spaceRepo repository.SpaceRepository,
) DashboardService {
	return &dashboardService{
		personRepo:       personRepo,
		sessionRepo:      sessionRepo,
		attendanceRepo:   attendanceRepo,
		notificationRepo: notificationRepo,
		activityRepo:     activityRepo,
		specialistRepo:   specialistRepo,
		spaceRepo:        spaceRepo,
	}
}

// loadSnapshot reads all studio entities into an immutable engine snapshot.
func (s *dashboardService) loadSnapshot(ctx context.Context) (*engine.Snapshot, error) {
	people, err := s.personRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	attendance, err := s.attendanceRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	notifications, err := s.notificationRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	activities, err := s.activityRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	specialists, err := s.specialistRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	spaces, err := s.spaceRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &engine.Snapshot{
		People:        people,
		Sessions:      sessions,
		Attendance:    attendance,
		Notifications: notifications,
		Activities:    activities,
		Specialists:   specialists,
		Spaces:        spaces,
	}, nil
}

// Summary derives the dashboard card counters.
func (s *dashboardService) Summary(ctx context.Context) (engine.Summary, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return engine.Summary{}, err
	}
	return snap.Summarize(time.Now()), nil
}

// SessionsOn derives the filtered session list for one calendar date.
func (s *dashboardService) SessionsOn(ctx context.Context, date time.Time, filter engine.SessionFilter) ([]engine.SessionSummary, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.SessionsOn(date, filter), nil
}

// Notifications resolves the outstanding notifications for display.
func (s *dashboardService) Notifications(ctx context.Context) ([]engine.ResolvedNotification, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.ResolveNotifications(), nil
}

// EnrollFromWaitlist enrolls the waitlisted person and consumes the
// notification. The notification must still reference the given session
// and person; a stale or mismatched notification is rejected.
func (s *dashboardService) EnrollFromWaitlist(ctx context.Context, notificationID, sessionID, personID primitive.ObjectID) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if notification.Type != domain.NotificationWaitlist {
		return ErrNotWaitlist
	}
	if notification.SessionID != sessionID || notification.PersonID != personID {
		return ErrNotificationMismatch
	}

	person, err := s.personRepo.GetByID(ctx, personID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPersonNotFound
		}
		return err
	}
	if !person.IsActive() {
		return ErrPersonInactive
	}

	if err := s.sessionRepo.AddPersonToSession(ctx, sessionID, personID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	// The slot is taken; the notification has served its purpose.
	return s.notificationRepo.Delete(ctx, notificationID)
}

// DismissNotification removes a notification.
func (s *dashboardService) DismissNotification(ctx context.Context, notificationID primitive.ObjectID) error {
	err := s.notificationRepo.Delete(ctx, notificationID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}
