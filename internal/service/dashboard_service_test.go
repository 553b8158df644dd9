package service

import (
	"context"
	"errors"
	"testing"

	"agendia/studio-server/internal/domain"
	"agendia/studio-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeNotificationRepo struct {
	notifications map[primitive.ObjectID]domain.Notification
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *domain.Notification) (primitive.ObjectID, error) {
	notification.ID = primitive.NewObjectID()
	r.notifications[notification.ID] = *notification
	return notification.ID, nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Notification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &n, nil
}

func (r *fakeNotificationRepo) GetAll(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.notifications {
		out = append(out, n)
	}
	return out, nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.notifications[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.notifications, id)
	return nil
}

func newDashboardFixture() (*dashboardService, *fakeSessionRepo, *fakePersonRepo, *fakeNotificationRepo) {
	sessions := &fakeSessionRepo{sessions: map[primitive.ObjectID]domain.Session{}}
	people := &fakePersonRepo{people: map[primitive.ObjectID]domain.Person{}}
	notifications := &fakeNotificationRepo{notifications: map[primitive.ObjectID]domain.Notification{}}
	svc := &dashboardService{
		personRepo:       people,
		sessionRepo:      sessions,
		attendanceRepo:   &fakeAttendanceRepo{records: map[string]domain.AttendanceRecord{}},
		notificationRepo: notifications,
	}
	return svc, sessions, people, notifications
}

func TestEnrollFromWaitlist(t *testing.T) {
	svc, sessions, people, notifications := newDashboardFixture()
	ctx := context.Background()

	personID, _ := people.Create(ctx, &domain.Person{Name: "Ana", Status: domain.PersonActive})
	sessionID, _ := sessions.Create(ctx, &domain.Session{DayOfWeek: domain.DayMonday, Time: "10:00"})
	notificationID, _ := notifications.Create(ctx, &domain.Notification{
		Type:      domain.NotificationWaitlist,
		SessionID: sessionID,
		PersonID:  personID,
	})

	if err := svc.EnrollFromWaitlist(ctx, notificationID, sessionID, personID); err != nil {
		t.Fatalf("EnrollFromWaitlist: %v", err)
	}

	session, _ := sessions.GetByID(ctx, sessionID)
	if len(session.PersonIDs) != 1 || session.PersonIDs[0] != personID {
		t.Errorf("session roster = %v, want just the enrolled person", session.PersonIDs)
	}
	if _, err := notifications.GetByID(ctx, notificationID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("notification should be consumed, got err = %v", err)
	}
}

func TestEnrollFromWaitlistRejections(t *testing.T) {
	svc, sessions, people, notifications := newDashboardFixture()
	ctx := context.Background()

	activeID, _ := people.Create(ctx, &domain.Person{Name: "Ana", Status: domain.PersonActive})
	inactiveID, _ := people.Create(ctx, &domain.Person{Name: "Bruno", Status: domain.PersonInactive})
	sessionID, _ := sessions.Create(ctx, &domain.Session{DayOfWeek: domain.DayMonday, Time: "10:00"})

	waitlistID, _ := notifications.Create(ctx, &domain.Notification{
		Type:      domain.NotificationWaitlist,
		SessionID: sessionID,
		PersonID:  activeID,
	})
	inactiveWaitlistID, _ := notifications.Create(ctx, &domain.Notification{
		Type:      domain.NotificationWaitlist,
		SessionID: sessionID,
		PersonID:  inactiveID,
	})
	churnID, _ := notifications.Create(ctx, &domain.Notification{
		Type:     domain.NotificationChurnRisk,
		PersonID: activeID,
	})

	tests := []struct {
		name           string
		notificationID primitive.ObjectID
		sessionID      primitive.ObjectID
		personID       primitive.ObjectID
		wantErr        error
	}{
		{"unknown notification", primitive.NewObjectID(), sessionID, activeID, ErrNotificationNotFound},
		{"not a waitlist notification", churnID, sessionID, activeID, ErrNotWaitlist},
		{"references do not match", waitlistID, sessionID, inactiveID, ErrNotificationMismatch},
		{"person inactive", inactiveWaitlistID, sessionID, inactiveID, ErrPersonInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.EnrollFromWaitlist(ctx, tt.notificationID, tt.sessionID, tt.personID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// Nothing should have been enrolled by the rejected attempts.
	session, _ := sessions.GetByID(ctx, sessionID)
	if len(session.PersonIDs) != 0 {
		t.Errorf("session roster = %v, want empty", session.PersonIDs)
	}
}

func TestDismissNotification(t *testing.T) {
	svc, _, _, notifications := newDashboardFixture()
	ctx := context.Background()

	id, _ := notifications.Create(ctx, &domain.Notification{Type: domain.NotificationChurnRisk})

	if err := svc.DismissNotification(ctx, id); err != nil {
		t.Fatalf("DismissNotification: %v", err)
	}
	if err := svc.DismissNotification(ctx, id); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("second dismiss err = %v, want ErrNotificationNotFound", err)
	}
}
