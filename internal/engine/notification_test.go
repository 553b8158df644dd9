package engine

import (
	"testing"
	"time"

	"agendia/studio-server/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveWaitlist(t *testing.T) {
	activity := domain.Activity{ID: primitive.NewObjectID(), Name: "Yoga"}
	person := activePerson("Ana")
	sess := domain.Session{
		ID:         primitive.NewObjectID(),
		DayOfWeek:  domain.DayMonday,
		Time:       "09:00",
		ActivityID: activity.ID,
	}
	n := domain.Notification{
		ID:        primitive.NewObjectID(),
		Type:      domain.NotificationWaitlist,
		SessionID: sess.ID,
		PersonID:  person.ID,
		CreatedAt: time.Now(),
	}
	snap := &Snapshot{
		People:        []domain.Person{person},
		Sessions:      []domain.Session{sess},
		Activities:    []domain.Activity{activity},
		Notifications: []domain.Notification{n},
	}

	got := snap.ResolveNotifications()
	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
	if got[0].Stale || !got[0].CanEnroll {
		t.Errorf("expected live waitlist notification, got stale=%v canEnroll=%v", got[0].Stale, got[0].CanEnroll)
	}
	if got[0].Activity == nil || got[0].Activity.Name != "Yoga" {
		t.Error("expected activity resolved through the session")
	}
}

func TestResolveWaitlistStale(t *testing.T) {
	person := activePerson("Ana")
	activity := domain.Activity{ID: primitive.NewObjectID(), Name: "Yoga"}
	sess := domain.Session{ID: primitive.NewObjectID(), ActivityID: activity.ID}

	tests := []struct {
		name string
		snap Snapshot
	}{
		{"session deleted", Snapshot{People: []domain.Person{person}, Activities: []domain.Activity{activity}}},
		{"person deleted", Snapshot{Sessions: []domain.Session{sess}, Activities: []domain.Activity{activity}}},
		{"activity deleted", Snapshot{People: []domain.Person{person}, Sessions: []domain.Session{sess}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.snap.Notifications = []domain.Notification{{
				ID:        primitive.NewObjectID(),
				Type:      domain.NotificationWaitlist,
				SessionID: sess.ID,
				PersonID:  person.ID,
			}}
			got := tt.snap.ResolveNotifications()
			if len(got) != 1 {
				t.Fatalf("expected the stale notification to remain visible, got %d", len(got))
			}
			if !got[0].Stale || got[0].CanEnroll {
				t.Errorf("expected stale dismiss-only notification, got stale=%v canEnroll=%v", got[0].Stale, got[0].CanEnroll)
			}
		})
	}
}

func TestResolveChurnRiskDropsInactive(t *testing.T) {
	inactive := domain.Person{ID: primitive.NewObjectID(), Name: "Eva", Status: domain.PersonInactive}
	snap := &Snapshot{
		People: []domain.Person{inactive},
		Notifications: []domain.Notification{
			{ID: primitive.NewObjectID(), Type: domain.NotificationChurnRisk, PersonID: inactive.ID},
			{ID: primitive.NewObjectID(), Type: domain.NotificationChurnRisk, PersonID: primitive.NewObjectID()},
		},
	}

	if got := snap.ResolveNotifications(); len(got) != 0 {
		t.Errorf("churn-risk notifications for inactive or missing people must be dropped, got %d", len(got))
	}
}

func TestResolveDropsUnknownTypes(t *testing.T) {
	snap := &Snapshot{
		Notifications: []domain.Notification{
			{ID: primitive.NewObjectID(), Type: "somethingElse"},
		},
	}
	if got := snap.ResolveNotifications(); len(got) != 0 {
		t.Errorf("unrecognized notification types must be suppressed, got %d", len(got))
	}
}

func TestResolveNotificationsNewestFirst(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	older := activePerson("Ana")
	newer := activePerson("Bruno")
	snap := &Snapshot{
		People: []domain.Person{older, newer},
		Notifications: []domain.Notification{
			{ID: primitive.NewObjectID(), Type: domain.NotificationChurnRisk, PersonID: older.ID, CreatedAt: base},
			{ID: primitive.NewObjectID(), Type: domain.NotificationChurnRisk, PersonID: newer.ID, CreatedAt: base.Add(time.Hour)},
		},
	}

	got := snap.ResolveNotifications()
	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[0].Person.Name != "Bruno" || got[1].Person.Name != "Ana" {
		t.Errorf("expected newest first, got %s then %s", got[0].Person.Name, got[1].Person.Name)
	}
}
