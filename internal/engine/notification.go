package engine

import (
	"sort"

	"agendia/studio-server/internal/domain"
)

// ResolvedNotification is a notification with its references resolved
// against the snapshot, ready for display.
//
// A stale notification (a waitlist alert whose session, person or
// activity no longer resolves, or whose person went inactive) is shown as
// dismissible only. A notification that should not be shown at all is
// simply absent from the resolved list.
type ResolvedNotification struct {
	Notification domain.Notification
	Stale        bool

	// Resolved references, nil where unresolved or not applicable.
	Person   *domain.Person
	Session  *domain.Session
	Activity *domain.Activity

	// CanEnroll is set on live waitlist notifications: the person may be
	// enrolled into the session's regular roster.
	CanEnroll bool
}

// ResolveNotifications resolves every notification against the snapshot
// and returns the displayable ones, newest first.
//
// Waitlist notifications degrade to stale instead of disappearing so the
// operator can clear them. Churn-risk notifications about unresolved or
// inactive people are dropped silently, as are notifications of
// unrecognized types.
func (s *Snapshot) ResolveNotifications() []ResolvedNotification {
	var resolved []ResolvedNotification
	for _, n := range s.Notifications {
		switch n.Type {
		case domain.NotificationWaitlist:
			resolved = append(resolved, s.resolveWaitlist(n))
		case domain.NotificationChurnRisk:
			person := s.PersonByID(n.PersonID)
			if person == nil || !person.IsActive() {
				continue
			}
			resolved = append(resolved, ResolvedNotification{Notification: n, Person: person})
		}
	}
	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].Notification.CreatedAt.After(resolved[j].Notification.CreatedAt)
	})
	return resolved
}

func (s *Snapshot) resolveWaitlist(n domain.Notification) ResolvedNotification {
	session := s.SessionByID(n.SessionID)
	person := s.PersonByID(n.PersonID)
	var activity *domain.Activity
	if session != nil {
		activity = s.ActivityByID(session.ActivityID)
	}
	if session == nil || person == nil || activity == nil || !person.IsActive() {
		return ResolvedNotification{Notification: n, Stale: true}
	}
	return ResolvedNotification{
		Notification: n,
		Person:       person,
		Session:      session,
		Activity:     activity,
		CanEnroll:    true,
	}
}
