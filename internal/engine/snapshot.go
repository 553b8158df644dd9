// Package engine computes the derived studio state the dashboard shows:
// payment and vacation status, per-day session occupancy, make-up credit
// balances and actionable notifications.
//
// Every function is a pure, total function of an immutable Snapshot and a
// reference instant. The engine never mutates the snapshot and never talks
// to the store; callers load a fresh snapshot whenever the underlying data
// may have changed and simply recompute.
package engine

import (
	"agendia/studio-server/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Snapshot is a read-only view of all studio entities at one point in
// time. The slices are owned by the caller and must not be modified while
// derivations run.
type Snapshot struct {
	People        []domain.Person
	Sessions      []domain.Session
	Attendance    []domain.AttendanceRecord
	Notifications []domain.Notification
	Activities    []domain.Activity
	Specialists   []domain.Specialist
	Spaces        []domain.Space
}

// PersonByID returns the person with the given ID, or nil when the
// reference does not resolve.
func (s *Snapshot) PersonByID(id primitive.ObjectID) *domain.Person {
	for i := range s.People {
		if s.People[i].ID == id {
			return &s.People[i]
		}
	}
	return nil
}

// SessionByID returns the session with the given ID, or nil.
func (s *Snapshot) SessionByID(id primitive.ObjectID) *domain.Session {
	for i := range s.Sessions {
		if s.Sessions[i].ID == id {
			return &s.Sessions[i]
		}
	}
	return nil
}

// ActivityByID returns the activity with the given ID, or nil.
func (s *Snapshot) ActivityByID(id primitive.ObjectID) *domain.Activity {
	for i := range s.Activities {
		if s.Activities[i].ID == id {
			return &s.Activities[i]
		}
	}
	return nil
}

// SpecialistByID returns the specialist with the given ID, or nil.
func (s *Snapshot) SpecialistByID(id primitive.ObjectID) *domain.Specialist {
	for i := range s.Specialists {
		if s.Specialists[i].ID == id {
			return &s.Specialists[i]
		}
	}
	return nil
}

// SpaceByID returns the space with the given ID, or nil.
func (s *Snapshot) SpaceByID(id primitive.ObjectID) *domain.Space {
	for i := range s.Spaces {
		if s.Spaces[i].ID == id {
			return &s.Spaces[i]
		}
	}
	return nil
}

// AttendanceFor returns the attendance record for one occurrence of a
// session, or nil when attendance has not been taken. There is at most
// one record per (session, date) pair.
func (s *Snapshot) AttendanceFor(sessionID primitive.ObjectID, date string) *domain.AttendanceRecord {
	for i := range s.Attendance {
		if s.Attendance[i].SessionID == sessionID && s.Attendance[i].Date == date {
			return &s.Attendance[i]
		}
	}
	return nil
}

// ActivePeople returns the people currently attending the studio.
func (s *Snapshot) ActivePeople() []domain.Person {
	var active []domain.Person
	for _, p := range s.People {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}
