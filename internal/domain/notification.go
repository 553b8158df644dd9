package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType identifies the alert a notification carries.
type NotificationType string

const (
	// NotificationWaitlist signals that a freed slot in a session can be
	// offered to a previously waitlisted person.
	NotificationWaitlist NotificationType = "waitlist"
	// NotificationChurnRisk flags a person who has missed several
	// consecutive sessions.
	NotificationChurnRisk NotificationType = "churnRisk"
)

// Notification is an alert shown on the dashboard until it is dismissed
// or acted on. SessionID and PersonID are type-specific references; a
// notification whose references no longer resolve is stale.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      NotificationType   `bson:"type" json:"type"`
	SessionID primitive.ObjectID `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	PersonID  primitive.ObjectID `bson:"personId,omitempty" json:"personId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
