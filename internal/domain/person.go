package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersonStatus distinguishes people who currently attend the studio from
// people kept for history. Inactive people are excluded from every
// enrollment and occupancy count.
type PersonStatus string

const (
	PersonActive   PersonStatus = "active"
	PersonInactive PersonStatus = "inactive"
)

// VacationRange is an inclusive date range during which a person is away.
// Start and End are date values (midnight UTC); the time-of-day component
// is ignored when checking membership.
type VacationRange struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Person is a studio member (or former member). People are enrolled in
// sessions via Session.PersonIDs and may additionally appear in attendance
// records as one-time attendees or justified absences.
type Person struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Phone  string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Status PersonStatus       `bson:"status" json:"status"`

	// PaymentDueDate is the next date by which the person's fee is due.
	// Nil means no billing data is on file.
	PaymentDueDate *time.Time `bson:"paymentDueDate,omitempty" json:"paymentDueDate,omitempty"`

	Vacations []VacationRange `bson:"vacations,omitempty" json:"vacations,omitempty"`

	// PhotoObjectKey is the storage key of the person's profile photo,
	// empty when no photo has been uploaded.
	PhotoObjectKey string `bson:"photoObjectKey,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (p *Person) IsActive() bool {
	return p.Status == PersonActive
}
