package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionType determines how a session's capacity is derived:
// Individual sessions always hold exactly one person, Group sessions
// fill up to the capacity of their space.
type SessionType string

const (
	SessionIndividual SessionType = "Individual"
	SessionGroup      SessionType = "Group"
)

// Weekday names as stored on session documents. The studio records the
// localized day name, not a number, so the 0=Sunday..6=Saturday mapping
// below is load-bearing and must not be reordered.
const (
	DaySunday    = "Domingo"
	DayMonday    = "Lunes"
	DayTuesday   = "Martes"
	DayWednesday = "Miércoles"
	DayThursday  = "Jueves"
	DayFriday    = "Viernes"
	DaySaturday  = "Sábado"
)

// weekdayNames is indexed by time.Weekday (Sunday = 0).
var weekdayNames = [7]string{
	DaySunday, DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday, DaySaturday,
}

// WeekdayName returns the localized day name sessions are keyed on for
// the given instant.
func WeekdayName(t time.Time) string {
	return weekdayNames[int(t.Weekday())]
}

// Session is a recurring weekly time slot for an activity, held by a
// specialist in a space. Time is a zero-padded 24h "HH:MM" string, so
// lexicographic order is chronological order.
type Session struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	DayOfWeek    string               `bson:"dayOfWeek" json:"dayOfWeek"`
	Time         string               `bson:"time" json:"time"`
	SessionType  SessionType          `bson:"sessionType" json:"sessionType"`
	ActivityID   primitive.ObjectID   `bson:"activityId" json:"activityId"`
	SpecialistID primitive.ObjectID   `bson:"specialistId" json:"specialistId"`
	SpaceID      primitive.ObjectID   `bson:"spaceId" json:"spaceId"`
	PersonIDs    []primitive.ObjectID `bson:"personIds,omitempty" json:"personIds"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}
