package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceDateLayout is the calendar-date format attendance records are
// keyed on.
const AttendanceDateLayout = "2006-01-02"

// AttendanceRecord captures what happened at one occurrence of a session.
// At most one record exists per (session, date) pair; the repository
// enforces this with a unique compound index.
//
// OneTimeAttendees are people attending this occurrence only (a drop-in
// or a consumed make-up credit). JustifiedAbsenceIDs are regular
// enrollees excused for this occurrence, each accruing a make-up credit.
type AttendanceRecord struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	SessionID           primitive.ObjectID   `bson:"sessionId" json:"sessionId"`
	Date                string               `bson:"date" json:"date"` // "2006-01-02"
	PresentIDs          []primitive.ObjectID `bson:"presentIds,omitempty" json:"presentIds"`
	OneTimeAttendees    []primitive.ObjectID `bson:"oneTimeAttendees,omitempty" json:"oneTimeAttendees"`
	JustifiedAbsenceIDs []primitive.ObjectID `bson:"justifiedAbsenceIds,omitempty" json:"justifiedAbsenceIds"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time            `bson:"updatedAt" json:"updatedAt"`
}
