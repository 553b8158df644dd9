package engine

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"agendia/studio-server/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnknownLabel is shown when a session references an activity, specialist
// or space that no longer exists.
const UnknownLabel = "N/A"

// nearlyFullThreshold is the utilization at which a session is flagged as
// nearly full.
const nearlyFullThreshold = 0.8

// TimeOfDay buckets a session's start time.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"   // before 12:00
	Afternoon TimeOfDay = "afternoon" // 12:00 to 17:59
	Evening   TimeOfDay = "evening"   // 18:00 onwards
)

// TimeOfDayOf buckets an "HH:MM" time string. An unparseable time falls
// into the Afternoon bucket rather than failing.
func TimeOfDayOf(clock string) TimeOfDay {
	hour, _, ok := parseClock(clock)
	if !ok {
		return Afternoon
	}
	switch {
	case hour < 12:
		return Morning
	case hour < 18:
		return Afternoon
	default:
		return Evening
	}
}

// SessionFilter narrows a day's session list. Zero-valued fields impose
// no restriction.
type SessionFilter struct {
	ActivityID   primitive.ObjectID
	SpaceID      primitive.ObjectID
	SpecialistID primitive.ObjectID
	TimeOfDay    TimeOfDay
}

func (f SessionFilter) matches(sum SessionSummary) bool {
	if !f.ActivityID.IsZero() && sum.Session.ActivityID != f.ActivityID {
		return false
	}
	if !f.SpaceID.IsZero() && sum.Session.SpaceID != f.SpaceID {
		return false
	}
	if !f.SpecialistID.IsZero() && sum.Session.SpecialistID != f.SpecialistID {
		return false
	}
	if f.TimeOfDay != "" && sum.TimeOfDay != f.TimeOfDay {
		return false
	}
	return true
}

// SessionSummary is one session occurrence with its derived occupancy
// facts, ready for display.
type SessionSummary struct {
	Session        domain.Session
	ActivityName   string
	SpecialistName string
	SpaceName      string
	TimeOfDay      TimeOfDay

	// EnrolledIDs is the deduplicated union of active regulars not on
	// vacation and the occurrence's one-time attendees.
	EnrolledIDs   []primitive.ObjectID
	EnrolledCount int
	Capacity      int
	Utilization   float64
	IsFull        bool
	IsNearlyFull  bool
}

// SessionsOn derives the session list for a calendar date: every session
// scheduled on that date's weekday, with enrollment counted per the
// occurrence's attendance record, narrowed by the filter and sorted
// ascending by start time.
func (s *Snapshot) SessionsOn(date time.Time, filter SessionFilter) []SessionSummary {
	dayName := domain.WeekdayName(date)
	dateStr := date.Format(domain.AttendanceDateLayout)

	var summaries []SessionSummary
	for _, sess := range s.Sessions {
		if sess.DayOfWeek != dayName {
			continue
		}
		sum := s.summarize(sess, date, dateStr)
		if filter.matches(sum) {
			summaries = append(summaries, sum)
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Session.Time < summaries[j].Session.Time
	})
	return summaries
}

// summarize computes the derived facts for one session occurrence.
func (s *Snapshot) summarize(sess domain.Session, date time.Time, dateStr string) SessionSummary {
	sum := SessionSummary{
		Session:        sess,
		ActivityName:   UnknownLabel,
		SpecialistName: UnknownLabel,
		SpaceName:      UnknownLabel,
		TimeOfDay:      TimeOfDayOf(sess.Time),
	}
	if a := s.ActivityByID(sess.ActivityID); a != nil {
		sum.ActivityName = a.Name
	}
	if sp := s.SpecialistByID(sess.SpecialistID); sp != nil {
		sum.SpecialistName = sp.Name
	}

	space := s.SpaceByID(sess.SpaceID)
	if space != nil {
		sum.SpaceName = space.Name
	}

	// Individual sessions hold exactly one person no matter the room.
	switch {
	case sess.SessionType == domain.SessionIndividual:
		sum.Capacity = 1
	case space != nil:
		sum.Capacity = space.Capacity
	}

	seen := make(map[primitive.ObjectID]bool)
	for _, pid := range sess.PersonIDs {
		p := s.PersonByID(pid)
		if p == nil || !p.IsActive() || OnVacation(p, date) {
			continue
		}
		if !seen[pid] {
			seen[pid] = true
			sum.EnrolledIDs = append(sum.EnrolledIDs, pid)
		}
	}
	if record := s.AttendanceFor(sess.ID, dateStr); record != nil {
		for _, pid := range record.OneTimeAttendees {
			if !seen[pid] {
				seen[pid] = true
				sum.EnrolledIDs = append(sum.EnrolledIDs, pid)
			}
		}
	}
	sum.EnrolledCount = len(sum.EnrolledIDs)

	if sum.Capacity > 0 {
		sum.Utilization = float64(sum.EnrolledCount) / float64(sum.Capacity)
	}
	sum.IsFull = sum.Utilization >= 1.0
	sum.IsNearlyFull = sum.Utilization >= nearlyFullThreshold && !sum.IsFull
	return sum
}

// AttendanceLeadTime is how long before a session's start attendance
// taking opens.
const AttendanceLeadTime = 20 * time.Minute

// AttendanceAllowed reports whether attendance may be taken for a session
// occurring on the given day, at the given instant. The window opens
// AttendanceLeadTime before the session starts and never closes. A
// session with an unparseable time is treated as not yet reached.
//
// The gate is advisory; whatever records attendance must check it again.
func AttendanceAllowed(sess domain.Session, day time.Time, now time.Time) bool {
	hour, minute, ok := parseClock(sess.Time)
	if !ok {
		return false
	}
	y, m, d := day.Date()
	start := time.Date(y, m, d, hour, minute, 0, 0, day.Location())
	return !now.Before(start.Add(-AttendanceLeadTime))
}

// ValidClock reports whether clock is a parseable 24h "HH:MM" time.
func ValidClock(clock string) bool {
	_, _, ok := parseClock(clock)
	return ok
}

// parseClock parses a zero-padded 24h "HH:MM" string.
func parseClock(clock string) (hour, minute int, ok bool) {
	hh, mm, found := strings.Cut(clock, ":")
	if !found {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
