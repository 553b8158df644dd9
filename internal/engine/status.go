package engine

import (
	"time"

	"agendia/studio-server/internal/domain"
)

// PaymentStatus classifies a person's billing state at a reference
// instant.
type PaymentStatus string

const (
	PaymentCurrent PaymentStatus = "current"
	PaymentOverdue PaymentStatus = "overdue"
	PaymentUnknown PaymentStatus = "unknown"
)

// PaymentStatusOf derives a person's payment status at the given instant.
// A person with no billing data on file is Unknown, never Overdue. The
// due day itself still counts as Current; the person becomes Overdue the
// following day.
func PaymentStatusOf(p *domain.Person, now time.Time) PaymentStatus {
	if p == nil || p.PaymentDueDate == nil {
		return PaymentUnknown
	}
	if dateOf(now).After(dateOf(*p.PaymentDueDate)) {
		return PaymentOverdue
	}
	return PaymentCurrent
}

// OnVacation reports whether the instant falls within one of the person's
// recorded vacation ranges. Bounds are inclusive and compared at calendar
// date granularity; a person with no vacation data is not on vacation.
func OnVacation(p *domain.Person, at time.Time) bool {
	if p == nil {
		return false
	}
	day := dateOf(at)
	for _, v := range p.Vacations {
		if !day.Before(dateOf(v.Start)) && !day.After(dateOf(v.End)) {
			return true
		}
	}
	return false
}

// dateOf reduces an instant to its calendar date, as observed in the
// instant's own location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
