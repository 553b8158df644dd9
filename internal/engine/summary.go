package engine

import "time"

// Summary holds the dashboard card counters.
type Summary struct {
	ActivePeople int `json:"activePeople"`
	Sessions     int `json:"sessions"`
	Specialists  int `json:"specialists"`
	Activities   int `json:"activities"`
	Spaces       int `json:"spaces"`

	// Cross-cutting alerts over active people.
	Overdue         int `json:"overdue"`
	OnVacation      int `json:"onVacation"`
	PendingRecovery int `json:"pendingRecovery"`
}

// Summarize derives the dashboard counters at the given instant.
func (s *Snapshot) Summarize(now time.Time) Summary {
	sum := Summary{
		Sessions:    len(s.Sessions),
		Specialists: len(s.Specialists),
		Activities:  len(s.Activities),
		Spaces:      len(s.Spaces),
	}
	for i := range s.People {
		p := &s.People[i]
		if !p.IsActive() {
			continue
		}
		sum.ActivePeople++
		if PaymentStatusOf(p, now) == PaymentOverdue {
			sum.Overdue++
		}
		if OnVacation(p, now) {
			sum.OnVacation++
		}
	}
	sum.PendingRecovery = s.PendingRecoveryCount()
	return sum
}
