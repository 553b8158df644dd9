package engine

import "go.mongodb.org/mongo-driver/bson/primitive"

// RecoveryBalances computes each active person's make-up credit balance
// over the full attendance history: +1 for every justified absence
// accrued, -1 for every one-time attendance consumed. Credits and debits
// are deliberately not tied to a particular session, and the balance is
// not clamped — a person who dropped in more often than they were excused
// goes negative.
//
// Inactive people are excluded entirely; their historical appearances are
// ignored.
func (s *Snapshot) RecoveryBalances() map[primitive.ObjectID]int {
	balances := make(map[primitive.ObjectID]int)
	for _, p := range s.People {
		if p.IsActive() {
			balances[p.ID] = 0
		}
	}
	for _, record := range s.Attendance {
		for _, pid := range record.JustifiedAbsenceIDs {
			if _, ok := balances[pid]; ok {
				balances[pid]++
			}
		}
		for _, pid := range record.OneTimeAttendees {
			if _, ok := balances[pid]; ok {
				balances[pid]--
			}
		}
	}
	return balances
}

// PendingRecoveryCount is the number of active people holding unconsumed
// make-up credit (balance greater than zero).
func (s *Snapshot) PendingRecoveryCount() int {
	count := 0
	for _, balance := range s.RecoveryBalances() {
		if balance > 0 {
			count++
		}
	}
	return count
}
