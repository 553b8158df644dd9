package engine

import (
	"testing"
	"time"

	"agendia/studio-server/internal/domain"
)

func TestPaymentStatusOf(t *testing.T) {
	due := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	withDue := activePerson("Ana")
	withDue.PaymentDueDate = &due
	noBilling := activePerson("Bruno")

	tests := []struct {
		name   string
		person *domain.Person
		now    time.Time
		want   PaymentStatus
	}{
		{"no billing data", &noBilling, due, PaymentUnknown},
		{"nil person", nil, due, PaymentUnknown},
		{"before due date", &withDue, due.AddDate(0, 0, -3), PaymentCurrent},
		{"on the due day", &withDue, due.Add(23 * time.Hour), PaymentCurrent},
		{"day after due date", &withDue, due.AddDate(0, 0, 1), PaymentOverdue},
		{"long overdue", &withDue, due.AddDate(0, 2, 0), PaymentOverdue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PaymentStatusOf(tt.person, tt.now); got != tt.want {
				t.Errorf("PaymentStatusOf = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOnVacation(t *testing.T) {
	p := activePerson("Ana")
	p.Vacations = []domain.VacationRange{
		{
			Start: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			Start: time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC), // single day
		},
	}
	none := activePerson("Bruno")

	tests := []struct {
		name   string
		person *domain.Person
		at     time.Time
		want   bool
	}{
		{"day before range", &p, time.Date(2025, 6, 30, 23, 0, 0, 0, time.UTC), false},
		{"first day inclusive", &p, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), true},
		{"mid range", &p, time.Date(2025, 7, 8, 15, 30, 0, 0, time.UTC), true},
		{"last day inclusive", &p, time.Date(2025, 7, 14, 23, 59, 0, 0, time.UTC), true},
		{"day after range", &p, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), false},
		{"single-day range", &p, time.Date(2025, 12, 24, 9, 0, 0, 0, time.UTC), true},
		{"no vacation data", &none, time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC), false},
		{"nil person", nil, time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OnVacation(tt.person, tt.at); got != tt.want {
				t.Errorf("OnVacation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	pastDue := now.AddDate(0, 0, -10)

	overdue := activePerson("Ana")
	overdue.PaymentDueDate = &pastDue
	away := activePerson("Bruno")
	away.Vacations = []domain.VacationRange{{Start: now.AddDate(0, 0, -1), End: now.AddDate(0, 0, 5)}}
	inactive := domain.Person{Name: "Eva", Status: domain.PersonInactive, PaymentDueDate: &pastDue}

	snap := &Snapshot{
		People:      []domain.Person{overdue, away, inactive},
		Sessions:    make([]domain.Session, 4),
		Specialists: make([]domain.Specialist, 2),
		Activities:  make([]domain.Activity, 3),
		Spaces:      make([]domain.Space, 1),
	}

	got := snap.Summarize(now)
	want := Summary{
		ActivePeople: 2,
		Sessions:     4,
		Specialists:  2,
		Activities:   3,
		Spaces:       1,
		Overdue:      1,
		OnVacation:   1,
	}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}
