package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/literahq/litera-server/internal/domain"
)

func loanDueIn(days int, now time.Time) *domain.Loan {
	return &domain.Loan{
		ID:      "loan-1",
		UserID:  "user-1",
		Title:   "Dune",
		Status:  domain.LoanBorrowed,
		DueDate: now.AddDate(0, 0, days),
	}
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		dueIn    int
		wantKey  string
		wantKind domain.NotificationKind
		wantOK   bool
	}{
		{name: "more than window away", dueIn: 4, wantOK: false},
		{name: "three days out", dueIn: 3, wantKey: "3_days", wantKind: domain.NotificationReturnReminder, wantOK: true},
		{name: "two days out", dueIn: 2, wantKey: "2_days", wantKind: domain.NotificationReturnReminder, wantOK: true},
		{name: "one day out", dueIn: 1, wantKey: "1_day", wantKind: domain.NotificationReturnReminder, wantOK: true},
		{name: "due today", dueIn: 0, wantKey: "due_today", wantKind: domain.NotificationReturnReminder, wantOK: true},
		{name: "one day overdue", dueIn: -1, wantKey: "overdue_1", wantKind: domain.NotificationOverdue, wantOK: true},
		{name: "five days overdue", dueIn: -5, wantKey: "overdue_5", wantKind: domain.NotificationOverdue, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Classify(loanDueIn(tt.dueIn, now), now)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantKey, c.TypeKey)
			assert.Equal(t, tt.wantKind, c.Kind)
			assert.Contains(t, c.Body, "Dune")
		})
	}
}

func TestClassify_TimeOfDayIsIgnored(t *testing.T) {
	// Due 23:59 tonight, scanned 00:01 today: still "due today", not a
	// fractional day.
	now := time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC)
	loan := &domain.Loan{Title: "Dune", DueDate: time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)}

	c, ok := Classify(loan, now)
	require.True(t, ok)
	assert.Equal(t, "due_today", c.TypeKey)
}

func TestClassify_OverdueKeysGrowDaily(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	loan := loanDueIn(-4, now)

	c1, ok := Classify(loan, now)
	require.True(t, ok)
	c2, ok := Classify(loan, now.AddDate(0, 0, 1))
	require.True(t, ok)

	assert.Equal(t, "overdue_4", c1.TypeKey)
	assert.Equal(t, "overdue_5", c2.TypeKey)
	assert.NotEqual(t, c1.TypeKey, c2.TypeKey)
}
