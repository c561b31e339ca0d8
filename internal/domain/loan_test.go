package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoan_DayDelta(t *testing.T) {
	// Fixed "today" late in the evening to exercise midnight truncation.
	now := time.Date(2025, 3, 10, 23, 45, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{"due in three days", time.Date(2025, 3, 13, 1, 0, 0, 0, time.UTC), 3},
		{"due tomorrow", time.Date(2025, 3, 11, 0, 30, 0, 0, time.UTC), 1},
		{"due today, earlier hour", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), 0},
		{"five days overdue", time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC), -5},
		{"far in the future", time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := &Loan{DueDate: tt.due}
			assert.Equal(t, tt.want, loan.DayDelta(now))
		})
	}
}

func TestLoan_Lifecycle(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	loan := &Loan{ID: "loan-1", Status: LoanWaitingBorrowConfirm}

	assert.False(t, loan.Active())

	loan.ConfirmBorrow(now)
	assert.Equal(t, LoanBorrowed, loan.Status)
	assert.True(t, loan.Active())
	assert.Equal(t, now.Add(LoanPeriod), loan.DueDate)
	assert.Equal(t, 7, loan.DayDelta(now))

	loan.Status = LoanWaitingReturnConfirm
	assert.True(t, loan.Active(), "loan is still out while waiting for return confirmation")

	loan.ConfirmReturn(now.Add(LoanPeriod))
	assert.Equal(t, LoanReturned, loan.Status)
	assert.False(t, loan.Active())
	assert.NotNil(t, loan.ReturnDate)
}

func TestMarkerID(t *testing.T) {
	assert.Equal(t, "u1:l1:overdue_5:2025-03-10", MarkerID("u1", "l1", "overdue_5", "2025-03-10"))

	m := &SentMarker{UserID: "u1", LoanID: "l1", TypeKey: "3_days", DateSent: "2025-03-10"}
	assert.Equal(t, "u1:l1:3_days:2025-03-10", m.ID())
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2025-03-10", DateKey(time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)))
}

func TestUser_DeviceTokens(t *testing.T) {
	u := &User{ID: "u1"}

	assert.True(t, u.AddDeviceToken("tok-a"))
	assert.False(t, u.AddDeviceToken("tok-a"), "duplicate tokens are ignored")
	assert.False(t, u.AddDeviceToken(""))
	assert.True(t, u.AddDeviceToken("tok-b"))

	assert.True(t, u.RemoveDeviceToken("tok-a"))
	assert.False(t, u.RemoveDeviceToken("tok-a"))
	assert.Equal(t, []string{"tok-b"}, u.DeviceTokens)
}
