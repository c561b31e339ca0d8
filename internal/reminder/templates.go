// Package reminder scans active loans and emits due-date reminders and
// overdue alerts, deduplicated per calendar day.
package reminder

import (
	"fmt"
	"time"

	"github.com/literahq/litera-server/internal/domain"
)

// reminderWindow is how many days before the due date reminders begin.
const reminderWindow = 3

// Classification is the outcome of the day-delta state machine for one
// loan: the dedup type key plus the rendered notification text.
type Classification struct {
	TypeKey string
	Kind    domain.NotificationKind
	Title   string
	Body    string
}

// Classify decides whether a loan needs a notification today. Reminders
// fire at 3, 2 and 1 days before the due date and on the day itself;
// overdue alerts are keyed by the exact day count so each further day
// produces a distinct key. Loans due more than 3 days out need nothing.
func Classify(loan *domain.Loan, now time.Time) (Classification, bool) {
	delta := loan.DayDelta(now)

	if delta > reminderWindow {
		return Classification{}, false
	}

	if delta < 0 {
		daysOverdue := -delta
		return Classification{
			TypeKey: fmt.Sprintf("overdue_%d", daysOverdue),
			Kind:    domain.NotificationOverdue,
			Title:   "Overdue book",
			Body:    overdueBody(loan.Title, daysOverdue),
		}, true
	}

	c := Classification{Kind: domain.NotificationReturnReminder, Title: "Return reminder"}
	switch delta {
	case 3:
		c.TypeKey = "3_days"
		c.Body = fmt.Sprintf("%q is due back in 3 days.", loan.Title)
	case 2:
		c.TypeKey = "2_days"
		c.Body = fmt.Sprintf("%q is due back in 2 days.", loan.Title)
	case 1:
		c.TypeKey = "1_day"
		c.Body = fmt.Sprintf("%q is due back tomorrow.", loan.Title)
	case 0:
		c.TypeKey = "due_today"
		c.Body = fmt.Sprintf("%q is due back today.", loan.Title)
	}
	return c, true
}

func overdueBody(title string, days int) string {
	if days == 1 {
		return fmt.Sprintf("%q is 1 day overdue. Please return it.", title)
	}
	return fmt.Sprintf("%q is %d days overdue. Please return it.", title, days)
}
