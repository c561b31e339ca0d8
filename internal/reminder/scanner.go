package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/literahq/litera-server/internal/domain"
	"github.com/literahq/litera-server/internal/id"
	"github.com/literahq/litera-server/internal/store"
)

// Dispatcher delivers a notification through the configured channels.
// Satisfied by notify.Dispatcher.
type Dispatcher interface {
	Dispatch(ctx context.Context, n *domain.Notification)
}

// ScanStats summarizes one scan pass.
type ScanStats struct {
	Scanned int
	Sent    int
	Skipped int
	Failed  int
}

// Scanner walks loans, classifies each against today's date and emits
// whatever notifications are due, writing a dedup marker per send.
type Scanner struct {
	store      *store.Store
	dispatcher Dispatcher
	logger     *slog.Logger

	// now is swappable in tests.
	now func() time.Time
}

// NewScanner creates a scanner over the given store and dispatcher.
func NewScanner(s *store.Store, d Dispatcher, logger *slog.Logger) *Scanner {
	return &Scanner{store: s, dispatcher: d, logger: logger, now: time.Now}
}

// Scan processes every active loan. Per-loan failures are logged and
// skipped; only a context cancellation or a failure to list loans aborts
// the pass.
func (s *Scanner) Scan(ctx context.Context) (ScanStats, error) {
	loans, err := s.store.ActiveLoans(ctx)
	if err != nil {
		return ScanStats{}, fmt.Errorf("list active loans: %w", err)
	}
	return s.process(ctx, loans)
}

// ScanByStatus is the status-keyed variant: it processes only loans in
// the given state. It shares the same classification and dedup discipline
// as Scan, so running both never double-sends.
func (s *Scanner) ScanByStatus(ctx context.Context, status domain.LoanStatus) (ScanStats, error) {
	loans, err := s.store.LoansByStatus(ctx, status)
	if err != nil {
		return ScanStats{}, fmt.Errorf("list loans by status: %w", err)
	}
	return s.process(ctx, loans)
}

func (s *Scanner) process(ctx context.Context, loans []*domain.Loan) (ScanStats, error) {
	var stats ScanStats
	now := s.now()

	for _, loan := range loans {
		// A timeout abandons the remaining loans; the caller decides
		// whether to retry the whole pass.
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		stats.Scanned++
		sent, err := s.processLoan(ctx, loan, now)
		if err != nil {
			stats.Failed++
			if s.logger != nil {
				s.logger.Warn("reminder processing failed", "loan_id", loan.ID, "error", err)
			}
			continue
		}
		if sent {
			stats.Sent++
		} else {
			stats.Skipped++
		}
	}

	if s.logger != nil {
		s.logger.Info("reminder scan finished",
			"scanned", stats.Scanned,
			"sent", stats.Sent,
			"skipped", stats.Skipped,
			"failed", stats.Failed,
		)
	}
	return stats, ctx.Err()
}

// processLoan runs the classify / dedup-check / send / mark sequence for
// one loan. The marker check and write are not atomic; see
// domain.SentMarker for why that race is accepted.
func (s *Scanner) processLoan(ctx context.Context, loan *domain.Loan, now time.Time) (bool, error) {
	c, ok := Classify(loan, now)
	if !ok {
		return false, nil
	}

	dateSent := domain.DateKey(now)
	markerID := domain.MarkerID(loan.UserID, loan.ID, c.TypeKey, dateSent)

	exists, err := s.store.MarkerExists(ctx, markerID)
	if err != nil {
		return false, fmt.Errorf("check dedup marker: %w", err)
	}
	if exists {
		return false, nil
	}

	notifID, err := id.Generate("notif")
	if err != nil {
		return false, err
	}

	s.dispatcher.Dispatch(ctx, &domain.Notification{
		ID:               notifID,
		UserID:           loan.UserID,
		Kind:             c.Kind,
		Title:            c.Title,
		Message:          c.Body,
		RelatedItemID:    loan.ID,
		RelatedItemTitle: loan.Title,
		Timestamp:        now,
	})

	marker := &domain.SentMarker{
		UserID:   loan.UserID,
		LoanID:   loan.ID,
		TypeKey:  c.TypeKey,
		DateSent: dateSent,
		SentAt:   now,
	}
	if err := s.store.PutMarker(ctx, marker); err != nil {
		return false, fmt.Errorf("write dedup marker: %w", err)
	}
	return true, nil
}
