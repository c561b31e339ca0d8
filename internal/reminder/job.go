package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Result is the outcome of one scan attempt.
type Result int

const (
	// ResultSuccess means the scan completed (possibly with per-loan
	// failures, which are logged and do not fail the pass).
	ResultSuccess Result = iota
	// ResultRetry means the attempt failed in a way worth retrying:
	// the scan timed out or the store was briefly unavailable.
	ResultRetry
	// ResultFailure means the job must not be retried: either the retry
	// budget is spent or the process is shutting down.
	ResultFailure
)

func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultRetry:
		return "retry"
	case ResultFailure:
		return "failure"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// scanRunner is what the job needs from the scanner.
type scanRunner interface {
	Scan(ctx context.Context) (ScanStats, error)
}

// Job wraps the scanner with a per-attempt timeout and a bounded retry
// budget. Each attempt gets a fresh timeout; once the budget is spent the
// job reports permanent failure and schedules nothing further.
type Job struct {
	scanner    scanRunner
	timeout    time.Duration
	maxRetries int
	logger     *slog.Logger
}

// NewJob creates the scheduled reminder job.
func NewJob(scanner scanRunner, timeout time.Duration, maxRetries int, logger *slog.Logger) *Job {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Job{scanner: scanner, timeout: timeout, maxRetries: maxRetries, logger: logger}
}

// Name identifies the job in scheduler logs.
func (j *Job) Name() string { return "reminder-scan" }

// Execute runs the scan, retrying retryable failures until the budget is
// exhausted. Returns nil on success, the last attempt's error otherwise.
func (j *Job) Execute(ctx context.Context) error {
	var lastErr error

	for attempt := 0; attempt <= j.maxRetries; attempt++ {
		result, err := j.runOnce(ctx)
		switch result {
		case ResultSuccess:
			return nil
		case ResultFailure:
			return err
		case ResultRetry:
			lastErr = err
			if j.logger != nil {
				j.logger.Warn("reminder scan attempt failed",
					"attempt", attempt+1,
					"max_attempts", j.maxRetries+1,
					"error", err,
				)
			}
		}
	}

	return fmt.Errorf("reminder scan failed permanently after %d attempts: %w", j.maxRetries+1, lastErr)
}

// runOnce performs a single bounded attempt.
func (j *Job) runOnce(ctx context.Context) (Result, error) {
	scanCtx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	stats, err := j.scanner.Scan(scanCtx)
	if err == nil {
		if j.logger != nil {
			j.logger.Info("reminder scan succeeded", "sent", stats.Sent, "scanned", stats.Scanned)
		}
		return ResultSuccess, nil
	}

	// A parent cancellation means shutdown, not a transient fault.
	if ctx.Err() != nil {
		return ResultFailure, fmt.Errorf("reminder scan canceled: %w", ctx.Err())
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ResultRetry, fmt.Errorf("reminder scan timed out after %s: %w", j.timeout, err)
	}

	// Store-level failures are treated as transient.
	return ResultRetry, err
}
