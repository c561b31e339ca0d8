package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Scheduler runs the reminder job once a day at a fixed UTC wall-clock
// time and supports an on-demand trigger for the admin endpoint.
type Scheduler struct {
	scheduler *gocron.Scheduler
	job       *Job
	logger    *slog.Logger

	mu      sync.Mutex
	started bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewScheduler registers the job at the given daily time ("HH:MM", UTC).
func NewScheduler(job *Job, dailyAt string, logger *slog.Logger) (*Scheduler, error) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		job:       job,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}

	if _, err := s.scheduler.Every(1).Day().At(dailyAt).Do(s.run); err != nil {
		cancel()
		return nil, fmt.Errorf("register reminder job at %q: %w", dailyAt, err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	if s.logger != nil {
		s.logger.Info("executing scheduled job", "job", s.job.Name())
	}
	if err := s.job.Execute(s.ctx); err != nil {
		if s.logger != nil {
			s.logger.Error("scheduled job failed", "job", s.job.Name(), "error", err)
		}
		return
	}
	if s.logger != nil {
		s.logger.Info("scheduled job completed", "job", s.job.Name())
	}
}

// Start begins the daily schedule. Idempotent.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.scheduler.StartAsync()
	s.started = true

	if s.logger != nil {
		for _, j := range s.scheduler.Jobs() {
			s.logger.Info("job scheduled", "job", s.job.Name(), "next_run", j.NextRun())
		}
	}
}

// TriggerNow runs the job immediately in the background, outside the
// daily schedule. The on-demand path shares the job's retry and dedup
// behavior, so triggering after the daily run is harmless.
func (s *Scheduler) TriggerNow() {
	go func() {
		if s.logger != nil {
			s.logger.Info("manually triggering job", "job", s.job.Name())
		}
		if err := s.job.Execute(s.ctx); err != nil && s.logger != nil {
			s.logger.Error("manual job execution failed", "job", s.job.Name(), "error", err)
		}
	}()
}

// NextRun reports when the daily job fires next, if the scheduler runs.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || len(s.scheduler.Jobs()) == 0 {
		return nil
	}
	next := s.scheduler.Jobs()[0].NextRun()
	return &next
}

// Shutdown stops the schedule and signals any running job to stop.
func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		s.cancel()
		return nil
	}

	s.cancel()
	s.scheduler.Stop()
	s.started = false

	if s.logger != nil {
		s.logger.Info("scheduler stopped", "job", s.job.Name())
	}
	return nil
}
