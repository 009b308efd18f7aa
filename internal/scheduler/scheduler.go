// Package scheduler drives periodic refreshes of refreshable data
// sources, keeping simulated market volatility moving between requests.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/agrolytics/cropsense/internal/source"
)

// Scheduler periodically refreshes the registered sources.
type Scheduler struct {
	scheduler *gocron.Scheduler
	targets   []source.Refresher
	interval  time.Duration
	log       *slog.Logger
}

// New creates a Scheduler refreshing targets at the given interval.
func New(targets []source.Refresher, interval time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		targets:   targets,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.targets) == 0 {
		s.log.Info("scheduler: no refresh targets configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		s.log.Debug("scheduler: running source refresh job")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		for _, target := range s.targets {
			if err := target.Refresh(ctx); err != nil {
				s.log.Warn("scheduler: refresh failed", slog.Any("error", err))
			}
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
