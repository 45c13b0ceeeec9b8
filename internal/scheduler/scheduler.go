// Package scheduler wraps robfig/cron with named jobs and structured
// run logging.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Job is a named unit of scheduled work.
type Job interface {
	Name() string
	Run() error
}

// Scheduler runs registered jobs on cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// New creates a stopped scheduler.
func New() *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: log.With().Str("component", "scheduler").Logger(),
	}
}

// AddJob registers a job under a cron spec such as "@every 5m".
func (s *Scheduler) AddJob(spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := job.Run(); err != nil {
			s.logger.Error().Err(err).Str("job", job.Name()).Msg("Scheduled job failed")
			return
		}
		s.logger.Debug().Str("job", job.Name()).Msg("Scheduled job completed")
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("job", job.Name()).Str("schedule", spec).Msg("Job registered")
	return nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("Scheduler started")
}

// Stop halts the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Scheduler stopped")
}
