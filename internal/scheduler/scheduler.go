package scheduler

import (
	"fmt"

	"github.com/latoulicious/GEMS/pkg/logging"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic maintenance jobs (data backups, cache sweeps)
type Scheduler struct {
	cron   *cron.Cron
	logger logging.Logger
}

// New creates an empty scheduler
func New(factory logging.LoggerFactory) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: factory.CreateLogger("scheduler"),
	}
}

// AddJob registers a named job on the given cron spec
func (s *Scheduler) AddJob(spec, name string, job func() error) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := job(); err != nil {
			s.logger.Error("Scheduled job failed", err, map[string]interface{}{"job": name})
			return
		}
		s.logger.Debug("Scheduled job completed", map[string]interface{}{"job": name})
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}

	s.logger.Info("Job scheduled", map[string]interface{}{"job": name, "spec": spec})
	return nil
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler, waiting for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
