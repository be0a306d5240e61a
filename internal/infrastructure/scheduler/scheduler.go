package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"tripspot/pkg/logger"
)

// Job is a unit of background maintenance work.
type Job func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	names   map[cron.EntryID]string
}

// New creates a scheduler whose jobs each run under timeout.
func New(timeout time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		timeout: timeout,
		names:   make(map[cron.EntryID]string),
	}
}

// Register adds job under a standard five-field cron spec.
func (s *Scheduler) Register(name, spec string, job Job) error {
	id, err := s.cron.AddFunc(spec, func() {
		s.run(name, job)
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job %s: %w", name, err)
	}
	s.names[id] = name
	logger.Info("Scheduled %s (%s)", name, spec)
	return nil
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	logger.Info("Starting scheduled %s", name)
	if err := job(ctx); err != nil {
		logger.Error("Scheduled %s failed: %v", name, err)
		return
	}
	logger.Info("Finished scheduled %s in %s", name, time.Since(start).Round(time.Millisecond))
}

// RunNow executes a job synchronously outside the schedule.
func (s *Scheduler) RunNow(name string, job Job) {
	s.run(name, job)
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Scheduler started with %d jobs", len(s.names))
}

// Stop halts the schedule and waits for running jobs.
func (s *Scheduler) Stop() {
	logger.Info("Stopping scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Scheduler stopped")
}

func (s *Scheduler) Jobs() []string {
	out := make([]string, 0, len(s.names))
	for _, entry := range s.cron.Entries() {
		out = append(out, s.names[entry.ID])
	}
	return out
}
