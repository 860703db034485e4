// Package scheduler runs the ingestion, correlation and report jobs on cron specs.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/hoops-edge/internal/metrics"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// EntryInfo describes a scheduled job.
type EntryInfo struct {
	Name string
	Spec string
	Next time.Time
	Prev time.Time
}

type entry struct {
	id   cron.EntryID
	spec string
	job  Job
}

// Scheduler manages the scheduled jobs
type Scheduler struct {
	cron       *cron.Cron
	logger     *logrus.Logger
	mu         sync.RWMutex
	isRunning  bool
	entries    map[string]entry
	jobTimeout time.Duration
}

// NewScheduler creates a scheduler. Every run gets jobTimeout; an overlapping run of the
// same job is skipped and a panic is recovered.
func NewScheduler(logger *logrus.Logger, jobTimeout time.Duration) *Scheduler {
	cronLogger := cron.PrintfLogger(logger)
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger:     logger,
		entries:    make(map[string]entry),
		jobTimeout: jobTimeout,
	}
}

// Schedule registers job under name with a standard five-field cron spec or a descriptor
// such as "@daily".
func (s *Scheduler) Schedule(name, spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if _, ok := s.entries[name]; ok {
		return fmt.Errorf("job %q is already scheduled", name)
	}

	id, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()
		_ = s.run(ctx, name, job)
	})
	if err != nil {
		return fmt.Errorf("failed to add job %q: %w", name, err)
	}

	s.entries[name] = entry{id: id, spec: spec, job: job}
	s.logger.WithFields(logrus.Fields{"job": name, "spec": spec}).Info("Scheduled job")
	return nil
}

// RunNow runs a scheduled job synchronously, outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.RLock()
	e, ok := s.entries[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job %q is not scheduled", name)
	}
	return s.run(ctx, name, e.job)
}

func (s *Scheduler) run(ctx context.Context, name string, job Job) error {
	start := time.Now()
	log := s.logger.WithField("job", name)
	log.Info("Job started")

	err := job(ctx)
	elapsed := time.Since(start)
	metrics.RecordRun(name, elapsed.Seconds())

	if err != nil {
		log.WithError(err).WithField("duration", elapsed.String()).Error("Job failed")
		return err
	}
	log.WithField("duration", elapsed.String()).Info("Job completed")
	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.entries) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.entries)).Info("Scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}
	s.isRunning = false

	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the earliest next run across jobs, or zero when stopped.
func (s *Scheduler) NextRun() time.Time {
	var next time.Time
	for _, e := range s.Entries() {
		if next.IsZero() || (!e.Next.IsZero() && e.Next.Before(next)) {
			next = e.Next
		}
	}
	return next
}

// Entries returns the scheduled jobs ordered by name.
func (s *Scheduler) Entries() []EntryInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]EntryInfo, 0, len(s.entries))
	for name, e := range s.entries {
		info := EntryInfo{Name: name, Spec: e.spec}
		if ce := s.cron.Entry(e.id); ce.Valid() {
			info.Next = ce.Next
			info.Prev = ce.Prev
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Remove unschedules a job
func (s *Scheduler) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot remove job while scheduler is running")
	}
	e, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("job %q is not scheduled", name)
	}
	s.cron.Remove(e.id)
	delete(s.entries, name)
	s.logger.WithField("job", name).Info("Removed job")
	return nil
}
