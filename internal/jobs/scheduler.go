// Package jobs runs the recurring maintenance work (expiry, completion,
// reminders) on in-process tickers. Job state is deliberately ephemeral: a
// restart resets every status, and the underlying commands are written to be
// safe to re-run.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"shortstay/internal/pkg/clock"
	"shortstay/internal/pkg/config"
	"shortstay/internal/pkg/errs"
)

var ErrUnknownJob = errs.New("unknown job")

// JobFunc does one batch of work and reports how many items it processed.
type JobFunc func(ctx context.Context) (int, error)

type JobStatus struct {
	Name         string        `json:"name"`
	Interval     time.Duration `json:"interval"`
	Running      bool          `json:"running"`
	Runs         int           `json:"runs"`
	Failures     int           `json:"failures"`
	LastRun      *time.Time    `json:"last_run,omitempty"`
	LastDuration time.Duration `json:"last_duration"`
	LastCount    int           `json:"last_count"`
	LastError    string        `json:"last_error,omitempty"`
}

type job struct {
	name     string
	interval time.Duration
	fn       JobFunc

	// runMu serializes executions of this job; a manual trigger and a tick
	// never overlap.
	runMu  sync.Mutex
	status JobStatus
}

type Scheduler struct {
	mu      sync.Mutex
	jobs    []*job
	byName  map[string]*job
	cfg     config.JobsConfig
	clock   clock.Clock
	logger  *slog.Logger
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

func NewScheduler(cfg config.JobsConfig, clk clock.Clock, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		byName: make(map[string]*job),
		cfg:    cfg,
		clock:  clk,
		logger: logger,
	}
}

func (s *Scheduler) Register(name string, interval time.Duration, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j := &job{name: name, interval: interval, fn: fn}
	j.status = JobStatus{Name: name, Interval: interval}
	s.jobs = append(s.jobs, j)
	s.byName[name] = j
}

// Start launches one ticker goroutine per registered job. Each job also runs
// once immediately so work that accumulated while the process was down is
// drained without waiting a full interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, j)
	}
	s.logger.Info("job scheduler started", "jobs", len(s.jobs))
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.logger.Info("job scheduler stopped")
}

// Trigger runs a job once, synchronously, with the same retry behavior as a
// scheduled run. It blocks until any in-flight run of the same job finishes.
func (s *Scheduler) Trigger(ctx context.Context, name string) (*JobStatus, error) {
	s.mu.Lock()
	j, ok := s.byName[name]
	s.mu.Unlock()
	if !ok {
		return nil, errs.Mark(errs.Newf("no job named %q", name), ErrUnknownJob)
	}

	s.run(ctx, j)

	status := s.snapshot(j)
	return &status, nil
}

func (s *Scheduler) Statuses() []JobStatus {
	s.mu.Lock()
	jobs := make([]*job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	out := make([]JobStatus, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, s.snapshot(j))
	}
	return out
}

func (s *Scheduler) loop(ctx context.Context, j *job) {
	defer s.wg.Done()

	s.run(ctx, j)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.run(ctx, j)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, j *job) {
	j.runMu.Lock()
	defer j.runMu.Unlock()

	s.setRunning(j, true)
	defer s.setRunning(j, false)

	started := s.clock.Now()
	var (
		count int
		err   error
	)
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			s.logger.Warn("retrying job", "job", j.name, "attempt", attempt, "error", err.Error())
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.cfg.RetryDelay):
			}
		}

		count, err = s.invoke(ctx, j)
		if err == nil {
			break
		}
	}

	now := s.clock.Now()
	s.mu.Lock()
	j.status.Runs++
	j.status.LastRun = &now
	j.status.LastDuration = now.Sub(started)
	j.status.LastCount = count
	if err != nil {
		j.status.Failures++
		j.status.LastError = err.Error()
	} else {
		j.status.LastError = ""
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("job failed after retries", "job", j.name, "error", err.Error())
	} else if count > 0 {
		s.logger.Info("job run finished", "job", j.name, "processed", count)
	}
}

// invoke isolates a panicking job so one bad run cannot take the scheduler
// down with it.
func (s *Scheduler) invoke(ctx context.Context, j *job) (count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.Newf("job %s panicked: %v", j.name, r)
		}
	}()
	return j.fn(ctx)
}

func (s *Scheduler) setRunning(j *job, running bool) {
	s.mu.Lock()
	j.status.Running = running
	s.mu.Unlock()
}

func (s *Scheduler) snapshot(j *job) JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return j.status
}
