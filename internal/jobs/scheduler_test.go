//go:build unit

package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"shortstay/internal/jobs"
	"shortstay/internal/pkg/clock"
	"shortstay/internal/pkg/config"
	"shortstay/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T, cfg config.JobsConfig) *jobs.Scheduler {
	t.Helper()
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return jobs.NewScheduler(cfg, clk, logger)
}

func fastRetryConfig() config.JobsConfig {
	cfg := config.NewTestConfig().Jobs
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func TestTrigger(t *testing.T) {
	t.Run("runs the job and reports its count", func(t *testing.T) {
		s := newTestScheduler(t, fastRetryConfig())
		s.Register("sweep", time.Hour, func(ctx context.Context) (int, error) {
			return 4, nil
		})

		status, err := s.Trigger(context.Background(), "sweep")
		require.NoError(t, err)

		assert.Equal(t, "sweep", status.Name)
		assert.Equal(t, 1, status.Runs)
		assert.Equal(t, 0, status.Failures)
		assert.Equal(t, 4, status.LastCount)
		assert.Empty(t, status.LastError)
		require.NotNil(t, status.LastRun)
	})

	t.Run("records how long the run took", func(t *testing.T) {
		clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		s := jobs.NewScheduler(fastRetryConfig(), clk, logger)
		s.Register("slow-sweep", time.Hour, func(ctx context.Context) (int, error) {
			clk.Add(250 * time.Millisecond)
			return 1, nil
		})

		status, err := s.Trigger(context.Background(), "slow-sweep")
		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, status.LastDuration)
	})

	t.Run("unknown job", func(t *testing.T) {
		s := newTestScheduler(t, fastRetryConfig())

		_, err := s.Trigger(context.Background(), "no-such-job")
		assert.ErrorIs(t, err, jobs.ErrUnknownJob)
	})

	t.Run("retries until the job succeeds", func(t *testing.T) {
		s := newTestScheduler(t, fastRetryConfig())
		calls := 0
		s.Register("flaky", time.Hour, func(ctx context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errs.New("transient")
			}
			return 7, nil
		})

		status, err := s.Trigger(context.Background(), "flaky")
		require.NoError(t, err)

		assert.Equal(t, 3, calls)
		assert.Equal(t, 1, status.Runs)
		assert.Equal(t, 0, status.Failures, "a run that eventually succeeds is not a failure")
		assert.Equal(t, 7, status.LastCount)
	})

	t.Run("exhausted retries record the failure", func(t *testing.T) {
		cfg := fastRetryConfig()
		cfg.MaxRetries = 2
		s := newTestScheduler(t, cfg)
		calls := 0
		s.Register("broken", time.Hour, func(ctx context.Context) (int, error) {
			calls++
			return 0, errs.New("still down")
		})

		status, err := s.Trigger(context.Background(), "broken")
		require.NoError(t, err, "Trigger reports run outcome through the status, not its error")

		assert.Equal(t, 3, calls, "initial attempt plus MaxRetries")
		assert.Equal(t, 1, status.Failures)
		assert.Contains(t, status.LastError, "still down")
	})

	t.Run("a panicking job is contained", func(t *testing.T) {
		cfg := fastRetryConfig()
		cfg.MaxRetries = 0
		s := newTestScheduler(t, cfg)
		s.Register("explosive", time.Hour, func(ctx context.Context) (int, error) {
			panic("boom")
		})

		status, err := s.Trigger(context.Background(), "explosive")
		require.NoError(t, err)

		assert.Equal(t, 1, status.Failures)
		assert.Contains(t, status.LastError, "panicked")
		assert.Contains(t, status.LastError, "boom")
	})

	t.Run("success clears a previous error", func(t *testing.T) {
		cfg := fastRetryConfig()
		cfg.MaxRetries = 0
		s := newTestScheduler(t, cfg)
		fail := true
		s.Register("recovering", time.Hour, func(ctx context.Context) (int, error) {
			if fail {
				return 0, errs.New("first run fails")
			}
			return 1, nil
		})

		_, err := s.Trigger(context.Background(), "recovering")
		require.NoError(t, err)

		fail = false
		status, err := s.Trigger(context.Background(), "recovering")
		require.NoError(t, err)

		assert.Equal(t, 2, status.Runs)
		assert.Equal(t, 1, status.Failures)
		assert.Empty(t, status.LastError)
	})
}

func TestStatuses(t *testing.T) {
	s := newTestScheduler(t, fastRetryConfig())
	s.Register("first", 5*time.Minute, func(ctx context.Context) (int, error) { return 0, nil })
	s.Register("second", time.Hour, func(ctx context.Context) (int, error) { return 0, nil })

	statuses := s.Statuses()
	require.Len(t, statuses, 2)

	assert.Equal(t, "first", statuses[0].Name)
	assert.Equal(t, 5*time.Minute, statuses[0].Interval)
	assert.Equal(t, "second", statuses[1].Name)
	assert.Zero(t, statuses[0].Runs)
	assert.Nil(t, statuses[0].LastRun)
}

func TestStartRunsJobsImmediately(t *testing.T) {
	s := newTestScheduler(t, fastRetryConfig())
	done := make(chan struct{})
	s.Register("drain", time.Hour, func(ctx context.Context) (int, error) {
		close(done)
		return 2, nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run on start")
	}
}

func TestStopWaitsForJobs(t *testing.T) {
	s := newTestScheduler(t, fastRetryConfig())
	started := make(chan struct{})
	s.Register("slow", time.Hour, func(ctx context.Context) (int, error) {
		close(started)
		time.Sleep(50 * time.Millisecond)
		return 1, nil
	})

	s.Start()
	<-started
	s.Stop()

	status := s.Statuses()[0]
	assert.Equal(t, 1, status.Runs, "Stop must wait for the in-flight run")
	assert.False(t, status.Running)
}
