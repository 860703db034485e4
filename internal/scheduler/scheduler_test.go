package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler() *Scheduler {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewScheduler(logger, time.Minute)
}

func TestScheduleValidation(t *testing.T) {
	s := newTestScheduler()
	noop := func(context.Context) error { return nil }

	assert.Error(t, s.Start(), "no jobs scheduled")
	assert.Error(t, s.Schedule("bad", "not a cron spec", noop))

	require.NoError(t, s.Schedule("ingest", "0 9 * * *", noop))
	assert.Error(t, s.Schedule("ingest", "0 10 * * *", noop), "duplicate name")
	require.NoError(t, s.Schedule("report", "@daily", noop))

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "ingest", entries[0].Name)
	assert.Equal(t, "0 9 * * *", entries[0].Spec)
	assert.Equal(t, "report", entries[1].Name)

	require.NoError(t, s.Remove("report"))
	assert.Error(t, s.Remove("report"))
	assert.Len(t, s.Entries(), 1)
}

func TestRunNow(t *testing.T) {
	s := newTestScheduler()
	var calls int
	boom := errors.New("feed down")
	require.NoError(t, s.Schedule("ingest", "@daily", func(context.Context) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	}))

	require.NoError(t, s.RunNow(context.Background(), "ingest"))
	assert.ErrorIs(t, s.RunNow(context.Background(), "ingest"), boom)
	assert.Equal(t, 2, calls)
	assert.Error(t, s.RunNow(context.Background(), "missing"))
}

func TestStartStop(t *testing.T) {
	s := newTestScheduler()
	var runs atomic.Int32
	done := make(chan struct{}, 1)
	require.NoError(t, s.Schedule("tick", "@every 1s", func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		if runs.Add(1) == 1 {
			done <- struct{}{}
		}
		return nil
	}))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start())
	assert.Error(t, s.Schedule("late", "@daily", func(context.Context) error { return nil }))
	assert.False(t, s.NextRun().IsZero())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.False(t, s.IsRunning())
	require.NoError(t, s.Stop(ctx), "stopping twice is a no-op")
}
