package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestScheduler_RunAtStart(t *testing.T) {
	var runs atomic.Int32
	s := New(zap.NewNop())
	s.Register(Job{
		Name:       "sync",
		Interval:   time.Hour,
		RunAtStart: true,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	s.Start(context.Background())
	defer s.Stop()

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_TicksOnInterval(t *testing.T) {
	var runs atomic.Int32
	s := New(zap.NewNop())
	s.Register(Job{
		Name:     "tick",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	s.Start(context.Background())
	defer s.Stop()

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_ErrorKeepsSchedule(t *testing.T) {
	var runs atomic.Int32
	s := New(zap.NewNop())
	s.Register(Job{
		Name:     "flaky",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return errors.New("boom")
		},
	})

	s.Start(context.Background())
	defer s.Stop()

	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_StopWaitsForJobs(t *testing.T) {
	var runs atomic.Int32
	s := New(zap.NewNop())
	s.Register(Job{
		Name:       "once",
		Interval:   time.Hour,
		RunAtStart: true,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()

	before := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before, runs.Load())

	// Stop twice is safe.
	s.Stop()
}
