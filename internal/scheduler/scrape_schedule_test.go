package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolm8/toolm8/internal/scraper"
)

type fakeRunner struct {
	runs  atomic.Int32
	block chan struct{}
}

func (f *fakeRunner) Run(ctx context.Context, maxPages int) (*scraper.Result, error) {
	f.runs.Add(1)
	if f.block != nil {
		<-f.block
	}
	return &scraper.Result{}, nil
}

func TestSchedulerDisabledWithoutSchedule(t *testing.T) {
	s := NewScrapeScheduler(&fakeRunner{}, "", 5)

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestSchedulerRejectsInvalidSchedule(t *testing.T) {
	s := NewScrapeScheduler(&fakeRunner{}, "not a schedule", 5)

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron schedule")
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewScrapeScheduler(&fakeRunner{}, "0 3 * * *", 5)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	require.NotNil(t, s.GetNextRunTime())

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScrapeScheduler(&fakeRunner{}, "0 3 * * *", 5)

	require.NoError(t, s.Start(ctx))
	cancel()

	require.Eventually(t, func() bool {
		return !s.IsRunning()
	}, time.Second, 10*time.Millisecond)
}

func TestSchedulerRunNow(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScrapeScheduler(runner, "0 3 * * *", 5)

	s.RunNow()

	require.Eventually(t, func() bool {
		return runner.runs.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSchedulerSkipsOverlappingRuns(t *testing.T) {
	runner := &fakeRunner{block: make(chan struct{})}
	s := NewScrapeScheduler(runner, "0 3 * * *", 5)

	// First run blocks inside the runner; the second must be skipped.
	go s.runScrape()
	require.Eventually(t, func() bool {
		return runner.runs.Load() == 1
	}, time.Second, 10*time.Millisecond)

	s.runScrape()
	assert.EqualValues(t, 1, runner.runs.Load())

	close(runner.block)
}
