package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientCreatesQueueDatabase(t *testing.T) {
	tmpDir := t.TempDir()

	client, err := NewClient(filepath.Join(tmpDir, "toolm8.db"), DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, client)

	// Queue state goes to a sibling file, not the catalog database.
	_, err = os.Stat(filepath.Join(tmpDir, "toolm8-tasks.db"))
	assert.NoError(t, err)

	assert.NoError(t, client.Close())
}

func TestClientStartStop(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "toolm8.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	assert.True(t, client.Stop(stopCtx), "stop should succeed with no tasks in flight")
}

// sampleTask stands in for a crawl job in queue-level tests.
type sampleTask struct {
	Pages int `json:"pages"`
}

func (t sampleTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "sample",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     5 * time.Second,
	}
}

func TestClientRunsEnqueuedTask(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "toolm8.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	executed := make(chan int, 1)
	client.Register(backlite.NewQueue(func(ctx context.Context, task sampleTask) error {
		executed <- task.Pages
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Add(sampleTask{Pages: 3}).Save()
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	select {
	case pages := <-executed:
		assert.Equal(t, 3, pages)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}
}

func TestScrapeToolsTaskConfig(t *testing.T) {
	task := ScrapeToolsTask{MaxPages: 5}
	cfg := task.Config()

	assert.Equal(t, "scrape_tools", cfg.Name)
	assert.Equal(t, 1, cfg.MaxAttempts)
	assert.Equal(t, 60*time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// One worker: crawls share a rate-limited fetcher and must not overlap.
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 90*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, 6*time.Hour, cfg.CleanupInterval)
}
