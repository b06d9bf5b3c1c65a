package tasks

import "time"

// Config sizes the queue for its one workload: long-running directory crawls
// triggered from the admin API or the cron schedule.
type Config struct {
	// Workers is the number of concurrent task workers. Crawls share a
	// single rate-limited fetcher, so extra workers buy nothing.
	Workers int

	// ReleaseAfter is how long a claimed task may sit before it is handed
	// back to the queue. Must outlast the crawl timeout.
	ReleaseAfter time.Duration

	// CleanupInterval is how often finished tasks are purged.
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config sized for scheduled crawls: one worker, and
// release/cleanup windows generous enough for a full multi-page crawl.
func DefaultConfig() Config {
	return Config{
		Workers:         1,
		ReleaseAfter:    90 * time.Minute,
		CleanupInterval: 6 * time.Hour,
	}
}
