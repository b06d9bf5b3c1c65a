// Package scheduler runs the directory scrape on a cron schedule so the
// catalog keeps itself fresh without manual triggers.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/toolm8/toolm8/internal/scraper"
)

// ScrapeRunner is the crawl the scheduler drives; implemented by
// internal/scraper.Scraper.
type ScrapeRunner interface {
	Run(ctx context.Context, maxPages int) (*scraper.Result, error)
}

// ScrapeScheduler manages periodic scrapes of the directory site.
type ScrapeScheduler struct {
	runner   ScrapeRunner
	schedule string
	maxPages int

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc

	// scrapeMu prevents overlapping crawls when a run outlasts the interval.
	scrapeMu sync.Mutex
}

// NewScrapeScheduler creates a new scheduler instance. The schedule uses
// standard five-field cron syntax; an empty schedule disables the scheduler.
func NewScrapeScheduler(runner ScrapeRunner, schedule string, maxPages int) *ScrapeScheduler {
	return &ScrapeScheduler{
		runner:   runner,
		schedule: schedule,
		maxPages: maxPages,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if a schedule is configured.
func (s *ScrapeScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.schedule == "" {
		log.Printf("Scrape scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runScrape()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Scrape scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *ScrapeScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Scrape scheduler: stopped")
}

// RunNow triggers an immediate scrape outside the schedule.
func (s *ScrapeScheduler) RunNow() {
	go s.runScrape()
}

// IsRunning returns whether the scheduler is active.
func (s *ScrapeScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next scrape will occur.
func (s *ScrapeScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *ScrapeScheduler) runScrape() {
	if !s.scrapeMu.TryLock() {
		log.Printf("Scheduled scrape: skipped (previous run still in progress)")
		return
	}
	defer s.scrapeMu.Unlock()

	log.Printf("Scheduled scrape: starting (max %d pages)", s.maxPages)
	startTime := time.Now()

	result, err := s.runner.Run(context.Background(), s.maxPages)
	if err != nil {
		log.Printf("Scheduled scrape: failed: %v", err)
		return
	}

	log.Printf("Scheduled scrape: %d inserted, %d duplicates in %v",
		result.Inserted, result.Duplicates, time.Since(startTime).Round(time.Millisecond))
}
