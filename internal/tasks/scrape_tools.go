package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/toolm8/toolm8/internal/scraper"
)

// ScrapeToolsTask crawls the directory site for new tools. Queued by the
// admin scrape endpoint and the scheduler so HTTP callers get an immediate
// response while the crawl runs in the background.
type ScrapeToolsTask struct {
	MaxPages int `json:"max_pages"`
}

// Config returns the queue configuration for scrape tasks.
func (t ScrapeToolsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "scrape_tools",
		MaxAttempts: 1,
		Backoff:     5 * time.Minute,
		Timeout:     60 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ScrapeToolsProcessor creates a processor function for ScrapeToolsTask.
func ScrapeToolsProcessor(s *scraper.Scraper) backlite.QueueProcessor[ScrapeToolsTask] {
	return func(ctx context.Context, task ScrapeToolsTask) error {
		if s == nil {
			return fmt.Errorf("scraper not configured")
		}

		maxPages := task.MaxPages
		if maxPages <= 0 {
			maxPages = 5
		}

		result, err := s.Run(ctx, maxPages)
		if err != nil {
			return fmt.Errorf("scrape tools: %w", err)
		}

		log.Printf("[TASK] Scrape finished: %d pages, %d parsed, %d inserted, %d duplicates",
			result.PagesCrawled, result.ToolsParsed, result.Inserted, result.Duplicates)
		return nil
	}
}

// NewScrapeToolsQueue creates a backlite queue for scrape tasks.
func NewScrapeToolsQueue(s *scraper.Scraper) backlite.Queue {
	return backlite.NewQueue(ScrapeToolsProcessor(s))
}
