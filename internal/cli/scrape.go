package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/toolm8/toolm8/internal/config"
	"github.com/toolm8/toolm8/internal/database"
	"github.com/toolm8/toolm8/internal/database/tools"
	"github.com/toolm8/toolm8/internal/scraper"
)

// ScrapeCommand crawls the directory site and imports new tools.
type ScrapeCommand struct {
	BaseURL      string
	DatabasePath string
	MaxPages     int
	Delay        time.Duration
}

// NewScrapeCommand creates a new ScrapeCommand
func NewScrapeCommand() *ScrapeCommand {
	return &ScrapeCommand{}
}

// ParseFlags parses command line flags
func (cmd *ScrapeCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("scrape", flag.ExitOnError)

	fs.StringVar(&cmd.BaseURL, "base-url", config.DefaultScrapeBaseURL, "Listing page to start crawling from")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.IntVar(&cmd.MaxPages, "pages", 5, "Maximum number of listing pages to crawl")
	fs.DurationVar(&cmd.Delay, "delay", 2*time.Second, "Delay between requests")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s scrape [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Crawl the directory site for new tools. Tools already in the catalog\n")
		fmt.Fprintf(os.Stderr, "(matched by name, URL or slug) are skipped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the scrape command
func (cmd *ScrapeCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Ctrl-C stops the crawl but still reports what was collected so far.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := scraper.New(scraper.NewFetcher(cmd.Delay), tools.NewRepository(db.DB), cmd.BaseURL)

	result, err := s.Run(ctx, cmd.MaxPages)
	if result != nil {
		fmt.Printf("Pages crawled: %d\n", result.PagesCrawled)
		fmt.Printf("Links found:   %d\n", result.LinksFound)
		fmt.Printf("Tools parsed:  %d\n", result.ToolsParsed)
		fmt.Printf("Inserted:      %d\n", result.Inserted)
		fmt.Printf("Duplicates:    %d\n", result.Duplicates)
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	return err
}
