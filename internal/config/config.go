package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Scraper
		ScrapeSchedule
		Admin
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Scraper struct {
		BaseURL      string
		RequestDelay time.Duration
		MaxPages     int
	}
	ScrapeSchedule struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Admin struct {
		// Key guards the admin endpoints. Empty key disables them entirely.
		Key        string
		BcryptCost int
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Scraper defaults
	v.SetDefault("scraper_base_url", DefaultScrapeBaseURL)
	v.SetDefault("scraper_request_delay", "2s")
	v.SetDefault("scraper_max_pages", 5)
	v.SetDefault("scrape_schedule_enabled", false)
	v.SetDefault("scrape_schedule", "0 3 * * *") // Daily at 03:00

	// Admin defaults
	v.SetDefault("admin_key", "")
	v.SetDefault("admin_bcrypt_cost", 12)

	// Task queue defaults. One worker: crawls share a rate-limited fetcher.
	// The release window must outlast the crawl timeout.
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "90m")
	v.SetDefault("task_cleanup_interval", "6h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Scraper: Scraper{
			BaseURL:      v.GetString("SCRAPER_BASE_URL"),
			RequestDelay: v.GetDuration("SCRAPER_REQUEST_DELAY"),
			MaxPages:     v.GetInt("SCRAPER_MAX_PAGES"),
		},
		ScrapeSchedule: ScrapeSchedule{
			Enabled:  v.GetBool("SCRAPE_SCHEDULE_ENABLED"),
			Schedule: v.GetString("SCRAPE_SCHEDULE"),
		},
		Admin: Admin{
			Key:        v.GetString("ADMIN_KEY"),
			BcryptCost: v.GetInt("ADMIN_BCRYPT_COST"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
