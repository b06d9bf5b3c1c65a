package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./toolm8.db"

	// DefaultScrapeBaseURL is the listing page the scraper starts from
	DefaultScrapeBaseURL = "https://theresanaiforthat.com/"
)
