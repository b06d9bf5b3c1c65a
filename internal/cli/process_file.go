package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/toolm8/toolm8/internal/config"
	"github.com/toolm8/toolm8/internal/database"
	"github.com/toolm8/toolm8/internal/database/categories"
	"github.com/toolm8/toolm8/internal/database/tools"
	"github.com/toolm8/toolm8/internal/parsers"
	"github.com/toolm8/toolm8/internal/services"
)

// ProcessFileCommand imports an ad-hoc scraped file (CSV or JSON) whose
// column names are not known in advance.
type ProcessFileCommand struct {
	FilePath     string
	DatabasePath string
	Replace      bool
	Verbose      bool
}

// NewProcessFileCommand creates a new ProcessFileCommand
func NewProcessFileCommand() *ProcessFileCommand {
	return &ProcessFileCommand{}
}

// ParseFlags parses command line flags
func (cmd *ProcessFileCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("process-file", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the CSV or JSON file to process (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.BoolVar(&cmd.Replace, "replace", false, "Refresh tools whose slug already exists instead of skipping them")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s process-file -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Process a loosely-structured scraped export. Column names are matched\n")
		fmt.Fprintf(os.Stderr, "against common aliases (title/name/tool_name, url/link/website, ...).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		fs.Usage()
		return fmt.Errorf("-file is required")
	}
	return nil
}

// Run executes the process command
func (cmd *ProcessFileCommand) Run() error {
	raw, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.FilePath, err)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	importer := services.NewImporter(
		parsers.NewDefaultRegistry(),
		tools.NewRepository(db.DB),
		categories.NewRepository(db.DB),
	)

	result := importer.Import("hexofy", raw, services.ImportOptions{Upsert: cmd.Replace})
	printResult(result, cmd.Verbose)

	if !result.Success {
		return fmt.Errorf("processing failed: %s", result.Message)
	}
	return nil
}
