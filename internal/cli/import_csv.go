package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/toolm8/toolm8/internal/config"
	"github.com/toolm8/toolm8/internal/database"
	"github.com/toolm8/toolm8/internal/database/categories"
	"github.com/toolm8/toolm8/internal/database/tools"
	"github.com/toolm8/toolm8/internal/parsers"
	"github.com/toolm8/toolm8/internal/services"
)

// ImportCSVCommand imports a tool export file into the catalog.
type ImportCSVCommand struct {
	FilePath     string
	Source       string
	DatabasePath string
	Replace      bool
	DryRun       bool
	Verbose      bool
}

// NewImportCSVCommand creates a new ImportCSVCommand
func NewImportCSVCommand() *ImportCSVCommand {
	return &ImportCSVCommand{}
}

// ParseFlags parses command line flags
func (cmd *ImportCSVCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-csv", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the export file to import (required)")
	fs.StringVar(&cmd.Source, "source", "", "Source identifier, e.g. taaft or producthunt (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.BoolVar(&cmd.Replace, "replace", false, "Refresh tools whose slug already exists instead of skipping them")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Parse and report without writing to the database")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-csv -file <path> -source <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import an AI-tool directory export into the catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Supported sources: %s\n\n",
			strings.Join(parsers.NewDefaultRegistry().SupportedSources(), ", "))
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Import a TAAFT export, skipping tools already in the catalog:\n")
		fmt.Fprintf(os.Stderr, "  %s import-csv -file tools.csv -source taaft\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Refresh existing records from a ProductHunt export:\n")
		fmt.Fprintf(os.Stderr, "  %s import-csv -file launches.csv -source producthunt -replace\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Preview what would be imported:\n")
		fmt.Fprintf(os.Stderr, "  %s import-csv -file tools.csv -source taaft -dry-run\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		fs.Usage()
		return fmt.Errorf("-file is required")
	}
	if cmd.Source == "" {
		fs.Usage()
		return fmt.Errorf("-source is required")
	}
	return nil
}

// Run executes the import command
func (cmd *ImportCSVCommand) Run() error {
	raw, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.FilePath, err)
	}

	registry := parsers.NewDefaultRegistry()

	if cmd.DryRun {
		return cmd.runDryRun(registry, raw)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	importer := services.NewImporter(
		registry,
		tools.NewRepository(db.DB),
		categories.NewRepository(db.DB),
	)

	result := importer.Import(cmd.Source, raw, services.ImportOptions{Upsert: cmd.Replace})
	printResult(result, cmd.Verbose)

	if !result.Success {
		return fmt.Errorf("import failed: %s", result.Message)
	}
	return nil
}

func (cmd *ImportCSVCommand) runDryRun(registry *parsers.Registry, raw []byte) error {
	fmt.Println("DRY RUN - no changes will be made")

	parser, err := registry.Get(cmd.Source)
	if err != nil {
		return err
	}
	if err := parser.Validate(raw); err != nil {
		return err
	}

	parsed := parser.Parse(raw)
	fmt.Printf("Parsed %d tools from %s\n", len(parsed), parser.SourceName())

	if cmd.Verbose {
		for _, tool := range parsed {
			fmt.Printf("  %-40s %-12s %s\n", tool.Slug, tool.PricingType, tool.WebsiteURL)
		}
	}
	return nil
}

func printResult(result services.ImportResult, verbose bool) {
	fmt.Printf("Source:   %s\n", result.Source)
	fmt.Printf("Parsed:   %d\n", result.TotalParsed)
	fmt.Printf("Imported: %d\n", result.Imported)
	fmt.Printf("Skipped:  %d\n", result.Skipped)
	if result.Errors > 0 {
		fmt.Printf("Errors:   %d\n", result.Errors)
		if verbose {
			for _, e := range result.ErrorDetails {
				fmt.Printf("  - %s\n", e)
			}
		}
	}
	fmt.Println(result.Message)
}
