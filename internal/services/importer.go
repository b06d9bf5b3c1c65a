// Package services wires parsers to storage. The Importer is the single
// entry point for every ingestion path: HTTP uploads, CLI imports and the
// scraper all hand raw bytes plus a source identifier to it.
package services

import (
	"fmt"
	"log"

	"github.com/toolm8/toolm8/internal/entities"
	"github.com/toolm8/toolm8/internal/parsers"
)

// ImportOptions controls how parsed tools are written.
//
// With Upsert set, records whose slug already exists are refreshed in place;
// otherwise existing slugs are skipped and only new tools are inserted.
type ImportOptions struct {
	Upsert bool
}

// Importer resolves a parser for the requested source, runs it over raw
// input and writes the deduplicated result through the store.
type Importer struct {
	registry   *parsers.Registry
	store      ToolStore
	categories CategoryResolver
}

func NewImporter(registry *parsers.Registry, store ToolStore, categories CategoryResolver) *Importer {
	return &Importer{
		registry:   registry,
		store:      store,
		categories: categories,
	}
}

// SupportedSources lists the source identifiers the importer accepts.
func (s *Importer) SupportedSources() []string {
	return s.registry.SupportedSources()
}

// Import runs the full pipeline for one payload: resolve parser, validate
// input shape, parse, deduplicate and write. It never panics outward; an
// unexpected failure becomes a non-success result so one poisoned upload
// cannot take down a batch caller.
func (s *Importer) Import(source string, raw []byte, opts ImportOptions) (result ImportResult) {
	result.Source = source

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Import panic for source %s: %v", source, r)
			result = ImportResult{
				Success:      false,
				Message:      fmt.Sprintf("import failed unexpectedly: %v", r),
				Errors:       1,
				ErrorDetails: []string{fmt.Sprint(r)},
				Source:       source,
			}
		}
	}()

	parser, err := s.registry.Get(source)
	if err != nil {
		result.Message = err.Error()
		return result
	}
	result.Source = parser.SourceName()

	if err := parser.Validate(raw); err != nil {
		result.Message = err.Error()
		return result
	}

	tools := parser.Parse(raw)
	result.TotalParsed = len(tools)
	if len(tools) == 0 {
		result.Message = "No tools found in input"
		return result
	}

	batch, duplicates := dedupeBySlug(tools)
	result.Skipped += duplicates

	s.assignCategories(batch)

	var written int
	var failures []string
	if opts.Upsert {
		written, failures, err = s.store.BulkUpsert(batch)
	} else {
		var skippedExisting int
		batch, skippedExisting, err = s.filterExisting(batch)
		if err == nil {
			result.Skipped += skippedExisting
			written, failures, err = s.store.BulkInsert(batch)
		}
	}

	// Parsing succeeded, so the result stays a success even when the store
	// fails outright; the whole batch is counted as errors instead.
	result.Success = true
	if err != nil {
		result.Errors = len(batch)
		result.ErrorDetails = []string{err.Error()}
		result.Message = fmt.Sprintf("storage error: %v", err)
		return result
	}

	result.Imported = written
	result.Errors = len(failures)
	result.ErrorDetails = failures
	result.Message = fmt.Sprintf("Imported %d of %d tools from %s",
		written, result.TotalParsed, result.Source)

	log.Printf("Import complete: source=%s parsed=%d imported=%d skipped=%d errors=%d",
		result.Source, result.TotalParsed, result.Imported, result.Skipped, result.Errors)

	return result
}

// filterExisting drops tools whose slug is already in the catalog.
func (s *Importer) filterExisting(tools []entities.Tool) ([]entities.Tool, int, error) {
	existing, err := s.store.ExistingSlugs()
	if err != nil {
		// Hand the batch back untouched so the caller can count it as failed.
		return tools, 0, err
	}

	kept := tools[:0]
	skipped := 0
	for _, tool := range tools {
		if existing[tool.Slug] {
			skipped++
			continue
		}
		kept = append(kept, tool)
	}
	return kept, skipped, nil
}

// assignCategories links each tool to the first of its tags that names a
// seeded category. Tools without a matching tag stay uncategorized.
func (s *Importer) assignCategories(tools []entities.Tool) {
	if s.categories == nil {
		return
	}
	for i := range tools {
		for _, tag := range tools[i].Tags {
			if id := s.categories.FindIDBySlug(tag); id > 0 {
				tools[i].CategoryID = id
				break
			}
		}
	}
}

// dedupeBySlug collapses a batch to one tool per slug, keeping the first
// occurrence, and reports how many duplicates were dropped.
func dedupeBySlug(tools []entities.Tool) ([]entities.Tool, int) {
	seen := make(map[string]bool, len(tools))
	unique := make([]entities.Tool, 0, len(tools))
	for _, tool := range tools {
		if tool.Slug == "" || seen[tool.Slug] {
			continue
		}
		seen[tool.Slug] = true
		unique = append(unique, tool)
	}
	return unique, len(tools) - len(unique)
}
