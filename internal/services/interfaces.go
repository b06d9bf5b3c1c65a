package services

import "github.com/toolm8/toolm8/internal/entities"

// ToolStore handles persisting parsed tools. Implemented by
// internal/database/tools.Repository.
type ToolStore interface {
	ExistingSlugs() (map[string]bool, error)
	CheckDuplicate(tool *entities.Tool) (bool, error)
	BulkInsert(tools []entities.Tool) (int, []string, error)
	BulkUpsert(tools []entities.Tool) (int, []string, error)
}

// CategoryResolver maps category slugs to IDs so imported tools can be
// attached to the seeded categories. Implemented by
// internal/database/categories.Repository.
type CategoryResolver interface {
	FindIDBySlug(slug string) uint
}

// ImportResult contains the outcome of an import operation. Errors counts
// tools that could not be written; ErrorDetails carries one message per
// failure for callers that want specifics.
type ImportResult struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	TotalParsed  int      `json:"total_parsed"`
	Imported     int      `json:"imported"`
	Skipped      int      `json:"skipped"`
	Errors       int      `json:"errors"`
	ErrorDetails []string `json:"error_details,omitempty"`
	Source       string   `json:"source"`
}
