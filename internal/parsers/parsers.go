// Package parsers converts raw third-party listings (CSV exports, scraped
// page markup, loosely-keyed files) into canonical Tool records. Each source
// gets its own Parser that adapts the input shape; the field heuristics
// themselves live in internal/normalize and are shared by all of them.
package parsers

import (
	"fmt"
	"strings"

	"github.com/toolm8/toolm8/internal/entities"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 500
)

// Parser converts raw input from one origin into canonical Tool records.
//
// Validate checks that the minimum identifying columns/fields are present
// before any parsing is attempted; a missing column yields a *FormatError
// naming the missing and expected fields. Parse never fails on a per-row
// problem: malformed rows are logged and excluded from the result.
type Parser interface {
	SourceName() string
	ExpectedColumns() []string
	Validate(raw []byte) error
	Parse(raw []byte) []entities.Tool
}

// FormatError reports input that does not match the parser's expected shape.
// It is raised by Validate before any row has been parsed or written.
type FormatError struct {
	Source   string
	Missing  []string
	Expected []string
	Reason   string
}

func (e *FormatError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("invalid %s format: missing required columns %v (expected columns: %v)",
			e.Source, e.Missing, e.Expected)
	}
	return fmt.Sprintf("invalid %s format: %s", e.Source, e.Reason)
}

// UnsupportedSourceError reports a source identifier with no registered parser.
type UnsupportedSourceError struct {
	Source    string
	Supported []string
}

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("unsupported source %q, available sources: %s",
		e.Source, strings.Join(e.Supported, ", "))
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
