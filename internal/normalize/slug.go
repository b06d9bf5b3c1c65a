// Package normalize contains the pure field transformations shared by every
// ingestion path: slug generation, URL cleaning, pricing classification,
// tag/feature extraction, and the quality/popularity scoring heuristics.
package normalize

import (
	"regexp"
	"strings"
)

const maxSlugLength = 200

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugMultiHyphen  = regexp.MustCompile(`--+`)
)

// Slug derives a URL-safe identifier from a display name. Re-slugging a slug
// yields the same slug, and an empty input yields an empty slug.
func Slug(name string) string {
	slug := strings.ToLower(name)
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	slug = slugMultiHyphen.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}
	return slug
}

// CleanString trims whitespace and maps blank values to the empty string.
func CleanString(value string) string {
	return strings.TrimSpace(value)
}
