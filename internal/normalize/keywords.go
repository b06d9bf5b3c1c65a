package normalize

import (
	"sort"
	"strings"
)

const (
	maxTags     = 10
	maxFeatures = 10
)

// categoryKeywords maps a canonical tag to the keywords whose presence in a
// tool's combined text adds that tag.
var categoryKeywords = map[string][]string{
	"writing":          {"writing", "content", "text", "blog", "copy", "editor", "grammar"},
	"image-generation": {"image", "photo", "picture", "visual", "art", "graphic"},
	"video":            {"video", "animation", "motion", "film", "movie", "editing"},
	"development":      {"code", "programming", "development", "software", "api", "github"},
	"data":             {"data", "analytics", "analysis", "dashboard", "visualization"},
	"marketing":        {"marketing", "seo", "social", "campaign", "ads", "email"},
	"audio":            {"audio", "music", "voice", "sound", "speech", "podcast"},
	"design":           {"design", "ui", "ux", "interface", "prototype", "figma"},
	"productivity":     {"productivity", "task", "project", "management", "organize"},
	"research":         {"research", "learning", "education", "study", "knowledge"},
}

var featureKeywords = []string{
	"api",
	"automation",
	"real-time",
	"collaboration",
	"integration",
	"templates",
	"customization",
	"analytics",
	"export",
	"import",
	"cloud",
	"mobile",
	"web",
	"desktop",
	"ai-powered",
	"machine learning",
	"natural language",
	"image processing",
	"text generation",
	"no-code",
}

// EnhanceTags merges seed tags with category tags inferred from the tool's
// name, description and category hint. An "ai" tag is force-added unless an
// AI-equivalent tag is already present. The result is capped and sorted so
// repeated runs over the same input are deterministic.
func EnhanceTags(name, description, categoryHint string, seed []string) []string {
	tagSet := make(map[string]struct{}, len(seed))
	for _, tag := range seed {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			tagSet[tag] = struct{}{}
		}
	}

	if hint := strings.TrimSpace(categoryHint); hint != "" {
		tagSet[strings.ReplaceAll(strings.ToLower(hint), " ", "-")] = struct{}{}
	}

	text := strings.ToLower(name + " " + description + " " + categoryHint + " " + strings.Join(seed, " "))

	for tag, keywords := range categoryKeywords {
		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				tagSet[tag] = struct{}{}
				break
			}
		}
	}

	hasAI := false
	for tag := range tagSet {
		if tag == "ai" || tag == "artificial-intelligence" {
			hasAI = true
			break
		}
	}
	if !hasAI {
		tagSet["ai"] = struct{}{}
	}

	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	return tags
}

// ExtractFeatures scans text for known capability keywords and returns them
// as Title Cased display strings.
func ExtractFeatures(text string) []string {
	lowered := strings.ToLower(text)

	var features []string
	for _, keyword := range featureKeywords {
		if strings.Contains(lowered, keyword) {
			features = append(features, titleCase(strings.ReplaceAll(keyword, "-", " ")))
			if len(features) == maxFeatures {
				break
			}
		}
	}
	return features
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
