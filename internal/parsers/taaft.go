package parsers

import (
	"log"
	"strconv"
	"strings"

	"github.com/toolm8/toolm8/internal/entities"
	"github.com/toolm8/toolm8/internal/normalize"
)

const taaftSourceName = "theresanaiforthat.com"

// TAAFTParser parses CSV scraping exports from theresanaiforthat.com.
// Column names come straight from the export tool, including the odd
// "ai_launch_date" column that actually carries pricing text.
type TAAFTParser struct{}

func NewTAAFTParser() *TAAFTParser {
	return &TAAFTParser{}
}

func (p *TAAFTParser) SourceName() string {
	return taaftSourceName
}

func (p *TAAFTParser) ExpectedColumns() []string {
	return []string{
		"ai_link",
		"task_label",
		"external_ai_link href",
		"taaft_icon src",
		"ai_launch_date",
		"stats_views",
		"saves",
		"average_rating",
		"comment_body",
	}
}

// SampleFormat returns an example CSV header and row for caller diagnostics.
func (p *TAAFTParser) SampleFormat() string {
	return `# Sample TAAFT CSV format:
"taaft_icon src","ai_link","external_ai_link href","task_label","ai_launch_date","stats_views","saves","average_rating","comment_body"
"https://example.com/icon.svg","ChatGPT","https://openai.com/chatgpt","Writing","Free + from $20/mo","1,500","25","4.5","Great AI tool"`
}

func (p *TAAFTParser) Validate(raw []byte) error {
	table, _, err := readCSV(raw)
	if err != nil {
		return &FormatError{Source: taaftSourceName, Reason: err.Error()}
	}

	// ai_link is the minimum identifying column
	if !table.hasColumn("ai_link") {
		return &FormatError{
			Source:   taaftSourceName,
			Missing:  []string{"ai_link"},
			Expected: p.ExpectedColumns(),
		}
	}
	return nil
}

func (p *TAAFTParser) Parse(raw []byte) []entities.Tool {
	table, rowErrors, err := readCSV(raw)
	if err != nil {
		log.Printf("Error parsing %s CSV: %v", taaftSourceName, err)
		return nil
	}
	for _, rowErr := range rowErrors {
		log.Printf("Skipping malformed %s row: %s", taaftSourceName, rowErr)
	}

	log.Printf("Loaded %s CSV with %d rows", taaftSourceName, len(table.rows))

	var tools []entities.Tool
	for _, record := range table.rows {
		if tool, ok := p.transformRow(table, record); ok {
			tools = append(tools, tool)
		}
	}

	log.Printf("Successfully parsed %d tools from %s CSV", len(tools), taaftSourceName)
	return tools
}

func (p *TAAFTParser) transformRow(table *csvTable, record []string) (entities.Tool, bool) {
	name := table.get(record, "ai_link")
	if name == "" {
		return entities.Tool{}, false
	}
	name = truncate(name, maxNameLength)

	taskLabel := table.get(record, "task_label")
	commentBody := table.get(record, "comment_body")
	pricing := table.get(record, "ai_launch_date")
	rating := table.get(record, "average_rating")
	saves := table.get(record, "saves")

	websiteURL := table.getFirst(record, "external_ai_link href", "visit_ai_website_link href")

	return entities.Tool{
		Name:            name,
		Slug:            normalize.Slug(name),
		Description:     taaftDescription(taskLabel, commentBody),
		WebsiteURL:      normalize.CleanURL(websiteURL),
		LogoURL:         table.get(record, "taaft_icon src"),
		PricingType:     normalize.PricingType(pricing),
		PriceRange:      normalize.PriceRange(pricing),
		HasFreeTrial:    normalize.HasFreeTrial(pricing),
		Tags:            taaftTags(taskLabel, pricing),
		Features:        taaftFeatures(rating, commentBody),
		QualityScore:    normalize.QualityScore(rating, commentBody != "", saves),
		PopularityScore: normalize.PopularityScore(table.get(record, "stats_views"), saves),
		IsFeatured:      false,
		Source:          taaftSourceName,
	}, true
}

func taaftDescription(taskLabel, commentBody string) string {
	if len(commentBody) > 10 {
		prefix := ""
		if taskLabel != "" {
			prefix = taskLabel + ". "
		}
		return truncate(prefix+commentBody, maxDescriptionLength)
	}
	if taskLabel != "" {
		return taskLabel
	}
	return "AI tool for various tasks"
}

func taaftTags(taskLabel, pricing string) entities.StringList {
	var tags entities.StringList
	if taskLabel != "" {
		tags = append(tags, strings.ToLower(taskLabel))
	}

	switch normalize.PricingType(pricing) {
	case entities.PricingTypeFree:
		tags = append(tags, "free")
	case entities.PricingTypeFreemium:
		tags = append(tags, "freemium")
	}
	return tags
}

func taaftFeatures(rating, commentBody string) entities.StringList {
	var features entities.StringList
	if r, err := strconv.ParseFloat(strings.TrimSpace(rating), 64); err == nil && r >= 4.5 {
		features = append(features, "highly-rated")
	}
	if commentBody != "" {
		features = append(features, "user-reviewed")
	}
	return features
}
