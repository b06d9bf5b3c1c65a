package parsers

import (
	"bytes"
	"encoding/json"
	"log"
	"strings"

	"github.com/toolm8/toolm8/internal/entities"
	"github.com/toolm8/toolm8/internal/normalize"
)

const hexofySourceName = "hexofy_scraped"

// Candidate column names per logical field, checked in priority order.
// Hexofy exports name their columns after whatever the page happened to call
// the data, so every field tolerates several aliases.
var (
	hexofyNameColumns     = []string{"title", "name", "tool_name", "product_name", "heading"}
	hexofyDescColumns     = []string{"description", "desc", "summary", "content", "text"}
	hexofyURLColumns      = []string{"url", "link", "website", "page_url", "tool_url"}
	hexofyCategoryColumns = []string{"category", "type", "tag", "classification"}
	hexofyPriceColumns    = []string{"price", "pricing", "cost", "plan"}
)

// HexofyParser handles ad-hoc scraped exports in either CSV or JSON form.
// JSON input may be a bare list of records or an object with a "data" key.
type HexofyParser struct{}

func NewHexofyParser() *HexofyParser {
	return &HexofyParser{}
}

func (p *HexofyParser) SourceName() string {
	return hexofySourceName
}

func (p *HexofyParser) ExpectedColumns() []string {
	return hexofyNameColumns
}

// SampleFormat returns an example CSV header and row for caller diagnostics.
func (p *HexofyParser) SampleFormat() string {
	return "title,description,url,category,price\n" +
		"Example Tool,Summarizes meetings,https://example.com,productivity,Free"
}

func (p *HexofyParser) Validate(raw []byte) error {
	if isJSON(raw) {
		if _, err := decodeHexofyJSON(raw); err != nil {
			return &FormatError{Source: hexofySourceName, Reason: err.Error()}
		}
		return nil
	}

	table, _, err := readCSV(raw)
	if err != nil {
		return &FormatError{Source: hexofySourceName, Reason: err.Error()}
	}
	for _, column := range hexofyNameColumns {
		if table.hasColumn(column) {
			return nil
		}
	}
	return &FormatError{
		Source:   hexofySourceName,
		Missing:  hexofyNameColumns,
		Expected: hexofyNameColumns,
	}
}

func (p *HexofyParser) Parse(raw []byte) []entities.Tool {
	if isJSON(raw) {
		return p.parseJSON(raw)
	}
	return p.parseCSV(raw)
}

func (p *HexofyParser) parseCSV(raw []byte) []entities.Tool {
	table, rowErrors, err := readCSV(raw)
	if err != nil {
		log.Printf("Error parsing %s CSV: %v", hexofySourceName, err)
		return nil
	}
	for _, rowErr := range rowErrors {
		log.Printf("Skipping malformed %s row: %s", hexofySourceName, rowErr)
	}

	var tools []entities.Tool
	for idx, record := range table.rows {
		name := table.getFirst(record, hexofyNameColumns...)
		if name == "" {
			log.Printf("Row %d: no valid name found", idx)
			continue
		}

		tools = append(tools, p.buildTool(
			name,
			table.getFirst(record, hexofyDescColumns...),
			table.getFirst(record, hexofyURLColumns...),
			table.getFirst(record, hexofyCategoryColumns...),
			table.getFirst(record, hexofyPriceColumns...),
		))
	}

	log.Printf("Processed %d valid tools from %s CSV", len(tools), hexofySourceName)
	return tools
}

func (p *HexofyParser) parseJSON(raw []byte) []entities.Tool {
	items, err := decodeHexofyJSON(raw)
	if err != nil {
		log.Printf("Error parsing %s JSON: %v", hexofySourceName, err)
		return nil
	}

	var tools []entities.Tool
	for idx, item := range items {
		name := firstStringField(item, hexofyNameColumns)
		if name == "" {
			log.Printf("Item %d: no valid name found", idx)
			continue
		}

		tools = append(tools, p.buildTool(
			name,
			firstStringField(item, hexofyDescColumns),
			firstStringField(item, hexofyURLColumns),
			firstStringField(item, hexofyCategoryColumns),
			firstStringField(item, hexofyPriceColumns),
		))
	}

	log.Printf("Processed %d valid tools from %s JSON", len(tools), hexofySourceName)
	return tools
}

func (p *HexofyParser) buildTool(name, description, rawURL, categoryHint, pricingText string) entities.Tool {
	name = truncate(name, maxNameLength)

	websiteURL := ""
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		websiteURL = normalize.CleanURL(rawURL)
	}

	if description == "" {
		description = "AI tool: " + name
	}
	description = truncate(description, maxDescriptionLength)

	return entities.Tool{
		Name:            name,
		Slug:            normalize.Slug(name),
		Description:     description,
		WebsiteURL:      websiteURL,
		PricingType:     normalize.PricingType(pricingText),
		PriceRange:      normalize.PriceRange(pricingText),
		HasFreeTrial:    normalize.HasFreeTrial(pricingText),
		Tags:            entities.StringList(normalize.EnhanceTags(name, description, categoryHint, nil)),
		Features:        entities.StringList(normalize.ExtractFeatures(description)),
		QualityScore:    hexofyQualityScore(description, websiteURL),
		PopularityScore: 0,
		IsFeatured:      false,
		Source:          hexofySourceName,
	}
}

// hexofyQualityScore estimates quality from record completeness, since ad-hoc
// exports carry no rating or engagement signals.
func hexofyQualityScore(description, websiteURL string) int {
	score := 5
	if len(description) > 50 {
		score++
	}
	if websiteURL != "" {
		score++
	}
	return normalize.ClampScore(score)
}

func isJSON(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{')
}

func decodeHexofyJSON(raw []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)

	if trimmed[0] == '{' {
		var wrapper struct {
			Data []map[string]any `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, err
		}
		return wrapper.Data, nil
	}

	var items []map[string]any
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func firstStringField(item map[string]any, keys []string) string {
	for _, key := range keys {
		if value, ok := item[key].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
