package parsers

import (
	"log"
	"strconv"
	"strings"

	"github.com/toolm8/toolm8/internal/entities"
	"github.com/toolm8/toolm8/internal/normalize"
)

const productHuntSourceName = "producthunt.com"

// ProductHuntParser parses ProductHunt launch exports. Upvotes and comment
// counts drive the scores since ProductHunt has no star ratings.
type ProductHuntParser struct{}

func NewProductHuntParser() *ProductHuntParser {
	return &ProductHuntParser{}
}

func (p *ProductHuntParser) SourceName() string {
	return productHuntSourceName
}

func (p *ProductHuntParser) ExpectedColumns() []string {
	return []string{
		"name",
		"tagline",
		"description",
		"website",
		"maker",
		"launch_date",
		"upvotes",
		"comments_count",
		"pricing",
		"category",
	}
}

// SampleFormat returns an example CSV header and row for caller diagnostics.
func (p *ProductHuntParser) SampleFormat() string {
	return `# Sample ProductHunt CSV format:
"name","tagline","description","website","maker","launch_date","upvotes","comments_count","pricing","category"
"ChatGPT","AI Assistant","Revolutionary AI chatbot","https://openai.com/chatgpt","OpenAI","2022-11-30","1500","250","Free + from $20/mo","AI Tools"`
}

func (p *ProductHuntParser) Validate(raw []byte) error {
	table, _, err := readCSV(raw)
	if err != nil {
		return &FormatError{Source: productHuntSourceName, Reason: err.Error()}
	}

	var missing []string
	for _, required := range []string{"name", "tagline"} {
		if !table.hasColumn(required) {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return &FormatError{
			Source:   productHuntSourceName,
			Missing:  missing,
			Expected: p.ExpectedColumns(),
		}
	}
	return nil
}

func (p *ProductHuntParser) Parse(raw []byte) []entities.Tool {
	table, rowErrors, err := readCSV(raw)
	if err != nil {
		log.Printf("Error parsing %s CSV: %v", productHuntSourceName, err)
		return nil
	}
	for _, rowErr := range rowErrors {
		log.Printf("Skipping malformed %s row: %s", productHuntSourceName, rowErr)
	}

	log.Printf("Loaded %s CSV with %d rows", productHuntSourceName, len(table.rows))

	var tools []entities.Tool
	for _, record := range table.rows {
		if tool, ok := p.transformRow(table, record); ok {
			tools = append(tools, tool)
		}
	}

	log.Printf("Successfully parsed %d tools from %s CSV", len(tools), productHuntSourceName)
	return tools
}

func (p *ProductHuntParser) transformRow(table *csvTable, record []string) (entities.Tool, bool) {
	name := table.get(record, "name")
	if name == "" {
		return entities.Tool{}, false
	}
	name = truncate(name, maxNameLength)

	pricing := table.get(record, "pricing")
	upvotes := atoiOrZero(table.get(record, "upvotes"))
	comments := atoiOrZero(table.get(record, "comments_count"))

	return entities.Tool{
		Name:            name,
		Slug:            normalize.Slug(name),
		Description:     productHuntDescription(table.get(record, "description"), table.get(record, "tagline")),
		WebsiteURL:      normalize.CleanURL(table.get(record, "website")),
		PricingType:     normalize.PricingType(pricing),
		PriceRange:      normalize.PriceRange(pricing),
		HasFreeTrial:    normalize.HasFreeTrial(pricing),
		Tags:            productHuntTags(table.get(record, "category"), table.get(record, "maker")),
		Features:        productHuntFeatures(upvotes, comments),
		QualityScore:    productHuntQualityScore(upvotes, comments),
		PopularityScore: productHuntPopularityScore(upvotes, comments),
		IsFeatured:      false,
		Source:          productHuntSourceName,
	}, true
}

func productHuntDescription(description, tagline string) string {
	if len(description) > 10 {
		return truncate(description, maxDescriptionLength)
	}
	if tagline != "" {
		return tagline
	}
	return "ProductHunt tool: no description available"
}

func productHuntTags(category, maker string) entities.StringList {
	var tags entities.StringList
	if category != "" {
		tags = append(tags, strings.ToLower(category))
	}
	if maker != "" {
		tags = append(tags, "by-"+strings.ReplaceAll(strings.ToLower(maker), " ", "-"))
	}
	return tags
}

func productHuntFeatures(upvotes, comments int) entities.StringList {
	var features entities.StringList
	switch {
	case upvotes > 500:
		features = append(features, "highly-popular")
	case upvotes > 100:
		features = append(features, "popular")
	}
	if comments > 50 {
		features = append(features, "well-discussed")
	}
	return features
}

func productHuntQualityScore(upvotes, comments int) int {
	score := 5.0

	switch {
	case upvotes > 1000:
		score += 3
	case upvotes > 500:
		score += 2
	case upvotes > 100:
		score += 1
	}

	switch {
	case comments > 100:
		score += 1
	case comments > 50:
		score += 0.5
	}

	return normalize.ClampScore(int(score + 0.5))
}

func productHuntPopularityScore(upvotes, comments int) int {
	score := upvotes/10 + comments/5
	if score < 0 {
		score = 0
	}
	return score
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
