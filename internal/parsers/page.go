package parsers

import (
	"bytes"
	"log"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/toolm8/toolm8/internal/entities"
	"github.com/toolm8/toolm8/internal/normalize"
)

const pageSourceName = "theresanaiforthat"

const maxPageTags = 8

var (
	visitLinkClass   = regexp.MustCompile(`(?i)visit|website|external`)
	tagElementClass  = regexp.MustCompile(`(?i)tag|category|label`)
	pricingClass     = regexp.MustCompile(`(?i)pric|cost|free|paid`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	disallowedChars  = regexp.MustCompile(`[^\w\s\-.!?,:;$+/&()']`)
)

// PageParser extracts a single Tool from already-fetched page markup using
// structural heuristics: the first heading names the tool, the meta
// description describes it, and classed elements carry the link, tags and
// pricing. The fetch itself is the scraper's concern, not the parser's.
type PageParser struct{}

func NewPageParser() *PageParser {
	return &PageParser{}
}

func (p *PageParser) SourceName() string {
	return pageSourceName
}

func (p *PageParser) ExpectedColumns() []string {
	return []string{"h1", "title"}
}

func (p *PageParser) Validate(raw []byte) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return &FormatError{Source: pageSourceName, Reason: err.Error()}
	}
	if extractName(doc) == "" {
		return &FormatError{
			Source:   pageSourceName,
			Missing:  []string{"h1"},
			Expected: p.ExpectedColumns(),
		}
	}
	return nil
}

// Parse extracts at most one tool from the markup. Pages without a
// recognizable name yield an empty result rather than an error.
func (p *PageParser) Parse(raw []byte) []entities.Tool {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		log.Printf("Error parsing page markup: %v", err)
		return nil
	}

	name := extractName(doc)
	if name == "" {
		log.Printf("Skipping page without a tool name")
		return nil
	}
	name = truncate(name, maxNameLength)

	description := extractDescription(doc)
	websiteURL := extractWebsiteLink(doc)
	seedTags := extractTagCandidates(doc)
	pricingText := extractPricingText(doc)

	// Pricing hints often live in the description when the page has no
	// dedicated pricing element.
	pricingSignal := strings.TrimSpace(pricingText + " " + description)

	tags := normalize.EnhanceTags(name, description, "", seedTags)
	features := normalize.ExtractFeatures(description + " " + strings.Join(seedTags, " "))

	return []entities.Tool{{
		Name:            name,
		Slug:            normalize.Slug(name),
		Description:     description,
		WebsiteURL:      normalize.CleanURL(websiteURL),
		PricingType:     normalize.PricingType(pricingSignal),
		PriceRange:      normalize.PriceRange(pricingText),
		HasFreeTrial:    normalize.HasFreeTrial(pricingSignal),
		Tags:            entities.StringList(tags),
		Features:        entities.StringList(features),
		QualityScore:    normalize.ClampScore(5 + len(features)/2),
		PopularityScore: 0,
		IsFeatured:      false,
		Source:          pageSourceName,
	}}
}

func extractName(doc *goquery.Document) string {
	if heading := cleanPageText(doc.Find("h1").First().Text()); heading != "" {
		return heading
	}
	return cleanPageText(doc.Find("title").First().Text())
}

func extractDescription(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		if text := cleanPageText(content); text != "" {
			return text
		}
	}
	if content, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		if text := cleanPageText(content); text != "" {
			return text
		}
	}
	return cleanPageText(doc.Find("p").First().Text())
}

func extractWebsiteLink(doc *goquery.Document) string {
	href := ""
	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		if !visitLinkClass.MatchString(class) {
			return true
		}
		if h, ok := sel.Attr("href"); ok && h != "" {
			href = h
			return false
		}
		return true
	})
	return href
}

func extractTagCandidates(doc *goquery.Document) []string {
	var tags []string
	doc.Find("span, div").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		if !tagElementClass.MatchString(class) {
			return true
		}
		if text := cleanPageText(sel.Text()); text != "" && len(text) < 30 {
			tags = append(tags, text)
		}
		return len(tags) < maxPageTags
	})
	return tags
}

func extractPricingText(doc *goquery.Document) string {
	pricing := ""
	doc.Find("div, span, p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		if !pricingClass.MatchString(class) {
			return true
		}
		pricing = cleanPageText(sel.Text())
		return pricing == ""
	})
	return pricing
}

// cleanPageText collapses whitespace, strips markup noise and bounds length.
func cleanPageText(text string) string {
	text = whitespaceRuns.ReplaceAllString(strings.TrimSpace(text), " ")
	text = disallowedChars.ReplaceAllString(text, "")
	return truncate(text, maxDescriptionLength)
}
