// Package scraper crawls directory listing pages, extracts per-tool page
// links and feeds each page through the markup parser before storing the
// survivors. A failed page fetch drops that page only, never the crawl.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/toolm8/toolm8/internal/entities"
	"github.com/toolm8/toolm8/internal/parsers"
)

const (
	maxLinksPerPage = 50
	maxTotalLinks   = 1000
)

// Selectors tried in order on listing pages. Directory markup changes often,
// so several common shapes are covered.
var toolLinkSelectors = []string{
	`a[href*="/ai/"]`,
	`a[href*="/tool/"]`,
	`a[href*="/product/"]`,
	`.tool-card a`,
	`.ai-tool a`,
	`[data-tool] a`,
}

// ToolSink is the storage surface the scraper needs: an advisory duplicate
// check before a page is drafted, and a tolerant bulk write afterwards.
type ToolSink interface {
	CheckDuplicate(tool *entities.Tool) (bool, error)
	BulkInsert(tools []entities.Tool) (int, []string, error)
}

// Result summarizes one crawl.
type Result struct {
	PagesCrawled int      `json:"pages_crawled"`
	LinksFound   int      `json:"links_found"`
	ToolsParsed  int      `json:"tools_parsed"`
	Inserted     int      `json:"inserted"`
	Duplicates   int      `json:"duplicates"`
	Errors       []string `json:"errors,omitempty"`
}

// Scraper drives the crawl: listing pages first, then each tool page.
type Scraper struct {
	fetcher *Fetcher
	parser  *parsers.PageParser
	sink    ToolSink
	baseURL string
}

func New(fetcher *Fetcher, sink ToolSink, baseURL string) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		parser:  parsers.NewPageParser(),
		sink:    sink,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Run crawls up to maxPages listing pages and imports every new tool found.
func (s *Scraper) Run(ctx context.Context, maxPages int) (*Result, error) {
	result := &Result{}

	links, err := s.collectToolLinks(ctx, maxPages, result)
	if err != nil {
		return result, err
	}
	result.LinksFound = len(links)
	log.Printf("Scraper: collected %d tool links from %d pages", len(links), result.PagesCrawled)

	var drafts []entities.Tool
	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		page, err := s.fetcher.Fetch(ctx, link)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", link, err))
			continue
		}

		parsed := s.parser.Parse(page)
		if len(parsed) == 0 {
			continue
		}
		draft := parsed[0]
		result.ToolsParsed++

		duplicate, err := s.sink.CheckDuplicate(&draft)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: duplicate check: %v", draft.Slug, err))
			continue
		}
		if duplicate {
			result.Duplicates++
			continue
		}
		drafts = append(drafts, draft)
	}

	if len(drafts) > 0 {
		inserted, failures, err := s.sink.BulkInsert(drafts)
		if err != nil {
			return result, fmt.Errorf("failed to store scraped tools: %w", err)
		}
		result.Inserted = inserted
		result.Errors = append(result.Errors, failures...)
	}

	log.Printf("Scraper: %d parsed, %d inserted, %d duplicates, %d errors",
		result.ToolsParsed, result.Inserted, result.Duplicates, len(result.Errors))

	return result, nil
}

// collectToolLinks walks numbered listing pages until one yields no links,
// the page budget runs out or the total link cap is reached.
func (s *Scraper) collectToolLinks(ctx context.Context, maxPages int, result *Result) ([]string, error) {
	seen := make(map[string]bool)
	var links []string

	for page := 1; page <= maxPages; page++ {
		pageURL := s.baseURL
		if page > 1 {
			pageURL = fmt.Sprintf("%s?page=%d", s.baseURL, page)
		}

		body, err := s.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return links, ctx.Err()
			}
			result.Errors = append(result.Errors, fmt.Sprintf("listing %s: %v", pageURL, err))
			break
		}
		result.PagesCrawled++

		pageLinks := s.extractToolLinks(body)
		if len(pageLinks) == 0 {
			break
		}

		for _, link := range pageLinks {
			if seen[link] {
				continue
			}
			seen[link] = true
			links = append(links, link)
			if len(links) >= maxTotalLinks {
				return links, nil
			}
		}
	}

	return links, nil
}

func (s *Scraper) extractToolLinks(body []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		log.Printf("Scraper: unreadable listing markup: %v", err)
		return nil
	}

	var links []string
	for _, selector := range toolLinkSelectors {
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, ok := sel.Attr("href")
			if !ok || href == "" {
				return true
			}
			if absolute := s.absoluteURL(href); absolute != "" {
				links = append(links, absolute)
			}
			return len(links) < maxLinksPerPage
		})
		if len(links) > 0 {
			break
		}
	}
	return links
}

func (s *Scraper) absoluteURL(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if parsed.IsAbs() {
		return parsed.String()
	}

	base, err := url.Parse(s.baseURL)
	if err != nil {
		return ""
	}
	return base.ResolveReference(parsed).String()
}
