// Package scrape extracts price records from the Ship & Bunker prices page.
// It locates per-category tables in a loosely structured document and coerces
// noisy cell text into numeric records. Extraction is defensive throughout:
// a malformed row is skipped, a missing table empties its category, and
// nothing here aborts a scrape cycle.
package scrape

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/bunkerwatch/internal/fetch"
	"github.com/seenimoa/bunkerwatch/pkg/models"
)

// Scraper extracts the three price categories from the source document.
type Scraper struct {
	fetcher       fetch.Fetcher
	baseURL       string
	methanolBlock string
	euaBlock      string
}

// New creates a Scraper for the given prices page and block ids.
func New(f fetch.Fetcher, baseURL, methanolBlock, euaBlock string) *Scraper {
	return &Scraper{
		fetcher:       f,
		baseURL:       baseURL,
		methanolBlock: methanolBlock,
		euaBlock:      euaBlock,
	}
}

// MainPage fetches the base prices page. The methanol and compliance-cost
// extractors share this one document.
func (s *Scraper) MainPage(ctx context.Context) (*goquery.Document, error) {
	return s.fetcher.Fetch(ctx, s.baseURL)
}

var (
	tagPattern    = regexp.MustCompile(`<[^>]+>`)
	numberPattern = regexp.MustCompile(`[+-]?\d+\.?\d*`)
)

// cleanNumeric coerces noisy cell text into a float: markup fragments are
// stripped, then the first signed decimal substring is parsed. Empty input
// or input without digits yields 0.0 — a malformed cell must not abort the
// extraction of an entire table.
func cleanNumeric(text string) float64 {
	cleaned := strings.TrimSpace(tagPattern.ReplaceAllString(text, ""))
	m := numberPattern.FindString(cleaned)
	if m == "" {
		return 0.0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0.0
	}
	return v
}

// fuelTable locates the price table for a fuel grade. The table carries both
// the price-table class and the grade name as classes.
func fuelTable(doc *goquery.Document, fuel models.FuelType) (*goquery.Selection, bool) {
	sel := doc.Find(fmt.Sprintf("table.price-table.%s", fuel)).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return sel, true
}

// blockTable locates the small price table nested inside a named block.
func blockTable(doc *goquery.Document, blockID string) (*goquery.Selection, bool) {
	sel := doc.Find(fmt.Sprintf("div#%s table.price-table.sm", blockID)).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return sel, true
}

// portName extracts the port name from a row's header cell, preferring a
// nested link's text over the cell's own text. Returns "" when the row has
// no port cell; such rows are skipped by the extractors.
func portName(row *goquery.Selection) string {
	cell := row.Find("th.port").First()
	if cell.Length() == 0 {
		return ""
	}
	if link := cell.Find("a").First(); link.Length() > 0 {
		return strings.TrimSpace(link.Text())
	}
	return strings.TrimSpace(cell.Text())
}
