package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"quotefetcher/internal/dom"
	"quotefetcher/internal/fetcher"
)

// Kind is the outcome of a summary request
type Kind string

const (
	// KindFound means the page held a quote
	KindFound Kind = "found"
	// KindLookup means the site redirected to its lookup page
	KindLookup Kind = "lookup"
	// KindNotFound means the site served its placeholder page for the ticker
	KindNotFound Kind = "not_found"
)

// Summary is the result of one summary request. Exactly one of Quote
// (KindFound) and Invalid (KindLookup, KindNotFound) is set.
type Summary struct {
	Kind    Kind
	Ticker  string
	Quote   *Record
	Invalid *InvalidTicker
}

// MarshalJSON encodes the quote record or the invalid-ticker error
func (s *Summary) MarshalJSON() ([]byte, error) {
	if s.Kind == KindFound {
		return json.Marshal(s.Quote)
	}
	return json.Marshal(s.Invalid)
}

// Scraper turns quote summary pages into Summaries
type Scraper struct {
	fetcher fetcher.Fetcher
}

// NewScraper creates a Scraper reading pages through f
func NewScraper(f fetcher.Fetcher) *Scraper {
	return &Scraper{fetcher: f}
}

// Summarize fetches and extracts the summary of one ticker.
//
// Unknown tickers are not errors: they come back as a Summary of kind
// KindLookup or KindNotFound. The returned error is a *fetcher.FetchError
// for transport failures and a *ParseError when the page lacks an element
// its asset type requires.
func (s *Scraper) Summarize(ctx context.Context, ticker string) (*Summary, error) {
	ticker = NormalizeTicker(ticker)
	path := SummaryPath(ticker)

	page, err := s.fetcher.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch summary for %s: %w", ticker, err)
	}

	doc, err := dom.Parse(page.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse summary for %s: %w", ticker, err)
	}

	// the lookup page may come with any status, so it is checked first
	if IsLookupRedirect(page.URL) {
		similar := ParseLookupTable(doc)
		slog.Debug("ticker redirected to lookup",
			"ticker", ticker,
			"url", page.URL,
			"similar", len(similar))
		return &Summary{
			Kind:    KindLookup,
			Ticker:  ticker,
			Invalid: newInvalidTicker(ticker, similar),
		}, nil
	}

	if !page.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch summary for %s: %w", ticker, fetcher.ClassifyHTTPError(page.StatusCode))
	}

	heading, ok := doc.FindOne(headingLocator.Tag, headingLocator.Attrs)
	if !ok {
		return nil, &ParseError{Ticker: ticker, Field: "name", Locator: headingLocator.Describe(ticker)}
	}
	if strings.TrimSpace(heading.Text()) == "("+ticker+")" {
		slog.Debug("ticker not found", "ticker", ticker)
		return &Summary{
			Kind:    KindNotFound,
			Ticker:  ticker,
			Invalid: newInvalidTicker(ticker, nil),
		}, nil
	}

	assetType := DetectAssetType(path, doc)
	record, err := extract(doc, ticker, assetType)
	if err != nil {
		return nil, err
	}

	slog.Debug("extracted quote",
		"ticker", ticker,
		"asset_type", assetType,
		"fields", record.Len())

	return &Summary{
		Kind:   KindFound,
		Ticker: ticker,
		Quote:  record,
	}, nil
}
