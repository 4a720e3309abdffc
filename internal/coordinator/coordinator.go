package coordinator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"quotefetcher/internal/quote"
)

// Format selects how results are written
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Summarizer produces the quote summary of a ticker
type Summarizer interface {
	Summarize(ctx context.Context, ticker string) (*quote.Summary, error)
}

// Result is the outcome of summarizing one ticker
type Result struct {
	// Key is the hierarchical key for this ticker
	Key string

	Ticker  string
	Summary *quote.Summary

	// Error contains any error that occurred during the fetch operation.
	// If Error is not nil, Summary is nil.
	Error error
}

// Coordinator summarizes tickers concurrently and reports the results
type Coordinator struct {
	scraper Summarizer
	tickers []string
	out     io.Writer
	format  Format
}

// New creates a new Coordinator for the given tickers
func New(scraper Summarizer, tickers []string, out io.Writer, format Format) *Coordinator {
	return &Coordinator{
		scraper: scraper,
		tickers: tickers,
		out:     out,
		format:  format,
	}
}

// Collect summarizes every ticker in its own goroutine and returns the
// results in ticker order
func (c *Coordinator) Collect(ctx context.Context) ([]Result, error) {
	if len(c.tickers) == 0 {
		return nil, fmt.Errorf("no tickers configured")
	}

	results := make([]Result, len(c.tickers))

	var g errgroup.Group
	for i, raw := range c.tickers {
		g.Go(func() error {
			ticker := quote.NormalizeTicker(raw)
			summary, err := c.scraper.Summarize(ctx, ticker)

			// per-ticker failures are reported, not propagated
			results[i] = Result{
				Key:     quote.Key(ticker),
				Ticker:  ticker,
				Summary: summary,
				Error:   err,
			}
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// Run summarizes all tickers and writes the results in the configured format:
//   - Found: "KEY [type] NAME: $PRICE CHANGE PERCENT" followed by one line per field
//   - Unknown ticker: "KEY: Invalid ticker: T" followed by any suggestions
//   - Error: "KEY: ERROR - error message"
func (c *Coordinator) Run(ctx context.Context) error {
	results, err := c.Collect(ctx)
	if err != nil {
		return err
	}

	for _, r := range results {
		if c.format == FormatJSON {
			err = writeJSON(c.out, r)
		} else {
			err = writeText(c.out, r)
		}
		if err != nil {
			return fmt.Errorf("failed to write result for %s: %w", r.Ticker, err)
		}
	}

	return nil
}

type jsonLine struct {
	Key     string         `json:"key"`
	Ticker  string         `json:"ticker"`
	Kind    quote.Kind     `json:"kind,omitempty"`
	Summary *quote.Summary `json:"summary,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func writeJSON(w io.Writer, r Result) error {
	line := jsonLine{Key: r.Key, Ticker: r.Ticker}
	if r.Error != nil {
		line.Error = r.Error.Error()
	} else {
		line.Kind = r.Summary.Kind
		line.Summary = r.Summary
	}
	return json.NewEncoder(w).Encode(line)
}

func writeText(w io.Writer, r Result) error {
	var b strings.Builder

	switch {
	case r.Error != nil:
		fmt.Fprintf(&b, "%s: ERROR - %v\n", r.Key, r.Error)

	case r.Summary.Kind == quote.KindFound:
		q := r.Summary.Quote
		get := func(key string) string {
			v, _ := q.Get(key)
			return v.String()
		}
		fmt.Fprintf(&b, "%s [%s] %s: $%s %s %s\n", r.Key, q.AssetType(),
			strings.TrimSpace(get("name")), get("price"), get("changeDollar"), get("changePercent"))
		for _, f := range q.Fields() {
			fmt.Fprintf(&b, "  %-24s %s\n", f.Key, f.Value)
		}

	default:
		inv := r.Summary.Invalid
		fmt.Fprintf(&b, "%s: %s\n", r.Key, inv.Message)
		for _, s := range inv.SimilarTickers {
			fmt.Fprintf(&b, "  did you mean %s (%s, %s) %s\n", s.Symbol, s.Name, s.Exchange, s.LastPrice)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
