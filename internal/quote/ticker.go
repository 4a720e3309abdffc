package quote

import (
	"fmt"
	"strings"
)

// NormalizeTicker uppercases and trims a ticker symbol.
// Empty input is passed through; the quote site answers it like any unknown symbol.
func NormalizeTicker(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// SummaryPath returns the quote site path of a ticker's summary page
func SummaryPath(ticker string) string {
	return fmt.Sprintf("quote/%s/summary", ticker)
}

// Key returns the hierarchical key a summary is reported under
func Key(ticker string) string {
	return fmt.Sprintf("fetcher:yahoo:%s", ticker)
}
