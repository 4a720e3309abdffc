package quote

import "fmt"

// InvalidTickerCode is the error code reported for unknown tickers
const InvalidTickerCode = 404

// InvalidTicker describes a ticker the quote site could not resolve.
// Lookup redirects and not-found pages share this shape.
type InvalidTicker struct {
	Message        string          `json:"error"`
	Code           int             `json:"errorCode"`
	SimilarTickers []SimilarTicker `json:"similarTickers"`
}

func newInvalidTicker(ticker string, similar []SimilarTicker) *InvalidTicker {
	if similar == nil {
		similar = []SimilarTicker{}
	}
	return &InvalidTicker{
		Message:        fmt.Sprintf("Invalid ticker: %s", ticker),
		Code:           InvalidTickerCode,
		SimilarTickers: similar,
	}
}

// ParseError reports an element missing from a quote page. The page
// layout is assumed stable per asset type, so this fails the whole record.
type ParseError struct {
	Ticker  string
	Field   string
	Locator string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("quote page for %s has no element for %s (%s)", e.Ticker, e.Field, e.Locator)
}
