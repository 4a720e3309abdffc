package fetcher

import "context"

// Fetcher is the transport boundary of the quote pipeline.
// Implementations retrieve a page relative to the quote site's base URL
// and report where the request finally landed after redirects.
type Fetcher interface {
	// Get retrieves the page at the given relative path.
	// Returns an error only when no response could be obtained; HTTP
	// status handling is left to the caller via Page.StatusCode.
	Get(ctx context.Context, path string) (*Page, error)
}
