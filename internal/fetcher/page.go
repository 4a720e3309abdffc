package fetcher

// Page is a fetched document together with the request's effective URL.
type Page struct {
	// Body is the response body as text
	Body string

	// URL is the final URL after any redirects were followed.
	// The quote pipeline inspects it to detect lookup redirects.
	URL string

	// StatusCode is the HTTP status of the final response
	StatusCode int
}

// IsSuccess reports whether the page was served with a 2xx status
func (p *Page) IsSuccess() bool {
	return p.StatusCode >= 200 && p.StatusCode < 300
}
