package testutil

import (
	"context"

	"quotefetcher/internal/fetcher"
)

// MockFetcher is a mock implementation of the Fetcher interface for testing
type MockFetcher struct {
	GetFunc func(ctx context.Context, path string) (*fetcher.Page, error)
}

// Get implements the Fetcher interface
func (m *MockFetcher) Get(ctx context.Context, path string) (*fetcher.Page, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, path)
	}
	return &fetcher.Page{StatusCode: 200}, nil
}

// NewMockFetcher creates a mock fetcher that always returns the given page and error
func NewMockFetcher(page *fetcher.Page, err error) fetcher.Fetcher {
	return &MockFetcher{
		GetFunc: func(ctx context.Context, path string) (*fetcher.Page, error) {
			return page, err
		},
	}
}

// NewPageFetcher serves an HTML body with status 200 from a summary URL
// built on the quote site's base URL
func NewPageFetcher(body string) fetcher.Fetcher {
	return &MockFetcher{
		GetFunc: func(ctx context.Context, path string) (*fetcher.Page, error) {
			return &fetcher.Page{
				Body:       body,
				URL:        "https://finance.yahoo.com/" + path,
				StatusCode: 200,
			}, nil
		},
	}
}
