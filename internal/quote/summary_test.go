package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotefetcher/internal/fetcher"
	"quotefetcher/internal/testutil"
)

var universalKeys = []string{"ticker", "name", "price", "changePercent", "changeDollar"}

func expectedKeys(t AssetType) []string {
	keys := append([]string{}, universalKeys...)
	for _, s := range FieldMap(t) {
		keys = append(keys, s.Key)
	}
	return keys
}

func number(t *testing.T, r *Record, key string) float64 {
	t.Helper()
	v, ok := r.Get(key)
	require.Truef(t, ok, "missing key %q", key)
	f, ok := v.Float()
	require.Truef(t, ok, "key %q = %q, want a number", key, v.String())
	return f
}

func text(t *testing.T, r *Record, key string) string {
	t.Helper()
	v, ok := r.Get(key)
	require.Truef(t, ok, "missing key %q", key)
	require.Falsef(t, v.IsNumber(), "key %q is a number, want text", key)
	return v.String()
}

func TestSummarize_Stock(t *testing.T) {
	var requested string
	f := &testutil.MockFetcher{
		GetFunc: func(ctx context.Context, path string) (*fetcher.Page, error) {
			requested = path
			return &fetcher.Page{
				Body:       testutil.StockPage("AAPL").HTML(),
				URL:        "https://finance.yahoo.com/" + path,
				StatusCode: 200,
			}, nil
		},
	}

	s, err := NewScraper(f).Summarize(context.Background(), " aapl ")
	require.NoError(t, err)

	assert.Equal(t, "quote/AAPL/summary", requested)
	assert.Equal(t, KindFound, s.Kind)
	assert.Equal(t, "AAPL", s.Ticker)
	assert.Nil(t, s.Invalid)
	require.NotNil(t, s.Quote)

	r := s.Quote
	assert.Equal(t, AssetStock, r.AssetType())
	assert.Equal(t, expectedKeys(AssetStock), r.Keys())
	assert.Equal(t, 21, r.Len())

	assert.Equal(t, "AAPL", text(t, r, "ticker"))
	assert.Equal(t, "Apple Inc. (AAPL)", text(t, r, "name"))
	assert.Equal(t, 178.23, number(t, r, "price"))
	assert.Equal(t, 1.73, number(t, r, "changeDollar"))
	assert.Equal(t, "(+0.98%)", text(t, r, "changePercent"))
	assert.Equal(t, 5e7, number(t, r, "volume"))
	assert.Equal(t, 58406110.0, number(t, r, "avgVolume"))
	assert.Equal(t, 1200.35, number(t, r, "oneYearTargetEst"))
	assert.Equal(t, "178.20 x 1000", text(t, r, "bid"))
	assert.Equal(t, "2.78T", text(t, r, "marketCap"))
	assert.Equal(t, "Jan 25, 2024 - Jan 29, 2024", text(t, r, "earningsDate"))
	assert.Equal(t, "Nov 10, 2023", text(t, r, "exDividendDate"))
}

func TestSummarize_ETF(t *testing.T) {
	s, err := NewScraper(testutil.NewPageFetcher(testutil.ETFPage("SPY").HTML())).
		Summarize(context.Background(), "spy")
	require.NoError(t, err)
	require.Equal(t, KindFound, s.Kind)

	r := s.Quote
	assert.Equal(t, AssetETF, r.AssetType())
	assert.Equal(t, expectedKeys(AssetETF), r.Keys())
	assert.Equal(t, "SPDR S&P 500 ETF Trust (SPY)", text(t, r, "name"))
	assert.Equal(t, "446.95B", text(t, r, "netAssets"))
	assert.Equal(t, 476.65, number(t, r, "nav"))
	assert.Equal(t, "0.09%", text(t, r, "expenseRatio"))
	assert.Equal(t, "1993-01-22", text(t, r, "inceptionDate"))
}

func TestSummarize_Crypto(t *testing.T) {
	// fund markers on a crypto page must not change its type
	page := testutil.CryptoPage("BTC-USD").With("NET_ASSETS", "1.2B")

	s, err := NewScraper(testutil.NewPageFetcher(page.HTML())).
		Summarize(context.Background(), "btc-usd")
	require.NoError(t, err)
	require.Equal(t, KindFound, s.Kind)

	r := s.Quote
	assert.Equal(t, AssetCrypto, r.AssetType())
	assert.Equal(t, expectedKeys(AssetCrypto), r.Keys())
	assert.Equal(t, 42850.12, number(t, r, "price"))
	assert.Equal(t, 21512345678.0, number(t, r, "volume"))
	assert.Equal(t, "SHA256", text(t, r, "algorithm"))
	assert.Equal(t, "21M", text(t, r, "maxSupply"))
	assert.Equal(t, "2010-07-13", text(t, r, "startDate"))

	_, ok := r.Get("netAssets")
	assert.False(t, ok)
}

func TestSummarize_NotFound(t *testing.T) {
	s, err := NewScraper(testutil.NewPageFetcher(testutil.NotFoundPage("ZZZZ"))).
		Summarize(context.Background(), "zzzz")
	require.NoError(t, err)

	assert.Equal(t, KindNotFound, s.Kind)
	assert.Nil(t, s.Quote)
	require.NotNil(t, s.Invalid)
	assert.Equal(t, "Invalid ticker: ZZZZ", s.Invalid.Message)
	assert.Equal(t, 404, s.Invalid.Code)
	assert.NotNil(t, s.Invalid.SimilarTickers)
	assert.Empty(t, s.Invalid.SimilarTickers)
}

func TestSummarize_Lookup(t *testing.T) {
	lookup := testutil.LookupPage(
		testutil.LookupRow{"ZM", "Zoom Video Communications, Inc.", "68.31", "Software—Application", "Stocks", "NMS"},
		testutil.LookupRow{"ZS", "Zscaler, Inc.", "221.52", "Software—Infrastructure", "Stocks", "NMS"},
		testutil.LookupRow{"ZI", "ZoomInfo Technologies Inc.", "17.94", "Software—Application", "Stocks", "NMS"},
	)
	f := testutil.NewMockFetcher(&fetcher.Page{
		Body:       lookup,
		URL:        "https://finance.yahoo.com/lookup?s=ZZZZINVALID",
		StatusCode: 200,
	}, nil)

	s, err := NewScraper(f).Summarize(context.Background(), "ZZZZINVALID")
	require.NoError(t, err)

	assert.Equal(t, KindLookup, s.Kind)
	require.NotNil(t, s.Invalid)
	assert.Equal(t, "Invalid ticker: ZZZZINVALID", s.Invalid.Message)
	assert.Equal(t, 404, s.Invalid.Code)
	require.Len(t, s.Invalid.SimilarTickers, 3)
	assert.Equal(t, "ZM", s.Invalid.SimilarTickers[0].Symbol)
	assert.Equal(t, "ZS", s.Invalid.SimilarTickers[1].Symbol)
	assert.Equal(t, "ZI", s.Invalid.SimilarTickers[2].Symbol)
}

func TestSummarize_LookupIgnoresBodyAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"quote body", testutil.StockPage("AAPL").HTML(), 200},
		{"no table", testutil.EmptyLookupPage(), 200},
		{"not found status", testutil.EmptyLookupPage(), 404},
		{"empty body", "", 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testutil.NewMockFetcher(&fetcher.Page{
				Body:       tt.body,
				URL:        "https://finance.yahoo.com/lookup?s=AAPL",
				StatusCode: tt.status,
			}, nil)

			s, err := NewScraper(f).Summarize(context.Background(), "AAPL")
			require.NoError(t, err)
			assert.Equal(t, KindLookup, s.Kind)
			assert.Empty(t, s.Invalid.SimilarTickers)
		})
	}
}

func TestSummarize_FetchFailure(t *testing.T) {
	cause := fetcher.NewNetworkError(errors.New("dial tcp: connection refused"))

	_, err := NewScraper(testutil.NewMockFetcher(nil, cause)).Summarize(context.Background(), "AAPL")
	require.Error(t, err)

	var fe *fetcher.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fetcher.ErrorTypeNetwork, fe.Type)
}

func TestSummarize_HTTPStatusFailure(t *testing.T) {
	f := testutil.NewMockFetcher(&fetcher.Page{
		Body:       "Service Unavailable",
		URL:        "https://finance.yahoo.com/quote/AAPL/summary",
		StatusCode: 503,
	}, nil)

	_, err := NewScraper(f).Summarize(context.Background(), "AAPL")
	require.Error(t, err)

	var fe *fetcher.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fetcher.ErrorTypeServer, fe.Type)
	assert.Equal(t, 503, fe.StatusCode)
}

func TestSummarize_StructuralFailures(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"missing heading", `<html><body><p>consent</p></body></html>`, "name"},
		{"missing volume", func() string { p := testutil.StockPage("AAPL"); p.NoVolume = true; return p.HTML() }(), "volume"},
		{"missing stock cell", testutil.StockPage("AAPL").Without("ONE_YEAR_TARGET_PRICE").HTML(), "oneYearTargetEst"},
		{"missing fund cell", testutil.ETFPage("AAPL").Without("NAV").HTML(), "nav"},
		{"other symbol's streamers", testutil.StockPage("MSFT").HTML(), "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScraper(testutil.NewPageFetcher(tt.body)).Summarize(context.Background(), "AAPL")
			require.Error(t, err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.wantField, pe.Field)
		})
	}
}

func TestSummary_MarshalJSON(t *testing.T) {
	found, err := NewScraper(testutil.NewPageFetcher(testutil.CryptoPage("ETH-USD").HTML())).
		Summarize(context.Background(), "ETH-USD")
	require.NoError(t, err)

	b, err := json.Marshal(found)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "crypto", decoded["assetType"])
	assert.Equal(t, "ETH-USD", decoded["ticker"])
	assert.Equal(t, 42850.12, decoded["price"])
	assert.Len(t, decoded, 1+len(expectedKeys(AssetCrypto)))

	missing, err := NewScraper(testutil.NewPageFetcher(testutil.NotFoundPage("NOPE"))).
		Summarize(context.Background(), "NOPE")
	require.NoError(t, err)

	b, err = json.Marshal(missing)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Invalid ticker: NOPE","errorCode":404,"similarTickers":[]}`, string(b))
}

func TestSummarize_Concurrent(t *testing.T) {
	pages := map[string]string{
		"quote/AAPL/summary":    testutil.StockPage("AAPL").HTML(),
		"quote/SPY/summary":     testutil.ETFPage("SPY").HTML(),
		"quote/BTC-USD/summary": testutil.CryptoPage("BTC-USD").HTML(),
	}
	f := &testutil.MockFetcher{
		GetFunc: func(ctx context.Context, path string) (*fetcher.Page, error) {
			body, ok := pages[path]
			if !ok {
				return nil, fmt.Errorf("unexpected path %s", path)
			}
			return &fetcher.Page{Body: body, URL: "https://finance.yahoo.com/" + path, StatusCode: 200}, nil
		},
	}
	scraper := NewScraper(f)

	want := map[string]AssetType{"AAPL": AssetStock, "SPY": AssetETF, "BTC-USD": AssetCrypto}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		for ticker, assetType := range want {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s, err := scraper.Summarize(context.Background(), ticker)
				if assert.NoError(t, err) {
					assert.Equal(t, assetType, s.Quote.AssetType())
				}
			}()
		}
	}
	wg.Wait()
}
