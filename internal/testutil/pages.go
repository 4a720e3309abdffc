package testutil

import (
	"fmt"
	"html"
	"strings"
)

// Cell is a summary-table value keyed by its data-test name without the -value suffix
type Cell struct {
	Name  string
	Value string
}

// QuotePage renders a quote summary page in the quote site's markup
type QuotePage struct {
	Ticker        string
	Heading       string
	Price         string
	ChangeDollar  string
	ChangePercent string
	Volume        string
	Cells         []Cell

	// NoVolume omits the volume streamer
	NoVolume bool
}

// Without returns a copy of the page with the named cell removed
func (p QuotePage) Without(name string) QuotePage {
	cells := make([]Cell, 0, len(p.Cells))
	for _, c := range p.Cells {
		if c.Name != name {
			cells = append(cells, c)
		}
	}
	p.Cells = cells
	return p
}

// With returns a copy of the page with an extra cell appended
func (p QuotePage) With(name, value string) QuotePage {
	cells := make([]Cell, 0, len(p.Cells)+1)
	cells = append(cells, p.Cells...)
	p.Cells = append(cells, Cell{Name: name, Value: value})
	return p
}

// HTML renders the page
func (p QuotePage) HTML() string {
	e := html.EscapeString
	var b strings.Builder

	b.WriteString("<!DOCTYPE html><html><head><title>Quote</title></head><body>\n")
	b.WriteString(`<div id="market-summary"><fin-streamer data-symbol="^GSPC" data-field="regularMarketPrice">4,783.83</fin-streamer>`)
	b.WriteString(`<fin-streamer data-symbol="^GSPC" data-field="regularMarketChange"><span>+14.50</span></fin-streamer></div>` + "\n")
	b.WriteString(`<div id="quote-header-info">` + "\n")
	fmt.Fprintf(&b, `<h1 class="D(ib) Fz(18px)">%s</h1>`+"\n", e(p.Heading))
	fmt.Fprintf(&b, `<fin-streamer data-symbol="%s" data-field="regularMarketPrice">%s</fin-streamer>`+"\n", e(p.Ticker), e(p.Price))
	fmt.Fprintf(&b, `<fin-streamer data-symbol="%s" data-field="regularMarketChange"><span>%s</span></fin-streamer>`+"\n", e(p.Ticker), e(p.ChangeDollar))
	fmt.Fprintf(&b, `<fin-streamer data-symbol="%s" data-field="regularMarketChangePercent"><span>%s</span></fin-streamer>`+"\n", e(p.Ticker), e(p.ChangePercent))
	b.WriteString("</div>\n")

	b.WriteString(`<div id="quote-summary"><table><tbody>` + "\n")
	if !p.NoVolume {
		fmt.Fprintf(&b, `<tr><td>Volume</td><td><fin-streamer data-field="regularMarketVolume">%s</fin-streamer></td></tr>`+"\n", e(p.Volume))
	}
	for _, c := range p.Cells {
		fmt.Fprintf(&b, `<tr><td>%s</td><td data-test="%s-value">%s</td></tr>`+"\n", e(c.Name), e(c.Name), e(c.Value))
	}
	b.WriteString("</tbody></table></div>\n</body></html>\n")

	return b.String()
}

// StockPage returns a stock quote page for ticker
func StockPage(ticker string) QuotePage {
	return QuotePage{
		Ticker:        ticker,
		Heading:       "Apple Inc. (" + ticker + ")",
		Price:         "178.23",
		ChangeDollar:  "+1.73",
		ChangePercent: "(+0.98%)",
		Volume:        "50,000,000",
		Cells: []Cell{
			{"PREV_CLOSE", "176.50"},
			{"OPEN", "175.50"},
			{"BID", "178.20 x 1000"},
			{"ASK", "178.25 x 900"},
			{"DAYS_RANGE", "174.25 - 178.75"},
			{"FIFTY_TWO_WK_RANGE", "124.17 - 199.62"},
			{"AVERAGE_VOLUME_3MONTH", "58,406,110"},
			{"MARKET_CAP", "2.78T"},
			{"BETA_5Y", "1.29"},
			{"PE_RATIO", "29.15"},
			{"EPS_RATIO", "6.11"},
			{"EARNINGS_DATE", "Jan 25, 2024 - Jan 29, 2024"},
			{"DIVIDEND_AND_YIELD", "0.96 (0.54%)"},
			{"EX_DIVIDEND_DATE", "Nov 10, 2023"},
			{"ONE_YEAR_TARGET_PRICE", "1,200.35"},
		},
	}
}

// ETFPage returns a fund quote page for ticker
func ETFPage(ticker string) QuotePage {
	return QuotePage{
		Ticker:        ticker,
		Heading:       "SPDR S&P 500 ETF Trust (" + ticker + ")",
		Price:         "476.68",
		ChangeDollar:  "-0.01",
		ChangePercent: "(-0.00%)",
		Volume:        "77,158,142",
		Cells: []Cell{
			{"PREV_CLOSE", "476.69"},
			{"OPEN", "477.00"},
			{"BID", "476.60 x 3000"},
			{"ASK", "476.70 x 1000"},
			{"DAYS_RANGE", "475.90 - 477.55"},
			{"FIFTY_TWO_WK_RANGE", "374.77 - 477.55"},
			{"AVERAGE_VOLUME_3MONTH", "81,234,567"},
			{"NET_ASSETS", "446.95B"},
			{"NAV", "476.65"},
			{"PE_RATIO", "25.01"},
			{"TD_YIELD", "1.37%"},
			{"YTD_DTR", "1.23%"},
			{"BETA_5Y", "1.00"},
			{"EXPENSE_RATIO", "0.09%"},
			{"FUND_INCEPTION_DATE", "1993-01-22"},
		},
	}
}

// CryptoPage returns a crypto pair quote page for ticker
func CryptoPage(ticker string) QuotePage {
	return QuotePage{
		Ticker:        ticker,
		Heading:       "Bitcoin USD (" + ticker + ")",
		Price:         "42,850.12",
		ChangeDollar:  "+310.55",
		ChangePercent: "(+0.73%)",
		Volume:        "21,512,345,678",
		Cells: []Cell{
			{"PREV_CLOSE", "42,539.57"},
			{"OPEN", "42,539.57"},
			{"DAYS_RANGE", "42,101.00 - 43,012.77"},
			{"FIFTY_TWO_WK_RANGE", "16,521.23 - 44,705.52"},
			{"START_DATE", "2010-07-13"},
			{"ALGORITHM", "SHA256"},
			{"MARKET_CAP", "840.123B"},
			{"CIRCULATING_SUPPLY", "19.59M"},
			{"MAX_SUPPLY", "21M"},
			{"TD_VOLUME_24HR", "21.5B"},
			{"TD_VOLUME_24HR_ALLCURRENCY", "21.5B"},
		},
	}
}

// NotFoundPage returns the placeholder page served for an unknown ticker
func NotFoundPage(ticker string) string {
	return fmt.Sprintf(`<!DOCTYPE html><html><body>
<div id="quote-header-info"><h1 class="D(ib) Fz(18px)">
  (%s)
</h1></div>
</body></html>`, html.EscapeString(ticker))
}

// LookupRow is one suggestion row: symbol, name, last price,
// industry or category, type, exchange
type LookupRow [6]string

// LookupPage returns a lookup page listing rows as similar tickers
func LookupPage(rows ...LookupRow) string {
	e := html.EscapeString
	var b strings.Builder

	b.WriteString("<!DOCTYPE html><html><body>\n")
	b.WriteString(`<table class="lookup-table W(100%) Pos(r) BdB Bdc($seperatorColor) smartphone_Mx(20px)">` + "\n")
	b.WriteString("<thead><tr><th>Symbol</th><th>Name</th><th>Last Price</th><th>Industry / Category</th><th>Type</th><th>Exchange</th></tr></thead>\n")
	b.WriteString("<tbody>\n")
	for _, r := range rows {
		fmt.Fprintf(&b, `<tr><td><a href="/quote/%s">%s</a></td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`+"\n",
			e(r[0]), e(r[0]), e(r[1]), e(r[2]), e(r[3]), e(r[4]), e(r[5]))
	}
	b.WriteString("</tbody></table>\n</body></html>\n")

	return b.String()
}

// EmptyLookupPage returns a lookup page without a results table
func EmptyLookupPage() string {
	return `<!DOCTYPE html><html><body><p>No results for this search.</p></body></html>`
}
