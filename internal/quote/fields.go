package quote

import (
	"maps"
	"strings"

	"quotefetcher/internal/dom"
)

// Locator identifies the element holding one field on a quote page
type Locator struct {
	Tag   string
	Attrs dom.Attrs

	// BindSymbol adds data-symbol={ticker} to Attrs at lookup time
	BindSymbol bool

	// Child, if set, reads the first descendant with this tag instead of
	// the matched element itself
	Child string
}

// FieldSpec maps an output key to the element it is read from
type FieldSpec struct {
	Key     string
	Locator Locator
}

func dataTest(name string) Locator {
	return Locator{Tag: "td", Attrs: dom.Attrs{"data-test": name + "-value"}}
}

func streamer(field, child string) Locator {
	return Locator{
		Tag:        "fin-streamer",
		Attrs:      dom.Attrs{"data-field": field},
		BindSymbol: true,
		Child:      child,
	}
}

var (
	headingLocator  = Locator{Tag: "h1", Attrs: dom.Attrs{"class": "D(ib) Fz(18px)"}}
	netAssetsMarker = dataTest("NET_ASSETS")

	// volume streamers carry no data-symbol on the page
	volumeLocator = Locator{Tag: "fin-streamer", Attrs: dom.Attrs{"data-field": "regularMarketVolume"}}
)

// universalFields follow the ticker in every record
var universalFields = []FieldSpec{
	{"name", headingLocator},
	{"price", streamer("regularMarketPrice", "")},
	{"changePercent", streamer("regularMarketChangePercent", "span")},
	{"changeDollar", streamer("regularMarketChange", "span")},
}

var cryptoFields = []FieldSpec{
	{"previousClose", dataTest("PREV_CLOSE")},
	{"open", dataTest("OPEN")},
	{"daysRange", dataTest("DAYS_RANGE")},
	{"52weekRange", dataTest("FIFTY_TWO_WK_RANGE")},
	{"startDate", dataTest("START_DATE")},
	{"algorithm", dataTest("ALGORITHM")},
	{"marketCap", dataTest("MARKET_CAP")},
	{"circulatingSupply", dataTest("CIRCULATING_SUPPLY")},
	{"maxSupply", dataTest("MAX_SUPPLY")},
	{"volume", volumeLocator},
	{"volume24h", dataTest("TD_VOLUME_24HR")},
	{"volume24hAllCurrencies", dataTest("TD_VOLUME_24HR_ALLCURRENCY")},
}

var etfFields = []FieldSpec{
	{"previousClose", dataTest("PREV_CLOSE")},
	{"open", dataTest("OPEN")},
	{"bid", dataTest("BID")},
	{"ask", dataTest("ASK")},
	{"daysRange", dataTest("DAYS_RANGE")},
	{"52weekRange", dataTest("FIFTY_TWO_WK_RANGE")},
	{"volume", volumeLocator},
	{"avgVolume", dataTest("AVERAGE_VOLUME_3MONTH")},
	{"netAssets", netAssetsMarker},
	{"nav", dataTest("NAV")},
	{"peRatio", dataTest("PE_RATIO")},
	{"yield", dataTest("TD_YIELD")},
	{"ytdDailyTotalReturn", dataTest("YTD_DTR")},
	{"beta", dataTest("BETA_5Y")},
	{"expenseRatio", dataTest("EXPENSE_RATIO")},
	{"inceptionDate", dataTest("FUND_INCEPTION_DATE")},
}

var stockFields = []FieldSpec{
	{"previousClose", dataTest("PREV_CLOSE")},
	{"open", dataTest("OPEN")},
	{"bid", dataTest("BID")},
	{"ask", dataTest("ASK")},
	{"daysRange", dataTest("DAYS_RANGE")},
	{"52weekRange", dataTest("FIFTY_TWO_WK_RANGE")},
	{"volume", volumeLocator},
	{"avgVolume", dataTest("AVERAGE_VOLUME_3MONTH")},
	{"marketCap", dataTest("MARKET_CAP")},
	{"beta", dataTest("BETA_5Y")},
	{"peRatio", dataTest("PE_RATIO")},
	{"eps", dataTest("EPS_RATIO")},
	{"earningsDate", dataTest("EARNINGS_DATE")},
	{"forwardDividendAndYield", dataTest("DIVIDEND_AND_YIELD")},
	{"exDividendDate", dataTest("EX_DIVIDEND_DATE")},
	{"oneYearTargetEst", dataTest("ONE_YEAR_TARGET_PRICE")},
}

// FieldMap returns the asset-specific fields of t, in output order.
// The returned slice must not be modified.
func FieldMap(t AssetType) []FieldSpec {
	switch t {
	case AssetCrypto:
		return cryptoFields
	case AssetETF:
		return etfFields
	default:
		return stockFields
	}
}

// DetectAssetType picks the asset type of a found quote page.
// Crypto pairs are recognized from the request path alone; funds by the
// net-assets cell only they carry; everything else is a stock.
func DetectAssetType(path string, doc *dom.Document) AssetType {
	if strings.Contains(strings.ToLower(path), "-usd") {
		return AssetCrypto
	}
	if _, ok := doc.FindOne(netAssetsMarker.Tag, netAssetsMarker.Attrs); ok {
		return AssetETF
	}
	return AssetStock
}

func (l Locator) attrs(ticker string) dom.Attrs {
	if !l.BindSymbol {
		return l.Attrs
	}
	attrs := maps.Clone(l.Attrs)
	if attrs == nil {
		attrs = dom.Attrs{}
	}
	attrs["data-symbol"] = ticker
	return attrs
}

// Describe renders the locator as a selector for a given ticker
func (l Locator) Describe(ticker string) string {
	s := l.Tag + l.attrs(ticker).String()
	if l.Child != "" {
		s += " " + l.Child
	}
	return s
}

// Resolve returns the text of the element l points at
func (l Locator) Resolve(doc *dom.Document, ticker string) (string, bool) {
	el, ok := doc.FindOne(l.Tag, l.attrs(ticker))
	if !ok {
		return "", false
	}
	if l.Child != "" {
		if el, ok = el.FindOne(l.Child, nil); !ok {
			return "", false
		}
	}
	return el.Text(), true
}

// extract reads the ticker, the universal fields and the fields of
// assetType, normalizing every value. Any missing element fails the record.
func extract(doc *dom.Document, ticker string, assetType AssetType) (*Record, error) {
	specific := FieldMap(assetType)
	fields := make([]Field, 0, 1+len(universalFields)+len(specific))
	fields = append(fields, Field{Key: "ticker", Value: NormalizeValue(ticker)})

	for _, specs := range [][]FieldSpec{universalFields, specific} {
		for _, spec := range specs {
			text, ok := spec.Locator.Resolve(doc, ticker)
			if !ok {
				return nil, &ParseError{
					Ticker:  ticker,
					Field:   spec.Key,
					Locator: spec.Locator.Describe(ticker),
				}
			}
			fields = append(fields, Field{Key: spec.Key, Value: NormalizeValue(text)})
		}
	}

	return newRecord(assetType, fields), nil
}
