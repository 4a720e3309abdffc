package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quotefetcher/internal/testutil"
)

func TestIsLookupRedirect(t *testing.T) {
	assert.True(t, IsLookupRedirect("https://finance.yahoo.com/lookup?s=ZZZZ"))
	assert.False(t, IsLookupRedirect("https://finance.yahoo.com/quote/AAPL/summary"))
}

func TestParseLookupTable(t *testing.T) {
	doc := parse(t, testutil.LookupPage(
		testutil.LookupRow{"ZM", "Zoom Video Communications, Inc.", "68.31", "Software—Application", "Stocks", "NMS"},
		testutil.LookupRow{"ZS", "Zscaler, Inc.", "221.52", "Software—Infrastructure", "Stocks", "NMS"},
		testutil.LookupRow{"ZZZ.TO", "Sleep Country Canada Holdings Inc.", "27.96", "Specialty Retail", "Stocks", "TOR"},
	))

	got := ParseLookupTable(doc)

	assert.Equal(t, []SimilarTicker{
		{Symbol: "ZM", Name: "Zoom Video Communications, Inc.", LastPrice: "68.31", IndustryOrCategory: "Software—Application", Type: "Stocks", Exchange: "NMS"},
		{Symbol: "ZS", Name: "Zscaler, Inc.", LastPrice: "221.52", IndustryOrCategory: "Software—Infrastructure", Type: "Stocks", Exchange: "NMS"},
		{Symbol: "ZZZ.TO", Name: "Sleep Country Canada Holdings Inc.", LastPrice: "27.96", IndustryOrCategory: "Specialty Retail", Type: "Stocks", Exchange: "TOR"},
	}, got)
}

func TestParseLookupTable_NoTable(t *testing.T) {
	got := ParseLookupTable(parse(t, testutil.EmptyLookupPage()))

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseLookupTable_SkipsShortRows(t *testing.T) {
	body := `<table class="lookup-table W(100%) Pos(r) BdB Bdc($seperatorColor) smartphone_Mx(20px)"><tbody>
<tr><td colspan="6">Sponsored</td></tr>
<tr><td>ZM</td><td>Zoom</td><td>68.31</td><td>Software</td><td>Stocks</td><td>NMS</td></tr>
</tbody></table>`

	got := ParseLookupTable(parse(t, body))

	if assert.Len(t, got, 1) {
		assert.Equal(t, "ZM", got[0].Symbol)
	}
}

func TestParseLookupTable_OtherTableIgnored(t *testing.T) {
	body := `<table class="lookup-table"><tbody>
<tr><td>ZM</td><td>Zoom</td><td>68.31</td><td>Software</td><td>Stocks</td><td>NMS</td></tr>
</tbody></table>`

	assert.Empty(t, ParseLookupTable(parse(t, body)))
}
