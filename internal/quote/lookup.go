package quote

import (
	"strings"

	"quotefetcher/internal/dom"
)

// SimilarTicker is one suggestion from the quote site's lookup page
type SimilarTicker struct {
	Symbol             string `json:"symbol"`
	Name               string `json:"name"`
	LastPrice          string `json:"lastPrice"`
	IndustryOrCategory string `json:"industryOrCategory"`
	Type               string `json:"type"`
	Exchange           string `json:"exchange"`
}

var lookupTableLocator = Locator{
	Tag:   "table",
	Attrs: dom.Attrs{"class": "lookup-table W(100%) Pos(r) BdB Bdc($seperatorColor) smartphone_Mx(20px)"},
}

const lookupColumns = 6

// IsLookupRedirect reports whether a request ended on the lookup page
func IsLookupRedirect(effectiveURL string) bool {
	return strings.Contains(effectiveURL, "lookup")
}

// ParseLookupTable extracts the suggested tickers in document order.
// A page without the table yields an empty list. Rows with fewer cells
// than the table has columns are skipped.
func ParseLookupTable(doc *dom.Document) []SimilarTicker {
	similar := []SimilarTicker{}

	table, ok := doc.FindOne(lookupTableLocator.Tag, lookupTableLocator.Attrs)
	if !ok {
		return similar
	}
	body, ok := table.FindOne("tbody", nil)
	if !ok {
		return similar
	}

	for _, row := range body.Children("tr") {
		cells := row.Children("td")
		if len(cells) < lookupColumns {
			continue
		}
		similar = append(similar, SimilarTicker{
			Symbol:             cells[0].Text(),
			Name:               cells[1].Text(),
			LastPrice:          cells[2].Text(),
			IndustryOrCategory: cells[3].Text(),
			Type:               cells[4].Text(),
			Exchange:           cells[5].Text(),
		})
	}

	return similar
}
