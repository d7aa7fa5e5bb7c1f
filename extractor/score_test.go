package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectBestPriceEmpty(t *testing.T) {
	assert.Equal(t, 0.0, SelectBestPrice(nil, "example.com"))
}

// A crossed-out MRP price must lose to the current selling price even when
// the MRP appears first in the document.
func TestSelectBestPricePrefersCurrentOverMRP(t *testing.T) {
	candidates := []PriceCandidate{
		{Value: 1299, Source: SourceMarkupText, Selector: ".mrp-price", RawText: "₹1,299", TagName: "span", Classes: "mrp-price"},
		{Value: 999, Source: SourceMarkupText, Selector: ".current-price", RawText: "₹999", TagName: "span", Classes: "current-price"},
	}

	assert.Equal(t, 999.0, SelectBestPrice(candidates, "example.com"))
}

// Structured data outranks a markup candidate flagged as MRP.
func TestSelectBestPricePrefersStructuredData(t *testing.T) {
	candidates := []PriceCandidate{
		{Value: 999, Source: SourceStructured, Selector: `script[type="application/ld+json"]`, RawText: "999", TagName: "script", Classes: "structured-data"},
		{Value: 1299, Source: SourceMarkupText, Selector: ".price", RawText: "₹1,299", TagName: "span", Classes: "mrp"},
	}

	assert.Equal(t, 999.0, SelectBestPrice(candidates, "example.com"))
}

// Equal scores break toward the cheaper price.
func TestSelectBestPriceTieBreaksOnLowerPrice(t *testing.T) {
	candidates := []PriceCandidate{
		{Value: 450, Source: SourceMarkupText, Selector: ".price", Classes: "price"},
		{Value: 300, Source: SourceMarkupText, Selector: ".price", Classes: "price"},
	}

	assert.Equal(t, 300.0, SelectBestPrice(candidates, "example.com"))
}

// Duplicate numeric values collapse to one candidate before scoring.
func TestSelectBestPriceDeduplicates(t *testing.T) {
	candidates := []PriceCandidate{
		{Value: 999, Source: SourceMarkupText, Selector: ".price", Classes: "price"},
		{Value: 999, Source: SourceMetaTag, Selector: "meta", Classes: "meta-data"},
	}

	assert.Equal(t, 999.0, SelectBestPrice(candidates, "example.com"))
}

func TestScoreCandidateDomainHint(t *testing.T) {
	c := PriceCandidate{Value: 999, Source: SourceMarkupText, Selector: ".a-price-current", Classes: ""}

	onAmazon := scoreCandidate(c, "www.amazon.in")
	elsewhere := scoreCandidate(c, "example.com")

	assert.Equal(t, elsewhere+3, onAmazon)
}

func TestScoreCandidatePenalizesWasText(t *testing.T) {
	was := PriceCandidate{Value: 999, Source: SourceMarkupText, Selector: ".price", RawText: "Was ₹999"}
	plain := PriceCandidate{Value: 999, Source: SourceMarkupText, Selector: ".price", RawText: "₹999"}

	assert.Less(t, scoreCandidate(was, "example.com"), scoreCandidate(plain, "example.com"))
}
