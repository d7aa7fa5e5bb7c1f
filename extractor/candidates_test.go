package extractor

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractPriceCandidatesMarkup(t *testing.T) {
	doc := parseDoc(t, `
		<html><body>
			<span class="current-price">₹999</span>
			<div class="product-price" data-price="1299">₹1,299</div>
		</body></html>
	`)

	candidates := ExtractPriceCandidates(doc)

	var sources []string
	var values []float64
	for _, c := range candidates {
		sources = append(sources, c.Source)
		values = append(values, c.Value)
	}
	require.Contains(t, sources, SourceMarkupText)
	require.Contains(t, sources, SourceMarkupAttr)
	require.Contains(t, values, 999.0)
	require.Contains(t, values, 1299.0)
}

func TestExtractPriceCandidatesStructuredData(t *testing.T) {
	doc := parseDoc(t, `
		<html><head>
			<script type="application/ld+json">
				{"@type":"Product","name":"Widget","offers":{"price":"499","priceCurrency":"INR"}}
			</script>
		</head><body></body></html>
	`)

	candidates := ExtractPriceCandidates(doc)

	found := false
	for _, c := range candidates {
		if c.Source == SourceStructured && c.Value == 499 {
			found = true
		}
	}
	require.True(t, found, "expected a structured-data candidate for the nested offers.price")
}

func TestExtractPriceCandidatesMalformedJSONLD(t *testing.T) {
	doc := parseDoc(t, `
		<html><head>
			<script type="application/ld+json">{not json at all</script>
		</head><body><span class="price">$25</span></body></html>
	`)

	candidates := ExtractPriceCandidates(doc)

	// The malformed block is skipped, the markup candidate survives.
	require.NotEmpty(t, candidates)
	for _, c := range candidates {
		require.NotEqual(t, SourceStructured, c.Source)
	}
}

func TestExtractPriceCandidatesMetaTag(t *testing.T) {
	doc := parseDoc(t, `
		<html><head>
			<meta property="product:price:amount" content="1499.00">
		</head><body></body></html>
	`)

	candidates := ExtractPriceCandidates(doc)

	require.Len(t, candidates, 1)
	require.Equal(t, SourceMetaTag, candidates[0].Source)
	require.Equal(t, 1499.0, candidates[0].Value)
}

func TestExtractPriceCandidatesFreeTextBounds(t *testing.T) {
	doc := parseDoc(t, `
		<html><body>
			<p>Delivery from ₹5 stores near you. Special offer ₹2,499 today.</p>
		</body></html>
	`)

	candidates := ExtractPriceCandidates(doc)

	var values []float64
	for _, c := range candidates {
		require.Equal(t, SourceTextPattern, c.Source)
		values = append(values, c.Value)
	}
	// ₹5 is below the sanity bound and must be rejected.
	require.Equal(t, []float64{2499}, values)
}
