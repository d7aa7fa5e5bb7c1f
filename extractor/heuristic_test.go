package extractor

import (
	"testing"

	"wishfund/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productFixture = `
<html>
<head>
	<title>Acme Store</title>
	<script type="application/ld+json">
		{"@type":"Product","name":"Acme Wireless Headphones","offers":{"price":"499"}}
	</script>
</head>
<body>
	<h1>Acme Wireless Headphones</h1>
	<span class="mrp">₹999</span>
	<div class="product-image"><img src="//cdn.acme.test/images/headphones.jpg" alt="product"></div>
</body>
</html>
`

// The discounted structured-data price must win over the struck-through MRP
// rendered alongside it.
func TestExtractFromHTMLPrefersSellingPrice(t *testing.T) {
	detector := NewCategoryDetector()

	record := ExtractFromHTML("https://example.com/p/headphones", productFixture, detector)

	require.NotNil(t, record)
	assert.Equal(t, "Acme Wireless Headphones", record.Name)
	assert.Equal(t, 499.0, record.Price)
	assert.Equal(t, "https://cdn.acme.test/images/headphones.jpg", record.Image)
	assert.Equal(t, "Electronics & Audio", record.Category)
}

func TestExtractFromHTMLIsIdempotent(t *testing.T) {
	detector := NewCategoryDetector()

	first := ExtractFromHTML("https://example.com/p/headphones", productFixture, detector)
	second := ExtractFromHTML("https://example.com/p/headphones", productFixture, detector)

	assert.Equal(t, first, second)
}

func TestExtractFromHTMLSkipsCallToActionTitles(t *testing.T) {
	detector := NewCategoryDetector()
	html := `
		<html><body>
			<h1>Buy Now!</h1>
			<div class="product-title">Solid Oak Bookshelf</div>
		</body></html>
	`

	record := ExtractFromHTML("https://example.com/p/shelf", html, detector)

	assert.Equal(t, "Solid Oak Bookshelf", record.Name)
}

func TestExtractFromHTMLSkipsPlaceholderImages(t *testing.T) {
	detector := NewCategoryDetector()
	html := `
		<html><body>
			<div class="product-image"><img src="/assets/placeholder.png"></div>
			<div class="gallery"><img data-src="https://cdn.example.com/real.jpg"></div>
		</body></html>
	`

	record := ExtractFromHTML("https://example.com/p/x", html, detector)

	assert.Equal(t, "https://cdn.example.com/real.jpg", record.Image)
}

// Malformed or empty input never panics; the worst case is an empty record.
func TestExtractFromHTMLNeverFails(t *testing.T) {
	detector := NewCategoryDetector()

	for _, html := range []string{"", "<<<<", "<html><body></body></html>"} {
		record := ExtractFromHTML("https://example.com", html, detector)
		require.NotNil(t, record)
		assert.Equal(t, models.NameNotFound, record.Name)
		assert.Equal(t, 0.0, record.Price)
		assert.Equal(t, DefaultCategory, record.Category)
	}
}
