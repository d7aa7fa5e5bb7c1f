package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCategory(t *testing.T) {
	detector := NewCategoryDetector()

	tests := []struct {
		name string
		text string
		want string
	}{
		// Keyword, pattern and brand all reinforce the audio category.
		{"audio product", "boAt Rockerz 450 Bluetooth Headphones with Mic", "Electronics & Audio"},
		{"mobile product", "Samsung Galaxy S24 smartphone 256GB", "Electronics & Mobile"},
		{"computing product", "Dell 27 inch monitor with HDMI", "Electronics & Computing"},
		{"kitchen product", "IFB 23L convection microwave oven", "Home & Kitchen"},
		{"fashion product", "Levi's slim fit jeans for men", "Fashion & Clothing"},
		{"beauty product", "Vitamin C face serum 30ml", "Health & Beauty"},
		{"no matches", "wooden garden bench outdoor furniture", "General"},
		{"empty text", "", "General"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.Detect(tt.text, 0))
		})
	}
}

// Brand mentions pull a product toward the brand's category even without
// category keywords.
func TestDetectCategoryBrandHint(t *testing.T) {
	detector := NewCategoryDetector()

	assert.Equal(t, "Electronics & Audio", detector.Detect("JBL Flip 6", 0))
	assert.Equal(t, "Electronics & Mobile", detector.Detect("OnePlus Nord CE4", 0))
}

// Ties resolve to the first category in declaration order.
func TestDetectCategoryTieIsDeterministic(t *testing.T) {
	detector := NewCategoryDetector()

	// "shirt" scores Fashion & Clothing +2, "serum" scores Health & Beauty +2.
	got := detector.Detect("shirt serum", 0)
	assert.Equal(t, "Fashion & Clothing", got)

	// Same input, same answer, every time.
	for i := 0; i < 10; i++ {
		assert.Equal(t, got, detector.Detect("shirt serum", 0))
	}
}
