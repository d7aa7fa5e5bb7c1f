package extractor

import (
	"regexp"
	"strings"
)

// DefaultCategory is returned when no rule scores above zero.
const DefaultCategory = "General"

// CategoryRule scores a product text against one category. Keywords are
// substring matches, patterns encode multi-word or structural cues and are
// weighted higher than single keywords.
type CategoryRule struct {
	Category string
	Keywords []string
	Patterns []*regexp.Regexp
}

// CategoryDetector assigns a category label to product text using a fixed
// rule table plus a brand lookup. The table is built once and read-only
// afterwards, so a single detector is safe for concurrent use.
type CategoryDetector struct {
	rules  []CategoryRule
	brands map[string]string
}

// NewCategoryDetector builds the default rule table. Declaration order
// matters: ties between categories resolve to the first one declared.
func NewCategoryDetector() *CategoryDetector {
	return &CategoryDetector{
		rules: []CategoryRule{
			{
				Category: "Electronics & Audio",
				Keywords: []string{
					"headphones", "earphones", "earbuds", "headset", "speakers", "soundbar",
					"bluetooth", "wireless", "microphone", "amplifier", "subwoofer",
					"stereo", "noise cancelling", "tws", "airpods", "bose", "jbl", "sony", "boat",
				},
				Patterns: []*regexp.Regexp{
					regexp.MustCompile(`\b(in-ear|on-ear|over-ear)\b`),
					regexp.MustCompile(`\bwith mic\b`),
					regexp.MustCompile(`\bnoise cancel`),
				},
			},
			{
				Category: "Electronics & Mobile",
				Keywords: []string{"smartphone", "iphone", "android", "samsung", "oneplus", "realme", "charger", "mobile", "phone"},
			},
			{
				Category: "Electronics & Computing",
				Keywords: []string{"laptop", "desktop", "monitor", "keyboard", "mouse", "ram", "ssd", "macbook", "computer"},
			},
			{
				Category: "Home & Kitchen",
				Keywords: []string{"microwave", "refrigerator", "blender", "toaster", "kettle", "cooker", "appliance"},
			},
			{
				Category: "Fashion & Clothing",
				Keywords: []string{"shirt", "pants", "jeans", "dress", "shoes", "handbag", "wallet", "clothing", "fashion"},
			},
			{
				Category: "Health & Beauty",
				Keywords: []string{"skincare", "makeup", "lotion", "serum", "shampoo", "vitamin", "cosmetic"},
			},
		},
		brands: map[string]string{
			"boat":    "Electronics & Audio",
			"jbl":     "Electronics & Audio",
			"sony":    "Electronics & Audio",
			"bose":    "Electronics & Audio",
			"apple":   "Electronics & Mobile",
			"samsung": "Electronics & Mobile",
			"oneplus": "Electronics & Mobile",
		},
	}
}

// Detect returns the category whose rules score highest against the text,
// or DefaultCategory if nothing matches. The price is reserved for future
// price-band rules and is currently unused.
func (d *CategoryDetector) Detect(text string, price float64) string {
	_ = price

	t := strings.ToLower(text)
	scores := make(map[string]int, len(d.rules))

	for _, rule := range d.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(t, keyword) {
				scores[rule.Category] += 2
			}
		}
		for _, pattern := range rule.Patterns {
			if pattern.MatchString(t) {
				scores[rule.Category] += 5
			}
		}
	}

	for brand, category := range d.brands {
		if strings.Contains(t, brand) {
			scores[category] += 4
		}
	}

	// Walk rules in declaration order so ties are deterministic.
	best := DefaultCategory
	bestScore := 0
	for _, rule := range d.rules {
		if scores[rule.Category] > bestScore {
			best = rule.Category
			bestScore = scores[rule.Category]
		}
	}

	return best
}
