package extractor

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Price candidate sources, ordered roughly by trustworthiness.
const (
	SourceMarkupText  = "markup-text"
	SourceMarkupAttr  = "markup-attribute"
	SourceStructured  = "structured-data"
	SourceMetaTag     = "meta-tag"
	SourceTextPattern = "free-text-pattern"
)

// PriceCandidate is one occurrence of a possible price found in a document,
// with enough provenance metadata for the scorer to judge it.
type PriceCandidate struct {
	Value    float64
	Source   string
	Selector string
	RawText  string
	TagName  string
	Classes  string
}

// priceSelectors is a broad, ordered list of price-bearing selectors.
// The retailer-specific fragments are scoring hints only; nothing here
// gates extraction on a particular site.
var priceSelectors = []string{
	// Generic selectors
	`[data-testid*="price"]`, ".price", ".product-price", "#price",
	`[class*="price"]`, `[id*="price"]`, ".cost", ".amount", ".value",
	`[class*="cost"]`, `[class*="amount"]`, ".final-price", ".selling-price",

	// Amazon
	".a-price-range", ".a-offscreen", ".a-price .a-offscreen",
	"#priceblock_dealprice", "#priceblock_ourprice", ".a-price-current",

	// Flipkart
	"._30jeq3._16Jk6d", "._30jeq3", ".CEmiEU", "._1_WHN1",

	// Myntra
	".pdp-price", ".product-discountedPrice",

	// Ajio
	".prod-sp", ".price-text",

	// Nykaa
	".price-show",

	// Common patterns
	"[data-price]", "[data-original-price]", "[data-sale-price]",
	".current-price", ".sale-price", ".offer-price", ".discounted-price",
	".product-cost", ".item-price", ".buy-price", ".mrp-price",
}

// freeTextPricePattern matches currency-prefixed amounts in visible body text.
var freeTextPricePattern = regexp.MustCompile(`[₹$€£]\s?[\d,]+(?:\.\d{1,2})?`)

// Sanity bounds for the free-text scan, to avoid matching phone numbers,
// pin codes and order IDs.
const (
	freeTextMinPrice = 10
	freeTextMaxPrice = 10000000
)

// ExtractPriceCandidates scans a parsed document for every plausible price
// occurrence. The four passes are additive: the same price may appear in more
// than one candidate, which is fine because the scorer deduplicates by value.
func ExtractPriceCandidates(doc *goquery.Document) []PriceCandidate {
	var candidates []PriceCandidate

	// Pass 1: markup selectors, both element text and price-bearing attributes.
	for _, selector := range priceSelectors {
		sel := selector
		doc.Find(sel).Each(func(_ int, el *goquery.Selection) {
			tag := goquery.NodeName(el)
			classes, _ := el.Attr("class")

			if text := strings.TrimSpace(el.Text()); text != "" {
				if value := CleanPrice(text); value > 0 {
					candidates = append(candidates, PriceCandidate{
						Value:    value,
						Source:   SourceMarkupText,
						Selector: sel,
						RawText:  text,
						TagName:  tag,
						Classes:  classes,
					})
				}
			}

			for _, attr := range []string{"data-price", "content", "value"} {
				raw, ok := el.Attr(attr)
				if !ok || raw == "" {
					continue
				}
				if value := CleanPrice(raw); value > 0 {
					candidates = append(candidates, PriceCandidate{
						Value:    value,
						Source:   SourceMarkupAttr,
						Selector: sel,
						RawText:  raw,
						TagName:  tag,
						Classes:  classes,
					})
				}
			}
		})
	}

	// Pass 2: JSON-LD structured data.
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, el *goquery.Selection) {
		var data interface{}
		if err := json.Unmarshal([]byte(el.Text()), &data); err != nil {
			// Malformed blocks are common in the wild; skip them.
			return
		}
		candidates = append(candidates, collectStructuredPrices(data)...)
	})

	// Pass 3: meta tags whose property or name mentions a price.
	doc.Find(`meta[property*="price"], meta[name*="price"]`).Each(func(_ int, el *goquery.Selection) {
		content, ok := el.Attr("content")
		if !ok || content == "" {
			return
		}
		if value := CleanPrice(content); value > 0 {
			candidates = append(candidates, PriceCandidate{
				Value:    value,
				Source:   SourceMetaTag,
				Selector: "meta",
				RawText:  content,
				TagName:  "meta",
				Classes:  "meta-data",
			})
		}
	})

	// Pass 4: free-text currency patterns in the body, bounded to a sane range.
	bodyText := doc.Find("body").Text()
	for _, match := range freeTextPricePattern.FindAllString(bodyText, -1) {
		value := CleanPrice(match)
		if value > freeTextMinPrice && value < freeTextMaxPrice {
			candidates = append(candidates, PriceCandidate{
				Value:    value,
				Source:   SourceTextPattern,
				Selector: "body-text-search",
				RawText:  match,
				TagName:  "text",
				Classes:  "pattern-match",
			})
		}
	}

	return candidates
}

// collectStructuredPrices recursively walks a decoded JSON-LD graph and
// collects every price field at any depth. Offer prices nested under
// "offers" are reached by the same recursion.
func collectStructuredPrices(data interface{}) []PriceCandidate {
	var candidates []PriceCandidate

	switch node := data.(type) {
	case map[string]interface{}:
		if raw, ok := node["price"]; ok {
			text := fmt.Sprintf("%v", raw)
			if value := CleanPrice(text); value > 0 {
				candidates = append(candidates, PriceCandidate{
					Value:    value,
					Source:   SourceStructured,
					Selector: `script[type="application/ld+json"]`,
					RawText:  text,
					TagName:  "script",
					Classes:  "structured-data",
				})
			}
		}
		for _, child := range node {
			candidates = append(candidates, collectStructuredPrices(child)...)
		}
	case []interface{}:
		for _, child := range node {
			candidates = append(candidates, collectStructuredPrices(child)...)
		}
	}

	return candidates
}
