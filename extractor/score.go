package extractor

import (
	"log"
	"sort"
	"strings"
)

// ScoredPriceCandidate is a PriceCandidate with its computed score.
// Higher score means more likely to be the current selling price rather
// than a list/strikethrough/MRP price.
type ScoredPriceCandidate struct {
	PriceCandidate
	Score int
}

// Plausible consumer-price range used for the range bonus.
const (
	plausibleMinPrice = 50
	plausibleMaxPrice = 500000
)

// domainSelectorHints maps a domain fragment to selector fragments that are
// known to carry the selling price on that retailer. Matching earns a small
// bonus; nothing depends on them being present.
var domainSelectorHints = map[string][]string{
	"amazon":   {"a-price-current", "a-offscreen"},
	"flipkart": {"_30jeq3", "CEmiEU"},
}

// SelectBestPrice deduplicates and ranks price candidates and returns the
// single most likely current selling price, or 0 when there are none.
//
// Sites frequently render both the original and the discounted price in the
// DOM, so naive first-match logic picks the wrong one about half the time.
// The explicit reward/penalty vocabulary over class names and data
// provenance is what makes the selection reliable.
func SelectBestPrice(candidates []PriceCandidate, domain string) float64 {
	if len(candidates) == 0 {
		return 0
	}

	// Deduplicate by exact numeric value; the first occurrence keeps its metadata.
	seen := make(map[float64]bool)
	var unique []PriceCandidate
	for _, c := range candidates {
		if seen[c.Value] {
			continue
		}
		seen[c.Value] = true
		unique = append(unique, c)
	}

	scored := make([]ScoredPriceCandidate, 0, len(unique))
	for _, c := range unique {
		scored = append(scored, ScoredPriceCandidate{PriceCandidate: c, Score: scoreCandidate(c, domain)})
	}

	// Highest score first; ties break toward the cheaper price, since a
	// promotional current price is typically the lower one.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Value < scored[j].Value
	})

	log.Printf("Selected price %.2f from %d candidates (score %d, source %s)",
		scored[0].Value, len(candidates), scored[0].Score, scored[0].Source)

	return scored[0].Value
}

func scoreCandidate(c PriceCandidate, domain string) int {
	score := 0
	classes := strings.ToLower(c.Classes)
	rawText := strings.ToLower(c.RawText)

	// Machine-authored sources are the most trustworthy.
	switch c.Source {
	case SourceStructured:
		score += 10
	case SourceMetaTag:
		score += 8
	}

	// Class vocabulary rewards for selling-price markers.
	if strings.Contains(classes, "current") || strings.Contains(classes, "selling") {
		score += 5
	}
	if strings.Contains(classes, "final") || strings.Contains(classes, "offer") {
		score += 4
	}
	if strings.Contains(classes, "discounted") || strings.Contains(classes, "sale") {
		score += 3
	}

	// Penalties for superseded list-price markers.
	if strings.Contains(classes, "mrp") || strings.Contains(classes, "original") || strings.Contains(classes, "crossed") {
		score -= 5
	}
	if strings.Contains(rawText, "mrp") || strings.Contains(rawText, "was") {
		score -= 3
	}

	if c.Value >= plausibleMinPrice && c.Value <= plausibleMaxPrice {
		score += 2
	}

	// Small bonus when the locator matches a known selector for this retailer.
	for fragment, hints := range domainSelectorHints {
		if !strings.Contains(domain, fragment) {
			continue
		}
		for _, hint := range hints {
			if strings.Contains(c.Selector, hint) {
				score += 3
				break
			}
		}
	}

	return score
}
