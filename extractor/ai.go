package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"wishfund/models"

	"github.com/PuerkitoBio/goquery"
)

const bodyExcerptLimit = 3000

// AIExtractor produces a ProductRecord from an oracle reply. With page
// markup available it sends the page's own signals along with the extracted
// price candidates as hints; without markup it falls back to a URL-only
// prompt. Failure here is always recoverable by the caller.
type AIExtractor struct {
	oracle   Oracle
	detector *CategoryDetector
}

// NewAIExtractor wires the oracle and the category detector.
func NewAIExtractor(oracle Oracle, detector *CategoryDetector) *AIExtractor {
	return &AIExtractor{oracle: oracle, detector: detector}
}

// aiReply is the JSON object the oracle is instructed to return. Price may
// arrive as a number or a string, so it is decoded loosely.
type aiReply struct {
	Name        string      `json:"name"`
	Price       interface{} `json:"price"`
	Image       string      `json:"image"`
	Description string      `json:"description"`
	Brand       string      `json:"brand"`
	Error       string      `json:"error"`
}

// Extract runs the oracle over the page (or the bare URL when markup is
// empty) and returns a populated ProductRecord, or an error when the reply
// is unusable.
func (a *AIExtractor) Extract(ctx context.Context, pageURL, html string) (*models.ProductRecord, error) {
	var prompt string
	if html != "" {
		prompt = a.buildContentPrompt(pageURL, html)
	} else {
		prompt = buildURLOnlyPrompt(pageURL)
	}

	reply, err := a.oracle.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("oracle request failed: %v", err)
	}

	object := extractJSONObject(reply)
	if object == "" {
		return nil, fmt.Errorf("no JSON object found in oracle reply")
	}

	dec := json.NewDecoder(strings.NewReader(object))
	dec.UseNumber()
	var parsed aiReply
	if err := dec.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse oracle reply: %v", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("oracle extraction failed: %s", parsed.Error)
	}

	name := parsed.Name
	if name == "" {
		name = models.NameNotFound
	}
	price := CleanPrice(priceText(parsed.Price))

	return &models.ProductRecord{
		Name:        name,
		Price:       price,
		Image:       parsed.Image,
		Description: parsed.Description,
		Brand:       parsed.Brand,
		Category:    a.detector.Detect(name, price),
	}, nil
}

// priceText renders the loosely-typed price field as plain digits. Rendering
// through %v would put large float64 values in scientific notation and lose
// digits in normalization.
func priceText(v interface{}) string {
	switch p := v.(type) {
	case nil:
		return ""
	case string:
		return p
	case json.Number:
		return p.String()
	case float64:
		return strconv.FormatFloat(p, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", p)
	}
}

// buildContentPrompt composes the full prompt from the page's title, meta
// description, a bounded body excerpt, and the price candidates rendered as
// a hint string.
func (a *AIExtractor) buildContentPrompt(pageURL, html string) string {
	title := ""
	metaDescription := ""
	bodyText := ""
	priceContext := ""

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		title = strings.TrimSpace(doc.Find("title").Text())
		metaDescription, _ = doc.Find(`meta[name="description"]`).Attr("content")

		candidates := ExtractPriceCandidates(doc)
		if len(candidates) > 0 {
			hints := make([]string, 0, len(candidates))
			for _, c := range candidates {
				hints = append(hints, fmt.Sprintf("%.2f (from %s)", c.Value, c.Source))
			}
			priceContext = "\nFound prices on page: " + strings.Join(hints, ", ")
		}

		bodyText = strings.TrimSpace(doc.Find("body").Text())
		if len(bodyText) > bodyExcerptLimit {
			cut := bodyExcerptLimit
			// Back up to a rune boundary so the excerpt stays valid UTF-8.
			for cut > 0 && !utf8.RuneStart(bodyText[cut]) {
				cut--
			}
			bodyText = bodyText[:cut]
		}
	} else {
		log.Printf("Failed to parse HTML for prompt, sending URL signals only: %v", err)
	}

	return fmt.Sprintf(`
Extract product information from this e-commerce page content.

Page Title: %s
Meta Description: %s
URL: %s%s

Page Content (excerpt): %s

Please analyze and return ONLY a valid JSON object:
{
  "name": "exact product name (not page title)",
  "price": numeric_value_only,
  "image": "full_image_url_if_found",
  "description": "brief product description",
  "brand": "brand name if identifiable"
}

CRITICAL PRICE EXTRACTION RULES:
- Extract the CURRENT SELLING PRICE (the price customer actually pays)
- IGNORE crossed-out prices, MRP, or "was" prices
- Look for terms like "Deal Price", "Offer Price", "Sale Price", "Current Price"
- If multiple prices exist, choose the LOWEST active selling price
- Price should be numeric only (remove currency symbols and commas)
- If you see structured price data above, prioritize those values

Important:
- Name should be the actual product name, not website name
- If cannot extract reliable data, return: {"error": "extraction_failed"}
- Return only JSON, no explanations
`, title, metaDescription, pageURL, priceContext, bodyText)
}

func buildURLOnlyPrompt(pageURL string) string {
	return fmt.Sprintf(`
Extract product information from this URL: %s

Please analyze the page and return ONLY a valid JSON object:
{
  "name": "exact product name",
  "price": numeric_value_only,
  "image": "full_image_url_if_found",
  "description": "brief product description",
  "brand": "brand name if identifiable"
}

Focus on finding the current selling price (not MRP or crossed-out prices).
If cannot extract, return: {"error": "extraction_failed"}
Return only JSON, no explanations.
`, pageURL)
}

// extractJSONObject returns the first balanced {...} substring of the reply,
// tolerating surrounding prose and code fencing. String literals are skipped
// so braces inside values do not break the balance count.
func extractJSONObject(reply string) string {
	start := strings.IndexByte(reply, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(reply); i++ {
		ch := reply[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return reply[start : i+1]
			}
		}
	}
	return ""
}
