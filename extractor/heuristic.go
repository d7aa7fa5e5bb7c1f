package extractor

import (
	"net/url"
	"regexp"
	"strings"

	"wishfund/models"

	"github.com/PuerkitoBio/goquery"
)

var titleSelectors = []string{
	"h1", `[data-testid*="title"]`, `[data-testid*="name"]`, ".product-title",
	".product-name", "#product-title", "#product-name", ".title",
	`[class*="title"]`, `[class*="name"]`, `[id*="title"]`, `[id*="name"]`,
}

var imageSelectors = []string{
	".product-image img", ".main-image", `[data-testid*="image"] img`,
	`img[alt*="product"]`, `img[src*="product"]`, ".gallery img",
	`[class*="image"] img`, ".hero img",
}

const minTitleLength = 5

// callToActionPattern rejects title candidates that are navigation chrome
// rather than a product name.
var callToActionPattern = regexp.MustCompile(`(?i)buy|shop|cart`)

// ExtractFromHTML builds a best-effort ProductRecord from DOM heuristics
// alone, with no oracle call. It never fails on malformed input; the worst
// case is an all-empty record.
func ExtractFromHTML(pageURL, html string, detector *CategoryDetector) *models.ProductRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &models.ProductRecord{Name: models.NameNotFound, Category: DefaultCategory}
	}

	name := extractTitle(doc)
	price := SelectBestPrice(ExtractPriceCandidates(doc), hostOf(pageURL))
	image := extractImage(doc)

	recordName := name
	if recordName == "" {
		recordName = models.NameNotFound
	}

	return &models.ProductRecord{
		Name:     recordName,
		Price:    price,
		Image:    image,
		Category: detector.Detect(name, price),
	}
}

// extractTitle returns the first selector hit that is long enough to be a
// real product name and does not look like a call to action.
func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		el := doc.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(el.Text())
		if len(text) > minTitleLength && !callToActionPattern.MatchString(text) {
			return text
		}
	}
	return ""
}

// extractImage returns the first non-placeholder image source, normalizing
// protocol-relative URLs to https.
func extractImage(doc *goquery.Document) string {
	for _, selector := range imageSelectors {
		el := doc.Find(selector).First()
		if el.Length() == 0 {
			continue
		}

		src, ok := el.Attr("src")
		if !ok || src == "" {
			src, _ = el.Attr("data-src")
		}
		if src == "" {
			src, _ = el.Attr("data-original")
		}
		if src == "" || strings.Contains(src, "placeholder") {
			continue
		}

		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		}
		return src
	}
	return ""
}

func hostOf(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
