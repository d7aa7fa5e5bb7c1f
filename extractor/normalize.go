package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyPattern   = regexp.MustCompile(`(?i)₹|Rs\.?|INR|\$|USD|€|EUR|£|GBP|¥|JPY|CNY`)
	nonNumericPattern = regexp.MustCompile(`[^\d.,]`)
)

// CleanPrice parses free-form currency text into a numeric amount.
// Text without digits always yields 0, never an error. Commas are treated
// as thousands separators (covers both 1,234.56 and the Indian 1,23,456.78
// grouping), the period is the decimal marker.
func CleanPrice(text string) float64 {
	cleaned := currencyPattern.ReplaceAllString(text, "")
	cleaned = nonNumericPattern.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0
	}

	cleaned = strings.ReplaceAll(cleaned, ",", "")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
