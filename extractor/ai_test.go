package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOracle replays scripted replies in order and records each prompt.
type stubOracle struct {
	replies []string
	errs    []error
	prompts []string
}

func (s *stubOracle) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	i := len(s.prompts) - 1
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	return "", fmt.Errorf("no scripted reply")
}

func TestAIExtractorParsesFencedReply(t *testing.T) {
	oracle := &stubOracle{replies: []string{
		"Here is the product data:\n```json\n" +
			`{"name":"boAt Rockerz 450 Bluetooth Headphones","price":"1,499","image":"https://img.test/p.jpg","description":"On-ear headphones","brand":"boAt"}` +
			"\n```",
	}}
	ai := NewAIExtractor(oracle, NewCategoryDetector())

	record, err := ai.Extract(context.Background(), "https://example.com/p/1", "<html><body>x</body></html>")

	require.NoError(t, err)
	assert.Equal(t, "boAt Rockerz 450 Bluetooth Headphones", record.Name)
	assert.Equal(t, 1499.0, record.Price)
	assert.Equal(t, "https://img.test/p.jpg", record.Image)
	assert.Equal(t, "boAt", record.Brand)
	assert.Equal(t, "Electronics & Audio", record.Category)
}

func TestAIExtractorDeclinesOnErrorField(t *testing.T) {
	oracle := &stubOracle{replies: []string{`{"error":"extraction_failed"}`}}
	ai := NewAIExtractor(oracle, NewCategoryDetector())

	_, err := ai.Extract(context.Background(), "https://example.com/p/1", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "extraction_failed")
}

func TestAIExtractorDeclinesOnProseOnlyReply(t *testing.T) {
	oracle := &stubOracle{replies: []string{"I could not find any product on that page."}}
	ai := NewAIExtractor(oracle, NewCategoryDetector())

	_, err := ai.Extract(context.Background(), "https://example.com/p/1", "")

	require.Error(t, err)
}

// Numeric prices above a million must survive normalization intact; a float64
// rendered with %v would arrive as "1.234567e+06".
func TestAIExtractorKeepsLargeNumericPrices(t *testing.T) {
	oracle := &stubOracle{replies: []string{`{"name":"Luxury Watch","price":1234567}`}}
	ai := NewAIExtractor(oracle, NewCategoryDetector())

	record, err := ai.Extract(context.Background(), "https://example.com/p/watch", "")

	require.NoError(t, err)
	assert.Equal(t, 1234567.0, record.Price)
}

func TestPriceText(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"nil", nil, ""},
		{"string", "1,499", "1,499"},
		{"json number", json.Number("1234567"), "1234567"},
		{"float", float64(1234567), "1234567"},
		{"fractional float", 19.99, "19.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, priceText(tt.value))
		})
	}
}

func TestContentPromptTruncatesOnRuneBoundary(t *testing.T) {
	oracle := &stubOracle{}
	ai := NewAIExtractor(oracle, NewCategoryDetector())

	// Body longer than the excerpt limit, one ASCII byte followed by 3-byte
	// runes, so a byte-indexed cut at the limit would land mid-rune.
	body := "x" + strings.Repeat("₹", bodyExcerptLimit)
	html := "<html><body>" + body + "</body></html>"

	prompt := ai.buildContentPrompt("https://example.com/p/1", html)

	assert.True(t, utf8.ValidString(prompt))
}

func TestAIExtractorPromptCarriesPageSignals(t *testing.T) {
	oracle := &stubOracle{replies: []string{`{"name":"Widget","price":499}`}}
	ai := NewAIExtractor(oracle, NewCategoryDetector())

	html := `
		<html><head><title>Widget Shop</title>
		<meta name="description" content="The best widget.">
		<script type="application/ld+json">{"offers":{"price":"499"}}</script>
		</head><body>A widget for everyone.</body></html>
	`
	_, err := ai.Extract(context.Background(), "https://example.com/p/widget", html)

	require.NoError(t, err)
	require.Len(t, oracle.prompts, 1)
	prompt := oracle.prompts[0]
	assert.Contains(t, prompt, "Widget Shop")
	assert.Contains(t, prompt, "The best widget.")
	assert.Contains(t, prompt, "499.00 (from structured-data)")
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"surrounding prose", `Sure! {"a":1} Hope that helps.`, `{"a":1}`},
		{"nested braces", `{"a":{"b":2}}`, `{"a":{"b":2}}`},
		{"braces inside strings", `{"a":"{not a brace}"}`, `{"a":"{not a brace}"}`},
		{"no object", "nothing here", ""},
		{"unbalanced", `{"a":1`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSONObject(tt.reply))
		})
	}
}
