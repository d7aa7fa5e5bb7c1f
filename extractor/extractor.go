// Package extractor turns an arbitrary e-commerce product URL into a
// structured product record without site-specific integrations. Acquisition
// and interpretation strategies are arranged in a cascade that degrades from
// fast and precise to slow and approximate: plain HTTP fetch through a
// headless browser render, then AI-assisted extraction, DOM heuristics, and
// finally URL-only AI extraction.
package extractor

import (
	"context"
	"fmt"
	"log"

	"wishfund/models"
)

// ErrPageUnreachable wraps the single fatal condition: no acquisition
// strategy could access the page at all.
var ErrPageUnreachable = fmt.Errorf("cannot access the webpage")

// Stage names for the extraction state machine.
const (
	stageAIWithHTML    = "AI_WITH_HTML"
	stageHTMLHeuristic = "HTML_HEURISTIC"
	stageAIOnly        = "AI_ONLY"
)

// ProductExtractor is the top-level extraction pipeline.
type ProductExtractor struct {
	fetcher  Fetcher
	ai       *AIExtractor
	detector *CategoryDetector
}

// New creates a pipeline around the given fetcher and oracle. The category
// rule table is built once here and is read-only afterwards, so a single
// ProductExtractor serves concurrent requests safely.
func New(fetcher Fetcher, oracle Oracle) *ProductExtractor {
	detector := NewCategoryDetector()
	return &ProductExtractor{
		fetcher:  fetcher,
		ai:       NewAIExtractor(oracle, detector),
		detector: detector,
	}
}

// stage is one state of the extraction state machine: a named attempt whose
// result is accepted or declined. A declined stage (error or sentinel-only
// record) hands control to the next stage.
type stage struct {
	name string
	note string
	run  func(ctx context.Context) (*models.ProductRecord, error)
}

// FetchProduct runs the full cascade for one URL and always returns a
// well-formed record, except for the single fatal condition: when every
// acquisition strategy fails, the call fails with ErrPageUnreachable and no
// further stage is attempted.
func (e *ProductExtractor) FetchProduct(ctx context.Context, link string) (*models.ProductRecord, error) {
	if link == "" {
		return nil, fmt.Errorf("link is required")
	}

	log.Printf("Fetching product from: %s", link)

	html, err := e.fetcher.FetchPage(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageUnreachable, err)
	}

	stages := []stage{
		{
			name: stageAIWithHTML,
			run: func(ctx context.Context) (*models.ProductRecord, error) {
				return e.ai.Extract(ctx, link, html)
			},
		},
		{
			name: stageHTMLHeuristic,
			note: "Extracted using HTML parsing fallback",
			run: func(ctx context.Context) (*models.ProductRecord, error) {
				return ExtractFromHTML(link, html, e.detector), nil
			},
		},
		{
			name: stageAIOnly,
			note: "Extracted using AI-only method - may be less accurate",
			run: func(ctx context.Context) (*models.ProductRecord, error) {
				return e.ai.Extract(ctx, link, "")
			},
		},
	}

	for _, s := range stages {
		record, err := s.run(ctx)
		if err != nil {
			log.Printf("%s declined: %v", s.name, err)
			continue
		}
		if !record.HasData() {
			log.Printf("%s produced no usable data", s.name)
			continue
		}
		if s.note != "" {
			record.Note = s.note
		}
		log.Printf("%s succeeded for %s", s.name, link)
		return record, nil
	}

	log.Printf("All extraction strategies exhausted for %s", link)
	return &models.ProductRecord{
		Name:     models.NameNotAvailable,
		Category: DefaultCategory,
		Error:    "Could not extract complete product information",
		URL:      link,
	}, nil
}
