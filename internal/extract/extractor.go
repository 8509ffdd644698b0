// Package extract pulls semantic fields out of loosely structured
// catalog markup. Every field uses an ordered fallback chain of
// structural patterns; the first non-empty result wins. Extraction is
// pure with respect to the network and independently unit-testable.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/spellforge/cardcrawl/internal/domain"
)

// ErrMissingName is returned when no heading pattern yields an item name.
// Documents without a name are dropped before classification.
var ErrMissingName = errors.New("no item name found in document")

// descriptionFallbackRunes bounds the main-content fallback description.
const descriptionFallbackRunes = 500

// nameSelectors is the ordered heading chain for name extraction.
// The source catalog titles items in <h1> on detail pages and in
// <h2>Name [source]</h2> on some layouts; <title> is the last resort.
var nameSelectors = []string{"h1", "h2", "title"}

// nonContentSelectors lists elements stripped before text extraction.
const nonContentSelectors = "script, style, nav, header, footer"

// headingBoundary ends the description region.
const headingBoundary = "h1, h2, h3"

var whitespaceRe = regexp.MustCompile(`\s+`)

// Fields are the raw text regions handed to the classifiers.
type Fields struct {
	Name        string
	Description string
	// Text is the full visible page text, used by keyword classifiers.
	Text string
}

// Extractor extracts fields from fetched documents.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the document and applies the field fallback chains.
func (e *Extractor) Extract(doc *domain.RawDocument) (*Fields, error) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	name := extractName(gq)
	if name == "" {
		return nil, ErrMissingName
	}

	return &Fields{
		Name:        name,
		Description: extractDescription(gq),
		Text:        extractText(gq),
	}, nil
}

// extractName tries each heading selector in order and returns the
// first non-empty, cleaned match.
func extractName(doc *goquery.Document) string {
	for _, sel := range nameSelectors {
		raw := doc.Find(sel).First().Text()
		if name := cleanText(stripBracketSuffix(raw)); name != "" {
			return name
		}
	}
	return ""
}

// extractDescription returns the text between the name heading and the
// next heading boundary. When that region is empty it falls back to the
// first descriptionFallbackRunes characters of the main content.
func extractDescription(doc *goquery.Document) string {
	heading := doc.Find("h1, h2").First()
	if heading.Length() > 0 {
		if desc := cleanText(heading.NextUntil(headingBoundary).Text()); desc != "" {
			return desc
		}
	}

	main := doc.Find("main").First()
	if main.Length() == 0 {
		main = doc.Find("body").First()
	}
	if main.Length() == 0 {
		return ""
	}

	main.Find(nonContentSelectors).Remove()

	text := []rune(cleanText(main.Text()))
	if len(text) > descriptionFallbackRunes {
		text = text[:descriptionFallbackRunes]
	}
	return strings.TrimSpace(string(text))
}

// extractText returns the full visible page text with non-content
// elements stripped.
func extractText(doc *goquery.Document) string {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return cleanText(doc.Text())
	}

	body.Find(nonContentSelectors).Remove()
	return cleanText(body.Text())
}

// stripBracketSuffix cuts a trailing "[source]" marker from a heading.
func stripBracketSuffix(s string) string {
	if idx := strings.Index(s, "["); idx >= 0 {
		return s[:idx]
	}
	return s
}

// cleanText collapses runs of whitespace and trims the result.
func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
