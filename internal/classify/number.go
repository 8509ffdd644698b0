package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// Catalog pages render numbers with regular spaces, NBSP or thin space
// as separators; Go's \s is ASCII-only, so the Unicode spaces must be
// listed explicitly.
const (
	spaceClass = `[\s\x{00A0}\x{2009}]`
	sepClass   = `[\s\x{00A0}\x{2009},]`
)

// PricePatterns is the ordered pattern list for price extraction:
// label-prefixed first, then currency-suffixed Russian, then English.
var PricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)стоимость[:]?` + spaceClass + `*(\d+(?:` + sepClass + `\d+)*)`),
	regexp.MustCompile(`(?i)(\d+(?:` + sepClass + `\d+)*)` + spaceClass + `*зм`),
	regexp.MustCompile(`(?i)(\d+(?:` + sepClass + `\d+)*)` + spaceClass + `*gp`),
}

// WeightPatterns is the ordered pattern list for weight extraction.
var WeightPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)весит[:]?` + spaceClass + `*(\d+(?:[.,]\d+)?)` + spaceClass + `*(?:фунт|pound)`),
	regexp.MustCompile(`(?i)вес[:]?` + spaceClass + `*(\d+(?:[.,]\d+)?)`),
	regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)` + spaceClass + `*(?:фунт|lb|pound)`),
}

// ExtractInteger applies the patterns in order and returns the first
// capture that parses as an integer after separator normalization.
// Returns nil when no pattern matches. Sign/zero filtering is the
// uploader's concern, not this layer's.
func ExtractInteger(text string, patterns []*regexp.Regexp) *int {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		n, err := strconv.Atoi(normalizeInteger(m[1]))
		if err != nil {
			continue
		}
		return &n
	}
	return nil
}

// ExtractFloat applies the patterns in order and returns the first
// capture that parses as a float. Returns nil when no pattern matches.
func ExtractFloat(text string, patterns []*regexp.Regexp) *float64 {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		f, err := strconv.ParseFloat(normalizeDecimal(m[1]), 64)
		if err != nil {
			continue
		}
		return &f
	}
	return nil
}

// Price extracts an item price in gold pieces from free text.
func Price(text string) *int {
	return ExtractInteger(text, PricePatterns)
}

// Weight extracts an item weight in pounds from free text.
func Weight(text string) *float64 {
	return ExtractFloat(text, WeightPatterns)
}

// separators that may appear inside a captured number: regular space,
// NBSP and thin space.
var separators = []string{" ", "\u00a0", "\u2009"}

// normalizeInteger strips internal spaces and thousands separators
// ("1 500", "1 500" and "1,500" all become "1500").
func normalizeInteger(s string) string {
	for _, sep := range separators {
		s = strings.ReplaceAll(s, sep, "")
	}
	return strings.ReplaceAll(s, ",", "")
}

// normalizeDecimal strips spaces and turns a comma decimal separator
// into a dot ("0,5" becomes "0.5").
func normalizeDecimal(s string) string {
	for _, sep := range separators {
		s = strings.ReplaceAll(s, sep, "")
	}
	return strings.ReplaceAll(s, ",", ".")
}
