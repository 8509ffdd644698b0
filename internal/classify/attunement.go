package classify

import "strings"

// Attunement markers in the source catalog.
const (
	attunementMarker = "требуется настройка"
	attunementWord   = "настройка"
)

// Attunement returns the attunement requirement string when the page
// text carries the marker, or nil otherwise.
func Attunement(text string) *string {
	if strings.Contains(strings.ToLower(text), attunementMarker) {
		marker := attunementMarker
		return &marker
	}
	return nil
}

// Properties derives the property list from page text. The source
// catalog only marks attunement as a structured property.
func Properties(text string) []string {
	if strings.Contains(strings.ToLower(text), attunementWord) {
		return []string{attunementWord}
	}
	return nil
}
