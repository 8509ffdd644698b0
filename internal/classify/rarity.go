// Package classify holds the pure heuristic classifiers that turn
// extracted text into catalog taxonomy values. Every classifier is an
// explicit ordered list of (predicate, result) pairs evaluated in fixed
// sequence; the first match wins. Table order is load-bearing and must
// not be replaced with an unordered map.
package classify

import (
	"strings"

	"github.com/spellforge/cardcrawl/internal/domain"
)

// rarityRule pairs a keyword with the rarity it implies.
type rarityRule struct {
	keyword string
	rarity  domain.Rarity
}

// rarityRules is evaluated top to bottom. Longer phrases come before
// their substrings ("очень редкий" before "редкий", "необычный" before
// "обычный", "uncommon" before "common") so containment cannot shadow
// the stronger match.
var rarityRules = []rarityRule{
	{"очень редкий", domain.RarityVeryRare},
	{"very rare", domain.RarityVeryRare},
	{"необычный", domain.RarityUncommon},
	{"uncommon", domain.RarityUncommon},
	{"легендарный", domain.RarityLegendary},
	{"legendary", domain.RarityLegendary},
	{"артефакт", domain.RarityArtifact},
	{"artifact", domain.RarityArtifact},
	{"редкий", domain.RarityRare},
	{"rare", domain.RarityRare},
	{"обычный", domain.RarityCommon},
	{"common", domain.RarityCommon},
}

// Rarity classifies free text into the rarity taxonomy. Absence of any
// keyword is treated as the lowest rarity - an explicit policy, not an
// inference; items without rarity markup import as common.
func Rarity(text string) domain.Rarity {
	lowered := strings.ToLower(text)

	for _, rule := range rarityRules {
		if strings.Contains(lowered, rule.keyword) {
			return rule.rarity
		}
	}

	return domain.RarityCommon
}
