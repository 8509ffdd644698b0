package classify_test

import (
	"testing"

	"github.com/spellforge/cardcrawl/internal/classify"
	"github.com/spellforge/cardcrawl/internal/domain"
)

func TestRarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		expected domain.Rarity
	}{
		{"russian very rare", "Оружие (меч), очень редкий предмет", domain.RarityVeryRare},
		{"russian rare", "Чудесный предмет, редкий", domain.RarityRare},
		{"russian uncommon", "Чудесный предмет, необычный", domain.RarityUncommon},
		{"russian common", "Чудесный предмет, обычный", domain.RarityCommon},
		{"russian legendary", "Доспех, легендарный предмет", domain.RarityLegendary},
		{"russian artifact", "Чудесный предмет, артефакт", domain.RarityArtifact},
		{"english very rare", "Wondrous item, very rare", domain.RarityVeryRare},
		{"english uncommon", "Wondrous item, uncommon", domain.RarityUncommon},
		{"mixed case", "ОЧЕНЬ РЕДКИЙ предмет", domain.RarityVeryRare},
		{"no marker defaults to common", "Просто какой-то текст о предмете", domain.RarityCommon},
		{"empty text defaults to common", "", domain.RarityCommon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := classify.Rarity(tt.text)
			if got != tt.expected {
				t.Fatalf("Rarity(%q) = %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}

// "необычный" contains "обычный" and "very rare" contains "rare"; the
// longer phrase must win.
func TestRarity_ContainmentOrder(t *testing.T) {
	t.Parallel()

	if got := classify.Rarity("необычный"); got != domain.RarityUncommon {
		t.Fatalf("expected uncommon, got %q", got)
	}
	if got := classify.Rarity("очень редкий"); got != domain.RarityVeryRare {
		t.Fatalf("expected very_rare, got %q", got)
	}
	if got := classify.Rarity("this item is very rare indeed"); got != domain.RarityVeryRare {
		t.Fatalf("expected very_rare, got %q", got)
	}
	if got := classify.Rarity("uncommon"); got != domain.RarityUncommon {
		t.Fatalf("expected uncommon, got %q", got)
	}
}
