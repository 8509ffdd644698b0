// Package domain defines the core types that flow through the import pipeline.
package domain

import "time"

// Rarity is the fixed rarity taxonomy used by the card catalog.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityVeryRare  Rarity = "very_rare"
	RarityLegendary Rarity = "legendary"
	RarityArtifact  Rarity = "artifact"
)

// IsValidRarity reports whether the rarity is one of the catalog values.
func IsValidRarity(r Rarity) bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityVeryRare, RarityLegendary, RarityArtifact:
		return true
	default:
		return false
	}
}

// EquipmentSlot is the equipment slot taxonomy used by the card catalog.
type EquipmentSlot string

const (
	SlotRing     EquipmentSlot = "ring"
	SlotNecklace EquipmentSlot = "necklace"
	SlotBody     EquipmentSlot = "body"
	SlotOneHand  EquipmentSlot = "one_hand"
	SlotTwoHands EquipmentSlot = "two_hands"
)

// DefaultItemType is assigned when no type keyword matches the item name.
// The source catalog is Russian, so the fallback category is localized.
const DefaultItemType = "чудесный предмет"

// SourceLink is a discovered URL believed to reference one catalog item.
// Identity is the normalized URL; links live only for the duration of a run.
type SourceLink struct {
	URL  string
	Page int
}

// RawDocument is the fetched text of a source page, handed from the
// fetcher to the extractor and discarded after extraction.
type RawDocument struct {
	URL       string
	Body      string
	FetchedAt time.Time
}

// Item is a normalized catalog record extracted from a source document.
// It accumulates classifier outputs as it moves through the pipeline;
// no other type is mutated after creation.
type Item struct {
	Name        string
	Description string
	Rarity      Rarity
	Price       *int
	Weight      *float64
	ItemType    string
	Slot        *EquipmentSlot
	Properties  []string
	Attunement  *string
	Source      string
}
