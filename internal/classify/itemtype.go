package classify

import (
	"strings"

	"github.com/spellforge/cardcrawl/internal/domain"
)

// typeRule maps a keyword set to an item category.
type typeRule struct {
	keywords []string
	result   string
}

// typeRules fixes the category priority: weapons before armor, armor
// before wands and staves, then accessories, then potions. The first
// rule whose keyword appears in the lower-cased name wins.
var typeRules = []typeRule{
	{[]string{"меч", "sword", "кинжал", "dagger", "топор", "axe", "булава", "mace"}, "оружие"},
	{[]string{"доспех", "armor", "кольчуга", "mail", "щит", "shield"}, "доспех"},
	{[]string{"палочка", "wand", "посох", "staff", "жезл", "rod"}, "волшебный предмет"},
	{[]string{"амулет", "amulet", "кольцо", "ring", "браслет", "bracelet"}, "аксессуар"},
	{[]string{"зелье", "potion", "эликсир", "elixir", "мазь", "ointment"}, "зелье"},
}

// slotRule maps a keyword set to an equipment slot.
type slotRule struct {
	keywords []string
	slot     domain.EquipmentSlot
}

// slotRules is evaluated in order; unlike item types, equipment slots
// have no default - a name matching nothing simply has no slot.
var slotRules = []slotRule{
	{[]string{"кольцо", "ring"}, domain.SlotRing},
	{[]string{"амулет", "amulet", "кулон", "pendant"}, domain.SlotNecklace},
	{[]string{"доспех", "armor", "кольчуга", "mail"}, domain.SlotBody},
	{[]string{"щит", "shield"}, domain.SlotOneHand},
	{[]string{"меч", "sword", "кинжал", "dagger"}, domain.SlotOneHand},
	{[]string{"посох", "staff", "палочка", "wand"}, domain.SlotTwoHands},
}

// ItemType classifies an item name into a free-form category string.
// Names matching no rule fall back to the wondrous-item category.
func ItemType(name string) string {
	lowered := strings.ToLower(name)

	for _, rule := range typeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.result
			}
		}
	}

	return domain.DefaultItemType
}

// Slot classifies an item name into an equipment slot, or nil when no
// keyword matches.
func Slot(name string) *domain.EquipmentSlot {
	lowered := strings.ToLower(name)

	for _, rule := range slotRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				slot := rule.slot
				return &slot
			}
		}
	}

	return nil
}
