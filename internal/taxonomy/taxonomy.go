// Package taxonomy loads the static weapon reference table and matches
// card names against it. The table is read once at startup and is
// immutable for the run; match order follows table order exactly, so
// the file's entry order is semantically load-bearing.
package taxonomy

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyTable is returned when the reference file holds no categories.
var ErrEmptyTable = errors.New("weapon taxonomy table is empty")

// Category is the weapon category enum: training tier × range.
type Category string

const (
	SimpleMelee   Category = "simple_melee"
	SimpleRanged  Category = "simple_ranged"
	MartialMelee  Category = "martial_melee"
	MartialRanged Category = "martial_ranged"
)

// Entry is one canonical weapon type.
type Entry struct {
	// Name is the canonical identifier stored on cards.
	Name string `json:"name"`
	// RussianName is the localized display name matched against card names.
	RussianName string `json:"russian_name"`
	DamageType  string `json:"damage_type"`
	// Damage is the damage dice expression, e.g. "1d8".
	Damage     string   `json:"damage"`
	Weight     float64  `json:"weight"`
	Price      int      `json:"price"`
	Properties []string `json:"properties"`
}

// CategoryGroup is one taxonomy category with its entries in file order.
type CategoryGroup struct {
	Category Category `json:"category"`
	Weapons  []Entry  `json:"weapons"`
}

// Table is the full weapon taxonomy.
type Table struct {
	Basic []CategoryGroup `json:"basic"`
}

// Load reads and parses the taxonomy reference file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse taxonomy file: %w", err)
	}

	if len(table.Basic) == 0 {
		return nil, ErrEmptyTable
	}

	return &table, nil
}

// Match returns the first entry, in table order, whose localized name
// is a substring of the normalized card name, or nil when no entry
// matches. The result is deterministic across runs for any input.
func (t *Table) Match(cardName string) *Entry {
	normalized := strings.ToLower(strings.TrimSpace(cardName))
	if normalized == "" {
		return nil
	}

	for gi := range t.Basic {
		for wi := range t.Basic[gi].Weapons {
			entry := &t.Basic[gi].Weapons[wi]
			if strings.Contains(normalized, strings.ToLower(entry.RussianName)) {
				return entry
			}
		}
	}

	return nil
}

// Entries returns the total number of weapon entries in the table.
func (t *Table) Entries() int {
	n := 0
	for _, g := range t.Basic {
		n += len(g.Weapons)
	}
	return n
}
