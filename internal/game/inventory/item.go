// Package inventory provides stackable items, name-keyed inventories, the item
// catalog loaded from world files, and the gold wallet.
package inventory

import (
	"errors"
	"fmt"
	"strings"
)

// EffectKind selects what using an item does to its target.
type EffectKind string

// Item effect kinds.
const (
	EffectNone   EffectKind = ""
	EffectHeal   EffectKind = "heal"
	EffectDamage EffectKind = "damage"
)

// validEffects is the set of valid item effect kinds.
var validEffects = map[EffectKind]bool{
	EffectNone:   true,
	EffectHeal:   true,
	EffectDamage: true,
}

// Common item tags consulted by room effects.
const (
	TagFire         = "fire"
	TagKey          = "key"
	TagWeapon       = "weapon"
	TagDisarm       = "disarm"
	TagWind         = "wind"
	TagFan          = "fan"
	TagWater        = "water"
	TagExtinguisher = "extinguisher"
	TagLightable    = "lightable"
)

// Item is a stack of identical items. Items are keyed by name in an Inventory;
// two items with the same name are the same kind of thing.
type Item struct {
	Name        string
	Description string
	// Cost is the shop price of a single unit in gold.
	Cost        int
	Usable      bool
	Effect      EffectKind
	EffectValue int
	// Consumable items lose one unit per use.
	Consumable bool
	Tags       []string
	Quantity   int
}

// Key returns the normalized lookup key for the item's name.
func (it *Item) Key() string {
	return NormalizeName(it.Name)
}

// HasTag reports whether the item carries tag (case-insensitive).
func (it *Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Split returns a copy of the item holding quantity units. The receiver is not modified.
//
// Precondition: quantity > 0.
func (it *Item) Split(quantity int) *Item {
	cp := *it
	cp.Tags = append([]string(nil), it.Tags...)
	cp.Quantity = quantity
	return &cp
}

// String returns "name xN".
func (it *Item) String() string {
	return fmt.Sprintf("%s x%d", it.Name, it.Quantity)
}

// Validate checks that the item satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (it *Item) Validate() error {
	var errs []error
	if strings.TrimSpace(it.Name) == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if it.Cost < 0 {
		errs = append(errs, errors.New("cost must be >= 0"))
	}
	if it.Quantity < 1 {
		errs = append(errs, errors.New("quantity must be >= 1"))
	}
	if !validEffects[it.Effect] {
		errs = append(errs, fmt.Errorf("effect must be one of heal, damage or empty; got %q", it.Effect))
	}
	if it.Effect != EffectNone && it.EffectValue < 0 {
		errs = append(errs, errors.New("effect_value must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q: %w", it.Name, errors.Join(errs...))
	}
	return nil
}

// NormalizeName lowercases and trims an item name for lookups.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
