package character

import "github.com/Kingly77/VentureTextAdventure/internal/game/inventory"

// Spell is a mana-costed effect a hero can cast.
type Spell struct {
	Name   string
	Cost   int
	Effect inventory.EffectKind
	Value  int
}

// DefaultSpells returns the spellbook every hero starts with.
func DefaultSpells() []Spell {
	return []Spell{
		{Name: "fireball", Cost: 25, Effect: inventory.EffectDamage, Value: 25},
		{Name: "magic missile", Cost: 5, Effect: inventory.EffectDamage, Value: 5},
		{Name: "heal", Cost: 10, Effect: inventory.EffectHeal, Value: 20},
	}
}
