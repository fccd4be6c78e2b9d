// Package character defines the hero: vitals, experience, gold, spells,
// inventory, and the quest log.
package character

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Kingly77/VentureTextAdventure/internal/event"
	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
	"github.com/Kingly77/VentureTextAdventure/internal/game/quest"
)

// Progression constants.
const (
	BaseXPToNextLevel = 100
	XPPerLevel        = 50
	BaseHealth        = 100
	HealthPerLevel    = 5
	BaseMana          = 100
	ManaPerLevel      = 2
)

var (
	// ErrSpellNotFound is returned when casting an unknown spell.
	ErrSpellNotFound = errors.New("spell not found")
	// ErrInsufficientMana is returned when a spell costs more mana than the hero has.
	ErrInsufficientMana = errors.New("insufficient mana")
	// ErrItemNotUsable is returned when using an item that has no use.
	ErrItemNotUsable = errors.New("item cannot be used")
	// ErrNoTarget is returned when an offensive action has no target.
	ErrNoTarget = errors.New("no target")
)

// Target is anything that can be healed or hurt by spells and items.
type Target interface {
	Name() string
	TakeDamage(amount int)
	Heal(amount int)
}

// Hero is the player character.
//
// Invariant: 0 <= Health() <= MaxHealth() and 0 <= Mana() <= MaxMana().
type Hero struct {
	name      string
	level     int
	xp        int
	health    int
	maxHealth int
	mana      int
	maxMana   int

	inv    *inventory.Inventory
	wallet *inventory.Wallet
	quests *quest.Log
	spells map[string]Spell

	bus    *event.Bus
	logger *zap.Logger
}

// NewHero creates a hero at level with full vitals, the default spellbook,
// and a pair of fists in the inventory.
//
// Precondition: bus and logger must be non-nil.
// Postcondition: Returns a Hero or an error if name is empty or level < 1.
func NewHero(name string, level int, bus *event.Bus, logger *zap.Logger) (*Hero, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("hero name must not be empty")
	}
	if level < 1 {
		return nil, fmt.Errorf("hero level must be >= 1, got %d", level)
	}
	h := &Hero{
		name:   name,
		level:  level,
		inv:    inventory.New(),
		wallet: inventory.NewWallet(0),
		quests: quest.NewLog(),
		spells: make(map[string]Spell),
		bus:    bus,
		logger: logger,
	}
	h.maxHealth = BaseHealth + (level-1)*HealthPerLevel
	h.health = h.maxHealth
	h.maxMana = BaseMana + (level-1)*ManaPerLevel
	h.mana = h.maxMana
	for _, s := range DefaultSpells() {
		h.spells[normalize(s.Name)] = s
	}
	if err := h.inv.Add(Fists()); err != nil {
		return nil, err
	}
	return h, nil
}

// Fists returns the unarmed weapon every hero starts with.
func Fists() *inventory.Item {
	return &inventory.Item{
		Name:        "fists",
		Usable:      true,
		Effect:      inventory.EffectDamage,
		EffectValue: 5,
		Tags:        []string{inventory.TagWeapon},
		Quantity:    1,
	}
}

func (h *Hero) Name() string                    { return h.name }
func (h *Hero) Level() int                      { return h.level }
func (h *Hero) XP() int                         { return h.xp }
func (h *Hero) Health() int                     { return h.health }
func (h *Hero) MaxHealth() int                  { return h.maxHealth }
func (h *Hero) Mana() int                       { return h.mana }
func (h *Hero) MaxMana() int                    { return h.maxMana }
func (h *Hero) Inventory() *inventory.Inventory { return h.inv }
func (h *Hero) Wallet() *inventory.Wallet       { return h.wallet }
func (h *Hero) QuestLog() *quest.Log            { return h.quests }

// Alive reports whether the hero has health left.
func (h *Hero) Alive() bool { return h.health > 0 }

// XPToNextLevel returns the experience needed to leave the current level.
func (h *Hero) XPToNextLevel() int {
	return BaseXPToNextLevel + h.level*XPPerLevel
}

// AddXP grants experience and applies every level-up it pays for.
//
// Precondition: amount >= 0; negative amounts are ignored.
// Postcondition: XP() < XPToNextLevel(); returns the number of levels gained.
func (h *Hero) AddXP(amount int) int {
	if amount <= 0 {
		return 0
	}
	h.xp += amount
	gained := 0
	for h.xp >= h.XPToNextLevel() {
		h.xp -= h.XPToNextLevel()
		h.level++
		gained++
		h.maxHealth = BaseHealth + (h.level-1)*HealthPerLevel
		h.maxMana = BaseMana + (h.level-1)*ManaPerLevel
	}
	if gained > 0 {
		h.logger.Info("hero leveled up", zap.String("hero", h.name), zap.Int("level", h.level))
	}
	return gained
}

// TakeDamage lowers health, stopping at zero.
func (h *Hero) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	h.health = max(0, h.health-amount)
}

// Heal raises health, stopping at the maximum.
func (h *Hero) Heal(amount int) {
	if amount <= 0 {
		return
	}
	h.health = min(h.maxHealth, h.health+amount)
}

// RestoreMana raises mana, stopping at the maximum.
func (h *Hero) RestoreMana(amount int) {
	if amount <= 0 {
		return
	}
	h.mana = min(h.maxMana, h.mana+amount)
}

// Spells returns the spellbook sorted by name.
func (h *Hero) Spells() []Spell {
	out := make([]Spell, 0, len(h.spells))
	for _, s := range h.spells {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CastSpell spends mana and applies the named spell to target; a nil target means the hero.
//
// Postcondition: On error no mana is spent.
func (h *Hero) CastSpell(name string, target Target) (string, error) {
	spell, ok := h.spells[normalize(name)]
	if !ok {
		return "", fmt.Errorf("casting %q: %w", name, ErrSpellNotFound)
	}
	if h.mana < spell.Cost {
		return "", fmt.Errorf("casting %s (costs %d, have %d): %w", spell.Name, spell.Cost, h.mana, ErrInsufficientMana)
	}
	if target == nil {
		if spell.Effect == inventory.EffectDamage {
			return "", fmt.Errorf("casting %s: %w", spell.Name, ErrNoTarget)
		}
		target = h
	}
	h.mana -= spell.Cost
	apply(spell.Effect, spell.Value, target)
	return fmt.Sprintf("%s casts %s on %s.", h.name, spell.Name, targetName(h, target)), nil
}

// UseItem applies a held item to target; a nil target means the hero.
// Consumable items lose one unit.
//
// Postcondition: Returns an error wrapping inventory.ErrItemNotFound or
// ErrItemNotUsable without changing state when the item cannot be used.
func (h *Hero) UseItem(itemName string, target Target) (string, error) {
	item, ok := h.inv.Get(itemName)
	if !ok {
		return "", &inventory.ItemNotFoundError{Name: itemName}
	}
	if !item.Usable || item.Effect == inventory.EffectNone {
		return "", fmt.Errorf("using %s: %w", item.Name, ErrItemNotUsable)
	}
	if target == nil {
		target = h
	}
	apply(item.Effect, item.EffectValue, target)
	if item.Consumable {
		if _, err := h.inv.Remove(item.Name, 1); err != nil {
			return "", fmt.Errorf("consuming %s: %w", item.Name, err)
		}
	}
	return fmt.Sprintf("%s used %s on %s.", h.name, item.Name, targetName(h, target)), nil
}

// Collect adds item to the inventory and announces it on the bus as
// item_collected(hero, item).
//
// Postcondition: Returns the string results of the announcement in handler order.
func (h *Hero) Collect(item *inventory.Item) ([]string, error) {
	if err := h.inv.Add(item); err != nil {
		return nil, fmt.Errorf("collecting %s: %w", item.Name, err)
	}
	return event.Messages(h.bus.Trigger(event.ItemCollected, h, item)), nil
}

func (h *Hero) String() string {
	return fmt.Sprintf("%s (Level %d, XP %d/%d, health %d/%d, mana %d/%d, %s)",
		h.name, h.level, h.xp, h.XPToNextLevel(), h.health, h.maxHealth, h.mana, h.maxMana,
		inventory.FormatGold(h.wallet.Balance()))
}

func apply(kind inventory.EffectKind, value int, target Target) {
	switch kind {
	case inventory.EffectHeal:
		target.Heal(value)
	case inventory.EffectDamage:
		target.TakeDamage(value)
	}
}

func targetName(h *Hero, target Target) string {
	if t, ok := target.(*Hero); ok && t == h {
		return "themself"
	}
	return target.Name()
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
