package world

import (
	"github.com/Kingly77/VentureTextAdventure/internal/game/character"
	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
)

// Interaction is a verb aimed at a target inside a room. Verb and Target are
// lowercased and trimmed before any effect sees them.
type Interaction struct {
	Verb   string
	Target string
	Hero   *character.Hero
	// Item is the item being used, nil for bare verbs.
	Item *inventory.Item
	Room *Room
}

// Effect is a room behavior. Description hooks fold: each effect sees the
// text produced by the effects before it. Action hooks short-circuit: the
// first effect to return true claims the action and its message is the outcome.
//
// Every hook must return ("", false) for actions that are not its own.
type Effect interface {
	// ModifyDescription returns a replacement description, or false to keep current.
	ModifyDescription(current string) (string, bool)
	HandleTake(hero *character.Hero, itemName string) (string, bool)
	HandleDrop(hero *character.Hero, itemName string) (string, bool)
	HandleItemUse(verb, itemName string, hero *character.Hero) (string, bool)
	// HandleEnter runs after the hero arrives. Every claiming effect contributes a message.
	HandleEnter(hero *character.Hero) (string, bool)
	HandleInteraction(in Interaction) (string, bool)
}

// HelpProvider is implemented by effects that describe their own verbs.
type HelpProvider interface {
	Help() string
}

// ItemRemovedObserver is implemented by effects that react to an item leaving the room.
type ItemRemovedObserver interface {
	ItemRemoved(hero *character.Hero, item *inventory.Item)
}

// BaseEffect supplies the neutral default for every Effect hook. Embed it and
// override only the hooks an effect cares about.
type BaseEffect struct{}

func (BaseEffect) ModifyDescription(string) (string, bool) {
	return "", false
}

func (BaseEffect) HandleTake(*character.Hero, string) (string, bool) {
	return "", false
}

func (BaseEffect) HandleDrop(*character.Hero, string) (string, bool) {
	return "", false
}

func (BaseEffect) HandleItemUse(string, string, *character.Hero) (string, bool) {
	return "", false
}

func (BaseEffect) HandleEnter(*character.Hero) (string, bool) {
	return "", false
}

func (BaseEffect) HandleInteraction(Interaction) (string, bool) {
	return "", false
}
