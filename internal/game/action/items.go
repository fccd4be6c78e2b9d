package action

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Kingly77/VentureTextAdventure/internal/game/character"
	"github.com/Kingly77/VentureTextAdventure/internal/game/command"
	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
	"github.com/Kingly77/VentureTextAdventure/internal/game/session"
)

// splitQuantity peels a trailing count off "rusty nail 3". A zero count means
// the whole stack.
func splitQuantity(arg string) (string, int) {
	fields := strings.Fields(arg)
	if len(fields) < 2 {
		return strings.TrimSpace(arg), 0
	}
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return strings.TrimSpace(arg), 0
	}
	return strings.Join(fields[:len(fields)-1], " "), n
}

// itemError turns an inventory failure into a line for the player.
func (r *Resolver) itemError(err error, name string) Result {
	switch {
	case errors.Is(err, inventory.ErrInvalidQuantity):
		return say("That is not a valid quantity.")
	case errors.Is(err, inventory.ErrInsufficientQuantity):
		return say("There aren't that many of the %s.", name)
	case errors.Is(err, inventory.ErrItemNotFound):
		return say("There is no %s here.", name)
	default:
		r.logger.Warn("resolver: item operation failed", zap.String("item", name), zap.Error(err))
		return say("You can't do that with the %s.", name)
	}
}

// take moves an item from the floor to the hero. Effects are asked first.
//
// Postcondition: A successful take has announced item_collected and its
// quest messages follow the confirmation.
func (r *Resolver) take(s *session.Session, arg string) Result {
	name, qty := splitQuantity(arg)
	if name == "" {
		return say("Take what?")
	}
	name = strings.ToLower(name)
	room := s.Room()
	if msg, ok := room.Take(s.Hero, name); ok {
		return say("%s", msg)
	}
	held, ok := room.Items().Get(name)
	if !ok {
		return say("There is no %s here to take.", name)
	}
	if qty == 0 {
		qty = held.Quantity
	}
	taken, err := room.RemoveItem(s.Hero, name, qty)
	if err != nil {
		return r.itemError(err, name)
	}
	label, count := taken.Name, taken.Quantity
	progress, err := s.Hero.Collect(taken)
	if err != nil {
		if putBack := room.AddItem(taken); putBack != nil {
			r.logger.Error("resolver: item lost while taking", zap.String("item", label), zap.Error(putBack))
		}
		return r.itemError(err, name)
	}
	var res Result
	if count > 1 {
		res.add(fmt.Sprintf("You took the %s (x%d).", label, count))
	} else {
		res.add(fmt.Sprintf("You took the %s.", label))
	}
	res.add(progress...)
	return res
}

func (r *Resolver) drop(s *session.Session, arg string) Result {
	name, qty := splitQuantity(arg)
	if name == "" {
		return say("Drop what?")
	}
	name = strings.ToLower(name)
	room := s.Room()
	if msg, ok := room.Drop(s.Hero, name); ok {
		return say("%s", msg)
	}
	held, ok := s.Hero.Inventory().Get(name)
	if !ok {
		return say("You don't have a %s to drop.", name)
	}
	if qty == 0 {
		qty = held.Quantity
	}
	dropped, err := s.Hero.Inventory().Transfer(room.Items(), name, qty)
	if err != nil {
		return r.itemError(err, name)
	}
	return say("You dropped the %s with quantity %d in the %s.", dropped.Name, dropped.Quantity, room.Title)
}

// findItem looks in the hero's pack, then on the floor.
func findItem(s *session.Session, name string) (*inventory.Item, bool) {
	if it, ok := s.Hero.Inventory().Get(name); ok {
		return it, true
	}
	return s.Room().Items().Get(name)
}

// use handles "use X", "use X on self", "use X in room", and "use X on Y".
func (r *Resolver) use(s *session.Session, arg string) Result {
	u := command.ParseUse(arg, s.Hero.Name())
	if u.Item == "" {
		return say("Use what?")
	}
	room := s.Room()
	switch u.Kind {
	case command.TargetSelf:
		return r.useOnSelf(s, u.Item)
	case command.TargetRoom:
		if msg, ok := room.UseItem("use", u.Item, s.Hero); ok {
			return say("%s", msg)
		}
		if _, ok := findItem(s, u.Item); !ok {
			return say("You don't have a %s.", u.Item)
		}
		return say("You used the %s in the %s.", u.Item, room.Title)
	case command.TargetObject:
		it, ok := findItem(s, u.Item)
		if !ok {
			return say("You don't have a %s.", u.Item)
		}
		if msg, ok := room.Interact("use", u.Target, s.Hero, it); ok {
			return say("%s", msg)
		}
		return say("You used the %s on the %s.", u.Item, u.Target)
	default:
		if msg, ok := room.UseItem("use", u.Item, s.Hero); ok {
			return say("%s", msg)
		}
		return r.useOnSelf(s, u.Item)
	}
}

func (r *Resolver) useOnSelf(s *session.Session, name string) Result {
	if !s.Hero.Inventory().Has(name) {
		if s.Room().Items().Has(name) {
			return say("You must take the %s first before using it on yourself.", name)
		}
		return say("You don't have a %s.", name)
	}
	msg, err := s.Hero.UseItem(name, nil)
	switch {
	case errors.Is(err, character.ErrItemNotUsable):
		return say("The %s cannot be used on yourself. It may be used on a room instead.", name)
	case err != nil:
		return r.itemError(err, name)
	}
	return say("%s", msg)
}

// examine describes an item, then falls back to the room's effects and fixtures.
func (r *Resolver) examine(s *session.Session, arg string) Result {
	if arg == "" {
		return say("Examine what?")
	}
	name := strings.ToLower(arg)
	room := s.Room()
	if msg, ok := room.Interact("examine", name, s.Hero, nil); ok {
		return say("%s", msg)
	}
	if it, ok := findItem(s, name); ok {
		return say("%s", describeItem(it))
	}
	if obj, ok := room.Object(name); ok {
		return say("%s", obj.Description)
	}
	return say("You don't see any %s here.", name)
}

func describeItem(it *inventory.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You examine the %s:", it.Name)
	if it.Description != "" {
		fmt.Fprintf(&b, "\n  %s", it.Description)
	}
	fmt.Fprintf(&b, "\n  Quantity: %d", it.Quantity)
	fmt.Fprintf(&b, "\n  Value: %d gold", it.Cost)
	switch it.Effect {
	case inventory.EffectHeal:
		fmt.Fprintf(&b, "\n  Effect: Heals for %d", it.EffectValue)
	case inventory.EffectDamage:
		fmt.Fprintf(&b, "\n  Effect: Deals %d damage", it.EffectValue)
	}
	return b.String()
}

func inventoryReport(s *session.Session) Result {
	var b strings.Builder
	b.WriteString("You are carrying:")
	for _, it := range s.Hero.Inventory().Items() {
		fmt.Fprintf(&b, "\n  %s", it)
	}
	fmt.Fprintf(&b, "\nGold: %s", inventory.FormatGold(s.Hero.Wallet().Balance()))
	return say("%s", b.String())
}
