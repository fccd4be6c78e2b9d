package world

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Kingly77/VentureTextAdventure/internal/game/character"
	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
)

// Room represents a location in the game world.
//
// Invariant: when a self effect is set it is effects[0].
type Room struct {
	// ID uniquely identifies this room within the world.
	ID string
	// ZoneID identifies the zone this room belongs to.
	ZoneID string
	// Title is the short display name of the room.
	Title string
	// Locked rooms refuse entry through any exit.
	Locked bool
	// Exits lists all passages leading out of this room.
	Exits []Exit
	// Properties holds free-form tags from the zone file.
	Properties map[string]string

	description string
	items       *inventory.Inventory
	objects     []*Object
	npcs        []NPC
	effects     []Effect
	self        Effect
	logger      *zap.Logger
}

// NewRoom creates an unlocked room with no exits, items, or effects.
//
// Precondition: logger must be non-nil.
func NewRoom(id, title, description string, logger *zap.Logger) *Room {
	return &Room{
		ID:          id,
		Title:       title,
		Properties:  make(map[string]string),
		description: strings.TrimSpace(description),
		items:       inventory.New(),
		logger:      logger,
	}
}

// Key returns the lowercased room ID, used to match visit objectives.
func (r *Room) Key() string {
	return strings.ToLower(r.ID)
}

// BaseDescription returns the description before any effect modifies it.
func (r *Room) BaseDescription() string { return r.description }

// SetBaseDescription replaces the base description.
func (r *Room) SetBaseDescription(desc string) { r.description = strings.TrimSpace(desc) }

// Items returns the room's floor inventory.
func (r *Room) Items() *inventory.Inventory { return r.items }

// AddExit appends a one-way exit.
func (r *Room) AddExit(dir Direction, target string) {
	r.Exits = append(r.Exits, Exit{Direction: dir, TargetRoom: target})
}

// ExitForDirection returns the exit in the given direction, if one exists.
//
// Postcondition: Returns (exit, true) if found, or (Exit{}, false) otherwise.
func (r *Room) ExitForDirection(dir Direction) (Exit, bool) {
	for _, e := range r.Exits {
		if e.Direction == dir {
			return e, true
		}
	}
	return Exit{}, false
}

// VisibleExits returns all non-hidden exits from this room.
func (r *Room) VisibleExits() []Exit {
	var visible []Exit
	for _, e := range r.Exits {
		if !e.Hidden {
			visible = append(visible, e)
		}
	}
	return visible
}

// Unlock clears the locked flag and reports whether it was set.
func (r *Room) Unlock() bool {
	was := r.Locked
	r.Locked = false
	return was
}

// Lock sets the locked flag.
func (r *Room) Lock() { r.Locked = true }

// AddObject places a fixture in the room.
//
// Postcondition: Returns an error if an object with the same name is already present.
func (r *Room) AddObject(obj *Object) error {
	obj.Name = strings.ToLower(strings.TrimSpace(obj.Name))
	if _, ok := r.Object(obj.Name); ok {
		return fmt.Errorf("room %q: object %q already present", r.ID, obj.Name)
	}
	r.objects = append(r.objects, obj)
	return nil
}

// Object returns the fixture named name.
func (r *Room) Object(name string) (*Object, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, o := range r.objects {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// Objects returns the fixtures in insertion order.
func (r *Room) Objects() []*Object {
	return append([]*Object(nil), r.objects...)
}

// AddNPC records an NPC as present.
//
// Postcondition: Returns an error if an NPC with the same name is already present.
func (r *Room) AddNPC(npc NPC) error {
	if r.HasNPC(npc.Name) {
		return fmt.Errorf("room %q: NPC %q already present", r.ID, npc.Name)
	}
	r.npcs = append(r.npcs, npc)
	return nil
}

// HasNPC reports whether an NPC named name is present.
func (r *Room) HasNPC(name string) bool {
	for _, n := range r.npcs {
		if strings.EqualFold(n.Name, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// NPCs returns the NPCs present in insertion order.
func (r *Room) NPCs() []NPC {
	return append([]NPC(nil), r.npcs...)
}

// AddEffect appends e to the effect chain.
func (r *Room) AddEffect(e Effect) {
	r.effects = append(r.effects, e)
}

// SetSelfEffect installs e as the room's own behavior at the head of the chain,
// replacing any previous self effect.
//
// Postcondition: Effects()[0] == e.
func (r *Room) SetSelfEffect(e Effect) {
	if r.self != nil {
		r.RemoveEffect(r.self)
	}
	r.self = e
	r.effects = append([]Effect{e}, r.effects...)
}

// RemoveEffect removes e by identity and reports whether it was attached.
func (r *Room) RemoveEffect(e Effect) bool {
	for i, cur := range r.effects {
		if cur != e {
			continue
		}
		r.effects = append(r.effects[:i:i], r.effects[i+1:]...)
		if r.self == e {
			r.self = nil
		}
		return true
	}
	return false
}

// Effects returns a copy of the effect chain in dispatch order.
func (r *Room) Effects() []Effect {
	return append([]Effect(nil), r.effects...)
}

// guard runs fn and converts a panic into a logged warning attributed to e.
func (r *Room) guard(hook string, e Effect, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("room effect failed",
				zap.String("room", r.ID),
				zap.String("hook", hook),
				zap.String("effect", fmt.Sprintf("%T", e)),
				zap.Any("panic", rec),
			)
		}
	}()
	fn()
}

// claim asks each effect in order and returns the first claiming message.
func (r *Room) claim(hook string, ask func(Effect) (string, bool)) (string, bool) {
	for _, e := range r.Effects() {
		var (
			msg string
			ok  bool
		)
		r.guard(hook, e, func() { msg, ok = ask(e) })
		if ok {
			return msg, true
		}
	}
	return "", false
}

// ModifiedDescription folds every effect's ModifyDescription over the base description.
func (r *Room) ModifiedDescription() string {
	current := r.description
	for _, e := range r.Effects() {
		r.guard("modify_description", e, func() {
			if next, ok := e.ModifyDescription(current); ok {
				current = next
			}
		})
	}
	return current
}

// Description returns what the player sees: the effect-modified description
// followed by the items, fixtures, and people present.
func (r *Room) Description() string {
	var b strings.Builder
	b.WriteString(r.ModifiedDescription())

	if items := r.items.Items(); len(items) > 0 {
		names := make([]string, 0, len(items))
		for _, it := range items {
			names = append(names, it.String())
		}
		b.WriteString("\n\nYou see here: ")
		b.WriteString(strings.Join(names, ", "))
	}
	if len(r.objects) > 0 {
		b.WriteString("\n\nObjects in the room:")
		for _, o := range r.objects {
			fmt.Fprintf(&b, "\n%s: %s", o.Name, o.Description)
		}
	}
	if len(r.npcs) > 0 {
		b.WriteString("\n\nPeople here:")
		for _, n := range r.npcs {
			fmt.Fprintf(&b, "\n%s: %s", n.Name, n.ShortDescription)
		}
	}
	return b.String()
}

// Interact routes verb and target through the effect chain.
//
// Postcondition: Returns the first claiming effect's message, or ("", false)
// when no effect handles the interaction.
func (r *Room) Interact(verb, target string, hero *character.Hero, item *inventory.Item) (string, bool) {
	in := Interaction{
		Verb:   normalize(verb),
		Target: normalize(target),
		Hero:   hero,
		Item:   item,
		Room:   r,
	}
	return r.claim("handle_interaction", func(e Effect) (string, bool) {
		return e.HandleInteraction(in)
	})
}

// Take asks the effect chain whether it intercepts picking up itemName.
func (r *Room) Take(hero *character.Hero, itemName string) (string, bool) {
	itemName = normalize(itemName)
	return r.claim("handle_take", func(e Effect) (string, bool) {
		return e.HandleTake(hero, itemName)
	})
}

// Drop asks the effect chain whether it intercepts dropping itemName.
func (r *Room) Drop(hero *character.Hero, itemName string) (string, bool) {
	itemName = normalize(itemName)
	return r.claim("handle_drop", func(e Effect) (string, bool) {
		return e.HandleDrop(hero, itemName)
	})
}

// UseItem asks the effect chain whether it handles using itemName here.
func (r *Room) UseItem(verb, itemName string, hero *character.Hero) (string, bool) {
	verb, itemName = normalize(verb), normalize(itemName)
	return r.claim("handle_item_use", func(e Effect) (string, bool) {
		return e.HandleItemUse(verb, itemName, hero)
	})
}

// Enter runs every effect's HandleEnter and returns the claiming messages in order.
func (r *Room) Enter(hero *character.Hero) []string {
	var msgs []string
	for _, e := range r.Effects() {
		r.guard("handle_enter", e, func() {
			if msg, ok := e.HandleEnter(hero); ok && msg != "" {
				msgs = append(msgs, msg)
			}
		})
	}
	return msgs
}

// Help collects the help text of every effect that provides one.
func (r *Room) Help() []string {
	var out []string
	for _, e := range r.Effects() {
		if hp, ok := e.(HelpProvider); ok {
			r.guard("help", e, func() {
				if text := hp.Help(); text != "" {
					out = append(out, text)
				}
			})
		}
	}
	return out
}

// AddItem places an item stack on the floor.
func (r *Room) AddItem(item *inventory.Item) error {
	if err := r.items.Add(item); err != nil {
		return fmt.Errorf("room %q: %w", r.ID, err)
	}
	return nil
}

// RemoveItem takes quantity units of name off the floor and notifies every
// ItemRemovedObserver effect.
//
// Postcondition: On error the floor is unchanged and no effect is notified.
func (r *Room) RemoveItem(hero *character.Hero, name string, quantity int) (*inventory.Item, error) {
	removed, err := r.items.Remove(name, quantity)
	if err != nil {
		return nil, err
	}
	for _, e := range r.Effects() {
		if obs, ok := e.(ItemRemovedObserver); ok {
			r.guard("item_removed", e, func() { obs.ItemRemoved(hero, removed) })
		}
	}
	return removed, nil
}

func (r *Room) String() string {
	return fmt.Sprintf("Room: %s", r.Title)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
