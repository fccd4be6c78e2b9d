package effect

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Kingly77/VentureTextAdventure/internal/event"
	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
)

// LockedDoorOptions configures a LockedDoor.
type LockedDoorOptions struct {
	// Target is the ID of the room the door leads to. Required.
	Target              string `yaml:"target"`
	DoorName            string `yaml:"door_name"`
	LockedDescription   string `yaml:"locked_description"`
	UnlockedDescription string `yaml:"unlocked_description"`
	KeyName             string `yaml:"key_name"`
	// UnlockEvent, when set, is triggered on unlock so zone bindings and
	// puzzles elsewhere can react; the door also listens for it once.
	UnlockEvent string `yaml:"unlock_event"`
	AllowBash   *bool  `yaml:"allow_bash"`
}

// LockedDoor guards the way into a locked target room. The door opens with
// its key, by bashing it with a weapon, or when its unlock event fires.
type LockedDoor struct {
	world.BaseEffect
	door      *world.Object
	target    *world.Room
	keyName   string
	event     string
	allowBash bool
	locked    string
	unlocked  string
	bus       *event.Bus
	logger    *zap.Logger
}

// NewLockedDoor adds the door object to room and, when an unlock event is
// configured, subscribes a one-shot listener that refreshes the door text.
//
// Precondition: target, bus, and logger must be non-nil.
// Postcondition: Returns an error if room already holds an object of the door's name.
func NewLockedDoor(room, target *world.Room, opts LockedDoorOptions, bus *event.Bus, logger *zap.Logger) (*LockedDoor, error) {
	name := normalize(opts.DoorName)
	if name == "" {
		name = "door"
	}
	d := &LockedDoor{
		target:    target,
		keyName:   normalize(opts.KeyName),
		event:     opts.UnlockEvent,
		allowBash: boolOr(opts.AllowBash, true),
		locked:    opts.LockedDescription,
		unlocked:  opts.UnlockedDescription,
		bus:       bus,
		logger:    logger,
	}
	if d.locked == "" {
		d.locked = fmt.Sprintf("A sturdy wooden %s with a heavy lock. It doesn't budge.", name)
	}
	if d.unlocked == "" {
		d.unlocked = fmt.Sprintf("The %s stands open, leading onward.", name)
	}
	d.door = &world.Object{Name: name, Description: d.currentDescription()}
	if err := room.AddObject(d.door); err != nil {
		return nil, err
	}
	if d.event != "" {
		bus.SubscribeDescribed(d.event, fmt.Sprintf("refresh %s in %s", name, room.ID), func(...any) (any, error) {
			d.door.Description = d.unlocked
			return nil, nil
		}, true)
	}
	return d, nil
}

func newLockedDoorFromSpec(room *world.Room, params yaml.Node, deps Deps) (world.Effect, error) {
	var opts LockedDoorOptions
	if err := decodeParams(params, &opts); err != nil {
		return nil, err
	}
	if opts.Target == "" {
		return nil, fmt.Errorf("locked_door requires a target room")
	}
	target, ok := deps.World.GetRoom(opts.Target)
	if !ok {
		return nil, fmt.Errorf("locked_door target %q: unknown room", opts.Target)
	}
	return NewLockedDoor(room, target, opts, deps.Bus, deps.Logger)
}

func (d *LockedDoor) currentDescription() string {
	if d.target.Locked {
		return d.locked
	}
	return d.unlocked
}

// ModifyDescription leaves the room text alone but keeps the door object's
// text in step with the target room, which bindings may unlock elsewhere.
func (d *LockedDoor) ModifyDescription(string) (string, bool) {
	d.door.Description = d.currentDescription()
	return "", false
}

func (d *LockedDoor) HandleInteraction(in world.Interaction) (string, bool) {
	if in.Target != d.door.Name {
		return "", false
	}
	name := d.door.Name
	switch in.Verb {
	case "look", "examine", "inspect":
		return d.currentDescription(), true
	case "open", "enter":
		if d.target.Locked {
			return "It's locked.", true
		}
		return fmt.Sprintf("The %s is already open.", name), true
	case "use":
	default:
		return "", false
	}

	if in.Item == nil {
		return fmt.Sprintf("You try to use your hands on the %s, but that doesn't help.", name), true
	}
	if !d.target.Locked {
		return fmt.Sprintf("You push the %s; it's already unlocked and open.", name), true
	}
	switch {
	case d.keyName != "" && in.Item.Key() == d.keyName:
		return d.unlock(fmt.Sprintf("You unlock the %s with the %s. It clicks open.", name, in.Item.Name)), true
	case d.allowBash && in.Item.HasTag(inventory.TagWeapon):
		return d.unlock(fmt.Sprintf("You use your %s to bash the %s open! It swings wide with a heavy crash.", in.Item.Name, name)), true
	}
	return fmt.Sprintf("The %s doesn't budge.", name), true
}

// unlock announces the unlock event when anything listens for it, then
// unlocks the target directly if no listener did.
func (d *LockedDoor) unlock(msg string) string {
	msgs := []string{msg}
	if d.event != "" && d.bus.Has(d.event) {
		msgs = append(msgs, event.Messages(d.bus.Trigger(d.event))...)
	}
	if d.target.Unlock() {
		d.logger.Debug("door unlocked target directly", zap.String("room", d.target.ID))
	}
	d.door.Description = d.unlocked
	return strings.Join(msgs, "\n")
}

func (d *LockedDoor) Help() string {
	name := d.door.Name
	var b strings.Builder
	fmt.Fprintf(&b, "%s: use a key", strings.ToUpper(name[:1])+name[1:])
	if d.keyName != "" {
		fmt.Fprintf(&b, " with the '%s'", d.keyName)
	}
	if d.allowBash {
		b.WriteString(" or bash it with a weapon")
	}
	b.WriteString(".")
	if d.event != "" {
		b.WriteString(" (it may also unlock after solving a puzzle)")
	}
	fmt.Fprintf(&b, "\n  Try: look %[1]s, open %[1]s, use <item> on %[1]s", name)
	return b.String()
}
