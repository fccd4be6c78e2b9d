package effect

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Kingly77/VentureTextAdventure/internal/game/character"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
	"github.com/Kingly77/VentureTextAdventure/internal/scripting"
)

// ScriptOptions configures a Script effect.
type ScriptOptions struct {
	// Prefix names the hook family, e.g. "well" for well_describe. Required.
	Prefix string `yaml:"prefix"`
	// Zone selects the VM. Defaults to the room's zone.
	Zone string `yaml:"zone"`
	// Source is inline Lua loaded into a VM private to this room.
	Source string `yaml:"source"`
	Limit  int    `yaml:"instruction_limit"`
}

// Script delegates every hook to Lua functions named <prefix>_<hook> in a
// sandboxed zone VM. A missing function or a non-string result leaves the
// action unclaimed. Hooks receive the room ID first:
//
//	<prefix>_describe(room, current)
//	<prefix>_enter(room, hero)
//	<prefix>_interact(room, verb, target, hero, item)
//	<prefix>_take(room, hero, item)
//	<prefix>_drop(room, hero, item)
//	<prefix>_use(room, verb, item, hero)
//	<prefix>_help(room)
type Script struct {
	world.BaseEffect
	prefix  string
	zone    string
	roomID  string
	scripts *scripting.Manager
}

// NewScript binds a Script for room to the VM keyed by zone.
//
// Precondition: scripts must be non-nil and prefix non-empty.
func NewScript(room *world.Room, zone, prefix string, scripts *scripting.Manager) *Script {
	if zone == "" {
		zone = room.ZoneID
	}
	return &Script{prefix: prefix, zone: zone, roomID: room.ID, scripts: scripts}
}

func newScriptFromSpec(room *world.Room, params yaml.Node, deps Deps) (world.Effect, error) {
	var opts ScriptOptions
	if err := decodeParams(params, &opts); err != nil {
		return nil, err
	}
	if opts.Prefix == "" {
		return nil, fmt.Errorf("script effect requires a prefix")
	}
	if deps.Scripts == nil {
		return nil, fmt.Errorf("script effect %q: scripting is not enabled", opts.Prefix)
	}
	if opts.Source != "" {
		opts.Zone = room.ZoneID + ":" + room.ID
		if err := deps.Scripts.LoadString(opts.Zone, opts.Source, opts.Limit); err != nil {
			return nil, fmt.Errorf("script effect %q: %w", opts.Prefix, err)
		}
	}
	return NewScript(room, opts.Zone, opts.Prefix, deps.Scripts), nil
}

func (s *Script) call(hook string, args ...string) (string, bool) {
	return s.scripts.CallString(s.zone, s.prefix+"_"+hook, append([]string{s.roomID}, args...)...)
}

func heroName(h *character.Hero) string {
	if h == nil {
		return ""
	}
	return h.Name()
}

func (s *Script) ModifyDescription(current string) (string, bool) {
	return s.call("describe", current)
}

func (s *Script) HandleEnter(h *character.Hero) (string, bool) {
	return s.call("enter", heroName(h))
}

func (s *Script) HandleInteraction(in world.Interaction) (string, bool) {
	item := ""
	if in.Item != nil {
		item = in.Item.Key()
	}
	return s.call("interact", in.Verb, in.Target, heroName(in.Hero), item)
}

func (s *Script) HandleTake(h *character.Hero, itemName string) (string, bool) {
	return s.call("take", heroName(h), itemName)
}

func (s *Script) HandleDrop(h *character.Hero, itemName string) (string, bool) {
	return s.call("drop", heroName(h), itemName)
}

func (s *Script) HandleItemUse(verb, itemName string, h *character.Hero) (string, bool) {
	return s.call("use", verb, itemName, heroName(h))
}

func (s *Script) Help() string {
	msg, _ := s.call("help")
	return msg
}
