// Package world provides the game world model: zones, rooms, exits, room
// objects, and the per-room effect chain.
package world

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
)

// Direction represents a compass direction or named exit.
type Direction string

// Standard compass directions and vertical movements.
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
	Up    Direction = "up"
	Down  Direction = "down"
)

// directionAliases maps single-letter shorthands to directions.
var directionAliases = map[string]Direction{
	"n": North,
	"s": South,
	"e": East,
	"w": West,
	"u": Up,
	"d": Down,
}

// ParseDirection normalizes user input into a Direction, expanding shorthands.
// Named exits ("stairs", "portal") pass through lowercased.
func ParseDirection(s string) Direction {
	s = strings.ToLower(strings.TrimSpace(s))
	if d, ok := directionAliases[s]; ok {
		return d
	}
	return Direction(s)
}

// Opposite returns the opposite of a standard direction.
// For named exits it returns an empty string.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Up:
		return Down
	case Down:
		return Up
	default:
		return ""
	}
}

// Exit represents a passage from one room to another. Passage is refused
// while the target room is locked.
type Exit struct {
	Direction  Direction
	TargetRoom string
	// Hidden exits are usable but not listed.
	Hidden bool
	// Zone names the target's zone when it lies outside the exit's own zone.
	Zone string
}

// Object is a fixture in a room such as a door or a table. Effects change an
// object's description and tags as the player interacts with it.
type Object struct {
	Name        string
	Description string
	Tags        []string
}

// HasTag reports whether the object carries tag.
func (o *Object) HasTag(tag string) bool {
	for _, t := range o.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// AddTag adds tag if absent.
func (o *Object) AddTag(tag string) {
	if !o.HasTag(tag) {
		o.Tags = append(o.Tags, tag)
	}
}

// NPC is a character present in a room.
type NPC struct {
	Name             string
	ShortDescription string
}

// EffectSpec is the declarative form of a room effect as written in a zone
// file. Params is decoded by the factory registered for Kind.
type EffectSpec struct {
	Kind   string
	Params yaml.Node
}

// BindingAction is what an event binding does to its room.
type BindingAction string

// Binding actions.
const (
	ActionUnlock BindingAction = "unlock"
	ActionLock   BindingAction = "lock"
)

// EventBinding wires a bus event to a room state change.
type EventBinding struct {
	Event   string
	Room    string
	Action  BindingAction
	OneTime bool
	Message string
}

// HeroConfig is the starting hero declared by a zone file.
type HeroConfig struct {
	Name  string
	Level int
	Gold  int
	Items []ItemRef
}

// ItemRef names a catalog item and a quantity.
type ItemRef struct {
	Name     string
	Quantity int
}

// Zone groups related rooms into a themed area.
type Zone struct {
	// ID uniquely identifies this zone.
	ID string
	// Name is the display name of the zone.
	Name string
	// Description summarizes the zone's theme.
	Description string
	// StartRoom is the ID of the default entry room.
	StartRoom string
	// Rooms contains all rooms in this zone, keyed by room ID.
	Rooms map[string]*Room
	// RoomOrder lists room IDs in file order.
	RoomOrder []string
	// Catalog holds the zone's item templates.
	Catalog *inventory.Catalog
	// Effects holds the declared effects per room ID, in declaration order.
	Effects map[string][]EffectSpec
	// Bindings lists event-to-room wiring.
	Bindings []EventBinding
	// Hero is the starting hero, if declared.
	Hero HeroConfig
	// ScriptDir is the path to Lua scripts for this zone. Empty = no scripts.
	ScriptDir string
	// ScriptInstructionLimit overrides the default instruction limit for this zone's VM.
	ScriptInstructionLimit int
}

// Validate checks zone invariants.
//
// Postcondition: Returns nil if valid, or an error describing the first violation.
func (z *Zone) Validate() error {
	if z.ID == "" {
		return fmt.Errorf("zone ID must not be empty")
	}
	if z.Name == "" {
		return fmt.Errorf("zone %q: name must not be empty", z.ID)
	}
	if len(z.Rooms) == 0 {
		return fmt.Errorf("zone %q: must contain at least one room", z.ID)
	}
	if _, ok := z.Rooms[z.StartRoom]; !ok {
		return fmt.Errorf("zone %q: start_room %q not found in rooms", z.ID, z.StartRoom)
	}
	for id, room := range z.Rooms {
		if room.ID != id {
			return fmt.Errorf("zone %q: room key %q does not match room ID %q", z.ID, id, room.ID)
		}
		if room.Title == "" {
			return fmt.Errorf("zone %q: room %q: title must not be empty", z.ID, id)
		}
		if room.BaseDescription() == "" {
			return fmt.Errorf("zone %q: room %q: description must not be empty", z.ID, id)
		}
		for _, exit := range room.Exits {
			if exit.Zone != "" && exit.Zone != z.ID {
				continue
			}
			if _, ok := z.Rooms[exit.TargetRoom]; !ok {
				return fmt.Errorf("zone %q: room %q: exit %q targets unknown room %q", z.ID, id, exit.Direction, exit.TargetRoom)
			}
		}
	}
	for id := range z.Effects {
		if _, ok := z.Rooms[id]; !ok {
			return fmt.Errorf("zone %q: effects declared for unknown room %q", z.ID, id)
		}
	}
	for _, b := range z.Bindings {
		if b.Event == "" {
			return fmt.Errorf("zone %q: event binding for room %q has no event", z.ID, b.Room)
		}
		if _, ok := z.Rooms[b.Room]; !ok {
			return fmt.Errorf("zone %q: event %q binds unknown room %q", z.ID, b.Event, b.Room)
		}
		if b.Action != ActionUnlock && b.Action != ActionLock {
			return fmt.Errorf("zone %q: event %q: action must be one of [unlock, lock], got %q", z.ID, b.Event, b.Action)
		}
	}
	return nil
}
