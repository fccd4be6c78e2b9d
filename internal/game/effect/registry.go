// Package effect provides the concrete room effects and the registry that
// builds them from the effect specs declared in zone files.
package effect

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Kingly77/VentureTextAdventure/internal/event"
	"github.com/Kingly77/VentureTextAdventure/internal/game/dice"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
	"github.com/Kingly77/VentureTextAdventure/internal/scripting"
)

// Deps are the collaborators a Factory may wire into the effect it builds.
// Scripts may be nil when no zone declares scripted effects.
type Deps struct {
	Bus     *event.Bus
	Roller  *dice.Roller
	World   *world.Manager
	Scripts *scripting.Manager
	Logger  *zap.Logger
}

// Factory builds an effect for room from its YAML params. params has Kind 0
// when the zone file gave none.
type Factory func(room *world.Room, params yaml.Node, deps Deps) (world.Effect, error)

type entry struct {
	factory Factory
	self    bool
}

// Registry maps effect kinds to factories.
//
// Invariant: each kind is registered at most once; kinds are lowercase.
type Registry struct {
	entries map[string]entry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// DefaultRegistry returns a Registry holding every built-in effect kind.
//
// Postcondition: Kinds() lists aura, dark_cave, entry, locked_door, maze,
// npc_dialog, script, shop, smoke, torch_table, trap.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for kind, f := range map[string]Factory{
		"entry":       newEntryFromSpec,
		"trap":        newTrapFromSpec,
		"torch_table": newTorchFromSpec,
		"dark_cave":   newDarkCaveFromSpec,
		"locked_door": newLockedDoorFromSpec,
		"npc_dialog":  newNPCDialogFromSpec,
		"shop":        newShopFromSpec,
		"smoke":       newSmokeFromSpec,
		"script":      newScriptFromSpec,
	} {
		r.mustRegister(kind, f, false)
	}
	r.mustRegister("maze", newMazeFromSpec, true)
	r.mustRegister("aura", newAuraFromSpec, true)
	return r
}

// Register adds a factory for kind. Effects it builds are appended to the
// room's chain.
//
// Postcondition: returns error on an empty kind or a kind collision.
func (r *Registry) Register(kind string, f Factory) error {
	return r.register(kind, f, false)
}

// RegisterSelf adds a factory for kind whose effects are installed as the
// room's self effect at the head of the chain.
//
// Postcondition: returns error on an empty kind or a kind collision.
func (r *Registry) RegisterSelf(kind string, f Factory) error {
	return r.register(kind, f, true)
}

func (r *Registry) register(kind string, f Factory, self bool) error {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		return fmt.Errorf("effect.Registry: kind must not be empty")
	}
	if f == nil {
		return fmt.Errorf("effect.Registry: kind %q has nil factory", kind)
	}
	if _, exists := r.entries[kind]; exists {
		return fmt.Errorf("effect.Registry: kind %q already registered", kind)
	}
	r.entries[kind] = entry{factory: f, self: self}
	return nil
}

func (r *Registry) mustRegister(kind string, f Factory, self bool) {
	if err := r.register(kind, f, self); err != nil {
		panic(err)
	}
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	out := make([]string, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Build constructs the effect described by spec for room without attaching it.
//
// Postcondition: Returns the effect and whether it is a self effect, or an
// error for an unknown kind or invalid params.
func (r *Registry) Build(room *world.Room, spec world.EffectSpec, deps Deps) (world.Effect, bool, error) {
	kind := strings.ToLower(strings.TrimSpace(spec.Kind))
	e, ok := r.entries[kind]
	if !ok {
		return nil, false, fmt.Errorf("room %q: unknown effect kind %q", room.ID, spec.Kind)
	}
	eff, err := e.factory(room, spec.Params, deps)
	if err != nil {
		return nil, false, fmt.Errorf("room %q: building %s effect: %w", room.ID, kind, err)
	}
	return eff, e.self, nil
}

// Apply builds every effect declared by the zones in mgr and attaches it to
// its room, in zone order then room order then declaration order.
//
// Precondition: deps.Bus, deps.Roller, deps.Logger must be non-nil.
// Postcondition: Returns the number of effects attached, or the first error.
func (r *Registry) Apply(mgr *world.Manager, deps Deps) (int, error) {
	if deps.World == nil {
		deps.World = mgr
	}
	attached := 0
	for _, z := range mgr.AllZones() {
		for _, roomID := range z.RoomOrder {
			room := z.Rooms[roomID]
			for _, spec := range z.Effects[roomID] {
				eff, self, err := r.Build(room, spec, deps)
				if err != nil {
					return attached, fmt.Errorf("zone %q: %w", z.ID, err)
				}
				if self {
					room.SetSelfEffect(eff)
				} else {
					room.AddEffect(eff)
				}
				attached++
			}
		}
	}
	deps.Logger.Info("room effects attached", zap.Int("count", attached))
	return attached, nil
}

// decodeParams decodes params into out, leaving out untouched when the zone
// file gave no params. Keys out does not declare are rejected.
func decodeParams(params yaml.Node, out any) error {
	if params.Kind == 0 {
		return nil
	}
	raw, err := yaml.Marshal(&params)
	if err != nil {
		return fmt.Errorf("encoding params: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decoding params: %w", err)
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// boolOr returns *b, or def when b is nil.
func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
