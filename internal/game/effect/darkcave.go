package effect

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Kingly77/VentureTextAdventure/internal/game/character"
	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
)

// DarkCaveOptions configures a DarkCave. Empty fields take defaults.
type DarkCaveOptions struct {
	LightItem       string `yaml:"light_item"`
	LitDescription  string `yaml:"lit_description"`
	DarkDescription string `yaml:"dark_description"`
}

// DarkCave makes its room's description depend on light. Using the light item
// lights the cave; removing that item from the room puts the light out. While
// unlit, the base description shows only if the light item lies in the room.
type DarkCave struct {
	world.BaseEffect
	opts DarkCaveOptions
	lit  bool
	room *world.Room
}

// NewDarkCave returns an unlit DarkCave for room.
func NewDarkCave(room *world.Room, opts DarkCaveOptions) *DarkCave {
	if opts.LightItem == "" {
		opts.LightItem = "torch"
	}
	opts.LightItem = normalize(opts.LightItem)
	if opts.LitDescription == "" {
		opts.LitDescription = "The air is still cold, but the flickering light of the torch reveals a tiny, " +
			"dusty area around you. Shadows dance at the edges of your vision."
	}
	if opts.DarkDescription == "" {
		opts.DarkDescription = "The cave entrance is now pitch black. You can barely see your hand in front of your face."
	}
	return &DarkCave{opts: opts, room: room}
}

func newDarkCaveFromSpec(room *world.Room, params yaml.Node, _ Deps) (world.Effect, error) {
	var opts DarkCaveOptions
	if err := decodeParams(params, &opts); err != nil {
		return nil, err
	}
	return NewDarkCave(room, opts), nil
}

// Lit reports whether the cave is lit.
func (d *DarkCave) Lit() bool { return d.lit }

func (d *DarkCave) ModifyDescription(string) (string, bool) {
	switch {
	case d.lit:
		return d.opts.LitDescription, true
	case !d.room.Items().Has(d.opts.LightItem):
		return d.opts.DarkDescription, true
	}
	return "", false
}

func (d *DarkCave) HandleItemUse(verb, itemName string, h *character.Hero) (string, bool) {
	if verb != "use" || !d.isLight(itemName, h) {
		return "", false
	}
	d.lit = true
	return fmt.Sprintf("You light the %s, illuminating a tiny area around you.", itemName), true
}

// isLight reports whether itemName is the light item or a lightable item the
// hero holds or can reach on the floor.
func (d *DarkCave) isLight(itemName string, h *character.Hero) bool {
	it, ok := d.room.Items().Get(itemName)
	if !ok && h != nil {
		it, ok = h.Inventory().Get(itemName)
	}
	if !ok {
		return false
	}
	return it.Key() == d.opts.LightItem || it.HasTag(inventory.TagLightable)
}

func (d *DarkCave) ItemRemoved(_ *character.Hero, it *inventory.Item) {
	if it.Key() == d.opts.LightItem || it.HasTag(inventory.TagLightable) {
		d.lit = false
	}
}

func (d *DarkCave) Help() string {
	return fmt.Sprintf("use %s: light up the darkness", d.opts.LightItem)
}
