package effect

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Kingly77/VentureTextAdventure/internal/event"
	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
)

const (
	defaultTableDescription = "A massive stone table dominates the area, with a small wooden chair peculiarly " +
		"placed on its surface. In the center of the table, a carefully constructed fire pit contains a neat " +
		"pile of firewood, ready to be lit."
	defaultLitTableDescription = "A massive stone table dominates the area, with a small wooden chair on its " +
		"surface. The fire pit in the center now blazes with dancing flames, casting flickering shadows " +
		"across the stone."
)

// TagLit marks a room object that has been set alight.
const TagLit = "lit"

// TorchTable places a table with an unlit fire pit in its room. Using a fire
// item on the table lights it and announces the configured event, which zone
// bindings use to open the way onward.
type TorchTable struct {
	world.BaseEffect
	table   *world.Object
	litDesc string
	event   string
	bus     *event.Bus
	room    *world.Room
}

// TorchTableOptions configures a TorchTable. Empty fields take defaults.
type TorchTableOptions struct {
	Object         string `yaml:"object"`
	Description    string `yaml:"description"`
	LitDescription string `yaml:"lit_description"`
	Event          string `yaml:"event"`
}

// NewTorchTable adds the table object to room.
//
// Postcondition: Returns an error if room already holds an object of the same name.
func NewTorchTable(room *world.Room, opts TorchTableOptions, bus *event.Bus) (*TorchTable, error) {
	if opts.Object == "" {
		opts.Object = "table"
	}
	if opts.Description == "" {
		opts.Description = defaultTableDescription
	}
	if opts.LitDescription == "" {
		opts.LitDescription = defaultLitTableDescription
	}
	if opts.Event == "" {
		opts.Event = event.TorchOnTable
	}
	table := &world.Object{Name: opts.Object, Description: opts.Description}
	if err := room.AddObject(table); err != nil {
		return nil, err
	}
	return &TorchTable{table: table, litDesc: opts.LitDescription, event: opts.Event, bus: bus, room: room}, nil
}

func newTorchFromSpec(room *world.Room, params yaml.Node, deps Deps) (world.Effect, error) {
	var opts TorchTableOptions
	if err := decodeParams(params, &opts); err != nil {
		return nil, err
	}
	return NewTorchTable(room, opts, deps.Bus)
}

// Lit reports whether the fire pit is burning.
func (t *TorchTable) Lit() bool { return t.table.HasTag(TagLit) }

func (t *TorchTable) HandleInteraction(in world.Interaction) (string, bool) {
	if in.Verb != "use" || in.Target != t.table.Name {
		return "", false
	}
	if t.Lit() {
		return "The fire pit is already blazing.", true
	}
	if in.Item == nil || !in.Item.HasTag(inventory.TagFire) {
		return fmt.Sprintf("You need a torch to properly light the %s's fire pit.", t.table.Name), true
	}

	t.table.Description = t.litDesc
	t.table.AddTag(TagLit)
	msgs := []string{"You touch your torch to the prepared wood. The kindling catches immediately, " +
		"and flames leap upward, illuminating the area with a warm, golden glow."}
	msgs = append(msgs, event.Messages(t.bus.Trigger(t.event, in.Hero, t.room))...)
	return strings.Join(msgs, "\n"), true
}

func (t *TorchTable) Help() string {
	return fmt.Sprintf("use <fire item> on %s: light the fire pit", t.table.Name)
}
