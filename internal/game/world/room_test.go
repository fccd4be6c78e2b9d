package world_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/Kingly77/VentureTextAdventure/internal/event"
	"github.com/Kingly77/VentureTextAdventure/internal/game/character"
	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
)

// suffix appends its text to whatever description it receives.
type suffix struct {
	world.BaseEffect
	text string
}

func (s *suffix) ModifyDescription(current string) (string, bool) {
	return current + s.text, true
}

// claimer claims interactions whose verb matches, or none when verb is empty.
type claimer struct {
	world.BaseEffect
	verb  string
	reply string
	calls int
	seen  world.Interaction
}

func (c *claimer) HandleInteraction(in world.Interaction) (string, bool) {
	c.calls++
	c.seen = in
	if c.verb == "" || in.Verb != c.verb {
		return "", false
	}
	return c.reply, true
}

type panicky struct {
	world.BaseEffect
}

func (panicky) ModifyDescription(string) (string, bool) {
	panic("bad description")
}

func (panicky) HandleInteraction(world.Interaction) (string, bool) {
	panic("bad interaction")
}

type greeter struct {
	world.BaseEffect
	msg     string
	removed []string
}

func (g *greeter) HandleEnter(*character.Hero) (string, bool) {
	return g.msg, true
}

func (g *greeter) Help() string {
	return "greet: say hello"
}

func (g *greeter) ItemRemoved(_ *character.Hero, it *inventory.Item) {
	g.removed = append(g.removed, it.Name)
}

func newRoom(t testing.TB, desc string) *world.Room {
	t.Helper()
	return world.NewRoom("hall", "Hall", desc, zap.NewNop())
}

func newHero(t testing.TB) *character.Hero {
	t.Helper()
	h, err := character.NewHero("Ayla", 1, event.NewBus(zap.NewNop()), zap.NewNop())
	require.NoError(t, err)
	return h
}

func TestDescription_FoldsInOrder(t *testing.T) {
	r := newRoom(t, "X")
	lit := &suffix{text: " (lit)"}
	r.AddEffect(lit)
	r.AddEffect(&suffix{text: " (smoky)"})
	assert.Equal(t, "X (lit) (smoky)", r.Description())

	require.True(t, r.RemoveEffect(lit))
	assert.Equal(t, "X (smoky)", r.Description())
	assert.False(t, r.RemoveEffect(lit))
}

func TestDescription_NoChangeKeepsCurrent(t *testing.T) {
	r := newRoom(t, "Quiet")
	r.AddEffect(&claimer{})
	assert.Equal(t, "Quiet", r.Description())
}

func TestDescription_ListsItemsObjectsAndPeople(t *testing.T) {
	r := newRoom(t, "Hall")
	require.NoError(t, r.AddItem(&inventory.Item{Name: "coin", Quantity: 3}))
	require.NoError(t, r.AddObject(&world.Object{Name: "Table", Description: "A sturdy table."}))
	require.NoError(t, r.AddNPC(world.NPC{Name: "Mara", ShortDescription: "a healer"}))

	desc := r.Description()
	assert.Contains(t, desc, "You see here: coin x3")
	assert.Contains(t, desc, "Objects in the room:\ntable: A sturdy table.")
	assert.Contains(t, desc, "People here:\nMara: a healer")

	assert.Error(t, r.AddObject(&world.Object{Name: "table"}))
	assert.Error(t, r.AddNPC(world.NPC{Name: "mara"}))
}

func TestInteract_FirstClaimWins(t *testing.T) {
	e1 := &claimer{}
	e2 := &claimer{verb: "pull", reply: "claimed"}

	r := newRoom(t, "Hall")
	r.AddEffect(e1)
	r.AddEffect(e2)
	msg, ok := r.Interact("  PULL ", " Lever ", nil, nil)
	require.True(t, ok)
	assert.Equal(t, "claimed", msg)
	assert.Equal(t, 1, e1.calls)
	assert.Equal(t, "pull", e2.seen.Verb)
	assert.Equal(t, "lever", e2.seen.Target)
	assert.Same(t, r, e2.seen.Room)

	swapped := newRoom(t, "Hall")
	first := &claimer{verb: "pull", reply: "claimed"}
	never := &claimer{}
	swapped.AddEffect(first)
	swapped.AddEffect(never)
	msg, ok = swapped.Interact("pull", "lever", nil, nil)
	require.True(t, ok)
	assert.Equal(t, "claimed", msg)
	assert.Equal(t, 0, never.calls)
}

func TestInteract_Unclaimed(t *testing.T) {
	r := newRoom(t, "Hall")
	r.AddEffect(&claimer{})
	msg, ok := r.Interact("dance", "", nil, nil)
	assert.False(t, ok)
	assert.Empty(t, msg)
}

func TestEffectPanicsAreIsolated(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := world.NewRoom("hall", "Hall", "Base", zap.New(core))
	r.AddEffect(panicky{})
	r.AddEffect(&suffix{text: "!"})
	r.AddEffect(&claimer{verb: "wave", reply: "hi"})

	assert.Equal(t, "Base!", r.Description())
	msg, ok := r.Interact("wave", "", nil, nil)
	assert.True(t, ok)
	assert.Equal(t, "hi", msg)
	assert.Equal(t, 2, logs.FilterMessage("room effect failed").Len())
}

func TestSetSelfEffect_AlwaysFirst(t *testing.T) {
	r := newRoom(t, "Maze")
	other := &suffix{text: " [other]"}
	r.AddEffect(other)
	self := &suffix{text: " [self]"}
	r.SetSelfEffect(self)

	effects := r.Effects()
	require.Len(t, effects, 2)
	assert.Same(t, self, effects[0])
	assert.Equal(t, "Maze [self] [other]", r.Description())

	replacement := &suffix{text: " [new]"}
	r.SetSelfEffect(replacement)
	effects = r.Effects()
	require.Len(t, effects, 2)
	assert.Same(t, replacement, effects[0])
}

func TestEnterHelpAndItemRemoval(t *testing.T) {
	r := newRoom(t, "Hall")
	g := &greeter{msg: "Welcome!"}
	r.AddEffect(g)
	r.AddEffect(&suffix{})
	require.NoError(t, r.AddItem(&inventory.Item{Name: "coin", Quantity: 2}))
	h := newHero(t)

	assert.Equal(t, []string{"Welcome!"}, r.Enter(h))
	assert.Equal(t, []string{"greet: say hello"}, r.Help())

	_, err := r.RemoveItem(h, "coin", 5)
	assert.ErrorIs(t, err, inventory.ErrInsufficientQuantity)
	assert.Empty(t, g.removed)

	it, err := r.RemoveItem(h, "coin", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, it.Quantity)
	assert.Equal(t, []string{"coin"}, g.removed)
}

func TestTakeDropUse_DefaultUnclaimed(t *testing.T) {
	r := newRoom(t, "Hall")
	r.AddEffect(&suffix{})
	h := newHero(t)
	_, ok := r.Take(h, "coin")
	assert.False(t, ok)
	_, ok = r.Drop(h, "coin")
	assert.False(t, ok)
	_, ok = r.UseItem("use", "coin", h)
	assert.False(t, ok)
}

// TestDescription_Fold_Property checks the fold against a direct concatenation
// for arbitrary suffix chains.
func TestDescription_Fold_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.StringMatching(`[A-Za-z]{1,12}`).Draw(rt, "base")
		parts := rapid.SliceOfN(rapid.StringMatching(`[a-z ]{0,6}`), 0, 8).Draw(rt, "parts")

		r := world.NewRoom("r", "R", base, zap.NewNop())
		for _, p := range parts {
			r.AddEffect(&suffix{text: p})
		}
		assert.Equal(rt, base+strings.Join(parts, ""), r.ModifiedDescription())
		assert.Equal(rt, r.ModifiedDescription(), r.ModifiedDescription(), "dispatch must be deterministic")
	})
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, world.North, world.ParseDirection(" N "))
	assert.Equal(t, world.Down, world.ParseDirection("d"))
	assert.Equal(t, world.Direction("stairs"), world.ParseDirection("Stairs"))
	assert.Equal(t, world.South, world.North.Opposite())
	assert.Equal(t, world.Direction(""), world.Direction("portal").Opposite())
}
