package action_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Kingly77/VentureTextAdventure/internal/game/action"
	"github.com/Kingly77/VentureTextAdventure/internal/game/dice"
	"github.com/Kingly77/VentureTextAdventure/internal/game/session"
)

// contentWorld loads the shipped sample world.
func contentWorld(t *testing.T) *game {
	t.Helper()
	dir := filepath.Join("..", "..", "..", "content", "zones")
	logger := zaptest.NewLogger(t)
	s, err := session.Load(
		[]string{filepath.Join(dir, "village.yaml"), filepath.Join(dir, "caves.yaml")},
		session.Options{Source: dice.NewSequenceSource(14)},
		logger,
	)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return &game{s: s, r: action.NewResolver(s.Bus, nil, logger)}
}

func TestContent_Loads(t *testing.T) {
	g := contentWorld(t)
	assert.Equal(t, 2, g.s.World.ZoneCount())
	assert.Equal(t, 14, g.s.World.RoomCount())
	assert.Equal(t, "square", g.s.Room().ID)
	assert.Equal(t, "Hero", g.s.Hero.Name())
	assert.Equal(t, 20, g.s.Hero.Wallet().Balance())
	assert.True(t, g.s.Hero.Inventory().Has("bread"))
}

func TestContent_ChapelBell(t *testing.T) {
	g := contentWorld(t)
	g.do("west", "")
	assert.Equal(t, "DONG! The bell peals across the village. A crow bursts from the belfry.",
		g.say(t, "pull", "bell rope"))
	assert.Contains(t, g.say(t, "ring", "bell"), "The rope hangs slack.")
}

func TestContent_HearthOpensTheCaves(t *testing.T) {
	g := contentWorld(t)

	g.do("north", "")
	assert.Equal(t, "Greta sells you the torch for 5 gold.", g.say(t, "take", "torch"))
	assert.Equal(t, 15, g.s.Hero.Wallet().Balance())

	res := g.do("south", "")
	assert.Contains(t, res.Messages, "Pigeons scatter as you cross the square.")
	assert.Contains(t, res.Messages, "Greta calls after you: 'Mind the old gate. The key went down the cellar years ago.'")

	g.do("south", "")
	assert.Equal(t, "The door is locked.", g.say(t, "down", ""))

	lit := g.say(t, "use", "torch on table")
	assert.Contains(t, lit, "flames leap upward")
	assert.Contains(t, lit, "Somewhere beneath the hall, stone grinds against stone.")

	res = g.do("down", "")
	require.True(t, res.Moved)
	assert.Contains(t, res.Messages, "Cold air rises from below. Hero pulls their cloak tighter.")

	res = g.do("down", "")
	require.True(t, res.Moved)
	assert.Equal(t, "cave_mouth", g.s.Room().ID)
	assert.Contains(t, res.Messages, "Your footsteps echo into the dark.")
}
