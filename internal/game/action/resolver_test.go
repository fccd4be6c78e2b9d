package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Kingly77/VentureTextAdventure/internal/event"
	"github.com/Kingly77/VentureTextAdventure/internal/game/action"
	"github.com/Kingly77/VentureTextAdventure/internal/game/dice"
	"github.com/Kingly77/VentureTextAdventure/internal/game/session"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
)

const valeYAML = `
zone:
  id: vale
  name: Vale
  start_room: yard
  items:
    - name: potion
      description: A red tonic.
      cost: 10
      usable: true
      effect: heal
      effect_value: 20
      consumable: true
    - name: flower
      cost: 1
    - name: iron key
      tags: [key]
    - name: rock
  hero:
    name: Ayla
    items:
      - name: potion
  rooms:
    - id: yard
      title: Yard
      description: A muddy yard.
      items:
        - name: flower
          quantity: 2
        - name: iron key
        - name: rock
      objects:
        - name: well
          description: A mossy well.
      exits:
        - direction: north
          target: hall
          back: south
        - direction: east
          target: vault
          back: west
      effects:
        - kind: locked_door
          params:
            target: vault
            key_name: iron key
        - kind: npc_dialog
          params:
            npc_name: Mara
            greeting: Mara waves.
            quest:
              name: Gather Flowers
              description: Bring two flowers.
              reward: 50
              objective:
                type: collect
                target: flower
                required: 2
    - id: hall
      title: Hall
      description: A long hall.
      effects:
        - kind: trap
          params:
            damage: 2d4
            message: A plate clicks.
    - id: vault
      title: Vault
      description: Gold glitters.
      locked: true
`

type game struct {
	s    *session.Session
	r    *action.Resolver
	logs *observer.ObservedLogs
}

// newGame loads the vale with dice that replay rolls.
func newGame(t *testing.T, rolls ...int) *game {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	z, err := world.LoadZoneFromBytes([]byte(valeYAML), logger)
	require.NoError(t, err)
	s, err := session.New([]*world.Zone{z}, session.Options{Source: dice.NewSequenceSource(rolls...)}, logger)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return &game{s: s, r: action.NewResolver(s.Bus, nil, logger), logs: logs}
}

func (g *game) do(verb, arg string) action.Result {
	return g.r.Resolve(g.s, action.Request{Verb: verb, Arg: arg})
}

// say resolves a request expected to produce exactly one message.
func (g *game) say(t *testing.T, verb, arg string) string {
	t.Helper()
	res := g.do(verb, arg)
	require.Len(t, res.Messages, 1, "%s %s: %v", verb, arg, res.Messages)
	return res.Messages[0]
}

func TestResolve_LookAndExits(t *testing.T) {
	g := newGame(t)
	res := g.do("look", "")
	assert.Empty(t, res.Messages)
	require.NotNil(t, res.View)
	assert.Equal(t, "Yard", res.View.Title)
	assert.Equal(t, []string{"north", "east"}, res.View.Exits)
	assert.Contains(t, res.View.Description, "A muddy yard.")
	assert.Contains(t, res.View.Description, "You see here: flower x2, iron key x1, rock x1")
	assert.Contains(t, res.View.String(), "--- You are in the Yard ---\n")
	assert.Contains(t, res.View.String(), "\n\nExits: north, east")

	assert.Equal(t, "Exits: north, east", g.say(t, "exits", ""))
	assert.Equal(t, "A mossy well.", g.say(t, "l", "well"))
	assert.Equal(t, "A red tonic.", g.say(t, "look", "potion"))
	assert.Equal(t, "You don't see any moon here.", g.say(t, "look", "moon"))
}

func TestResolve_Movement(t *testing.T) {
	g := newGame(t)

	res := g.do("go", "north")
	assert.True(t, res.Moved)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, "You go north.", res.Messages[0])
	assert.Contains(t, res.Messages[1], "A plate clicks. The trap is armed.")
	require.NotNil(t, res.View)
	assert.Equal(t, "Hall", res.View.Title)
	assert.Contains(t, res.View.Description, "You see a trap mechanism here.")

	assert.Equal(t, "You can't go that way.", g.say(t, "w", ""))
	assert.Equal(t, "Go where?", g.say(t, "go", ""))

	res = g.do("back", "")
	assert.True(t, res.Moved)
	assert.Equal(t, "You go back.", res.Messages[0])
	assert.Equal(t, "yard", g.s.Room().ID)
	assert.Equal(t, "You can't go back any further.", g.say(t, "back", ""))

	assert.Equal(t, "The door is locked.", g.say(t, "east", ""))
	assert.Equal(t, "yard", g.s.Room().ID)
}

func TestResolve_TrapDamageAndDeath(t *testing.T) {
	// 2d4 rolls 1+1 and 2+1.
	g := newGame(t, 1, 2)
	g.do("north", "")
	g.do("south", "")

	g.s.Hero.TakeDamage(g.s.Hero.Health() - 3)
	res := g.do("north", "")
	assert.True(t, res.Quit)
	assert.Contains(t, res.Messages, "A plate clicks. You trigger the trap and take 5 damage.")
	assert.Equal(t, action.MsgGameOver, res.Messages[len(res.Messages)-1])
	assert.False(t, g.s.Hero.Alive())
	assert.Equal(t, 1, g.logs.FilterMessage("hero died").Len())
}

func TestResolve_TakeDrivesQuest(t *testing.T) {
	g := newGame(t)
	assert.Equal(t, "You approach Mara.\nMara waves.\nSay 'accept' to take the quest 'Gather Flowers', or 'turnin' to turn it in.",
		g.say(t, "talk", "Mara"))
	assert.Contains(t, g.say(t, "accept", ""), "Quest accepted!")

	res := g.do("take", "flower 1")
	assert.Equal(t, []string{"You took the flower.", "Ayla made progress in Gather Flowers (1/2)."}, res.Messages)

	res = g.do("get", "Flower")
	assert.Equal(t, []string{"You took the flower.", "Quest complete: Gather Flowers! Return to turn it in."}, res.Messages)
	assert.False(t, g.s.Room().Items().Has("flower"))

	assert.Equal(t, "Quest turned in: Gather Flowers. You gain 50 XP.", g.say(t, "turnin", ""))
	assert.Equal(t, 50, g.s.Hero.XP())
	assert.Contains(t, g.say(t, "quests", ""), "Completed quests:\n  Gather Flowers")
}

func TestResolve_TakeAndDrop(t *testing.T) {
	g := newGame(t)
	assert.Equal(t, "Take what?", g.say(t, "take", ""))
	assert.Equal(t, "There is no anvil here to take.", g.say(t, "take", "anvil"))
	assert.Equal(t, "There aren't that many of the rock.", g.say(t, "take", "rock 5"))
	assert.Equal(t, "You took the flower (x2).", g.say(t, "take", "flower"))

	assert.Equal(t, "You dropped the flower with quantity 1 in the Yard.", g.say(t, "drop", "flower 1"))
	assert.Equal(t, 1, g.s.Hero.Inventory().Quantity("flower"))
	assert.Equal(t, 1, g.s.Room().Items().Quantity("flower"))
	assert.Equal(t, "You don't have a sword to drop.", g.say(t, "drop", "sword"))
	assert.Equal(t, "That is not a valid quantity.", g.say(t, "drop", "flower -2"))
}

func TestResolve_Use(t *testing.T) {
	g := newGame(t)
	g.s.Hero.TakeDamage(30)

	assert.Equal(t, "Ayla used potion on themself.", g.say(t, "use", "potion"))
	assert.Equal(t, 90, g.s.Hero.Health())
	assert.False(t, g.s.Hero.Inventory().Has("potion"), "consumed")

	assert.Equal(t, "You must take the rock first before using it on yourself.", g.say(t, "use", "rock"))
	g.do("take", "rock")
	assert.Equal(t, "The rock cannot be used on yourself. It may be used on a room instead.", g.say(t, "use", "rock on me"))
	assert.Equal(t, "You used the rock in the Yard.", g.say(t, "use", "rock in the room"))
	assert.Equal(t, "You used the rock on the well.", g.say(t, "use", "rock on well"))
	assert.Equal(t, "You don't have a sword.", g.say(t, "use", "sword on well"))
	assert.Equal(t, "Use what?", g.say(t, "use", ""))

	assert.Equal(t, "You unlock the door with the iron key. It clicks open.", g.say(t, "use", "iron key on door"))
	res := g.do("e", "")
	assert.True(t, res.Moved)
	assert.Equal(t, "vault", g.s.Room().ID)
}

func TestResolve_Examine(t *testing.T) {
	g := newGame(t)
	assert.Equal(t, "You examine the potion:\n  A red tonic.\n  Quantity: 1\n  Value: 10 gold\n  Effect: Heals for 20",
		g.say(t, "examine", "Potion"))
	assert.Equal(t, "A sturdy wooden door with a heavy lock. It doesn't budge.", g.say(t, "x", "door"))
	assert.Equal(t, "A mossy well.", g.say(t, "ex", "well"))
	assert.Equal(t, "You don't see any moon here.", g.say(t, "examine", "moon"))
	assert.Equal(t, "Examine what?", g.say(t, "examine", ""))
}

func TestResolve_HeroCommands(t *testing.T) {
	g := newGame(t)
	assert.Equal(t, "Ayla - Level 1\nHealth: 100/100\nMana: 100/100\nXP: 0/150\nGold: 0 gold pieces", g.say(t, "stats", ""))
	assert.Equal(t, "You are carrying:\n  fists x1\n  potion x1\nGold: 0 gold pieces", g.say(t, "i", ""))
	assert.Equal(t, "You have no quests.", g.say(t, "quests", ""))

	assert.Equal(t, "You know these spells:\n  fireball (25 mana)\n  heal (10 mana)\n  magic missile (5 mana)", g.say(t, "cast", ""))
	assert.Equal(t, "fireball needs a target.", g.say(t, "cast", "fireball"))
	assert.Equal(t, `You don't know a spell called "frost".`, g.say(t, "cast", "frost"))
	assert.Equal(t, "You can't cast fireball on the door.", g.say(t, "cast", "fireball on door"))
	assert.Equal(t, "Ayla casts heal on themself.", g.say(t, "cast", "heal on me"))
	assert.Equal(t, 90, g.s.Hero.Mana())

	for range 9 {
		g.do("cast", "heal")
	}
	assert.Equal(t, "You don't have enough mana to cast heal.", g.say(t, "cast", "heal"))
}

func TestResolve_HelpIncludesRoom(t *testing.T) {
	g := newGame(t)
	res := g.do("?", "")
	require.Len(t, res.Messages, 2)
	assert.Contains(t, res.Messages[0], "Available commands:")
	assert.Contains(t, res.Messages[1], "Here you can also:\n  Door: use a key with the 'iron key'")
	assert.Contains(t, res.Messages[1], "talk mara")
}

func TestResolve_InteractionFallbacks(t *testing.T) {
	g := newGame(t)
	assert.Equal(t, action.MsgUnknownCommand, g.say(t, "dance", ""))
	assert.Equal(t, "It's locked.", g.say(t, "open", "door"))
	assert.Equal(t, "You can't talk the goat here.", g.say(t, "talk", "goat"))
	assert.Equal(t, "Nothing here responds to that.", g.say(t, "wave", ""))
}

func TestResolve_TurnEnded(t *testing.T) {
	g := newGame(t)
	turns := 0
	g.s.Bus.Subscribe(event.TurnEnded, func(...any) (any, error) {
		turns++
		return nil, nil
	}, false)

	g.do("look", "")
	g.do("dance", "")
	assert.Equal(t, 2, turns)

	res := g.do("QUIT", "")
	assert.True(t, res.Quit)
	assert.Equal(t, []string{action.MsgGoodbye}, res.Messages)
	assert.Equal(t, 2, turns, "quitting ends no turn")

	assert.Empty(t, g.do("  ", "").Messages)
	assert.Equal(t, 2, turns)
}

func TestResolve_RecoversFromPanic(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := action.NewResolver(event.NewBus(zap.NewNop()), nil, zap.New(core))

	res := r.Resolve(&session.Session{}, action.Request{Verb: "look"})
	assert.Equal(t, []string{action.MsgSomethingWrong}, res.Messages)
	assert.Equal(t, 1, logs.FilterMessage("resolver: recovered from panic").Len())
}

func TestResolveLine(t *testing.T) {
	g := newGame(t)

	res := g.r.ResolveLine(g.s, "take rock and drop rock")
	assert.Equal(t, []string{"You picked up and dropped the rock."}, res.Messages)
	assert.True(t, g.s.Room().Items().Has("rock"))

	res = g.r.ResolveLine(g.s, "take rock and go north")
	assert.True(t, res.Moved)
	assert.Equal(t, "You took the rock.", res.Messages[0])
	assert.Equal(t, "You go north.", res.Messages[1])
	require.NotNil(t, res.View)
	assert.Equal(t, "Hall", res.View.Title)

	res = g.r.ResolveLine(g.s, "quit and south")
	assert.True(t, res.Quit)
	assert.Equal(t, "hall", g.s.Room().ID)
}

func TestResolve_ZoneEnterHook(t *testing.T) {
	g := newGame(t)
	require.NoError(t, g.s.Scripts.LoadString("vale",
		`function on_enter(hero, room, from) return hero .. " arrives in " .. room .. " from " .. from .. "." end`, 0))

	res := g.do("north", "")
	assert.Equal(t, "Ayla arrives in hall from yard.", res.Messages[len(res.Messages)-1])
}
