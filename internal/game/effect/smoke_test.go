package effect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/Kingly77/VentureTextAdventure/internal/event"
	"github.com/Kingly77/VentureTextAdventure/internal/game/dice"
	"github.com/Kingly77/VentureTextAdventure/internal/game/effect"
	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
)

func newSmoke(f *fixture, opts effect.SmokeOptions) *effect.Smoke {
	s := effect.NewSmoke(opts, f.bus, f.roller, f.logger)
	f.room.AddEffect(s)
	return s
}

func worldUse(it *inventory.Item) world.Interaction {
	return world.Interaction{Verb: "use", Target: "smoke", Item: it}
}

func transient() *bool {
	b := false
	return &b
}

func TestSmoke_Description(t *testing.T) {
	f := newFixture(t)
	s := newSmoke(f, effect.SmokeOptions{})
	assert.Equal(t, 5, s.Intensity())
	assert.Equal(t, "A long hall.\n\nDense smoke fills the space, making it difficult to see more than a few feet ahead.",
		f.room.ModifiedDescription())

	assert.Equal(t, effect.MaxSmokeIntensity, effect.NewSmoke(effect.SmokeOptions{Intensity: 42}, f.bus, f.roller, f.logger).Intensity())
	assert.Equal(t, effect.MinSmokeIntensity, effect.NewSmoke(effect.SmokeOptions{Intensity: -3}, f.bus, f.roller, f.logger).Intensity())
}

func TestSmoke_Cough(t *testing.T) {
	// Chance(50) rolls 10 and hits; the message die rolls 2, picking the third message.
	f := newFixture(t, 10, 2)
	newSmoke(f, effect.SmokeOptions{Intensity: 5})
	assert.Equal(t, []string{"You struggle to breathe in the smoky air."}, f.room.Enter(f.hero))

	f = newFixture(t, 50)
	newSmoke(f, effect.SmokeOptions{Intensity: 5})
	assert.Empty(t, f.room.Enter(f.hero))
}

func TestSmoke_CoughChanceCapped(t *testing.T) {
	// 85 would hit at 90% but the chance caps at 80%.
	f := newFixture(t, 85)
	newSmoke(f, effect.SmokeOptions{Intensity: 9})
	assert.Empty(t, f.room.Enter(f.hero))
}

func TestSmoke_Wave(t *testing.T) {
	f := newFixture(t)
	s := newSmoke(f, effect.SmokeOptions{Intensity: 4})
	msg, ok := f.room.Interact("wave", "smoke", f.hero, nil)
	assert.True(t, ok)
	assert.Contains(t, msg, "too thick and persistent")
	assert.Equal(t, 4, s.Intensity())

	f = newFixture(t)
	s = newSmoke(f, effect.SmokeOptions{Intensity: 4, Persistent: transient()})
	msg, ok = f.room.Interact("wave", "", f.hero, nil)
	assert.True(t, ok)
	assert.Contains(t, msg, "clearing the air")
	assert.True(t, s.Cleared())
	assert.Zero(t, s.Intensity())
	assert.False(t, f.bus.Has(s.EventName()))
	assert.Equal(t, "A long hall.", f.room.ModifiedDescription())

	_, ok = f.room.Interact("wave", "smoke", f.hero, nil)
	assert.False(t, ok, "cleared smoke claims nothing")
}

func TestSmoke_Items(t *testing.T) {
	f := newFixture(t)
	s := newSmoke(f, effect.SmokeOptions{Intensity: 7})

	msg, ok := f.room.Interact("use", "smoke", f.hero, item("paper fan", inventory.TagFan))
	assert.True(t, ok)
	assert.Equal(t, "You use the paper fan to blow away some of the smoke. The air becomes slightly clearer.", msg)
	assert.Equal(t, 5, s.Intensity())

	require.NoError(t, f.hero.Inventory().Add(item("bucket", inventory.TagWater)))
	msg, ok = f.room.UseItem("use", "bucket", f.hero)
	assert.True(t, ok)
	assert.Equal(t, "You use the bucket to dampen the smoke. The air becomes noticeably clearer.", msg)
	assert.Equal(t, 2, s.Intensity())

	f.room.UseItem("use", "bucket", f.hero)
	assert.Equal(t, effect.MinSmokeIntensity, s.Intensity(), "persistent smoke bottoms out")
	assert.False(t, s.Cleared())

	_, ok = f.room.Interact("use", "smoke", f.hero, item("rope"))
	assert.False(t, ok)
}

func TestSmoke_TransientItemClears(t *testing.T) {
	f := newFixture(t)
	s := newSmoke(f, effect.SmokeOptions{Intensity: 7, Persistent: transient()})

	msg, _ := f.room.Interact("use", "smoke", f.hero, item("extinguisher", inventory.TagExtinguisher))
	assert.Equal(t, "You use the extinguisher to extinguish the source of the smoke.", msg)
	assert.True(t, s.Cleared())
}

func TestSmoke_TriggerReduction(t *testing.T) {
	f := newFixture(t)
	s := newSmoke(f, effect.SmokeOptions{Intensity: 2})
	assert.True(t, f.bus.Has(s.EventName()))

	assert.Equal(t, []string{"The smoke begins to dissipate slightly. Intensity: 1"}, s.TriggerReduction())
	assert.Empty(t, s.TriggerReduction(), "persistent smoke lingers at the minimum")
	assert.False(t, s.Cleared())

	f = newFixture(t)
	s = newSmoke(f, effect.SmokeOptions{Intensity: 1, Persistent: transient()})
	assert.Equal(t, []string{"The smoke has completely cleared from the room."}, s.TriggerReduction())
	assert.True(t, s.Cleared())
	assert.Nil(t, s.TriggerReduction())
}

func TestSmoke_DissipatesWithTurns(t *testing.T) {
	f := newFixture(t)
	s := newSmoke(f, effect.SmokeOptions{Intensity: 4, DissipateEvery: 2})

	for range 4 {
		f.bus.Trigger(event.TurnEnded, f.hero)
	}
	assert.Equal(t, 2, s.Intensity())
	assert.Equal(t, 2, f.logs.FilterMessage("smoke dissipating").Len())

	s.Clear()
	assert.False(t, f.bus.Has(event.TurnEnded))
	assert.False(t, f.bus.Has(s.EventName()))
	f.bus.Trigger(event.TurnEnded, f.hero)
	assert.Zero(t, s.Intensity())
}

func TestSmoke_NoClockByDefault(t *testing.T) {
	f := newFixture(t)
	newSmoke(f, effect.SmokeOptions{})
	assert.False(t, f.bus.Has(event.TurnEnded))
}

func TestSmoke_IntensityBounds_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		logger := zap.NewNop()
		bus := event.NewBus(logger)
		roller := dice.NewRoller(dice.NewSequenceSource(0), logger)
		persistent := rapid.Bool().Draw(rt, "persistent")
		s := effect.NewSmoke(effect.SmokeOptions{
			Intensity:  rapid.IntRange(1, 10).Draw(rt, "intensity"),
			Persistent: &persistent,
		}, bus, roller, logger)

		ops := rapid.SliceOfN(rapid.IntRange(0, 3), 1, 30).Draw(rt, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				s.ReduceIntensity(rapid.IntRange(0, 5).Draw(rt, "amount"))
			case 1:
				s.TriggerReduction()
			case 2:
				s.HandleInteraction(worldUse(item("fan", inventory.TagFan)))
			case 3:
				s.HandleInteraction(worldUse(item("bucket", inventory.TagWater)))
			}
			if s.Cleared() {
				if persistent {
					rt.Fatalf("persistent smoke cleared without Clear")
				}
				if s.Intensity() != 0 {
					rt.Fatalf("cleared smoke has intensity %d", s.Intensity())
				}
				return
			}
			if s.Intensity() < effect.MinSmokeIntensity || s.Intensity() > effect.MaxSmokeIntensity {
				rt.Fatalf("intensity %d out of bounds", s.Intensity())
			}
		}
	})
}

func TestSmoke_TurnMessagesShownInItsRoom(t *testing.T) {
	f := newFixture(t)
	s := newSmoke(f, effect.SmokeOptions{Intensity: 3, DissipateEvery: 1, Room: f.room})
	yard := world.NewRoom("yard", "Yard", "Open air.", f.logger)

	assert.Empty(t, event.Messages(f.bus.Trigger(event.TurnEnded, f.hero, yard)))
	assert.Equal(t, 2, s.Intensity())

	assert.Equal(t, []string{"The smoke begins to dissipate slightly. Intensity: 1"},
		event.Messages(f.bus.Trigger(event.TurnEnded, f.hero, f.room)))
}

func TestSmoke_BuiltFromZoneKnowsItsRoom(t *testing.T) {
	f := newFixture(t)
	eff, _, err := effect.DefaultRegistry().Build(f.room, world.EffectSpec{
		Kind:   "smoke",
		Params: params(t, "intensity: 2\npersistent: false\ndissipate_every: 1"),
	}, f.deps())
	require.NoError(t, err)
	f.room.AddEffect(eff)

	assert.Equal(t, []string{"The smoke begins to dissipate slightly. Intensity: 1"},
		event.Messages(f.bus.Trigger(event.TurnEnded, f.hero, f.room)))
	assert.Equal(t, []string{"The smoke has completely cleared from the room."},
		event.Messages(f.bus.Trigger(event.TurnEnded, f.hero, f.room)))
	assert.True(t, eff.(*effect.Smoke).Cleared())
}
