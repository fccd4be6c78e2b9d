package effect

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Kingly77/VentureTextAdventure/internal/event"
	"github.com/Kingly77/VentureTextAdventure/internal/game/character"
	"github.com/Kingly77/VentureTextAdventure/internal/game/dice"
	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
)

// Smoke intensity bounds.
const (
	MinSmokeIntensity = 1
	MaxSmokeIntensity = 10
)

var smokeDescriptions = [...]string{
	1:  "A thin wisp of smoke drifts through the air.",
	2:  "Light smoke hangs in the air, slightly obscuring your vision.",
	3:  "Moderate smoke fills the area, making it harder to see clearly.",
	4:  "Thick smoke clouds the room, significantly reducing visibility.",
	5:  "Dense smoke fills the space, making it difficult to see more than a few feet ahead.",
	6:  "Heavy smoke obscures most of the room, visibility is very poor.",
	7:  "Thick, choking smoke makes it nearly impossible to see clearly.",
	8:  "Dense, acrid smoke fills the air, severely limiting visibility.",
	9:  "Overwhelming smoke makes it almost impossible to see or breathe clearly.",
	10: "The room is completely filled with thick, suffocating smoke.",
}

var coughMessages = []string{
	"You cough as the smoke irritates your throat.",
	"The thick smoke makes you cough and wheeze.",
	"You struggle to breathe in the smoky air.",
	"The acrid smoke causes you to cough violently.",
	"You choke on the dense smoke filling the room.",
}

// SmokeOptions configures a Smoke effect.
type SmokeOptions struct {
	Intensity int `yaml:"intensity"`
	// Persistent smoke thins but never clears by hand.
	Persistent *bool `yaml:"persistent"`
	// DissipateEvery thins the smoke once per this many turns; 0 never.
	DissipateEvery int `yaml:"dissipate_every"`
	// Room is where the smoke hangs. Only a hero standing there sees it thin.
	Room *world.Room `yaml:"-"`
}

// Smoke fills its room with smoke of intensity 1..10 that obscures the
// description and may make the hero cough on entry. Waving or using a fan,
// wind, water, or extinguisher item thins or clears it. Smoke also thins on a
// private bus event, which Smoke triggers itself every DissipateEvery turns.
//
// Invariant: while not cleared, MinSmokeIntensity <= Intensity() <= MaxSmokeIntensity.
type Smoke struct {
	world.BaseEffect
	intensity  int
	persistent bool
	cleared    bool
	every      int
	turns      int
	room       *world.Room
	eventName  string
	reduceReg  *event.Registration
	turnReg    *event.Registration
	bus        *event.Bus
	roller     *dice.Roller
	logger     *zap.Logger
}

// NewSmoke subscribes the smoke's private reduction event and, when
// opts.DissipateEvery > 0, a turn counter on event.TurnEnded.
//
// Precondition: bus, roller, and logger must be non-nil.
func NewSmoke(opts SmokeOptions, bus *event.Bus, roller *dice.Roller, logger *zap.Logger) *Smoke {
	if opts.Intensity == 0 {
		opts.Intensity = 5
	}
	s := &Smoke{
		intensity:  min(MaxSmokeIntensity, max(MinSmokeIntensity, opts.Intensity)),
		persistent: boolOr(opts.Persistent, true),
		every:      max(0, opts.DissipateEvery),
		room:       opts.Room,
		eventName:  "smoke_reduce_" + uuid.NewString()[:8],
		bus:        bus,
		roller:     roller,
		logger:     logger,
	}
	s.reduceReg = bus.SubscribeDescribed(s.eventName, "smoke reduction", s.onReduce, false)
	if s.every > 0 {
		s.turnReg = bus.SubscribeDescribed(event.TurnEnded, "smoke dissipation clock", s.onTurn, false)
	}
	return s
}

func newSmokeFromSpec(room *world.Room, params yaml.Node, deps Deps) (world.Effect, error) {
	var opts SmokeOptions
	if err := decodeParams(params, &opts); err != nil {
		return nil, err
	}
	opts.Room = room
	if opts.Intensity < 0 || opts.Intensity > MaxSmokeIntensity {
		return nil, fmt.Errorf("smoke intensity must be in [%d, %d], got %d", MinSmokeIntensity, MaxSmokeIntensity, opts.Intensity)
	}
	return NewSmoke(opts, deps.Bus, deps.Roller, deps.Logger), nil
}

// Intensity returns the current smoke level, 0 once cleared.
func (s *Smoke) Intensity() int { return s.intensity }

// Cleared reports whether the smoke is gone.
func (s *Smoke) Cleared() bool { return s.cleared }

// EventName returns the private event that thins this smoke.
func (s *Smoke) EventName() string { return s.eventName }

func (s *Smoke) ModifyDescription(current string) (string, bool) {
	if s.cleared {
		return "", false
	}
	return current + "\n\n" + smokeDescriptions[s.intensity], true
}

// HandleEnter coughs with probability min(80%, 10% per intensity level).
func (s *Smoke) HandleEnter(*character.Hero) (string, bool) {
	if s.cleared {
		return "", false
	}
	if !s.roller.Chance(min(80, s.intensity*10)) {
		return "", false
	}
	pick := s.roller.Roll(dice.Expression{Raw: "cough", Count: 1, Sides: len(coughMessages)})
	return coughMessages[pick.Total()-1], true
}

func (s *Smoke) HandleInteraction(in world.Interaction) (string, bool) {
	if s.cleared {
		return "", false
	}
	switch {
	case in.Verb == "wave" && (in.Target == "" || in.Target == "smoke" || in.Target == "hands"):
		if s.persistent {
			return "You wave your hands, but the smoke is too thick and persistent to clear this way.", true
		}
		s.Clear()
		return "You wave your hands vigorously, and the smoke begins to dissipate, clearing the air.", true
	case in.Verb == "use" && in.Item != nil:
		return s.useItem(in.Item)
	}
	return "", false
}

func (s *Smoke) HandleItemUse(verb, itemName string, h *character.Hero) (string, bool) {
	if s.cleared || verb != "use" || h == nil {
		return "", false
	}
	it, ok := h.Inventory().Get(itemName)
	if !ok {
		return "", false
	}
	return s.useItem(it)
}

func (s *Smoke) useItem(it *inventory.Item) (string, bool) {
	switch {
	case it.HasTag(inventory.TagFan) || it.HasTag(inventory.TagWind):
		if s.persistent {
			s.ReduceIntensity(2)
			return fmt.Sprintf("You use the %s to blow away some of the smoke. The air becomes slightly clearer.", it.Name), true
		}
		s.Clear()
		return fmt.Sprintf("You use the %s to clear the smoke from the room.", it.Name), true
	case it.HasTag(inventory.TagWater) || it.HasTag(inventory.TagExtinguisher):
		if s.persistent {
			s.ReduceIntensity(3)
			return fmt.Sprintf("You use the %s to dampen the smoke. The air becomes noticeably clearer.", it.Name), true
		}
		s.Clear()
		return fmt.Sprintf("You use the %s to extinguish the source of the smoke.", it.Name), true
	}
	return "", false
}

// ReduceIntensity thins the smoke by amount, never below MinSmokeIntensity.
// Non-persistent smoke that reaches the minimum clears.
func (s *Smoke) ReduceIntensity(amount int) {
	if s.cleared {
		return
	}
	s.intensity = max(MinSmokeIntensity, s.intensity-amount)
	if s.intensity <= MinSmokeIntensity && !s.persistent {
		s.Clear()
	}
}

// TriggerReduction fires the private reduction event.
//
// Postcondition: Returns the reduction message, or nil once cleared.
func (s *Smoke) TriggerReduction() []string {
	if s.cleared {
		return nil
	}
	return event.Messages(s.bus.Trigger(s.eventName))
}

func (s *Smoke) onReduce(...any) (any, error) {
	if s.cleared {
		return nil, nil
	}
	if s.intensity > MinSmokeIntensity {
		s.intensity--
		return fmt.Sprintf("The smoke begins to dissipate slightly. Intensity: %d", s.intensity), nil
	}
	if !s.persistent {
		s.Clear()
		return "The smoke has completely cleared from the room.", nil
	}
	return nil, nil
}

// onTurn expects (hero, room). The reduction message is returned only when
// room is the smoke's own room.
func (s *Smoke) onTurn(args ...any) (any, error) {
	s.turns++
	if s.turns%s.every != 0 {
		return nil, nil
	}
	msgs := s.TriggerReduction()
	s.logger.Debug("smoke dissipating", zap.Strings("messages", msgs))
	if len(msgs) == 0 || s.room == nil || len(args) < 2 {
		return nil, nil
	}
	if here, ok := args[1].(*world.Room); !ok || here != s.room {
		return nil, nil
	}
	return strings.Join(msgs, "\n"), nil
}

// Clear removes the smoke at once and drops its bus subscriptions.
//
// Postcondition: Cleared() is true and the smoke no longer reacts to any event.
func (s *Smoke) Clear() {
	s.cleared = true
	s.intensity = 0
	for name, reg := range map[string]**event.Registration{s.eventName: &s.reduceReg, event.TurnEnded: &s.turnReg} {
		if *reg == nil {
			continue
		}
		if err := s.bus.Unsubscribe(name, *reg); err != nil {
			s.logger.Warn("smoke: dropping subscription", zap.String("event", name), zap.Error(err))
		}
		*reg = nil
	}
}

func (s *Smoke) Help() string {
	return "wave smoke, or use a fan, wind, water, or extinguisher item to clear the air"
}
