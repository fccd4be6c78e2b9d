package effect

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Kingly77/VentureTextAdventure/internal/game/character"
	"github.com/Kingly77/VentureTextAdventure/internal/game/dice"
	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
)

// DisarmKit is the item name that disarms a trap when used in its room.
const DisarmKit = "trap disarm kit"

// TrapState is the lifecycle of a Trap.
type TrapState int

const (
	// TrapHidden is armed and not yet noticed.
	TrapHidden TrapState = iota
	// TrapDetected is armed and noticed; the next entry springs it.
	TrapDetected
	// TrapSpent has been triggered or disarmed and is harmless.
	TrapSpent
)

// Trap warns on first entry and springs on the next one unless disarmed.
//
// Invariant: once TrapSpent the trap never deals damage again.
type Trap struct {
	world.BaseEffect
	damage   dice.Expression
	message  string
	state    TrapState
	disarmed bool
	roller   *dice.Roller
	logger   *zap.Logger
}

// NewTrap returns an armed trap that deals damage when sprung. A trap whose
// expression can never deal damage starts disarmed.
//
// Precondition: roller and logger must be non-nil.
func NewTrap(damage dice.Expression, message string, roller *dice.Roller, logger *zap.Logger) *Trap {
	t := &Trap{damage: damage, message: message, roller: roller, logger: logger}
	if damage.Count == 0 && damage.Modifier <= 0 {
		t.state, t.disarmed = TrapSpent, true
	}
	return t
}

func newTrapFromSpec(_ *world.Room, params yaml.Node, deps Deps) (world.Effect, error) {
	p := struct {
		Damage  string `yaml:"damage"`
		Message string `yaml:"message"`
	}{Damage: "1d6", Message: "A pressure plate clicks underfoot."}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	expr, err := dice.Parse(p.Damage)
	if err != nil {
		return nil, fmt.Errorf("trap damage: %w", err)
	}
	return NewTrap(expr, p.Message, deps.Roller, deps.Logger), nil
}

// State returns the trap's lifecycle state.
func (t *Trap) State() TrapState { return t.state }

// Disarmed reports whether the trap was made safe rather than sprung.
func (t *Trap) Disarmed() bool { return t.disarmed }

func (t *Trap) HandleEnter(h *character.Hero) (string, bool) {
	switch t.state {
	case TrapHidden:
		t.state = TrapDetected
		return fmt.Sprintf("%s The trap is armed. You notice it and have a chance to disarm it.", t.message), true
	case TrapDetected:
		t.state = TrapSpent
		roll := t.roller.Roll(t.damage)
		h.TakeDamage(roll.Total())
		t.logger.Info("trap sprung",
			zap.String("hero", h.Name()),
			zap.String("roll", roll.String()),
		)
		return fmt.Sprintf("%s You trigger the trap and take %d damage.", t.message, roll.Total()), true
	}
	return "", false
}

func (t *Trap) HandleInteraction(in world.Interaction) (string, bool) {
	switch {
	case in.Verb == "disarm" && (in.Target == "" || in.Target == "trap"):
		return t.disarm("You carefully disarm the trap. It is now safe.",
			"The trap has already been disarmed.",
			"Too late, the trap has already been triggered."), true
	case in.Verb == "use" && (in.Target == DisarmKit || isDisarmKit(in.Item)):
		return t.disarm("You use the trap disarm kit to render the trap harmless.",
			"There is no active trap to disarm.",
			"Too late, the trap has already gone off."), true
	}
	return "", false
}

func (t *Trap) HandleItemUse(verb, itemName string, _ *character.Hero) (string, bool) {
	if verb != "use" || itemName != DisarmKit || t.state == TrapSpent {
		return "", false
	}
	return t.disarm("You use the trap disarm kit to render the trap harmless.", "", ""), true
}

func (t *Trap) disarm(done, already, late string) string {
	if t.state == TrapSpent {
		if t.disarmed {
			return already
		}
		return late
	}
	t.state, t.disarmed = TrapSpent, true
	return done
}

func (t *Trap) ModifyDescription(string) (string, bool) {
	switch {
	case t.disarmed:
		return "", false
	case t.state == TrapDetected:
		return "You see a trap mechanism here.", true
	default:
		return "There seems to be something dangerous here.", true
	}
}

func (t *Trap) Help() string {
	return "disarm: make a noticed trap safe (or use a trap disarm kit)"
}

func isDisarmKit(it *inventory.Item) bool {
	return it != nil && (it.Key() == DisarmKit || it.HasTag(inventory.TagDisarm))
}
