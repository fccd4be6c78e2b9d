// Package quest tracks quest objectives through the event bus and performs
// quest turn-in against a hero's inventory.
package quest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kingly77/VentureTextAdventure/internal/event"
	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
)

// ObjectiveType selects which semantic event advances a quest.
type ObjectiveType string

// Objective types.
const (
	// Collect advances on item_collected and turns in by handing over items.
	Collect ObjectiveType = "collect"
	// Visit advances on location_entered and turns in once achieved.
	Visit ObjectiveType = "visit"
)

// Objective is the goal of a quest.
type Objective struct {
	Type     ObjectiveType
	Target   string
	Required int
}

// Event returns the bus event that advances this objective.
func (o Objective) Event() string {
	if o.Type == Visit {
		return event.LocationEntered
	}
	return event.ItemCollected
}

// Definition is the static description of a quest.
type Definition struct {
	Name        string
	Description string
	Reward      int
	Objective   Objective
}

// Validate checks all definition invariants.
//
// Postcondition: Returns nil if valid, or an error describing all violations.
func (d Definition) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.Reward < 0 {
		errs = append(errs, fmt.Errorf("reward must be >= 0, got %d", d.Reward))
	}
	switch d.Objective.Type {
	case Collect, Visit:
	default:
		errs = append(errs, fmt.Errorf("objective type must be one of [collect, visit], got %q", d.Objective.Type))
	}
	if strings.TrimSpace(d.Objective.Target) == "" {
		errs = append(errs, errors.New("objective target must not be empty"))
	}
	if d.Objective.Required <= 0 {
		errs = append(errs, fmt.Errorf("objective value must be > 0, got %d", d.Objective.Required))
	}
	if len(errs) > 0 {
		return fmt.Errorf("quest %q: %w", d.Name, errors.Join(errs...))
	}
	return nil
}

// Adventurer is the hero-side view a quest needs for progress and turn-in.
type Adventurer interface {
	Name() string
	Inventory() *inventory.Inventory
	AddXP(amount int) int
	QuestLog() *Log
}

// keyed is satisfied by event payloads that expose a normalized lookup key,
// such as items and rooms.
type keyed interface {
	Key() string
}

// Quest is a live quest bound to a bus.
//
// Invariant: once Achieved is true, Progress never changes again.
type Quest struct {
	id       string
	def      Definition
	progress int
	achieved bool

	bus         *event.Bus
	logger      *zap.Logger
	progressReg *event.Registration
	completeReg *event.Registration
}

// New creates a quest and subscribes its progress handler and its one-shot
// completion handler on bus.
//
// Precondition: bus and logger must be non-nil.
// Postcondition: Returns a subscribed Quest with Progress 0, or an error if def is invalid.
func New(bus *event.Bus, def Definition, logger *zap.Logger) (*Quest, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	q := &Quest{
		id:     uuid.NewString()[:8],
		def:    def,
		bus:    bus,
		logger: logger,
	}
	q.progressReg = bus.SubscribeDescribed(def.Objective.Event(), "quest progress: "+def.Name, q.onProgress, false)
	q.completeReg = bus.SubscribeDescribed(q.CompletionEvent(), "quest completion: "+def.Name, q.onComplete, true)
	return q, nil
}

// ID returns the short quest identifier.
func (q *Quest) ID() string { return q.id }

// Name returns the quest name.
func (q *Quest) Name() string { return q.def.Name }

// Description returns the quest description.
func (q *Quest) Description() string { return q.def.Description }

// Reward returns the XP granted on turn-in.
func (q *Quest) Reward() int { return q.def.Reward }

// Objective returns the quest objective.
func (q *Quest) Objective() Objective { return q.def.Objective }

// Progress returns the number of qualifying events seen so far.
func (q *Quest) Progress() int { return q.progress }

// Achieved reports whether the objective's event count was reached.
func (q *Quest) Achieved() bool { return q.achieved }

// CompletionEvent returns the name of the one-shot completion event.
func (q *Quest) CompletionEvent() string { return "complete_" + q.def.Name }

func (q *Quest) String() string {
	return fmt.Sprintf("(%s) %s: %s [%d/%d]", q.id, q.def.Name, q.def.Description, q.progress, q.def.Objective.Required)
}

func (q *Quest) onProgress(args ...any) (any, error) {
	if q.achieved {
		return nil, nil
	}
	if len(args) < 2 {
		return nil, fmt.Errorf("quest %q: expected (adventurer, target) payload, got %d args", q.def.Name, len(args))
	}
	who, ok := args[0].(Adventurer)
	if !ok {
		return nil, fmt.Errorf("quest %q: payload actor %T is not an adventurer", q.def.Name, args[0])
	}
	if log := who.QuestLog(); log == nil || !log.IsActive(q.id) {
		return nil, nil
	}
	if !q.matches(args[1]) {
		return nil, nil
	}

	q.progress++
	q.logger.Debug("quest progress",
		zap.String("quest", q.def.Name),
		zap.Int("progress", q.progress),
		zap.Int("required", q.def.Objective.Required),
	)
	if q.progress < q.def.Objective.Required {
		return fmt.Sprintf("%s made progress in %s (%d/%d).", who.Name(), q.def.Name, q.progress, q.def.Objective.Required), nil
	}

	results := q.bus.Trigger(q.CompletionEvent(), who)
	for _, r := range results {
		if s, ok := r.(string); ok && s != "" {
			return s, nil
		}
	}
	return fmt.Sprintf("%s completed the quest: %s", who.Name(), q.def.Name), nil
}

func (q *Quest) onComplete(args ...any) (any, error) {
	q.achieved = true
	q.completeReg = nil
	q.dropProgress()
	return fmt.Sprintf("Quest complete: %s! Return to turn it in.", q.def.Name), nil
}

func (q *Quest) matches(payload any) bool {
	want := strings.ToLower(strings.TrimSpace(q.def.Objective.Target))
	switch p := payload.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(p)) == want
	case keyed:
		return p.Key() == want
	default:
		return false
	}
}

func (q *Quest) dropProgress() {
	if q.progressReg == nil {
		return
	}
	if err := q.bus.Unsubscribe(q.def.Objective.Event(), q.progressReg); err != nil {
		q.logger.Warn("quest: dropping progress handler", zap.String("quest", q.def.Name), zap.Error(err))
	}
	q.progressReg = nil
}

// Complete performs the turn-in transaction for who.
//
// A collect quest requires who to hold at least Required units of the target;
// they are removed and the reward XP granted. A visit quest requires Achieved.
// Postcondition: returns false with no side effects when the requirement is not met.
func (q *Quest) Complete(who Adventurer) bool {
	switch q.def.Objective.Type {
	case Collect:
		inv := who.Inventory()
		if inv.Quantity(q.def.Objective.Target) < q.def.Objective.Required {
			return false
		}
		if _, err := inv.Remove(q.def.Objective.Target, q.def.Objective.Required); err != nil {
			q.logger.Warn("quest: removing turn-in items", zap.String("quest", q.def.Name), zap.Error(err))
			return false
		}
	case Visit:
		if !q.achieved {
			return false
		}
	default:
		return false
	}
	who.AddXP(q.def.Reward)
	q.achieved = true
	q.Retire()
	return true
}

// Retire removes whatever bus subscriptions the quest still holds.
//
// Postcondition: the quest no longer reacts to any event.
func (q *Quest) Retire() {
	q.dropProgress()
	if q.completeReg != nil {
		if err := q.bus.Unsubscribe(q.CompletionEvent(), q.completeReg); err != nil && !errors.Is(err, event.ErrEventNotFound) {
			q.logger.Warn("quest: dropping completion handler", zap.String("quest", q.def.Name), zap.Error(err))
		}
		q.completeReg = nil
	}
}
