// Package event provides the in-process named publish/subscribe bus that
// couples room effects, quests, and the interaction resolver.
//
// The bus is not safe for concurrent use. It is owned by the single game
// goroutine, and handlers may trigger further events re-entrantly.
package event

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Well-known event names emitted by the engine.
const (
	// ItemCollected fires with (hero, item) when a hero picks up an item.
	ItemCollected = "item_collected"
	// LocationEntered fires with (hero, room) after a hero moves into a room.
	LocationEntered = "location_entered"
	// TorchOnTable fires with (hero, room) when a torch is placed on a table.
	TorchOnTable = "torch_on_table"
	// TurnEnded fires with (hero, room) after every resolved player command.
	TurnEnded = "turn_ended"
)

var (
	// ErrEventNotFound is returned when an operation names an event with no registrations.
	ErrEventNotFound = errors.New("event not found")
	// ErrHandlerNotFound is returned when a registration is not present under its event name.
	ErrHandlerNotFound = errors.New("handler not found")
)

// Handler is a subscriber callback. A nil result is not collected by Trigger.
// A returned error is logged and swallowed.
type Handler func(args ...any) (any, error)

// Registration identifies a single subscription. Unsubscribe removes by
// registration identity, so subscribing the same function twice yields two
// independent registrations.
type Registration struct {
	name        string
	description string
	handler     Handler
	oneShot     bool
	spent       bool
}

// Name returns the event name this registration is attached to.
func (r *Registration) Name() string { return r.name }

// OneShot reports whether the registration is removed after its first invocation.
func (r *Registration) OneShot() bool { return r.oneShot }

// Description returns the diagnostic description given at subscription time.
func (r *Registration) Description() string { return r.description }

// HandlerInfo describes one registration for diagnostics.
type HandlerInfo struct {
	Description string
	OneShot     bool
}

// Info is the diagnostic view of one event name.
type Info struct {
	Name         string
	HandlerCount int
	Handlers     []HandlerInfo
}

// Bus maps event names to ordered registration lists.
//
// Invariant: a name present in the bus has at least one registration.
type Bus struct {
	handlers map[string][]*Registration
	logger   *zap.Logger
}

// NewBus creates an empty Bus.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a Bus with no registered events.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]*Registration),
		logger:   logger,
	}
}

// Subscribe appends h to the registrations for name.
//
// Postcondition: Returns the new registration; it is last in dispatch order for name.
func (b *Bus) Subscribe(name string, h Handler, oneShot bool) *Registration {
	return b.SubscribeDescribed(name, "", h, oneShot)
}

// SubscribeDescribed is Subscribe with a diagnostic description attached.
func (b *Bus) SubscribeDescribed(name, description string, h Handler, oneShot bool) *Registration {
	reg := &Registration{
		name:        name,
		description: description,
		handler:     h,
		oneShot:     oneShot,
	}
	b.handlers[name] = append(b.handlers[name], reg)
	return reg
}

// Unsubscribe removes reg from name.
//
// Postcondition: On success the registration is gone, other registrations keep
// their order, and name is deleted if it has no registrations left.
// Returns ErrEventNotFound or ErrHandlerNotFound otherwise.
func (b *Bus) Unsubscribe(name string, reg *Registration) error {
	regs, ok := b.handlers[name]
	if !ok {
		return fmt.Errorf("unsubscribing from %q: %w", name, ErrEventNotFound)
	}
	for i, r := range regs {
		if r != reg {
			continue
		}
		b.removeAt(name, i)
		return nil
	}
	return fmt.Errorf("unsubscribing from %q: %w", name, ErrHandlerNotFound)
}

func (b *Bus) removeAt(name string, i int) {
	regs := b.handlers[name]
	next := make([]*Registration, 0, len(regs)-1)
	next = append(next, regs[:i]...)
	next = append(next, regs[i+1:]...)
	if len(next) == 0 {
		delete(b.handlers, name)
		return
	}
	b.handlers[name] = next
}

// Trigger invokes every registration of name in subscription order and
// returns the non-nil results in call order.
//
// Unknown names are not an error: Trigger returns nil. Each handler runs in
// isolation; an error or panic is logged at Warn and the remaining handlers
// still run. One-shot registrations from the invocation snapshot are removed
// once all handlers have returned.
//
// Postcondition: Returns nil when no handler produced a result.
func (b *Bus) Trigger(name string, args ...any) []any {
	regs, ok := b.handlers[name]
	if !ok {
		return nil
	}
	snapshot := make([]*Registration, len(regs))
	copy(snapshot, regs)

	var results []any
	for _, reg := range snapshot {
		if reg.spent {
			continue
		}
		if reg.oneShot {
			reg.spent = true
		}
		res, err := b.invoke(reg, args)
		if err != nil {
			b.logger.Warn("event handler failed",
				zap.String("event", name),
				zap.String("handler", reg.description),
				zap.Error(err),
			)
			continue
		}
		if res != nil {
			results = append(results, res)
		}
	}

	b.pruneSpent(name, snapshot)
	if len(results) == 0 {
		return nil
	}
	return results
}

func (b *Bus) invoke(reg *Registration, args []any) (res any, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return reg.handler(args...)
}

// pruneSpent removes one-shot registrations from snapshot that are still
// attached to name. Registrations already unsubscribed by a handler are skipped.
func (b *Bus) pruneSpent(name string, snapshot []*Registration) {
	for _, reg := range snapshot {
		if !reg.oneShot {
			continue
		}
		regs, ok := b.handlers[name]
		if !ok {
			return
		}
		for i, r := range regs {
			if r == reg {
				b.removeAt(name, i)
				break
			}
		}
	}
}

// Has reports whether name has at least one registration.
func (b *Bus) Has(name string) bool {
	_, ok := b.handlers[name]
	return ok
}

// ListEvents returns the registration count per event name.
func (b *Bus) ListEvents() map[string]int {
	out := make(map[string]int, len(b.handlers))
	for name, regs := range b.handlers {
		out[name] = len(regs)
	}
	return out
}

// Names returns registered event names in lexicographic order.
func (b *Bus) Names() []string {
	names := make([]string, 0, len(b.handlers))
	for name := range b.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EventInfo describes the registrations of name in dispatch order.
//
// Postcondition: Returns ErrEventNotFound when name has no registrations.
func (b *Bus) EventInfo(name string) (Info, error) {
	regs, ok := b.handlers[name]
	if !ok {
		return Info{}, fmt.Errorf("event info for %q: %w", name, ErrEventNotFound)
	}
	info := Info{Name: name, HandlerCount: len(regs)}
	for _, r := range regs {
		info.Handlers = append(info.Handlers, HandlerInfo{Description: r.description, OneShot: r.oneShot})
	}
	return info, nil
}

// Messages keeps the non-empty string results of a Trigger call, in order.
func Messages(results []any) []string {
	var out []string
	for _, r := range results {
		if s, ok := r.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Clear removes every registration.
func (b *Bus) Clear() {
	b.handlers = make(map[string][]*Registration)
}
