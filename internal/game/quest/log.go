package quest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuestNotActive is returned when a quest id is not in the active set.
	ErrQuestNotActive = errors.New("quest not active")
	// ErrQuestAlreadyActive is returned when adding a quest whose id or name is already active.
	ErrQuestAlreadyActive = errors.New("quest already active")
)

// Log is a hero's quest journal.
//
// Invariant: a quest id is in at most one of active or completed.
type Log struct {
	active    map[string]*Quest
	order     []string
	completed []string
}

// NewLog creates an empty quest log.
func NewLog() *Log {
	return &Log{active: make(map[string]*Quest)}
}

// Add makes q active.
//
// Postcondition: IsActive(q.ID()) is true, or an error wraps ErrQuestAlreadyActive.
func (l *Log) Add(q *Quest) error {
	if _, ok := l.active[q.ID()]; ok {
		return fmt.Errorf("adding quest %q: %w", q.Name(), ErrQuestAlreadyActive)
	}
	if _, ok := l.FindByName(q.Name()); ok {
		return fmt.Errorf("adding quest %q: %w", q.Name(), ErrQuestAlreadyActive)
	}
	l.active[q.ID()] = q
	l.order = append(l.order, q.ID())
	return nil
}

// IsActive reports whether id is an active quest.
func (l *Log) IsActive(id string) bool {
	_, ok := l.active[id]
	return ok
}

// Get returns the active quest with id.
func (l *Log) Get(id string) (*Quest, bool) {
	q, ok := l.active[id]
	return q, ok
}

// FindByName returns the active quest whose name matches (case-insensitive).
func (l *Log) FindByName(name string) (*Quest, bool) {
	for _, id := range l.order {
		if strings.EqualFold(l.active[id].Name(), strings.TrimSpace(name)) {
			return l.active[id], true
		}
	}
	return nil, false
}

// ActiveQuests returns a copy of the active set keyed by quest id.
func (l *Log) ActiveQuests() map[string]*Quest {
	out := make(map[string]*Quest, len(l.active))
	for id, q := range l.active {
		out[id] = q
	}
	return out
}

// Active returns the active quests in the order they were accepted.
func (l *Log) Active() []*Quest {
	out := make([]*Quest, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.active[id])
	}
	return out
}

// CompletedQuests returns completed quest names in completion order.
func (l *Log) CompletedQuests() []string {
	return append([]string(nil), l.completed...)
}

// HasCompleted reports whether a quest named name was turned in.
func (l *Log) HasCompleted(name string) bool {
	for _, n := range l.completed {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// CompleteQuest turns in the active quest id for who.
//
// Postcondition: On (true, nil) the quest moved from active to completed.
// On (false, nil) the requirement was not met and nothing changed.
// Returns ErrQuestNotActive for unknown ids.
func (l *Log) CompleteQuest(id string, who Adventurer) (bool, error) {
	q, ok := l.active[id]
	if !ok {
		return false, fmt.Errorf("completing quest %q: %w", id, ErrQuestNotActive)
	}
	if !q.Complete(who) {
		return false, nil
	}
	l.remove(id)
	l.completed = append(l.completed, q.Name())
	return true, nil
}

// Abandon drops an active quest and its subscriptions.
func (l *Log) Abandon(id string) error {
	q, ok := l.active[id]
	if !ok {
		return fmt.Errorf("abandoning quest %q: %w", id, ErrQuestNotActive)
	}
	q.Retire()
	l.remove(id)
	return nil
}

func (l *Log) remove(id string) {
	delete(l.active, id)
	for i, o := range l.order {
		if o == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}
