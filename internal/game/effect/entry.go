package effect

import (
	"gopkg.in/yaml.v3"

	"github.com/Kingly77/VentureTextAdventure/internal/game/character"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
)

// Entry shows a message the first time the hero enters its room.
type Entry struct {
	world.BaseEffect
	message string
	shown   bool
}

// NewEntry returns an Entry that announces message once.
func NewEntry(message string) *Entry {
	return &Entry{message: message}
}

func newEntryFromSpec(_ *world.Room, params yaml.Node, _ Deps) (world.Effect, error) {
	var p struct {
		Message string `yaml:"message"`
	}
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return NewEntry(p.Message), nil
}

// Shown reports whether the message has been displayed.
func (e *Entry) Shown() bool { return e.shown }

func (e *Entry) HandleEnter(*character.Hero) (string, bool) {
	if e.message == "" || e.shown {
		return "", false
	}
	e.shown = true
	return e.message, true
}
