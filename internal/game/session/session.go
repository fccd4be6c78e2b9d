// Package session holds the state of a single-player game: the hero, the
// room the hero stands in, the rooms behind them, and the collaborators every
// turn needs.
package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Kingly77/VentureTextAdventure/internal/event"
	"github.com/Kingly77/VentureTextAdventure/internal/game/character"
	"github.com/Kingly77/VentureTextAdventure/internal/game/dice"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
	"github.com/Kingly77/VentureTextAdventure/internal/scripting"
)

// Session tracks one running game.
//
// Session is not safe for concurrent use; it is driven from the game goroutine.
type Session struct {
	// Hero is the player character.
	Hero *character.Hero
	// World indexes every loaded room.
	World *world.Manager
	// Bus couples effects, quests, and the resolver.
	Bus *event.Bus
	// Roller produces every random outcome in the game.
	Roller *dice.Roller
	// Scripts hosts the Lua VMs behind scripted effects.
	Scripts *scripting.Manager
	// Logger is the session-scoped logger.
	Logger *zap.Logger

	current *world.Room
	history []*world.Room
}

// Room returns the room the hero is in.
func (s *Session) Room() *world.Room { return s.current }

// Previous returns the room the hero came from, or nil at the start.
func (s *Session) Previous() *world.Room {
	if len(s.history) == 0 {
		return nil
	}
	return s.history[len(s.history)-1]
}

// MoveTo places the hero in room and remembers the room they left.
//
// Precondition: room must be non-nil.
// Postcondition: Room() == room; Previous() is the old room unless it was room itself.
func (s *Session) MoveTo(room *world.Room) {
	if room == nil {
		panic("session.MoveTo: room must not be nil")
	}
	if s.current != nil && s.current != room {
		s.history = append(s.history, s.current)
	}
	s.logger().Debug("hero moved",
		zap.String("hero", s.Hero.Name()),
		zap.String("room", room.ID),
	)
	s.current = room
}

// Back returns the hero to the previous room.
//
// Postcondition: Returns (room, true) and pops the history, or (nil, false) when
// there is nowhere to go back to.
func (s *Session) Back() (*world.Room, bool) {
	if len(s.history) == 0 {
		return nil, false
	}
	prev := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.current = prev
	return prev, true
}

// Close releases the script VMs.
func (s *Session) Close() {
	if s.Scripts != nil {
		s.Scripts.Close()
	}
}

func (s *Session) String() string {
	return fmt.Sprintf("%s in %s", s.Hero.Name(), s.current)
}

func (s *Session) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
