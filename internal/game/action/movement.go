package action

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Kingly77/VentureTextAdventure/internal/event"
	"github.com/Kingly77/VentureTextAdventure/internal/game/session"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
)

// RoomView is the rendered state of a room as the player sees it.
type RoomView struct {
	Title       string
	Description string
	Exits       []string
}

// ViewOf renders room for display.
func ViewOf(room *world.Room) *RoomView {
	v := &RoomView{Title: room.Title, Description: room.Description()}
	for _, e := range room.VisibleExits() {
		v.Exits = append(v.Exits, string(e.Direction))
	}
	return v
}

func (v *RoomView) String() string {
	return fmt.Sprintf("--- You are in the %s ---\n%s\n\n%s", v.Title, v.Description, exitText(v.Exits))
}

func exitText(exits []string) string {
	if len(exits) == 0 {
		return "Exits: none"
	}
	return "Exits: " + strings.Join(exits, ", ")
}

func exitLine(room *world.Room) string {
	return exitText(ViewOf(room).Exits)
}

// move walks the hero through an exit.
//
// Postcondition: On success the hero is in the destination, location_entered
// has fired, and every entry hook of the destination has run.
func (r *Resolver) move(s *session.Session, dir world.Direction) Result {
	dest, err := s.World.Navigate(s.Room(), dir)
	switch {
	case errors.Is(err, world.ErrNoExit):
		return say("You can't go that way.")
	case errors.Is(err, world.ErrRoomLocked):
		return say("The door is locked.")
	case err != nil:
		r.logger.Warn("resolver: navigation failed", zap.String("direction", string(dir)), zap.Error(err))
		return say("You can't go that way.")
	}
	from := s.Room()
	s.MoveTo(dest)
	res := Result{Moved: true}
	res.add(fmt.Sprintf("You go %s.", dir))
	res.add(r.arrive(s, from)...)
	res.View = ViewOf(s.Room())
	return res
}

func (r *Resolver) back(s *session.Session) Result {
	from := s.Room()
	if _, ok := s.Back(); !ok {
		return say("You can't go back any further.")
	}
	res := Result{Moved: true}
	res.add("You go back.")
	res.add(r.arrive(s, from)...)
	res.View = ViewOf(s.Room())
	return res
}

// arrive announces the hero in the current room: the bus hears about it
// first, then the room's effects, then the zone's on_enter script hook.
func (r *Resolver) arrive(s *session.Session, from *world.Room) []string {
	room := s.Room()
	msgs := event.Messages(r.bus.Trigger(event.LocationEntered, s.Hero, room))
	msgs = append(msgs, room.Enter(s.Hero)...)
	if s.Scripts != nil {
		prev := ""
		if from != nil {
			prev = from.ID
		}
		if msg, ok := s.Scripts.CallString(room.ZoneID, "on_enter", s.Hero.Name(), room.ID, prev); ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func (r *Resolver) look(s *session.Session, arg string) Result {
	room := s.Room()
	if arg == "" {
		return Result{View: ViewOf(room)}
	}
	if msg, ok := room.Interact("look", arg, s.Hero, nil); ok {
		return say("%s", msg)
	}
	if obj, ok := room.Object(arg); ok {
		return say("%s", obj.Description)
	}
	if it, ok := s.Hero.Inventory().Get(arg); ok && it.Description != "" {
		return say("%s", it.Description)
	}
	if it, ok := room.Items().Get(arg); ok && it.Description != "" {
		return say("%s", it.Description)
	}
	return say("You don't see any %s here.", strings.ToLower(arg))
}
