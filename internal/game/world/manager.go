package world

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Kingly77/VentureTextAdventure/internal/event"
)

var (
	// ErrNoExit is returned when a room has no exit in the requested direction.
	ErrNoExit = errors.New("no exit")
	// ErrRoomLocked is returned when the destination room is locked.
	ErrRoomLocked = errors.New("room locked")
)

// Manager indexes the loaded world for lookup by room ID.
type Manager struct {
	zones     map[string]*Zone
	rooms     map[string]*Room
	startRoom string
}

// NewManager creates a Manager from the given zones.
//
// Precondition: the first zone's start room is the global start room.
// Postcondition: Returns a Manager with all rooms indexed by ID, or an error on
// duplicate IDs or a cross-zone exit whose target is missing.
func NewManager(zones []*Zone) (*Manager, error) {
	m := &Manager{
		zones: make(map[string]*Zone, len(zones)),
		rooms: make(map[string]*Room),
	}
	for _, z := range zones {
		if _, exists := m.zones[z.ID]; exists {
			return nil, fmt.Errorf("duplicate zone ID: %q", z.ID)
		}
		m.zones[z.ID] = z
		for id, room := range z.Rooms {
			if existing, exists := m.rooms[id]; exists {
				return nil, fmt.Errorf("duplicate room ID %q: in zone %q and %q", id, existing.ZoneID, z.ID)
			}
			m.rooms[id] = room
		}
	}
	for _, z := range zones {
		for _, id := range z.RoomOrder {
			for _, exit := range z.Rooms[id].Exits {
				if exit.Zone == "" || exit.Zone == z.ID {
					continue
				}
				target, ok := m.rooms[exit.TargetRoom]
				if !ok || target.ZoneID != exit.Zone {
					return nil, fmt.Errorf("zone %q: room %q: exit %q targets unknown room %q in zone %q",
						z.ID, id, exit.Direction, exit.TargetRoom, exit.Zone)
				}
			}
		}
	}
	if len(zones) > 0 {
		m.startRoom = zones[0].StartRoom
	}
	return m, nil
}

// GetRoom returns the room with the given ID.
func (m *Manager) GetRoom(id string) (*Room, bool) {
	r, ok := m.rooms[id]
	return r, ok
}

// Navigate resolves movement from a room in a direction.
//
// Postcondition: Returns the destination room, or an error wrapping ErrNoExit
// or ErrRoomLocked.
func (m *Manager) Navigate(from *Room, dir Direction) (*Room, error) {
	exit, ok := from.ExitForDirection(dir)
	if !ok {
		return nil, fmt.Errorf("leaving %q toward %s: %w", from.ID, dir, ErrNoExit)
	}
	target, ok := m.rooms[exit.TargetRoom]
	if !ok {
		return nil, fmt.Errorf("exit %q from %q targets unknown room %q", dir, from.ID, exit.TargetRoom)
	}
	if target.Locked {
		return nil, fmt.Errorf("entering %q: %w", target.ID, ErrRoomLocked)
	}
	return target, nil
}

// StartRoom returns the global start room, or nil if the world is empty.
func (m *Manager) StartRoom() *Room {
	if m.startRoom == "" {
		return nil
	}
	return m.rooms[m.startRoom]
}

// RoomCount returns the total number of rooms across all zones.
func (m *Manager) RoomCount() int { return len(m.rooms) }

// ZoneCount returns the number of loaded zones.
func (m *Manager) ZoneCount() int { return len(m.zones) }

// AllZones returns all loaded zones sorted by ID.
func (m *Manager) AllZones() []*Zone {
	zones := make([]*Zone, 0, len(m.zones))
	for _, z := range m.zones {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].ID < zones[j].ID })
	return zones
}

// BindEvents subscribes every zone event binding on bus. A binding unlocks or
// locks its room when the event fires and contributes its message, if any,
// to the trigger results.
//
// Precondition: every binding names a room known to m.
// Postcondition: Returns the registrations created, in binding order.
func (m *Manager) BindEvents(bus *event.Bus, logger *zap.Logger) ([]*event.Registration, error) {
	var regs []*event.Registration
	for _, z := range m.AllZones() {
		for _, b := range z.Bindings {
			room, ok := m.rooms[b.Room]
			if !ok {
				return nil, fmt.Errorf("binding %q: unknown room %q", b.Event, b.Room)
			}
			regs = append(regs, bus.SubscribeDescribed(b.Event, fmt.Sprintf("%s %s", b.Action, room.ID), bindingHandler(b, room, logger), b.OneTime))
		}
	}
	return regs, nil
}

func bindingHandler(b EventBinding, room *Room, logger *zap.Logger) event.Handler {
	return func(args ...any) (any, error) {
		switch b.Action {
		case ActionUnlock:
			if !room.Unlock() {
				return nil, nil
			}
		case ActionLock:
			room.Lock()
		}
		logger.Debug("event binding applied",
			zap.String("event", b.Event),
			zap.String("room", room.ID),
			zap.String("action", string(b.Action)),
		)
		if b.Message == "" {
			return nil, nil
		}
		return b.Message, nil
	}
}
