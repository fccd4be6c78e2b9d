package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Kingly77/VentureTextAdventure/internal/event"
	"github.com/Kingly77/VentureTextAdventure/internal/game/character"
	"github.com/Kingly77/VentureTextAdventure/internal/game/dice"
	"github.com/Kingly77/VentureTextAdventure/internal/game/effect"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
	"github.com/Kingly77/VentureTextAdventure/internal/scripting"
)

// DefaultHeroName names the hero when neither options nor zones do.
const DefaultHeroName = "Hero"

// Options tune how a session is built from loaded zones.
type Options struct {
	// HeroName overrides the hero name declared by the zones.
	HeroName string
	// HeroLevel overrides the declared level when > 0.
	HeroLevel int
	// StartingGold overrides the declared gold when > 0.
	StartingGold int
	// ScriptInstructionLimit bounds each Lua hook call for zones that set no limit.
	ScriptInstructionLimit int
	// Source drives every dice roll. nil selects a crypto-backed source.
	Source dice.Source
	// Effects builds the room effects. nil selects effect.DefaultRegistry().
	Effects *effect.Registry
}

// Load reads zone files and builds a session from them.
//
// Precondition: at least one path; logger must be non-nil.
// Postcondition: Returns a ready Session or the first load error.
func Load(paths []string, opts Options, logger *zap.Logger) (*Session, error) {
	if len(paths) == 0 {
		return nil, errors.New("session: no world files given")
	}
	zones := make([]*world.Zone, 0, len(paths))
	for _, p := range paths {
		z, err := world.LoadZoneFromFile(p, logger)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return New(zones, opts, logger)
}

// New wires a session around already loaded zones: it creates the bus and
// roller, loads zone scripts, attaches every declared effect, binds zone
// events, builds the hero, and places the hero in the start room without
// running entry hooks.
//
// Precondition: zones must be validated; logger must be non-nil.
// Postcondition: Returns a Session whose Room() is the world's start room.
func New(zones []*world.Zone, opts Options, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		panic("session.New: logger must not be nil")
	}
	mgr, err := world.NewManager(zones)
	if err != nil {
		return nil, fmt.Errorf("session: indexing world: %w", err)
	}
	start := mgr.StartRoom()
	if start == nil {
		return nil, errors.New("session: world has no start room")
	}

	src := opts.Source
	if src == nil {
		src = dice.NewCryptoSource()
	}
	s := &Session{
		World:  mgr,
		Bus:    event.NewBus(logger),
		Logger: logger,
	}
	s.Roller = dice.NewRoller(src, logger)
	s.Scripts = scripting.NewManager(s.Roller, logger)
	s.wireScripts()

	for _, z := range mgr.AllZones() {
		if z.ScriptDir == "" {
			continue
		}
		limit := z.ScriptInstructionLimit
		if limit == 0 {
			limit = opts.ScriptInstructionLimit
		}
		if err := s.Scripts.LoadZone(z.ID, z.ScriptDir, limit); err != nil {
			s.Close()
			return nil, fmt.Errorf("session: %w", err)
		}
	}

	reg := opts.Effects
	if reg == nil {
		reg = effect.DefaultRegistry()
	}
	if _, err := reg.Apply(mgr, effect.Deps{
		Bus:     s.Bus,
		Roller:  s.Roller,
		World:   mgr,
		Scripts: s.Scripts,
		Logger:  logger,
	}); err != nil {
		s.Close()
		return nil, fmt.Errorf("session: attaching effects: %w", err)
	}
	if _, err := mgr.BindEvents(s.Bus, logger); err != nil {
		s.Close()
		return nil, fmt.Errorf("session: binding events: %w", err)
	}

	hero, err := buildHero(zones, opts, s.Bus, logger)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Hero = hero
	s.current = start

	logger.Info("session started",
		zap.String("hero", hero.Name()),
		zap.Int("zones", mgr.ZoneCount()),
		zap.Int("rooms", mgr.RoomCount()),
		zap.String("start", start.ID),
	)
	return s, nil
}

// wireScripts connects the engine.* Lua modules to this session.
// Events triggered from Lua carry the hero first, then the string arguments.
func (s *Session) wireScripts() {
	s.Scripts.TriggerEvent = func(name string, args ...string) []string {
		payload := make([]any, 0, len(args)+1)
		payload = append(payload, s.Hero)
		for _, a := range args {
			payload = append(payload, a)
		}
		return event.Messages(s.Bus.Trigger(name, payload...))
	}
	s.Scripts.SetRoomLocked = func(roomID string, locked bool) bool {
		room, ok := s.World.GetRoom(roomID)
		if !ok {
			return false
		}
		if locked {
			room.Lock()
		} else {
			room.Unlock()
		}
		return true
	}
	s.Scripts.QueryRoom = func(roomID string) *scripting.RoomInfo {
		room, ok := s.World.GetRoom(roomID)
		if !ok {
			return nil
		}
		return &scripting.RoomInfo{ID: room.ID, Title: room.Title, Locked: room.Locked}
	}
}

// buildHero creates the hero from the first zone that declares one, with
// opts taking precedence. Starting items come from the declaring zone's catalog.
func buildHero(zones []*world.Zone, opts Options, bus *event.Bus, logger *zap.Logger) (*character.Hero, error) {
	var cfg world.HeroConfig
	var from *world.Zone
	for _, z := range zones {
		if z.Hero.Name != "" || len(z.Hero.Items) > 0 || z.Hero.Gold > 0 {
			cfg, from = z.Hero, z
			break
		}
	}

	name := cfg.Name
	if opts.HeroName != "" {
		name = opts.HeroName
	}
	if name == "" {
		name = DefaultHeroName
	}
	level := max(cfg.Level, 1)
	if opts.HeroLevel > 0 {
		level = opts.HeroLevel
	}
	gold := cfg.Gold
	if opts.StartingGold > 0 {
		gold = opts.StartingGold
	}

	hero, err := character.NewHero(name, level, bus, logger)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if err := hero.Wallet().Add(gold); err != nil {
		return nil, fmt.Errorf("session: starting gold: %w", err)
	}
	if from == nil {
		return hero, nil
	}
	for _, ref := range cfg.Items {
		stack, err := from.Catalog.NewStack(ref.Name, ref.Quantity)
		if err != nil {
			return nil, fmt.Errorf("session: zone %q starting items: %w", from.ID, err)
		}
		if err := hero.Inventory().Add(stack); err != nil {
			return nil, fmt.Errorf("session: zone %q starting items: %w", from.ID, err)
		}
	}
	return hero, nil
}
