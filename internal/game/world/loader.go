package world

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
)

// yamlZoneFile is the top-level YAML structure for zone files.
type yamlZoneFile struct {
	Zone yamlZone `yaml:"zone"`
}

// yamlZone is the YAML representation of a zone.
type yamlZone struct {
	ID                     string        `yaml:"id"`
	Name                   string        `yaml:"name"`
	Description            string        `yaml:"description"`
	StartRoom              string        `yaml:"start_room"`
	ScriptDir              string        `yaml:"script_dir"`
	ScriptInstructionLimit int           `yaml:"script_instruction_limit"`
	Items                  []yamlItem    `yaml:"items"`
	Hero                   yamlHero      `yaml:"hero"`
	Rooms                  []yamlRoom    `yaml:"rooms"`
	Events                 []yamlBinding `yaml:"events"`
}

// yamlItem is the YAML representation of a catalog item.
type yamlItem struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Cost        int      `yaml:"cost"`
	Usable      bool     `yaml:"usable"`
	Effect      string   `yaml:"effect"`
	EffectValue int      `yaml:"effect_value"`
	Consumable  bool     `yaml:"consumable"`
	Tags        []string `yaml:"tags"`
}

// yamlItemRef is a catalog reference with a quantity.
type yamlItemRef struct {
	Name     string `yaml:"name"`
	Quantity int    `yaml:"quantity"`
}

// yamlHero is the YAML representation of the starting hero.
type yamlHero struct {
	Name  string        `yaml:"name"`
	Level int           `yaml:"level"`
	Gold  int           `yaml:"gold"`
	Items []yamlItemRef `yaml:"items"`
}

// yamlRoom is the YAML representation of a room.
type yamlRoom struct {
	ID          string            `yaml:"id"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Locked      bool              `yaml:"locked"`
	Exits       []yamlExit        `yaml:"exits"`
	Items       []yamlItemRef     `yaml:"items"`
	Objects     []yamlObject      `yaml:"objects"`
	Properties  map[string]string `yaml:"properties"`
	Effects     []yamlEffect      `yaml:"effects"`
}

// yamlExit is the YAML representation of an exit. Back names the direction
// of an automatically created return exit.
type yamlExit struct {
	Direction string `yaml:"direction"`
	Target    string `yaml:"target"`
	Hidden    bool   `yaml:"hidden"`
	Back      string `yaml:"back"`
	Zone      string `yaml:"zone"`
}

// yamlObject is the YAML representation of a room fixture.
type yamlObject struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

// yamlEffect is the YAML representation of a room effect.
type yamlEffect struct {
	Kind   string    `yaml:"kind"`
	Params yaml.Node `yaml:"params"`
}

// yamlBinding is the YAML representation of an event binding.
type yamlBinding struct {
	Name    string `yaml:"name"`
	Room    string `yaml:"room"`
	Action  string `yaml:"action"`
	OneTime bool   `yaml:"one_time"`
	Message string `yaml:"message"`
}

// LoadZoneFromFile reads and validates a single zone YAML file. A relative
// script_dir is resolved against the file's directory.
//
// Precondition: path must point to a valid YAML zone file; logger must be non-nil.
// Postcondition: Returns a validated Zone or a non-nil error.
func LoadZoneFromFile(path string, logger *zap.Logger) (*Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading zone file %s: %w", path, err)
	}
	zone, err := LoadZoneFromBytes(data, logger)
	if err != nil {
		return nil, fmt.Errorf("loading zone file %s: %w", path, err)
	}
	if zone.ScriptDir != "" && !filepath.IsAbs(zone.ScriptDir) {
		zone.ScriptDir = filepath.Join(filepath.Dir(path), zone.ScriptDir)
	}
	return zone, nil
}

// LoadZoneFromBytes parses and validates a zone from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the zone schema.
// Postcondition: Returns a validated Zone or a non-nil error.
func LoadZoneFromBytes(data []byte, logger *zap.Logger) (*Zone, error) {
	var file yamlZoneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing zone YAML: %w", err)
	}

	zone, err := convertYAMLZone(file.Zone, logger)
	if err != nil {
		return nil, err
	}
	if err := zone.Validate(); err != nil {
		return nil, fmt.Errorf("validating zone: %w", err)
	}
	return zone, nil
}

// convertYAMLZone converts the parsed YAML structures into domain types.
func convertYAMLZone(yz yamlZone, logger *zap.Logger) (*Zone, error) {
	zone := &Zone{
		ID:                     yz.ID,
		Name:                   yz.Name,
		Description:            strings.TrimSpace(yz.Description),
		StartRoom:              yz.StartRoom,
		ScriptDir:              yz.ScriptDir,
		ScriptInstructionLimit: yz.ScriptInstructionLimit,
		Rooms:                  make(map[string]*Room, len(yz.Rooms)),
		Catalog:                inventory.NewCatalog(),
		Effects:                make(map[string][]EffectSpec),
	}

	for _, yi := range yz.Items {
		tmpl := &inventory.Item{
			Name:        yi.Name,
			Description: strings.TrimSpace(yi.Description),
			Cost:        yi.Cost,
			Usable:      yi.Usable,
			Effect:      inventory.EffectKind(strings.ToLower(yi.Effect)),
			EffectValue: yi.EffectValue,
			Consumable:  yi.Consumable,
			Tags:        yi.Tags,
			Quantity:    1,
		}
		if err := zone.Catalog.Register(tmpl); err != nil {
			return nil, fmt.Errorf("zone %q: %w", yz.ID, err)
		}
	}

	zone.Hero = HeroConfig{Name: yz.Hero.Name, Level: yz.Hero.Level, Gold: yz.Hero.Gold}
	for _, ref := range yz.Hero.Items {
		zone.Hero.Items = append(zone.Hero.Items, ItemRef{Name: ref.Name, Quantity: quantityOrOne(ref.Quantity)})
	}

	for _, yr := range yz.Rooms {
		if _, dup := zone.Rooms[yr.ID]; dup {
			return nil, fmt.Errorf("zone %q: duplicate room %q", yz.ID, yr.ID)
		}
		room := NewRoom(yr.ID, yr.Title, yr.Description, logger)
		room.ZoneID = yz.ID
		room.Locked = yr.Locked
		for k, v := range yr.Properties {
			room.Properties[k] = v
		}
		for _, ref := range yr.Items {
			stack, err := zone.Catalog.NewStack(ref.Name, quantityOrOne(ref.Quantity))
			if err != nil {
				return nil, fmt.Errorf("zone %q: room %q: %w", yz.ID, yr.ID, err)
			}
			if err := room.AddItem(stack); err != nil {
				return nil, err
			}
		}
		for _, yo := range yr.Objects {
			obj := &Object{Name: yo.Name, Description: strings.TrimSpace(yo.Description), Tags: yo.Tags}
			if err := room.AddObject(obj); err != nil {
				return nil, fmt.Errorf("zone %q: %w", yz.ID, err)
			}
		}
		for _, ye := range yr.Effects {
			if ye.Kind == "" {
				return nil, fmt.Errorf("zone %q: room %q: effect kind must not be empty", yz.ID, yr.ID)
			}
			zone.Effects[yr.ID] = append(zone.Effects[yr.ID], EffectSpec{Kind: ye.Kind, Params: ye.Params})
		}
		zone.Rooms[room.ID] = room
		zone.RoomOrder = append(zone.RoomOrder, room.ID)
	}

	// Exits are wired after all rooms exist so return exits can be added.
	for _, yr := range yz.Rooms {
		room := zone.Rooms[yr.ID]
		for _, ye := range yr.Exits {
			if ye.Target == "" {
				return nil, fmt.Errorf("zone %q: room %q: exit %q has empty target", yz.ID, yr.ID, ye.Direction)
			}
			room.Exits = append(room.Exits, Exit{
				Direction:  ParseDirection(ye.Direction),
				TargetRoom: ye.Target,
				Hidden:     ye.Hidden,
				Zone:       ye.Zone,
			})
			if ye.Back == "" || (ye.Zone != "" && ye.Zone != yz.ID) {
				continue
			}
			target, ok := zone.Rooms[ye.Target]
			if !ok {
				return nil, fmt.Errorf("zone %q: room %q: exit %q targets unknown room %q", yz.ID, yr.ID, ye.Direction, ye.Target)
			}
			back := ParseDirection(ye.Back)
			if _, exists := target.ExitForDirection(back); !exists {
				target.AddExit(back, room.ID)
			}
		}
	}

	for _, yb := range yz.Events {
		zone.Bindings = append(zone.Bindings, EventBinding{
			Event:   yb.Name,
			Room:    yb.Room,
			Action:  BindingAction(strings.ToLower(yb.Action)),
			OneTime: yb.OneTime,
			Message: strings.TrimSpace(yb.Message),
		})
	}

	return zone, nil
}

func quantityOrOne(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}
