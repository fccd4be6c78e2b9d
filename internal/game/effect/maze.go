package effect

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Kingly77/VentureTextAdventure/internal/game/character"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
)

// MazeRole is a room's place in a maze.
type MazeRole string

// Maze roles.
const (
	MazeEntrance MazeRole = "entrance"
	MazeExit     MazeRole = "exit"
	MazePassage  MazeRole = "passage"
)

// Maze is a self effect hinting where in a maze the hero stands.
type Maze struct {
	world.BaseEffect
	role MazeRole
}

// NewMaze returns a Maze for role.
//
// Postcondition: Returns an error for an unknown role.
func NewMaze(role MazeRole) (*Maze, error) {
	switch role {
	case "":
		role = MazePassage
	case MazeEntrance, MazeExit, MazePassage:
	default:
		return nil, fmt.Errorf("unknown maze role %q", role)
	}
	return &Maze{role: role}, nil
}

func newMazeFromSpec(_ *world.Room, params yaml.Node, _ Deps) (world.Effect, error) {
	var opts struct {
		Role string `yaml:"role"`
	}
	if err := decodeParams(params, &opts); err != nil {
		return nil, err
	}
	return NewMaze(MazeRole(normalize(opts.Role)))
}

// Role returns the room's maze role.
func (m *Maze) Role() MazeRole { return m.role }

func (m *Maze) ModifyDescription(current string) (string, bool) {
	switch m.role {
	case MazeEntrance:
		return current + " You can sense this is where the maze begins.", true
	case MazeExit:
		return current + " There's a feeling of relief here - an exit must be nearby.", true
	}
	return current + " The twisting passages all look alike.", true
}

func (m *Maze) HandleEnter(*character.Hero) (string, bool) {
	switch m.role {
	case MazeEntrance:
		return "You have entered the maze. Find your way through!", true
	case MazeExit:
		return "You sense you're close to the exit!", true
	}
	return "", false
}

// Aura is a minimal self effect: an eerie suffix and one interaction.
type Aura struct {
	world.BaseEffect
}

func newAuraFromSpec(*world.Room, yaml.Node, Deps) (world.Effect, error) {
	return Aura{}, nil
}

func (Aura) ModifyDescription(current string) (string, bool) {
	return current + " (An eerie aura lingers here.)", true
}

func (Aura) HandleInteraction(in world.Interaction) (string, bool) {
	if in.Verb == "examine" && in.Target == "aura" {
		return "The aura hums softly as you focus on it.", true
	}
	return "", false
}

func (Aura) Help() string {
	return "examine aura"
}
