package effect

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Kingly77/VentureTextAdventure/internal/event"
	"github.com/Kingly77/VentureTextAdventure/internal/game/character"
	"github.com/Kingly77/VentureTextAdventure/internal/game/quest"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
)

// NPCDialogOptions configures an NPCDialog.
type NPCDialogOptions struct {
	Name        string `yaml:"npc_name"`
	Description string `yaml:"npc_description"`
	Greeting    string `yaml:"greeting"`
	// Quest is offered when set. It is created fresh each time it is accepted.
	Quest *QuestOptions `yaml:"quest"`
}

// QuestOptions is the zone file form of a quest definition.
type QuestOptions struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Reward      int    `yaml:"reward"`
	Objective   struct {
		Type     string `yaml:"type"`
		Target   string `yaml:"target"`
		Required int    `yaml:"required"`
	} `yaml:"objective"`
}

// Definition converts the options into a quest definition.
func (o QuestOptions) Definition() quest.Definition {
	return quest.Definition{
		Name:        o.Name,
		Description: o.Description,
		Reward:      o.Reward,
		Objective: quest.Objective{
			Type:     quest.ObjectiveType(normalize(o.Objective.Type)),
			Target:   o.Objective.Target,
			Required: o.Objective.Required,
		},
	}
}

// NPCDialog places an NPC in its room who talks, offers a quest, and takes
// it back once finished.
//
// Verbs: talk, accept, turnin. Each takes an optional target naming the NPC.
type NPCDialog struct {
	world.BaseEffect
	name     string
	greeting string
	def      *quest.Definition
	bus      *event.Bus
	logger   *zap.Logger
}

// NewNPCDialog adds the NPC to room. The quest, if any, is validated now and
// instantiated lazily on accept.
//
// Postcondition: Returns an error for an invalid quest definition or a
// duplicate NPC in room.
func NewNPCDialog(room *world.Room, opts NPCDialogOptions, bus *event.Bus, logger *zap.Logger) (*NPCDialog, error) {
	if opts.Name == "" {
		opts.Name = "Quest Giver"
	}
	if opts.Description == "" {
		opts.Description = "is here."
	}
	if opts.Greeting == "" {
		opts.Greeting = fmt.Sprintf("%s nods at you.", opts.Name)
	}
	n := &NPCDialog{name: opts.Name, greeting: opts.Greeting, bus: bus, logger: logger}
	if opts.Quest != nil {
		def := opts.Quest.Definition()
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("npc %q: %w", opts.Name, err)
		}
		n.def = &def
	}
	if err := room.AddNPC(world.NPC{Name: opts.Name, ShortDescription: opts.Description}); err != nil {
		return nil, err
	}
	return n, nil
}

func newNPCDialogFromSpec(room *world.Room, params yaml.Node, deps Deps) (world.Effect, error) {
	var opts NPCDialogOptions
	if err := decodeParams(params, &opts); err != nil {
		return nil, err
	}
	return NewNPCDialog(room, opts, deps.Bus, deps.Logger)
}

func (n *NPCDialog) addressed(target string) bool {
	switch target {
	case "", "npc", "villager", "quest giver", strings.ToLower(n.name):
		return true
	}
	return n.def != nil && target == normalize(n.def.Name)
}

func (n *NPCDialog) HandleInteraction(in world.Interaction) (string, bool) {
	if !n.addressed(in.Target) {
		return "", false
	}
	switch in.Verb {
	case "talk":
		return n.talk(), true
	case "accept":
		if n.def == nil || in.Hero == nil {
			return "", false
		}
		return n.accept(in.Hero), true
	case "turnin":
		if n.def == nil || in.Hero == nil {
			return "", false
		}
		return n.turnIn(in.Hero), true
	}
	return "", false
}

func (n *NPCDialog) talk() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You approach %s.\n%s", n.name, n.greeting)
	if n.def != nil {
		fmt.Fprintf(&b, "\nSay 'accept' to take the quest '%s', or 'turnin' to turn it in.", n.def.Name)
	}
	return b.String()
}

func (n *NPCDialog) accept(h *character.Hero) string {
	log := h.QuestLog()
	if _, ok := log.FindByName(n.def.Name); ok {
		return fmt.Sprintf("You already have the %s quest.", n.def.Name)
	}
	if log.HasCompleted(n.def.Name) {
		return fmt.Sprintf("You have already completed the %s quest.", n.def.Name)
	}
	q, err := quest.New(n.bus, *n.def, n.logger)
	if err == nil {
		err = log.Add(q)
	}
	if err != nil {
		n.logger.Warn("quest offer failed",
			zap.String("npc", n.name),
			zap.String("quest", n.def.Name),
			zap.Error(err),
		)
		if q != nil {
			q.Retire()
		}
		return fmt.Sprintf("%s cannot offer that quest right now.", n.name)
	}
	return fmt.Sprintf("Quest accepted! (%s) %s - %s", q.ID(), q.Name(), q.Description())
}

func (n *NPCDialog) turnIn(h *character.Hero) string {
	log := h.QuestLog()
	q, ok := log.FindByName(n.def.Name)
	if !ok {
		return fmt.Sprintf("You do not have the %s quest active.", n.def.Name)
	}
	level := h.Level()
	done, err := log.CompleteQuest(q.ID(), h)
	if err != nil {
		return fmt.Sprintf("You do not have the %s quest active.", n.def.Name)
	}
	if !done {
		return fmt.Sprintf("%s says: 'You have not finished %s yet.'", n.name, q.Name())
	}
	msg := fmt.Sprintf("Quest turned in: %s. You gain %d XP.", q.Name(), q.Reward())
	if h.Level() > level {
		msg += fmt.Sprintf(" You are now level %d!", h.Level())
	}
	return msg
}

func (n *NPCDialog) Help() string {
	if n.def == nil {
		return fmt.Sprintf("talk %s: chat", strings.ToLower(n.name))
	}
	return fmt.Sprintf("talk %s: chat; accept: take the '%s' quest; turnin: hand it in", strings.ToLower(n.name), n.def.Name)
}
