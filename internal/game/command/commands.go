// Package command provides the command registry, parser, and built-in command definitions.
package command

// Categories for organizing commands.
const (
	CategoryMovement  = "movement"
	CategoryWorld     = "world"
	CategoryItems     = "items"
	CategoryCharacter = "character"
	CategorySystem    = "system"
)

// Handler identifiers the resolver dispatches on.
const (
	HandlerMove      = "move"
	HandlerGo        = "go"
	HandlerBack      = "back"
	HandlerLook      = "look"
	HandlerExits     = "exits"
	HandlerExamine   = "examine"
	HandlerTake      = "take"
	HandlerDrop      = "drop"
	HandlerUse       = "use"
	HandlerInventory = "inventory"
	HandlerStatus    = "status"
	HandlerQuests    = "quests"
	HandlerCast      = "cast"
	HandlerInteract  = "interact"
	HandlerHelp      = "help"
	HandlerQuit      = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (movement, world, items, character, system).
	Category string
	// Handler selects the resolver routine. HandlerInteract commands are
	// passed to the room's effect chain under their canonical name.
	Handler string
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		// Movement commands
		{Name: "north", Aliases: []string{"n"}, Help: "Move north", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "south", Aliases: []string{"s"}, Help: "Move south", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "east", Aliases: []string{"e"}, Help: "Move east", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "west", Aliases: []string{"w"}, Help: "Move west", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "up", Aliases: []string{"u"}, Help: "Move up", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "down", Aliases: []string{"d"}, Help: "Move down", Category: CategoryMovement, Handler: HandlerMove},
		{Name: "go", Aliases: []string{"move", "walk"}, Help: "Move in a direction (go north, go stairs)", Category: CategoryMovement, Handler: HandlerGo},
		{Name: "back", Aliases: []string{"return"}, Help: "Return to the previous room", Category: CategoryMovement, Handler: HandlerBack},

		// World commands
		{Name: "look", Aliases: []string{"l"}, Help: "Look around the room, or at something in it", Category: CategoryWorld, Handler: HandlerLook},
		{Name: "exits", Aliases: nil, Help: "List available exits", Category: CategoryWorld, Handler: HandlerExits},
		{Name: "examine", Aliases: []string{"ex", "x"}, Help: "Examine an item, object, or something odd", Category: CategoryWorld, Handler: HandlerExamine},
		{Name: "talk", Aliases: []string{"speak"}, Help: "Talk to someone (talk <name>)", Category: CategoryWorld, Handler: HandlerInteract},
		{Name: "accept", Aliases: nil, Help: "Accept a quest from whoever offered it", Category: CategoryWorld, Handler: HandlerInteract},
		{Name: "turnin", Aliases: []string{"turn-in"}, Help: "Turn in a finished quest", Category: CategoryWorld, Handler: HandlerInteract},
		{Name: "open", Aliases: nil, Help: "Try to open something", Category: CategoryWorld, Handler: HandlerInteract},
		{Name: "disarm", Aliases: nil, Help: "Disarm a trap you have noticed", Category: CategoryWorld, Handler: HandlerInteract},
		{Name: "wave", Aliases: nil, Help: "Wave your hands about", Category: CategoryWorld, Handler: HandlerInteract},

		// Item commands
		{Name: "take", Aliases: []string{"get", "grab"}, Help: "Pick up an item (take <item> [quantity])", Category: CategoryItems, Handler: HandlerTake},
		{Name: "drop", Aliases: nil, Help: "Drop an item (drop <item> [quantity])", Category: CategoryItems, Handler: HandlerDrop},
		{Name: "use", Aliases: nil, Help: "Use an item (use <item> [on self|room|<object>])", Category: CategoryItems, Handler: HandlerUse},
		{Name: "inventory", Aliases: []string{"inv", "i"}, Help: "Show what you carry and your gold", Category: CategoryItems, Handler: HandlerInventory},

		// Character commands
		{Name: "status", Aliases: []string{"stats"}, Help: "Show health, mana, level, and experience", Category: CategoryCharacter, Handler: HandlerStatus},
		{Name: "quests", Aliases: []string{"journal", "q"}, Help: "Show active and completed quests", Category: CategoryCharacter, Handler: HandlerQuests},
		{Name: "cast", Aliases: []string{"c"}, Help: "Cast a spell (cast <spell> [on <target>])", Category: CategoryCharacter, Handler: HandlerCast},

		// System commands
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands and what this room offers", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit"}, Help: "Leave the game", Category: CategorySystem, Handler: HandlerQuit},
	}
}

// IsMovementCommand reports whether the command name is a movement direction.
func IsMovementCommand(name string) bool {
	switch name {
	case "north", "south", "east", "west", "up", "down":
		return true
	default:
		return false
	}
}
