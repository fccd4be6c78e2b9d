// Package action resolves player commands against a session. Room effects
// get the first say on every action; the default rules only handle what no
// effect claimed.
package action

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Kingly77/VentureTextAdventure/internal/event"
	"github.com/Kingly77/VentureTextAdventure/internal/game/command"
	"github.com/Kingly77/VentureTextAdventure/internal/game/session"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
)

// Player-facing fallbacks.
const (
	MsgUnknownCommand = "Unknown command. Try 'help' for a list of commands."
	MsgSomethingWrong = "Something went wrong. Try something else."
	MsgGameOver       = "You have fallen. Game Over! Thanks for playing."
	MsgGoodbye        = "Goodbye!"
)

// Request is one player command: a verb and the raw text after it.
type Request struct {
	Verb string
	Arg  string
}

// Result is what a command produced.
type Result struct {
	// Messages are the lines to show, in order.
	Messages []string
	// Moved is true when the hero changed rooms.
	Moved bool
	// Quit is true when the game should end.
	Quit bool
	// View is the room to render after Messages, set by look and by movement.
	View *RoomView
}

func (r *Result) add(msgs ...string) {
	for _, m := range msgs {
		if m != "" {
			r.Messages = append(r.Messages, m)
		}
	}
}

func (r *Result) merge(other Result) {
	r.Messages = append(r.Messages, other.Messages...)
	r.Moved = r.Moved || other.Moved
	r.Quit = r.Quit || other.Quit
	if other.View != nil {
		r.View = other.View
	}
}

func say(format string, args ...any) Result {
	return Result{Messages: []string{fmt.Sprintf(format, args...)}}
}

// Resolver turns requests into results.
type Resolver struct {
	bus    *event.Bus
	cmds   *command.Registry
	logger *zap.Logger
}

// NewResolver creates a Resolver. A nil registry selects command.DefaultRegistry().
//
// Precondition: bus and logger must be non-nil.
func NewResolver(bus *event.Bus, cmds *command.Registry, logger *zap.Logger) *Resolver {
	if bus == nil {
		panic("action.NewResolver: bus must not be nil")
	}
	if logger == nil {
		panic("action.NewResolver: logger must not be nil")
	}
	if cmds == nil {
		cmds = command.DefaultRegistry()
	}
	return &Resolver{bus: bus, cmds: cmds, logger: logger}
}

// Resolve runs one command and then ends the turn by triggering
// event.TurnEnded. A panic anywhere below is recovered and logged.
//
// Postcondition: Never panics. Quit is set when the hero asked to leave or died.
func (r *Resolver) Resolve(s *session.Session, req Request) (res Result) {
	verb := strings.ToLower(strings.TrimSpace(req.Verb))
	arg := strings.TrimSpace(req.Arg)
	if verb == "" {
		return Result{}
	}
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("resolver: recovered from panic",
				zap.String("verb", verb),
				zap.String("arg", arg),
				zap.Any("panic", p),
			)
			res = say(MsgSomethingWrong)
		}
	}()

	res = r.dispatch(s, verb, arg)
	if res.Quit {
		return res
	}
	res.add(event.Messages(r.bus.Trigger(event.TurnEnded, s.Hero, s.Room()))...)
	if !s.Hero.Alive() {
		r.logger.Info("hero died", zap.String("hero", s.Hero.Name()), zap.String("room", s.Room().ID))
		res.add(MsgGameOver)
		res.Quit = true
	}
	return res
}

// ResolveLine resolves every command chained in line with " and ", stopping
// at the first one that quits. "take X and drop X" only earns a remark.
func (r *Resolver) ResolveLine(s *session.Session, line string) Result {
	chain := command.ParseChain(line)
	if msg, ok := command.Gag(chain); ok {
		return say("%s", msg)
	}
	var out Result
	for _, pr := range chain {
		out.merge(r.Resolve(s, Request{Verb: pr.Command, Arg: pr.RawArgs}))
		if out.Quit {
			break
		}
	}
	return out
}

func (r *Resolver) dispatch(s *session.Session, verb, arg string) Result {
	cmd, ok := r.cmds.Resolve(verb)
	if !ok {
		if msg, ok := s.Room().Interact(verb, arg, s.Hero, nil); ok {
			return say("%s", msg)
		}
		return say(MsgUnknownCommand)
	}
	switch cmd.Handler {
	case command.HandlerMove:
		return r.move(s, world.Direction(cmd.Name))
	case command.HandlerGo:
		if arg == "" {
			return say("Go where?")
		}
		return r.move(s, world.ParseDirection(arg))
	case command.HandlerBack:
		return r.back(s)
	case command.HandlerLook:
		return r.look(s, arg)
	case command.HandlerExits:
		return say("%s", exitLine(s.Room()))
	case command.HandlerExamine:
		return r.examine(s, arg)
	case command.HandlerTake:
		return r.take(s, arg)
	case command.HandlerDrop:
		return r.drop(s, arg)
	case command.HandlerUse:
		return r.use(s, arg)
	case command.HandlerInventory:
		return inventoryReport(s)
	case command.HandlerStatus:
		return statusReport(s)
	case command.HandlerQuests:
		return questReport(s)
	case command.HandlerCast:
		return r.cast(s, arg)
	case command.HandlerInteract:
		return r.interact(s, cmd.Name, arg)
	case command.HandlerHelp:
		return r.help(s)
	case command.HandlerQuit:
		return Result{Messages: []string{MsgGoodbye}, Quit: true}
	default:
		r.logger.Warn("resolver: command has no handler",
			zap.String("command", cmd.Name),
			zap.String("handler", cmd.Handler),
		)
		return say(MsgUnknownCommand)
	}
}

// interact hands a registered interaction verb to the room's effects.
func (r *Resolver) interact(s *session.Session, verb, arg string) Result {
	if msg, ok := s.Room().Interact(verb, arg, s.Hero, nil); ok {
		return say("%s", msg)
	}
	if arg == "" {
		return say("Nothing here responds to that.")
	}
	return say("You can't %s the %s here.", verb, strings.ToLower(arg))
}

func (r *Resolver) help(s *session.Session) Result {
	res := say("%s", r.cmds.HelpText())
	if extra := s.Room().Help(); len(extra) > 0 {
		res.add("Here you can also:\n  " + strings.Join(extra, "\n  "))
	}
	return res
}
