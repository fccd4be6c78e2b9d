// Package cli runs the game in a terminal: it reads lines, resolves them
// against the session, and prints what happened.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Kingly77/VentureTextAdventure/internal/game/action"
	"github.com/Kingly77/VentureTextAdventure/internal/game/session"
)

// DefaultPrompt is printed before each command when none is configured.
const DefaultPrompt = "> "

// CLI handles terminal interaction with the player.
type CLI struct {
	Session  *session.Session
	Resolver *action.Resolver
	In       io.Reader
	Out      io.Writer
	Prompt   string
	// Plain disables styling.
	Plain  bool
	Logger *zap.Logger

	stopped atomic.Bool
}

// New creates a CLI reading stdin and writing stdout.
//
// Precondition: s and r must be non-nil.
func New(s *session.Session, r *action.Resolver, logger *zap.Logger) *CLI {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CLI{
		Session:  s,
		Resolver: r,
		In:       os.Stdin,
		Out:      os.Stdout,
		Prompt:   DefaultPrompt,
		Logger:   logger,
	}
}

// Run greets the hero, shows the starting room, then loops:
// prompt, read, resolve, print. It returns when the game quits, the input
// ends, or Stop is called.
//
// Postcondition: Returns nil unless reading the input failed.
func (c *CLI) Run() error {
	c.printLine(fmt.Sprintf("Welcome, %s!", c.Session.Hero.Name()))
	c.printView(action.ViewOf(c.Session.Room()))

	scanner := bufio.NewScanner(c.In)
	for !c.stopped.Load() {
		c.printPrompt()
		if !scanner.Scan() || c.stopped.Load() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// "/quit" and friends are the plain verbs.
		line = strings.TrimPrefix(line, "/")
		res := c.Resolver.ResolveLine(c.Session, line)
		c.printResult(res)
		if res.Quit {
			c.Logger.Debug("cli: game over", zap.String("input", line))
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cli: reading input: %w", err)
	}
	return nil
}

// Start runs the loop as a server.Service.
func (c *CLI) Start() error { return c.Run() }

// Stop makes Run return before its next prompt.
func (c *CLI) Stop() { c.stopped.Store(true) }

func (c *CLI) printResult(res action.Result) {
	for _, msg := range res.Messages {
		c.printLine(msg)
	}
	if res.View != nil {
		c.printView(res.View)
	}
}

func (c *CLI) printView(v *action.RoomView) {
	c.printLine("")
	c.printLine(v.String())
}

func (c *CLI) printPrompt() {
	prompt := c.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	if !c.Plain {
		prompt = stylePrompt.Render(prompt)
	}
	fmt.Fprint(c.Out, prompt)
}

func (c *CLI) printLine(text string) {
	if c.Plain {
		fmt.Fprintln(c.Out, text)
		return
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = styleLine(l)
		}
	}
	fmt.Fprintln(c.Out, strings.Join(lines, "\n"))
}
