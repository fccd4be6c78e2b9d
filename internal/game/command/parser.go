package command

import (
	"fmt"
	"strings"
)

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
	// RawArgs is the raw text after the command (preserving spacing for multi-word names).
	RawArgs string
}

// Parse splits a text line into a command and arguments.
//
// Precondition: line should be trimmed of leading/trailing whitespace.
// Postcondition: Returns a ParseResult. If line is empty, Command is empty.
func Parse(line string) ParseResult {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParseResult{}
	}

	// Split at first space for the command word
	spaceIdx := strings.IndexByte(line, ' ')
	if spaceIdx < 0 {
		return ParseResult{
			Command: strings.ToLower(line),
		}
	}

	cmd := strings.ToLower(line[:spaceIdx])
	rest := line[spaceIdx+1:]
	rest = strings.TrimSpace(rest)

	var args []string
	if rest != "" {
		args = strings.Fields(rest)
	}

	return ParseResult{
		Command: cmd,
		Args:    args,
		RawArgs: rest,
	}
}

// ParseChain splits a line on " and " and parses each part. Empty parts are dropped.
//
// Postcondition: Every returned ParseResult has a non-empty Command.
func ParseChain(line string) []ParseResult {
	var out []ParseResult
	for _, part := range strings.Split(line, " and ") {
		if pr := Parse(part); pr.Command != "" {
			out = append(out, pr)
		}
	}
	return out
}

// Gag returns the joke reply for "take X and drop X".
func Gag(chain []ParseResult) (string, bool) {
	if len(chain) != 2 {
		return "", false
	}
	first, second := chain[0], chain[1]
	x := strings.ToLower(first.RawArgs)
	if first.Command != "take" || second.Command != "drop" || x == "" || x != strings.ToLower(second.RawArgs) {
		return "", false
	}
	return fmt.Sprintf("You picked up and dropped the %s.", x), true
}

// TargetKind says what a use command is aimed at.
type TargetKind int

const (
	// TargetNone means no target was given.
	TargetNone TargetKind = iota
	// TargetSelf aims at the hero.
	TargetSelf
	// TargetRoom aims at the room itself.
	TargetRoom
	// TargetObject aims at a named thing in the room.
	TargetObject
)

var (
	selfWords = map[string]bool{"self": true, "me": true, "myself": true, "yourself": true}
	roomWords = map[string]bool{"room": true, "the room": true, "this room": true}
)

// UseArgs is the parsed argument of a use or cast command.
type UseArgs struct {
	// Item is the lowercased item or spell name.
	Item string
	// Target is the lowercased target text, empty for TargetNone.
	Target string
	Kind   TargetKind
}

// ParseUse splits "X", "X on Y", or "X in Y". A target equal to heroName
// counts as the hero.
//
// Postcondition: Kind is TargetNone iff Target is empty.
func ParseUse(rawArgs, heroName string) UseArgs {
	s := strings.ToLower(strings.TrimSpace(rawArgs))
	item, target := s, ""
	for _, sep := range []string{" on ", " in "} {
		if before, after, ok := strings.Cut(s, sep); ok {
			item, target = strings.TrimSpace(before), strings.TrimSpace(after)
			break
		}
	}
	u := UseArgs{Item: item, Target: target}
	switch {
	case target == "":
		u.Kind = TargetNone
	case selfWords[target] || (heroName != "" && target == strings.ToLower(heroName)):
		u.Kind = TargetSelf
	case roomWords[target]:
		u.Kind = TargetRoom
	default:
		u.Kind = TargetObject
	}
	return u
}
