package action

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Kingly77/VentureTextAdventure/internal/game/character"
	"github.com/Kingly77/VentureTextAdventure/internal/game/command"
	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
	"github.com/Kingly77/VentureTextAdventure/internal/game/session"
)

func statusReport(s *session.Session) Result {
	h := s.Hero
	return say("%s - Level %d\nHealth: %d/%d\nMana: %d/%d\nXP: %d/%d\nGold: %s",
		h.Name(), h.Level(),
		h.Health(), h.MaxHealth(),
		h.Mana(), h.MaxMana(),
		h.XP(), h.XPToNextLevel(),
		inventory.FormatGold(h.Wallet().Balance()),
	)
}

func questReport(s *session.Session) Result {
	log := s.Hero.QuestLog()
	active, done := log.Active(), log.CompletedQuests()
	if len(active) == 0 && len(done) == 0 {
		return say("You have no quests.")
	}
	var b strings.Builder
	b.WriteString("Active quests:")
	if len(active) == 0 {
		b.WriteString("\n  (none)")
	}
	for _, q := range active {
		fmt.Fprintf(&b, "\n  %s", q)
	}
	if len(done) > 0 {
		b.WriteString("\nCompleted quests:")
		for _, name := range done {
			fmt.Fprintf(&b, "\n  %s", name)
		}
	}
	return say("%s", b.String())
}

// cast handles "cast", "cast <spell>", and "cast <spell> on <target>".
// Spells aimed at something in the room go to the room's effects; the spell
// name rides along as the interaction item.
func (r *Resolver) cast(s *session.Session, arg string) Result {
	u := command.ParseUse(arg, s.Hero.Name())
	if u.Item == "" {
		return spellbook(s.Hero)
	}
	switch u.Kind {
	case command.TargetObject, command.TargetRoom:
		spell := &inventory.Item{Name: u.Item, Quantity: 1, Tags: []string{"spell"}}
		if msg, ok := s.Room().Interact("cast", u.Target, s.Hero, spell); ok {
			return say("%s", msg)
		}
		return say("You can't cast %s on the %s.", u.Item, u.Target)
	}
	msg, err := s.Hero.CastSpell(u.Item, nil)
	switch {
	case errors.Is(err, character.ErrSpellNotFound):
		return say("You don't know a spell called %q.", u.Item)
	case errors.Is(err, character.ErrInsufficientMana):
		return say("You don't have enough mana to cast %s.", u.Item)
	case errors.Is(err, character.ErrNoTarget):
		return say("%s needs a target.", u.Item)
	case err != nil:
		r.logger.Warn("resolver: cast failed", zap.String("spell", u.Item), zap.Error(err))
		return say("The spell fizzles.")
	}
	return say("%s", msg)
}

func spellbook(h *character.Hero) Result {
	var b strings.Builder
	b.WriteString("You know these spells:")
	for _, sp := range h.Spells() {
		fmt.Fprintf(&b, "\n  %s (%d mana)", sp.Name, sp.Cost)
	}
	return say("%s", b.String())
}
