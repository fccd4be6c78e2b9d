package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	styleRoomDesc = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleQuest = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	stylePrompt = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))
)

type lineKind int

const (
	kindText lineKind = iota
	kindTitle
	kindExits
	kindQuest
	kindError
	kindSystem
)

func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "--- You are in the"):
		return kindTitle
	case strings.HasPrefix(line, "Exits:"):
		return kindExits
	case strings.HasPrefix(line, "Quest complete:"),
		strings.Contains(line, " made progress in "),
		strings.HasPrefix(line, "Quest accepted"):
		return kindQuest
	case strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "You don't"),
		strings.HasPrefix(line, "There is no"),
		strings.HasPrefix(line, "Unknown command"):
		return kindError
	case strings.HasPrefix(line, "You have fallen"),
		strings.HasPrefix(line, "Goodbye"):
		return kindSystem
	default:
		return kindText
	}
}

// styleLine renders one output line. Multi-line messages are styled line by
// line so a status report or help listing keeps its layout.
func styleLine(line string) string {
	switch classifyLine(line) {
	case kindTitle:
		return styleTitle.Render(line)
	case kindExits:
		return styleExits.Render(line)
	case kindQuest:
		return styleQuest.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	default:
		return styleRoomDesc.Render(line)
	}
}
