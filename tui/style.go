package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleRoomDesc = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeading = lipgloss.NewStyle().
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleParty = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78"))

	styleEnemies = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("215"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindRoomDesc lineKind = iota
	kindHeading
	kindExits
	kindParty
	kindEnemies
	kindDialogue
	kindCombat
	kindSystem
	kindError
)

var exitSuffixes = []string{" is north.", " is south.", " is east.", " is west."}

var combatVerbs = []string{" kills ", " hits ", " misses ", " is blocked by ", " reduces "}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "-----"):
		return kindHeading
	case strings.HasPrefix(line, "Party: "):
		return kindParty
	case strings.HasPrefix(line, "Enemies: "):
		return kindEnemies
	case strings.HasPrefix(line, "Neutral: "), hasAnySuffix(line, exitSuffixes):
		return kindExits
	case strings.HasPrefix(line, "Previous command: "),
		strings.HasPrefix(line, "[Item added"),
		strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case isDialogue(line):
		return kindDialogue
	case strings.HasPrefix(line, "Invalid Command."),
		strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "There is no one"):
		return kindError
	case containsAny(line, combatVerbs):
		return kindCombat
	default:
		return kindRoomDesc
	}
}

// isDialogue matches "[Speaker]: words".
func isDialogue(line string) bool {
	if !strings.HasPrefix(line, "[") {
		return false
	}
	i := strings.Index(line, "]: ")
	return i > 1
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
