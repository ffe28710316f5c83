package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// roomDisplayName title-cases a room name or id.
// "great_hall" -> "Great Hall", "old library" -> "Old Library".
func roomDisplayName(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}

// renderStatusBar produces a full-width inverted status line showing
// the current room, hit points, party size, inventory count and turn.
func (m Model) renderStatusBar() string {
	s := m.status

	place := m.title
	if s.Room != "" {
		place = roomDisplayName(s.Room)
	}

	left := fmt.Sprintf(" %s | HP: %d", place, s.HP)
	if s.Party > 0 {
		left += fmt.Sprintf(" | Party: %d", s.Party)
	}
	right := fmt.Sprintf("Inv: %d | T:%d ", s.Items, s.Turn)
	if s.Ended {
		right = "Game over "
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
