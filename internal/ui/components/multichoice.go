package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/orientation/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. It only tracks the cursor and
// the locked-in choice; scoring belongs to the caller.
type MultiChoice struct {
	Options      []string
	Selected     int
	Submitted    bool
	ChosenIndex  int
	CorrectIndex int
	Width        int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string, width int) MultiChoice {
	return MultiChoice{
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
		Width:        width,
	}
}

// Update moves the cursor. It returns the chosen index when the user locks
// in an answer with Enter or a number key, and -1 otherwise.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int) {
	if m.Submitted {
		return m, -1
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, -1
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter", "space":
		return m, m.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.Options) {
				m.Selected = i
				return m, i
			}
		}
	}

	return m, -1
}

// Reveal locks the component and marks the chosen and correct options.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.Submitted = true
	m.ChosenIndex = chosen
	m.CorrectIndex = correct
}

// View renders the options, colored by outcome once revealed.
func (m MultiChoice) View() string {
	var b strings.Builder

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		marker := "  "
		if m.Submitted {
			switch i {
			case m.CorrectIndex:
				marker = " ✓"
			case m.ChosenIndex:
				marker = " ✗"
			}
		}

		line := fmt.Sprintf("%s%c)  %s%s", prefix, 'A'+rune(i), opt, marker)

		style := theme.Unselected
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = theme.Correct
		case m.Submitted && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Submitted:
			style = theme.Muted
		case i == m.Selected:
			style = theme.Selected
		}
		if m.Width > 0 {
			style = style.Width(m.Width)
		}

		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Render(strings.TrimSuffix(b.String(), "\n"))
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
