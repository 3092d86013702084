package review

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/orientation/internal/quiz"
	"github.com/abhisek/orientation/internal/router"
	"github.com/abhisek/orientation/internal/screen"
	"github.com/abhisek/orientation/internal/ui/layout"
	"github.com/abhisek/orientation/internal/ui/locale"
	"github.com/abhisek/orientation/internal/ui/theme"
)

// ReviewScreen lists every question with the student's answer and the
// correct one.
type ReviewScreen struct {
	loc          *locale.Locale
	items        []quiz.ReviewItem
	scrollOffset int
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a ReviewScreen from the engine's review data.
func New(loc *locale.Locale, items []quiz.ReviewItem) *ReviewScreen {
	return &ReviewScreen{loc: loc, items: items}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return s.loc.T("review_answers_title")
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: s.loc.T("hint_scroll")},
		{Key: "Enter", Description: s.loc.T("close_button")},
		{Key: "Esc", Description: s.loc.T("hint_back")},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.scrollOffset > 0 {
			s.scrollOffset--
		}
	case "down", "j":
		if s.scrollOffset < len(s.items)-1 {
			s.scrollOffset++
		}
	case "pgup":
		s.scrollOffset = max(s.scrollOffset-5, 0)
	case "pgdown":
		s.scrollOffset = min(s.scrollOffset+5, max(len(s.items)-1, 0))
	case "home", "g":
		s.scrollOffset = 0
	case "end", "G":
		s.scrollOffset = max(len(s.items)-1, 0)
	case "enter", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ReviewScreen) View(width, height int) string {
	w := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render(s.loc.T("review_answers_title")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(w, 60)))))
	b.WriteString("\n\n")

	used := 3
	shown := 0
	for i := s.scrollOffset; i < len(s.items); i++ {
		block := s.renderItem(s.items[i], w)
		h := lipgloss.Height(block) + 1
		if shown > 0 && used+h > height-2 {
			break
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
		b.WriteString("\n\n")
		used += h
		shown++
	}

	if s.scrollOffset+shown < len(s.items) {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("↓ %d/%d", s.scrollOffset+shown, len(s.items))))
	}

	return b.String()
}

func (s *ReviewScreen) renderItem(item quiz.ReviewItem, w int) string {
	var verdict string
	switch {
	case item.IsCorrect:
		verdict = theme.Correct.Render(s.loc.T("review_correct"))
	case !item.Answered:
		verdict = theme.Muted.Render(s.loc.T("no_answer"))
	default:
		verdict = theme.Incorrect.Render(s.loc.T("review_incorrect"))
	}

	prompt := theme.Body.Bold(true).Width(w).
		Render(fmt.Sprintf("%d. %s", item.Number, s.loc.Text(item.Prompt)))

	answer := s.loc.T("no_answer")
	if t, ok := item.SelectedText(); ok {
		answer = s.loc.Text(t)
	}
	answerStyle := theme.Incorrect
	switch {
	case item.IsCorrect:
		answerStyle = theme.Correct
	case !item.Answered:
		answerStyle = theme.Muted
	}

	lines := []string{
		prompt,
		theme.Muted.Render(s.loc.T("your_answer")+": ") + answerStyle.Render(answer),
	}
	if !item.IsCorrect {
		lines = append(lines,
			theme.Muted.Render(s.loc.T("correct_answer")+": ")+theme.Correct.Render(s.loc.Text(item.CorrectText())))
	}
	lines = append(lines, verdict)

	return lipgloss.NewStyle().Width(w).Render(strings.Join(lines, "\n"))
}
