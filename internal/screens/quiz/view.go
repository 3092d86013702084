package quiz

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/orientation/internal/ui/components"
	"github.com/abhisek/orientation/internal/ui/layout"
	"github.com/abhisek/orientation/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.showHelp:
		return layout.Center(s.renderHelp(width), width, height)
	case s.showExit:
		return layout.Center(s.renderExitConfirm(width), width, height)
	}
	return s.renderQuestion(width, height)
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	q, ok := s.engine.CurrentQuestion()
	if !ok {
		return ""
	}
	w := layout.ContentWidth(width)
	p := s.engine.Progress()

	var b strings.Builder

	counter := theme.Muted.Render(s.loc.F("question_counter", p.Number, p.Total))
	b.WriteString(counter)
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", p.Fraction(), true, w).View())
	b.WriteString("\n\n")

	if desc := s.loc.Text(q.Description); desc != "" && !layout.IsCompactHeight(height) {
		b.WriteString(theme.Subtitle.Render(s.loc.T("policy_information")))
		b.WriteString("\n")
		b.WriteString(theme.Policy.Width(w).Render(desc))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Body.Bold(true).Width(w).Render(s.loc.Text(q.Prompt)))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())

	if s.feedback != nil {
		b.WriteString("\n\n")
		b.WriteString(s.renderFeedback(w))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}

	block := lipgloss.NewStyle().Width(w).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().PaddingTop(1).Render(block))
}

func (s *QuizScreen) renderFeedback(w int) string {
	fb := s.feedback

	var heading string
	color := theme.Error
	if fb.Correct {
		heading = theme.Correct.Render(s.loc.T("review_correct"))
		color = theme.Success
	} else {
		heading = theme.Incorrect.Render(s.loc.T("review_incorrect"))
	}

	body := heading
	if msg := s.loc.Text(fb.Message); msg != "" {
		body += "\n" + theme.Body.Width(w-6).Render(msg)
	}
	body += "\n\n" + components.NewButton(s.loc.T("continue_button"), true, nil).View()

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 2).
		Width(w).
		Render(body)
}

func (s *QuizScreen) renderHelp(width int) string {
	w := min(layout.ContentWidth(width), 70)

	var b strings.Builder
	b.WriteString(theme.Title.Width(w).Render(s.loc.T("how_it_works_title")))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(s.loc.T("how_it_works_welcome")))
	b.WriteString("\n\n")
	for _, key := range []string{
		"how_it_works_step1",
		"how_it_works_step2",
		"how_it_works_step3",
		"how_it_works_step4",
		"how_it_works_step5",
		"how_it_works_step6",
	} {
		b.WriteString(theme.Body.Width(w).Render("• " + s.loc.T(key)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Width(w).Render(s.loc.T("how_it_works_tip")))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center,
		components.NewButton(s.loc.T("got_it"), true, nil).View()))

	return theme.Dialog.Render(b.String())
}

func (s *QuizScreen) renderExitConfirm(width int) string {
	w := min(layout.ContentWidth(width), 56)

	exitBtn := components.NewButton(s.loc.T("exit_button"), s.exitSel == 0, nil)
	cancelBtn := components.NewButton(s.loc.T("cancel_button"), s.exitSel == 1, nil)
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, exitBtn.View(), "   ", cancelBtn.View())

	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Width(w).Render(s.loc.T("exit_orientation_title")),
		"",
		theme.Body.Width(w).Align(lipgloss.Center).Render(s.loc.T("exit_confirmation")),
		"",
		buttons,
	)
	return theme.Dialog.Render(content)
}
