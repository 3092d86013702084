package results

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/orientation/internal/certificate"
	"github.com/abhisek/orientation/internal/grading"
	"github.com/abhisek/orientation/internal/questionbank"
	"github.com/abhisek/orientation/internal/quiz"
	"github.com/abhisek/orientation/internal/router"
	"github.com/abhisek/orientation/internal/screen"
	"github.com/abhisek/orientation/internal/ui/components"
	"github.com/abhisek/orientation/internal/ui/layout"
	"github.com/abhisek/orientation/internal/ui/locale"
	"github.com/abhisek/orientation/internal/ui/theme"
)

// certificateMsg carries the outcome of a background render.
type certificateMsg struct {
	path string
	err  error
}

// Factories builds the screens reachable from the results menu.
type Factories struct {
	Review func() screen.Screen
	Start  func() screen.Screen
}

// ResultsScreen shows the graded outcome and the follow-up actions.
type ResultsScreen struct {
	loc      *locale.Locale
	engine   *quiz.Engine
	renderer certificate.Renderer
	screens  Factories

	results grading.Results
	err     error
	menu    components.Menu

	rendering bool
	certPath  string
	certErr   string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.BackInterceptor = (*ResultsScreen)(nil)

// unavailableRenderer stands in for a missing certificate renderer.
type unavailableRenderer struct{}

func (unavailableRenderer) Render(context.Context, certificate.Request) (string, error) {
	return "", &quiz.MissingCollaboratorError{Name: "certificate renderer"}
}

// New creates the results screen. renderer may be nil, in which case the
// download action reports that certificates are unavailable.
func New(loc *locale.Locale, engine *quiz.Engine, renderer certificate.Renderer, screens Factories) *ResultsScreen {
	if renderer == nil {
		renderer = unavailableRenderer{}
	}
	s := &ResultsScreen{
		loc:      loc,
		engine:   engine,
		renderer: renderer,
		screens:  screens,
	}
	s.results, s.err = engine.Results()
	s.buildMenu(0)
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	if s.results.Passing {
		return s.loc.T("orientation_complete")
	}
	return s.loc.T("orientation_not_complete")
}

// InterceptsBack keeps Esc from returning to the finished quiz.
func (s *ResultsScreen) InterceptsBack() bool {
	return true
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: s.loc.T("hint_navigate")},
		{Key: "Enter", Description: s.loc.T("hint_select")},
		{Key: "Ctrl+L", Description: s.loc.T("language_toggle_hint")},
		{Key: "Ctrl+C", Description: s.loc.T("hint_quit")},
	}
}

func (s *ResultsScreen) buildMenu(selected int) {
	var items []components.MenuItem
	if s.results.Passing {
		items = append(items, components.MenuItem{
			Label:    s.loc.T("download_certificate"),
			Action:   s.download,
			Disabled: s.rendering,
		})
	}
	items = append(items,
		components.MenuItem{Label: s.loc.T("review_answers"), Action: s.review},
		components.MenuItem{Label: s.loc.T("restart_orientation"), Action: s.restart},
	)

	s.menu = components.NewMenu(items)
	if selected >= 0 && selected < len(items) && !items[selected].Disabled {
		s.menu.Selected = selected
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.LanguageChangedMsg:
		s.buildMenu(s.menu.Selected)
		return s, nil

	case certificateMsg:
		return s, s.handleCertificate(msg)

	case tea.KeyMsg:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ResultsScreen) download() tea.Cmd {
	if s.err != nil || !s.results.Passing {
		s.certErr = s.loc.T("certificate_not_available")
		return screen.Status(s.certErr)
	}
	s.rendering = true
	s.certErr = ""
	s.buildMenu(s.menu.Selected)

	req := s.request()
	renderer := s.renderer
	return tea.Batch(
		screen.Status(s.loc.T("certificate_rendering")),
		func() tea.Msg {
			path, err := renderer.Render(context.Background(), req)
			return certificateMsg{path: path, err: err}
		},
	)
}

func (s *ResultsScreen) handleCertificate(msg certificateMsg) tea.Cmd {
	s.rendering = false
	s.buildMenu(s.menu.Selected)

	if msg.err != nil {
		var missing *quiz.MissingCollaboratorError
		switch {
		case errors.As(msg.err, &missing):
			s.certErr = s.loc.T("certificate_unavailable")
		case errors.Is(msg.err, certificate.ErrNotEligible):
			s.certErr = s.loc.T("certificate_not_available")
		default:
			s.certErr = s.loc.T("certificate_error")
		}
		return screen.Status(s.certErr)
	}

	s.certPath = msg.path
	s.certErr = ""
	return screen.Status(s.loc.F("certificate_saved_to", msg.path))
}

func (s *ResultsScreen) request() certificate.Request {
	sess := s.engine.Session()
	label := sess.Program
	if p, ok := questionbank.ProgramBySlug(sess.Program); ok {
		label = s.loc.T(p.LabelKey)
	}
	return certificate.Request{
		StudentName:  sess.StudentName,
		Program:      sess.Program,
		ProgramLabel: label,
		Results:      s.results,
		Language:     s.loc.Lang(),
		CompletedAt:  sess.EndTime,
	}
}

func (s *ResultsScreen) review() tea.Cmd {
	next := s.screens.Review()
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *ResultsScreen) restart() tea.Cmd {
	s.engine.Reset()
	start := s.screens.Start()
	return tea.Batch(
		func() tea.Msg { return router.ResetScreenMsg{Screen: start} },
		screen.Status(""),
	)
}

func (s *ResultsScreen) View(width, height int) string {
	if s.err != nil {
		return layout.Center(theme.ErrorText.Render(s.err.Error()), width, height)
	}

	r := s.results
	w := min(layout.ContentWidth(width), 70)
	center := lipgloss.NewStyle().Width(w).Align(lipgloss.Center)

	var b strings.Builder

	if r.Passing {
		b.WriteString(theme.Title.Width(w).Render(s.loc.T("orientation_complete")))
	} else {
		b.WriteString(theme.Title.Foreground(theme.Error).Width(w).Render(s.loc.T("orientation_not_complete")))
	}
	b.WriteString("\n\n")

	gradeStyle := theme.Correct
	if !r.Passing {
		gradeStyle = theme.Incorrect
	}
	b.WriteString(center.Render(gradeStyle.Render(fmt.Sprintf("%s  %s", s.loc.T("grade_label"), r.Grade))))
	b.WriteString("\n\n")

	stats := []string{
		fmt.Sprintf("%s: %d/%d (%d%%)", s.loc.T("score_label"), r.Score, r.Total, r.Percentage),
		fmt.Sprintf("%s: %d", s.loc.T("correct_label"), r.Correct),
		fmt.Sprintf("%s: %d", s.loc.T("incorrect_label"), r.Incorrect),
		fmt.Sprintf("%s: %s", s.loc.T("time_label"), r.TimeFormatted),
	}
	b.WriteString(center.Render(theme.Body.Render(strings.Join(stats, "    "))))
	b.WriteString("\n\n")

	if r.Passing {
		b.WriteString(center.Render(theme.Body.Render(s.loc.F("passed_message", r.Grade))))
	} else {
		b.WriteString(theme.Hint.Width(w).Align(lipgloss.Center).Render(s.loc.T("passing_grade_required")))
	}
	b.WriteString("\n\n")

	b.WriteString(s.menu.View())

	switch {
	case s.certErr != "":
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Width(w).Render(s.certErr))
	case s.certPath != "":
		b.WriteString("\n")
		b.WriteString(theme.Correct.Width(w).Render(s.loc.F("certificate_saved_to", s.certPath)))
	}

	return layout.Center(theme.Card.Width(w+4).Render(b.String()), width, height)
}
