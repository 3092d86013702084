package quiz

import (
	"errors"

	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/orientation/internal/quiz"
	"github.com/abhisek/orientation/internal/router"
	"github.com/abhisek/orientation/internal/screen"
	"github.com/abhisek/orientation/internal/ui/components"
	"github.com/abhisek/orientation/internal/ui/layout"
	"github.com/abhisek/orientation/internal/ui/locale"
)

// Factories builds the screens the quiz hands off to.
type Factories struct {
	// Results is shown in place of the quiz once the last question is passed.
	Results func() screen.Screen
	// Start is shown after the student confirms leaving the quiz.
	Start func() screen.Screen
}

// QuizScreen walks the student through the question bank.
type QuizScreen struct {
	loc     *locale.Locale
	engine  *qz.Engine
	screens Factories

	choice   components.MultiChoice
	feedback *qz.Feedback
	showHelp bool
	showExit bool
	exitSel  int // 0 = exit, 1 = cancel
	errMsg   string
	done     bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackInterceptor = (*QuizScreen)(nil)

// New creates the quiz screen for the engine's live session.
func New(loc *locale.Locale, engine *qz.Engine, screens Factories) *QuizScreen {
	s := &QuizScreen{loc: loc, engine: engine, screens: screens}
	s.loadQuestion()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return screen.Status("")
}

func (s *QuizScreen) Title() string {
	p := s.engine.Progress()
	return s.loc.F("question_counter", p.Number, p.Total)
}

// InterceptsBack keeps Esc from popping the quiz; it opens the exit
// confirmation instead.
func (s *QuizScreen) InterceptsBack() bool {
	return true
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.showHelp:
		return []layout.KeyHint{
			{Key: "Enter", Description: s.loc.T("got_it")},
		}
	case s.showExit:
		return []layout.KeyHint{
			{Key: "←→", Description: s.loc.T("hint_navigate")},
			{Key: "Enter", Description: s.loc.T("hint_select")},
			{Key: "Y", Description: s.loc.T("exit_button")},
			{Key: "N", Description: s.loc.T("cancel_button")},
		}
	case s.feedback != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: s.loc.T("hint_continue")},
			{Key: "Esc", Description: s.loc.T("hint_exit")},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: s.loc.T("hint_navigate")},
		{Key: "Enter", Description: s.loc.T("hint_submit")},
		{Key: "?", Description: s.loc.T("hint_help")},
		{Key: "Ctrl+L", Description: s.loc.T("language_toggle_hint")},
		{Key: "Esc", Description: s.loc.T("hint_exit")},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.LanguageChangedMsg:
		s.relabel()
		if s.feedback != nil {
			return s, screen.Status(s.loc.Text(s.feedback.Message))
		}
		return s, nil

	case tea.KeyMsg:
		if s.done {
			return s, nil
		}
		switch {
		case s.showHelp:
			return s.handleHelpKey(msg)
		case s.showExit:
			return s.handleExitKey(msg)
		}

		switch msg.String() {
		case "esc":
			s.showExit = true
			s.exitSel = 1
			return s, nil
		case "?":
			s.showHelp = true
			return s, nil
		}

		if s.feedback != nil {
			switch msg.String() {
			case "enter", "space":
				return s, s.advance()
			}
			return s, nil
		}

		var chosen int
		s.choice, chosen = s.choice.Update(msg)
		if chosen >= 0 {
			return s, s.submit(chosen)
		}
	}

	return s, nil
}

func (s *QuizScreen) handleHelpKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter", "space", "esc", "?":
		s.showHelp = false
	}
	return s, nil
}

func (s *QuizScreen) handleExitKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "tab", "shift+tab", "h", "l":
		s.exitSel = 1 - s.exitSel
	case "y":
		return s, s.exit()
	case "n", "esc":
		s.showExit = false
	case "enter", "space":
		if s.exitSel == 0 {
			return s, s.exit()
		}
		s.showExit = false
	}
	return s, nil
}

func (s *QuizScreen) submit(idx int) tea.Cmd {
	fb, err := s.engine.SubmitAnswer(idx)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	s.feedback = &fb
	s.choice.Reveal(idx, fb.CorrectIndex)
	return screen.Status(s.loc.Text(fb.Message))
}

func (s *QuizScreen) advance() tea.Cmd {
	more, err := s.engine.Advance()
	if err != nil {
		if errors.Is(err, qz.ErrNotAnswered) {
			s.feedback = nil
		}
		s.errMsg = err.Error()
		return nil
	}

	s.feedback = nil
	if more {
		s.loadQuestion()
		return screen.Status("")
	}

	s.done = true
	results := s.screens.Results()
	return tea.Batch(
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: results} },
		screen.Status(""),
	)
}

func (s *QuizScreen) exit() tea.Cmd {
	s.engine.Reset()
	s.showExit = false
	s.done = true
	start := s.screens.Start()
	return tea.Batch(
		func() tea.Msg { return router.ResetScreenMsg{Screen: start} },
		screen.Status(""),
	)
}

// loadQuestion resets the selector for the engine's current question.
func (s *QuizScreen) loadQuestion() {
	q, ok := s.engine.CurrentQuestion()
	if !ok {
		s.choice = components.NewMultiChoice(nil, 0)
		return
	}
	opts := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		opts[i] = s.loc.Text(c)
	}
	s.choice = components.NewMultiChoice(opts, 0)
}

// relabel re-resolves the choice texts, keeping cursor and reveal state.
func (s *QuizScreen) relabel() {
	q, ok := s.engine.CurrentQuestion()
	if !ok {
		return
	}
	for i, c := range q.Choices {
		if i < len(s.choice.Options) {
			s.choice.Options[i] = s.loc.Text(c)
		}
	}
}
