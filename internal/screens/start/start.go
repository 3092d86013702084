package start

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/orientation/internal/questionbank"
	"github.com/abhisek/orientation/internal/quiz"
	"github.com/abhisek/orientation/internal/router"
	"github.com/abhisek/orientation/internal/screen"
	"github.com/abhisek/orientation/internal/ui/components"
	"github.com/abhisek/orientation/internal/ui/layout"
	"github.com/abhisek/orientation/internal/ui/locale"
	"github.com/abhisek/orientation/internal/ui/theme"
)

type field int

const (
	fieldName field = iota
	fieldProgram
	fieldStart
	fieldCount
)

const nameCharLimit = 80

// StartScreen collects the student's name and program and starts the quiz.
type StartScreen struct {
	loc      *locale.Locale
	engine   *quiz.Engine
	next     func() screen.Screen
	programs []questionbank.Program

	name       components.TextInput
	programIdx int // -1 until a program is chosen
	focus      field
	errMsg     string
}

var _ screen.Screen = (*StartScreen)(nil)
var _ screen.KeyHintProvider = (*StartScreen)(nil)

// New creates the start form. next builds the quiz screen after a
// successful start.
func New(loc *locale.Locale, engine *quiz.Engine, next func() screen.Screen) *StartScreen {
	return &StartScreen{
		loc:        loc,
		engine:     engine,
		next:       next,
		programs:   questionbank.Programs(),
		name:       components.NewTextInput(loc.T("full_name_placeholder"), nameCharLimit, 40),
		programIdx: -1,
	}
}

func (s *StartScreen) Init() tea.Cmd {
	return s.name.Init()
}

func (s *StartScreen) Title() string {
	return s.loc.T("welcome_orientation")
}

func (s *StartScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: s.loc.T("hint_next_field")},
	}
	if s.focus == fieldProgram {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: s.loc.T("hint_select")})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: s.loc.T("hint_submit")},
		layout.KeyHint{Key: "Ctrl+L", Description: s.loc.T("language_toggle_hint")},
		layout.KeyHint{Key: "Ctrl+C", Description: s.loc.T("hint_quit")},
	)
}

// Program returns the selected program slug, or "" if none is chosen.
func (s *StartScreen) Program() string {
	if s.programIdx < 0 || s.programIdx >= len(s.programs) {
		return ""
	}
	return s.programs[s.programIdx].Slug
}

func (s *StartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.LanguageChangedMsg:
		s.name.SetPlaceholder(s.loc.T("full_name_placeholder"))
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "enter":
			if s.focus == fieldStart {
				return s, s.submit()
			}
			return s, s.setFocus(s.focus + 1)
		}

		switch s.focus {
		case fieldProgram:
			s.cycleProgram(msg.String())
			return s, nil
		case fieldStart:
			if msg.String() == "space" {
				return s, s.submit()
			}
			return s, nil
		}
	}

	if s.focus == fieldName {
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StartScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	if f == fieldName {
		return s.name.Focus()
	}
	s.name.Blur()
	return nil
}

func (s *StartScreen) cycleProgram(key string) {
	n := len(s.programs)
	if n == 0 {
		return
	}
	switch key {
	case "right", "l", "space":
		s.programIdx = (s.programIdx + 1) % n
	case "left", "h":
		if s.programIdx <= 0 {
			s.programIdx = n - 1
		} else {
			s.programIdx--
		}
	}
}

func (s *StartScreen) submit() tea.Cmd {
	err := s.engine.Start(s.name.Value(), s.Program())
	if err == nil {
		s.errMsg = ""
		next := s.next()
		return tea.Batch(
			func() tea.Msg { return router.PushScreenMsg{Screen: next} },
			screen.Status(""),
		)
	}

	s.errMsg = s.errorText(err)
	var focusCmd tea.Cmd
	var verr *quiz.ValidationError
	if errors.As(err, &verr) {
		switch {
		case verr.Has(quiz.FieldStudentName):
			s.name.MarkInvalid()
			focusCmd = s.setFocus(fieldName)
		case verr.Has(quiz.FieldProgram):
			focusCmd = s.setFocus(fieldProgram)
		}
	}
	return tea.Batch(focusCmd, screen.Status(s.errMsg))
}

func (s *StartScreen) errorText(err error) string {
	var verr *quiz.ValidationError
	var derr *quiz.DataIntegrityError
	switch {
	case errors.As(err, &verr):
		name, program := verr.Has(quiz.FieldStudentName), verr.Has(quiz.FieldProgram)
		switch {
		case name && program:
			return s.loc.T("name_program_required")
		case name:
			return s.loc.T("name_required")
		default:
			return s.loc.T("program_required")
		}
	case errors.As(err, &derr):
		return s.loc.F("question_bank_invalid", derr.Reason)
	default:
		return err.Error()
	}
}

func (s *StartScreen) View(width, height int) string {
	w := layout.ContentWidth(width)
	if w > 70 {
		w = 70
	}

	var b strings.Builder

	b.WriteString(theme.Title.Width(w).Render(s.loc.T("welcome_orientation")))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(w).Render(s.loc.T("orientation_description")))
	b.WriteString("\n\n")

	b.WriteString(s.label(s.loc.T("full_name_label"), s.focus == fieldName))
	b.WriteString("\n")
	b.WriteString(s.name.View())
	b.WriteString("\n\n")

	b.WriteString(s.label(s.loc.T("program_label"), s.focus == fieldProgram))
	b.WriteString("\n")
	b.WriteString(s.programView())
	b.WriteString("\n")
	if s.focus == fieldProgram {
		b.WriteString(theme.Hint.Render(s.loc.T("program_required_hint")))
	}
	b.WriteString("\n\n")

	btn := components.NewButton(s.loc.T("start_orientation"), s.focus == fieldStart, nil)
	b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center, btn.View()))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Width(w).Align(lipgloss.Center).Render(s.errMsg))
	}

	card := theme.Card.Width(w + 4).Render(b.String())
	return layout.Center(card, width, height)
}

func (s *StartScreen) label(text string, focused bool) string {
	if focused {
		return theme.Selected.Render(text)
	}
	return theme.Body.Render(text)
}

func (s *StartScreen) programView() string {
	if s.programIdx < 0 {
		return theme.Muted.Render("  ◂ " + s.loc.T("choose_program") + " ▸")
	}
	label := s.loc.T(s.programs[s.programIdx].LabelKey)
	style := theme.Unselected
	if s.focus == fieldProgram {
		style = theme.Selected
	}
	return style.Render("  ◂ " + label + " ▸")
}
