package splash

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/orientation/internal/router"
	"github.com/abhisek/orientation/internal/screen"
	"github.com/abhisek/orientation/internal/ui/locale"
	"github.com/abhisek/orientation/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 300 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

const crestArt = `    ╭─────────╮
    │  ╔═══╗  │
    │  ║ G ║  │
    │  ╚═══╝  │
    │   VI    │
    ╰────┬────╯
         │`

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type tickMsg time.Time

// SplashScreen shows a short loading animation, then replaces itself with
// the start form. Any key skips ahead.
type SplashScreen struct {
	loc          *locale.Locale
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*SplashScreen)(nil)

// New creates a SplashScreen that transitions to the screen produced by next.
func New(loc *locale.Locale, next func() screen.Screen) *SplashScreen {
	return &SplashScreen{loc: loc, next: next}
}

func (s *SplashScreen) Title() string {
	return ""
}

func (s *SplashScreen) Init() tea.Cmd {
	return tea.Batch(tick(), screen.Status(s.loc.T("loading_orientation")))
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *SplashScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if s.transitioned {
			return s, nil
		}
		s.elapsed += tickInterval
		s.tickCount++
		if s.elapsed >= totalDur {
			return s, s.transition()
		}
		return s, tick()

	case tea.KeyPressMsg:
		return s, s.transition()
	}

	return s, nil
}

func (s *SplashScreen) transition() tea.Cmd {
	if s.transitioned {
		return nil
	}
	s.transitioned = true
	nextScreen := s.next()
	return tea.Batch(
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: nextScreen} },
		screen.Status(""),
	)
}

func (s *SplashScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Primary).Render(crestArt))
	sections = append(sections, "")
	sections = append(sections, theme.Title.Render(s.loc.T("genesis_vocational_institute")))
	sections = append(sections, theme.Subtitle.Render(s.loc.T("student_orientation")))

	if s.elapsed >= phase1End {
		frame := spinnerFrames[s.tickCount%len(spinnerFrames)]
		sections = append(sections, "")
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(frame)+" "+
				theme.Body.Render(s.loc.T("loading_orientation")))
		sections = append(sections, theme.Hint.Render(s.loc.T("preparing_experience")))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.TrimRight(content, "\n"))
}
