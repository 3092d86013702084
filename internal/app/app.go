package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/orientation/internal/certificate"
	"github.com/abhisek/orientation/internal/i18n"
	"github.com/abhisek/orientation/internal/quiz"
	"github.com/abhisek/orientation/internal/router"
	"github.com/abhisek/orientation/internal/screen"
	"github.com/abhisek/orientation/internal/store"
	"github.com/abhisek/orientation/internal/ui/layout"
	"github.com/abhisek/orientation/internal/ui/locale"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	Engine   *quiz.Engine
	Catalog  *i18n.Catalog
	Language i18n.Language

	// Prefs persists the language choice. Optional.
	Prefs store.PreferenceRepo
	// Renderer draws certificates. Optional; without it the download
	// action reports that certificates are unavailable.
	Renderer certificate.Renderer
	Logger   *zap.Logger
}

// languageSavedMsg reports the outcome of persisting the language.
type languageSavedMsg struct {
	lang i18n.Language
	err  error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	loc    *locale.Locale
	prefs  store.PreferenceRepo
	log    *zap.Logger
	status string
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the splash screen.
func newAppModel(opts Options) AppModel {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = i18n.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	loc := locale.New(catalog, opts.Language)
	f := &factories{loc: loc, engine: opts.Engine, renderer: opts.Renderer}

	return AppModel{
		router: router.New(f.splash()),
		loc:    loc,
		prefs:  opts.Prefs,
		log:    log,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StatusMsg:
		m.status = msg.Text
		return m, nil

	case languageSavedMsg:
		if msg.err != nil {
			m.log.Warn("persist language preference", zap.String("language", msg.lang.String()), zap.Error(msg.err))
		} else {
			m.log.Debug("language preference saved", zap.String("language", msg.lang.String()))
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			return m, m.toggleLanguage()
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptsBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) toggleLanguage() tea.Cmd {
	lang := m.loc.Toggle()
	m.log.Info("language switched", zap.String("language", lang.String()))

	cmds := []tea.Cmd{m.router.Update(screen.LanguageChangedMsg{})}
	if m.prefs != nil {
		prefs := m.prefs
		cmds = append(cmds, func() tea.Msg {
			return languageSavedMsg{lang: lang, err: prefs.SetLanguage(context.Background(), lang)}
		})
	}
	return tea.Batch(cmds...)
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes the full frame as a string.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(m.loc.T("app_name"), title, m.languageIndicator(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)
	status := layout.RenderStatus(m.status, m.width)

	used := lipgloss.Height(header) + lipgloss.Height(status) + lipgloss.Height(footer)
	contentHeight := m.height - used
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, status, footer, m.width, m.height)
}

func (m AppModel) languageIndicator() string {
	return fmt.Sprintf("%s: %s  ", m.loc.T("language_label"), strings.ToUpper(m.loc.Lang().String()))
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: m.loc.T("hint_back")},
			{Key: "Ctrl+C", Description: m.loc.T("hint_quit")},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+L", Description: m.loc.T("language_toggle_hint")},
		{Key: "Ctrl+C", Description: m.loc.T("hint_quit")},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Engine == nil {
		return &quiz.MissingCollaboratorError{Name: "quiz engine"}
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
