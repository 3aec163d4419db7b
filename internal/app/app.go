package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/italienapp/italienapp/internal/content"
	"github.com/italienapp/italienapp/internal/progress"
	"github.com/italienapp/italienapp/internal/router"
	"github.com/italienapp/italienapp/internal/screen"
	"github.com/italienapp/italienapp/internal/screens/history"
	"github.com/italienapp/italienapp/internal/screens/home"
	"github.com/italienapp/italienapp/internal/screens/welcome"
	"github.com/italienapp/italienapp/internal/ui/layout"
	"github.com/italienapp/italienapp/internal/ui/theme"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Loader   *content.Loader
	Progress *progress.Store
	Attempts history.AttemptSource // nil disables the history screen
	Logger   *slog.Logger
	Splash   bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the home screen, behind
// the welcome splash when requested.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	theme.Apply(opts.Progress.Settings().DarkMode)

	newHome := func() screen.Screen {
		return home.New(opts.Loader, opts.Progress, opts.Attempts, opts.Logger)
	}
	var first screen.Screen
	if opts.Splash {
		first = welcome.New(newHome)
	} else {
		first = newHome()
	}
	return AppModel{
		router: router.New(first),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// percentage returns the overall completion shown in the header.
func (m AppModel) percentage() int {
	manifest, err := m.opts.Loader.Manifest()
	if err != nil {
		return 0
	}
	return m.opts.Progress.OverallProgress(manifest).Percentage
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	if _, splash := active.(*welcome.WelcomeScreen); splash {
		return m.router.View(m.width, m.height)
	}

	header := layout.RenderHeader(active.Title(), m.percentage(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Indietro"},
			{Key: "Ctrl+C", Description: "Esci"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Naviga"},
			{Key: "Enter", Description: "Seleziona"},
			{Key: "Ctrl+C", Description: "Esci"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
