package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/italienapp/italienapp/internal/router"
	"github.com/italienapp/italienapp/internal/screen"
	"github.com/italienapp/italienapp/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

// the flag is drawn band by band in phase 1
const flagHeight = 5

type tickMsg time.Time

// WelcomeScreen shows a splash animation before transitioning to the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	// Phase 1: the flag grows band by band.
	bands := flagHeight
	if w.elapsed < phase1End {
		bands = max(1, int(w.elapsed*flagHeight/phase1End))
	}
	sections = append(sections, renderFlag(bands))

	// Phase 2+: banner and tagline
	if w.elapsed >= phase1End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Impariamo l'italiano, una scheda alla volta!"))
	}

	if w.elapsed >= phase2End {
		hintColor := theme.TextDim
		if (w.tickCount/5)%2 == 0 {
			hintColor = theme.Text
		}
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(hintColor).
			Italic(true).
			Render("premi un tasto per continuare"))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderFlag(rows int) string {
	green := lipgloss.NewStyle().Background(lipgloss.Color("#008C45"))
	white := lipgloss.NewStyle().Background(lipgloss.Color("#F4F5F0"))
	red := lipgloss.NewStyle().Background(lipgloss.Color("#CD212A"))

	band := strings.Repeat(" ", 6)
	line := green.Render(band) + white.Render(band) + red.Render(band)

	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
