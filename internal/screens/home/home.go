package home

import (
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/italienapp/italienapp/internal/content"
	"github.com/italienapp/italienapp/internal/progress"
	"github.com/italienapp/italienapp/internal/router"
	"github.com/italienapp/italienapp/internal/screen"
	"github.com/italienapp/italienapp/internal/screens/history"
	"github.com/italienapp/italienapp/internal/screens/scheda"
	"github.com/italienapp/italienapp/internal/screens/settings"
	"github.com/italienapp/italienapp/internal/ui/components"
	"github.com/italienapp/italienapp/internal/ui/layout"
	"github.com/italienapp/italienapp/internal/ui/theme"
)

type homeLoadedMsg struct {
	manifest *content.Manifest
	err      error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	loader   *content.Loader
	store    *progress.Store
	attempts history.AttemptSource
	logger   *slog.Logger

	manifest *content.Manifest
	menu     components.Menu
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. attempts may be nil, which disables the
// history entry.
func New(loader *content.Loader, store *progress.Store, attempts history.AttemptSource, logger *slog.Logger) *HomeScreen {
	if logger == nil {
		logger = slog.Default()
	}
	return &HomeScreen{
		loader:   loader,
		store:    store,
		attempts: attempts,
		logger:   logger,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return func() tea.Msg {
		m, err := h.loader.Manifest()
		return homeLoadedMsg{manifest: m, err: err}
	}
}

// Refresh rebuilds the menu so statuses reflect new results.
func (h *HomeScreen) Refresh() tea.Cmd {
	if h.manifest != nil {
		h.buildMenu()
	}
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Naviga"},
		{Key: "Enter", Description: "Apri"},
		{Key: "Ctrl+C", Description: "Esci"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case homeLoadedMsg:
		h.loaded = true
		if msg.err != nil {
			h.logger.Error("could not load manifest", "error", msg.err)
			h.errMsg = msg.err.Error()
			return h, nil
		}
		h.manifest = msg.manifest
		h.buildMenu()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) open(id string) func() tea.Cmd {
	return func() tea.Cmd {
		scr := scheda.New(h.loader, h.store, h.logger, id)
		return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
	}
}

func (h *HomeScreen) push(scr screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
	}
}

func (h *HomeScreen) buildMenu() {
	m := h.manifest
	var items []components.MenuItem

	if id, ok := h.store.LastActive(); ok {
		if info, ok := m.Info(id); ok {
			items = append(items, components.MenuItem{
				Label:  fmt.Sprintf("▶ Continua: Scheda %s · %s", id, info.Title),
				Action: h.open(id),
			})
		}
	}

	items = append(items, components.MenuItem{Label: "Categorie", Header: true})
	for _, c := range m.Categories {
		sum := h.store.CategoryProgress(m, c)
		item := components.MenuItem{
			Label:  strings.TrimSpace(c.Icon + " " + c.Name),
			Detail: theme.Subtitle.Render(fmt.Sprintf("%d/%d · %d%%", sum.Completed, sum.Total, sum.Percentage)),
		}
		if first := firstKnown(m, c); first != "" {
			item.Action = h.open(first)
		} else {
			item.Disabled = true
		}
		items = append(items, item)
	}

	items = append(items, components.MenuItem{Label: "Tutte le schede", Header: true})
	for _, id := range m.Order {
		info := m.Schede[id]
		st := h.store.SchedaStatus(id, info.ExerciseCount)
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%s Scheda %s · %s", statusDot(st), id, info.Title),
			Action: h.open(id),
		})
	}

	items = append(items,
		components.MenuItem{Label: "Altro", Header: true},
		components.MenuItem{Label: "Impostazioni", Action: h.push(settings.New(h.store))},
		components.MenuItem{
			Label:    "Cronologia",
			Disabled: h.attempts == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(h.attempts, h.loader)}
				}
			},
		},
		components.MenuItem{Label: "Esci", Action: func() tea.Cmd { return tea.Quit }},
	)

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Header && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

// firstKnown returns the first scheda of c that the manifest describes.
func firstKnown(m *content.Manifest, c content.Category) string {
	for _, id := range c.Schede {
		if _, ok := m.Info(id); ok {
			return id
		}
	}
	return ""
}

func (h *HomeScreen) inProgress() int {
	n := 0
	for _, id := range h.manifest.Order {
		if h.store.SchedaStatus(id, h.manifest.Schede[id].ExerciseCount) == progress.InProgress {
			n++
		}
	}
	return n
}

func (h *HomeScreen) View(width, height int) string {
	if h.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nErrore: %s", h.errMsg))
	}
	if !h.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Caricamento...")
	}

	cw := contentWidth(width)

	lastTitle := ""
	if id, ok := h.store.LastActive(); ok {
		lastTitle = h.manifest.Schede[id].Title
	}

	top := renderWelcome(cw, lastTitle) + "\n\n" +
		renderStatsBar(h.store.OverallProgress(h.manifest), h.inProgress(), cw)

	menuHeight := max(height-lipgloss.Height(top)-1, 3)
	menu, _ := layout.Scroll(h.menu.View(), h.menu.SelectedLine()-menuHeight+2, menuHeight)
	menu = lipgloss.NewStyle().Width(cw).Render(menu)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, top+"\n"+menu)
}
