package settings

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/italienapp/italienapp/internal/progress"
	"github.com/italienapp/italienapp/internal/router"
	"github.com/italienapp/italienapp/internal/screen"
	"github.com/italienapp/italienapp/internal/ui/components"
	"github.com/italienapp/italienapp/internal/ui/layout"
	"github.com/italienapp/italienapp/internal/ui/theme"
)

type toggledMsg struct{}

// SettingsScreen toggles the learner's preferences.
type SettingsScreen struct {
	store *progress.Store
	menu  components.Menu
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a new SettingsScreen.
func New(store *progress.Store) *SettingsScreen {
	s := &SettingsScreen{store: store}
	s.buildMenu()
	return s
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Impostazioni"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Cambia"},
		{Key: "↑↓", Description: "Naviga"},
		{Key: "Esc", Description: "Indietro"},
	}
}

func (s *SettingsScreen) toggleStrict() tea.Cmd {
	v := !s.store.Settings().StrictAccents
	s.store.UpdateSettings(context.Background(), progress.SettingsPatch{StrictAccents: &v})
	return func() tea.Msg { return toggledMsg{} }
}

func (s *SettingsScreen) toggleDark() tea.Cmd {
	v := !s.store.Settings().DarkMode
	s.store.UpdateSettings(context.Background(), progress.SettingsPatch{DarkMode: &v})
	theme.Apply(v)
	return func() tea.Msg { return toggledMsg{} }
}

func (s *SettingsScreen) buildMenu() {
	set := s.store.Settings()
	selected := s.menu.Selected
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Accenti rigorosi", Detail: onOff(set.StrictAccents), Action: s.toggleStrict},
		{Label: "Modalità scura", Detail: onOff(set.DarkMode), Action: s.toggleDark},
	})
	s.menu.Selected = selected
}

func onOff(v bool) string {
	if v {
		return theme.Correct.Render("sì")
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render("no")
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case toggledMsg:
		s.buildMenu()
		return s, nil
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SettingsScreen) View(width, height int) string {
	help := theme.Hint.Render(
		"Con gli accenti rigorosi «e» non vale come «è».\n" +
			"Maiuscole, spazi e punteggiatura finale non contano mai.")

	body := theme.Title.Render("Impostazioni") + "\n\n" + s.menu.View() + "\n" + help
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
