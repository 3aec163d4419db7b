package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is a set of named colors.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
}

// Light is the default palette: Italian green, white and red on paper.
var Light = Palette{
	Primary:   lipgloss.Color("#008C45"), // Verde
	Secondary: lipgloss.Color("#2563EB"), // Blue
	Accent:    lipgloss.Color("#CD212A"), // Rosso
	Success:   lipgloss.Color("#15803D"), // Green
	Error:     lipgloss.Color("#B91C1C"), // Red
	Text:      lipgloss.Color("#1F2937"), // Ink
	TextDim:   lipgloss.Color("#6B7280"), // Gray
	Bg:        lipgloss.Color("#FAFAF7"), // Paper
	BgCard:    lipgloss.Color("#F1F0EA"), // Card
	Border:    lipgloss.Color("#D6D3C9"), // Stone
}

// Dark is used when the dark-mode setting is on.
var Dark = Palette{
	Primary:   lipgloss.Color("#34D399"), // Mint
	Secondary: lipgloss.Color("#60A5FA"), // Sky
	Accent:    lipgloss.Color("#F87171"), // Coral
	Success:   lipgloss.Color("#22C55E"), // Green
	Error:     lipgloss.Color("#F43F5E"), // Rose
	Text:      lipgloss.Color("#F8FAFC"), // White
	TextDim:   lipgloss.Color("#94A3B8"), // Slate
	Bg:        lipgloss.Color("#0F172A"), // Deep Navy
	BgCard:    lipgloss.Color("#1E293B"), // Dark Slate
	Border:    lipgloss.Color("#334155"), // Slate
}

// Active colors. Set through Apply.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgCard    color.Color
	Border    color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
	Highlight  lipgloss.Style
)

// Components
var (
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	BadgeGood      lipgloss.Style
	BadgeNeedsWork lipgloss.Style
	TabActive      lipgloss.Style
	TabInactive    lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

var dark bool

func init() {
	Apply(false)
}

// IsDark reports whether the dark palette is active.
func IsDark() bool {
	return dark
}

// Apply switches to the dark or light palette and rebuilds all styles.
func Apply(darkMode bool) {
	dark = darkMode
	p := Light
	if darkMode {
		p = Dark
	}

	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	BgCard, Border = p.BgCard, p.Border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Highlight = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	ProgressFilled = lipgloss.NewStyle().
		Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)

	BadgeGood = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(Success).
		Bold(true).
		Padding(0, 1)

	BadgeNeedsWork = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(Accent).
		Bold(true).
		Padding(0, 1)

	TabActive = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Underline(true).
		Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
		Foreground(TextDim).
		Padding(0, 2)

	ButtonActive = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(Primary).
		Bold(true).
		Padding(0, 1)

	ButtonInactive = lipgloss.NewStyle().
		Foreground(TextDim).
		Background(BgCard).
		Padding(0, 1)
}
