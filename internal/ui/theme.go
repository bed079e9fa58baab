package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string
	Border     string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// DefaultTheme is a Dracula-flavored palette.
func DefaultTheme() Theme {
	return Theme{
		Name:       "Dracula",
		Background: "#282a36",
		Surface:    "#343746",
		Border:     "#6272a4",
		Text:       "#f8f8f2",
		Muted:      "#bfc7d5",
		Faint:      "#6272a4",
		Accent:     "#bd93f9",
		Success:    "#50fa7b",
		Warning:    "#f1fa8c",
		Danger:     "#ff5555",
	}
}

// Styles holds the pre-built lipgloss styles for a theme.
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Chip      lipgloss.Style
	ChipBadge lipgloss.Style
	Status    lipgloss.Style
	StatusErr lipgloss.Style
	Muted     lipgloss.Style
	Faint     lipgloss.Style
	Accent    lipgloss.Style
	Success   lipgloss.Style
	Panel     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
}

// Styles builds the lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Accent)),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),
		Chip: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.Accent)).
			Padding(0, 1),
		ChipBadge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		StatusErr: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		Faint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(1, 2),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)).
			Width(14),
		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),
	}
}
