package panel

import "github.com/charmbracelet/lipgloss"

// Styles contains the lipgloss styles of the panel
type Styles struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Oled     lipgloss.Style
	Selected lipgloss.Style
	Table    lipgloss.Style
	Header   lipgloss.Style
	Muted    lipgloss.Style

	Stopped     lipgloss.Style
	Running     lipgloss.Style
	Calibrating lipgloss.Style
	Error       lipgloss.Style

	Help lipgloss.Style
}

// DefaultStyles returns the default color scheme. The status colors match
// the board's status LED.
func DefaultStyles() Styles {
	highlight := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	muted := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}

	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(highlight).
			Padding(0, 1).
			MarginBottom(1),

		Oled: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Foreground(lipgloss.Color("#8BE9FD")).
			Padding(0, 1).
			Width(26),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")),

		Table: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted).
			Padding(0, 1).
			MarginLeft(2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		Muted: lipgloss.NewStyle().
			Foreground(muted),

		Stopped: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#73F59F")).
			Bold(true),

		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C")).
			Bold(true),

		Calibrating: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6CB6FF")).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),

		Help: lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1),
	}
}
