package render

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	value   lipgloss.Style
	missing lipgloss.Style
	muted   lipgloss.Style
	failure lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Foreground(lipgloss.Color("#cba6f7")),
		value: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0AF", Dark: "#0AF"}).
			Bold(true),
		missing: r.NewStyle().
			Foreground(lipgloss.Color("#fab387")),
		muted: r.NewStyle().
			Foreground(lipgloss.Color("#585b70")),
		failure: r.NewStyle().
			Foreground(lipgloss.Color("#f38ba8")).
			Bold(true),
	}
}
