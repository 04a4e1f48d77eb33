package chat

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	subtitle  lipgloss.Style
	liveKey   lipgloss.Style
	liveValue lipgloss.Style
	panel     lipgloss.Style
	panelHead lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	message   lipgloss.Style
	notice    lipgloss.Style
	thinking  lipgloss.Style
	help      lipgloss.Style
	empty     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
		subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		liveKey:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		liveValue: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1).
			MarginTop(1),
		panelHead: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")),
		user:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
		message:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		thinking:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		help:      lipgloss.NewStyle().Faint(true).MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
	}
}
