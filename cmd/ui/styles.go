package ui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used across the views.
type Styles struct {
	Title       lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Label       lipgloss.Style
	FieldError  lipgloss.Style
	Card        lipgloss.Style
	CardChosen  lipgloss.Style
	Recommended lipgloss.Style
	Muted       lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		TabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Underline(true),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FieldError:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Card:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		CardChosen:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1),
		Recommended: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
