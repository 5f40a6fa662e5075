// Package tui holds the terminal front desk: masked inputs and the customer
// registration form.
package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles shared by the terminal views
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Muted    lipgloss.Style
	Complete lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the adaptive color scheme
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#1F4E79", Dark: "#7FB3E0"}).
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Width(14).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"}),
		Focused: lipgloss.NewStyle().
			Width(14).
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#1F4E79", Dark: "#7FB3E0"}),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Complete: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
	}
}
