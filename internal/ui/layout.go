package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the form and nearby panel horizontally, with the
// menu bar on top and the notice plus status bar at the bottom.
func ComposeLayout(menuBar, form, nearby, notice, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, form, nearby)
	rows := []string{menuBar, middle}
	if notice != "" {
		rows = append(rows, notice)
	}
	rows = append(rows, statusBar)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
