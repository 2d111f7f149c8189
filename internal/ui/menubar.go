package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"tof-calibrator.klederson.com/internal/config"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, version, target string, demo bool) string {
	title := fmt.Sprintf(" %s %s ", config.AppName, version)

	keys := []struct{ key, label string }{
		{"Tab", "next"},
		{"←→", "power"},
		{"Enter", "upload"},
		{"^R", "scan"},
		{"^C", "quit"},
	}

	menu := ""
	for _, k := range keys {
		menu += "  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label)
	}

	right := StyleMenuLabel.Render(target)
	if demo {
		right = StyleStatusBusy.Render("DEMO") + "  " + right
	}
	right += " "

	left := StyleMenuKey.Render(title) + menu

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
