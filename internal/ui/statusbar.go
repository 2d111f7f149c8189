package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"tof-calibrator.klederson.com/internal/calibration"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, status calibration.Status, scanning bool, nearby int) string {
	state := ""
	if status.Kind == calibration.StatusInFlight {
		state = StyleStatusBusy.Render("[UPLOADING]")
	} else {
		state = StyleStatusReady.Render("[" + strings.ToUpper(status.Kind.String()) + "]")
	}

	scan := "off"
	if scanning {
		scan = "on"
	}
	info := fmt.Sprintf(" Scan: %s  Nearby: %d", scan, nearby)

	content := state + StyleMenuLabel.Render(info)

	gap := width - 2 - lipgloss.Width(content) // minus bar padding
	if gap < 0 {
		gap = 0
	}
	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
