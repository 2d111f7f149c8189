package ui

import (
	"fmt"
	"strings"

	"tof-calibrator.klederson.com/internal/bluetooth"
	"tof-calibrator.klederson.com/internal/config"
)

// NearbyView holds the state of the nearby-device panel.
type NearbyView struct {
	Devices  []*bluetooth.Device
	Cursor   int
	Focused  bool
	Scanning bool
	CanScan  bool // a scanner was configured, so ctrl+r can resume it
}

// RenderNearby lists nearby advertisers. The cursor row is copied into the
// device id field when the user presses enter on it.
func RenderNearby(v NearbyView, width, height int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}

	title := StylePanelTitle.Render(fmt.Sprintf("NEARBY [%d]", len(v.Devices)))
	sep := StyleSeparator.Render(strings.Repeat("-", innerW))
	lines := []string{title, sep}

	innerH := height - 2
	if innerH < 4 {
		innerH = 4
	}
	space := innerH - len(lines) - 1 // keep one line for the hint

	switch {
	case !v.CanScan && len(v.Devices) == 0:
		lines = append(lines, "", StyleHelp.Render(" Scan off"), StyleHelp.Render(" Run with --scan"))
	case !v.Scanning && len(v.Devices) == 0:
		lines = append(lines, "", StyleHelp.Render(" Scan paused"), StyleHelp.Render(" Ctrl+R to resume"))
	case len(v.Devices) == 0:
		lines = append(lines, "", StyleHelp.Render(" No devices..."), StyleHelp.Render(" Waiting for scan"))
	default:
		const linesPerDevice = 2
		maxVisible := min(space/linesPerDevice, config.MaxSuggestions)
		if maxVisible < 1 {
			maxVisible = 1
		}
		viewStart := 0
		if v.Cursor >= maxVisible {
			viewStart = v.Cursor - maxVisible + 1
		}
		for i := viewStart; i < len(v.Devices) && i < viewStart+maxVisible; i++ {
			lines = append(lines, renderNearbyEntry(v.Devices[i], innerW, v.Focused && i == v.Cursor)...)
		}
	}

	for len(lines) < innerH-1 {
		lines = append(lines, "")
	}
	if len(lines) > innerH-1 {
		lines = lines[:innerH-1]
	}
	lines = append(lines, StyleHelp.Render(" Enter: use as Device ID"))

	style := StylePanelBorder
	if v.Focused {
		style = StylePanelActive
	}
	return style.Width(width - 2).Height(innerH).Render(strings.Join(lines, "\n"))
}

func renderNearbyEntry(d *bluetooth.Device, maxW int, isCursor bool) []string {
	cursor := "  "
	if isCursor {
		cursor = ">>"
	}

	raw1 := truncRaw(fmt.Sprintf("%s %s", cursor, d.DisplayName()), maxW)
	raw2 := truncRaw(fmt.Sprintf("   %s %ddBm ~%.0fft", d.MAC, int(d.RSSI), d.Feet()), maxW)

	if isCursor {
		return []string{StyleFocused.Render(raw1), StyleFocused.Render(raw2)}
	}
	return []string{
		StyleDeviceName.Render(raw1),
		StyleDeviceMAC.Render(truncRaw("   "+d.MAC, maxW-10)) + StyleDeviceRSSI.Render(truncRaw(fmt.Sprintf(" %ddBm", int(d.RSSI)), 10)),
	}
}
