package ui

import (
	"fmt"
	"strings"

	"tof-calibrator.klederson.com/internal/calibration"
)

// Focus identifies the control receiving key input.
type Focus int

const (
	FocusDeviceID Focus = iota
	FocusTxPower
	FocusFeet
	FocusBLEInterval
	FocusNearby
	FocusCount
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// FormView is everything the form panel needs to draw itself.
type FormView struct {
	Fields  calibration.Fields
	Focus   Focus
	Loading bool
	Error   string
	Frame   int // spinner frame while loading
}

// RenderForm renders the calibration form with its upload button and the
// inline validation error.
func RenderForm(v FormView, width, height int) string {
	innerW := width - 4
	if innerW < 30 {
		innerW = 30
	}

	title := StylePanelTitle.Render("TOF SENSOR CALIBRATION V1")
	sep := StyleSeparator.Render(strings.Repeat("-", innerW))
	lines := []string{title, sep, ""}

	rows := []struct {
		focus       Focus
		label       string
		value       string
		placeholder string
	}{
		{FocusDeviceID, "Device ID", v.Fields.DeviceID, "Device ID"},
		{FocusTxPower, "Tx Ble Power", txPowerValue(v.Fields.TxPower), "Tx Power"},
		{FocusFeet, "Validation Feet", v.Fields.Feet, "Feet"},
		{FocusBLEInterval, "Ble Interval", v.Fields.BLEInterval, "BLE Interval (s)"},
	}

	valueW := innerW - 20
	if valueW < 10 {
		valueW = 10
	}
	for _, r := range rows {
		label := StyleLabel.Render(fmt.Sprintf("  %-16s", r.label))
		lines = append(lines, label+renderInput(r.value, r.placeholder, valueW, v.Focus == r.focus, r.focus == FocusTxPower), "")
	}

	lines = append(lines, "  "+renderButton(v.Loading, v.Frame))
	lines = append(lines, "")
	if v.Error != "" {
		lines = append(lines, "  "+StyleError.Render(v.Error))
	}

	for len(lines) < height-2 {
		lines = append(lines, "")
	}

	style := StylePanelBorder
	if v.Focus != FocusNearby {
		style = StylePanelActive
	}
	return style.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func txPowerValue(raw string) string {
	if raw == "" {
		return ""
	}
	return raw + " dBm"
}

func renderInput(value, placeholder string, width int, focused, selector bool) string {
	text := value
	sty := StyleValue
	if text == "" {
		text = placeholder
		sty = StylePlaceholder
	}
	if selector {
		text = "< " + text + " >"
	} else if focused {
		text += "_"
	}
	text = truncRaw(text, width)

	if focused {
		return StyleFocused.Render(text)
	}
	return sty.Render(text)
}

func renderButton(loading bool, frame int) string {
	if loading {
		spin := spinnerFrames[frame%len(spinnerFrames)]
		return StyleButtonDisabled.Render(spin + " Uploading")
	}
	return StyleButton.Render("^ Upload")
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w])
	}
	if len(r) < w {
		return s + strings.Repeat(" ", w-len(r))
	}
	return s
}
