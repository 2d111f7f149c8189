package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"tof-calibrator.klederson.com/internal/bluetooth"
	"tof-calibrator.klederson.com/internal/calibration"
	"tof-calibrator.klederson.com/internal/config"
)

func TestRenderFormShowsValuesAndError(t *testing.T) {
	out := RenderForm(FormView{
		Fields: calibration.Fields{DeviceID: "dev1", TxPower: "-20", Feet: "10", BLEInterval: "2"},
		Error:  calibration.ErrIntervalTooShort.Error(),
	}, 60, 20)

	assert.Contains(t, out, "dev1")
	assert.Contains(t, out, "-20 dBm")
	assert.Contains(t, out, "Upload")
	assert.Contains(t, out, "BLE Interval has to be above 3 seconds.")
}

func TestRenderFormLoadingDisablesButton(t *testing.T) {
	out := RenderForm(FormView{Loading: true, Frame: 1}, 60, 20)

	assert.Contains(t, out, "/ Uploading")
	assert.NotContains(t, out, "^ Upload")
}

func TestRenderFormPlaceholders(t *testing.T) {
	out := RenderForm(FormView{Focus: FocusNearby}, 60, 20)

	assert.Contains(t, out, "Device ID")
	assert.Contains(t, out, "< Tx Power >")
}

func TestRenderNotice(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", RenderNotice(80, false, ""))
	assert.Contains(RenderNotice(80, true, ""), SuccessNoticeText)

	failed := RenderNotice(80, true, "publish endpoint returned 500")
	assert.Contains(failed, "Upload failed: publish endpoint returned 500")
	assert.NotContains(failed, SuccessNoticeText)
	assert.LessOrEqual(lipgloss.Width(failed), 80)
}

func TestRenderNearby(t *testing.T) {
	devs := []*bluetooth.Device{
		{MAC: "AA:BB:CC:DD:EE:01", Name: "TOF-01", RSSI: -50, Distance: 1},
		{MAC: "AA:BB:CC:DD:EE:02", RSSI: -70, Distance: 3},
	}
	out := RenderNearby(NearbyView{Devices: devs, Cursor: 1, Focused: true, Scanning: true}, 36, 20)

	assert.Contains(t, out, "NEARBY [2]")
	assert.Contains(t, out, "TOF-01")
	assert.Contains(t, out, ">> [unnamed]")
	assert.Equal(t, 20, len(strings.Split(out, "\n")))
}

func TestRenderNearbyScanOff(t *testing.T) {
	out := RenderNearby(NearbyView{}, 36, 12)
	assert.Contains(t, out, "Scan off")
	assert.Contains(t, out, "--scan")
	assert.NotContains(t, out, "Ctrl+R")
}

func TestRenderNearbyScanPaused(t *testing.T) {
	out := RenderNearby(NearbyView{CanScan: true}, 36, 12)
	assert.Contains(t, out, "Scan paused")
	assert.Contains(t, out, "Ctrl+R to resume")
}

func TestRenderNearbyCapsRows(t *testing.T) {
	var devs []*bluetooth.Device
	for i := 0; i < config.MaxSuggestions+4; i++ {
		devs = append(devs, &bluetooth.Device{
			MAC:  fmt.Sprintf("AA:BB:CC:DD:EE:%02X", i),
			Name: fmt.Sprintf("TOF-%02d", i),
			RSSI: float64(-40 - i),
		})
	}
	out := RenderNearby(NearbyView{Devices: devs, Scanning: true, CanScan: true}, 36, 60)

	assert.Contains(t, out, fmt.Sprintf("TOF-%02d", config.MaxSuggestions-1))
	assert.NotContains(t, out, fmt.Sprintf("TOF-%02d", config.MaxSuggestions))
}

func TestRenderBars(t *testing.T) {
	menu := RenderMenuBar(140, "v1.0", "http://host/publish", true)
	assert.Contains(t, menu, "TOF-CALIBRATOR")
	assert.Contains(t, menu, "DEMO")

	status := RenderStatusBar(100, calibration.Status{Kind: calibration.StatusInFlight}, true, 3)
	assert.Contains(t, status, "[UPLOADING]")
	assert.Contains(t, status, "Nearby: 3")

	status = RenderStatusBar(100, calibration.Status{Kind: calibration.StatusFailed}, false, 0)
	assert.Contains(t, status, "[FAILED]")
}
