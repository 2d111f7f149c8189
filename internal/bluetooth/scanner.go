package bluetooth

import (
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"
)

// Sender delivers messages into the running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// DeviceDiscoveredMsg is sent when an advertisement is received.
type DeviceDiscoveredMsg struct {
	MAC  string
	Name string
	RSSI int16
}

// Scanner is implemented by the real and mock scanners.
type Scanner interface {
	Start(s Sender) error
	Stop()
}

// BLEScanner handles Bluetooth Low Energy scanning.
type BLEScanner struct {
	adapter *bluetooth.Adapter
	logger  *logrus.Logger
	running atomic.Bool
}

// NewBLEScanner creates a scanner on the default adapter.
func NewBLEScanner(logger *logrus.Logger) *BLEScanner {
	return &BLEScanner{
		adapter: bluetooth.DefaultAdapter,
		logger:  logger,
	}
}

// Start begins BLE scanning in a goroutine. Discovered devices are sent
// as tea messages via s.Send().
func (sc *BLEScanner) Start(s Sender) error {
	if err := sc.adapter.Enable(); err != nil {
		return fmt.Errorf("failed to enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
	}

	sc.running.Store(true)
	go func() {
		err := sc.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !sc.running.Load() {
				return
			}
			s.Send(DeviceDiscoveredMsg{
				MAC:  result.Address.String(),
				Name: advertisedName(result),
				RSSI: result.RSSI,
			})
		})
		if err != nil {
			sc.logger.WithError(err).Warn("BLE scan stopped")
		}
	}()

	sc.logger.Debug("BLE scanner started")
	return nil
}

// Stop halts the BLE scanner.
func (sc *BLEScanner) Stop() {
	if !sc.running.Swap(false) {
		return
	}
	_ = sc.adapter.StopScan()
}

// advertisedName falls back to "<manufacturer> <last two octets>" when the
// advertisement carries no local name.
func advertisedName(result bluetooth.ScanResult) string {
	name := result.LocalName()
	if name != "" {
		return name
	}
	mfrs := result.ManufacturerData()
	if len(mfrs) == 0 {
		return ""
	}
	return fallbackName(LookupManufacturer(mfrs[0].CompanyID), result.Address.String())
}

func fallbackName(mfrName, mac string) string {
	if mfrName == "" || len(mac) < 17 {
		return ""
	}
	return mfrName + " " + mac[12:]
}
