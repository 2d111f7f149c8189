package bluetooth

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

var mockSensorNames = []string{
	"TOF-01A3",
	"TOF-01B7",
	"TOF-02C1",
	"TOF-0D4E",
	"Ruuvi 5F:21",
	"",
	"",
}

type mockDevice struct {
	mac       string
	name      string
	baseRSSI  float64
	phase     float64
	amplitude float64
}

// MockScanner generates fake advertisers for demo mode.
type MockScanner struct {
	devices []mockDevice
	cancel  context.CancelFunc
}

// NewMockScanner creates a mock scanner with a fixed set of fake sensors.
func NewMockScanner() *MockScanner {
	devices := make([]mockDevice, len(mockSensorNames))
	for i, name := range mockSensorNames {
		devices[i] = mockDevice{
			mac:       randomMAC(),
			name:      name,
			baseRSSI:  -45 - rand.Float64()*40, // -45 to -85 dBm
			phase:     rand.Float64() * 2 * math.Pi,
			amplitude: 2 + rand.Float64()*6,
		}
	}
	return &MockScanner{devices: devices}
}

// Start begins emitting devices every 250ms.
func (m *MockScanner) Start(s Sender) error {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	go m.loop(ctx, s)
	return nil
}

func (m *MockScanner) loop(ctx context.Context, s Sender) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	t := 0.0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t += 0.25
			for _, d := range m.devices {
				rssi := d.baseRSSI + d.amplitude*math.Sin(t*0.5+d.phase) + (rand.Float64()-0.5)*3
				s.Send(DeviceDiscoveredMsg{MAC: d.mac, Name: d.name, RSSI: int16(rssi)})
			}
		}
	}
}

// Stop halts the mock scanner.
func (m *MockScanner) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
}

func randomMAC() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = byte(rand.Intn(256))
	}
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", b[0], b[1], b[2], b[3], b[4], b[5])
}
