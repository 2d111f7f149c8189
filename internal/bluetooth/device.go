package bluetooth

import (
	"math"
	"time"
)

// Device is a nearby BLE advertiser that may be the sensor being calibrated.
type Device struct {
	MAC      string
	Name     string
	RSSI     float64
	LastSeen time.Time
	Distance float64 // Estimated distance in meters
}

// DisplayName returns the device name or "[unnamed]" if empty.
func (d *Device) DisplayName() string {
	if d.Name == "" {
		return "[unnamed]"
	}
	return d.Name
}

// DeviceID is the value copied into the form when this device is picked:
// the advertised name, or the MAC when the device is unnamed.
func (d *Device) DeviceID() string {
	if d.Name != "" {
		return d.Name
	}
	return d.MAC
}

// Feet converts the estimated distance to feet.
func (d *Device) Feet() float64 {
	return d.Distance * 3.28084
}

// RSSIToDistance estimates distance from RSSI using the log-distance path loss model.
// Formula: d = 10^((measuredPower - rssi) / (10 * n))
func RSSIToDistance(rssi, measuredPower, pathLossExp float64) float64 {
	if rssi >= 0 {
		return 0.1
	}
	d := math.Pow(10, (measuredPower-rssi)/(10*pathLossExp))
	if d < 0.1 {
		return 0.1
	}
	return d
}
