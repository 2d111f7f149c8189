package config

import "time"

const (
	// Publish endpoint
	DefaultEndpoint = "http://54.89.246.64:8001/publish"
	PublishPath     = "/publish"
	TopicSuffix     = "react"
	CommandPrefix   = "TOF"

	// Form
	MinBLEIntervalSec = 3                // Shortest accepted broadcast interval
	SnackbarDuration  = 6 * time.Second  // Success notice auto-hide
	FormWidth         = 56               // Form panel width in cells

	// Nearby device suggestions
	MeasuredPower  = -59.0            // RSSI at 1 meter (dBm)
	PathLossExp    = 2.5              // Path loss exponent (N)
	DeviceTimeout  = 30 * time.Second // Remove devices not seen for this long
	EvictInterval  = 5 * time.Second  // How often to run eviction
	SmoothingAlpha = 0.3              // EMA smoothing factor (30% new, 70% old)
	MaxSuggestions = 8                // Rows shown in the nearby panel

	// MQTT
	MQTTTimeout = 5 * time.Second // connect / publish wait

	// Bridge
	DefaultBridgePort = 8001

	// Demo mode
	DemoLatency   = 700 * time.Millisecond
	DemoFailEvery = 4 // every Nth demo publish fails

	// App
	AppName = "TOF-CALIBRATOR"
)
