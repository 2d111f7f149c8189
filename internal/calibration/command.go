package calibration

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"tof-calibrator.klederson.com/internal/config"
)

var (
	ErrMissingFields    = errors.New("Please fill in all the fields before uploading.")
	ErrIntervalTooShort = errors.New("BLE Interval has to be above 3 seconds.")
)

// Fields are the raw form values as typed or selected by the user.
type Fields struct {
	DeviceID    string
	TxPower     string
	Feet        string
	BLEInterval string // seconds
}

// Command is a validated calibration request.
type Command struct {
	DeviceID    string
	TxPower     string
	Feet        string
	IntervalSec float64
}

// Payload is the JSON body accepted by the publish endpoint.
type Payload struct {
	Topic   string `json:"topic"`
	Message string `json:"message"`
}

// Validate checks that every field is filled and that the interval is at
// least config.MinBLEIntervalSec whole seconds. The first failing check wins.
func Validate(f Fields) (Command, error) {
	deviceID := strings.TrimSpace(f.DeviceID)
	txPower := strings.TrimSpace(f.TxPower)
	feet := strings.TrimSpace(f.Feet)
	interval := strings.TrimSpace(f.BLEInterval)

	if deviceID == "" || txPower == "" || feet == "" || interval == "" {
		return Command{}, ErrMissingFields
	}

	secs, ok := parseInterval(interval)
	if !ok || math.Trunc(secs) < config.MinBLEIntervalSec {
		return Command{}, ErrIntervalTooShort
	}

	return Command{
		DeviceID:    deviceID,
		TxPower:     txPower,
		Feet:        feet,
		IntervalSec: secs,
	}, nil
}

// Topic is the device scoped channel, "<deviceId>/react".
func (c Command) Topic() string {
	return c.DeviceID + "/" + config.TopicSuffix
}

// IntervalMillis converts the interval to whole milliseconds.
func (c Command) IntervalMillis() int64 {
	return int64(math.Round(c.IntervalSec * 1000))
}

// Message renders "TOF#<txPower>#<feet>#<intervalMs>".
func (c Command) Message() string {
	return strings.Join([]string{
		config.CommandPrefix,
		c.TxPower,
		c.Feet,
		strconv.FormatInt(c.IntervalMillis(), 10),
	}, "#")
}

func (c Command) Payload() Payload {
	return Payload{Topic: c.Topic(), Message: c.Message()}
}

// parseInterval accepts only a complete, finite decimal whose millisecond
// value fits the wire format. Typos such as "3..5" or "5abc" are rejected
// rather than cut down to their leading digits.
func parseInterval(s string) (float64, bool) {
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, false
	}
	if math.Abs(secs*1000) >= math.MaxInt64 {
		return 0, false
	}
	return secs, true
}
