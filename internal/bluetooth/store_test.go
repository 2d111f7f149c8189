package bluetooth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"tof-calibrator.klederson.com/internal/config"
)

func TestUpsertSmoothsRSSI(t *testing.T) {
	assert := assert.New(t)

	s := NewDeviceStore()
	s.Upsert("AA:BB:CC:DD:EE:01", "TOF-01", -60)
	s.Upsert("AA:BB:CC:DD:EE:01", "", -80)

	devs := s.Snapshot()
	assert.Len(devs, 1)
	want := -60*(1-config.SmoothingAlpha) + -80*config.SmoothingAlpha
	assert.InDelta(want, devs[0].RSSI, 1e-9)
	assert.Equal("TOF-01", devs[0].Name, "empty name keeps known name")
}

func TestSnapshotStrongestFirst(t *testing.T) {
	s := NewDeviceStore()
	s.Upsert("AA:BB:CC:DD:EE:01", "far", -90)
	s.Upsert("AA:BB:CC:DD:EE:02", "near", -40)
	s.Upsert("AA:BB:CC:DD:EE:03", "mid", -65)

	devs := s.Snapshot()
	names := []string{devs[0].Name, devs[1].Name, devs[2].Name}
	assert.Equal(t, []string{"near", "mid", "far"}, names)
	assert.Equal(t, 3, s.Count())
}

func TestSnapshotIsCopy(t *testing.T) {
	s := NewDeviceStore()
	s.Upsert("AA:BB:CC:DD:EE:01", "TOF-01", -60)

	s.Snapshot()[0].Name = "changed"
	assert.Equal(t, "TOF-01", s.Snapshot()[0].Name)
}

func TestEvict(t *testing.T) {
	assert := assert.New(t)

	now := time.Now()
	s := NewDeviceStore()
	s.now = func() time.Time { return now.Add(-time.Minute) }
	s.Upsert("AA:BB:CC:DD:EE:01", "stale", -60)
	s.now = func() time.Time { return now }
	s.Upsert("AA:BB:CC:DD:EE:02", "fresh", -60)

	assert.Equal(1, s.Evict(config.DeviceTimeout))
	devs := s.Snapshot()
	assert.Len(devs, 1)
	assert.Equal("fresh", devs[0].Name)
}

func TestDeviceID(t *testing.T) {
	named := &Device{MAC: "AA:BB:CC:DD:EE:01", Name: "TOF-01"}
	unnamed := &Device{MAC: "AA:BB:CC:DD:EE:02"}

	assert.Equal(t, "TOF-01", named.DeviceID())
	assert.Equal(t, "AA:BB:CC:DD:EE:02", unnamed.DeviceID())
	assert.Equal(t, "[unnamed]", unnamed.DisplayName())
}

func TestRSSIToDistance(t *testing.T) {
	assert := assert.New(t)

	assert.InDelta(1.0, RSSIToDistance(config.MeasuredPower, config.MeasuredPower, config.PathLossExp), 1e-9)
	assert.Equal(0.1, RSSIToDistance(5, config.MeasuredPower, config.PathLossExp))
	assert.Greater(RSSIToDistance(-80, config.MeasuredPower, config.PathLossExp), RSSIToDistance(-60, config.MeasuredPower, config.PathLossExp))
}

func TestFallbackName(t *testing.T) {
	assert.Equal(t, "Nordic EE:FF", fallbackName(LookupManufacturer(0x0059), "AA:BB:CC:DD:EE:FF"))
	assert.Equal(t, "", fallbackName("", "AA:BB:CC:DD:EE:FF"))
	assert.Equal(t, "", LookupManufacturer(0xFFFF))
}
