package bluetooth

import (
	"sort"
	"sync"
	"time"

	"tof-calibrator.klederson.com/internal/config"
)

// DeviceStore tracks the advertisers offered as device id suggestions.
// Scanner callbacks write to it from their own goroutines.
type DeviceStore struct {
	mu      sync.RWMutex
	devices map[string]*Device
	now     func() time.Time
}

// NewDeviceStore returns an empty store on the wall clock.
func NewDeviceStore() *DeviceStore {
	return &DeviceStore{
		devices: make(map[string]*Device),
		now:     time.Now,
	}
}

// Upsert records one advertisement. Repeat sightings blend into the
// previous signal level so the suggestion order stays steady, and a known
// sensor name survives later unnamed packets.
func (s *DeviceStore) Upsert(mac, name string, rssi float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if known, ok := s.devices[mac]; ok {
		known.RSSI = known.RSSI*(1-config.SmoothingAlpha) + rssi*config.SmoothingAlpha
		known.Distance = RSSIToDistance(known.RSSI, config.MeasuredPower, config.PathLossExp)
		known.LastSeen = now
		if name != "" {
			known.Name = name
		}
		return
	}

	s.devices[mac] = &Device{
		MAC:      mac,
		Name:     name,
		RSSI:     rssi,
		LastSeen: now,
		Distance: RSSIToDistance(rssi, config.MeasuredPower, config.PathLossExp),
	}
}

// Evict drops sensors that went quiet for longer than timeout and reports
// how many were dropped.
func (s *DeviceStore) Evict(timeout time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-timeout)
	dropped := 0
	for mac, dev := range s.devices {
		if dev.LastSeen.Before(cutoff) {
			delete(s.devices, mac)
			dropped++
		}
	}
	return dropped
}

// Snapshot copies the suggestions, nearest sensor first. Equal signals are
// ordered by MAC so the list does not flicker between frames.
func (s *DeviceStore) Snapshot() []*Device {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Device, 0, len(s.devices))
	for _, d := range s.devices {
		cp := *d
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].RSSI == out[j].RSSI {
			return out[i].MAC < out[j].MAC
		}
		return out[i].RSSI > out[j].RSSI
	})
	return out
}

// Count is the number of sensors currently suggested.
func (s *DeviceStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.devices)
}
