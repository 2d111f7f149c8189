package bluetooth

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type collectingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (c *collectingSender) Send(msg tea.Msg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func (c *collectingSender) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

func TestMockScannerEmits(t *testing.T) {
	sender := &collectingSender{}
	m := NewMockScanner()
	assert.NoError(t, m.Start(sender))
	defer m.Stop()

	assert.Eventually(t, func() bool {
		return sender.count() >= len(mockSensorNames)
	}, 2*time.Second, 50*time.Millisecond)

	sender.mu.Lock()
	_, ok := sender.msgs[0].(DeviceDiscoveredMsg)
	sender.mu.Unlock()
	assert.True(t, ok)
}
