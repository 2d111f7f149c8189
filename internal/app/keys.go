package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"tof-calibrator.klederson.com/internal/ui"
)

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.stopScanner()
		return m, tea.Quit

	case "tab":
		m.focus = (m.focus + 1) % ui.FocusCount
		return m, nil

	case "shift+tab":
		m.focus = (m.focus + ui.FocusCount - 1) % ui.FocusCount
		return m, nil

	case "up":
		if m.focus == ui.FocusNearby {
			if m.cursor > 0 {
				m.cursor--
			}
		} else if m.focus > ui.FocusDeviceID {
			m.focus--
		}
		return m, nil

	case "down":
		if m.focus == ui.FocusNearby {
			if m.cursor < len(m.devices)-1 {
				m.cursor++
			}
		} else if m.focus < ui.FocusBLEInterval {
			m.focus++
		}
		return m, nil

	case "left":
		if m.focus == ui.FocusTxPower {
			m.shared.ctrl.CycleTxPower(-1)
		}
		return m, nil

	case "right":
		if m.focus == ui.FocusTxPower {
			m.shared.ctrl.CycleTxPower(1)
		}
		return m, nil

	case "enter":
		if m.focus == ui.FocusNearby {
			return m.pickDevice()
		}
		return m.submit()

	case "ctrl+s":
		return m.submit()

	case "esc":
		m.shared.ctrl.DismissNotice()
		return m, nil

	case "ctrl+r":
		if m.shared.scanner != nil {
			m.shared.scanning = !m.shared.scanning
			m.shared.logger.WithField("scanning", m.shared.scanning).Debug("Scan toggled")
		}
		return m, nil

	case "backspace":
		m.editField(func(v string) string {
			r := []rune(v)
			if len(r) == 0 {
				return v
			}
			return string(r[:len(r)-1])
		})
		return m, nil
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.editField(func(v string) string {
			return v + filterInput(m.focus, msg.Runes)
		})
	}
	return m, nil
}

// submit is ignored while loading, which is the only guard against
// overlapping publishes.
func (m AppModel) submit() (tea.Model, tea.Cmd) {
	ctrl := m.shared.ctrl
	if ctrl.Loading() {
		return m, nil
	}

	payload, err := ctrl.Begin()
	if err != nil {
		m.shared.logger.WithError(err).Debug("Submission rejected")
		return m, nil
	}

	m.shared.logger.WithFields(logrus.Fields{
		"topic":   payload.Topic,
		"message": payload.Message,
	}).Info("Uploading calibration")
	return m, publishCmd(m.shared.publisher, payload)
}

func (m AppModel) pickDevice() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.devices) {
		return m, nil
	}
	m.shared.ctrl.SetDeviceID(m.devices[m.cursor].DeviceID())
	m.focus = ui.FocusDeviceID
	return m, nil
}

func (m AppModel) editField(edit func(string) string) {
	ctrl := m.shared.ctrl
	f := ctrl.Fields()
	switch m.focus {
	case ui.FocusDeviceID:
		ctrl.SetDeviceID(edit(f.DeviceID))
	case ui.FocusFeet:
		ctrl.SetFeet(edit(f.Feet))
	case ui.FocusBLEInterval:
		ctrl.SetBLEInterval(edit(f.BLEInterval))
	}
}

// filterInput keeps the runes the focused field accepts. Numeric fields take
// digits, '.' and '-' like a browser number input.
func filterInput(focus ui.Focus, runes []rune) string {
	if focus == ui.FocusDeviceID {
		return string(runes)
	}
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			out = append(out, r)
		}
	}
	return string(out)
}
