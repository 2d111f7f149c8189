package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"tof-calibrator.klederson.com/internal/bluetooth"
	"tof-calibrator.klederson.com/internal/calibration"
	"tof-calibrator.klederson.com/internal/config"
	"tof-calibrator.klederson.com/internal/ui"
)

const frameInterval = 100 * time.Millisecond

// Options configures a new AppModel.
type Options struct {
	Publisher calibration.Publisher
	Scanner   bluetooth.Scanner // nil disables nearby suggestions
	Logger    *logrus.Logger
	Target    string // shown in the menu bar
	Version   string
	Demo      bool
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	ctrl      *calibration.Controller
	store     *bluetooth.DeviceStore
	publisher calibration.Publisher
	scanner   bluetooth.Scanner
	logger    *logrus.Logger
	scanning  bool
}

// AppModel is the root Bubble Tea model for the calibration form.
type AppModel struct {
	width  int
	height int

	focus     ui.Focus
	cursor    int
	frame     int
	noticeSeq int

	target  string
	version string
	demo    bool

	shared *shared

	// Cached snapshot
	devices []*bluetooth.Device
}

// New creates a new AppModel.
func New(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return AppModel{
		target:  opts.Target,
		version: opts.Version,
		demo:    opts.Demo,
		shared: &shared{
			ctrl:      calibration.NewController(),
			store:     bluetooth.NewDeviceStore(),
			publisher: opts.Publisher,
			scanner:   opts.Scanner,
			logger:    logger,
		},
	}
}

// Controller exposes the submission controller, mainly for tests.
func (m AppModel) Controller() *calibration.Controller {
	return m.shared.ctrl
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		evictCmd(),
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.frame++
		m.devices = m.shared.store.Snapshot()
		if m.cursor >= len(m.devices) {
			m.cursor = max(0, len(m.devices)-1)
		}
		return m, tickCmd()

	case EvictMsg:
		m.shared.store.Evict(config.DeviceTimeout)
		return m, evictCmd()

	case bluetooth.DeviceDiscoveredMsg:
		if m.shared.scanning {
			m.shared.store.Upsert(msg.MAC, msg.Name, float64(msg.RSSI))
		}
		return m, nil

	case PublishResultMsg:
		m.shared.ctrl.Complete(msg.Err)
		if msg.Err != nil {
			return m, nil
		}
		m.noticeSeq++
		return m, noticeCmd(m.noticeSeq)

	case NoticeExpiredMsg:
		if msg.Seq == m.noticeSeq && m.shared.ctrl.SuccessNotice() {
			m.shared.ctrl.DismissNotice()
		}
		return m, nil
	}

	return m, nil
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing TOF Calibrator..."
	}

	ctrl := m.shared.ctrl

	bodyH := m.height - 3 // menu, notice, status
	if bodyH < 16 {
		bodyH = 16
	}
	formW := m.width * 2 / 3
	if formW < config.FormWidth {
		formW = config.FormWidth
	}
	nearbyW := m.width - formW
	if nearbyW < 24 {
		nearbyW = 24
	}

	menuBar := ui.RenderMenuBar(m.width, m.version, m.target, m.demo)
	form := ui.RenderForm(ui.FormView{
		Fields:  ctrl.Fields(),
		Focus:   m.focus,
		Loading: ctrl.Loading(),
		Error:   ctrl.Error(),
		Frame:   m.frame,
	}, formW, bodyH)
	nearby := ui.RenderNearby(ui.NearbyView{
		Devices:  m.devices,
		Cursor:   m.cursor,
		Focused:  m.focus == ui.FocusNearby,
		Scanning: m.shared.scanning,
		CanScan:  m.shared.scanner != nil,
	}, nearbyW, bodyH)
	notice := ui.RenderNotice(m.width, ctrl.SuccessNotice(), ctrl.FailureNotice())
	statusBar := ui.RenderStatusBar(m.width, ctrl.Status(), m.shared.scanning, len(m.devices))

	return ui.ComposeLayout(menuBar, form, nearby, notice, statusBar)
}

// StartScanner starts the configured scanner. Must be called before p.Run().
// A failure leaves the form usable without suggestions.
func (m *AppModel) StartScanner(s bluetooth.Sender) error {
	if m.shared.scanner == nil {
		return nil
	}
	if err := m.shared.scanner.Start(s); err != nil {
		m.shared.scanner = nil
		return err
	}
	m.shared.scanning = true
	return nil
}

func (m *AppModel) stopScanner() {
	if m.shared.scanner != nil {
		m.shared.scanner.Stop()
	}
}

func publishCmd(pub calibration.Publisher, payload calibration.Payload) tea.Cmd {
	return func() tea.Msg {
		return PublishResultMsg{Err: pub.Publish(context.Background(), payload)}
	}
}

func noticeCmd(seq int) tea.Cmd {
	return tea.Tick(config.SnackbarDuration, func(time.Time) tea.Msg {
		return NoticeExpiredMsg{Seq: seq}
	})
}

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func evictCmd() tea.Cmd {
	return tea.Tick(config.EvictInterval, func(t time.Time) tea.Msg {
		return EvictMsg(t)
	})
}
