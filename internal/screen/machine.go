package screen

import (
	"io"
	"time"

	"github.com/doridoridoriand/cardiomon-go/internal/alert"
	"github.com/doridoridoriand/cardiomon-go/internal/config"
	"github.com/doridoridoriand/cardiomon-go/internal/history"
	"github.com/doridoridoriand/cardiomon-go/internal/log"
	"github.com/doridoridoriand/cardiomon-go/internal/vitals"
)

// State identifies the active screen.
type State string

const (
	StateMain     State = "MAIN"
	StateSettings State = "SETTINGS"
	StateHistory  State = "HISTORY"
	StateError    State = "ERROR"
)

const noticeDuration = 2 * time.Second

// Machine is the flat screen state machine. Exactly one state is active;
// touch dispatch and the inactivity timeout are its only mutators. Sleep is
// implicit: displayOn=false blanks the panel without changing state.
type Machine struct {
	r          Renderer
	logger     *log.Logger
	hist       *history.Store
	alerts     *alert.Engine
	thresholds *config.AlertThresholds

	state      State
	displayOn  bool
	brightness int
	lowPower   bool
	lastTouch  time.Time
	timeout    time.Duration

	noticeUntil time.Time

	waveformX int
	waveLastY int

	exportOut io.Writer
	onExport  func()
	onClear   func()

	now func() time.Time
}

// NewMachine constructs the state machine in Main with the display on.
func NewMachine(r Renderer, logger *log.Logger, hist *history.Store, alerts *alert.Engine, thresholds *config.AlertThresholds, timeout time.Duration, brightness int) *Machine {
	m := &Machine{
		r:          r,
		logger:     logger,
		hist:       hist,
		alerts:     alerts,
		thresholds: thresholds,
		state:      StateMain,
		displayOn:  true,
		brightness: brightness,
		timeout:    timeout,
		waveformX:  15,
		waveLastY:  160,
		now:        time.Now,
	}
	m.lastTouch = m.now()
	if logger != nil {
		m.exportOut = logger.Console()
	}
	return m
}

// SetClock overrides the wall clock, for tests.
func (m *Machine) SetClock(now func() time.Time) {
	m.now = now
	m.lastTouch = now()
}

// SetExportWriter redirects CSV export output.
func (m *Machine) SetExportWriter(w io.Writer) { m.exportOut = w }

// SetHooks installs callbacks fired after the Export and Clear actions, so
// the owner can persist preferences or log the event.
func (m *Machine) SetHooks(onExport, onClear func()) {
	m.onExport = onExport
	m.onClear = onClear
}

// State returns the active screen state.
func (m *Machine) State() State { return m.state }

// DisplayOn reports panel visibility.
func (m *Machine) DisplayOn() bool { return m.displayOn }

// HandleTouch dispatches one touch event. A touch while the display is
// blanked only wakes the panel; it is consumed without reaching the state
// machine.
func (m *Machine) HandleTouch(x, y int) {
	m.lastTouch = m.now()

	if !m.displayOn {
		m.displayOn = true
		m.showCurrent()
		return
	}

	switch m.state {
	case StateMain:
		m.touchMain(x, y)
	case StateSettings:
		m.touchSettings(x, y)
	case StateHistory:
		m.touchHistory(x, y)
	case StateError:
		// Error screen ignores input; recovery is watchdog-driven.
	}
}

func (m *Machine) touchMain(x, y int) {
	switch {
	case zoneSettings.Contains(x, y):
		m.state = StateSettings
		m.ShowSettings()
	case zoneHistory.Contains(x, y):
		m.state = StateHistory
		m.ShowHistory()
	case zoneInfo.Contains(x, y):
		m.logSystemInfo()
	}
}

func (m *Machine) touchSettings(x, y int) {
	switch {
	case zoneBack.Contains(x, y):
		m.state = StateMain
		m.ShowMain()
	case zoneExport.Contains(x, y):
		m.exportData()
	case zoneClear.Contains(x, y):
		m.clearData()
	}
}

func (m *Machine) touchHistory(x, y int) {
	if zoneBack.Contains(x, y) {
		m.state = StateMain
		m.ShowMain()
	}
}

// CheckTimeout blanks the display after the inactivity timeout. The state
// itself is unchanged, only visibility.
func (m *Machine) CheckTimeout() {
	if !m.displayOn {
		return
	}
	if m.now().Sub(m.lastTouch) <= m.timeout {
		return
	}
	m.displayOn = false
	m.r.FillScreen(ColorBlack)
	m.r.Flush()
}

// EnterError switches to the error screen.
func (m *Machine) EnterError(title, message string) {
	m.state = StateError
	m.displayOn = true
	m.showError(title, message)
}

// RecoverToMain leaves the error screen after a watchdog reset.
func (m *Machine) RecoverToMain() {
	m.state = StateMain
	m.waveformX = 15
	m.waveLastY = 160
	m.ShowMain()
}

// SetLowPower toggles low-power mode: brightness is dimmed and a banner is
// drawn over the header.
func (m *Machine) SetLowPower(on bool) {
	if on == m.lowPower {
		return
	}
	m.lowPower = on
	if on {
		m.r.SetBrightness(50)
		if m.displayOn {
			m.r.FillRect(0, 0, Width, 20, ColorRed)
			m.r.DrawText(5, 5, 1, "LOW POWER MODE", ColorWhite)
			m.r.Flush()
		}
		if m.logger != nil {
			m.logger.Warn("entering low power mode", nil)
		}
		return
	}
	m.r.SetBrightness(m.brightness)
	m.showCurrent()
}

// ShowAlertBanner draws an alert band under the header with a
// level-dependent color. Installed as the alert engine's notifier.
func (m *Machine) ShowAlertBanner(message string, level alert.Level) {
	if !m.displayOn {
		return
	}
	c := ColorYellow
	switch level {
	case alert.LevelCritical:
		c = ColorRed
	case alert.LevelWarning:
		c = ColorOrange
	}
	m.r.FillRect(0, 30, Width, 25, c)
	m.r.DrawText(5, 38, 1, message, ColorBlack)
	m.r.Flush()
}

func (m *Machine) exportData() {
	if m.exportOut != nil {
		if err := m.hist.ExportCSV(m.exportOut); err != nil && m.logger != nil {
			m.logger.LogError("screen", err, nil)
		}
	}
	if m.onExport != nil {
		m.onExport()
	}
	m.confirm("Data Exported!", ColorGreen)
}

func (m *Machine) clearData() {
	m.hist.Clear()
	if m.onClear != nil {
		m.onClear()
	}
	m.confirm("Data Cleared!", ColorRed)
}

// confirm shows a transient confirmation box; the periodic refresh redraws
// the settings screen once the notice expires.
func (m *Machine) confirm(text string, c Color) {
	m.r.FillRect(50, 100, 140, 60, c)
	m.r.DrawText(60, 120, 2, text, ColorWhite)
	m.r.Flush()
	m.noticeUntil = m.now().Add(noticeDuration)
}

func (m *Machine) logSystemInfo() {
	if m.logger == nil {
		return
	}
	m.logger.Info("system info", map[string]interface{}{
		"logged_samples": m.hist.Len(),
		"active_alerts":  len(m.alerts.Active()),
		"screen":         string(m.state),
		"display_on":     m.displayOn,
	})
}

func (m *Machine) showCurrent() {
	switch m.state {
	case StateSettings:
		m.ShowSettings()
	case StateHistory:
		m.ShowHistory()
	case StateError:
		m.showError("System Error", "recovering")
	default:
		m.ShowMain()
	}
}

// Refresh is the periodic display task. Only the Main screen repaints
// continuously; the other screens are static between touches.
func (m *Machine) Refresh(v vitals.Sample, window []vitals.Reading) {
	if !m.displayOn {
		return
	}
	if !m.noticeUntil.IsZero() && m.now().After(m.noticeUntil) {
		m.noticeUntil = time.Time{}
		m.showCurrent()
		return
	}
	if m.state != StateMain {
		return
	}
	m.updateVitals(v)
	m.drawWaveform(window, v.FingerPresent)
	m.drawStatusBar(v)
	m.r.Flush()
}
