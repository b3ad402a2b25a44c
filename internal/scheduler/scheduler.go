package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/doridoridoriand/cardiomon-go/internal/alert"
	"github.com/doridoridoriand/cardiomon-go/internal/history"
	"github.com/doridoridoriand/cardiomon-go/internal/log"
	"github.com/doridoridoriand/cardiomon-go/internal/screen"
	"github.com/doridoridoriand/cardiomon-go/internal/state"
	"github.com/doridoridoriand/cardiomon-go/internal/vitals"
)

const (
	tickInterval    = 10 * time.Millisecond
	sensorInterval  = 100 * time.Millisecond
	displayInterval = 100 * time.Millisecond
	logInterval     = 1 * time.Second
	alertInterval   = 1 * time.Second
	trimInterval    = 30 * time.Second
	recoveryDelay   = 5 * time.Second

	lowPowerBattery  = 10.0
	trimHistoryLimit = 10
)

// task is one periodic entry in the dispatch table. interval 0 means every
// tick.
type task struct {
	name     string
	interval time.Duration
	lastRun  time.Time
	run      func(now time.Time)
}

// Monitor owns all device state and drives it from a single cooperative
// tick loop. Within one tick the task order is fixed: acquisition,
// refresh, data log, alert check, screen timeout, low power, memory trim,
// beeps — so a newly acquired sample is always visible to the same tick's
// display, logging and alert evaluation.
type Monitor struct {
	acq    *vitals.Acquisition
	alerts *alert.Engine
	hist   *history.Store
	scr    *screen.Machine
	status state.Store
	logger *log.Logger
	rend   screen.Renderer

	tasks      []*task
	recoveryAt time.Time

	now   func() time.Time
	sleep func(d time.Duration)
}

// NewMonitor wires the components into a monitor. The task table is built
// in the fixed dispatch order.
func NewMonitor(acq *vitals.Acquisition, alerts *alert.Engine, hist *history.Store, scr *screen.Machine, status state.Store, rend screen.Renderer, logger *log.Logger) *Monitor {
	m := &Monitor{
		acq:    acq,
		alerts: alerts,
		hist:   hist,
		scr:    scr,
		status: status,
		logger: logger,
		rend:   rend,
		now:    time.Now,
		sleep:  time.Sleep,
	}
	m.tasks = []*task{
		{name: "acquisition", interval: sensorInterval, run: m.taskAcquire},
		{name: "refresh", interval: displayInterval, run: m.taskRefresh},
		{name: "datalog", interval: logInterval, run: m.taskLog},
		{name: "alertcheck", interval: alertInterval, run: m.taskAlerts},
		{name: "timeout", interval: 0, run: m.taskTimeout},
		{name: "lowpower", interval: 0, run: m.taskLowPower},
		{name: "trim", interval: trimInterval, run: m.taskTrim},
		{name: "beeps", interval: 0, run: m.taskBeeps},
	}
	return m
}

// SetClock overrides the wall clock and sleep, for tests.
func (m *Monitor) SetClock(now func() time.Time, sleep func(time.Duration)) {
	m.now = now
	m.sleep = sleep
}

// Setup runs the boot sequence: splash, sensor bring-up result, main
// screen. A sensor-init failure is degraded, not fatal: the error screen
// is shown transiently and the monitor continues with no-signal vitals.
func (m *Monitor) Setup(sensorErr error) {
	m.scr.ShowSplash()
	m.sleep(2 * time.Second)

	if sensorErr != nil {
		m.logger.LogError("sensor", sensorErr, nil)
		m.scr.EnterError("Sensor Error", "Failed to initialize sensor")
		m.sleep(recoveryDelay)
		m.scr.RecoverToMain()
		return
	}
	m.scr.ShowMain()
}

// Run drives the tick loop until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		now := m.now()
		m.dispatchTouches()

		if !m.recoveryAt.IsZero() {
			// Fault recovery window: only the beep pattern runs until the
			// fixed delay elapses, then the device resets to Main.
			m.alerts.Beeps().Tick()
			if !now.Before(m.recoveryAt) {
				m.reset(now)
			}
		} else {
			m.safeTick(now)
		}

		m.sleep(tickInterval)
	}
}

// dispatchTouches drains pending touch events into the state machine.
// Touch flows independently of the timer tasks.
func (m *Monitor) dispatchTouches() {
	for {
		t, ok := m.rend.PollTouch()
		if !ok {
			return
		}
		m.scr.HandleTouch(t.X, t.Y)
	}
}

// safeTick runs due tasks in table order, converting a panicking task into
// the transient-fault path instead of taking the process down.
func (m *Monitor) safeTick(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			m.handleFault(now, fmt.Sprintf("%v", r))
		}
	}()
	m.runDue(now)
}

func (m *Monitor) runDue(now time.Time) {
	for _, t := range m.tasks {
		if now.Sub(t.lastRun) >= t.interval {
			t.lastRun = now
			t.run(now)
		}
	}
}

// ReportFault routes an external unrecoverable error into the
// error-screen/recovery path.
func (m *Monitor) ReportFault(err error) {
	m.handleFault(m.now(), err.Error())
}

func (m *Monitor) handleFault(now time.Time, msg string) {
	m.logger.LogError("scheduler", fmt.Errorf("system fault: %s", msg), nil)
	m.scr.EnterError("System Error", msg)
	m.alerts.Beeps().Reset()
	m.alerts.Beeps().EnqueueError()
	m.recoveryAt = now.Add(recoveryDelay)
}

// reset is the sole recovery path: rings cleared, timers reset, back to
// Main.
func (m *Monitor) reset(now time.Time) {
	m.acq.Reset()
	m.alerts.ResetCooldown()
	for _, t := range m.tasks {
		t.lastRun = now
	}
	m.recoveryAt = time.Time{}
	m.scr.RecoverToMain()
	m.logger.Info("system reinitialized", nil)
}

func (m *Monitor) taskAcquire(now time.Time) {
	if m.acq.Tick() {
		v := m.acq.Current()
		m.logger.LogVitals(v.HeartRate, v.SpO2, v.BatteryLevel, v.FingerPresent)
	}
}

func (m *Monitor) taskRefresh(now time.Time) {
	m.scr.Refresh(m.acq.Current(), m.acq.Window())

	active := m.alerts.Active()
	last := ""
	if len(active) > 0 {
		last = active[len(active)-1].Message
	}
	m.status.Update(state.MonitorStatus{
		Vitals:        m.acq.Current(),
		Screen:        m.scr.State(),
		DisplayOn:     m.scr.DisplayOn(),
		ActiveAlerts:  len(active),
		LastAlert:     last,
		LoggedSamples: m.hist.Len(),
	})
}

func (m *Monitor) taskLog(now time.Time) {
	m.hist.Append(m.acq.Current())
}

func (m *Monitor) taskAlerts(now time.Time) {
	m.alerts.Check(m.acq.Current())
}

func (m *Monitor) taskTimeout(now time.Time) {
	m.scr.CheckTimeout()
}

func (m *Monitor) taskLowPower(now time.Time) {
	m.scr.SetLowPower(m.acq.BatteryLevel() < lowPowerBattery)
}

func (m *Monitor) taskTrim(now time.Time) {
	if dropped := m.hist.Trim(); dropped > 0 {
		m.logger.Info("trimmed data log", map[string]interface{}{"dropped": dropped})
	}
	if dropped := m.alerts.TrimHistory(trimHistoryLimit); dropped > 0 {
		m.logger.Info("trimmed alert history", map[string]interface{}{"dropped": dropped})
	}
}

func (m *Monitor) taskBeeps(now time.Time) {
	m.alerts.Beeps().Tick()
}
