package alert

import (
	"fmt"
	"time"

	"github.com/doridoridoriand/cardiomon-go/internal/config"
	"github.com/doridoridoriand/cardiomon-go/internal/log"
	"github.com/doridoridoriand/cardiomon-go/internal/ring"
	"github.com/doridoridoriand/cardiomon-go/internal/vitals"
)

const (
	// MaxActive bounds the active-alert set; the oldest alert is silently
	// dropped when a new one arrives at capacity.
	MaxActive = 5
	// MaxHistory bounds the alert-history set.
	MaxHistory = 20
	// expiry is the age past which an acknowledged alert is pruned.
	expiry = 30 * time.Second

	criticalHeartRateLow  = 50.0
	criticalHeartRateHigh = 120.0
	criticalSpO2          = 90.0
	criticalBattery       = 10.0
)

// Notifier receives a raised alert for on-screen display.
type Notifier func(message string, level Level)

// Engine evaluates vitals samples against thresholds and manages the
// bounded active-alert and alert-history sets.
type Engine struct {
	thresholds *config.AlertThresholds
	cooldown   time.Duration
	perKind    bool

	lastTrigger time.Time
	lastByKind  [kindCount]time.Time

	active  *ring.Buffer[Alert]
	history *ring.Buffer[Alert]

	beeps  *Sequencer
	logger *log.Logger
	notify Notifier

	now func() time.Time
}

// NewEngine constructs an alert engine. thresholds is shared with the
// settings owner so that threshold edits take effect without re-wiring.
func NewEngine(thresholds *config.AlertThresholds, cooldown time.Duration, perKind bool, beeps *Sequencer, logger *log.Logger) *Engine {
	if beeps == nil {
		beeps = NewSequencer(nil)
	}
	return &Engine{
		thresholds: thresholds,
		cooldown:   cooldown,
		perKind:    perKind,
		active:     ring.New[Alert](MaxActive),
		history:    ring.New[Alert](MaxHistory),
		beeps:      beeps,
		logger:     logger,
		now:        time.Now,
	}
}

// SetClock overrides the wall clock, for tests.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// SetNotifier installs the on-screen display hook.
func (e *Engine) SetNotifier(n Notifier) { e.notify = n }

// Check evaluates one vitals sample. Rules run in a fixed order (heart
// rate, SpO2, battery), each gated by the cooldown, then expired alerts are
// pruned. Nothing is evaluated while alerts are disabled.
func (e *Engine) Check(v vitals.Sample) {
	if !e.thresholds.Enabled {
		return
	}

	if v.FingerPresent && v.HeartRate > 0 &&
		(v.HeartRate < e.thresholds.HeartRateMin || v.HeartRate > e.thresholds.HeartRateMax) {
		level := LevelWarning
		if v.HeartRate < criticalHeartRateLow || v.HeartRate > criticalHeartRateHigh {
			level = LevelCritical
		}
		e.trigger(KindHeartRate, level, fmt.Sprintf("HR: %d BPM", int(v.HeartRate)))
	}

	if v.FingerPresent && v.SpO2 > 0 && v.SpO2 < e.thresholds.SpO2Min {
		level := LevelWarning
		if v.SpO2 < criticalSpO2 {
			level = LevelCritical
		}
		e.trigger(KindSpO2, level, fmt.Sprintf("Low SpO2: %d%%", int(v.SpO2)))
	}

	if v.BatteryLevel < e.thresholds.BatteryMin {
		level := LevelWarning
		if v.BatteryLevel < criticalBattery {
			level = LevelCritical
		}
		e.trigger(KindBattery, level, fmt.Sprintf("Low battery: %d%%", int(v.BatteryLevel)))
	}

	e.prune()
}

// trigger records an alert unless suppressed by the cooldown. It returns
// true when the alert was recorded.
func (e *Engine) trigger(kind Kind, level Level, message string) bool {
	now := e.now()
	if e.perKind {
		if !e.lastByKind[kind].IsZero() && now.Sub(e.lastByKind[kind]) < e.cooldown {
			return false
		}
	} else if !e.lastTrigger.IsZero() && now.Sub(e.lastTrigger) < e.cooldown {
		return false
	}

	a := Alert{Level: level, Message: message, Timestamp: now}
	e.active.Push(a)
	e.history.Push(a)
	e.lastTrigger = now
	e.lastByKind[kind] = now

	e.beeps.EnqueueLevel(level)
	if e.notify != nil {
		e.notify(message, level)
	}
	if e.logger != nil {
		e.logger.LogAlert(level.String(), message)
	}
	return true
}

// prune removes acknowledged alerts older than the expiry from the active
// set. Unacknowledged alerts are retained regardless of age.
func (e *Engine) prune() {
	now := e.now()
	e.active.Filter(func(a Alert) bool {
		return !(a.Acknowledged && now.Sub(a.Timestamp) > expiry)
	})
}

// Acknowledge marks the i-th active alert (insertion order) acknowledged.
func (e *Engine) Acknowledge(i int) {
	if i < 0 || i >= e.active.Len() {
		return
	}
	a := e.active.At(i)
	a.Acknowledged = true
	e.active.Replace(i, a)
}

// ClearAll drops every active alert.
func (e *Engine) ClearAll() {
	e.active.Clear()
}

// Active returns a copy of the active alerts, oldest first.
func (e *Engine) Active() []Alert { return e.active.Values() }

// History returns a copy of the alert history, oldest first.
func (e *Engine) History() []Alert { return e.history.Values() }

// TrimHistory hard-caps the alert history to limit entries, dropping the
// oldest. This is the coarse periodic bound on top of the per-append cap.
func (e *Engine) TrimHistory(limit int) int {
	return e.history.TrimTo(limit)
}

// ResetCooldown clears cooldown state, as part of watchdog recovery.
func (e *Engine) ResetCooldown() {
	e.lastTrigger = time.Time{}
	e.lastByKind = [kindCount]time.Time{}
}

// Beeps returns the beep sequencer so the scheduler can tick it.
func (e *Engine) Beeps() *Sequencer { return e.beeps }
