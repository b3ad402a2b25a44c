package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/doridoridoriand/cardiomon-go/internal/alert"
	"github.com/doridoridoriand/cardiomon-go/internal/config"
	"github.com/doridoridoriand/cardiomon-go/internal/history"
	"github.com/doridoridoriand/cardiomon-go/internal/log"
	"github.com/doridoridoriand/cardiomon-go/internal/screen"
	"github.com/doridoridoriand/cardiomon-go/internal/state"
	"github.com/doridoridoriand/cardiomon-go/internal/vitals"
)

type fakeRenderer struct {
	texts      []string
	touches    []screen.Touch
	brightness int
	beeps      int
}

func (f *fakeRenderer) FillScreen(c screen.Color) {}

func (f *fakeRenderer) FillRect(x, y, w, h int, c screen.Color) {}

func (f *fakeRenderer) DrawRect(x, y, w, h int, c screen.Color) {}

func (f *fakeRenderer) DrawText(x, y, size int, s string, c screen.Color) {
	f.texts = append(f.texts, s)
}

func (f *fakeRenderer) DrawPixel(x, y int, c screen.Color) {}

func (f *fakeRenderer) PollTouch() (screen.Touch, bool) {
	if len(f.touches) == 0 {
		return screen.Touch{}, false
	}
	t := f.touches[0]
	f.touches = f.touches[1:]
	return t, true
}

func (f *fakeRenderer) Beep() { f.beeps++ }

func (f *fakeRenderer) SetBrightness(level int) { f.brightness = level }

func (f *fakeRenderer) Flush() {}

func (f *fakeRenderer) drew(substr string) bool {
	for _, s := range f.texts {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

// endlessSensor always has a sample pair available.
type endlessSensor struct {
	ir    uint32
	reads int
}

func (s *endlessSensor) Available() bool { return true }
func (s *endlessSensor) ReadRed() uint32 { return s.ir }
func (s *endlessSensor) ReadIR() uint32  { return s.ir }
func (s *endlessSensor) Advance()        { s.reads++ }

type adjustableBattery struct{ level float64 }

func (b *adjustableBattery) ReadLevel() float64 { return b.level }

// fixedEstimator returns a constant estimate, optionally panicking on its
// first call to exercise the fault path.
type fixedEstimator struct {
	result    vitals.Estimate
	panicOnce bool
}

func (e *fixedEstimator) Estimate(window []vitals.Reading, fingerPresent bool) vitals.Estimate {
	if e.panicOnce {
		e.panicOnce = false
		panic("estimator blew up")
	}
	return e.result
}

type harness struct {
	monitor *Monitor
	rend    *fakeRenderer
	sensor  *endlessSensor
	battery *adjustableBattery
	est     *fixedEstimator
	hist    *history.Store
	alerts  *alert.Engine
	status  state.Store
	scr     *screen.Machine

	clock time.Time
	slept int
}

func newHarness(t *testing.T, hr float64) *harness {
	t.Helper()

	h := &harness{
		rend:    &fakeRenderer{},
		sensor:  &endlessSensor{ir: 60000},
		battery: &adjustableBattery{level: 80},
		est:     &fixedEstimator{result: vitals.Estimate{HeartRate: hr, SpO2: 98, Valid: true}},
		clock:   time.Unix(1_700_000_000, 0),
	}

	logger := log.NewLogger(log.LevelError)
	logger.SetOutput(discard{})
	logger.SetConsole(discard{})

	th := config.DefaultThresholds()
	cfgGlobal := config.DefaultGlobalOptions()

	acq := vitals.NewAcquisition(h.sensor, h.battery, h.est, 1)
	beeps := alert.NewSequencer(func(on bool) {
		if on {
			h.rend.Beep()
		}
	})
	h.alerts = alert.NewEngine(&th, cfgGlobal.AlertCooldown, false, beeps, logger)
	h.hist = history.NewStore()
	h.scr = screen.NewMachine(h.rend, logger, h.hist, h.alerts, &th, cfgGlobal.ScreenTimeout, cfgGlobal.Brightness)
	h.status = state.NewStore()

	h.monitor = NewMonitor(acq, h.alerts, h.hist, h.scr, h.status, h.rend, logger)

	now := func() time.Time { return h.clock }
	sleep := func(d time.Duration) {
		h.clock = h.clock.Add(d)
		h.slept++
	}
	h.monitor.SetClock(now, sleep)
	h.alerts.SetClock(now)
	h.scr.SetClock(now)
	acq.SetClock(now)
	beeps.SetClock(now)
	return h
}

// runTicks drives Run for n loop iterations via the injected sleep.
func (h *harness) runTicks(t *testing.T, n int) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	start := h.slept

	prev := h.monitor.sleep
	h.monitor.sleep = func(d time.Duration) {
		prev(d)
		if h.slept-start >= n {
			cancel()
		}
	}
	if err := h.monitor.Run(ctx); err != context.Canceled {
		t.Fatalf("unexpected run error: %v", err)
	}
	h.monitor.sleep = prev
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestMonitorTickPublishesLogsAndAlerts(t *testing.T) {
	h := newHarness(t, 45)

	// One tick: with a one-sample window the acquisition task publishes
	// immediately, and the same tick's log and alert tasks see the sample.
	h.monitor.safeTick(h.clock)

	if h.hist.Len() != 1 {
		t.Fatalf("expected sample logged in same tick, got %d", h.hist.Len())
	}
	active := h.alerts.Active()
	if len(active) != 1 || active[0].Message != "HR: 45 BPM" {
		t.Fatalf("expected heart-rate alert in same tick, got %+v", active)
	}

	snap := h.status.GetSnapshot()
	if snap.Vitals.HeartRate != 45 || snap.Screen != screen.StateMain {
		t.Fatalf("unexpected status snapshot: %+v", snap)
	}

	// The refresh task precedes the alert check in the tick table, so the
	// raised alert surfaces in the next tick's snapshot.
	h.clock = h.clock.Add(100 * time.Millisecond)
	h.monitor.safeTick(h.clock)
	snap = h.status.GetSnapshot()
	if snap.ActiveAlerts != 1 || snap.LastAlert != "HR: 45 BPM" {
		t.Fatalf("expected alert surfaced in status: %+v", snap)
	}
}

func TestMonitorIntervalsHonored(t *testing.T) {
	h := newHarness(t, 72)

	h.monitor.safeTick(h.clock)
	reads := h.sensor.reads

	// 10ms later the 100ms acquisition task is not yet due.
	h.clock = h.clock.Add(10 * time.Millisecond)
	h.monitor.safeTick(h.clock)
	if h.sensor.reads != reads {
		t.Fatalf("acquisition ran before its interval elapsed")
	}

	h.clock = h.clock.Add(100 * time.Millisecond)
	h.monitor.safeTick(h.clock)
	if h.sensor.reads != reads+1 {
		t.Fatalf("acquisition did not run after interval, reads=%d", h.sensor.reads)
	}
}

func TestMonitorWatchdogRecovery(t *testing.T) {
	h := newHarness(t, 72)
	h.est.panicOnce = true

	// 700 ticks at 10ms spans the 5s recovery delay.
	h.runTicks(t, 700)

	if h.scr.State() != screen.StateMain {
		t.Fatalf("expected recovery to MAIN, got %s", h.scr.State())
	}
	if !h.rend.drew("System Error") {
		t.Fatalf("expected error screen during fault: %v", h.rend.texts)
	}
	if h.rend.beeps == 0 {
		t.Fatalf("expected error beep pattern during recovery window")
	}
}

func TestMonitorReportFault(t *testing.T) {
	h := newHarness(t, 72)
	h.monitor.ReportFault(errSentinel{})

	if h.scr.State() != screen.StateError {
		t.Fatalf("expected ERROR state after reported fault, got %s", h.scr.State())
	}
	if h.monitor.recoveryAt.IsZero() {
		t.Fatalf("expected recovery window armed")
	}
}

type errSentinel struct{}

func (errSentinel) Error() string { return "sensor read failed" }

func TestMonitorTouchDispatch(t *testing.T) {
	h := newHarness(t, 72)
	// Center of the Settings button on the main screen.
	h.rend.touches = append(h.rend.touches, screen.Touch{X: 40, Y: 215})

	h.monitor.dispatchTouches()
	if h.scr.State() != screen.StateSettings {
		t.Fatalf("expected touch routed to state machine, got %s", h.scr.State())
	}
}

func TestMonitorLowPowerTask(t *testing.T) {
	h := newHarness(t, 72)
	h.battery.level = 5

	h.monitor.safeTick(h.clock)
	if h.rend.brightness != 50 {
		t.Fatalf("expected low power dim, got brightness %d", h.rend.brightness)
	}

	// The battery reading refreshes with the acquisition task, so the
	// recovery is visible one sensor interval later.
	h.battery.level = 80
	h.clock = h.clock.Add(100 * time.Millisecond)
	h.monitor.safeTick(h.clock)
	if h.rend.brightness != config.DefaultGlobalOptions().Brightness {
		t.Fatalf("expected brightness restored, got %d", h.rend.brightness)
	}
}

func TestMonitorTrimTask(t *testing.T) {
	h := newHarness(t, 72)

	for i := 0; i < 40; i++ {
		h.hist.Append(vitals.Sample{
			HeartRate: 72, FingerPresent: true,
			Timestamp: h.clock.Add(time.Duration(i) * time.Second),
		})
	}

	h.monitor.taskTrim(h.clock)
	if h.hist.Len() != history.TrimCapacity {
		t.Fatalf("expected data log trimmed to %d, got %d", history.TrimCapacity, h.hist.Len())
	}
}

func TestMonitorSetupDegradedSensor(t *testing.T) {
	h := newHarness(t, 72)

	h.monitor.Setup(errSentinel{})
	if h.scr.State() != screen.StateMain {
		t.Fatalf("expected degraded boot to end on MAIN, got %s", h.scr.State())
	}
	if !h.rend.drew("Sensor Error") {
		t.Fatalf("expected transient sensor error screen: %v", h.rend.texts)
	}
	if !h.rend.drew("Cardiac Monitor") {
		t.Fatalf("expected splash drawn: %v", h.rend.texts)
	}
}

func TestMonitorSetupClean(t *testing.T) {
	h := newHarness(t, 72)
	h.monitor.Setup(nil)
	if h.scr.State() != screen.StateMain {
		t.Fatalf("expected MAIN after clean boot, got %s", h.scr.State())
	}
}
