package vitals

import (
	"time"

	"github.com/doridoridoriand/cardiomon-go/internal/ring"
	"github.com/doridoridoriand/cardiomon-go/internal/sensor"
)

const (
	// DefaultWindowSize is the number of raw pairs consumed per estimate.
	DefaultWindowSize = 100
	// FingerThreshold is the minimum infrared intensity treated as a
	// physiological signal rather than ambient noise.
	FingerThreshold = 50000
)

// Acquisition pulls raw sample pairs from the sensor into a window ring and
// publishes a new current vitals sample each time the window completes.
type Acquisition struct {
	sensor    sensor.Sensor
	battery   sensor.Battery
	estimator Estimator

	window        *ring.Buffer[Reading]
	cursor        int
	fingerPresent bool
	batteryLevel  float64
	current       Sample
	published     bool

	now func() time.Time
}

// NewAcquisition constructs an acquisition stage over the given devices.
// windowSize <= 0 selects DefaultWindowSize.
func NewAcquisition(dev sensor.Sensor, bat sensor.Battery, est Estimator, windowSize int) *Acquisition {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &Acquisition{
		sensor:    dev,
		battery:   bat,
		estimator: est,
		window:    ring.New[Reading](windowSize),
		now:       time.Now,
	}
}

// SetClock overrides the wall clock, for tests.
func (a *Acquisition) SetClock(now func() time.Time) { a.now = now }

// Tick pulls at most one sample pair from the sensor. It returns true when
// a full window completed and a new current sample was published.
func (a *Acquisition) Tick() bool {
	a.batteryLevel = a.battery.ReadLevel()
	if !a.published {
		// Before the first window completes the current cell holds a
		// baseline no-signal sample carrying the live battery level.
		a.current.BatteryLevel = a.batteryLevel
		a.current.Timestamp = a.now()
	}

	if !a.sensor.Available() {
		return false
	}
	r := Reading{Red: a.sensor.ReadRed(), IR: a.sensor.ReadIR()}
	a.sensor.Advance()

	a.window.Push(r)
	a.fingerPresent = r.IR > FingerThreshold
	a.cursor++
	if a.cursor < a.window.Cap() {
		return false
	}
	a.cursor = 0
	a.publish()
	return true
}

// publish replaces the current sample. With the finger absent the estimator
// is not consulted at all: heart rate and SpO2 are published as zero.
func (a *Acquisition) publish() {
	s := Sample{
		BatteryLevel:  a.batteryLevel,
		FingerPresent: a.fingerPresent,
		Timestamp:     a.now(),
	}
	if a.fingerPresent {
		est := a.estimator.Estimate(a.window.Values(), true)
		if est.Valid {
			s.HeartRate = est.HeartRate
			s.SpO2 = est.SpO2
		}
	}
	a.current = s
	a.published = true
}

// Current returns a copy of the current vitals sample.
func (a *Acquisition) Current() Sample { return a.current }

// FingerPresent reports the instantaneous finger state from the most recent
// raw reading, ahead of the next published window.
func (a *Acquisition) FingerPresent() bool { return a.fingerPresent }

// BatteryLevel returns the most recent battery reading.
func (a *Acquisition) BatteryLevel() float64 { return a.batteryLevel }

// Window returns a copy of the raw readings currently retained, oldest
// first. Used by the waveform display.
func (a *Acquisition) Window() []Reading { return a.window.Values() }

// Reset clears the window and the current sample, as part of the watchdog
// recovery path.
func (a *Acquisition) Reset() {
	a.window.Clear()
	a.cursor = 0
	a.fingerPresent = false
	a.current = Sample{}
	a.published = false
}
