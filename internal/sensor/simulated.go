package sensor

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Simulated mimics a MAX30102 pulse-oximetry front end. It emits a noisy
// pulse waveform on both channels so that downstream estimation has a
// plausible signal to work with.
type Simulated struct {
	rng      *rand.Rand
	pending  int
	phase    float64
	baseline float64
	initDone bool
	FailInit bool // test hook: force Init to fail
}

// NewSimulated returns a simulated sensor seeded from the clock.
func NewSimulated() *Simulated {
	return &Simulated{
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		baseline: 55000,
	}
}

// NewSimulatedWithSeed returns a simulated sensor with a fixed seed.
func NewSimulatedWithSeed(seed int64) *Simulated {
	return &Simulated{
		rng:      rand.New(rand.NewSource(seed)),
		baseline: 55000,
	}
}

// Init brings the simulated device up.
func (s *Simulated) Init() error {
	if s.FailInit {
		return fmt.Errorf("sensor: device not responding")
	}
	s.initDone = true
	return nil
}

// Available reports whether unread samples are buffered. The simulated
// device refills its FIFO with a random burst, matching the bursty
// availability of the real part.
func (s *Simulated) Available() bool {
	if !s.initDone {
		return false
	}
	if s.pending == 0 {
		s.pending = s.rng.Intn(11)
	}
	return s.pending > 0
}

// ReadRed returns the red-channel intensity of the current sample.
func (s *Simulated) ReadRed() uint32 {
	return s.sample(0.8)
}

// ReadIR returns the infrared-channel intensity of the current sample.
func (s *Simulated) ReadIR() uint32 {
	return s.sample(1.0)
}

// Advance consumes the current sample.
func (s *Simulated) Advance() {
	if s.pending > 0 {
		s.pending--
	}
	s.phase += 2 * math.Pi * 1.2 / 100 // ~72 BPM at 100 Hz
}

func (s *Simulated) sample(gain float64) uint32 {
	pulse := math.Sin(s.phase) * 1500 * gain
	noise := (s.rng.Float64() - 0.5) * 400
	v := s.baseline + pulse + noise
	if v < 0 {
		v = 0
	}
	return uint32(v)
}

// SimulatedBattery models a LiPo cell sampled through an ADC divider.
type SimulatedBattery struct {
	rng *rand.Rand
}

// NewSimulatedBattery returns a battery source seeded from the clock.
func NewSimulatedBattery() *SimulatedBattery {
	return &SimulatedBattery{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// ReadLevel converts a simulated cell voltage (3.0V-4.2V) to percent.
func (b *SimulatedBattery) ReadLevel() float64 {
	voltage := 3.0 + b.rng.Float64()*1.2
	percent := (voltage - 3.0) / 1.2 * 100.0
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
