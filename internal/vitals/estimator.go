package vitals

import (
	"math/rand"
	"time"
)

// SimulatedEstimator emits randomized values within physiological ranges.
// It stands in for a real signal-processing pipeline during bench bring-up
// and mirrors the real estimators' validity behavior: roughly one window in
// five is reported as not yet valid.
type SimulatedEstimator struct {
	rng *rand.Rand
}

// NewSimulatedEstimator returns an estimator seeded from the clock.
func NewSimulatedEstimator() *SimulatedEstimator {
	return &SimulatedEstimator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSimulatedEstimatorWithSeed returns an estimator with a fixed seed so
// tests get reproducible windows.
func NewSimulatedEstimatorWithSeed(seed int64) *SimulatedEstimator {
	return &SimulatedEstimator{rng: rand.New(rand.NewSource(seed))}
}

// Estimate returns a randomized in-range estimate, or an invalid one when
// the finger is absent or the simulated confidence check fails.
func (e *SimulatedEstimator) Estimate(window []Reading, fingerPresent bool) Estimate {
	if !fingerPresent || len(window) == 0 {
		return Estimate{}
	}
	if e.rng.Float64() <= 0.2 {
		return Estimate{}
	}
	return Estimate{
		HeartRate: 60.0 + e.rng.Float64()*40.0,
		SpO2:      95.0 + e.rng.Float64()*5.0,
		Valid:     true,
	}
}
