package vitals

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPropertyAcquisitionFingerTracking(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 100
	props := gopter.NewProperties(params)

	props.Property("published finger state follows the last raw reading", prop.ForAll(
		func(irValues []uint32) bool {
			if len(irValues) == 0 {
				return true
			}

			readings := make([]Reading, len(irValues))
			for i, ir := range irValues {
				readings[i] = Reading{Red: ir, IR: ir}
			}

			windowSize := 4
			acq := NewAcquisition(
				&scriptedSensor{readings: readings},
				fixedBattery{level: 80},
				&recordingEstimator{result: Estimate{HeartRate: 72, SpO2: 98, Valid: true}},
				windowSize,
			)

			published := false
			lastIdx := 0
			for i := 0; i < len(readings); i++ {
				if acq.Tick() {
					published = true
					lastIdx = i
				}
			}

			if !published {
				// Fewer readings than a full window: the current sample
				// stays a no-signal baseline.
				return acq.Current().HeartRate == 0
			}

			wantFinger := irValues[lastIdx] > FingerThreshold
			got := acq.Current()
			if got.FingerPresent != wantFinger {
				return false
			}
			if !wantFinger && (got.HeartRate != 0 || got.SpO2 != 0) {
				return false
			}
			if wantFinger && got.HeartRate != 72 {
				return false
			}
			return true
		},
		gen.SliceOf(gen.UInt32Range(0, 120000)),
	))

	props.Property("window never exceeds its capacity", prop.ForAll(
		func(n int) bool {
			if n < 0 || n > 500 {
				return true
			}
			readings := make([]Reading, n)
			for i := range readings {
				readings[i] = Reading{Red: 60000, IR: 60000}
			}
			acq := NewAcquisition(
				&scriptedSensor{readings: readings},
				fixedBattery{level: 80},
				&recordingEstimator{result: Estimate{Valid: true}},
				10,
			)
			for i := 0; i < n; i++ {
				acq.Tick()
			}
			return len(acq.Window()) <= 10
		},
		gen.IntRange(0, 500),
	))

	props.TestingRun(t)
}
