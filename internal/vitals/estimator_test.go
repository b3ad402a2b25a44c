package vitals

import (
	"math"
	"testing"
)

func TestSimulatedEstimatorRanges(t *testing.T) {
	est := NewSimulatedEstimatorWithSeed(7)
	window := []Reading{{Red: 60000, IR: 60000}}

	valid := 0
	for i := 0; i < 200; i++ {
		e := est.Estimate(window, true)
		if !e.Valid {
			continue
		}
		valid++
		if e.HeartRate < 60 || e.HeartRate > 100 {
			t.Fatalf("heart rate out of range: %.2f", e.HeartRate)
		}
		if e.SpO2 < 95 || e.SpO2 > 100 {
			t.Fatalf("SpO2 out of range: %.2f", e.SpO2)
		}
	}
	if valid == 0 {
		t.Fatalf("expected some valid estimates over 200 windows")
	}
	if valid == 200 {
		t.Fatalf("expected occasional invalid estimates over 200 windows")
	}
}

func TestSimulatedEstimatorFingerAbsent(t *testing.T) {
	est := NewSimulatedEstimatorWithSeed(7)
	if e := est.Estimate([]Reading{{IR: 60000}}, false); e.Valid {
		t.Fatalf("expected invalid estimate with finger absent")
	}
	if e := est.Estimate(nil, true); e.Valid {
		t.Fatalf("expected invalid estimate for empty window")
	}
}

// sineWindow synthesizes a pulse wave at the given beat period in samples.
// The red channel carries half the infrared amplitude, which corresponds to
// a ratio of ratios of 0.5.
func sineWindow(n, period int) []Reading {
	out := make([]Reading, n)
	for i := range out {
		phase := 2 * math.Pi * float64(i) / float64(period)
		out[i] = Reading{
			IR:  uint32(100000 + 5000*math.Sin(phase)),
			Red: uint32(100000 + 2500*math.Sin(phase)),
		}
	}
	return out
}

func TestRatioEstimatorHeartRate(t *testing.T) {
	est := NewRatioEstimator(100)

	// 50 samples per beat at 100 Hz is 120 BPM.
	window := sineWindow(400, 50)
	e := est.Estimate(window, true)
	if !e.Valid {
		t.Fatalf("expected valid estimate for clean pulse wave")
	}
	if e.HeartRate < 110 || e.HeartRate > 130 {
		t.Fatalf("expected roughly 120 BPM, got %.1f", e.HeartRate)
	}
}

func TestRatioEstimatorSpO2(t *testing.T) {
	est := NewRatioEstimator(100)

	window := sineWindow(400, 50)
	e := est.Estimate(window, true)
	if !e.Valid {
		t.Fatalf("expected valid estimate")
	}
	// r = 0.5 maps to 110 - 25*0.5 = 97.5.
	if math.Abs(e.SpO2-97.5) > 1.0 {
		t.Fatalf("expected SpO2 near 97.5, got %.2f", e.SpO2)
	}
}

func TestRatioEstimatorRejectsFlatSignal(t *testing.T) {
	est := NewRatioEstimator(100)

	flat := make([]Reading, 200)
	for i := range flat {
		flat[i] = Reading{IR: 100000, Red: 100000}
	}
	if e := est.Estimate(flat, true); e.Valid {
		t.Fatalf("expected invalid estimate for flat signal")
	}
}

func TestRatioEstimatorFingerAbsent(t *testing.T) {
	est := NewRatioEstimator(100)
	if e := est.Estimate(sineWindow(400, 50), false); e.Valid {
		t.Fatalf("expected invalid estimate with finger absent")
	}
}
