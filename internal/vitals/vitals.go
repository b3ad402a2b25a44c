package vitals

import "time"

// Reading is one raw (red, infrared) intensity pair pulled from the sensor.
type Reading struct {
	Red uint32
	IR  uint32
}

// Sample is one published vitals estimate. Samples are value-like: they are
// created once per acquisition window and never mutated afterwards.
type Sample struct {
	HeartRate     float64
	SpO2          float64
	BatteryLevel  float64
	FingerPresent bool
	Timestamp     time.Time
}

// Estimate is the outcome of estimating one complete sample window.
// Valid is false when the window does not carry enough signal to trust.
type Estimate struct {
	HeartRate float64
	SpO2      float64
	Valid     bool
}

// Estimator turns a complete sample window into a vitals estimate. It must
// never fabricate values when fingerPresent is false.
type Estimator interface {
	Estimate(window []Reading, fingerPresent bool) Estimate
}
