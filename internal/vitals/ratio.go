package vitals

// RatioEstimator derives heart rate from adaptive-threshold peak detection
// on the infrared channel and SpO2 from the red/infrared ratio of ratios.
// A window without at least two detected beats, or without usable DC
// components, is reported as not yet valid.
type RatioEstimator struct {
	// SampleRate is the acquisition rate of the window in Hz.
	SampleRate int
}

// NewRatioEstimator returns an estimator for windows acquired at rate Hz.
func NewRatioEstimator(rate int) *RatioEstimator {
	if rate <= 0 {
		rate = 100
	}
	return &RatioEstimator{SampleRate: rate}
}

// Estimate computes heart rate and SpO2 for one complete window.
func (e *RatioEstimator) Estimate(window []Reading, fingerPresent bool) Estimate {
	if !fingerPresent || len(window) == 0 {
		return Estimate{}
	}

	hr, ok := e.heartRate(window)
	if !ok {
		return Estimate{}
	}
	spo2, ok := e.spO2(window)
	if !ok {
		return Estimate{}
	}
	return Estimate{HeartRate: hr, SpO2: spo2, Valid: true}
}

func (e *RatioEstimator) heartRate(window []Reading) (float64, bool) {
	// Refractory gap of 300ms keeps double peaks from counting twice.
	minGap := e.SampleRate * 3 / 10

	var sum float64
	for _, r := range window {
		sum += float64(r.IR)
	}
	threshold := sum / float64(len(window))

	beat := false
	lastBeat := -1
	var intervals []int
	for i, r := range window {
		v := float64(r.IR)
		if v > threshold && !beat && (lastBeat < 0 || i-lastBeat > minGap) {
			beat = true
			if lastBeat >= 0 {
				intervals = append(intervals, i-lastBeat)
			}
			lastBeat = i
		} else if v < threshold-100 {
			beat = false
		}
		threshold = (threshold*31 + v) / 32
	}

	if len(intervals) == 0 {
		return 0, false
	}
	total := 0
	for _, gap := range intervals {
		total += gap
	}
	avg := float64(total) / float64(len(intervals))
	bpm := 60.0 * float64(e.SampleRate) / avg
	if bpm < 20 || bpm > 200 {
		return 0, false
	}
	return bpm, true
}

func (e *RatioEstimator) spO2(window []Reading) (float64, bool) {
	var irMin, irMax, redMin, redMax uint32
	irMin, redMin = ^uint32(0), ^uint32(0)
	for _, r := range window {
		if r.IR > irMax {
			irMax = r.IR
		}
		if r.IR < irMin {
			irMin = r.IR
		}
		if r.Red > redMax {
			redMax = r.Red
		}
		if r.Red < redMin {
			redMin = r.Red
		}
	}

	irAC := float64(irMax - irMin)
	irDC := float64(irMax+irMin) / 2.0
	redAC := float64(redMax - redMin)
	redDC := float64(redMax+redMin) / 2.0
	if irDC == 0 || redDC == 0 || irAC == 0 {
		return 0, false
	}

	r := (redAC / redDC) / (irAC / irDC)
	spo2 := 110.0 - 25.0*r
	if spo2 > 100 {
		spo2 = 100
	}
	if spo2 < 70 {
		spo2 = 70
	}
	return spo2, true
}
