package sensor

import "testing"

func TestSimulatedInit(t *testing.T) {
	s := NewSimulatedWithSeed(1)
	if s.Available() {
		t.Fatalf("expected no samples before init")
	}
	if err := s.Init(); err != nil {
		t.Fatalf("unexpected init error: %v", err)
	}
}

func TestSimulatedInitFailure(t *testing.T) {
	s := NewSimulatedWithSeed(1)
	s.FailInit = true
	if err := s.Init(); err == nil {
		t.Fatalf("expected init failure")
	}
	if s.Available() {
		t.Fatalf("failed device must not produce samples")
	}
}

func TestSimulatedSignalRange(t *testing.T) {
	s := NewSimulatedWithSeed(42)
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	reads := 0
	for reads < 500 {
		if !s.Available() {
			continue
		}
		red := s.ReadRed()
		ir := s.ReadIR()
		s.Advance()
		reads++

		// Baseline 55000 with +-1500 pulse and +-200 noise.
		if ir < 50000 || ir > 60000 {
			t.Fatalf("IR sample out of range: %d", ir)
		}
		if red < 50000 || red > 60000 {
			t.Fatalf("red sample out of range: %d", red)
		}
	}
}

func TestSimulatedBatteryRange(t *testing.T) {
	b := NewSimulatedBattery()
	for i := 0; i < 100; i++ {
		level := b.ReadLevel()
		if level < 0 || level > 100 {
			t.Fatalf("battery level out of range: %.2f", level)
		}
	}
}
