package alert

import "time"

// ToneFunc drives the buzzer output. on=true starts a tone, on=false
// silences it.
type ToneFunc func(on bool)

type beepStep struct {
	on bool
	d  time.Duration
}

// Sequencer plays beep patterns as timed on/off steps consumed one tick at
// a time, so a pattern never stalls the scheduler loop.
type Sequencer struct {
	tone      ToneFunc
	steps     []beepStep
	idx       int
	stepStart time.Time
	active    bool
	now       func() time.Time
}

// NewSequencer returns a sequencer driving tone. A nil tone is allowed and
// discards output.
func NewSequencer(tone ToneFunc) *Sequencer {
	if tone == nil {
		tone = func(bool) {}
	}
	return &Sequencer{tone: tone, now: time.Now}
}

// SetClock overrides the wall clock, for tests.
func (s *Sequencer) SetClock(now func() time.Time) { s.now = now }

// EnqueueLevel queues the audible pattern for an alert level: one beep for
// Info, two for Warning, three for Critical.
func (s *Sequencer) EnqueueLevel(level Level) {
	switch level {
	case LevelCritical:
		s.Enqueue(3, 500*time.Millisecond)
	case LevelWarning:
		s.Enqueue(2, 300*time.Millisecond)
	default:
		s.Enqueue(1, 200*time.Millisecond)
	}
}

// EnqueueError queues the system-error pattern.
func (s *Sequencer) EnqueueError() {
	s.Enqueue(5, 100*time.Millisecond)
}

// Enqueue appends count beeps of the given duration with a fixed 200ms gap.
func (s *Sequencer) Enqueue(count int, duration time.Duration) {
	const gap = 200 * time.Millisecond
	for i := 0; i < count; i++ {
		s.steps = append(s.steps, beepStep{on: true, d: duration})
		s.steps = append(s.steps, beepStep{on: false, d: gap})
	}
	s.active = true
}

// Tick advances the pattern. Call once per scheduler tick; each call does a
// constant amount of work and never sleeps.
func (s *Sequencer) Tick() {
	if !s.active {
		return
	}
	now := s.now()
	if s.stepStart.IsZero() {
		s.stepStart = now
		s.tone(s.steps[s.idx].on)
		return
	}
	if now.Sub(s.stepStart) < s.steps[s.idx].d {
		return
	}
	s.idx++
	if s.idx >= len(s.steps) {
		s.tone(false)
		s.reset()
		return
	}
	s.stepStart = now
	s.tone(s.steps[s.idx].on)
}

// Active reports whether a pattern is still playing.
func (s *Sequencer) Active() bool { return s.active }

// Reset silences the buzzer and drops any queued pattern.
func (s *Sequencer) Reset() {
	s.tone(false)
	s.reset()
}

func (s *Sequencer) reset() {
	s.steps = s.steps[:0]
	s.idx = 0
	s.stepStart = time.Time{}
	s.active = false
}
