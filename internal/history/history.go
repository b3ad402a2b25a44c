package history

import (
	"fmt"
	"io"

	"github.com/doridoridoriand/cardiomon-go/internal/ring"
	"github.com/doridoridoriand/cardiomon-go/internal/vitals"
)

const (
	// Capacity bounds the data log; the oldest sample is evicted on
	// overflow.
	Capacity = 50
	// TrimCapacity is the coarser cap applied by the periodic memory trim.
	TrimCapacity = 25
)

// Store is the bounded in-memory data log of published vitals samples.
type Store struct {
	samples *ring.Buffer[vitals.Sample]
}

// NewStore returns an empty data log.
func NewStore() *Store {
	return &Store{samples: ring.New[vitals.Sample](Capacity)}
}

// Append records a sample. No-signal samples (finger absent or zero heart
// rate) are not logged. It reports whether the sample was recorded.
func (s *Store) Append(v vitals.Sample) bool {
	if !v.FingerPresent || v.HeartRate <= 0 {
		return false
	}
	s.samples.Push(v)
	return true
}

// Trim hard-caps the log to TrimCapacity, dropping the oldest samples.
// It returns the number dropped. Kept as an independent safety net on top
// of the per-append bound.
func (s *Store) Trim() int {
	return s.samples.TrimTo(TrimCapacity)
}

// Len returns the number of logged samples.
func (s *Store) Len() int { return s.samples.Len() }

// Samples returns a copy of the logged samples, oldest first.
func (s *Store) Samples() []vitals.Sample { return s.samples.Values() }

// Recent returns up to n of the newest samples, oldest first.
func (s *Store) Recent(n int) []vitals.Sample {
	all := s.samples.Values()
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all
}

// Clear empties the data log.
func (s *Store) Clear() {
	s.samples.Clear()
}

// ExportCSV writes the log as CSV: a fixed header followed by one row per
// sample, every numeric field formatted to one decimal place.
func (s *Store) ExportCSV(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Timestamp,HeartRate,SpO2,BatteryLevel"); err != nil {
		return err
	}
	for _, v := range s.samples.Values() {
		ts := float64(v.Timestamp.UnixNano()) / 1e9
		_, err := fmt.Fprintf(w, "%.1f,%.1f,%.1f,%.1f\n", ts, v.HeartRate, v.SpO2, v.BatteryLevel)
		if err != nil {
			return err
		}
	}
	return nil
}
