package metrics

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/doridoridoriand/cardiomon-go/internal/state"
)

// Server exposes Prometheus-style metrics based on the published monitor
// status. This is an observer surface only; it never touches the tick
// loop's state directly.
type Server struct {
	store state.Store
}

// NewServer constructs a metrics server.
func NewServer(store state.Store) *Server {
	return &Server{store: store}
}

// Handler returns an http handler that serves metrics.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		bw := bufio.NewWriter(w)
		defer bw.Flush()
		s.writeMetrics(bw)
	})
}

func (s *Server) writeMetrics(w *bufio.Writer) {
	status := s.store.GetSnapshot()

	fmt.Fprintf(w, "cardiomon_heart_rate_bpm %.1f\n", status.Vitals.HeartRate)
	fmt.Fprintf(w, "cardiomon_spo2_percent %.1f\n", status.Vitals.SpO2)
	fmt.Fprintf(w, "cardiomon_battery_percent %.1f\n", status.Vitals.BatteryLevel)
	fmt.Fprintf(w, "cardiomon_finger_detected %d\n", boolGauge(status.Vitals.FingerPresent))
	fmt.Fprintf(w, "cardiomon_display_on %d\n", boolGauge(status.DisplayOn))
	fmt.Fprintf(w, "cardiomon_active_alerts %d\n", status.ActiveAlerts)
	fmt.Fprintf(w, "cardiomon_logged_samples %d\n", status.LoggedSamples)
	fmt.Fprintf(w, "cardiomon_screen{name=%q} 1\n", string(status.Screen))
}

func boolGauge(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Serve starts an HTTP server and blocks until context cancellation.
func Serve(ctx context.Context, addr string, store state.Store) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", NewServer(store).Handler())
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		_ = server.Shutdown(context.Background())
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return context.Canceled
		}
		return err
	}
}
