package state

import (
	"github.com/doridoridoriand/cardiomon-go/internal/screen"
	"github.com/doridoridoriand/cardiomon-go/internal/vitals"
)

// MonitorStatus is a point-in-time snapshot of the device, published once
// per display tick for readers outside the scheduler loop (metrics, the
// headless log view).
type MonitorStatus struct {
	Vitals        vitals.Sample
	Screen        screen.State
	DisplayOn     bool
	ActiveAlerts  int
	LastAlert     string
	LoggedSamples int
}

// Store defines operations for publishing and reading monitor status.
type Store interface {
	Update(status MonitorStatus)
	GetSnapshot() MonitorStatus
}
