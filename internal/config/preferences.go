package config

import (
	"fmt"
	"os"
	"strings"
)

// PreferencesStore persists device settings between boots. Load applies the
// stored values, Save mirrors the current values back to the same file.
type PreferencesStore struct {
	path   string
	parser MonitorParser
}

// NewPreferencesStore returns a store bound to path.
func NewPreferencesStore(path string) *PreferencesStore {
	return &PreferencesStore{path: path}
}

// Load reads the preferences file with CLI overrides applied. A missing
// file yields factory defaults.
func (s *PreferencesStore) Load(overrides CLIOverrides) (*Config, error) {
	return s.parser.LoadConfig(s.path, overrides)
}

// Save writes the current settings back to the preferences file.
func (s *PreferencesStore) Save(cfg *Config) error {
	var b strings.Builder
	b.WriteString("# cardiomon-go preferences (rewritten on save)\n")
	fmt.Fprintf(&b, "hr.min=%g\n", cfg.Thresholds.HeartRateMin)
	fmt.Fprintf(&b, "hr.max=%g\n", cfg.Thresholds.HeartRateMax)
	fmt.Fprintf(&b, "spo2.min=%g\n", cfg.Thresholds.SpO2Min)
	fmt.Fprintf(&b, "battery.min=%g\n", cfg.Thresholds.BatteryMin)
	fmt.Fprintf(&b, "alerts.enabled=%t\n", cfg.Thresholds.Enabled)
	fmt.Fprintf(&b, "alerts.cooldown=%s\n", cfg.Global.AlertCooldown)
	fmt.Fprintf(&b, "alerts.cooldown_per_kind=%t\n", cfg.Global.CooldownPerKind)
	fmt.Fprintf(&b, "screen.timeout=%s\n", cfg.Global.ScreenTimeout)
	fmt.Fprintf(&b, "brightness=%d\n", cfg.Global.Brightness)
	fmt.Fprintf(&b, "estimator=%s\n", cfg.Global.Estimator)
	if cfg.Global.MetricsListen != "" {
		fmt.Fprintf(&b, "metrics.listen=%s\n", cfg.Global.MetricsListen)
	}
	fmt.Fprintf(&b, "ui.disable=%t\n", cfg.Global.UIDisable)
	return os.WriteFile(s.path, []byte(b.String()), 0o644)
}
