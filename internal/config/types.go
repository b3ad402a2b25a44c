package config

import "time"

// EstimatorKind selects the vitals estimation strategy.
type EstimatorKind string

const (
	EstimatorSimulated EstimatorKind = "simulated"
	EstimatorRatio     EstimatorKind = "ratio"
)

// AlertThresholds holds the alarm limits evaluated against each vitals
// sample. Mutated only through settings operations.
type AlertThresholds struct {
	HeartRateMin float64
	HeartRateMax float64
	SpO2Min      float64
	BatteryMin   float64
	Enabled      bool
}

// GlobalOptions holds device settings parsed from the preferences file and
// CLI overrides.
type GlobalOptions struct {
	AlertCooldown   time.Duration
	CooldownPerKind bool
	ScreenTimeout   time.Duration
	Brightness      int
	Estimator       EstimatorKind
	MetricsListen   string
	UIDisable       bool
}

// Config is the parsed preferences file.
type Config struct {
	Global     GlobalOptions
	Thresholds AlertThresholds
}

// CLIOverrides holds optional CLI values that override file values.
type CLIOverrides struct {
	AlertCooldown *time.Duration
	ScreenTimeout *time.Duration
	Brightness    *int
	Estimator     *EstimatorKind
	MetricsListen *string
	UIDisable     *bool
	HeartRateMin  *float64
	SpO2Min       *float64
}

// Parser defines preferences parsing behavior.
type Parser interface {
	LoadConfig(path string, overrides CLIOverrides) (*Config, error)
	ParseMonitorDirective(line string) (map[string]string, error)
}
