package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// MonitorParser implements the Parser interface for monitor.conf files.
type MonitorParser struct{}

// DefaultGlobalOptions returns baseline settings used before file overrides.
func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		AlertCooldown:   2 * time.Second,
		CooldownPerKind: false,
		ScreenTimeout:   30 * time.Second,
		Brightness:      128,
		Estimator:       EstimatorSimulated,
		MetricsListen:   "",
		UIDisable:       false,
	}
}

// DefaultThresholds returns the factory alarm limits.
func DefaultThresholds() AlertThresholds {
	return AlertThresholds{
		HeartRateMin: 60.0,
		HeartRateMax: 100.0,
		SpO2Min:      95.0,
		BatteryMin:   20.0,
		Enabled:      true,
	}
}

// LoadConfig parses a monitor.conf file with CLI overrides applied.
// Invalid persisted values are clamped back to their defaults rather than
// propagated as errors; only unreadable files and malformed lines fail.
func (p MonitorParser) LoadConfig(path string, overrides CLIOverrides) (*Config, error) {
	cfg := &Config{Global: DefaultGlobalOptions(), Thresholds: DefaultThresholds()}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			// First boot: factory defaults with overrides applied.
			applyCLIOverrides(cfg, overrides)
			return cfg, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			if strings.HasPrefix(line, "# cardiomon-go:") {
				pairs, err := p.ParseMonitorDirective(line)
				if err != nil {
					return nil, err
				}
				applyPairs(cfg, pairs)
			}
			continue
		}

		kv := strings.SplitN(line, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid preferences line: %q", line)
		}
		applyPairs(cfg, map[string]string{
			strings.TrimSpace(kv[0]): strings.TrimSpace(kv[1]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	clampThresholds(&cfg.Thresholds)
	clampGlobal(&cfg.Global)
	applyCLIOverrides(cfg, overrides)
	return cfg, nil
}

// ParseMonitorDirective extracts key=value pairs from a directive line.
func (p MonitorParser) ParseMonitorDirective(line string) (map[string]string, error) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
	}
	if !strings.HasPrefix(trimmed, "cardiomon-go:") {
		return nil, fmt.Errorf("directive line must start with '# cardiomon-go:': %q", line)
	}
	payload := strings.TrimSpace(strings.TrimPrefix(trimmed, "cardiomon-go:"))
	if payload == "" {
		return map[string]string{}, nil
	}

	pairs := make(map[string]string)
	for _, token := range strings.Fields(payload) {
		kv := strings.SplitN(token, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid directive token: %q", token)
		}
		pairs[kv[0]] = kv[1]
	}
	return pairs, nil
}

// applyPairs copies recognized keys into cfg. Values that fail to parse are
// ignored so that a corrupt preferences file falls back to defaults field by
// field. Unknown keys are ignored for forward compatibility.
func applyPairs(cfg *Config, pairs map[string]string) {
	for key, val := range pairs {
		switch key {
		case "hr.min":
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				cfg.Thresholds.HeartRateMin = f
			}
		case "hr.max":
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				cfg.Thresholds.HeartRateMax = f
			}
		case "spo2.min":
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				cfg.Thresholds.SpO2Min = f
			}
		case "battery.min":
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				cfg.Thresholds.BatteryMin = f
			}
		case "alerts.enabled":
			if b, err := strconv.ParseBool(val); err == nil {
				cfg.Thresholds.Enabled = b
			}
		case "alerts.cooldown":
			if d, err := time.ParseDuration(val); err == nil {
				cfg.Global.AlertCooldown = d
			}
		case "alerts.cooldown_per_kind":
			if b, err := strconv.ParseBool(val); err == nil {
				cfg.Global.CooldownPerKind = b
			}
		case "screen.timeout":
			if d, err := time.ParseDuration(val); err == nil {
				cfg.Global.ScreenTimeout = d
			}
		case "brightness":
			if n, err := strconv.Atoi(val); err == nil {
				cfg.Global.Brightness = n
			}
		case "estimator":
			switch EstimatorKind(val) {
			case EstimatorSimulated, EstimatorRatio:
				cfg.Global.Estimator = EstimatorKind(val)
			}
		case "metrics.listen":
			if isDigits(val) {
				cfg.Global.MetricsListen = ":" + val
			} else {
				cfg.Global.MetricsListen = val
			}
		case "ui.disable":
			if b, err := strconv.ParseBool(val); err == nil {
				cfg.Global.UIDisable = b
			}
		}
	}
}

func clampThresholds(t *AlertThresholds) {
	def := DefaultThresholds()
	if t.HeartRateMin < 0 || t.HeartRateMin > 300 {
		t.HeartRateMin = def.HeartRateMin
	}
	if t.HeartRateMax <= t.HeartRateMin || t.HeartRateMax > 300 {
		t.HeartRateMax = def.HeartRateMax
		if t.HeartRateMax <= t.HeartRateMin {
			t.HeartRateMin = def.HeartRateMin
		}
	}
	if t.SpO2Min <= 0 || t.SpO2Min > 100 {
		t.SpO2Min = def.SpO2Min
	}
	if t.BatteryMin < 0 || t.BatteryMin > 100 {
		t.BatteryMin = def.BatteryMin
	}
}

func clampGlobal(g *GlobalOptions) {
	def := DefaultGlobalOptions()
	if g.AlertCooldown <= 0 {
		g.AlertCooldown = def.AlertCooldown
	}
	if g.ScreenTimeout <= 0 {
		g.ScreenTimeout = def.ScreenTimeout
	}
	if g.Brightness < 0 || g.Brightness > 255 {
		g.Brightness = def.Brightness
	}
}

func applyCLIOverrides(cfg *Config, overrides CLIOverrides) {
	if overrides.AlertCooldown != nil {
		cfg.Global.AlertCooldown = *overrides.AlertCooldown
	}
	if overrides.ScreenTimeout != nil {
		cfg.Global.ScreenTimeout = *overrides.ScreenTimeout
	}
	if overrides.Brightness != nil {
		cfg.Global.Brightness = *overrides.Brightness
	}
	if overrides.Estimator != nil {
		cfg.Global.Estimator = *overrides.Estimator
	}
	if overrides.MetricsListen != nil {
		val := *overrides.MetricsListen
		if isDigits(val) {
			val = ":" + val
		}
		cfg.Global.MetricsListen = val
	}
	if overrides.UIDisable != nil {
		cfg.Global.UIDisable = *overrides.UIDisable
	}
	if overrides.HeartRateMin != nil {
		cfg.Thresholds.HeartRateMin = *overrides.HeartRateMin
	}
	if overrides.SpO2Min != nil {
		cfg.Thresholds.SpO2Min = *overrides.SpO2Min
	}
	if overrides.HeartRateMin != nil || overrides.SpO2Min != nil {
		clampThresholds(&cfg.Thresholds)
	}
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
