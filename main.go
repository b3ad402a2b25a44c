package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/doridoridoriand/cardiomon-go/internal/alert"
	"github.com/doridoridoriand/cardiomon-go/internal/cli"
	"github.com/doridoridoriand/cardiomon-go/internal/config"
	"github.com/doridoridoriand/cardiomon-go/internal/display"
	"github.com/doridoridoriand/cardiomon-go/internal/history"
	"github.com/doridoridoriand/cardiomon-go/internal/log"
	"github.com/doridoridoriand/cardiomon-go/internal/metrics"
	"github.com/doridoridoriand/cardiomon-go/internal/scheduler"
	"github.com/doridoridoriand/cardiomon-go/internal/screen"
	"github.com/doridoridoriand/cardiomon-go/internal/sensor"
	"github.com/doridoridoriand/cardiomon-go/internal/state"
	"github.com/doridoridoriand/cardiomon-go/internal/vitals"
)

const version = "0.1.0"

const defaultPrefsPath = "monitor.conf"

func main() {
	var (
		flagCooldown      cli.OptionalDuration
		flagScreenTimeout cli.OptionalDuration
		flagBrightness    cli.OptionalInt
		flagEstimator     cli.OptionalString
		flagMetricsListen cli.OptionalString
		flagNoUI          cli.OptionalBool
		flagHRMin         cli.OptionalFloat
		flagSpO2Min       cli.OptionalFloat
		flagVersion       bool
		flagVersionShort  bool
	)

	flag.Var(&flagCooldown, "cooldown", "alert cooldown (override preferences)")
	flag.Var(&flagScreenTimeout, "screen-timeout", "inactivity timeout before the display blanks (override preferences)")
	flag.Var(&flagBrightness, "brightness", "display brightness 0-255 (override preferences)")
	flag.Var(&flagEstimator, "estimator", "vitals estimator: simulated|ratio")
	flag.Var(&flagMetricsListen, "metrics-listen", "metrics listen address (e.g. :9100)")
	flag.Var(&flagNoUI, "no-ui", "disable display (log only)")
	flag.Var(&flagHRMin, "hr-min", "heart rate alarm floor in BPM (override preferences)")
	flag.Var(&flagSpO2Min, "spo2-min", "SpO2 alarm floor in percent (override preferences)")
	flag.BoolVar(&flagVersion, "version", false, "show version")
	flag.BoolVar(&flagVersionShort, "v", false, "show version")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [options] [preferences-file]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flagVersion || flagVersionShort {
		fmt.Fprintf(os.Stdout, "cardiomon-go version %s\n", version)
		return
	}

	prefsPath := defaultPrefsPath
	if args := flag.Args(); len(args) > 0 {
		prefsPath = args[0]
	}

	overrides := buildOverrides(flagCooldown, flagScreenTimeout, flagBrightness, flagEstimator, flagMetricsListen, flagNoUI, flagHRMin, flagSpO2Min)

	logger := log.NewLogger(log.LevelInfo)

	prefs := config.NewPreferencesStore(prefsPath)
	cfg, err := prefs.Load(overrides)
	if err != nil {
		logger.LogConfigLoad(false, prefsPath, err)
		fmt.Fprintf(os.Stderr, "failed to load preferences: %v\n", err)
		os.Exit(1)
	}
	logger.LogConfigLoad(true, prefsPath, nil)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Display init failure is the one fatal error.
	var rend screen.Renderer
	var term *display.TCell
	if cfg.Global.UIDisable {
		rend = display.NewNull()
	} else {
		term, err = display.NewTCell()
		if err != nil {
			fmt.Fprintf(os.Stderr, "display initialization failed: %v\n", err)
			os.Exit(1)
		}
		term.OnQuit(cancel)
		defer term.Fini()
		rend = term
	}

	dev := sensor.NewSimulated()
	sensorErr := dev.Init()
	battery := sensor.NewSimulatedBattery()

	var estimator vitals.Estimator
	switch cfg.Global.Estimator {
	case config.EstimatorRatio:
		estimator = vitals.NewRatioEstimator(100)
	default:
		estimator = vitals.NewSimulatedEstimator()
	}

	acq := vitals.NewAcquisition(dev, battery, estimator, vitals.DefaultWindowSize)

	beeps := alert.NewSequencer(func(on bool) {
		if on {
			rend.Beep()
		}
	})
	engine := alert.NewEngine(&cfg.Thresholds, cfg.Global.AlertCooldown, cfg.Global.CooldownPerKind, beeps, logger)

	hist := history.NewStore()
	machine := screen.NewMachine(rend, logger, hist, engine, &cfg.Thresholds, cfg.Global.ScreenTimeout, cfg.Global.Brightness)
	engine.SetNotifier(machine.ShowAlertBanner)
	machine.SetHooks(
		func() { logger.Info("data exported", nil) },
		func() { logger.Info("data cleared", nil) },
	)

	store := state.NewStore()
	monitor := scheduler.NewMonitor(acq, engine, hist, machine, store, rend, logger)

	if cfg.Global.MetricsListen != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Global.MetricsListen, store); err != nil && !errors.Is(err, context.Canceled) {
				logger.LogError("metrics", err, nil)
			}
		}()
	}

	monitor.Setup(sensorErr)
	if err := monitor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.LogError("monitor", err, nil)
	}

	if err := prefs.Save(cfg); err != nil {
		logger.LogError("preferences", err, nil)
	}
}

func buildOverrides(
	cooldown cli.OptionalDuration,
	screenTimeout cli.OptionalDuration,
	brightness cli.OptionalInt,
	estimator cli.OptionalString,
	metricsListen cli.OptionalString,
	noUI cli.OptionalBool,
	hrMin cli.OptionalFloat,
	spo2Min cli.OptionalFloat,
) config.CLIOverrides {
	overrides := config.CLIOverrides{}

	if v, ok := cooldown.Value(); ok {
		value := v
		overrides.AlertCooldown = &value
	}
	if v, ok := screenTimeout.Value(); ok {
		value := v
		overrides.ScreenTimeout = &value
	}
	if v, ok := brightness.Value(); ok {
		value := v
		overrides.Brightness = &value
	}
	if v, ok := estimator.Value(); ok && v != "" {
		value := config.EstimatorKind(v)
		overrides.Estimator = &value
	}
	if v, ok := metricsListen.Value(); ok && v != "" {
		value := v
		overrides.MetricsListen = &value
	}
	if v, ok := noUI.Value(); ok {
		value := v
		overrides.UIDisable = &value
	}
	if v, ok := hrMin.Value(); ok {
		value := v
		overrides.HeartRateMin = &value
	}
	if v, ok := spo2Min.Value(); ok {
		value := v
		overrides.SpO2Min = &value
	}

	return overrides
}
