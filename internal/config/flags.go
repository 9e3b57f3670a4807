package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWidth   = flag.Int("width", 0, "Window width")
	flagHeight  = flag.Int("height", 0, "Window height")
	flagDensity = flag.Float64("density", 0, "Global grass density multiplier")
	flagWorkers = flag.Int("workers", 0, "Geometry worker count (0 = all CPUs)")
	flagServer  = flag.String("paramserver", "", "Parameter feed listen address")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagDensity > 0 {
		cfg.Grass.Density = float32(*flagDensity)
	}
	if *flagWorkers > 0 {
		cfg.Graphics.Workers = *flagWorkers
	}
	if *flagServer != "" {
		cfg.ParamServer.Enabled = true
		cfg.ParamServer.Listen = *flagServer
	}
}
