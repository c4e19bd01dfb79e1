// Package config loads the ramtop configuration from an optional YAML file
// with RAMTOP_* environment overrides layered on top.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration for YAML unmarshalling.
type Duration struct {
	time.Duration
	explicit bool
}

// UnmarshalText parses a textual duration, accepting empty strings.
func (d *Duration) UnmarshalText(text []byte) error {
	d.explicit = true
	if len(text) == 0 {
		d.Duration = 0
		return nil
	}
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = dur
	return nil
}

// MarshalText renders the duration using time.Duration formatting.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// IsSet reports whether the duration was explicitly provided or non-zero.
func (d Duration) IsSet() bool {
	return d.explicit || d.Duration != 0
}

// Config carries the tunables for listing and terminating processes.
type Config struct {
	// TopN bounds the ranked process list.
	TopN int `yaml:"topN"`
	// GraceWait bounds how long a process gets to honour the graceful
	// signal before the forceful kill.
	GraceWait Duration `yaml:"graceWait"`
	// PollInterval is the existence-poll cadence during the grace wait.
	PollInterval Duration `yaml:"pollInterval"`
	// SettleDelay is the pause between the forceful kill and the final
	// existence check.
	SettleDelay Duration `yaml:"settleDelay"`
	// BatchSettle is the pause after a whole batch before re-sampling
	// memory for the summary.
	BatchSettle Duration `yaml:"batchSettle"`
	// LogDir overrides where the per-run session directory is created.
	LogDir string `yaml:"logDir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TopN:         10,
		GraceWait:    Duration{Duration: time.Second},
		PollInterval: Duration{Duration: 100 * time.Millisecond},
		SettleDelay:  Duration{Duration: 500 * time.Millisecond},
		BatchSettle:  Duration{Duration: 1500 * time.Millisecond},
	}
}

// Load reads the configuration file at path, falling back to defaults when
// the file does not exist, then applies environment overrides. An empty path
// skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			decoder := yaml.NewDecoder(f)
			decoder.KnownFields(true)
			if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
				return Default(), fmt.Errorf("%s: decode: %w", path, err)
			}
		case os.IsNotExist(err):
			// Missing config is fine; defaults apply.
		default:
			return Default(), fmt.Errorf("open config: %w", err)
		}
	}

	applyEnv(&cfg)
	cfg.normalize()
	return cfg, nil
}

// applyEnv overlays RAMTOP_* environment variables, loading a .env file
// first when one is present.
func applyEnv(cfg *Config) {
	_ = godotenv.Load()

	if value := os.Getenv("RAMTOP_TOP_N"); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			cfg.TopN = n
		}
	}
	if value := os.Getenv("RAMTOP_GRACE_WAIT"); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			cfg.GraceWait = Duration{Duration: d, explicit: true}
		}
	}
	if value := os.Getenv("RAMTOP_POLL_INTERVAL"); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			cfg.PollInterval = Duration{Duration: d, explicit: true}
		}
	}
	if value := os.Getenv("RAMTOP_SETTLE_DELAY"); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			cfg.SettleDelay = Duration{Duration: d, explicit: true}
		}
	}
	if value := os.Getenv("RAMTOP_BATCH_SETTLE"); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			cfg.BatchSettle = Duration{Duration: d, explicit: true}
		}
	}
	if value := os.Getenv("RAMTOP_LOG_DIR"); value != "" {
		cfg.LogDir = value
	}
}

// normalize backfills defaults for values zeroed or misconfigured by the
// file or environment.
func (c *Config) normalize() {
	def := Default()
	if c.TopN <= 0 {
		c.TopN = def.TopN
	}
	if c.GraceWait.Duration <= 0 {
		c.GraceWait = def.GraceWait
	}
	if c.PollInterval.Duration <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.SettleDelay.Duration <= 0 {
		c.SettleDelay = def.SettleDelay
	}
	if c.BatchSettle.Duration <= 0 {
		c.BatchSettle = def.BatchSettle
	}
}
