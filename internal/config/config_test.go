package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ramtop.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TopN != 10 {
		t.Fatalf("TopN = %d, want 10", cfg.TopN)
	}
	if cfg.GraceWait.Duration != time.Second {
		t.Fatalf("GraceWait = %v, want 1s", cfg.GraceWait.Duration)
	}
	if cfg.BatchSettle.Duration != 1500*time.Millisecond {
		t.Fatalf("BatchSettle = %v, want 1.5s", cfg.BatchSettle.Duration)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
topN: 5
graceWait: 2s
pollInterval: 50ms
logDir: /var/tmp
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TopN != 5 {
		t.Fatalf("TopN = %d, want 5", cfg.TopN)
	}
	if cfg.GraceWait.Duration != 2*time.Second {
		t.Fatalf("GraceWait = %v, want 2s", cfg.GraceWait.Duration)
	}
	if cfg.PollInterval.Duration != 50*time.Millisecond {
		t.Fatalf("PollInterval = %v, want 50ms", cfg.PollInterval.Duration)
	}
	if cfg.LogDir != "/var/tmp" {
		t.Fatalf("LogDir = %q, want /var/tmp", cfg.LogDir)
	}
	// Untouched fields keep their defaults.
	if cfg.SettleDelay.Duration != 500*time.Millisecond {
		t.Fatalf("SettleDelay = %v, want 500ms", cfg.SettleDelay.Duration)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "interval: 3s\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("Load accepted unknown field")
	}
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	path := writeConfig(t, "graceWait: soon\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("Load accepted invalid duration")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "topN: 5\n")

	t.Setenv("RAMTOP_TOP_N", "3")
	t.Setenv("RAMTOP_GRACE_WAIT", "250ms")
	t.Setenv("RAMTOP_LOG_DIR", "/tmp/ramtop-logs")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TopN != 3 {
		t.Fatalf("TopN = %d, want 3", cfg.TopN)
	}
	if cfg.GraceWait.Duration != 250*time.Millisecond {
		t.Fatalf("GraceWait = %v, want 250ms", cfg.GraceWait.Duration)
	}
	if cfg.LogDir != "/tmp/ramtop-logs" {
		t.Fatalf("LogDir = %q, want /tmp/ramtop-logs", cfg.LogDir)
	}
}

func TestEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("RAMTOP_TOP_N", "many")
	t.Setenv("RAMTOP_SETTLE_DELAY", "-1s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TopN != 10 {
		t.Fatalf("TopN = %d, want default 10", cfg.TopN)
	}
	if cfg.SettleDelay.Duration != 500*time.Millisecond {
		t.Fatalf("SettleDelay = %v, want default 500ms", cfg.SettleDelay.Duration)
	}
}

func TestNormalizeBackfillsZeroes(t *testing.T) {
	path := writeConfig(t, "topN: 0\npollInterval: 0s\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TopN != 10 {
		t.Fatalf("TopN = %d, want backfilled 10", cfg.TopN)
	}
	if cfg.PollInterval.Duration != 100*time.Millisecond {
		t.Fatalf("PollInterval = %v, want backfilled 100ms", cfg.PollInterval.Duration)
	}
}
