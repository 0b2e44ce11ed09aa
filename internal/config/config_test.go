package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/waabox/auditdeck/internal/config"
)

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := `
[progress]
tick_interval_ms = 150
min_increment = 10
max_increment = 25
stages = ["Parsing", "Scanning", "Reporting"]

[log]
level = "debug"
format = "json"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TickInterval() != 150*time.Millisecond {
		t.Errorf("expected 150ms tick interval, got %s", cfg.TickInterval())
	}
	if cfg.Progress.MinIncrement != 10 || cfg.Progress.MaxIncrement != 25 {
		t.Errorf("expected increments 10..25, got %d..%d", cfg.Progress.MinIncrement, cfg.Progress.MaxIncrement)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Log.Format)
	}

	simCfg := cfg.SimulatorConfig()
	if len(simCfg.Stages) != 3 || simCfg.Stages[2].Label != "Reporting" {
		t.Errorf("expected three custom stages, got %+v", simCfg.Stages)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := `
[log]
file = "/tmp/auditdeck.log"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TickInterval() != 300*time.Millisecond {
		t.Errorf("expected default 300ms tick interval, got %s", cfg.TickInterval())
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Log.Level)
	}
	if cfg.Log.File != "/tmp/auditdeck.log" {
		t.Errorf("expected log file from config, got '%s'", cfg.Log.File)
	}
}

func TestLoad_EnvVarsTakePrecedence(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := `
[progress]
tick_interval_ms = 500

[log]
level = "warning"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("AUDITDECK_TICK_INTERVAL_MS", "50")
	t.Setenv("AUDITDECK_LOG_LEVEL", "debug")
	t.Setenv("AUDITDECK_LOG_FILE", "/var/log/auditdeck.log")

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Progress.TickIntervalMS != 50 {
		t.Errorf("expected env tick interval 50, got %d", cfg.Progress.TickIntervalMS)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected env level 'debug', got '%s'", cfg.Log.Level)
	}
	if cfg.Log.File != "/var/log/auditdeck.log" {
		t.Errorf("expected env log file, got '%s'", cfg.Log.File)
	}
}

func TestLoad_InvalidEnvIntervalIsError(t *testing.T) {
	t.Setenv("AUDITDECK_TICK_INTERVAL_MS", "soon")
	if _, err := config.LoadFrom("/nonexistent/path/config.toml"); err == nil {
		t.Fatal("expected error for non-numeric tick interval")
	}
}

func TestLoad_MissingFileIsNotError(t *testing.T) {
	cfg, err := config.LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("missing file should not be an error, got: %v", err)
	}
	if cfg.Progress.MinIncrement != 5 || cfg.Progress.MaxIncrement != 20 {
		t.Errorf("expected default increments, got %d..%d", cfg.Progress.MinIncrement, cfg.Progress.MaxIncrement)
	}
}

func TestSave_RoundTripsAndRestrictsPermissions(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "nested", "config.toml")

	cfg := config.Default()
	cfg.Log.Format = "json"
	if err := config.Save(configPath, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %o", info.Mode().Perm())
	}

	loaded, err := config.LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Log.Format != "json" {
		t.Errorf("expected saved format 'json', got '%s'", loaded.Log.Format)
	}
}
