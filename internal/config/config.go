package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/waabox/auditdeck/internal/progress"
)

// ProgressConfig holds the simulated audit cadence.
type ProgressConfig struct {
	TickIntervalMS int      `toml:"tick_interval_ms"`
	MinIncrement   int      `toml:"min_increment"`
	MaxIncrement   int      `toml:"max_increment"`
	Stages         []string `toml:"stages,omitempty"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Config holds all auditdeck configuration.
type Config struct {
	Progress ProgressConfig `toml:"progress"`
	Log      LogConfig      `toml:"log"`
}

const (
	defaultTickIntervalMS = 300
	defaultMinIncrement   = 5
	defaultMaxIncrement   = 20
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Progress: ProgressConfig{
			TickIntervalMS: defaultTickIntervalMS,
			MinIncrement:   defaultMinIncrement,
			MaxIncrement:   defaultMaxIncrement,
		},
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// TickInterval returns the progress tick interval as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.Progress.TickIntervalMS) * time.Millisecond
}

// SimulatorConfig converts the file configuration into a progress.Config.
// The random source is left unset so the simulator seeds its own.
func (c Config) SimulatorConfig() progress.Config {
	cfg := progress.Config{
		MinIncrement: c.Progress.MinIncrement,
		MaxIncrement: c.Progress.MaxIncrement,
		TickInterval: c.TickInterval(),
	}
	if len(c.Progress.Stages) > 0 {
		cfg.Stages = progress.StagesFromLabels(c.Progress.Stages)
	}
	return cfg
}

// LoadFrom reads configuration from the given TOML file path on top of Default().
// If the file does not exist, it returns the defaults without error.
// Environment variables always take precedence over file values:
//   - AUDITDECK_TICK_INTERVAL_MS overrides progress.tick_interval_ms
//   - AUDITDECK_LOG_LEVEL        overrides log.level
//   - AUDITDECK_LOG_FILE         overrides log.file
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decoding %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultConfigPath returns the default path for the auditdeck config file.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "auditdeck", "config.toml")
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("AUDITDECK_TICK_INTERVAL_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid AUDITDECK_TICK_INTERVAL_MS %q: %w", v, err)
		}
		cfg.Progress.TickIntervalMS = ms
	}
	if v := os.Getenv("AUDITDECK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("AUDITDECK_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// Save writes cfg to the given TOML file path, creating parent directories as needed.
// Existing file contents are overwritten. Permissions on the written file are 0600.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	if encErr := toml.NewEncoder(f).Encode(cfg); encErr != nil {
		f.Close()
		return encErr
	}
	return f.Close()
}
