package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath       = "FISHING_FRIDAY_CONFIG"
	EnvSeed             = "FISHING_FRIDAY_SEED"
	EnvDay              = "FISHING_FRIDAY_DAY"
	EnvAutoPlay         = "FISHING_FRIDAY_AUTO_PLAY"
	EnvStartingCurrency = "FISHING_FRIDAY_STARTING_CURRENCY"
	EnvLogLevel         = "FISHING_FRIDAY_LOG_LEVEL"

	defaultStartingCurrency = 18
)

type Config struct {
	// Seed 0 means derive one from the clock.
	Seed              int64  `yaml:"seed" json:"seed"`
	Day               string `yaml:"day,omitempty" json:"day,omitempty"`
	AutoPlay          int    `yaml:"auto_play" json:"auto_play"`
	StartingCurrency  int    `yaml:"starting_currency" json:"starting_currency"`
	StartingEquipment string `yaml:"starting_equipment,omitempty" json:"starting_equipment,omitempty"`
	StartingLocation  string `yaml:"starting_location,omitempty" json:"starting_location,omitempty"`
	LogLevel          string `yaml:"log_level" json:"log_level"`
}

func Default() Config {
	return Config{
		StartingCurrency: defaultStartingCurrency,
		LogLevel:         "info",
	}
}

func (c Config) Validate() error {
	if c.AutoPlay < 0 {
		return fmt.Errorf("auto_play must be >= 0, got %d", c.AutoPlay)
	}
	if c.StartingCurrency < 0 {
		return fmt.Errorf("starting_currency must be >= 0, got %d", c.StartingCurrency)
	}
	switch c.LogLevel {
	case "info", "error":
	default:
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	return nil
}

// Path is $FISHING_FRIDAY_CONFIG when set, else the per-user config file.
func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fishing-friday", "config.yaml"), nil
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays FISHING_FRIDAY_* variables. Unset or empty variables
// keep the current value.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvSeed)); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = n
	}
	if v := strings.TrimSpace(getenv(EnvDay)); v != "" {
		c.Day = v
	}
	if v := strings.TrimSpace(getenv(EnvAutoPlay)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAutoPlay, err)
		}
		c.AutoPlay = n
	}
	if v := strings.TrimSpace(getenv(EnvStartingCurrency)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStartingCurrency, err)
		}
		c.StartingCurrency = n
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return c.Validate()
}

// Save writes the config atomically through a temp file in the same dir.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "config-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	cleanup = false
	return nil
}
