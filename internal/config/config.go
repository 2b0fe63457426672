// Package config loads game settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/mrsinham/doctoroncall/internal/clinic"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the complete game configuration.
type Config struct {
	Rules      RulesYAML `yaml:"rules"`
	Seed       uint64    `yaml:"seed" env:"DOC_SEED"`
	MemoryPath string    `yaml:"memory_path" env:"DOC_MEMORY_PATH"`
	LedgerPath string    `yaml:"ledger_path" env:"DOC_LEDGER_PATH"`
	LogFile    string    `yaml:"log_file" env:"DOC_LOG_FILE"`
	LogLevel   string    `yaml:"log_level" env:"DOC_LOG_LEVEL"`
	LogFormat  string    `yaml:"log_format" env:"DOC_LOG_FORMAT"`
}

// RulesYAML holds the run rules with YAML tags.
type RulesYAML struct {
	Days           int     `yaml:"days"`
	PatientsPerDay int     `yaml:"patients_per_day"`
	PassingAverage float64 `yaml:"passing_average"`
}

// Default returns the configuration used when no file is given. Files
// live under the user's config directory, or the working directory when
// it cannot be determined.
func Default() Config {
	rules := clinic.DefaultRules()
	dir := defaultDir()
	return Config{
		Rules: RulesYAML{
			Days:           rules.Days,
			PatientsPerDay: rules.PatientsPerDay,
			PassingAverage: rules.PassingAverage,
		},
		MemoryPath: filepath.Join(dir, "memory.json"),
		LedgerPath: filepath.Join(dir, "ledger.db"),
		LogFile:    filepath.Join(dir, "doctoroncall.log"),
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

func defaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "doctoroncall")
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads overrides from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// SaveToYAML writes cfg to path.
func SaveToYAML(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks if config is valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Rules.Days < 1 {
		errs = append(errs, fmt.Errorf("rules.days must be at least 1, got %d", c.Rules.Days))
	}
	if c.Rules.PatientsPerDay < 1 {
		errs = append(errs, fmt.Errorf("rules.patients_per_day must be at least 1, got %d", c.Rules.PatientsPerDay))
	}
	if c.Rules.PassingAverage < 0 || c.Rules.PassingAverage > 5 {
		errs = append(errs, fmt.Errorf("rules.passing_average must be 0-5, got %g", c.Rules.PassingAverage))
	}
	if c.MemoryPath == "" {
		errs = append(errs, errors.New("memory_path is required"))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// JSONLogs reports whether logs are written as JSON lines.
func (c *Config) JSONLogs() bool {
	return c.LogFormat == "json"
}

// ClinicRules converts the rules section for the session.
func (c *Config) ClinicRules() clinic.Rules {
	return clinic.Rules{
		Days:           c.Rules.Days,
		PatientsPerDay: c.Rules.PatientsPerDay,
		PassingAverage: c.Rules.PassingAverage,
	}
}
