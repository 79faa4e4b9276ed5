package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// OrchestratorConfig holds settings for the remote orchestration service.
type OrchestratorConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	Breaker      BreakerConfig `yaml:"breaker"`
}

// BreakerConfig holds circuit breaker settings for the orchestrator transport.
type BreakerConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxFailures uint32        `yaml:"max_failures"`
	OpenTimeout time.Duration `yaml:"open_timeout"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// TracerConfig holds tracing settings.
type TracerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
	Endpoint string `yaml:"endpoint"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	ASCIISymbols bool `yaml:"ascii_symbols"`
	ShowPanel    bool `yaml:"show_panel"`
}

// Config is the top-level application configuration.
type Config struct {
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
	Logger       LoggerConfig       `yaml:"logger"`
	Tracer       TracerConfig       `yaml:"tracer"`
	UI           UIConfig           `yaml:"ui"`
}

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Orchestrator: OrchestratorConfig{
			BaseURL:      "http://localhost:8000",
			Timeout:      60 * time.Second,
			MaxIdleConns: 10,
			Breaker: BreakerConfig{
				Enabled:     true,
				MaxFailures: 3,
				OpenTimeout: 30 * time.Second,
			},
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Tracer: TracerConfig{
			Enabled:  false,
			Exporter: "stdout",
		},
		UI: UIConfig{
			ASCIISymbols: false,
			ShowPanel:    true,
		},
	}
}

// Load reads a YAML config file and applies env var overrides. A missing file
// is not an error; defaults plus env overrides are used instead.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ApplyEnvOverrides(cfg)
			if err := Validate(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	ApplyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnvOverrides maps WELLNESS_* env vars to config fields.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WELLNESS_ORCHESTRATOR_URL"); v != "" {
		cfg.Orchestrator.BaseURL = v
	}
	if v := os.Getenv("WELLNESS_ORCHESTRATOR_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Orchestrator.Timeout = d
		}
	}
	if v := os.Getenv("WELLNESS_BREAKER_ENABLED"); v == "false" {
		cfg.Orchestrator.Breaker.Enabled = false
	}
	if v := os.Getenv("WELLNESS_BREAKER_MAX_FAILURES"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil && n > 0 {
			cfg.Orchestrator.Breaker.MaxFailures = uint32(n)
		}
	}
	if v := os.Getenv("WELLNESS_LOGGER_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("WELLNESS_LOGGER_FORMAT"); v != "" {
		cfg.Logger.Format = v
	}
	if v := os.Getenv("WELLNESS_LOGGER_OUTPUT"); v != "" {
		cfg.Logger.Output = v
	}
	if v := os.Getenv("WELLNESS_TRACER_ENABLED"); v == "true" {
		cfg.Tracer.Enabled = true
	}
	if v := os.Getenv("WELLNESS_TRACER_EXPORTER"); v != "" {
		cfg.Tracer.Exporter = v
	}
	if v := os.Getenv("WELLNESS_UI_HIDE_PANEL"); v == "true" {
		cfg.UI.ShowPanel = false
	}
}
