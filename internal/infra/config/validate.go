package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError accumulates config validation errors.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return "config validation failed:\n  - " + strings.Join(v.Errors, "\n  - ")
}

// HasErrors reports whether any validation errors have been recorded.
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Add records a formatted validation error.
func (v *ValidationError) Add(format string, args ...interface{}) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// Validate checks cfg for structural correctness. It returns a *ValidationError
// when one or more problems are found, allowing callers to inspect all issues.
func Validate(cfg *Config) error {
	ve := &ValidationError{}
	validateOrchestrator(cfg, ve)
	validateLogger(cfg, ve)
	validateTracer(cfg, ve)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateOrchestrator(cfg *Config, ve *ValidationError) {
	if cfg.Orchestrator.BaseURL == "" {
		ve.Add("orchestrator.base_url must not be empty")
	} else {
		u, err := url.Parse(cfg.Orchestrator.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			ve.Add("orchestrator.base_url must be a valid http(s) URL")
		} else if u.Scheme != "http" && u.Scheme != "https" {
			ve.Add("orchestrator.base_url scheme must be http or https, got %q", u.Scheme)
		}
	}
	if cfg.Orchestrator.Timeout <= 0 {
		ve.Add("orchestrator.timeout must be > 0")
	}
	if cfg.Orchestrator.Breaker.Enabled && cfg.Orchestrator.Breaker.MaxFailures == 0 {
		ve.Add("orchestrator.breaker.max_failures must be > 0 when the breaker is enabled")
	}
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func validateLogger(cfg *Config, ve *ValidationError) {
	if !validLogLevels[cfg.Logger.Level] {
		ve.Add("logger.level must be one of debug, info, warn, error, got %q", cfg.Logger.Level)
	}
	if cfg.Logger.Format != "text" && cfg.Logger.Format != "json" {
		ve.Add("logger.format must be text or json, got %q", cfg.Logger.Format)
	}
}

func validateTracer(cfg *Config, ve *ValidationError) {
	if !cfg.Tracer.Enabled {
		return
	}
	if cfg.Tracer.Exporter != "stdout" {
		ve.Add("tracer.exporter must be stdout, got %q", cfg.Tracer.Exporter)
	}
}
