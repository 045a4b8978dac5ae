package main

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-gmi/internal/config"
)

// envPrefix namespaces the environment variables read by gmi.
const envPrefix = "GMI_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // GMI_CONFIG: config file name or path
	Format     string // GMI_FORMAT: text, yaml, json
	Workers    int    // GMI_WORKERS: parallel workers
	LogLevel   string // GMI_LOG_LEVEL: debug, info, warn, error
	InputDir   string // GMI_INPUT_DIR: default input directory
	OutputDir  string // GMI_OUTPUT_DIR: default output directory
}

// knownEnvVars lists valid GMI_* environment variables.
var knownEnvVars = map[string]bool{
	"GMI_CONFIG":     true,
	"GMI_FORMAT":     true,
	"GMI_WORKERS":    true,
	"GMI_LOG_LEVEL":  true,
	"GMI_INPUT_DIR":  true,
	"GMI_OUTPUT_DIR": true,
}

// loadEnvConfig reads the GMI_* variables through getenv.
// A malformed or non-positive GMI_WORKERS is ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("GMI_CONFIG"),
		Format:     getenv("GMI_FORMAT"),
		LogLevel:   getenv("GMI_LOG_LEVEL"),
		InputDir:   getenv("GMI_INPUT_DIR"),
		OutputDir:  getenv("GMI_OUTPUT_DIR"),
	}

	if workers := getenv("GMI_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized GMI_* variable.
func warnUnknownEnvVars(environ []string, log logrus.FieldLogger) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			log.WithField("variable", name).Warn("unknown environment variable (typo?)")
		}
	}
}

// applyEnvConfig overrides config values with the set environment variables.
// Flags are merged afterwards: flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Format != "" {
		cfg.Output.Format = env.Format
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}
