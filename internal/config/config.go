package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-gmi"
	"github.com/alnah/go-gmi/internal/fileutil"
	"github.com/alnah/go-gmi/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Listing formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Log levels and formats accepted by LogConfig.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Field limits.
const (
	MaxPathLength      = 4096
	MaxExtensionLength = 16
	MaxExtensions      = 32
	MaxWorkers         = 32
)

// userConfigDirName is the directory under os.UserConfigDir searched for named configs.
const userConfigDirName = "go-gmi"

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatYAML, FormatJSON}

// Config holds all CLI configuration.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Classify ClassifyConfig `yaml:"classify"`
	Workers  int            `yaml:"workers"` // 0 = auto
	Log      LogConfig      `yaml:"log"`
}

// InputConfig defines input discovery options.
type InputConfig struct {
	DefaultDir string   `yaml:"defaultDir"` // used when no positional input is given
	Extensions []string `yaml:"extensions"` // with leading dot, e.g. ".gmi"
}

// OutputConfig defines listing output options.
type OutputConfig struct {
	Format     string `yaml:"format"`     // "text", "yaml", "json"
	DefaultDir string `yaml:"defaultDir"` // empty = stdout
}

// ClassifyConfig mirrors the classifier options.
type ClassifyConfig struct {
	ImageExtensions       []string `yaml:"imageExtensions"` // without leading dot
	CaseInsensitiveImages bool     `yaml:"caseInsensitiveImages"`
	ExtensionSearch       string   `yaml:"extensionSearch"` // "last" (default) or "first"
}

// LogConfig defines CLI diagnostics.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{Extensions: []string{".gmi", ".gemini"}},
		Output: OutputConfig{Format: FormatText},
		Classify: ClassifyConfig{
			ImageExtensions: slices.Clone(gmi.DefaultImageExtensions),
			ExtensionSearch: gmi.ExtensionSearchLast.String(),
		},
		Log: LogConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}

// Options converts the classify section to classifier options.
// Call Validate first; an invalid extension search falls back to the default.
// A nil ImageExtensions keeps the classifier's default image set.
func (c ClassifyConfig) Options() []gmi.Option {
	var opts []gmi.Option
	if len(c.ImageExtensions) > 0 {
		opts = append(opts, gmi.WithImageExtensions(c.ImageExtensions...))
	}
	if c.CaseInsensitiveImages {
		opts = append(opts, gmi.WithCaseInsensitiveImages())
	}
	if search, err := gmi.ParseExtensionSearch(c.ExtensionSearch); err == nil {
		opts = append(opts, gmi.WithExtensionSearch(search))
	}
	return opts
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for callers
// who build a Config from flags or environment variables.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if len(c.Input.Extensions) > MaxExtensions {
		return fmt.Errorf("%w: input.extensions has %d entries (max %d)", ErrInvalidValue, len(c.Input.Extensions), MaxExtensions)
	}
	for i, ext := range c.Input.Extensions {
		field := fmt.Sprintf("input.extensions[%d]", i)
		if err := validateFieldLength(field, ext, MaxExtensionLength); err != nil {
			return err
		}
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: %s: %q (must start with a dot)", ErrInvalidValue, field, ext)
		}
	}

	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if c.Output.Format != "" && !slices.Contains(Formats, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("%w: output.format: %q (must be text, yaml, or json)", ErrInvalidValue, c.Output.Format)
	}

	if c.Classify.ImageExtensions != nil && len(c.Classify.ImageExtensions) == 0 {
		return fmt.Errorf("%w: classify.imageExtensions is empty (omit it to use the defaults)", ErrInvalidValue)
	}
	if len(c.Classify.ImageExtensions) > MaxExtensions {
		return fmt.Errorf("%w: classify.imageExtensions has %d entries (max %d)", ErrInvalidValue, len(c.Classify.ImageExtensions), MaxExtensions)
	}
	for i, ext := range c.Classify.ImageExtensions {
		if err := validateFieldLength(fmt.Sprintf("classify.imageExtensions[%d]", i), ext, MaxExtensionLength); err != nil {
			return err
		}
	}
	if _, err := gmi.ParseExtensionSearch(c.Classify.ExtensionSearch); err != nil {
		return fmt.Errorf("%w: classify.extensionSearch: %v", ErrInvalidValue, err)
	}
	if _, err := gmi.NewClassifier(c.Classify.Options()...); err != nil {
		return fmt.Errorf("%w: classify: %v", ErrInvalidValue, err)
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: %d (must be between 0 and %d)", ErrInvalidValue, c.Workers, MaxWorkers)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("%w: log.level: %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log.format: %q (must be text or json)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Sections missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order:
// current directory then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
