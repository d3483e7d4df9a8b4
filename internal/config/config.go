package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/svgmirror/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "svgmirror.json"

	// DefaultHost is the tag of the element whose children are mirrored.
	DefaultHost = "svg-html"

	// DefaultIndent is the indentation used by pretty rendering.
	DefaultIndent = "  "

	// DefaultMetricsNamespace is the Prometheus namespace for engine metrics.
	DefaultMetricsNamespace = "svgmirror"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
)

// Config represents the complete svgmirror.json configuration.
type Config struct {
	// Host is the tag name of the authoring container element.
	Host string `json:"host,omitempty"`

	// ViewBox is forwarded to the root <svg> element when non-empty.
	ViewBox string `json:"viewBox,omitempty"`

	// Width is forwarded to the root <svg> element when non-zero.
	Width float64 `json:"width,omitempty"`

	// Height is forwarded to the root <svg> element when non-zero.
	Height float64 `json:"height,omitempty"`

	// Cascade tears down descendant associations and watchers when a
	// subtree is removed.
	Cascade bool `json:"cascade"`

	// PositionalInsert places inserted subtrees before their next
	// associated sibling instead of appending them.
	PositionalInsert bool `json:"positionalInsert"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty"`

	// Render contains SVG output configuration.
	Render RenderConfig `json:"render,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig contains SVG serialization settings.
type RenderConfig struct {
	// Pretty enables indented output.
	Pretty bool `json:"pretty,omitempty"`

	// Indent is the string used for each indentation level.
	Indent string `json:"indent,omitempty"`
}

// MetricsConfig contains Prometheus metric naming.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "svgmirror").
	Namespace string `json:"namespace,omitempty"`

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string `json:"subsystem,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Host:             DefaultHost,
		Cascade:          true,
		PositionalInsert: true,
		LogLevel:         DefaultLogLevel,
		Render: RenderConfig{
			Indent: DefaultIndent,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultMetricsNamespace,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for svgmirror.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C001").
				WithDetail("No " + ConfigFileName + " found at " + path).
				WithSuggestion("Create " + ConfigFileName + " or pass flags instead")
		}
		return nil, errors.New("C002").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("C002").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("C002").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C002").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Render.Indent == "" {
		c.Render.Indent = DefaultIndent
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return errors.New("C003").
			WithDetail("width and height must not be negative")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return errors.New("C003").
			WithDetailf("unknown logLevel %q", c.LogLevel).
			WithSuggestion("Use one of debug, info, warn, error")
	}
	if strings.ContainsAny(c.Host, " <>/") {
		return errors.New("C003").
			WithDetailf("host %q is not a valid tag name", c.Host)
	}
	return nil
}

// SlogLevel returns the configured log level as a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindConfigDir walks up directories from startDir to find svgmirror.json.
func FindConfigDir(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("C001").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromDir loads configuration from startDir or its nearest parent that
// has one.
func LoadFromDir(startDir string) (*Config, error) {
	dir, err := FindConfigDir(startDir)
	if err != nil {
		return nil, err
	}
	return Load(dir)
}
