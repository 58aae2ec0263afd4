// Package config loads the optional trellis.yaml runtime configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	trerrors "github.com/go-drift/trellis/pkg/errors"
)

// FileName is the configuration file looked up in a project directory.
const FileName = "trellis.yaml"

// Default theme paddings, in logical pixels.
const (
	DefaultWidgetPaddingHorizontal = 8.0
	DefaultWidgetPaddingVertical   = 10.0
)

// Config represents the trellis.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Window WindowConfig `yaml:"window"`
	Theme  ThemeConfig  `yaml:"theme"`
	Log    LogConfig    `yaml:"log"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// WindowConfig contains the initial window size.
type WindowConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// ThemeConfig contains layout metrics shared by widgets.
type ThemeConfig struct {
	// WidgetPaddingHorizontal is the default spacer length in rows.
	WidgetPaddingHorizontal *float64 `yaml:"widget_padding_horizontal,omitempty"`
	// WidgetPaddingVertical is the default spacer length in columns.
	WidgetPaddingVertical *float64 `yaml:"widget_padding_vertical,omitempty"`
}

// LogConfig controls warning output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`
	// Verbose includes stack traces of recovered panics.
	Verbose bool `yaml:"verbose,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	h, v := DefaultWidgetPaddingHorizontal, DefaultWidgetPaddingVertical
	return &Config{
		App:    AppConfig{Name: "trellis_app"},
		Window: WindowConfig{Width: 800, Height: 600},
		Theme:  ThemeConfig{WidgetPaddingHorizontal: &h, WidgetPaddingVertical: &v},
		Log:    LogConfig{Level: "warn"},
	}
}

// PaddingHorizontal returns the resolved horizontal widget padding.
func (c *Config) PaddingHorizontal() float64 {
	if c == nil || c.Theme.WidgetPaddingHorizontal == nil {
		return DefaultWidgetPaddingHorizontal
	}
	return *c.Theme.WidgetPaddingHorizontal
}

// PaddingVertical returns the resolved vertical widget padding.
func (c *Config) PaddingVertical() float64 {
	if c == nil || c.Theme.WidgetPaddingVertical == nil {
		return DefaultWidgetPaddingVertical
	}
	return *c.Theme.WidgetPaddingVertical
}

// Parse decodes YAML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOptional reads trellis.yaml from dir if present.
// A missing file yields the defaults.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return Parse(data)
}

// Resolve loads trellis.yaml (if present) and fills the application name
// from the enclosing go.mod when the file leaves it unset.
func Resolve(dir string) (*Config, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(cfg.App.Name)
	if name == "" || name == Default().App.Name {
		if modName, err := moduleName(dir); err == nil {
			name = modName
		}
	}
	if name == "" {
		name = Default().App.Name
	}
	cfg.App.Name = name
	return cfg, nil
}

// FindProjectRoot walks up from start to the nearest directory holding a
// go.mod file.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found above %s)", start)
		}
		dir = parent
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive (got %gx%g)", c.Window.Width, c.Window.Height)
	}
	if c.PaddingHorizontal() < 0 || c.PaddingVertical() < 0 {
		return fmt.Errorf("theme paddings cannot be negative")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// NewLogHandler builds the runtime's error handler from the log settings,
// writing text records to w. A nil w means stderr.
func (c *Config) NewLogHandler(w io.Writer) *trerrors.LogHandler {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelWarn
	}
	if w == nil {
		w = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	h := trerrors.NewLogHandler(logger)
	h.Verbose = c.Log.Verbose
	return h
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func moduleName(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	prefix, _, ok := module.SplitPathVersion(path)
	if !ok {
		prefix = path
	}
	parts := strings.Split(prefix, "/")
	return parts[len(parts)-1], nil
}
