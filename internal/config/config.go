package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"primitive-viewer/internal/clearcolor"
	"primitive-viewer/internal/logger"
	"primitive-viewer/internal/primitives"
)

// DefaultPath is the config file, relative to the process working directory.
const DefaultPath = "config/demo.yaml"

// Environment variables that override file values.
const (
	EnvSeed      = "DEMO_SEED"
	EnvLogLevel  = "DEMO_LOG_LEVEL"
	EnvColorRate = "DEMO_COLOR_RATE"
	EnvCatalog   = "DEMO_CATALOG"
)

// Window configures the demo window.
type Window struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	TargetFPS  int    `yaml:"target_fps"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// Prefs holds the demo's preferences. Persisted across runs with Save.
type Prefs struct {
	Window      Window  `yaml:"window"`
	ColorRate   float64 `yaml:"color_rate"`
	TiltDegrees float32 `yaml:"tilt_degrees"`
	ShowFPS     bool    `yaml:"show_fps"`
	ShowMem     bool    `yaml:"show_mem"`
	Catalog     string  `yaml:"catalog"`
	Seed        uint64  `yaml:"seed"`
	LogLevel    string  `yaml:"log_level"`
	LogFile     string  `yaml:"log_file"`
}

// Default returns default preferences (800x600 window, overlays off, built-in rate).
func Default() Prefs {
	return Prefs{
		Window: Window{
			Width:     800,
			Height:    600,
			Title:     "Primitive Viewer",
			TargetFPS: 60,
		},
		ColorRate:   clearcolor.DefaultRate,
		TiltDegrees: 25,
		Catalog:     primitives.DefaultCatalogPath,
		LogLevel:    "info",
		LogFile:     logger.DefaultPath,
	}
}

// Load reads preferences from path. A missing file returns Default() and no error.
// An unreadable or invalid file returns Default() together with the error.
// Fields absent from the file keep their default values; invalid sizes, rates and
// empty strings are reset to their defaults.
func Load(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), err
	}
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return p.withDefaults(), nil
}

func (p Prefs) withDefaults() Prefs {
	d := Default()
	if p.Window.Width <= 0 {
		p.Window.Width = d.Window.Width
	}
	if p.Window.Height <= 0 {
		p.Window.Height = d.Window.Height
	}
	if p.Window.Title == "" {
		p.Window.Title = d.Window.Title
	}
	if p.Window.TargetFPS <= 0 {
		p.Window.TargetFPS = d.Window.TargetFPS
	}
	if !(p.ColorRate > 0 && p.ColorRate <= 1) {
		p.ColorRate = d.ColorRate
	}
	if p.Catalog == "" {
		p.Catalog = d.Catalog
	}
	if p.LogLevel == "" {
		p.LogLevel = d.LogLevel
	}
	if p.LogFile == "" {
		p.LogFile = d.LogFile
	}
	return p
}

// ApplyEnv overrides fields from DEMO_* environment variables. Unparsable values
// are reported and leave the field unchanged.
func ApplyEnv(p Prefs) (Prefs, error) {
	var errs []error
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		} else {
			p.Seed = seed
		}
	}
	if v, ok := os.LookupEnv(EnvColorRate); ok {
		rate, err := strconv.ParseFloat(v, 64)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", EnvColorRate, err))
		case !(rate > 0 && rate <= 1):
			errs = append(errs, fmt.Errorf("%s: %v out of (0,1]", EnvColorRate, rate))
		default:
			p.ColorRate = rate
		}
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		p.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvCatalog); ok && v != "" {
		p.Catalog = v
	}
	return p, errors.Join(errs...)
}

// Save writes preferences to path as YAML, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
