// Package config loads the tour's settings from a TOML or YAML file and watches it for
// scroll tuning changes.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-tour/tour/choreographer"
	"github.com/Carmen-Shannon/oxy-tour/tour/scroll"
)

var (
	// ErrUnsupportedFormat is returned for a file extension other than .toml, .yaml or .yml.
	ErrUnsupportedFormat = errors.New("config: unsupported format")
	// ErrInvalid is returned when a decoded value is out of range.
	ErrInvalid = errors.New("config: invalid value")
)

// Format is a config file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Duration is a time.Duration written as a Go duration string ("1.2s", "800ms").
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

type Window struct {
	Title         string `toml:"title" yaml:"title"`
	Width         int    `toml:"width" yaml:"width"`
	Height        int    `toml:"height" yaml:"height"`
	CloseOnEscape bool   `toml:"close_on_escape" yaml:"close_on_escape"`
}

type Assets struct {
	// Root is the directory texture URLs are resolved against.
	Root string `toml:"root" yaml:"root"`
}

type Scroll struct {
	Duration         Duration `toml:"duration" yaml:"duration"`
	ScrollToDuration Duration `toml:"scroll_to_duration" yaml:"scroll_to_duration"`
	WheelMultiplier  float64  `toml:"wheel_multiplier" yaml:"wheel_multiplier"`
}

type Scene struct {
	StarCount int `toml:"star_count" yaml:"star_count"`
}

type Engine struct {
	Profiling bool `toml:"profiling" yaml:"profiling"`
	// FrameLimit caps rendering in frames per second, 0 for uncapped.
	FrameLimit float64 `toml:"frame_limit" yaml:"frame_limit"`
	// Console starts the terminal companion alongside the window.
	Console bool `toml:"console" yaml:"console"`
}

// Config is the full set of tour settings.
type Config struct {
	Window Window `toml:"window" yaml:"window"`
	Assets Assets `toml:"assets" yaml:"assets"`
	Scroll Scroll `toml:"scroll" yaml:"scroll"`
	Scene  Scene  `toml:"scene" yaml:"scene"`
	Engine Engine `toml:"engine" yaml:"engine"`
}

// Default returns the settings used when no file is present.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: Window{
			Title:         "Solar Tour",
			Width:         1280,
			Height:        720,
			CloseOnEscape: true,
		},
		Assets: Assets{Root: "assets"},
		Scroll: Scroll{
			Duration:         Duration(scroll.DefaultDuration),
			ScrollToDuration: Duration(scroll.DefaultScrollToDuration),
			WheelMultiplier:  scroll.DefaultWheelMultiplier,
		},
		Scene: Scene{StarCount: choreographer.StarCount},
	}
}

// FormatOf picks the format from a file extension.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Format: the detected format
//   - error: ErrUnsupportedFormat for any other extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads path. A missing file yields the defaults. Keys absent from the file keep their
// default values.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Config: the merged settings
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[config] %s not found, using defaults", path)
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over the defaults and validates the result.
//
// Parameters:
//   - data: the encoded settings
//   - format: the encoding
//
// Returns:
//   - Config: the merged settings
//   - error: a decode or validation error
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &cfg)
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", format, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg in the given format.
//
// Parameters:
//   - cfg: the settings
//   - format: the encoding
//
// Returns:
//   - []byte: the encoded settings
//   - error: an encode error or ErrUnsupportedFormat
func Encode(cfg Config, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(cfg)
	case FormatYAML:
		return yaml.Marshal(cfg)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Scroll.Duration <= 0:
		return fmt.Errorf("%w: scroll.duration %s", ErrInvalid, c.Scroll.Duration.Std())
	case c.Scroll.ScrollToDuration <= 0:
		return fmt.Errorf("%w: scroll.scroll_to_duration %s", ErrInvalid, c.Scroll.ScrollToDuration.Std())
	case c.Scroll.WheelMultiplier <= 0:
		return fmt.Errorf("%w: scroll.wheel_multiplier %g", ErrInvalid, c.Scroll.WheelMultiplier)
	case c.Scene.StarCount < 0:
		return fmt.Errorf("%w: scene.star_count %d", ErrInvalid, c.Scene.StarCount)
	case c.Engine.FrameLimit < 0:
		return fmt.Errorf("%w: engine.frame_limit %g", ErrInvalid, c.Engine.FrameLimit)
	}
	return nil
}

// ScrollOptions returns the adapter options for these settings.
func (c Config) ScrollOptions() []scroll.AdapterBuilderOption {
	return []scroll.AdapterBuilderOption{
		scroll.WithDuration(c.Scroll.Duration.Std()),
		scroll.WithScrollToDuration(c.Scroll.ScrollToDuration.Std()),
		scroll.WithWheelMultiplier(c.Scroll.WheelMultiplier),
	}
}

// ChoreographerOptions returns the choreographer options for these settings.
func (c Config) ChoreographerOptions() []choreographer.ChoreographerBuilderOption {
	return []choreographer.ChoreographerBuilderOption{
		choreographer.WithAssetRoot(c.Assets.Root),
		choreographer.WithStarCount(c.Scene.StarCount),
	}
}

// ApplyScroll pushes the live-tunable scroll settings into ad.
func ApplyScroll(ad scroll.Adapter, s Scroll) {
	ad.SetTuning(s.Duration.Std(), s.WheelMultiplier)
}
