// Package config loads the user's artex settings.
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lucasb-eyer/go-colorful"
)

const appName = "artex"

// Config is the complete set of user settings. Load starts from Default and
// applies the config files on top.
type Config struct {
	Font      FontConfig      `koanf:"font"`
	Colors    ColorConfig     `koanf:"colors"`
	Assets    AssetConfig     `koanf:"assets"`
	Animation AnimationConfig `koanf:"animation"`
	Listing   ListingConfig   `koanf:"listing"`
}

// FontConfig selects the face labels are drawn with.
type FontConfig struct {
	Path    string  `koanf:"path"`                        // empty: embedded Go Mono
	Size    float64 `koanf:"size" validate:"gt=0,lte=512"` // points at 72 DPI
	Outline int     `koanf:"outline" validate:"gte=0,lte=16"`
}

// ColorConfig holds hex colours ("#rgb" or "#rrggbb").
type ColorConfig struct {
	Text       string `koanf:"text" validate:"rgbhex"`
	Outline    string `koanf:"outline" validate:"rgbhex"`
	Background string `koanf:"background" validate:"rgbhex"`
}

// AssetConfig points at optional image files.
type AssetConfig struct {
	Prop       string `koanf:"prop"`
	Background string `koanf:"background"`
	PropMax    int    `koanf:"prop_max" validate:"gte=16,lte=4096"`
}

// AnimationConfig controls the slide timing and frame rate.
type AnimationConfig struct {
	DurationMS int `koanf:"duration_ms" validate:"gte=0,lte=60000"`
	FPS        int `koanf:"fps" validate:"gte=1,lte=240"`
}

// ListingConfig controls how entries are labelled.
type ListingConfig struct {
	MaxLabel int `koanf:"max_label" validate:"gte=0"` // cells, 0 disables truncation
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Font: FontConfig{Size: 64, Outline: 1},
		Colors: ColorConfig{
			Text:       "#ffffff",
			Outline:    "#000000",
			Background: "#000000",
		},
		Assets:    AssetConfig{PropMax: 512},
		Animation: AnimationConfig{DurationMS: 1000, FPS: 60},
		Listing:   ListingConfig{MaxLabel: 32},
	}
}

// Load reads the config files in order of priority (last wins) on top of
// the defaults. extra is an explicit path from the command line; unlike the
// well-known locations it must exist.
func Load(extra string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if extra != "" {
		path := expandPath(extra)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Font.Path = expandPath(cfg.Font.Path)
	cfg.Assets.Prop = expandPath(cfg.Assets.Prop)
	cfg.Assets.Background = expandPath(cfg.Assets.Background)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and colour syntax.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("rgbhex", validateRGBHex); err != nil {
		return err
	}
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// validateRGBHex accepts exactly what parseColor can decode, so a validated
// config never falls back to a default colour.
func validateRGBHex(fl validator.FieldLevel) bool {
	_, err := hexColor(fl.Field().String())
	return err == nil
}

func hexColor(s string) (colorful.Color, error) {
	if len(s) != 4 && len(s) != 7 {
		return colorful.Color{}, fmt.Errorf("colour %q: want #rgb or #rrggbb", s)
	}
	return colorful.Hex(s)
}

// Duration returns the slide duration.
func (c *Config) Duration() time.Duration {
	return time.Duration(c.Animation.DurationMS) * time.Millisecond
}

// FrameInterval returns the delay between two frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(max(c.Animation.FPS, 1))
}

// The colour accessors fall back to the defaults only for configs that were
// never validated.

// TextColor returns the label fill colour.
func (c *Config) TextColor() color.Color {
	return parseColor(c.Colors.Text, color.White)
}

// OutlineColor returns the label outline colour.
func (c *Config) OutlineColor() color.Color {
	return parseColor(c.Colors.Outline, color.Black)
}

// BackgroundColor returns the colour behind everything.
func (c *Config) BackgroundColor() color.Color {
	return parseColor(c.Colors.Background, color.Black)
}

func parseColor(hex string, fallback color.Color) color.Color {
	col, err := hexColor(hex)
	if err != nil {
		return fallback
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/artex/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, appName, "config.toml"))

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
