package config

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Window struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// Config is read from a TOML file; anything the file leaves out keeps its
// default.
type Config struct {
	AppName       string   `toml:"app_name"`
	GalleryDir    string   `toml:"gallery_dir"`
	JPEGQuality   int      `toml:"jpeg_quality"`
	ThumbnailSize int      `toml:"thumbnail_size"`
	Palette       []string `toml:"palette"`
	LogLevel      string   `toml:"log_level"`
	Window        Window   `toml:"window"`
}

func Default() Config {
	return Config{
		AppName:       "DrawingFun",
		GalleryDir:    "Pictures",
		JPEGQuality:   90,
		ThumbnailSize: 96,
		// brown, red, orange, yellow, green, dark green,
		// blue, magenta, pink, white, grey, black
		Palette: []string{
			"#8B4513", "#FF0000", "#FFA500", "#FFFF00",
			"#00FF00", "#006400", "#0000FF", "#FF00FF",
			"#FFC0CB", "#FFFFFF", "#808080", "#000000",
		},
		LogLevel: "info",
		Window:   Window{Width: 1024, Height: 768},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.AppName) == "" {
		errs = append(errs, errors.New("app_name is empty"))
	}
	if c.GalleryDir == "" {
		errs = append(errs, errors.New("gallery_dir is empty"))
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg_quality %d is outside 1-100", c.JPEGQuality))
	}
	if c.ThumbnailSize <= 0 {
		errs = append(errs, fmt.Errorf("thumbnail_size %d must be positive", c.ThumbnailSize))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window %gx%g must be positive", c.Window.Width, c.Window.Height))
	}
	if _, err := c.Colors(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Colors parses the palette. Entries are #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
func (c Config) Colors() ([]color.Color, error) {
	out := make([]color.Color, 0, len(c.Palette))
	for _, s := range c.Palette {
		col, err := parseHex(s)
		if err != nil {
			return nil, fmt.Errorf("palette color %q: %w", s, err)
		}
		out = append(out, col)
	}
	return out, nil
}

func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

func parseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3, 4:
		var sb strings.Builder
		for _, r := range h {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		h = sb.String()
	case 6, 8:
	default:
		return color.NRGBA{}, errors.New("not a hex color")
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.New("not a hex color")
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
