// Package config loads graphview CLI settings with koanf.
//
// Precedence, lowest to highest: built-in defaults, graphview.yaml (or the
// file named by --config), GRAPHVIEW_* environment variables, then flags
// that were explicitly set on the command line.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/phanxgames/graphview"
)

// EnvPrefix prefixes every environment override, e.g. GRAPHVIEW_WIDTH or
// GRAPHVIEW_BACKGROUND_DOT_SPACING.
const EnvPrefix = "GRAPHVIEW_"

// DefaultFile is looked up in the working directory when no --config flag
// is given.
var DefaultFile = "graphview.yaml"

// Config is the resolved CLI configuration.
type Config struct {
	Width         int        `koanf:"width"`
	Height        int        `koanf:"height"`
	Title         string     `koanf:"title"`
	DragThreshold float64    `koanf:"drag_threshold"`
	HitTolerance  float64    `koanf:"hit_tolerance"`
	FitPadding    float64    `koanf:"fit_padding"`
	MinZoom       float64    `koanf:"min_zoom"`
	MaxZoom       float64    `koanf:"max_zoom"`
	Momentum      bool       `koanf:"momentum"`
	Background    Background `koanf:"background"`
	Watch         bool       `koanf:"watch"`
	Debug         bool       `koanf:"debug"`
	MaxNodes      int        `koanf:"max_nodes"`
	MaxEdges      int        `koanf:"max_edges"`
	ScreenshotDir string     `koanf:"screenshot_dir"`

	// File is the config file that was read, empty if none.
	File string `koanf:"-"`
}

// Background mirrors graphview.Background with hex colors.
type Background struct {
	Style      string  `koanf:"style"`
	Color      string  `koanf:"color"`
	DotColor   string  `koanf:"dot_color"`
	DotSpacing float64 `koanf:"dot_spacing"`
	DotRadius  float64 `koanf:"dot_radius"`
}

func defaults() map[string]any {
	return map[string]any{
		"width":                  1280,
		"height":                 800,
		"title":                  "graphview",
		"drag_threshold":         graphview.DefaultDragThreshold,
		"hit_tolerance":          0.0,
		"fit_padding":            graphview.DefaultFitPadding,
		"min_zoom":               graphview.DefaultMinZoom,
		"max_zoom":               graphview.DefaultMaxZoom,
		"momentum":               true,
		"background.style":       "dots",
		"background.color":       "#f5f5f5",
		"background.dot_color":   "#cccccc",
		"background.dot_spacing": 20.0,
		"background.dot_radius":  2.5,
		"watch":                  false,
		"debug":                  false,
		"max_nodes":              graphview.DefaultMaxNodes,
		"max_edges":              graphview.DefaultMaxEdges,
		"screenshot_dir":         "screenshots",
	}
}

// Load resolves the configuration. cfgFile may be empty, in which case
// DefaultFile is used if it exists. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	path := cfgFile
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps GRAPHVIEW_BACKGROUND_DOT_COLOR to background.dot_color.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "background_"); ok {
		return "background." + rest
	}
	return key
}

// flagKey maps kebab-case flag names to config keys. Flags for background
// settings use a "bg-" prefix.
func flagKey(name string) string {
	key := strings.ReplaceAll(name, "-", "_")
	if rest, ok := strings.CutPrefix(key, "bg_"); ok {
		return "background." + rest
	}
	return key
}

// Validate checks ranges and colors.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.DragThreshold < 0 {
		errs = append(errs, fmt.Errorf("drag_threshold %v must not be negative", c.DragThreshold))
	}
	if c.MinZoom <= 0 || c.MaxZoom < c.MinZoom {
		errs = append(errs, fmt.Errorf("zoom limits [%v, %v] are invalid", c.MinZoom, c.MaxZoom))
	}
	if c.MaxNodes <= 0 || c.MaxEdges <= 0 {
		errs = append(errs, fmt.Errorf("max_nodes and max_edges must be positive"))
	}
	if _, err := c.Background.Value(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Value converts the background settings.
func (b Background) Value() (graphview.Background, error) {
	out := graphview.DefaultBackground()
	switch b.Style {
	case "", "dots":
		out.Style = graphview.BackgroundDots
	case "flat":
		out.Style = graphview.BackgroundFlat
	default:
		return out, fmt.Errorf("background.style %q: want dots or flat", b.Style)
	}
	if b.Color != "" {
		c, err := graphview.ParseColor(b.Color)
		if err != nil {
			return out, fmt.Errorf("background.color: %w", err)
		}
		out.Color = c
	}
	if b.DotColor != "" {
		c, err := graphview.ParseColor(b.DotColor)
		if err != nil {
			return out, fmt.Errorf("background.dot_color: %w", err)
		}
		out.DotColor = c
	}
	if b.DotSpacing > 0 {
		out.DotSpacing = b.DotSpacing
	}
	if b.DotRadius > 0 {
		out.DotRadius = b.DotRadius
	}
	return out, nil
}

// CanvasOptions builds canvas options from the configuration. The
// background must already have passed Validate.
func (c *Config) CanvasOptions() graphview.CanvasOptions {
	bg, _ := c.Background.Value()
	return graphview.CanvasOptions{
		Width:           c.Width,
		Height:          c.Height,
		DragThreshold:   c.DragThreshold,
		HitTolerance:    c.HitTolerance,
		FitPadding:      c.FitPadding,
		RefitOnResize:   false,
		MinZoom:         c.MinZoom,
		MaxZoom:         c.MaxZoom,
		DisableMomentum: !c.Momentum,
		MaxNodes:        c.MaxNodes,
		MaxEdges:        c.MaxEdges,
		Background:      &bg,
		ScreenshotDir:   c.ScreenshotDir,
		Debug:           c.Debug,
	}
}

// RegisterFlags adds the flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := defaults()
	fs.Int("width", d["width"].(int), "window width in pixels")
	fs.Int("height", d["height"].(int), "window height in pixels")
	fs.String("title", d["title"].(string), "window title")
	fs.Float64("drag-threshold", graphview.DefaultDragThreshold, "pointer travel in pixels before a drag starts")
	fs.Float64("hit-tolerance", 0, "extra pixels around nodes for picking")
	fs.Float64("fit-padding", graphview.DefaultFitPadding, "world padding kept around the graph when fitting")
	fs.Float64("min-zoom", graphview.DefaultMinZoom, "minimum zoom")
	fs.Float64("max-zoom", graphview.DefaultMaxZoom, "maximum zoom")
	fs.Bool("momentum", true, "keep panning after release")
	fs.String("bg-style", "dots", "background style: dots or flat")
	fs.String("bg-color", d["background.color"].(string), "background color")
	fs.String("bg-dot-color", d["background.dot_color"].(string), "background dot color")
	fs.Bool("watch", false, "reload the graph file when it changes")
	fs.Bool("debug", false, "log per-frame stats")
	fs.Int("max-nodes", graphview.DefaultMaxNodes, "node instance capacity")
	fs.Int("max-edges", graphview.DefaultMaxEdges, "edge instance capacity")
	fs.String("screenshot-dir", "screenshots", "directory for screenshots")
}
