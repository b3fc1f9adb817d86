package graphview

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Fallback colors used when a graph carries a missing or malformed hex value.
var (
	DefaultNodeColor = Color{0.2, 0.2, 0.2, 1}       // #333
	DefaultEdgeColor = Color{0.533, 0.533, 0.533, 1} // #888
)

// ParseColor parses a "#rgb" or "#rrggbb" hex string. The leading '#' is
// optional.
func ParseColor(hex string) (Color, error) {
	h := strings.TrimSpace(hex)
	if h == "" {
		return Color{}, fmt.Errorf("parse color: empty string")
	}
	if h[0] != '#' {
		h = "#" + h
	}
	c, err := colorful.Hex(h)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// colorCache memoizes hex parsing for renderers that resolve the same
// handful of colors every frame.
type colorCache map[string]Color

func (cc colorCache) resolve(hex string, fallback Color) Color {
	if hex == "" {
		return fallback
	}
	if c, ok := cc[hex]; ok {
		return c
	}
	c, err := ParseColor(hex)
	if err != nil {
		c = fallback
	}
	cc[hex] = c
	return c
}
