package graphview

// BackgroundStyle selects how the background pass fills the viewport.
type BackgroundStyle uint8

const (
	BackgroundFlat BackgroundStyle = iota // solid color
	BackgroundDots                        // solid color with a dotted grid
)

// Background configures the background pass. It is drawn in screen space
// and does not follow the camera.
type Background struct {
	Style      BackgroundStyle
	Color      Color
	DotColor   Color
	DotSpacing float64 // pixels between dot centers
	DotRadius  float64 // pixels
}

// DefaultBackground returns a light dotted grid.
func DefaultBackground() Background {
	return Background{
		Style:      BackgroundDots,
		Color:      Color{0.96, 0.96, 0.96, 1},
		DotColor:   Color{0.8, 0.8, 0.8, 1},
		DotSpacing: 20,
		DotRadius:  2.5,
	}
}

// BackgroundFromHex returns the default background with its base color
// replaced by hex. Malformed colors keep the default.
func BackgroundFromHex(hex string) Background {
	bg := DefaultBackground()
	if c, err := ParseColor(hex); err == nil {
		bg.Color = c
	}
	return bg
}

// EachDot calls fn for every dot center that falls inside a w by h
// viewport, in screen pixels. Flat backgrounds have no dots.
func (b Background) EachDot(w, h float64, fn func(x, y float64)) {
	if b.Style != BackgroundDots || b.DotSpacing <= 0 {
		return
	}
	for y := b.DotSpacing / 2; y < h; y += b.DotSpacing {
		for x := b.DotSpacing / 2; x < w; x += b.DotSpacing {
			fn(x, y)
		}
	}
}
