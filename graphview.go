package graphview

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Premultiplied returns the color with RGB scaled by alpha, as float32
// components ready for vertex submission.
func (c Color) Premultiplied() (r, g, b, a float32) {
	return float32(c.R * c.A), float32(c.G * c.A), float32(c.B * c.A), float32(c.A)
}

// NRGBA converts the color to an 8-bit straight-alpha value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Rect is an axis-aligned rectangle. (X, Y) is the minimum corner in
// whatever space the rectangle lives in; Width and Height extend along the
// positive axes.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Expand grows the rectangle by m on every side.
func (r Rect) Expand(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, Width: r.Width + 2*m, Height: r.Height + 2*m}
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// EventType identifies a kind of semantic interaction event.
type EventType uint8

const (
	EventHover     EventType = iota // pointer moved while idle; NodeID is the node under it or ""
	EventClick                      // press and release within the drag threshold
	EventDragStart                  // movement exceeded the threshold on a node
	EventDrag                       // pointer moved while dragging a node
	EventDragEnd                    // pointer released or left after dragging
	EventPanStart                   // movement exceeded the threshold on empty canvas
	EventPan                        // pointer moved while panning
	EventPanEnd                     // pointer released or left after panning
	EventZoom                       // wheel scrolled over the canvas
)

var eventTypeNames = [...]string{
	EventHover:     "hover",
	EventClick:     "click",
	EventDragStart: "dragStart",
	EventDrag:      "drag",
	EventDragEnd:   "dragEnd",
	EventPanStart:  "panStart",
	EventPan:       "pan",
	EventPanEnd:    "panEnd",
	EventZoom:      "zoom",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Additive reports whether the modifiers request additive selection.
func (m KeyModifiers) Additive() bool {
	return m&(ModShift|ModCtrl|ModMeta) != 0
}

// PointerAction is the kind of a normalized raw pointer event.
type PointerAction uint8

const (
	PointerDown  PointerAction = iota // a button was pressed
	PointerMove                       // the cursor moved
	PointerUp                         // the pressed button was released
	PointerLeave                      // the cursor left the canvas or focus was lost
	PointerWheel                      // the wheel scrolled; WheelDelta is set
)

// PointerEvent is a platform-independent pointer event in screen pixels,
// as delivered by the host after normalization.
type PointerEvent struct {
	Action     PointerAction
	X, Y       float64
	Button     MouseButton
	Modifiers  KeyModifiers
	WheelDelta float64
}
