package graphview

import "math"

// Style holds the visual constants shared by all renderer backends so they
// draw interaction state the same way.
type Style struct {
	SelectionColor Color   // outline around selected nodes and selected edges
	OutlineWidth   float64 // selection outline, screen pixels
	HoverLighten   float64 // 0..1 blend toward white for hovered nodes
	DraggedAlpha   float64 // alpha applied to a dragged node
	ExpandedColor  Color   // marker bar on expanded nodes
	EdgeWidth      float64 // screen pixels per unit of edge weight
	MinEdgeWidth   float64
	MaxEdgeWidth   float64
}

// DefaultStyle returns the built-in style.
func DefaultStyle() Style {
	return Style{
		SelectionColor: Color{0.25, 0.55, 1, 1},
		OutlineWidth:   3,
		HoverLighten:   0.2,
		DraggedAlpha:   0.85,
		ExpandedColor:  Color{1, 0.75, 0.2, 1},
		EdgeWidth:      1.5,
		MinEdgeWidth:   1,
		MaxEdgeWidth:   8,
	}
}

// NodeFill returns the fill color for a node instance after applying its
// hover and drag state.
func (st Style) NodeFill(n NodeInstance) Color {
	c := n.Color
	if n.State&NodeHovered != 0 && st.HoverLighten > 0 {
		t := st.HoverLighten
		c.R += (1 - c.R) * t
		c.G += (1 - c.G) * t
		c.B += (1 - c.B) * t
	}
	if n.State&NodeDragged != 0 {
		c.A *= st.DraggedAlpha
	}
	return c
}

// EdgeStroke returns the color and screen width for an edge instance.
func (st Style) EdgeStroke(e EdgeInstance) (Color, float64) {
	w := math.Max(st.MinEdgeWidth, math.Min(st.MaxEdgeWidth, e.Weight*st.EdgeWidth))
	if e.Selected {
		return st.SelectionColor, w + 1
	}
	return e.Color, w
}

// ExpandedMarker returns the screen rect of the marker bar drawn along the
// bottom of an expanded node's screen rect.
func (st Style) ExpandedMarker(screen Rect) Rect {
	h := math.Min(4, screen.Height/4)
	return Rect{X: screen.X, Y: screen.Y + screen.Height - h, Width: screen.Width, Height: h}
}
