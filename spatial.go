package graphview

// SpatialIndex answers point and visibility queries over node AABBs.
//
// Nodes are held in graph insertion order. Point queries scan backward so
// the node painted last wins overlapping hits, matching renderer paint
// order. The same bounds function serves picking, culling and rendering.
type SpatialIndex struct {
	nodes         []*GraphNode
	widthOverride float64
}

// NewSpatialIndex creates an empty index.
func NewSpatialIndex() *SpatialIndex {
	return &SpatialIndex{}
}

// Rebuild replaces the indexed node set. The slice is copied.
func (s *SpatialIndex) Rebuild(nodes []*GraphNode) {
	s.nodes = append(s.nodes[:0], nodes...)
	clear(s.nodes[len(nodes):cap(s.nodes)])
}

// Len returns the number of indexed nodes.
func (s *SpatialIndex) Len() int { return len(s.nodes) }

// Nodes returns the indexed nodes in ascending paint order. The returned
// slice must not be modified.
func (s *SpatialIndex) Nodes() []*GraphNode { return s.nodes }

// SetWidthOverride forces every node to the given world width. Zero or
// negative restores each node's own width.
func (s *SpatialIndex) SetWidthOverride(w float64) {
	if w < 0 {
		w = 0
	}
	s.widthOverride = w
}

// NodeBounds returns the world-space AABB of n as the index sees it.
func (s *SpatialIndex) NodeBounds(n *GraphNode) Rect {
	w, h := n.Size()
	if s.widthOverride > 0 {
		w = s.widthOverride
	}
	return Rect{X: n.Position.X - w/2, Y: n.Position.Y - h/2, Width: w, Height: h}
}

// QueryPoint returns the topmost node containing p, or nil.
func (s *SpatialIndex) QueryPoint(p Vec2) *GraphNode {
	return s.Query(p.X, p.Y, 0)
}

// Query returns the topmost node whose bounds, grown by tolerance world
// units on every side, contain (x, y). Edges count as inside.
func (s *SpatialIndex) Query(x, y, tolerance float64) *GraphNode {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		n := s.nodes[i]
		b := s.NodeBounds(n)
		if tolerance > 0 {
			b = b.Expand(tolerance)
		}
		if b.Contains(x, y) {
			return n
		}
	}
	return nil
}

// VisibleNodes appends to buf the nodes whose bounds intersect the camera's
// visible world rect grown by margin world units, in ascending paint order.
func (s *SpatialIndex) VisibleNodes(cam *Camera, margin float64, buf []*GraphNode) []*GraphNode {
	view := cam.VisibleBounds()
	if margin > 0 {
		view = view.Expand(margin)
	}
	for _, n := range s.nodes {
		if s.NodeBounds(n).Intersects(view) {
			buf = append(buf, n)
		}
	}
	return buf
}

// Bounds returns the union of all indexed node bounds and false when empty.
func (s *SpatialIndex) Bounds() (Rect, bool) {
	if len(s.nodes) == 0 {
		return Rect{}, false
	}
	box := s.NodeBounds(s.nodes[0])
	for _, n := range s.nodes[1:] {
		box = box.Union(s.NodeBounds(n))
	}
	return box, true
}
