package graphview

import (
	"maps"
	"math"

	"github.com/tanema/gween/ease"
)

// ViewMode names a presentation mode chosen by the surrounding UI.
type ViewMode string

// ViewModeDefault is the initial view mode.
const ViewModeDefault ViewMode = "default"

// Default camera zoom range applied to wheel and keyboard zoom.
const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 5.0
)

const (
	momentumScale     = 0.1  // fraction of the last pan step carried as momentum
	momentumFriction  = 0.92 // per-frame decay
	momentumStart     = 0.1  // minimum speed (world units per frame) to coast at all
	momentumRestSpeed = 0.01 // coasting stops below this speed
)

// Scene is the single mutable source of truth for one canvas: the graph,
// selection, drag and hover state, view configuration, and the camera and
// spatial index it keeps consistent. Every mutator calls markDirty.
//
// Downstream UI may read Scene through its getters but must mutate it only
// through its methods.
type Scene struct {
	graph     *Graph
	camera    *Camera
	index     *SpatialIndex
	markDirty func()

	selectedNodes map[string]struct{}
	selectedEdges map[string]struct{}
	expanded      map[string]struct{}
	dragged       string
	hovered       string

	nodeWidth  float64
	background Background
	viewMode   ViewMode
	filters    map[string]string

	minZoom, maxZoom float64
	grabOffset       Vec2

	momentumEnabled bool
	momentum        Vec2
	coasting        bool
}

// NewScene creates a scene over graph. A nil graph is treated as empty and
// a nil markDirty as a no-op. The index is rebuilt from the graph.
func NewScene(graph *Graph, camera *Camera, index *SpatialIndex, markDirty func()) *Scene {
	if graph == nil {
		graph = NewGraph()
	}
	if markDirty == nil {
		markDirty = func() {}
	}
	s := &Scene{
		graph:           graph,
		camera:          camera,
		index:           index,
		markDirty:       markDirty,
		selectedNodes:   make(map[string]struct{}),
		selectedEdges:   make(map[string]struct{}),
		expanded:        make(map[string]struct{}),
		background:      DefaultBackground(),
		viewMode:        ViewModeDefault,
		filters:         map[string]string{},
		minZoom:         DefaultMinZoom,
		maxZoom:         DefaultMaxZoom,
		momentumEnabled: true,
	}
	s.index.Rebuild(graph.Nodes())
	return s
}

// --- Camera operations ---

// PanBy moves the camera by (dx, dy) world units.
func (s *Scene) PanBy(dx, dy float64) {
	s.camera.PanBy(dx, dy)
	s.markDirty()
}

// SetCenter centers the camera on (x, y).
func (s *Scene) SetCenter(x, y float64) {
	s.camera.SetCenter(x, y)
	s.coasting = false
	s.markDirty()
}

// ZoomTo zooms around the screen anchor (sx, sy).
func (s *Scene) ZoomTo(z, sx, sy float64) {
	s.camera.ZoomTo(z, sx, sy)
	s.markDirty()
}

// ZoomBy multiplies the zoom by factor around (sx, sy), clamped to the
// scene's zoom limits.
func (s *Scene) ZoomBy(factor, sx, sy float64) {
	z := math.Max(s.minZoom, math.Min(s.maxZoom, s.camera.Zoom()*factor))
	s.ZoomTo(z, sx, sy)
}

// SetZoomLimits sets the range ZoomBy clamps to.
func (s *Scene) SetZoomLimits(minZoom, maxZoom float64) {
	minZoom = clampZoom(minZoom)
	if maxZoom < minZoom {
		maxZoom = minZoom
	}
	s.minZoom, s.maxZoom = minZoom, maxZoom
}

// ZoomLimits returns the range ZoomBy clamps to.
func (s *Scene) ZoomLimits() (minZoom, maxZoom float64) { return s.minZoom, s.maxZoom }

// SetViewportSize resizes the camera viewport. Canvas.Resize also resizes
// the renderer in the same step.
func (s *Scene) SetViewportSize(w, h float64) {
	s.camera.SetViewportSize(w, h)
	s.markDirty()
}

// FitToView fits all nodes into the viewport with padding world units
// around them. No-op for an empty graph.
func (s *Scene) FitToView(padding float64) {
	box, ok := s.index.Bounds()
	if !ok {
		return
	}
	s.coasting = false
	s.camera.FitRect(box, padding)
	s.markDirty()
}

// ScrollTo animates the camera to (x, y) over duration seconds. Advance it
// with Update.
func (s *Scene) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	s.coasting = false
	s.camera.ScrollTo(x, y, duration, easeFn)
}

// SetMomentum enables or disables pan coasting after a pan ends.
func (s *Scene) SetMomentum(enabled bool) {
	s.momentumEnabled = enabled
	if !enabled {
		s.coasting = false
	}
}

// Update advances camera animation and pan momentum by dt seconds.
func (s *Scene) Update(dt float32) {
	changed := s.camera.Update(dt)
	if s.coasting {
		s.camera.PanBy(s.momentum.X, s.momentum.Y)
		s.momentum.X *= momentumFriction
		s.momentum.Y *= momentumFriction
		if math.Abs(s.momentum.X) <= momentumRestSpeed && math.Abs(s.momentum.Y) <= momentumRestSpeed {
			s.coasting = false
		}
		changed = true
	}
	if changed {
		s.markDirty()
	}
}

// Coasting reports whether pan momentum is still moving the camera.
func (s *Scene) Coasting() bool { return s.coasting }

// --- Node operations ---

// MoveNode sets a node's world position. Reports false for unknown ids.
func (s *Scene) MoveNode(id string, pos Vec2) bool {
	n, ok := s.graph.Node(id)
	if !ok {
		return false
	}
	n.Position = pos
	s.index.Rebuild(s.graph.Nodes())
	s.markDirty()
	return true
}

// SetDraggedNode marks id as the node being dragged.
func (s *Scene) SetDraggedNode(id string) {
	s.dragged = id
	s.markDirty()
}

// ClearDraggedNode clears the dragged node.
func (s *Scene) ClearDraggedNode() {
	s.dragged = ""
	s.markDirty()
}

// SetHoveredNode marks id as the node under the pointer.
func (s *Scene) SetHoveredNode(id string) {
	s.hovered = id
	s.markDirty()
}

// ClearHoveredNode clears the hovered node.
func (s *Scene) ClearHoveredNode() {
	s.hovered = ""
	s.markDirty()
}

// SelectNode adds (selected=true) or removes a node from the selection.
// Without multi the previous node selection is replaced first. Unknown ids
// are ignored after the replacement.
func (s *Scene) SelectNode(id string, selected, multi bool) {
	if !multi {
		clear(s.selectedNodes)
	}
	if selected {
		if s.graph.HasNode(id) {
			s.selectedNodes[id] = struct{}{}
		}
	} else {
		delete(s.selectedNodes, id)
	}
	s.markDirty()
}

// SelectEdge is SelectNode for edges.
func (s *Scene) SelectEdge(id string, selected, multi bool) {
	if !multi {
		clear(s.selectedEdges)
	}
	if selected {
		if s.graph.HasEdge(id) {
			s.selectedEdges[id] = struct{}{}
		}
	} else {
		delete(s.selectedEdges, id)
	}
	s.markDirty()
}

// ExpandNode sets whether a node is expanded.
func (s *Scene) ExpandNode(id string, expanded bool) {
	if expanded {
		if s.graph.HasNode(id) {
			s.expanded[id] = struct{}{}
		}
	} else {
		delete(s.expanded, id)
	}
	s.markDirty()
}

// ToggleNodeExpansion flips a node's expanded flag.
func (s *Scene) ToggleNodeExpansion(id string) {
	_, ok := s.expanded[id]
	s.ExpandNode(id, !ok)
}

// ClearSelection deselects every node and edge.
func (s *Scene) ClearSelection() {
	clear(s.selectedNodes)
	clear(s.selectedEdges)
	s.markDirty()
}

// ClearExpansion collapses every node.
func (s *Scene) ClearExpansion() {
	clear(s.expanded)
	s.markDirty()
}

// ClearAllInteractionState clears selection, expansion, drag and hover.
func (s *Scene) ClearAllInteractionState() {
	s.resetInteraction()
	s.markDirty()
}

func (s *Scene) resetInteraction() {
	clear(s.selectedNodes)
	clear(s.selectedEdges)
	clear(s.expanded)
	s.dragged = ""
	s.hovered = ""
	s.coasting = false
}

// --- Graph operations ---

// UpdateGraph replaces the graph, rebuilds the spatial index, and clears
// all selection, expansion, drag and hover state so nothing refers to ids
// of the old graph. A nil graph is treated as empty.
func (s *Scene) UpdateGraph(g *Graph) {
	if g == nil {
		g = NewGraph()
	}
	s.graph = g
	s.index.Rebuild(g.Nodes())
	s.resetInteraction()
	Logger().Info("graph replaced", "nodes", g.NodeCount(), "edges", g.EdgeCount())
	s.markDirty()
}

// --- Configuration ---

// SetBackground sets the background configuration.
func (s *Scene) SetBackground(bg Background) {
	s.background = bg
	s.markDirty()
}

// SetNodeWidth overrides the world width of every node for rendering and
// hit testing. Zero restores per-node widths.
func (s *Scene) SetNodeWidth(w float64) {
	s.nodeWidth = math.Max(w, 0)
	s.index.SetWidthOverride(s.nodeWidth)
	s.markDirty()
}

// SetViewMode sets the view mode.
func (s *Scene) SetViewMode(mode ViewMode) {
	s.viewMode = mode
	s.markDirty()
}

// SetFilters replaces the filter set. The map is copied.
func (s *Scene) SetFilters(filters map[string]string) {
	s.filters = maps.Clone(filters)
	if s.filters == nil {
		s.filters = map[string]string{}
	}
	s.markDirty()
}

// --- Getters ---

// Graph returns the current graph.
func (s *Scene) Graph() *Graph { return s.graph }

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Index returns the spatial index.
func (s *Scene) Index() *SpatialIndex { return s.index }

// SelectedNodes returns the selected node ids in graph order.
func (s *Scene) SelectedNodes() []string {
	return s.nodeIDsIn(s.selectedNodes)
}

// ExpandedNodes returns the expanded node ids in graph order.
func (s *Scene) ExpandedNodes() []string {
	return s.nodeIDsIn(s.expanded)
}

func (s *Scene) nodeIDsIn(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for _, n := range s.index.Nodes() {
		if _, ok := set[n.ID]; ok {
			out = append(out, n.ID)
		}
	}
	return out
}

// SelectedEdges returns the selected edge ids in graph order.
func (s *Scene) SelectedEdges() []string {
	if len(s.selectedEdges) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.selectedEdges))
	s.graph.EachEdge(func(e *GraphEdge) {
		if _, ok := s.selectedEdges[e.ID]; ok {
			out = append(out, e.ID)
		}
	})
	return out
}

// IsNodeSelected reports whether id is selected.
func (s *Scene) IsNodeSelected(id string) bool {
	_, ok := s.selectedNodes[id]
	return ok
}

// IsEdgeSelected reports whether id is selected.
func (s *Scene) IsEdgeSelected(id string) bool {
	_, ok := s.selectedEdges[id]
	return ok
}

// IsExpanded reports whether id is expanded.
func (s *Scene) IsExpanded(id string) bool {
	_, ok := s.expanded[id]
	return ok
}

// DraggedNode returns the id of the node being dragged, or "".
func (s *Scene) DraggedNode() string { return s.dragged }

// HoveredNode returns the id of the node under the pointer, or "".
func (s *Scene) HoveredNode() string { return s.hovered }

// Background returns the background configuration.
func (s *Scene) Background() Background { return s.background }

// NodeWidth returns the node width override, zero when unset.
func (s *Scene) NodeWidth() float64 { return s.nodeWidth }

// ViewMode returns the view mode.
func (s *Scene) ViewMode() ViewMode { return s.viewMode }

// Filters returns a copy of the filter set.
func (s *Scene) Filters() map[string]string { return maps.Clone(s.filters) }

// --- Interaction ---

// HandleInteraction applies a semantic interaction event. It is the
// scene's subscription on the canvas event bus.
func (s *Scene) HandleInteraction(ev InteractionEvent) {
	switch ev.Type {
	case EventHover:
		if ev.NodeID == s.hovered {
			return
		}
		if ev.NodeID == "" {
			s.ClearHoveredNode()
		} else {
			s.SetHoveredNode(ev.NodeID)
		}

	case EventClick:
		if ev.NodeID == "" {
			s.ClearSelection()
			return
		}
		additive := ev.Modifiers.Additive()
		if additive && s.IsNodeSelected(ev.NodeID) {
			s.SelectNode(ev.NodeID, false, true)
			return
		}
		s.SelectNode(ev.NodeID, true, additive)

	case EventDragStart:
		s.coasting = false
		if n, ok := s.graph.Node(ev.NodeID); ok {
			s.grabOffset = n.Position.Sub(Vec2{ev.StartX, ev.StartY})
		}
		s.SetDraggedNode(ev.NodeID)

	case EventDrag:
		s.MoveNode(ev.NodeID, Vec2{ev.WorldX, ev.WorldY}.Add(s.grabOffset))

	case EventDragEnd:
		s.grabOffset = Vec2{}
		s.ClearDraggedNode()

	case EventPanStart:
		s.coasting = false
		s.momentum = Vec2{}

	case EventPan:
		z := s.camera.Zoom()
		// Screen Y grows downward while world Y grows upward.
		dx, dy := -ev.DeltaX/z, ev.DeltaY/z
		s.PanBy(dx, dy)
		s.momentum = Vec2{dx * momentumScale, dy * momentumScale}

	case EventPanEnd:
		if s.momentumEnabled && (math.Abs(s.momentum.X) > momentumStart || math.Abs(s.momentum.Y) > momentumStart) {
			s.coasting = true
		}

	case EventZoom:
		s.coasting = false
		s.ZoomBy(ev.Factor, ev.ScreenX, ev.ScreenY)
	}
}
