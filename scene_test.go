package graphview

import (
	"slices"
	"testing"
)

// newTestScene returns a scene over nodes n0 at (0,0) and n1 at (1000,0),
// an edge e0 between them, and a counter of markDirty calls.
func newTestScene(t *testing.T) (*Scene, *int) {
	t.Helper()
	g := testGraph(t, Vec2{0, 0}, Vec2{1000, 0})
	mustAddEdge(t, g, "e0", "n0", "n1")
	dirty := 0
	s := NewScene(g, NewCamera(800, 600), NewSpatialIndex(), func() { dirty++ })
	return s, &dirty
}

func TestSceneDefaults(t *testing.T) {
	s, _ := newTestScene(t)
	if s.ViewMode() != ViewModeDefault {
		t.Errorf("ViewMode = %q", s.ViewMode())
	}
	if s.NodeWidth() != 0 {
		t.Errorf("NodeWidth = %v, want 0", s.NodeWidth())
	}
	if s.Background() != DefaultBackground() {
		t.Errorf("Background = %+v", s.Background())
	}
	if lo, hi := s.ZoomLimits(); lo != DefaultMinZoom || hi != DefaultMaxZoom {
		t.Errorf("ZoomLimits = %v, %v", lo, hi)
	}
	if s.Index().Len() != 2 {
		t.Errorf("index not built: %d nodes", s.Index().Len())
	}
}

func TestSceneNilGraph(t *testing.T) {
	s := NewScene(nil, NewCamera(800, 600), NewSpatialIndex(), nil)
	if s.Graph() == nil || s.Graph().NodeCount() != 0 {
		t.Fatal("nil graph should become an empty graph")
	}
	s.SelectNode("x", true, false) // nil markDirty must not panic
	s.FitToView(100)
}

func TestSceneSelectNode(t *testing.T) {
	s, _ := newTestScene(t)

	s.SelectNode("n0", true, false)
	s.SelectNode("n1", true, false)
	if got := s.SelectedNodes(); !slices.Equal(got, []string{"n1"}) {
		t.Errorf("replace: %v, want [n1]", got)
	}

	s.SelectNode("n0", true, true)
	if got := s.SelectedNodes(); !slices.Equal(got, []string{"n0", "n1"}) {
		t.Errorf("multi: %v, want [n0 n1]", got)
	}

	s.SelectNode("n1", false, true)
	if got := s.SelectedNodes(); !slices.Equal(got, []string{"n0"}) {
		t.Errorf("deselect: %v, want [n0]", got)
	}

	s.SelectNode("ghost", true, true)
	if s.IsNodeSelected("ghost") {
		t.Error("unknown id selected")
	}
}

func TestSceneSelectEdge(t *testing.T) {
	s, _ := newTestScene(t)
	s.SelectEdge("e0", true, false)
	if !s.IsEdgeSelected("e0") || !slices.Equal(s.SelectedEdges(), []string{"e0"}) {
		t.Error("edge not selected")
	}
	s.ClearSelection()
	if len(s.SelectedEdges()) != 0 {
		t.Error("ClearSelection kept edges")
	}
}

func TestSceneExpansion(t *testing.T) {
	s, _ := newTestScene(t)
	s.ToggleNodeExpansion("n1")
	if !s.IsExpanded("n1") {
		t.Error("toggle did not expand")
	}
	s.ToggleNodeExpansion("n1")
	if s.IsExpanded("n1") {
		t.Error("second toggle did not collapse")
	}
	s.ExpandNode("n0", true)
	s.ExpandNode("ghost", true)
	if got := s.ExpandedNodes(); !slices.Equal(got, []string{"n0"}) {
		t.Errorf("ExpandedNodes = %v", got)
	}
	s.ClearExpansion()
	if len(s.ExpandedNodes()) != 0 {
		t.Error("ClearExpansion kept nodes")
	}
}

func TestSceneMutatorsMarkDirty(t *testing.T) {
	s, dirty := newTestScene(t)
	// UpdateGraph runs last: it empties the graph.
	mutators := []struct {
		name string
		fn   func()
	}{
		{"PanBy", func() { s.PanBy(1, 1) }},
		{"SetCenter", func() { s.SetCenter(0, 0) }},
		{"ZoomTo", func() { s.ZoomTo(2, 0, 0) }},
		{"ZoomBy", func() { s.ZoomBy(1.1, 0, 0) }},
		{"SetViewportSize", func() { s.SetViewportSize(640, 480) }},
		{"FitToView", func() { s.FitToView(100) }},
		{"MoveNode", func() { s.MoveNode("n0", Vec2{5, 5}) }},
		{"SelectNode", func() { s.SelectNode("n0", true, false) }},
		{"SelectEdge", func() { s.SelectEdge("e0", true, false) }},
		{"ExpandNode", func() { s.ExpandNode("n0", true) }},
		{"SetDraggedNode", func() { s.SetDraggedNode("n0") }},
		{"SetHoveredNode", func() { s.SetHoveredNode("n0") }},
		{"ClearSelection", func() { s.ClearSelection() }},
		{"SetBackground", func() { s.SetBackground(DefaultBackground()) }},
		{"SetNodeWidth", func() { s.SetNodeWidth(200) }},
		{"SetViewMode", func() { s.SetViewMode("compact") }},
		{"SetFilters", func() { s.SetFilters(map[string]string{"a": "b"}) }},
		{"ClearAll", func() { s.ClearAllInteractionState() }},
		{"UpdateGraph", func() { s.UpdateGraph(NewGraph()) }},
	}
	for _, m := range mutators {
		before := *dirty
		m.fn()
		if *dirty == before {
			t.Errorf("%s did not mark dirty", m.name)
		}
	}
}

func TestSceneUpdateGraphClearsState(t *testing.T) {
	s, _ := newTestScene(t)
	s.SelectNode("n0", true, false)
	s.SelectEdge("e0", true, false)
	s.ExpandNode("n1", true)
	s.SetDraggedNode("n0")
	s.SetHoveredNode("n1")

	g := testGraph(t, Vec2{0, 0}) // reuses id n0
	s.UpdateGraph(g)

	if len(s.SelectedNodes()) != 0 || len(s.SelectedEdges()) != 0 || len(s.ExpandedNodes()) != 0 {
		t.Error("selection or expansion survived UpdateGraph")
	}
	if s.DraggedNode() != "" || s.HoveredNode() != "" {
		t.Error("drag or hover survived UpdateGraph")
	}
	if s.Graph() != g || s.Index().Len() != 1 {
		t.Error("graph or index not replaced")
	}
}

func TestSceneMoveNodeUpdatesIndex(t *testing.T) {
	s, _ := newTestScene(t)
	if !s.MoveNode("n0", Vec2{5000, 5000}) {
		t.Fatal("MoveNode returned false")
	}
	if n := s.Index().QueryPoint(Vec2{5000, 5000}); n == nil || n.ID != "n0" {
		t.Error("index not rebuilt after MoveNode")
	}
	if s.MoveNode("ghost", Vec2{}) {
		t.Error("MoveNode on unknown id returned true")
	}
}

func TestSceneNodeWidthAffectsPicking(t *testing.T) {
	s, _ := newTestScene(t)
	s.SetNodeWidth(600)
	if n := s.Index().QueryPoint(Vec2{280, 0}); n == nil || n.ID != "n0" {
		t.Error("node width override not applied to index")
	}
}

func TestSceneFilters(t *testing.T) {
	s, _ := newTestScene(t)
	in := map[string]string{"label": "Person"}
	s.SetFilters(in)
	in["label"] = "changed"
	if s.Filters()["label"] != "Person" {
		t.Error("SetFilters did not copy")
	}
	out := s.Filters()
	out["label"] = "x"
	if s.Filters()["label"] != "Person" {
		t.Error("Filters did not copy")
	}
	s.SetFilters(nil)
	if s.Filters() == nil {
		t.Error("nil filters should become empty")
	}
}

func TestSceneZoomByClamps(t *testing.T) {
	s, _ := newTestScene(t)
	for range 100 {
		s.ZoomBy(2, 400, 300)
	}
	if s.Camera().Zoom() != DefaultMaxZoom {
		t.Errorf("zoom = %v, want %v", s.Camera().Zoom(), DefaultMaxZoom)
	}
	for range 100 {
		s.ZoomBy(0.5, 400, 300)
	}
	if s.Camera().Zoom() != DefaultMinZoom {
		t.Errorf("zoom = %v, want %v", s.Camera().Zoom(), DefaultMinZoom)
	}
	s.SetZoomLimits(2, 1)
	if lo, hi := s.ZoomLimits(); lo != 2 || hi != 2 {
		t.Errorf("inverted limits = %v, %v", lo, hi)
	}
}

func TestSceneHandleClick(t *testing.T) {
	s, _ := newTestScene(t)
	s.HandleInteraction(InteractionEvent{Type: EventClick, NodeID: "n0"})
	s.HandleInteraction(InteractionEvent{Type: EventClick, NodeID: "n1", Modifiers: ModCtrl})
	if got := s.SelectedNodes(); !slices.Equal(got, []string{"n0", "n1"}) {
		t.Errorf("additive click: %v", got)
	}
	s.HandleInteraction(InteractionEvent{Type: EventClick, NodeID: "n0", Modifiers: ModMeta})
	if got := s.SelectedNodes(); !slices.Equal(got, []string{"n1"}) {
		t.Errorf("additive click on selected should deselect: %v", got)
	}
	s.HandleInteraction(InteractionEvent{Type: EventClick, NodeID: "n0"})
	if got := s.SelectedNodes(); !slices.Equal(got, []string{"n0"}) {
		t.Errorf("plain click should replace: %v", got)
	}
	s.HandleInteraction(InteractionEvent{Type: EventClick})
	if len(s.SelectedNodes()) != 0 {
		t.Error("click on empty canvas should clear selection")
	}
}

func TestSceneHandleHoverDedup(t *testing.T) {
	s, dirty := newTestScene(t)
	s.HandleInteraction(InteractionEvent{Type: EventHover, NodeID: "n0"})
	before := *dirty
	s.HandleInteraction(InteractionEvent{Type: EventHover, NodeID: "n0"})
	if *dirty != before {
		t.Error("repeated hover marked dirty")
	}
	s.HandleInteraction(InteractionEvent{Type: EventHover})
	if s.HoveredNode() != "" {
		t.Error("hover not cleared")
	}
}

func TestSceneHandleDragKeepsGrabOffset(t *testing.T) {
	s, _ := newTestScene(t)
	// Grab n0 (center 0,0) 10 units right of its center.
	s.HandleInteraction(InteractionEvent{Type: EventDragStart, NodeID: "n0", StartX: 10, StartY: 0})
	if s.DraggedNode() != "n0" {
		t.Fatal("dragged node not set")
	}
	s.HandleInteraction(InteractionEvent{Type: EventDrag, NodeID: "n0", WorldX: 110, WorldY: 50, StartX: 10})
	n, _ := s.Graph().Node("n0")
	if n.Position != (Vec2{100, 50}) {
		t.Errorf("position = %v, want (100,50)", n.Position)
	}
	s.HandleInteraction(InteractionEvent{Type: EventDragEnd, NodeID: "n0"})
	if s.DraggedNode() != "" {
		t.Error("drag end did not clear dragged node")
	}
}

func TestSceneHandlePan(t *testing.T) {
	s, _ := newTestScene(t)
	s.SetMomentum(false)
	s.ZoomTo(2, 400, 300)
	s.HandleInteraction(InteractionEvent{Type: EventPanStart})
	s.HandleInteraction(InteractionEvent{Type: EventPan, DeltaX: 20, DeltaY: 10})
	s.HandleInteraction(InteractionEvent{Type: EventPanEnd})
	// Dragging the canvas right by 20px moves the camera left by 10 world
	// units; dragging down by 10px moves it up by 5.
	p := s.Camera().Position()
	assertNear(t, "x", p.X, -10)
	assertNear(t, "y", p.Y, 5)
	if s.Coasting() {
		t.Error("coasting with momentum disabled")
	}
}

func TestSceneMomentumDecays(t *testing.T) {
	s, _ := newTestScene(t)
	s.HandleInteraction(InteractionEvent{Type: EventPanStart})
	s.HandleInteraction(InteractionEvent{Type: EventPan, DeltaX: -50})
	s.HandleInteraction(InteractionEvent{Type: EventPanEnd})
	if !s.Coasting() {
		t.Fatal("fast pan did not start coasting")
	}
	start := s.Camera().Position().X
	prevStep := 0.0
	for i := 0; i < 1000 && s.Coasting(); i++ {
		before := s.Camera().Position().X
		s.Update(1.0 / 60)
		step := s.Camera().Position().X - before
		if i > 0 && step > prevStep+1e-12 {
			t.Fatalf("momentum grew: %v -> %v", prevStep, step)
		}
		prevStep = step
	}
	if s.Coasting() {
		t.Fatal("momentum never came to rest")
	}
	if s.Camera().Position().X <= start {
		t.Error("coasting should continue in the pan direction")
	}
}

func TestSceneSlowPanDoesNotCoast(t *testing.T) {
	s, _ := newTestScene(t)
	s.HandleInteraction(InteractionEvent{Type: EventPanStart})
	s.HandleInteraction(InteractionEvent{Type: EventPan, DeltaX: 0.5})
	s.HandleInteraction(InteractionEvent{Type: EventPanEnd})
	if s.Coasting() {
		t.Error("slow pan started coasting")
	}
}

func TestSceneHandleZoom(t *testing.T) {
	s, _ := newTestScene(t)
	wx, wy := s.Camera().ScreenToWorld(100, 100)
	s.HandleInteraction(InteractionEvent{Type: EventZoom, Factor: 0.5, ScreenX: 100, ScreenY: 100})
	assertNear(t, "zoom", s.Camera().Zoom(), 0.5)
	sx, sy := s.Camera().WorldToScreen(wx, wy)
	assertNear(t, "anchor x", sx, 100)
	assertNear(t, "anchor y", sy, 100)
}

func TestSceneFitToViewEmpty(t *testing.T) {
	s := NewScene(NewGraph(), NewCamera(800, 600), NewSpatialIndex(), nil)
	s.SetCenter(3, 4)
	s.FitToView(100)
	if p := s.Camera().Position(); p != (Vec2{3, 4}) {
		t.Errorf("FitToView on empty graph moved camera to %v", p)
	}
}
