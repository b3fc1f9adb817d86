package graphview

import "testing"

func TestInstanceBuilderCullsAndSkipsEdges(t *testing.T) {
	g := testGraph(t, Vec2{0, 0}, Vec2{200, 0}, Vec2{5000, 0})
	mustAddEdge(t, g, "near", "n0", "n1")
	mustAddEdge(t, g, "far", "n0", "n2")
	mustAddEdge(t, g, "dangling", "n0", "ghost")
	s := NewScene(g, NewCamera(800, 600), NewSpatialIndex(), nil)

	b := NewInstanceBuilder(0, 0)
	nodes, edges := b.Build(s)
	if len(nodes) != 2 || nodes[0].ID != "n0" || nodes[1].ID != "n1" {
		t.Fatalf("nodes = %+v", nodes)
	}
	if len(edges) != 1 || edges[0].ID != "near" {
		t.Fatalf("edges = %+v", edges)
	}
	if edges[0].From != (Vec2{0, 0}) || edges[0].To != (Vec2{200, 0}) {
		t.Errorf("edge endpoints = %v -> %v", edges[0].From, edges[0].To)
	}
	if nodes[0].Width != DefaultNodeWidth || nodes[0].Height != DefaultNodeHeight {
		t.Errorf("node size = %vx%v", nodes[0].Width, nodes[0].Height)
	}
	if nodes[0].Color != DefaultNodeColor || edges[0].Color != DefaultEdgeColor {
		t.Error("missing colors should fall back to defaults")
	}
}

func TestInstanceBuilderCaps(t *testing.T) {
	g := testGraph(t, Vec2{0, 0}, Vec2{10, 0}, Vec2{20, 0})
	mustAddEdge(t, g, "a", "n0", "n1")
	mustAddEdge(t, g, "b", "n1", "n2")
	s := NewScene(g, NewCamera(800, 600), NewSpatialIndex(), nil)

	b := NewInstanceBuilder(2, 1)
	if b.MaxNodes() != 2 || b.MaxEdges() != 1 {
		t.Fatalf("caps = %d/%d", b.MaxNodes(), b.MaxEdges())
	}
	nodes, edges := b.Build(s)
	if len(nodes) != 2 || nodes[0].ID != "n1" || nodes[1].ID != "n2" {
		t.Errorf("nodes = %+v, want the top-most n1 and n2", nodes)
	}
	if len(edges) != 1 || edges[0].ID != "b" {
		t.Errorf("edges = %+v", edges)
	}

	// Picking anywhere on the stack hits a node that was drawn.
	drawn := map[string]bool{}
	for _, n := range nodes {
		drawn[n.ID] = true
	}
	for _, p := range []Vec2{{0, 0}, {10, 0}, {20, 0}} {
		if hit := s.Index().QueryPoint(p); hit == nil || !drawn[hit.ID] {
			t.Errorf("pick at %v hit an undrawn node: %v", p, hit)
		}
	}

	// Buffers are reused across builds.
	nodes2, _ := b.Build(s)
	if &nodes2[0] != &nodes[0] {
		t.Error("node buffer reallocated")
	}
}

func TestInstanceBuilderState(t *testing.T) {
	g := testGraph(t, Vec2{0, 0}, Vec2{10, 0})
	mustAddEdge(t, g, "e", "n0", "n1")
	n0, _ := g.Node("n0")
	n0.Color = "#ff0000"
	s := NewScene(g, NewCamera(800, 600), NewSpatialIndex(), nil)
	s.SelectNode("n0", true, false)
	s.ExpandNode("n0", true)
	s.SetHoveredNode("n1")
	s.SetDraggedNode("n1")
	s.SelectEdge("e", true, false)

	nodes, edges := NewInstanceBuilder(0, 0).Build(s)
	if nodes[0].State != NodeSelected|NodeExpanded {
		t.Errorf("n0 state = %b", nodes[0].State)
	}
	if nodes[1].State != NodeHovered|NodeDragged {
		t.Errorf("n1 state = %b", nodes[1].State)
	}
	if !colorNear(nodes[0].Color, Color{1, 0, 0, 1}) {
		t.Errorf("n0 color = %+v", nodes[0].Color)
	}
	if !edges[0].Selected {
		t.Error("edge not selected")
	}
}

func TestInstanceBuilderWidthOverride(t *testing.T) {
	g := testGraph(t, Vec2{0, 0})
	s := NewScene(g, NewCamera(800, 600), NewSpatialIndex(), nil)
	s.SetNodeWidth(120)
	nodes, _ := NewInstanceBuilder(0, 0).Build(s)
	if nodes[0].Width != 120 {
		t.Errorf("width = %v, want 120", nodes[0].Width)
	}
}
