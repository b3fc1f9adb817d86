package graphview

import (
	"errors"
	"fmt"
	"testing"
)

func TestGraphAddRejectsBadIDs(t *testing.T) {
	g := NewGraph()
	if err := g.AddNode(&GraphNode{}); !errors.Is(err, ErrEmptyID) {
		t.Errorf("empty node id: %v", err)
	}
	if err := g.AddNode(nil); !errors.Is(err, ErrEmptyID) {
		t.Errorf("nil node: %v", err)
	}
	_ = g.AddNode(&GraphNode{ID: "a"})
	if err := g.AddNode(&GraphNode{ID: "a"}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate node: %v", err)
	}
	if err := g.AddEdge(&GraphEdge{FromID: "a", ToID: "a"}); !errors.Is(err, ErrEmptyID) {
		t.Errorf("empty edge id: %v", err)
	}
	_ = g.AddEdge(&GraphEdge{ID: "e", FromID: "a", ToID: "a"})
	if err := g.AddEdge(&GraphEdge{ID: "e"}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate edge: %v", err)
	}
	if g.NodeCount() != 1 || g.EdgeCount() != 1 {
		t.Errorf("counts = %d/%d, want 1/1", g.NodeCount(), g.EdgeCount())
	}
}

func TestGraphEdgeDefaults(t *testing.T) {
	g := NewGraph()
	e := &GraphEdge{ID: "e", FromID: "a", ToID: "b"}
	_ = g.AddEdge(e)
	if e.Weight != 1 {
		t.Errorf("Weight = %v, want 1", e.Weight)
	}
	if e.Color() != "" {
		t.Errorf("untyped Color = %q, want empty", e.Color())
	}
	e.Types = []EdgeType{{"knows", "#ff0000"}, {"likes", "#00ff00"}}
	if e.Color() != "#ff0000" {
		t.Errorf("Color = %q, want first type's color", e.Color())
	}
}

func TestGraphNodeDefaults(t *testing.T) {
	n := &GraphNode{ID: "a", Position: Vec2{10, 20}}
	if w, h := n.Size(); w != DefaultNodeWidth || h != DefaultNodeHeight {
		t.Errorf("Size = %vx%v", w, h)
	}
	b := n.Bounds()
	if b != (Rect{X: -140, Y: -30, Width: 300, Height: 100}) {
		t.Errorf("Bounds = %+v", b)
	}
	n.Properties = []Property{{"k", 1.5}}
	if v, ok := n.Property("k"); !ok || v != 1.5 {
		t.Errorf("Property = %v, %v", v, ok)
	}
	if _, ok := n.Property("missing"); ok {
		t.Error("missing property found")
	}
}

func TestGraphRemovePreservesOrder(t *testing.T) {
	g := NewGraph()
	for i := range 10 {
		_ = g.AddNode(&GraphNode{ID: fmt.Sprint(i)})
	}
	for _, id := range []string{"1", "3", "5", "7", "9", "0"} {
		if !g.RemoveNode(id) {
			t.Fatalf("RemoveNode(%s) = false", id)
		}
	}
	if g.RemoveNode("1") {
		t.Error("second RemoveNode returned true")
	}
	want := []string{"2", "4", "6", "8"}
	nodes := g.Nodes()
	if len(nodes) != len(want) {
		t.Fatalf("len = %d, want %d", len(nodes), len(want))
	}
	for i, n := range nodes {
		if n.ID != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, n.ID, want[i])
		}
		if got, ok := g.Node(n.ID); !ok || got != n {
			t.Errorf("lookup %s after compaction failed", n.ID)
		}
	}
	_ = g.AddNode(&GraphNode{ID: "new"})
	if last := g.Nodes()[4]; last.ID != "new" {
		t.Errorf("appended node at %s", last.ID)
	}
}

func TestGraphRemoveEdge(t *testing.T) {
	g := testGraph(t, Vec2{}, Vec2{})
	mustAddEdge(t, g, "a", "n0", "n1")
	mustAddEdge(t, g, "b", "n1", "n0")
	mustAddEdge(t, g, "c", "n0", "n0")
	g.RemoveEdge("a")
	g.RemoveEdge("b")
	if g.EdgeCount() != 1 || g.HasEdge("a") || !g.HasEdge("c") {
		t.Errorf("edges after removal: %d", g.EdgeCount())
	}
	if e, ok := g.Edge("c"); !ok || e.ID != "c" {
		t.Error("lookup after compaction failed")
	}
	var seen []string
	g.EachEdge(func(e *GraphEdge) { seen = append(seen, e.ID) })
	if len(seen) != 1 || seen[0] != "c" {
		t.Errorf("EachEdge = %v", seen)
	}
}

func TestGraphEdgesForNode(t *testing.T) {
	g := testGraph(t, Vec2{}, Vec2{}, Vec2{})
	mustAddEdge(t, g, "a", "n0", "n1")
	mustAddEdge(t, g, "b", "n2", "n0")
	mustAddEdge(t, g, "c", "n1", "n2")
	got := g.EdgesForNode("n0")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("EdgesForNode(n0) = %v", got)
	}
}

func TestGraphValidate(t *testing.T) {
	g := testGraph(t, Vec2{})
	mustAddEdge(t, g, "ok", "n0", "n0")
	if err := g.Validate(); err != nil {
		t.Fatalf("consistent graph: %v", err)
	}
	mustAddEdge(t, g, "bad", "n0", "ghost")
	mustAddEdge(t, g, "worse", "x", "y")
	err := g.Validate()
	if !errors.Is(err, ErrDanglingEdge) {
		t.Fatalf("Validate = %v, want ErrDanglingEdge", err)
	}
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) || len(joined.Unwrap()) != 3 {
		t.Errorf("want 3 problems, got %v", err)
	}

	g.RemoveNode("n0")
	if err := g.Validate(); err == nil {
		t.Error("removing a node should leave dangling edges")
	}
}
