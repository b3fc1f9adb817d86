package graphview

import (
	"errors"
	"fmt"
)

// Default node extents in world units, used when a node leaves its size unset.
const (
	DefaultNodeWidth  = 300.0
	DefaultNodeHeight = 100.0
)

// Label is a colored tag shown on a node.
type Label struct {
	Text  string
	Color string
}

// Property is one entry of a node's ordered key-value properties.
type Property struct {
	Key   string
	Value any
}

// EdgeType is one entry of an edge's ordered type-name to color mapping.
type EdgeType struct {
	Name  string
	Color string
}

// GraphNode is a vertex of the diagram. Position is the node center in
// world units. Selection and expansion are tracked by the Scene, not here.
type GraphNode struct {
	ID         string
	Position   Vec2
	Width      float64
	Height     float64
	Color      string
	Caption    string
	Labels     []Label
	Properties []Property
}

// Size returns the node extents, substituting defaults for unset values.
func (n *GraphNode) Size() (w, h float64) {
	w, h = n.Width, n.Height
	if w <= 0 {
		w = DefaultNodeWidth
	}
	if h <= 0 {
		h = DefaultNodeHeight
	}
	return w, h
}

// Bounds returns the node's world-space AABB.
func (n *GraphNode) Bounds() Rect {
	w, h := n.Size()
	return Rect{X: n.Position.X - w/2, Y: n.Position.Y - h/2, Width: w, Height: h}
}

// Property returns the value stored under key, if any.
func (n *GraphNode) Property(key string) (any, bool) {
	for _, p := range n.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// GraphEdge is a directed relationship between two nodes, referenced by id.
type GraphEdge struct {
	ID     string
	Types  []EdgeType
	Weight float64
	FromID string
	ToID   string
}

// Color returns the hex color of the first edge type, or "" when untyped.
func (e *GraphEdge) Color() string {
	if len(e.Types) == 0 {
		return ""
	}
	return e.Types[0].Color
}

// Graph holds nodes and edges keyed by id, preserving insertion order.
// Node insertion order is the z order: later nodes paint on top and win
// hit tests. Removal tombstones the order slot and compacts lazily, so it is
// O(1) amortized.
type Graph struct {
	nodes     map[string]int
	nodeOrder []*GraphNode
	nodeDead  int

	edges     map[string]int
	edgeOrder []*GraphEdge
	edgeDead  int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]int),
		edges: make(map[string]int),
	}
}

// AddNode appends a node. Returns ErrEmptyID or ErrDuplicateID on bad ids.
func (g *Graph) AddNode(n *GraphNode) error {
	if n == nil || n.ID == "" {
		return fmt.Errorf("add node: %w", ErrEmptyID)
	}
	if _, ok := g.nodes[n.ID]; ok {
		return fmt.Errorf("add node %q: %w", n.ID, ErrDuplicateID)
	}
	g.nodes[n.ID] = len(g.nodeOrder)
	g.nodeOrder = append(g.nodeOrder, n)
	return nil
}

// AddEdge appends an edge. Endpoints are not checked here; see Validate.
// A zero weight is stored as 1.
func (g *Graph) AddEdge(e *GraphEdge) error {
	if e == nil || e.ID == "" {
		return fmt.Errorf("add edge: %w", ErrEmptyID)
	}
	if _, ok := g.edges[e.ID]; ok {
		return fmt.Errorf("add edge %q: %w", e.ID, ErrDuplicateID)
	}
	if e.Weight == 0 {
		e.Weight = 1
	}
	g.edges[e.ID] = len(g.edgeOrder)
	g.edgeOrder = append(g.edgeOrder, e)
	return nil
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (*GraphNode, bool) {
	i, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	return g.nodeOrder[i], true
}

// Edge looks up an edge by id.
func (g *Graph) Edge(id string) (*GraphEdge, bool) {
	i, ok := g.edges[id]
	if !ok {
		return nil, false
	}
	return g.edgeOrder[i], true
}

// HasNode reports whether id names a node in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether id names an edge in the graph.
func (g *Graph) HasEdge(id string) bool {
	_, ok := g.edges[id]
	return ok
}

// RemoveNode deletes a node. Edges that referenced it are kept and become
// dangling; renderers skip them.
func (g *Graph) RemoveNode(id string) bool {
	i, ok := g.nodes[id]
	if !ok {
		return false
	}
	delete(g.nodes, id)
	g.nodeOrder[i] = nil
	g.nodeDead++
	if g.nodeDead > len(g.nodeOrder)/2 {
		g.compactNodes()
	}
	return true
}

// RemoveEdge deletes an edge.
func (g *Graph) RemoveEdge(id string) bool {
	i, ok := g.edges[id]
	if !ok {
		return false
	}
	delete(g.edges, id)
	g.edgeOrder[i] = nil
	g.edgeDead++
	if g.edgeDead > len(g.edgeOrder)/2 {
		g.compactEdges()
	}
	return true
}

func (g *Graph) compactNodes() {
	live := g.nodeOrder[:0]
	for _, n := range g.nodeOrder {
		if n != nil {
			g.nodes[n.ID] = len(live)
			live = append(live, n)
		}
	}
	clear(g.nodeOrder[len(live):])
	g.nodeOrder = live
	g.nodeDead = 0
}

func (g *Graph) compactEdges() {
	live := g.edgeOrder[:0]
	for _, e := range g.edgeOrder {
		if e != nil {
			g.edges[e.ID] = len(live)
			live = append(live, e)
		}
	}
	clear(g.edgeOrder[len(live):])
	g.edgeOrder = live
	g.edgeDead = 0
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns the nodes in insertion order. The slice is freshly
// allocated; the nodes are shared.
func (g *Graph) Nodes() []*GraphNode {
	out := make([]*GraphNode, 0, len(g.nodes))
	for _, n := range g.nodeOrder {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []*GraphEdge {
	out := make([]*GraphEdge, 0, len(g.edges))
	for _, e := range g.edgeOrder {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

// EachEdge calls fn for every edge in insertion order without allocating.
func (g *Graph) EachEdge(fn func(*GraphEdge)) {
	for _, e := range g.edgeOrder {
		if e != nil {
			fn(e)
		}
	}
}

// EdgesForNode returns the edges that start or end at id.
func (g *Graph) EdgesForNode(id string) []*GraphEdge {
	var out []*GraphEdge
	for _, e := range g.edgeOrder {
		if e != nil && (e.FromID == id || e.ToID == id) {
			out = append(out, e)
		}
	}
	return out
}

// Validate reports every edge whose endpoint is missing. Each problem wraps
// ErrDanglingEdge; the result is nil when the graph is consistent.
func (g *Graph) Validate() error {
	var errs []error
	for _, e := range g.edgeOrder {
		if e == nil {
			continue
		}
		if !g.HasNode(e.FromID) {
			errs = append(errs, fmt.Errorf("edge %q: from %q: %w", e.ID, e.FromID, ErrDanglingEdge))
		}
		if !g.HasNode(e.ToID) {
			errs = append(errs, fmt.Errorf("edge %q: to %q: %w", e.ID, e.ToID, ErrDanglingEdge))
		}
	}
	return errors.Join(errs...)
}
