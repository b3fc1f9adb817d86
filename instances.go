package graphview

// Instance buffer capacities used when a Canvas is created without limits.
const (
	DefaultMaxNodes = 10000
	DefaultMaxEdges = 50000
)

// cullMarginPx is the screen margin added around the viewport when
// collecting visible nodes, so edges leaving the screen do not pop.
const cullMarginPx = 64.0

// NodeState is a bitmask of per-instance interaction flags.
type NodeState uint8

const (
	NodeSelected NodeState = 1 << iota // node is in the selection
	NodeHovered                        // pointer is over the node
	NodeDragged                        // node is being dragged
	NodeExpanded                       // node is expanded
)

// NodeInstance is the per-instance data of the node pass. Center and size
// are in world units; backends apply the camera.
type NodeInstance struct {
	ID     string
	Center Vec2
	Width  float64
	Height float64
	Color  Color
	State  NodeState
}

// EdgeInstance is the per-instance data of the edge pass.
type EdgeInstance struct {
	ID       string
	From, To Vec2
	Color    Color
	Weight   float64
	Selected bool
}

// InstanceBuilder turns scene state into instance buffers for a render
// pass. Buffers are allocated once at their maximum size and reused every
// frame; instances beyond the maximum are dropped with a warning.
type InstanceBuilder struct {
	maxNodes int
	maxEdges int

	nodes   []NodeInstance
	edges   []EdgeInstance
	visible []*GraphNode
	centers map[string]Vec2
	colors  colorCache

	warnedNodes bool
	warnedEdges bool
}

// NewInstanceBuilder creates a builder with the given capacities. Values
// below one select the defaults.
func NewInstanceBuilder(maxNodes, maxEdges int) *InstanceBuilder {
	if maxNodes < 1 {
		maxNodes = DefaultMaxNodes
	}
	if maxEdges < 1 {
		maxEdges = DefaultMaxEdges
	}
	return &InstanceBuilder{
		maxNodes: maxNodes,
		maxEdges: maxEdges,
		nodes:    make([]NodeInstance, 0, maxNodes),
		edges:    make([]EdgeInstance, 0, maxEdges),
		centers:  make(map[string]Vec2),
		colors:   make(colorCache),
	}
}

// MaxNodes returns the node instance capacity.
func (b *InstanceBuilder) MaxNodes() int { return b.maxNodes }

// MaxEdges returns the edge instance capacity.
func (b *InstanceBuilder) MaxEdges() int { return b.maxEdges }

// Build collects the instances for the current scene state. Nodes come out
// in ascending paint order; past the node cap the bottom-most are dropped. Edges are included only when both endpoints
// are visible nodes, which also drops edges with a missing endpoint. The
// returned slices are valid until the next Build.
func (b *InstanceBuilder) Build(s *Scene) (nodes []NodeInstance, edges []EdgeInstance) {
	cam := s.Camera()
	b.visible = s.Index().VisibleNodes(cam, cullMarginPx/cam.Zoom(), b.visible[:0])
	b.nodes = b.nodes[:0]
	b.edges = b.edges[:0]
	clear(b.centers)

	visible := b.visible
	if len(visible) > b.maxNodes {
		if !b.warnedNodes {
			Logger().Warn("node instances truncated", "visible", len(visible), "max", b.maxNodes)
			b.warnedNodes = true
		}
		// Keep the top-most nodes, the ones picking would hit first.
		visible = visible[len(visible)-b.maxNodes:]
	}

	idx := s.Index()
	for _, n := range visible {
		r := idx.NodeBounds(n)
		b.nodes = append(b.nodes, NodeInstance{
			ID:     n.ID,
			Center: n.Position,
			Width:  r.Width,
			Height: r.Height,
			Color:  b.colors.resolve(n.Color, DefaultNodeColor),
			State:  nodeState(s, n.ID),
		})
		b.centers[n.ID] = n.Position
	}

	s.Graph().EachEdge(func(e *GraphEdge) {
		from, ok := b.centers[e.FromID]
		if !ok {
			return
		}
		to, ok := b.centers[e.ToID]
		if !ok {
			return
		}
		if len(b.edges) == b.maxEdges {
			if !b.warnedEdges {
				Logger().Warn("edge instances truncated", "max", b.maxEdges)
				b.warnedEdges = true
			}
			return
		}
		b.edges = append(b.edges, EdgeInstance{
			ID:       e.ID,
			From:     from,
			To:       to,
			Color:    b.colors.resolve(e.Color(), DefaultEdgeColor),
			Weight:   e.Weight,
			Selected: s.IsEdgeSelected(e.ID),
		})
	})
	return b.nodes, b.edges
}

func nodeState(s *Scene, id string) NodeState {
	var st NodeState
	if s.IsNodeSelected(id) {
		st |= NodeSelected
	}
	if s.HoveredNode() == id {
		st |= NodeHovered
	}
	if s.DraggedNode() == id {
		st |= NodeDragged
	}
	if s.IsExpanded(id) {
		st |= NodeExpanded
	}
	return st
}
