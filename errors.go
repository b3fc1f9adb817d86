package graphview

import "errors"

var (
	// ErrEmptyID is returned when a node or edge is added without an id.
	ErrEmptyID = errors.New("graphview: empty id")
	// ErrDuplicateID is returned when a node or edge id is already present.
	ErrDuplicateID = errors.New("graphview: duplicate id")
	// ErrDanglingEdge marks an edge whose endpoint names no node in the graph.
	ErrDanglingEdge = errors.New("graphview: edge endpoint not found")
	// ErrRendererDisposed is returned by Render after Dispose.
	ErrRendererDisposed = errors.New("graphview: renderer disposed")
	// ErrNoGPUContext is returned when a backend cannot acquire its drawing
	// context. Only the renderer and draw loop are affected.
	ErrNoGPUContext = errors.New("graphview: no GPU context")
)
