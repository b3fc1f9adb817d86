package graphview

import "image"

// Renderer draws a scene: background, then edges, then nodes in ascending
// paint order. Implementations own all drawing resources and release them
// in Dispose; Render after Dispose returns ErrRendererDisposed.
//
// SetViewportSize must be called together with the camera's; Canvas.Resize
// does both.
type Renderer interface {
	SetViewportSize(w, h int)
	Render(bg Background) error
	Dispose()
}

// Snapshotter is implemented by renderers that can read back the last
// rendered frame.
type Snapshotter interface {
	Snapshot() (image.Image, error)
}

// RendererFactory creates the backend for a scene. It may return
// ErrNoGPUContext when the backend is unavailable.
type RendererFactory func(scene *Scene, maxNodes, maxEdges int) (Renderer, error)

// RenderStats describes one completed render.
type RenderStats struct {
	Nodes     int
	Edges     int
	DrawCalls int
}

// StatsReporter is implemented by renderers that report per-frame counts.
type StatsReporter interface {
	LastStats() RenderStats
}
