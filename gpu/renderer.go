// Package gpu is the Ebitengine backend for graphview: an instanced
// Renderer, platform input normalization, and a ready-made ebiten.Game.
package gpu

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/graphview"
)

// Renderer draws a graphview.Scene with Ebitengine. It renders into an
// offscreen image sized to the viewport so skipped frames keep the last
// picture; App copies that image to the screen each frame.
//
// Each pass is one DrawTriangles32 call over per-instance quads sharing a
// white texel: one for edges, one for nodes (selection outlines and
// expansion markers are interleaved so paint order matches hit-test order).
type Renderer struct {
	scene   *graphview.Scene
	builder *graphview.InstanceBuilder
	style   graphview.Style

	target *ebiten.Image
	white  *ebiten.Image
	bg     *backgroundPass

	edgeBatch quadBatch
	nodeBatch quadBatch

	width, height int
	stats         graphview.RenderStats
	disposed      bool
}

// NewRenderer creates a renderer for scene with the given instance
// capacities (values below one select the defaults). Shader compilation
// failure is reported as graphview.ErrNoGPUContext.
func NewRenderer(scene *graphview.Scene, maxNodes, maxEdges int) (*Renderer, error) {
	bg, err := newBackgroundPass()
	if err != nil {
		return nil, fmt.Errorf("%w: compile background shader: %v", graphview.ErrNoGPUContext, err)
	}
	builder := graphview.NewInstanceBuilder(maxNodes, maxEdges)
	white := ebiten.NewImage(1, 1)
	white.Fill(graphview.ColorWhite.NRGBA())

	w, h := scene.Camera().ViewportSize()
	r := &Renderer{
		scene:     scene,
		builder:   builder,
		style:     graphview.DefaultStyle(),
		white:     white,
		bg:        bg,
		edgeBatch: newQuadBatch(builder.MaxEdges()),
		nodeBatch: newQuadBatch(builder.MaxNodes() * 3),
	}
	r.SetViewportSize(int(w), int(h))
	graphview.Logger().Info("gpu renderer created",
		"maxNodes", builder.MaxNodes(), "maxEdges", builder.MaxEdges())
	return r, nil
}

// Factory adapts NewRenderer to graphview.RendererFactory. If created is
// non-nil it receives the renderer so a host can reach backend specifics.
func Factory(created func(*Renderer)) graphview.RendererFactory {
	return func(scene *graphview.Scene, maxNodes, maxEdges int) (graphview.Renderer, error) {
		r, err := NewRenderer(scene, maxNodes, maxEdges)
		if err != nil {
			return nil, err
		}
		if created != nil {
			created(r)
		}
		return r, nil
	}
}

// SetStyle replaces the visual style.
func (r *Renderer) SetStyle(st graphview.Style) { r.style = st }

// SetViewportSize resizes the offscreen target. Call together with the
// camera's SetViewportSize.
func (r *Renderer) SetViewportSize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if r.target != nil && r.width == w && r.height == h {
		return
	}
	if r.target != nil {
		r.target.Deallocate()
	}
	r.target = ebiten.NewImage(w, h)
	r.width, r.height = w, h
}

// Image returns the offscreen frame. Valid until the next SetViewportSize.
func (r *Renderer) Image() *ebiten.Image { return r.target }

// LastStats reports the counts of the last render.
func (r *Renderer) LastStats() graphview.RenderStats { return r.stats }

// Render draws background, edges and nodes.
func (r *Renderer) Render(bg graphview.Background) error {
	if r.disposed {
		return graphview.ErrRendererDisposed
	}
	cam := r.scene.Camera()
	nodes, edges := r.builder.Build(r.scene)

	r.bg.draw(r.target, bg)
	calls := 1

	for _, e := range edges {
		c, w := r.style.EdgeStroke(e)
		ax, ay := cam.WorldToScreen(e.From.X, e.From.Y)
		bx, by := cam.WorldToScreen(e.To.X, e.To.Y)
		r.edgeBatch.appendLine(ax, ay, bx, by, w, c)
	}
	calls += r.edgeBatch.flush(r.target, r.white)

	for _, n := range nodes {
		sr := cam.WorldRectToScreen(graphview.Rect{
			X: n.Center.X - n.Width/2, Y: n.Center.Y - n.Height/2,
			Width: n.Width, Height: n.Height,
		})
		if n.State&graphview.NodeSelected != 0 {
			r.nodeBatch.appendRect(sr.Expand(r.style.OutlineWidth), r.style.SelectionColor)
		}
		r.nodeBatch.appendRect(sr, r.style.NodeFill(n))
		if n.State&graphview.NodeExpanded != 0 {
			r.nodeBatch.appendRect(r.style.ExpandedMarker(sr), r.style.ExpandedColor)
		}
	}
	calls += r.nodeBatch.flush(r.target, r.white)

	r.stats = graphview.RenderStats{Nodes: len(nodes), Edges: len(edges), DrawCalls: calls}
	return nil
}

// Snapshot reads back the last rendered frame as straight-alpha NRGBA.
// Only valid while the game loop is running (inside Draw).
func (r *Renderer) Snapshot() (image.Image, error) {
	if r.disposed {
		return nil, graphview.ErrRendererDisposed
	}
	w, h := r.width, r.height
	pixels := make([]byte, 4*w*h)
	r.target.ReadPixels(pixels)

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		cr, cg, cb, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			cr = uint8(min(int(cr)*255/int(a), 255))
			cg = uint8(min(int(cg)*255/int(a), 255))
			cb = uint8(min(int(cb)*255/int(a), 255))
		}
		img.Pix[i] = cr
		img.Pix[i+1] = cg
		img.Pix[i+2] = cb
		img.Pix[i+3] = a
	}
	return img, nil
}

// Dispose releases the offscreen target, the white texel and the shader.
// Safe to call more than once.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.target.Deallocate()
	r.white.Deallocate()
	r.bg.dispose()
	graphview.Logger().Info("gpu renderer disposed")
}
