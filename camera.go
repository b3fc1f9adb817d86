package graphview

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MinZoom is the smallest zoom a Camera accepts. Lower, zero, negative or
// non-finite values are clamped to it.
const MinZoom = 1e-4

// minFitExtent is the smallest box side FitToView will divide by.
const minFitExtent = 1.0

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is an orthographic view onto the world. One world unit is one
// screen pixel at zoom 1. World Y points up while screen Y points down, so
// the view matrix flips the vertical axis.
//
// The view matrix, its inverse, and the view-projection are recomputed on
// every mutation and never set independently of position, zoom, and
// viewport size.
type Camera struct {
	x, y   float64
	zoom   float64
	width  float64
	height float64

	viewMatrix    [6]float64
	invViewMatrix [6]float64

	scrollTween *scrollAnim
}

// NewCamera creates a camera centered on the world origin at zoom 1.
func NewCamera(width, height float64) *Camera {
	c := &Camera{zoom: 1}
	c.width, c.height = clampViewport(width, height)
	c.recompute()
	return c
}

func clampViewport(w, h float64) (float64, float64) {
	if !(w >= 1) {
		w = 1
	}
	if !(h >= 1) {
		h = 1
	}
	return w, h
}

func clampZoom(z float64) float64 {
	if math.IsNaN(z) || math.IsInf(z, 0) || z < MinZoom {
		return MinZoom
	}
	return z
}

// Position returns the world point at the viewport center.
func (c *Camera) Position() Vec2 { return Vec2{c.x, c.y} }

// Zoom returns the current zoom factor.
func (c *Camera) Zoom() float64 { return c.zoom }

// ViewportSize returns the viewport size in device pixels.
func (c *Camera) ViewportSize() (w, h float64) { return c.width, c.height }

// SetViewportSize resizes the viewport. Sizes below one pixel are clamped.
// Call this together with the renderer's SetViewportSize; a Canvas does
// both in one step.
func (c *Camera) SetViewportSize(w, h float64) {
	c.width, c.height = clampViewport(w, h)
	c.recompute()
}

// SetCenter moves the camera so (x, y) is at the viewport center. Any
// running scroll animation is cancelled.
func (c *Camera) SetCenter(x, y float64) {
	c.scrollTween = nil
	c.x, c.y = x, y
	c.recompute()
}

// PanBy translates the camera by (dx, dy) world units. Any running scroll
// animation is cancelled.
func (c *Camera) PanBy(dx, dy float64) {
	c.scrollTween = nil
	c.x += dx
	c.y += dy
	c.recompute()
}

// SetZoom sets the zoom factor, clamped to MinZoom. A running scroll
// animation is cancelled.
func (c *Camera) SetZoom(z float64) {
	c.scrollTween = nil
	c.zoom = clampZoom(z)
	c.recompute()
}

// ZoomTo changes the zoom while keeping the world point under the screen
// anchor (sx, sy) fixed on screen. A running scroll animation is
// cancelled so the anchor stays put on later updates.
func (c *Camera) ZoomTo(z, sx, sy float64) {
	c.scrollTween = nil
	wx, wy := c.ScreenToWorld(sx, sy)
	c.zoom = clampZoom(z)
	c.x = wx - (sx-c.width/2)/c.zoom
	c.y = wy + (sy-c.height/2)/c.zoom
	c.recompute()
}

// FitToView centers the camera on the union of the nodes' bounds expanded
// by padding, zooming out until it fits. It never zooms in past 1:1. An
// empty node list leaves the camera unchanged.
func (c *Camera) FitToView(nodes []*GraphNode, padding float64) {
	if len(nodes) == 0 {
		return
	}
	box := nodes[0].Bounds()
	for _, n := range nodes[1:] {
		box = box.Union(n.Bounds())
	}
	c.FitRect(box, padding)
}

// FitRect is FitToView for a precomputed world-space box.
func (c *Camera) FitRect(box Rect, padding float64) {
	box = box.Expand(padding)
	bw := math.Max(box.Width, minFitExtent)
	bh := math.Max(box.Height, minFitExtent)
	center := box.Center()

	c.scrollTween = nil
	c.x, c.y = center.X, center.Y
	c.zoom = clampZoom(min(c.width/bw, c.height/bh, 1.0))
	c.recompute()
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.OutQuad
	}
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.x), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool { return c.scrollTween != nil }

// Update advances a running scroll animation by dt seconds and reports
// whether the camera moved.
func (c *Camera) Update(dt float32) bool {
	if c.scrollTween == nil {
		return false
	}
	prevX, prevY := c.x, c.y
	if !c.scrollTween.doneX {
		val, done := c.scrollTween.tweenX.Update(dt)
		c.x = float64(val)
		c.scrollTween.doneX = done
	}
	if !c.scrollTween.doneY {
		val, done := c.scrollTween.tweenY.Update(dt)
		c.y = float64(val)
		c.scrollTween.doneY = done
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		c.scrollTween = nil
	}
	if c.x == prevX && c.y == prevY {
		return false
	}
	c.recompute()
	return true
}

// recompute rebuilds the cached matrices.
//
// viewMatrix = Translate(w/2, h/2) * Scale(zoom, -zoom) * Translate(-X, -Y)
func (c *Camera) recompute() {
	z := c.zoom
	c.viewMatrix = multiplyAffine(
		translateAffine(c.width/2, c.height/2),
		multiplyAffine(scaleAffine(z, -z), translateAffine(-c.x, -c.y)),
	)
	c.invViewMatrix = invertAffine(c.viewMatrix)
}

// ViewMatrix returns the world-to-screen affine matrix [a, b, c, d, tx, ty].
func (c *Camera) ViewMatrix() [6]float64 { return c.viewMatrix }

// ViewProjection returns the column-major world-to-clip matrix:
// clip = ((x-X)*2z/w, (y-Y)*2z/h), depth range [-1000, 1000]. It is for
// backends that transform vertices in a shader. The bundled gpu and raster
// backends submit screen-space geometry built with WorldToScreen, which
// agrees with this matrix after the viewport transform.
func (c *Camera) ViewProjection() [16]float32 {
	sx := 2 * c.zoom / c.width
	sy := 2 * c.zoom / c.height
	m := multiplyAffine(scaleAffine(sx, sy), translateAffine(-c.x, -c.y))
	return affineToMat4(m, -1.0/1000)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the world-space rectangle covered by the viewport.
func (c *Camera) VisibleBounds() Rect {
	x0, y0 := c.ScreenToWorld(0, 0)
	x1, y1 := c.ScreenToWorld(c.width, c.height)
	return Rect{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// WorldRectToScreen maps a world-space rectangle to screen space.
func (c *Camera) WorldRectToScreen(r Rect) Rect {
	x0, y0 := c.WorldToScreen(r.X, r.Y)
	x1, y1 := c.WorldToScreen(r.X+r.Width, r.Y+r.Height)
	return Rect{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}
