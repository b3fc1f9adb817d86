package gpu

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/graphview"
)

// quadBatch accumulates solid-color quads and submits them in a single
// DrawTriangles32 call. Every quad samples the same white texel, so a
// whole pass shares one texture and one blend state.
type quadBatch struct {
	verts []ebiten.Vertex
	inds  []uint32
}

func newQuadBatch(quadCap int) quadBatch {
	return quadBatch{
		verts: make([]ebiten.Vertex, 0, quadCap*4),
		inds:  make([]uint32, 0, quadCap*6),
	}
}

func (b *quadBatch) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

func (b *quadBatch) quads() int { return len(b.inds) / 6 }

// appendQuad appends 4 vertices and 6 indices. Corner order is TL, TR, BL,
// BR (for a line: start+n, end+n, start-n, end-n).
func (b *quadBatch) appendQuad(xs, ys [4]float32, c graphview.Color) {
	cr, cg, cb, ca := c.Premultiplied()
	base := uint32(len(b.verts))
	for i := 0; i < 4; i++ {
		b.verts = append(b.verts, ebiten.Vertex{
			DstX:   xs[i],
			DstY:   ys[i],
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	// Two triangles: TL-TR-BL, TR-BR-BL
	b.inds = append(b.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// appendRect appends an axis-aligned screen rectangle.
func (b *quadBatch) appendRect(r graphview.Rect, c graphview.Color) {
	x0, y0 := float32(r.X), float32(r.Y)
	x1, y1 := float32(r.X+r.Width), float32(r.Y+r.Height)
	b.appendQuad([4]float32{x0, x1, x0, x1}, [4]float32{y0, y0, y1, y1}, c)
}

// appendLine appends a screen-space segment of the given pixel width.
// Degenerate segments are skipped.
func (b *quadBatch) appendLine(ax, ay, bx, by, width float64, c graphview.Color) {
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l < 1e-6 {
		return
	}
	nx := -dy / l * width / 2
	ny := dx / l * width / 2
	b.appendQuad(
		[4]float32{float32(ax + nx), float32(bx + nx), float32(ax - nx), float32(bx - nx)},
		[4]float32{float32(ay + ny), float32(by + ny), float32(ay - ny), float32(by - ny)},
		c,
	)
}

// flush submits the batch to target and resets it. Returns the number of
// draw calls issued.
func (b *quadBatch) flush(target, white *ebiten.Image) int {
	if len(b.inds) == 0 {
		return 0
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	triOp.AntiAlias = true
	target.DrawTriangles32(b.verts, b.inds, white, &triOp)
	b.reset()
	return 1
}
