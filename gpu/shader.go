package gpu

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/graphview"
)

// dotGridShaderSrc fills the target with a flat color and, when Spacing is
// positive, antialiased dots on a square grid. Colors are premultiplied.
const dotGridShaderSrc = `//kage:unit pixels
package main

var BgColor vec4
var DotColor vec4
var Spacing float
var Radius float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	if Spacing <= 0 {
		return BgColor
	}
	cell := mod(dst.xy, Spacing) - Spacing/2
	t := clamp(Radius-length(cell)+0.5, 0, 1)
	return mix(BgColor, DotColor, t)
}
`

// backgroundPass draws the viewport-filling background quad.
type backgroundPass struct {
	shader   *ebiten.Shader
	op       ebiten.DrawRectShaderOptions
	uniforms map[string]any
	bg       [4]float32
	dot      [4]float32
}

func newBackgroundPass() (*backgroundPass, error) {
	s, err := ebiten.NewShader([]byte(dotGridShaderSrc))
	if err != nil {
		return nil, err
	}
	p := &backgroundPass{
		shader:   s,
		uniforms: make(map[string]any, 4),
	}
	p.uniforms["BgColor"] = p.bg[:]
	p.uniforms["DotColor"] = p.dot[:]
	p.op.Uniforms = p.uniforms
	return p, nil
}

func (p *backgroundPass) draw(dst *ebiten.Image, bg graphview.Background) {
	p.bg[0], p.bg[1], p.bg[2], p.bg[3] = bg.Color.Premultiplied()
	p.dot[0], p.dot[1], p.dot[2], p.dot[3] = bg.DotColor.Premultiplied()
	spacing := float32(0)
	if bg.Style == graphview.BackgroundDots {
		spacing = float32(bg.DotSpacing)
	}
	p.uniforms["Spacing"] = spacing
	p.uniforms["Radius"] = float32(bg.DotRadius)
	b := dst.Bounds()
	dst.DrawRectShader(b.Dx(), b.Dy(), p.shader, &p.op)
}

func (p *backgroundPass) dispose() {
	p.shader.Deallocate()
}
