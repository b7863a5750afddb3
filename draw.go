package main

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

const circleVertices = 32

var (
	emptyImage = ebiten.NewImage(3, 3)
)

func init() {
	emptyImage.Fill(color.White)
}

// drawFilledCircle draws a triangle fan sampling the white center texel of
// emptyImage, tinted with clr.
func drawFilledCircle(dst *ebiten.Image, center mgl64.Vec2, radius float64, clr color.RGBA) {
	r := float32(clr.R) / 0xff
	g := float32(clr.G) / 0xff
	b := float32(clr.B) / 0xff
	a := float32(clr.A) / 0xff

	vertex := func(x, y float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		}
	}

	vs := make([]ebiten.Vertex, 0, circleVertices+1)
	is := make([]uint16, 0, circleVertices*3)
	vs = append(vs, vertex(center.X(), center.Y()))
	for i := 0; i < circleVertices; i++ {
		theta := 2 * math.Pi * float64(i) / circleVertices
		vs = append(vs, vertex(center.X()+radius*math.Cos(theta), center.Y()+radius*math.Sin(theta)))
		next := (i+1)%circleVertices + 1
		is = append(is, 0, uint16(i+1), uint16(next))
	}
	dst.DrawTriangles(vs, is, emptyImage, &ebiten.DrawTrianglesOptions{})
}
