package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// HexagonSides is the vertex count of the default container.
const HexagonSides = 6

// Polygon is a regular convex polygon spinning rigidly about its center.
// Vertices are derived from the state on demand and never stored.
type Polygon struct {
	Center          mgl64.Vec2
	Radius          float64 // circumradius
	Sides           int     // 0 means HexagonSides
	Angle           float64 // radians, kept in [0, 2π)
	AngularVelocity float64 // radians per second
}

// NewHexagon returns a six-sided polygon at angle 0.
func NewHexagon(center mgl64.Vec2, radius, angularVelocity float64) *Polygon {
	return &Polygon{
		Center:          center,
		Radius:          radius,
		Sides:           HexagonSides,
		AngularVelocity: angularVelocity,
	}
}

// Vertices returns the six hexagon vertices for the given center, circumradius
// and rotation angle. Vertex i sits at angle + i·60°.
func Vertices(center mgl64.Vec2, radius, angle float64) [HexagonSides]mgl64.Vec2 {
	var out [HexagonSides]mgl64.Vec2
	copy(out[:], RegularVertices(center, radius, angle, HexagonSides))
	return out
}

// RegularVertices returns the vertices of a regular polygon with the given
// number of sides, ordered by increasing angle. With that winding the left
// perpendicular of every edge points inward (see InwardNormal).
func RegularVertices(center mgl64.Vec2, radius, angle float64, sides int) []mgl64.Vec2 {
	if sides < 3 {
		return nil
	}
	transform := mgl64.Rotate2D(angle)
	step := 2 * math.Pi / float64(sides)
	out := make([]mgl64.Vec2, sides)
	for i := range out {
		local := mgl64.Vec2{math.Cos(step * float64(i)), math.Sin(step * float64(i))}.Mul(radius)
		out[i] = center.Add(transform.Mul2x1(local))
	}
	return out
}

// InwardNormal returns the unit normal of edge ab pointing into a polygon
// whose vertices follow the RegularVertices winding. It reports false for a
// degenerate edge.
func InwardNormal(a, b mgl64.Vec2) (mgl64.Vec2, bool) {
	face := b.Sub(a)
	length := face.Len()
	if length < Epsilon {
		return mgl64.Vec2{}, false
	}
	return Perp(face).Mul(1 / length), true
}

// WrapAngle maps a into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

func (p Polygon) sides() int {
	if p.Sides == 0 {
		return HexagonSides
	}
	return p.Sides
}

// Advance rotates the polygon by AngularVelocity·dt.
func (p *Polygon) Advance(dt float64) {
	p.Angle = WrapAngle(p.Angle + p.AngularVelocity*dt)
}

// Vertices returns the current vertices.
func (p Polygon) Vertices() []mgl64.Vec2 {
	return RegularVertices(p.Center, p.Radius, p.Angle, p.sides())
}

// Apothem is the distance from the center to every edge.
func (p Polygon) Apothem() float64 {
	return p.Radius * math.Cos(math.Pi/float64(p.sides()))
}

// WallVelocity is the instantaneous velocity of the polygon at point.
func (p Polygon) WallVelocity(point mgl64.Vec2) mgl64.Vec2 {
	return Cross(p.AngularVelocity, point.Sub(p.Center))
}
