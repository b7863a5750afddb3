// Package physics implements the circle-inside-rotating-polygon model: polygon
// geometry, body integration and edge collision response.
//
// Coordinates are screen space (x right, y down). All vectors are mgl64.Vec2.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Epsilon is the tolerance for contact tests and degenerate-edge guards.
	Epsilon = 1e-6
)

// Cross returns w × r for a scalar angular velocity w and an offset r,
// i.e. the linear velocity of a point at r on a body spinning at w.
func Cross(w float64, r mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-w * r[1], w * r[0]}
}

// Perp returns v rotated by a quarter turn, (-v.y, v.x).
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v[1], v[0]}
}

// ClosestPoint projects p onto segment ab. It returns the closest point, the
// clamped projection parameter and false when the segment is degenerate.
func ClosestPoint(a, b, p mgl64.Vec2) (mgl64.Vec2, float64, bool) {
	ab := b.Sub(a)
	lenSqr := ab.LenSqr()
	if lenSqr < Epsilon*Epsilon {
		return a, 0, false
	}
	t := mgl64.Clamp(p.Sub(a).Dot(ab)/lenSqr, 0, 1)
	return a.Add(ab.Mul(t)), t, true
}
