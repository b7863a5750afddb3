package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is the simulated circle.
type Body struct {
	Position mgl64.Vec2
	Velocity mgl64.Vec2
	Radius   float64
}

// NewBody returns a body at rest.
func NewBody(position mgl64.Vec2, radius float64) *Body {
	return &Body{
		Position: position,
		Radius:   radius,
	}
}

// KineticEnergy returns ½|v - frame|² for a unit mass measured in a frame
// moving at the given velocity.
func (b Body) KineticEnergy(frame mgl64.Vec2) float64 {
	return 0.5 * b.Velocity.Sub(frame).LenSqr()
}

// Integrate advances b by dt seconds: gravity, exponential damping, then
// position. Damping is a decay rate per second so the result does not depend
// on how a span of time is split into steps.
func Integrate(b *Body, gravity mgl64.Vec2, damping, dt float64) {
	if dt <= 0 {
		return
	}
	b.Velocity = b.Velocity.Add(gravity.Mul(dt))
	if damping > 0 {
		b.Velocity = b.Velocity.Mul(math.Exp(-damping * dt))
	}
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
}
