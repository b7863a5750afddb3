package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestIntegrateGravity(t *testing.T) {
	b := NewBody(mgl64.Vec2{400, 200}, 15)
	dt := 1.0 / 60
	Integrate(b, mgl64.Vec2{0, 500}, 0, dt)

	if want := 500 * dt; !mgl64.FloatEqualThreshold(b.Velocity.Y(), want, tol) {
		t.Fatalf("vy = %f, want %f", b.Velocity.Y(), want)
	}
	if want := 200 + 500*dt*dt; !mgl64.FloatEqualThreshold(b.Position.Y(), want, tol) {
		t.Fatalf("y = %f, want %f", b.Position.Y(), want)
	}
	if b.Position.X() != 400 || b.Velocity.X() != 0 {
		t.Fatalf("horizontal state changed: %+v", *b)
	}
}

func TestIntegrateDampingIndependentOfStepSize(t *testing.T) {
	coarse := &Body{Velocity: mgl64.Vec2{300, -120}, Radius: 1}
	fine := *coarse

	Integrate(coarse, mgl64.Vec2{}, 0.8, 1.0/30)
	Integrate(&fine, mgl64.Vec2{}, 0.8, 1.0/60)
	Integrate(&fine, mgl64.Vec2{}, 0.8, 1.0/60)

	if !coarse.Velocity.ApproxEqualThreshold(fine.Velocity, tol) {
		t.Fatalf("velocity after 1/30 = %v, after 2×1/60 = %v", coarse.Velocity, fine.Velocity)
	}
	want := 300 * math.Exp(-0.8/30)
	if !mgl64.FloatEqualThreshold(coarse.Velocity.X(), want, tol) {
		t.Fatalf("vx = %f, want %f", coarse.Velocity.X(), want)
	}
}

func TestIntegrateNonPositiveDt(t *testing.T) {
	b := &Body{Position: mgl64.Vec2{1, 2}, Velocity: mgl64.Vec2{3, 4}, Radius: 5}
	before := *b
	Integrate(b, mgl64.Vec2{0, 500}, 1, 0)
	Integrate(b, mgl64.Vec2{0, 500}, 1, -0.1)
	if *b != before {
		t.Fatalf("body = %+v, want unchanged %+v", *b, before)
	}
}

func TestKineticEnergyFrame(t *testing.T) {
	b := &Body{Velocity: mgl64.Vec2{3, 4}}
	if ke := b.KineticEnergy(mgl64.Vec2{}); ke != 12.5 {
		t.Fatalf("ke = %f, want 12.5", ke)
	}
	if ke := b.KineticEnergy(mgl64.Vec2{3, 4}); ke != 0 {
		t.Fatalf("ke in co-moving frame = %f, want 0", ke)
	}
}
