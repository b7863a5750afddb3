// Package sim owns the simulation state and runs the per-frame loop:
// rotate the container, integrate the body, rebuild the vertices and resolve
// contacts.
package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"

	"github.com/koteyur/physac-hexagon/internal/physics"
)

// MaxSubSteps bounds the work done for one frame. Frame time beyond
// MaxSubSteps·MaxStep is dropped.
const MaxSubSteps = 64

// ErrInvalidParams is wrapped by every Params.Validate failure.
var ErrInvalidParams = errors.New("invalid parameters")

// Params is the immutable scene description a Simulation starts from.
type Params struct {
	Center          mgl64.Vec2
	PolygonRadius   float64
	Sides           int
	StartAngle      float64
	AngularVelocity float64

	BodyPosition mgl64.Vec2
	BodyVelocity mgl64.Vec2
	BodyRadius   float64

	Gravity  mgl64.Vec2
	Damping  float64 // velocity decay rate, 1/s
	Material physics.Material
	Policy   physics.Policy
	MaxStep  float64 // longest sub-step, seconds
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Validate checks ranges and that the body starts clear of every wall.
func (p Params) Validate() error {
	if !finite(
		p.Center[0], p.Center[1], p.PolygonRadius, p.StartAngle, p.AngularVelocity,
		p.BodyPosition[0], p.BodyPosition[1], p.BodyVelocity[0], p.BodyVelocity[1], p.BodyRadius,
		p.Gravity[0], p.Gravity[1], p.Damping, p.MaxStep,
		p.Material.Restitution, p.Material.Friction, p.Material.Overshoot,
	) {
		return invalid("parameters must be finite numbers")
	}
	if p.PolygonRadius <= 0 {
		return invalid("polygon radius must be positive, got %g", p.PolygonRadius)
	}
	if p.Sides < 3 {
		return invalid("polygon needs at least 3 sides, got %d", p.Sides)
	}
	if p.BodyRadius <= 0 {
		return invalid("body radius must be positive, got %g", p.BodyRadius)
	}
	pg := p.polygon()
	apothem := pg.Apothem()
	if p.BodyRadius >= apothem {
		return invalid("body radius %g does not fit inside apothem %g", p.BodyRadius, apothem)
	}
	if d := p.BodyPosition.Sub(p.Center).Len(); d > apothem-p.BodyRadius {
		return invalid("body starts %g from the center, farther than %g", d, apothem-p.BodyRadius)
	}
	if r := p.Material.Restitution; r < 0 || r > 1 {
		return invalid("restitution must be in [0,1], got %g", r)
	}
	if f := p.Material.Friction; f < 0 || f > 1 {
		return invalid("friction must be in [0,1], got %g", f)
	}
	if p.Material.Overshoot < 1 {
		return invalid("overshoot must be >= 1, got %g", p.Material.Overshoot)
	}
	if p.Damping < 0 {
		return invalid("damping must not be negative, got %g", p.Damping)
	}
	if p.MaxStep <= 0 {
		return invalid("max step must be positive, got %g", p.MaxStep)
	}
	return nil
}

func (p Params) polygon() physics.Polygon {
	return physics.Polygon{
		Center:          p.Center,
		Radius:          p.PolygonRadius,
		Sides:           p.Sides,
		Angle:           physics.WrapAngle(p.StartAngle),
		AngularVelocity: p.AngularVelocity,
	}
}

func (p Params) body() physics.Body {
	return physics.Body{
		Position: p.BodyPosition,
		Velocity: p.BodyVelocity,
		Radius:   p.BodyRadius,
	}
}

// Frame is what the renderer needs for one frame.
type Frame struct {
	Vertices []mgl64.Vec2
	Position mgl64.Vec2
	Radius   float64
	Angle    float64
	Contacts []physics.Contact
}

// Stats are running counters since the last Reset.
type Stats struct {
	Frames         int
	Steps          int
	Bounces        int
	Contacts       int
	Time           float64
	MaxPenetration float64
}

// Simulation is the whole mutable state of one run. It is not safe for
// concurrent use; the loop driver owns it.
type Simulation struct {
	params   Params
	body     physics.Body
	polygon  physics.Polygon
	resolver physics.Resolver
	frame    Frame
	stats    Stats
}

// New validates p and returns a simulation in its initial state.
func New(p Params) (*Simulation, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	s := &Simulation{
		params:   p,
		resolver: physics.Resolver{Material: p.Material, Policy: p.Policy},
	}
	s.Reset()
	return s, nil
}

// Reset puts the body and the polygon back to their starting state.
func (s *Simulation) Reset() {
	s.body = s.params.body()
	s.polygon = s.params.polygon()
	s.stats = Stats{}
	s.frame = Frame{}
	s.publish(nil)
}

// Step advances the simulation by dt seconds, split into sub-steps no longer
// than MaxStep, and returns the contacts resolved during the frame.
func (s *Simulation) Step(dt float64) []physics.Contact {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	if limit := MaxSubSteps * s.params.MaxStep; dt > limit {
		dt = limit
	}
	n := int(math.Ceil(dt/s.params.MaxStep - 1e-9))
	if n < 1 {
		n = 1
	}
	h := dt / float64(n)

	var contacts []physics.Contact
	for i := 0; i < n; i++ {
		contacts = append(contacts, s.substep(h)...)
	}
	s.stats.Frames++
	s.publish(contacts)
	return contacts
}

func (s *Simulation) substep(dt float64) []physics.Contact {
	s.polygon.Advance(dt)
	physics.Integrate(&s.body, s.params.Gravity, s.params.Damping, dt)
	s.frame.Vertices = s.polygon.Vertices()
	contacts := s.resolver.Resolve(&s.body, &s.polygon, s.frame.Vertices)

	s.stats.Steps++
	s.stats.Time += dt
	s.stats.Contacts += len(contacts)
	for _, c := range contacts {
		if c.Bounced {
			s.stats.Bounces++
		}
		if c.Penetration > s.stats.MaxPenetration {
			s.stats.MaxPenetration = c.Penetration
		}
	}
	return contacts
}

func (s *Simulation) publish(contacts []physics.Contact) {
	if s.frame.Vertices == nil {
		s.frame.Vertices = s.polygon.Vertices()
	}
	s.frame.Position = s.body.Position
	s.frame.Radius = s.body.Radius
	s.frame.Angle = s.polygon.Angle
	s.frame.Contacts = contacts
}

// Snapshot returns a deep copy of the latest frame, safe to keep across steps.
func (s *Simulation) Snapshot() (Frame, error) {
	var out Frame
	if err := copier.CopyWithOption(&out, &s.frame, copier.Option{DeepCopy: true}); err != nil {
		return Frame{}, fmt.Errorf("sim: snapshot: %w", err)
	}
	return out, nil
}

// Body returns the current body state.
func (s *Simulation) Body() physics.Body { return s.body }

// Polygon returns the current container state.
func (s *Simulation) Polygon() physics.Polygon { return s.polygon }

// Params returns the parameters the simulation was built from.
func (s *Simulation) Params() Params { return s.params }

// Stats returns the counters accumulated since the last Reset.
func (s *Simulation) Stats() Stats { return s.stats }
