package physics

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Policy selects how many penetrating edges a single Resolve pass handles.
type Policy int

// DefaultIterations is the ResolveAll pass limit when Resolver.Iterations is 0.
const DefaultIterations = 4

const (
	// ResolveAll tries every edge in vertex order against the updated body,
	// repeating the pass while it still finds contacts.
	ResolveAll Policy = iota
	// ResolveFirst stops after the first confirmed contact.
	ResolveFirst
)

func (p Policy) String() string {
	switch p {
	case ResolveAll:
		return "all"
	case ResolveFirst:
		return "first"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy accepts "all" or "first".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ResolveAll, nil
	case "first":
		return ResolveFirst, nil
	}
	return 0, fmt.Errorf("unknown collision policy %q", s)
}

// Material holds the wall response coefficients.
type Material struct {
	Restitution float64 // share of the normal relative speed kept, [0,1]
	Friction    float64 // share of the tangential relative speed removed, [0,1]
	Overshoot   float64 // positional correction scale, >= 1
}

// DefaultMaterial is a slightly lossy, slightly grippy wall.
func DefaultMaterial() Material {
	return Material{
		Restitution: 0.9,
		Friction:    0.1,
		Overshoot:   1,
	}
}

// Contact describes one resolved edge contact.
type Contact struct {
	Edge         int        // index of the edge's first vertex
	Point        mgl64.Vec2 // closest point on the edge
	Normal       mgl64.Vec2 // inward unit normal
	Penetration  float64    // radius minus signed separation, before correction
	WallVelocity mgl64.Vec2
	// ApproachSpeed is -(v_rel·n) before the response; positive when the body
	// was moving into the wall.
	ApproachSpeed float64
	Bounced       bool
}

// Resolver pushes a body back inside a polygon and bounces it off moving walls.
type Resolver struct {
	Material   Material
	Policy     Policy
	Iterations int
}

// NewResolver returns a resolver using the default policy.
func NewResolver(m Material) *Resolver {
	return &Resolver{Material: m}
}

// Resolve checks body against every edge of vertices, in order, and applies
// the response for each penetrating edge according to the policy. poly
// supplies the rotation center and angular velocity. The applied contacts
// are returned in resolution order.
func (r *Resolver) Resolve(body *Body, poly *Polygon, vertices []mgl64.Vec2) []Contact {
	if r.Policy == ResolveFirst {
		return r.pass(body, poly, vertices, nil)
	}
	iterations := r.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	var contacts []Contact
	for i := 0; i < iterations; i++ {
		n := len(contacts)
		contacts = r.pass(body, poly, vertices, contacts)
		if len(contacts) == n {
			break
		}
	}
	return contacts
}

func (r *Resolver) pass(body *Body, poly *Polygon, vertices []mgl64.Vec2, contacts []Contact) []Contact {
	for i := range vertices {
		c, ok := r.Detect(body, poly, vertices, i)
		if !ok {
			continue
		}
		r.Apply(body, &c)
		contacts = append(contacts, c)
		if r.Policy == ResolveFirst {
			break
		}
	}
	return contacts
}

// Detect tests body against edge i (vertices[i] to vertices[i+1]). The normal
// comes from the edge winding, never from the separation vector, so a body
// sitting exactly on the wall still gets the inward direction.
func (r *Resolver) Detect(body *Body, poly *Polygon, vertices []mgl64.Vec2, i int) (Contact, bool) {
	a := vertices[i]
	b := vertices[(i+1)%len(vertices)]
	normal, ok := InwardNormal(a, b)
	if !ok {
		return Contact{}, false
	}
	closest, _, _ := ClosestPoint(a, b, body.Position)
	separation := body.Position.Sub(closest)
	distance := separation.Len()
	signed := separation.Dot(normal)

	// signed < 0: the center already crossed the wall line.
	if distance >= body.Radius-Epsilon && signed >= 0 {
		return Contact{}, false
	}
	penetration := body.Radius - signed
	if penetration <= Epsilon {
		return Contact{}, false
	}
	return Contact{
		Edge:         i,
		Point:        closest,
		Normal:       normal,
		Penetration:  penetration,
		WallVelocity: poly.WallVelocity(closest),
	}, true
}

// Apply bounces body off the contact in the wall's frame and moves it out of
// the wall. The velocity is only changed when the body approaches the wall.
func (r *Resolver) Apply(body *Body, c *Contact) {
	relative := body.Velocity.Sub(c.WallVelocity)
	vn := relative.Dot(c.Normal)
	c.ApproachSpeed = -vn
	if vn < 0 {
		normal := c.Normal.Mul(vn)
		tangent := relative.Sub(normal)
		body.Velocity = c.WallVelocity.
			Add(normal.Mul(-r.Material.Restitution)).
			Add(tangent.Mul(1 - r.Material.Friction))
		c.Bounced = true
	}

	overshoot := r.Material.Overshoot
	if overshoot < 1 {
		overshoot = 1
	}
	body.Position = body.Position.Add(c.Normal.Mul(c.Penetration * overshoot))
}
