package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/character"
	"github.com/milk9111/charcontrol/common"
	gameplay "github.com/milk9111/charcontrol/component"
	"go.uber.org/zap"
)

// Collision categories. Player and enemy bodies never collide with each
// other; contact between them is detected by overlap queries instead.
const (
	CategoryGround uint = 1 << iota
	CategoryPlayer
	CategoryEnemy
	CategoryProjectile
)

const defaultIterations = 20

// PhysicsWorld owns the Chipmunk space. World units are y-up.
type PhysicsWorld struct {
	space *cp.Space
	log   *zap.Logger

	static []*cp.Shape
}

// NewPhysicsWorld creates an empty space with world gravity pointing down.
func NewPhysicsWorld(logger *zap.Logger) *PhysicsWorld {
	if logger == nil {
		logger = zap.NewNop()
	}
	space := cp.NewSpace()
	space.Iterations = defaultIterations
	space.SetGravity(cp.Vector{X: 0, Y: -common.Gravity})
	return &PhysicsWorld{space: space, log: logger}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// AddStaticBox adds a solid, ground-category rectangle.
func (pw *PhysicsWorld) AddStaticBox(bb cp.BB, friction float64) *cp.Shape {
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFriction(friction)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryGround, cp.ALL_CATEGORIES))
	pw.space.AddShape(shape)
	pw.static = append(pw.static, shape)
	return shape
}

// AddBounds encloses bb with four thin walls.
func (pw *PhysicsWorld) AddBounds(bb cp.BB) {
	segments := [][2]cp.Vector{
		{{X: bb.L, Y: bb.B}, {X: bb.R, Y: bb.B}},
		{{X: bb.L, Y: bb.T}, {X: bb.R, Y: bb.T}},
		{{X: bb.L, Y: bb.B}, {X: bb.L, Y: bb.T}},
		{{X: bb.R, Y: bb.B}, {X: bb.R, Y: bb.T}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(pw.space.StaticBody, seg[0], seg[1], 0.1)
		shape.SetFriction(0)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryGround, cp.ALL_CATEGORIES))
		pw.space.AddShape(shape)
		pw.static = append(pw.static, shape)
	}
}

// ClearStatic removes every static shape, used when a level is reloaded.
func (pw *PhysicsWorld) ClearStatic() {
	for _, shape := range pw.static {
		pw.space.RemoveShape(shape)
	}
	pw.static = nil
}

// BodySpec describes a dynamic box body.
type BodySpec struct {
	Position     cp.Vector
	Size         cp.Vector
	Mass         float64
	Friction     float64
	GravityScale float64
	Category     uint
	Mask         uint
	// UserData is attached to the shape so overlap queries can map back to
	// gameplay objects.
	UserData any
}

// Body adapts a Chipmunk body to character.Body. Rotation is locked and
// gravity is multiplied by a per-body scale.
type Body struct {
	space        *cp.Space
	body         *cp.Body
	shape        *cp.Shape
	size         cp.Vector
	gravityScale float64
	removed      bool
}

var _ character.Body = (*Body)(nil)

// AddBody creates a dynamic box and adds it to the space.
func (pw *PhysicsWorld) AddBody(spec BodySpec) *Body {
	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}
	size := spec.Size
	if size.X <= 0 || size.Y <= 0 {
		size = cp.Vector{X: 1, Y: 1}
	}
	mask := spec.Mask
	if mask == 0 {
		mask = CategoryGround
	}

	b := &Body{space: pw.space, size: size, gravityScale: spec.GravityScale}
	b.body = cp.NewBody(mass, math.Inf(1))
	b.body.SetPosition(spec.Position)
	b.body.UserData = spec.UserData
	b.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(body, gravity.Mult(b.gravityScale), damping, dt)
	})

	b.shape = cp.NewBox(b.body, size.X, size.Y, 0)
	b.shape.SetFriction(spec.Friction)
	b.shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, spec.Category, mask))
	b.shape.UserData = spec.UserData

	pw.space.AddBody(b.body)
	pw.space.AddShape(b.shape)
	return b
}

// RemoveBody takes b out of the space. It is safe to call twice.
func (pw *PhysicsWorld) RemoveBody(b *Body) {
	b.Remove()
}

// Remove takes the body out of the space it was added to. Calling it again
// is a no-op.
func (b *Body) Remove() {
	if b == nil || b.body == nil || b.removed {
		return
	}
	b.space.RemoveShape(b.shape)
	b.space.RemoveBody(b.body)
	b.removed = true
}

// Removed reports whether Remove has run.
func (b *Body) Removed() bool { return b == nil || b.removed }

func (b *Body) Position() cp.Vector { return b.body.Position() }

func (b *Body) SetPosition(p cp.Vector) {
	b.body.SetPosition(p)
	b.shape.CacheBB()
}

func (b *Body) Velocity() cp.Vector       { return b.body.Velocity() }
func (b *Body) SetVelocity(v cp.Vector)   { b.body.SetVelocityVector(v) }
func (b *Body) GravityScale() float64     { return b.gravityScale }
func (b *Body) SetGravityScale(s float64) { b.gravityScale = s }
func (b *Body) Size() cp.Vector           { return b.size }
func (b *Body) CP() *cp.Body              { return b.body }
func (b *Body) Shape() *cp.Shape          { return b.shape }

// BB is the body's current axis-aligned box.
func (b *Body) BB() cp.BB {
	return cp.NewBBForExtents(b.body.Position(), b.size.X/2, b.size.Y/2)
}

// ApplyImpulse pushes the body through its center.
func (b *Body) ApplyImpulse(impulse cp.Vector) {
	b.body.ApplyImpulseAtWorldPoint(impulse, b.body.Position())
}

// GroundProbe casts three short rays down from a body's feet against ground
// geometry. It implements character.GroundSensor.
type GroundProbe struct {
	space     *cp.Space
	body      *Body
	halfWidth float64
	depth     float64
}

var _ character.GroundSensor = (*GroundProbe)(nil)

var groundFilter = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, CategoryGround)

// NewGroundProbe places rays at the center and at ±halfWidth. depth is how
// far below the feet a surface still counts as ground.
func (pw *PhysicsWorld) NewGroundProbe(b *Body, halfWidth, depth float64) *GroundProbe {
	if depth <= 0 {
		depth = 0.2
	}
	return &GroundProbe{space: pw.space, body: b, halfWidth: halfWidth, depth: depth}
}

func (g *GroundProbe) Grounded() bool {
	if g == nil || g.body == nil {
		return false
	}
	p := g.body.Position()
	feet := p.Y - g.body.size.Y/2
	for _, dx := range [...]float64{0, g.halfWidth, -g.halfWidth} {
		start := cp.Vector{X: p.X + dx, Y: p.Y}
		end := cp.Vector{X: p.X + dx, Y: feet - g.depth}
		if hit := g.space.SegmentQueryFirst(start, end, 0, groundFilter); hit.Shape != nil {
			return true
		}
	}
	return false
}

// Overlapping returns the shapes whose boxes intersect bb and whose category
// is in mask.
func (pw *PhysicsWorld) Overlapping(bb cp.BB, mask uint) []*cp.Shape {
	var out []*cp.Shape
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)
	pw.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		out = append(out, shape)
	}, nil)
	return out
}

// OverlapBox implements character.TargetQuery over enemy shapes.
func (pw *PhysicsWorld) OverlapBox(center, size cp.Vector) []gameplay.Target {
	bb := cp.NewBBForExtents(center, size.X/2, size.Y/2)
	return pw.Targets(bb, CategoryEnemy)
}

// Targets maps overlapping shapes back to their gameplay targets, each at
// most once.
func (pw *PhysicsWorld) Targets(bb cp.BB, mask uint) []gameplay.Target {
	var out []gameplay.Target
	seen := map[gameplay.Target]struct{}{}
	for _, shape := range pw.Overlapping(bb, mask) {
		t, ok := shape.UserData.(gameplay.Target)
		if !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

var _ character.TargetQuery = (*PhysicsWorld)(nil)
