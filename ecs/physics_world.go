package ecs

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/evescroller/common"
)

// Collision categories. Actors collide with ground; ground queries only
// see ground.
const (
	CategoryGround uint = 1 << iota
	CategoryActor
)

const allCategories = ^uint(0)

// PhysicsWorld owns the Chipmunk space, the static level geometry and the
// dynamic actor bodies. The world is y-up in world units.
type PhysicsWorld struct {
	space   *cp.Space
	gravity float64

	bodies map[Entity]*cp.Body
	shapes map[Entity]*cp.Shape
}

// NewPhysicsWorld creates a space pulling down with the given magnitude.
func NewPhysicsWorld(gravity float64) *PhysicsWorld {
	pw := &PhysicsWorld{gravity: gravity}
	pw.Reset()
	return pw
}

// Reset drops every body and shape.
func (pw *PhysicsWorld) Reset() {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: -pw.gravity})
	pw.space = space
	pw.bodies = make(map[Entity]*cp.Body)
	pw.shapes = make(map[Entity]*cp.Shape)
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	return pw.space
}

func (pw *PhysicsWorld) Gravity() float64 { return pw.gravity }

// AddStatic adds a solid ground box.
func (pw *PhysicsWorld) AddStatic(r common.Rect) *cp.Shape {
	bb := cp.BB{L: r.MinX, B: r.MinY, R: r.MaxX, T: r.MaxY}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetFilter(cp.ShapeFilter{Categories: CategoryGround, Mask: allCategories})
	pw.space.AddShape(shape)
	return shape
}

// AddActorBody creates a non-rotating box body centred on pos. An existing
// body for e is replaced.
func (pw *PhysicsWorld) AddActorBody(e Entity, pos common.Vec2, width, height, mass float64) (*cp.Body, *cp.Shape) {
	pw.RemoveBody(e)
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	shape := cp.NewBox(body, width, height, 0)
	// horizontal speed is owned by the movement controller
	shape.SetFriction(0)
	shape.SetFilter(cp.ShapeFilter{Categories: CategoryActor, Mask: CategoryGround})

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.bodies[e] = body
	pw.shapes[e] = shape
	return body, shape
}

// Body returns the dynamic body registered for e.
func (pw *PhysicsWorld) Body(e Entity) (*cp.Body, bool) {
	b, ok := pw.bodies[e]
	return b, ok
}

// RemoveBody removes the body and shape registered for e, if any.
func (pw *PhysicsWorld) RemoveBody(e Entity) {
	if shape, ok := pw.shapes[e]; ok {
		pw.space.RemoveShape(shape)
		delete(pw.shapes, e)
	}
	if body, ok := pw.bodies[e]; ok {
		pw.space.RemoveBody(body)
		delete(pw.bodies, e)
	}
}

// GroundQuery reports whether any shape in mask lies within radius of
// point.
func (pw *PhysicsWorld) GroundQuery(point common.Vec2, radius float64, mask uint) bool {
	filter := cp.ShapeFilter{Categories: allCategories, Mask: mask}
	info := pw.space.PointQueryNearest(cp.Vector{X: point.X, Y: point.Y}, radius, filter)
	return info != nil && info.Shape != nil
}

// Step advances the simulation by dt seconds.
func (pw *PhysicsWorld) Step(dt float64) {
	if dt <= 0 {
		return
	}
	pw.space.Step(dt)
}
