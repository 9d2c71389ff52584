package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shelfsort/ecs"
	"github.com/milk9111/shelfsort/ecs/component"
)

const (
	collisionTypeItem cp.CollisionType = iota + 1
	collisionTypeZone
	collisionTypeSolid
)

// Gravity is world gravity in units per second squared, Y up.
var Gravity = cp.Vector{X: 0, Y: -9.81}

const defaultStep = 1.0 / 60.0

type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	contacts map[ecs.Entity]*component.ZoneContact
}

type bodyInfo struct {
	body    *cp.Body
	shape   *cp.Shape
	static  bool
	gravity *component.GravityScale
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(Gravity)
	return &PhysicsSystem{
		space:    space,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
		contacts: make(map[ecs.Entity]*component.ZoneContact),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)

	clear(ps.contacts)

	dt := w.DeltaTime()
	if dt <= 0 {
		dt = defaultStep
	}
	ps.space.Step(dt)

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

// Sync creates bodies for new entities without stepping the simulation.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.syncEntities(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	zoneHandler := ps.space.NewCollisionHandler(collisionTypeItem, collisionTypeZone)
	zoneHandler.UserData = ps
	zoneHandler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		if sys, ok := userData.(*PhysicsSystem); ok {
			sys.markContact(arb, true)
		}
		return true
	}
	zoneHandler.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		if sys, ok := userData.(*PhysicsSystem); ok {
			sys.markContact(arb, false)
		}
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) markContact(arb *cp.Arbiter, entered bool) {
	// Shapes come back in handler order: item first, zone second.
	shapeA, _ := arb.Shapes()
	item, ok := ps.shapes[shapeA]
	if !ok {
		return
	}

	st := ps.contacts[item]
	if st == nil {
		st = &component.ZoneContact{}
		ps.contacts[item] = st
	}
	if entered {
		st.Entered = true
	} else {
		st.Staying = true
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		info := ps.entities[e]
		if info == nil {
			info = ps.createBodyInfo(w, e, transform, bodyComp)
			if info == nil {
				return
			}
			ps.entities[e] = info
			ps.shapes[info.shape] = e
		}

		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
		info.gravity, _ = ecs.Get(w, e, component.GravityScaleComponent.Kind())
	})
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width = 1
		height = 1
	}

	isItem := ecs.Has(w, e, component.ItemTagComponent.Kind())
	isZone := ecs.Has(w, e, component.PlacementZoneComponent.Kind())

	category := component.LayerItem
	mask := ^uint32(0)
	switch {
	case isZone:
		category = component.LayerPlacement
	case ecs.Has(w, e, component.GroundTagComponent.Kind()):
		category = component.LayerGround
	}
	if layer, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
		if layer.Category != 0 {
			category = layer.Category
		}
		if layer.Mask != 0 {
			mask = layer.Mask
		}
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, uint(category), uint(mask))

	collisionType := collisionTypeSolid
	switch {
	case isItem:
		collisionType = collisionTypeItem
	case isZone:
		collisionType = collisionTypeZone
	}

	info := &bodyInfo{static: bodyComp.Static}

	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: transform.X, Y: transform.Y})
		} else {
			bb := cp.BB{
				L: transform.X - width/2,
				B: transform.Y - height/2,
				R: transform.X + width/2,
				T: transform.Y + height/2,
			}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetSensor(bodyComp.Sensor)
		shape.SetCollisionType(collisionType)
		shape.SetFilter(filter)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.shape = shape
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	moment := math.Inf(1)
	if !bodyComp.FixedRotation {
		if radius > 0 {
			moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
		} else {
			moment = cp.MomentForBox(mass, width, height)
		}
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
		scale := 1.0
		if info.gravity != nil {
			scale = info.gravity.Scale
		}
		cp.BodyUpdateVelocity(b, gravity.Mult(scale), damping, dt)
	})

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetSensor(bodyComp.Sensor)
	shape.SetCollisionType(collisionType)
	shape.SetFilter(filter)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.shape = shape
	return info
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Static || bodyComp.Body == nil {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	ecs.ForEach(w, component.ZoneContactComponent.Kind(), func(e ecs.Entity, zc *component.ZoneContact) {
		if st, ok := ps.contacts[e]; ok {
			*zc = *st
			return
		}
		*zc = component.ZoneContact{}
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.shapes, info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
		delete(ps.contacts, e)
	}
}

// QueryNearest returns the entity whose shape, filtered to the categories in
// mask, lies closest to (x, y) within radius. Sensors are included.
func (ps *PhysicsSystem) QueryNearest(x, y, radius float64, mask uint32) (ecs.Entity, bool) {
	if ps == nil || ps.space == nil {
		return 0, false
	}
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: uint(mask)}

	var hit ecs.Entity
	best := math.Inf(1)
	ps.space.PointQuery(cp.Vector{X: x, Y: y}, radius, filter, func(shape *cp.Shape, _ cp.Vector, distance float64, _ cp.Vector, _ interface{}) {
		e, ok := ps.shapes[shape]
		if !ok {
			return
		}
		if distance < best || (distance == best && e < hit) {
			best = distance
			hit = e
		}
	}, nil)
	return hit, hit.Valid()
}

// QueryPoint returns every entity whose shape in mask contains (x, y).
func (ps *PhysicsSystem) QueryPoint(x, y float64, mask uint32) []ecs.Entity {
	if ps == nil || ps.space == nil {
		return nil
	}
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: uint(mask)}

	var out []ecs.Entity
	ps.space.PointQuery(cp.Vector{X: x, Y: y}, 0, filter, func(shape *cp.Shape, _ cp.Vector, _ float64, _ cp.Vector, _ interface{}) {
		if e, ok := ps.shapes[shape]; ok {
			out = append(out, e)
		}
	}, nil)
	return out
}
