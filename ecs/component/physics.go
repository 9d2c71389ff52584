package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Sizes are world units; the collider is centred on the transform.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	// Sensor shapes report overlaps without producing contacts.
	Sensor bool
	// FixedRotation keeps dynamic bodies upright.
	FixedRotation bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// ZoneContact is rewritten by the physics step for items overlapping a
// placement zone sensor. Entered is set on the first step of an overlap,
// Staying on every step the overlap persists.
type ZoneContact struct {
	Entered bool
	Staying bool
}

func (z ZoneContact) Overlapping() bool {
	return z.Entered || z.Staying
}

var ZoneContactComponent = NewComponent[ZoneContact]()
