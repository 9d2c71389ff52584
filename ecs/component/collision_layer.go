package component

// Collision categories used by shape filters and layered queries.
const (
	LayerItem      uint32 = 1 << 0
	LayerPlacement uint32 = 1 << 1
	LayerGround    uint32 = 1 << 2
)

// CollisionLayer allows entities to declare a collision category and mask
// so the physics system can selectively enable/disable collisions between
// groups of objects.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category. If zero,
	// the physics system will treat it as LayerItem.
	Category uint32
	// Mask is a bitmask of categories this entity should collide with. If
	// zero, the physics system will treat it as all-bits set (collide with all).
	Mask uint32
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
