package component

type ZoneKind string

const (
	// ZoneShelf pulls items halfway toward the shelf centre.
	ZoneShelf ZoneKind = "shelf"
	// ZoneGeneric keeps items where they were dropped.
	ZoneGeneric ZoneKind = "generic"
)

// PlacementZone is a box, centred on its transform, that items settle into.
type PlacementZone struct {
	Kind   ZoneKind
	Width  float64
	Height float64
}

// Bounds returns the zone box around centre (cx, cy).
func (z PlacementZone) Bounds(cx, cy float64) (minX, minY, maxX, maxY float64) {
	hw, hh := z.Width/2, z.Height/2
	return cx - hw, cy - hh, cx + hw, cy + hh
}

var PlacementZoneComponent = NewComponent[PlacementZone]()
