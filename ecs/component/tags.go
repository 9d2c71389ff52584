package component

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type ItemTag struct{}

var ItemTagComponent = NewComponent[ItemTag]()

type GroundTag struct{}

var GroundTagComponent = NewComponent[GroundTag]()

// PrefabRef remembers which prefab built an entity so hot reload can find it.
type PrefabRef struct {
	Path string
}

var PrefabRefComponent = NewComponent[PrefabRef]()
