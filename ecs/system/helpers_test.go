package system

import (
	"testing"

	"github.com/milk9111/shelfsort/ecs"
	"github.com/milk9111/shelfsort/ecs/component"
	"github.com/stretchr/testify/require"
)

const (
	testViewportW = 1280.0
	testViewportH = 720.0
	testPPU       = 64.0
	testDT        = 1.0 / 60.0
)

// scene is a small world: a camera with a scroll controller and a pointer,
// a 40 unit wide background, and whatever items and zones a test adds.
type scene struct {
	w       *ecs.World
	camera  ecs.Entity
	input   *ScriptedSource
	physics *PhysicsSystem
	drag    *DragSystem
	sched   *ecs.Scheduler
}

func newScene(t *testing.T, modality component.PointerModality) *scene {
	t.Helper()
	w := ecs.NewWorld()

	cam := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{Z: -10, ScaleX: 1, ScaleY: 1}))
	require.NoError(t, ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{
		PixelsPerUnit:  testPPU,
		Zoom:           1,
		ViewportWidth:  testViewportW,
		ViewportHeight: testViewportH,
	}))
	require.NoError(t, ecs.Add(w, cam, component.ScrollControllerComponent.Kind(), &component.ScrollController{
		DesktopScrollSpeed: component.DefaultDesktopScrollSpeed,
		MobileScrollSpeed:  component.DefaultMobileScrollSpeed,
	}))
	require.NoError(t, ecs.Add(w, cam, component.PointerComponent.Kind(), &component.Pointer{}))

	bg := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, bg, component.BackgroundComponent.Kind(), &component.Background{Width: 40}))

	s := &scene{w: w, camera: cam, input: &ScriptedSource{Modality: modality}}
	s.physics = NewPhysicsSystem()
	s.drag = NewDragSystem(s.physics)
	s.sched = ecs.NewScheduler(
		NewInputSystem(s.input),
		s.drag,
		NewScrollSystem(),
		NewTweenSystem(),
		s.physics,
		NewPlacementSystem(s.physics),
		NewAudioSystem(),
	)
	return s
}

func (s *scene) addItem(t *testing.T, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(s.w)
	require.NoError(t, ecs.Add(s.w, e, component.ItemTagComponent.Kind(), &component.ItemTag{}))
	require.NoError(t, ecs.Add(s.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}))
	require.NoError(t, ecs.Add(s.w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 1, Height: 1, Mass: 1, FixedRotation: true}))
	require.NoError(t, ecs.Add(s.w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 0}))
	require.NoError(t, ecs.Add(s.w, e, component.DraggableComponent.Kind(), component.NewDraggable()))
	require.NoError(t, ecs.Add(s.w, e, component.ZoneContactComponent.Kind(), &component.ZoneContact{}))
	require.NoError(t, ecs.Add(s.w, e, component.TweenComponent.Kind(), &component.Tween{}))
	return e
}

func (s *scene) addZone(t *testing.T, kind component.ZoneKind, x, y, width, height float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(s.w)
	require.NoError(t, ecs.Add(s.w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}))
	require.NoError(t, ecs.Add(s.w, e, component.PlacementZoneComponent.Kind(), &component.PlacementZone{Kind: kind, Width: width, Height: height}))
	require.NoError(t, ecs.Add(s.w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: width, Height: height, Static: true, Sensor: true}))
	return e
}

// step runs one frame. Bodies for new entities exist before the frame
// starts, as they do after the game loads a level.
func (s *scene) step() {
	s.physics.Sync(s.w)
	s.sched.Update(s.w, testDT)
}

// run runs frames until the scripted input is drained, then n more.
func (s *scene) run(n int) {
	for s.input.Pending() > 0 {
		s.step()
	}
	for i := 0; i < n; i++ {
		s.step()
	}
}

// screenOf maps a world point to screen pixels for the camera at rest.
func (s *scene) screenOf(t *testing.T, x, y float64) (float64, float64) {
	t.Helper()
	_, cam, camT, ok := findCamera(s.w)
	require.True(t, ok)
	return WorldToScreen(cam, camT, x, y)
}

func (s *scene) transform(t *testing.T, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(s.w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	return tr
}

func (s *scene) draggable(t *testing.T, e ecs.Entity) *component.Draggable {
	t.Helper()
	d, ok := ecs.Get(s.w, e, component.DraggableComponent.Kind())
	require.True(t, ok)
	return d
}

func (s *scene) scroll(t *testing.T) *component.ScrollController {
	t.Helper()
	sc, ok := ecs.Get(s.w, s.camera, component.ScrollControllerComponent.Kind())
	require.True(t, ok)
	return sc
}

func (s *scene) gravity(t *testing.T, e ecs.Entity) float64 {
	t.Helper()
	g, ok := ecs.Get(s.w, e, component.GravityScaleComponent.Kind())
	require.True(t, ok)
	return g.Scale
}
