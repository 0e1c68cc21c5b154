package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/rtsrig/engine/input"
	"github.com/memmaker/rtsrig/engine/physics"
	"github.com/memmaker/rtsrig/engine/scene"
	"github.com/memmaker/rtsrig/engine/util"
)

const frame = 1.0 / 60.0

type switchableWorld struct {
	physics.Raycaster
	miss bool
}

func (s *switchableWorld) Raycast(ray physics.Ray, mask physics.LayerMask) (physics.Hit, bool) {
	if s.miss {
		return physics.Hit{}, false
	}
	return s.Raycaster.Raycast(ray, mask)
}

type cameraRig struct {
	camera   *RTSCamera
	input    *input.State
	registry *scene.Registry
	world    *switchableWorld
}

func defaultCameraSettings() RTSCameraSettings {
	return RTSCameraSettings{
		Mask:            physics.LayerTerrain,
		BoundsSize:      mgl32.Vec2{200, 200},
		ZoomSpeed:       1,
		ZoomTargetSpeed: 1,
		ZoomLimits:      mgl32.Vec2{10, 100},
		RotationSpeed:   1,
	}
}

func newCameraRig(settings RTSCameraSettings) *cameraRig {
	world := physics.NewWorld()
	world.Add(physics.NewGroundPlane(0), physics.LayerTerrain, scene.NoHandle)
	switchable := &switchableWorld{Raycaster: world}

	in := input.NewState()
	in.Warp(640, 360)
	registry := scene.NewRegistry()

	transform := util.NewTransformFromLookAt(mgl32.Vec3{0, 20, 20}, mgl32.Vec3{}, util.WorldUp)
	camera := NewRTSCamera(transform, NewLens(60, 1280, 720), settings, switchable, in, registry)
	camera.Start()
	return &cameraRig{camera: camera, input: in, registry: registry, world: switchable}
}

func (r *cameraRig) step() {
	r.input.BeginFrame(frame)
	r.camera.Update(frame)
	r.input.EndFrame()
}

func nearVec(a, b mgl32.Vec3, tolerance float32) bool {
	return a.ApproxEqualThreshold(b, tolerance)
}

func TestStartMeasuresZoomDistance(t *testing.T) {
	rig := newCameraRig(defaultCameraSettings())
	want := float32(20 * math.Sqrt2)
	if util.Abs(rig.camera.ZoomDistance()-want) > 1e-3 {
		t.Fatalf("zoom distance = %f, want %f", rig.camera.ZoomDistance(), want)
	}
}

func TestStartClampsOutOfRangeZoom(t *testing.T) {
	settings := defaultCameraSettings()
	settings.ZoomLimits = mgl32.Vec2{40, 100}
	rig := newCameraRig(settings)
	if rig.camera.ZoomDistance() != 40 {
		t.Fatalf("zoom distance = %f, want clamped 40", rig.camera.ZoomDistance())
	}
}

func TestZoomOutsideLimitsIsRejected(t *testing.T) {
	for _, scroll := range []float32{20, -80} {
		rig := newCameraRig(defaultCameraSettings())
		before := rig.camera.Transform().GetPosition()
		zoom := rig.camera.ZoomDistance()

		rig.input.Scroll(scroll)
		rig.step()

		if after := rig.camera.Transform().GetPosition(); after != before {
			t.Errorf("scroll %v moved the camera from %v to %v", scroll, before, after)
		}
		if rig.camera.ZoomDistance() != zoom {
			t.Errorf("scroll %v changed zoom distance to %f", scroll, rig.camera.ZoomDistance())
		}
	}
}

func TestZoomTowardsPointer(t *testing.T) {
	rig := newCameraRig(defaultCameraSettings())

	rig.input.Scroll(1)
	rig.step()

	if pos := rig.camera.Transform().GetPosition(); !nearVec(pos, mgl32.Vec3{0, 10, 10}, 1e-3) {
		t.Fatalf("camera position = %v, want (0, 10, 10)", pos)
	}
	want := float32(10 * math.Sqrt2)
	if util.Abs(rig.camera.ZoomDistance()-want) > 1e-3 {
		t.Errorf("zoom distance = %f, want %f", rig.camera.ZoomDistance(), want)
	}
	if viewport := rig.camera.Viewport(); util.Abs(viewport.Center().X()) > 1e-3 || util.Abs(viewport.Center().Z()) > 1e-3 {
		t.Errorf("viewport not centered after zoom: %v", viewport)
	}
}

func TestZoomWhileFollowingMovesAlongForward(t *testing.T) {
	rig := newCameraRig(defaultCameraSettings())
	robot := rig.registry.Spawn("robot", util.NewTransform(mgl32.Vec3{5, 0, -5}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}))
	rig.camera.SetTarget(robot.Handle)
	before := rig.camera.Transform().GetPosition()
	forward := rig.camera.Transform().GetForward()

	rig.input.Scroll(5)
	rig.step()

	want := before.Add(forward.Mul(5))
	if pos := rig.camera.Transform().GetPosition(); !nearVec(pos, want, 1e-3) {
		t.Fatalf("zoom while following moved the camera to %v, want %v", pos, want)
	}
	wantZoom := float32(20*math.Sqrt2) - 5
	if util.Abs(rig.camera.ZoomDistance()-wantZoom) > 1e-3 {
		t.Errorf("zoom distance = %f, want %f", rig.camera.ZoomDistance(), wantZoom)
	}
	if !rig.camera.HasTarget() {
		t.Fatalf("zooming must not drop the follow target")
	}

	robot.Transform.SetPosition(mgl32.Vec3{10, 0, -5})
	rig.step()
	tracked := mgl32.Vec3{want.X() + 5, want.Y(), want.Z()}
	if pos := rig.camera.Transform().GetPosition(); !nearVec(pos, tracked, 1e-3) {
		t.Errorf("camera after target moved = %v, want %v", pos, tracked)
	}

	beforeReject := rig.camera.Transform().GetPosition()
	rig.input.Scroll(-80)
	rig.step()
	if pos := rig.camera.Transform().GetPosition(); !nearVec(pos, beforeReject, 1e-3) {
		t.Errorf("rejected zoom while following moved the camera to %v", pos)
	}
}

func TestZoomRejectedWhenMovedPositionLeavesLimits(t *testing.T) {
	rig := newCameraRig(defaultCameraSettings())
	before := rig.camera.Transform().GetPosition()
	zoom := rig.camera.ZoomDistance()

	// forward*1.5 stays at 26.8, the pointer anchored move ends at 7.1
	rig.input.Scroll(1.5)
	rig.step()

	if pos := rig.camera.Transform().GetPosition(); pos != before {
		t.Errorf("camera moved to %v although the zoomed position is below the min limit", pos)
	}
	if rig.camera.ZoomDistance() != zoom {
		t.Errorf("zoom distance changed to %f", rig.camera.ZoomDistance())
	}
}

func TestTinyScrollIsIgnored(t *testing.T) {
	rig := newCameraRig(defaultCameraSettings())
	before := rig.camera.Transform().GetPosition()
	rig.input.Scroll(0.005)
	rig.step()
	if rig.camera.Transform().GetPosition() != before {
		t.Errorf("scroll inside the deadzone moved the camera")
	}
}

func TestPanningKeepsViewportInsideBounds(t *testing.T) {
	settings := defaultCameraSettings()
	settings.BoundsSize = mgl32.Vec2{60, 60}
	rig := newCameraRig(settings)
	start := rig.camera.Transform().GetPosition()

	rig.input.Press(input.ButtonMiddle)
	rig.step()
	if !rig.camera.IsPanning() {
		t.Fatalf("middle button should start panning")
	}

	bounds := rig.camera.Bounds()
	const tolerance = 1e-3
	for i := 0; i < 120; i++ {
		x := 640 + 600*math.Sin(float64(i)*0.3)
		y := 360 + 300*math.Cos(float64(i)*0.2)
		rig.input.MoveTo(x, y)
		rig.step()

		viewport, ok := rig.camera.ComputeViewport()
		if !ok {
			t.Fatalf("frame %d: viewport could not be computed", i)
		}
		if viewport.X < bounds.X-tolerance || viewport.X+viewport.Width > bounds.MaxX()+tolerance ||
			viewport.Z < bounds.Z-tolerance || viewport.Z+viewport.Depth > bounds.MaxZ()+tolerance {
			t.Fatalf("frame %d: %v left bounds %v", i, viewport, bounds)
		}
	}

	if rig.camera.Transform().GetPosition() == start {
		t.Errorf("panning never moved the camera")
	}
	if rig.camera.Transform().GetPosition().Y() != start.Y() {
		t.Errorf("panning changed the camera height")
	}

	rig.input.Release(input.ButtonMiddle)
	rig.step()
	if rig.camera.IsPanning() {
		t.Errorf("releasing the middle button should stop panning")
	}
}

func TestFollowSnapsAndTracksTarget(t *testing.T) {
	rig := newCameraRig(defaultCameraSettings())
	robot := rig.registry.Spawn("robot", util.NewTransform(mgl32.Vec3{5, 0, -5}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}))

	rig.camera.SetTarget(robot.Handle)
	if !rig.camera.HasTarget() {
		t.Fatalf("camera should follow the robot")
	}
	if pos := rig.camera.Transform().GetPosition(); !nearVec(pos, mgl32.Vec3{5, 20, 15}, 1e-3) {
		t.Fatalf("snap position = %v, want (5, 20, 15)", pos)
	}

	robot.Transform.SetPosition(mgl32.Vec3{10, 0, -5})
	rig.step()
	if pos := rig.camera.Transform().GetPosition(); !nearVec(pos, mgl32.Vec3{10, 20, 15}, 1e-3) {
		t.Fatalf("follow position = %v, want (10, 20, 15)", pos)
	}

	rig.camera.SetTarget(scene.NoHandle)
	robot.Transform.SetPosition(mgl32.Vec3{30, 0, -5})
	rig.step()
	if rig.camera.HasTarget() {
		t.Errorf("SetTarget(NoHandle) should stop following")
	}
	if pos := rig.camera.Transform().GetPosition(); !nearVec(pos, mgl32.Vec3{10, 20, 15}, 1e-3) {
		t.Errorf("camera moved after follow stopped: %v", pos)
	}
}

func TestPanningCancelsFollow(t *testing.T) {
	rig := newCameraRig(defaultCameraSettings())
	robot := rig.registry.Spawn("robot", util.NewTransform(mgl32.Vec3{5, 0, -5}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}))
	rig.camera.SetTarget(robot.Handle)

	rig.input.Press(input.ButtonMiddle)
	rig.step()

	if rig.camera.HasTarget() || rig.camera.Target() != scene.NoHandle {
		t.Errorf("middle press should clear the follow target")
	}
}

func TestRemovedTargetStopsFollow(t *testing.T) {
	rig := newCameraRig(defaultCameraSettings())
	robot := rig.registry.Spawn("robot", util.NewTransform(mgl32.Vec3{5, 0, -5}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}))
	rig.camera.SetTarget(robot.Handle)
	before := rig.camera.Transform().GetPosition()

	rig.registry.Remove(robot.Handle)
	rig.step()

	if rig.camera.HasTarget() || rig.camera.Target() != scene.NoHandle {
		t.Errorf("follow state should be cleared once the target is gone")
	}
	if rig.camera.Transform().GetPosition() != before {
		t.Errorf("camera moved towards a removed target")
	}
}

func TestRemovalListenerClearsTarget(t *testing.T) {
	rig := newCameraRig(defaultCameraSettings())
	rig.registry.OnRemove(rig.camera.OnNodeRemoved)
	robot := rig.registry.Spawn("robot", nil)
	rig.camera.SetTarget(robot.Handle)

	rig.registry.Remove(robot.Handle)
	if rig.camera.HasTarget() {
		t.Errorf("removal listener should clear the target")
	}
}

func TestPointerMissSkipsFrame(t *testing.T) {
	rig := newCameraRig(defaultCameraSettings())
	before := rig.camera.Transform().GetPosition()

	rig.world.miss = true
	rig.input.Scroll(1)
	rig.input.Press(input.ButtonMiddle)
	rig.step()

	if rig.camera.Transform().GetPosition() != before {
		t.Errorf("camera moved without a pointer hit")
	}
	if _, ok := rig.camera.PointerHit(); ok {
		t.Errorf("pointer hit should be cleared")
	}
	if rig.camera.IsPanning() {
		t.Errorf("panning must not start without a ground point")
	}
}

func TestRotationOrbitsAroundViewCenter(t *testing.T) {
	rig := newCameraRig(defaultCameraSettings())
	pivotDistance := rig.camera.Transform().GetPosition().Len()

	rig.input.Press(input.ButtonSecondary)
	rig.input.MoveTo(700, 360)
	rig.step()
	if !rig.camera.IsRotating() {
		t.Fatalf("secondary button should start rotating")
	}
	for i := 0; i < 10; i++ {
		rig.input.MoveTo(700+float64(i)*10, 360)
		rig.step()
	}

	pos := rig.camera.Transform().GetPosition()
	if util.Abs(pos.Len()-pivotDistance) > 1e-2 {
		t.Errorf("distance to pivot changed from %f to %f", pivotDistance, pos.Len())
	}
	if util.Abs(pos.Y()-20) > 1e-3 {
		t.Errorf("rotation changed the camera height to %f", pos.Y())
	}
	if util.Abs(pos.X()) < 1 {
		t.Errorf("camera did not orbit: %v", pos)
	}

	rig.input.Release(input.ButtonSecondary)
	rig.step()
	if rig.camera.IsRotating() {
		t.Errorf("releasing the secondary button should stop rotating")
	}
}
