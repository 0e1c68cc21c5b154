package game

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/rtsrig/engine/input"
	"github.com/memmaker/rtsrig/level"
)

func loadDemoSession(t *testing.T) *Session {
	t.Helper()
	def, err := level.Load("../levels/demo.yaml")
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSession(def, "../levels")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSessionRegistersBehavioursInFrameOrder(t *testing.T) {
	s := loadDemoSession(t)
	got := strings.Join(s.Loop.Names(), ",")
	if got != "pointer,robot.actor,robot.path,camera" {
		t.Fatalf("loop order = %s", got)
	}
}

func TestSessionActorStartsAfterWait(t *testing.T) {
	s := loadDemoSession(t)
	robot, _ := s.Registry.Find("robot")
	start := robot.Transform.GetPosition()
	animator, _ := s.Animator("robot")

	for i := 0; i < 240; i++ {
		s.Tick(frame)
	}
	if robot.Transform.GetPosition() != start {
		t.Fatalf("robot moved during its wait")
	}
	for i := 0; i < 180; i++ {
		s.Tick(frame)
	}
	if robot.Transform.GetPosition() == start || !animator.Bool(WalkAnimFlag) {
		t.Fatalf("robot should walk after the wait, at %v", robot.Transform.GetPosition())
	}
}

func TestSessionDoubleClickFollowsRobot(t *testing.T) {
	s := loadDemoSession(t)
	s.Tick(frame)

	robot, _ := s.Registry.Find("robot")
	x, y, ok := s.Camera.Lens().WorldToScreenPoint(s.Camera.Transform(), robot.Transform.GetPosition().Add(mgl32.Vec3{0, 1.5, 0}))
	if !ok {
		t.Fatalf("robot is behind the camera")
	}
	s.Input.Warp(x, y)
	s.Tick(frame)
	if s.Dispatcher.Hovered() != robot.Handle {
		t.Fatalf("pointer at (%0.1f, %0.1f) does not hover the robot", x, y)
	}

	s.Input.Press(input.ButtonPrimary)
	s.Tick(frame)
	s.Input.Release(input.ButtonPrimary)
	s.Tick(frame)
	s.Input.Press(input.ButtonPrimary)
	s.Tick(frame)

	if !s.Camera.HasTarget() || s.Camera.Target() != robot.Handle {
		t.Fatalf("double click should make the camera follow the robot")
	}
	if !strings.Contains(s.Status(), "following robot") {
		t.Errorf("status = %q", s.Status())
	}

	if !s.RemoveNode("robot") {
		t.Fatalf("robot not removed")
	}
	if s.Camera.HasTarget() {
		t.Errorf("camera still follows a removed node")
	}
	if got := strings.Join(s.Loop.Names(), ","); got != "pointer,camera" {
		t.Errorf("loop after removal = %s", got)
	}
	s.Tick(frame)
}

func TestSessionFollowByName(t *testing.T) {
	s := loadDemoSession(t)
	if err := s.Follow("nobody"); err == nil {
		t.Errorf("following an unknown node should fail")
	}
	if err := s.Follow("robot"); err != nil {
		t.Fatal(err)
	}
	if !s.Camera.HasTarget() {
		t.Fatalf("camera should follow the robot")
	}
	if err := s.Follow(""); err != nil || s.Camera.HasTarget() {
		t.Errorf("empty name should stop following")
	}
}

func TestSessionAppliesCameraSettings(t *testing.T) {
	s := loadDemoSession(t)
	spec := level.CameraSpec{
		Mask:       []string{"terrain"},
		BoundsSize: level.Vec2{50, 50},
		ZoomLimits: level.Vec2{10, 20},
	}
	if err := s.ApplyCameraSettings(spec); err != nil {
		t.Fatal(err)
	}
	if s.Camera.Bounds().Width != 50 {
		t.Errorf("bounds not updated: %+v", s.Camera.Bounds())
	}

	spec.Mask = []string{"water"}
	if err := s.ApplyCameraSettings(spec); err == nil {
		t.Errorf("unknown layer should be rejected")
	}
}

func TestSessionSnapshotDrawsGizmos(t *testing.T) {
	s := loadDemoSession(t)
	s.Tick(frame)
	img := s.Snapshot(2)
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 400 {
		t.Fatalf("snapshot size = %v", img.Bounds())
	}
	background := img.RGBAAt(0, 0)
	painted := 0
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			if img.RGBAAt(x, y) != background {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Errorf("snapshot contains no gizmos")
	}
}
