package input

import "testing"

func TestButtonEdgesLastOneFrame(t *testing.T) {
	s := NewState()
	s.BeginFrame(0.016)
	s.Press(ButtonMiddle)
	if !s.ButtonDown(ButtonMiddle) || !s.ButtonHeld(ButtonMiddle) {
		t.Fatalf("press not visible in the same frame")
	}
	s.EndFrame()

	s.BeginFrame(0.016)
	if s.ButtonDown(ButtonMiddle) {
		t.Errorf("down edge leaked into the next frame")
	}
	if !s.ButtonHeld(ButtonMiddle) {
		t.Errorf("button should still be held")
	}
	s.Release(ButtonMiddle)
	if !s.ButtonUp(ButtonMiddle) || s.ButtonHeld(ButtonMiddle) {
		t.Errorf("release not reported")
	}
	s.EndFrame()
	if s.ButtonUp(ButtonMiddle) {
		t.Errorf("up edge leaked past EndFrame")
	}
}

func TestAxisAndScrollAreFrameDeltas(t *testing.T) {
	s := NewState()
	s.Warp(100, 100)
	s.BeginFrame(0.5)
	s.MoveTo(110, 90)
	s.MoveTo(130, 95)
	s.Scroll(1)
	s.Scroll(0.5)

	if got := s.Axis(AxisMouseX); got != 3 {
		t.Errorf("Mouse X = %v, want 3", got)
	}
	if got := s.Axis(AxisMouseY); got != 0.5 {
		t.Errorf("Mouse Y = %v, want 0.5", got)
	}
	if s.ScrollDelta() != 1.5 {
		t.Errorf("scroll = %v", s.ScrollDelta())
	}
	s.EndFrame()
	if s.Axis(AxisMouseX) != 0 || s.ScrollDelta() != 0 {
		t.Errorf("deltas must reset at EndFrame")
	}
	s.BeginFrame(0.25)
	if s.Time() != 0.75 || s.DeltaTime() != 0.25 {
		t.Errorf("clock = %v / %v", s.Time(), s.DeltaTime())
	}
}
