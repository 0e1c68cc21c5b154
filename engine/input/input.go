// Package input keeps the per-frame pointer state that behaviours poll.
// The host feeds it from window callbacks, tests feed it directly.
package input

import (
	"fmt"

	"github.com/memmaker/rtsrig/engine/util"
)

type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
	buttonCount
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "Primary"
	case ButtonSecondary:
		return "Secondary"
	case ButtonMiddle:
		return "Middle"
	}
	return "Unknown"
}

const (
	AxisMouseX = "Mouse X"
	AxisMouseY = "Mouse Y"
)

// AxisSensitivity scales raw pixel deltas into axis units.
const AxisSensitivity = 0.1

type Reader interface {
	PointerPosition() (float64, float64)
	ScrollDelta() float32
	// ButtonDown is true only during the frame the button went down.
	ButtonDown(b Button) bool
	// ButtonUp is true only during the frame the button was released.
	ButtonUp(b Button) bool
	ButtonHeld(b Button) bool
	Axis(name string) float32
	// Time is the accumulated game time in seconds.
	Time() float64
	DeltaTime() float64
}

type State struct {
	x, y      float64
	lastX     float64
	lastY     float64
	moved     bool
	scroll    float32
	held      [buttonCount]bool
	down      [buttonCount]bool
	up        [buttonCount]bool
	time      float64
	deltaTime float64
}

func NewState() *State {
	return &State{}
}

func (s *State) MoveTo(x, y float64) {
	if !s.moved {
		s.lastX, s.lastY = s.x, s.y
		s.moved = true
	}
	s.x, s.y = x, y
}

// Warp places the pointer without producing axis movement.
func (s *State) Warp(x, y float64) {
	s.x, s.y = x, y
	s.lastX, s.lastY = x, y
}

func (s *State) Scroll(dy float32) {
	s.scroll += dy
}

func (s *State) Press(b Button) {
	if b < 0 || b >= buttonCount || s.held[b] {
		return
	}
	s.held[b] = true
	s.down[b] = true
	util.LogInputDebug(fmt.Sprintf("[Input] %s pressed at (%0.1f, %0.1f)", b, s.x, s.y))
}

func (s *State) Release(b Button) {
	if b < 0 || b >= buttonCount || !s.held[b] {
		return
	}
	s.held[b] = false
	s.up[b] = true
	util.LogInputDebug(fmt.Sprintf("[Input] %s released at (%0.1f, %0.1f)", b, s.x, s.y))
}

// BeginFrame advances the clock. Call it once before the frame's updates.
func (s *State) BeginFrame(deltaTime float64) {
	s.deltaTime = deltaTime
	s.time += deltaTime
}

// EndFrame clears edges and per-frame deltas. Call it after the updates.
func (s *State) EndFrame() {
	for i := range s.down {
		s.down[i] = false
		s.up[i] = false
	}
	s.scroll = 0
	s.lastX, s.lastY = s.x, s.y
	s.moved = false
}

func (s *State) PointerPosition() (float64, float64) {
	return s.x, s.y
}

func (s *State) ScrollDelta() float32 {
	return s.scroll
}

func (s *State) ButtonDown(b Button) bool {
	return b >= 0 && b < buttonCount && s.down[b]
}

func (s *State) ButtonUp(b Button) bool {
	return b >= 0 && b < buttonCount && s.up[b]
}

func (s *State) ButtonHeld(b Button) bool {
	return b >= 0 && b < buttonCount && s.held[b]
}

func (s *State) Axis(name string) float32 {
	if !s.moved {
		return 0
	}
	switch name {
	case AxisMouseX:
		return float32(s.x-s.lastX) * AxisSensitivity
	case AxisMouseY:
		return float32(s.lastY-s.y) * AxisSensitivity
	}
	return 0
}

func (s *State) Time() float64 {
	return s.time
}

func (s *State) DeltaTime() float64 {
	return s.deltaTime
}
