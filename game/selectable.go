package game

import (
	"fmt"

	"github.com/memmaker/rtsrig/engine/input"
	"github.com/memmaker/rtsrig/engine/scene"
	"github.com/memmaker/rtsrig/engine/util"
)

// PointerHandler receives hover notifications from the PointerDispatcher.
type PointerHandler interface {
	OnPointerEnter()
	OnPointerOver()
	OnPointerExit()
}

// FollowRequester is the part of the camera a selectable talks to.
type FollowRequester interface {
	SetTarget(target scene.Handle)
}

// SelectableTarget asks the camera to follow its node on a double click.
type SelectableTarget struct {
	handle    scene.Handle
	name      string
	clickTime float64
	input     input.Reader
	camera    FollowRequester

	hovering     bool
	clickPending bool
	lastClick    float64
}

func NewSelectableTarget(node *scene.Node, clickTime float64, in input.Reader, camera FollowRequester) *SelectableTarget {
	return &SelectableTarget{
		handle:    node.Handle,
		name:      node.Name,
		clickTime: clickTime,
		input:     in,
		camera:    camera,
	}
}

func (s *SelectableTarget) Handle() scene.Handle {
	return s.handle
}

func (s *SelectableTarget) IsHovering() bool {
	return s.hovering
}

func (s *SelectableTarget) OnPointerEnter() {
	s.hovering = true
	util.LogSelectDebug(fmt.Sprintf("[Selectable] pointer entered %s", s.name))
}

func (s *SelectableTarget) OnPointerExit() {
	s.hovering = false
	s.clickPending = false
	util.LogSelectDebug(fmt.Sprintf("[Selectable] pointer left %s", s.name))
}

func (s *SelectableTarget) OnPointerOver() {
	if !s.input.ButtonDown(input.ButtonPrimary) {
		return
	}
	now := s.input.Time()
	if !s.clickPending {
		s.clickPending = true
		s.lastClick = now
		return
	}

	s.clickPending = false
	if now-s.lastClick > s.clickTime {
		return
	}
	util.LogSelectInfo(fmt.Sprintf("[Selectable] double click on %s", s.name))
	s.camera.SetTarget(s.handle)
}
