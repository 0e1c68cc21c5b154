package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/rtsrig/engine/debugdraw"
	"github.com/memmaker/rtsrig/engine/input"
	"github.com/memmaker/rtsrig/engine/physics"
	"github.com/memmaker/rtsrig/engine/scene"
	"github.com/memmaker/rtsrig/engine/util"
)

const zoomDeadzone = 0.01

type RTSCameraSettings struct {
	Mask physics.LayerMask
	// BoundsRoot and BoundsSize (x, z) define the rectangle panning may not leave.
	BoundsRoot      mgl32.Vec3
	BoundsSize      mgl32.Vec2
	ZoomSpeed       float32
	ZoomTargetSpeed float32
	// ZoomLimits holds the min and max ground distance along the view direction.
	ZoomLimits    mgl32.Vec2
	RotationSpeed float32
	DebugViewport bool
	DebugBounds   bool
}

// NodeLookup resolves follow targets. The camera never owns them.
type NodeLookup interface {
	Get(handle scene.Handle) (*scene.Node, bool)
}

// RTSCamera pans, zooms, rotates and follows over a ray-castable ground.
// All movement of a frame is accumulated and applied once at the end of Update.
type RTSCamera struct {
	settings  RTSCameraSettings
	transform *util.Transform
	lens      Lens
	world     physics.Raycaster
	input     input.Reader
	nodes     NodeLookup

	viewport    Viewport
	hit         physics.Hit
	hasHit      bool
	boundsRect  Rect
	newPosition mgl32.Vec3

	// panning
	panningOrigin mgl32.Vec3
	panning       bool

	// zooming
	zoomDistance float32

	// rotating
	rotating bool

	// following
	target          scene.Handle
	hasTarget       bool
	followTarget    mgl32.Vec3
	followDirection mgl32.Vec3
	followDistance  float32
	hitDistance     float32
}

func NewRTSCamera(transform *util.Transform, lens Lens, settings RTSCameraSettings, world physics.Raycaster, in input.Reader, nodes NodeLookup) *RTSCamera {
	c := &RTSCamera{
		transform: transform,
		lens:      lens,
		world:     world,
		input:     in,
		nodes:     nodes,
	}
	c.ApplySettings(settings)
	return c
}

// ApplySettings replaces the tuning, e.g. after a level reload.
func (c *RTSCamera) ApplySettings(settings RTSCameraSettings) {
	c.settings = settings
	c.boundsRect = NewRectAround(settings.BoundsRoot, settings.BoundsSize.X(), settings.BoundsSize.Y())
	if c.zoomDistance != 0 {
		c.zoomDistance = float32(util.Clamp(float64(c.zoomDistance), float64(settings.ZoomLimits.X()), float64(settings.ZoomLimits.Y())))
	}
}

func (c *RTSCamera) Start() {
	if c.updateZoomDistance(0) {
		return
	}
	// keep the zoom invariant even when the start pose is outside the limits
	minZoom, maxZoom := c.settings.ZoomLimits.X(), c.settings.ZoomLimits.Y()
	if hit, ok := c.raycast(c.transform.GetPosition(), c.transform.GetForward()); ok {
		c.zoomDistance = float32(util.Clamp(float64(hit.Distance), float64(minZoom), float64(maxZoom)))
	} else {
		c.zoomDistance = minZoom
	}
	util.LogCameraInfo(fmt.Sprintf("[RTSCamera] start pose outside zoom limits, using %0.2f", c.zoomDistance))
}

func (c *RTSCamera) Update(deltaTime float64) {
	if viewport, ok := c.calculateViewport(mgl32.Vec3{}); ok {
		c.viewport = viewport
	}

	hit, ok := c.world.Raycast(c.PointerRay(), c.settings.Mask)
	if !ok {
		c.hit = physics.Hit{}
		c.hasHit = false
		return
	}
	c.hit = hit
	c.hasHit = true

	if c.hasTarget && c.calculateTarget() {
		c.newPosition = util.Horizontal(c.followTarget.Sub(c.transform.GetPosition()))
	}

	c.rotate()
	c.pan()
	c.zoom()

	c.transform.Translate(c.newPosition)
	c.newPosition = mgl32.Vec3{}
}

// PointerRay is the ray from the camera through the current pointer position.
func (c *RTSCamera) PointerRay() physics.Ray {
	x, y := c.input.PointerPosition()
	return c.lens.ScreenPointToRay(c.transform, x, y)
}

func (c *RTSCamera) pan() {
	switch {
	case c.input.ButtonDown(input.ButtonMiddle):
		c.panningOrigin = c.hit.Point
		c.panning = true
		c.SetTarget(scene.NoHandle)
	case c.input.ButtonUp(input.ButtonMiddle), !c.input.ButtonHeld(input.ButtonMiddle):
		c.panning = false
	}

	if !c.panning {
		return
	}

	delta := c.panningOrigin.Sub(c.hit.Point)
	viewport, ok := c.calculateViewport(delta)
	if !ok {
		// cannot verify the bounds without a ground point
		return
	}
	c.viewport = viewport

	if c.boundsRect.CrossesX(viewport) {
		delta[0] = 0
	}
	if c.boundsRect.CrossesZ(viewport) {
		delta[2] = 0
	}

	c.newPosition = c.newPosition.Add(delta)
}

func (c *RTSCamera) zoom() {
	scroll := c.input.ScrollDelta()
	if util.Abs(scroll) < zoomDeadzone {
		return
	}
	if _, ok := c.zoomDistanceAt(c.transform.GetForward().Mul(scroll)); !ok {
		util.LogCameraDebug(fmt.Sprintf("[RTSCamera] zoom by %0.2f rejected", scroll))
		return
	}

	position := c.transform.GetPosition()
	var delta mgl32.Vec3
	if c.hasTarget {
		delta = c.transform.GetForward().Mul(scroll * c.settings.ZoomTargetSpeed)
	} else {
		// scroll and keep the ground point under the pointer in the same spot
		center := c.hit.Point.Sub(position).Mul(0.5)
		delta = center.Mul(scroll * c.settings.ZoomSpeed)
	}

	distance, ok := c.zoomDistanceAt(delta)
	if !ok {
		util.LogCameraDebug(fmt.Sprintf("[RTSCamera] zoom move %v leaves the zoom limits", delta))
		return
	}
	c.zoomDistance = distance
	if viewport, ok := c.calculateViewport(delta); ok {
		c.viewport = viewport
	}
	c.newPosition = c.newPosition.Add(delta)
}

// zoomDistanceAt measures the ground distance along the view direction from
// the camera moved by offset, and checks it against the zoom limits.
func (c *RTSCamera) zoomDistanceAt(offset mgl32.Vec3) (float32, bool) {
	hit, ok := c.raycast(c.transform.GetPosition().Add(offset), c.transform.GetForward())
	if !ok || !c.withinZoomLimits(hit.Distance) {
		return 0, false
	}
	return hit.Distance, true
}

func (c *RTSCamera) updateZoomDistance(scroll float32) bool {
	distance, ok := c.zoomDistanceAt(c.transform.GetForward().Mul(scroll))
	if !ok {
		return false
	}
	c.zoomDistance = distance
	return true
}

func (c *RTSCamera) withinZoomLimits(distance float32) bool {
	return util.InRange(distance, c.settings.ZoomLimits.X(), c.settings.ZoomLimits.Y())
}

func (c *RTSCamera) rotate() {
	switch {
	case c.input.ButtonDown(input.ButtonSecondary):
		c.rotating = true
	case c.input.ButtonUp(input.ButtonSecondary), !c.input.ButtonHeld(input.ButtonSecondary):
		c.rotating = false
	}

	if !c.rotating {
		return
	}
	angle := c.input.Axis(input.AxisMouseX) * c.settings.RotationSpeed
	if angle == 0 {
		return
	}
	pivot, ok := c.raycast(c.transform.GetPosition(), c.transform.GetForward())
	if !ok {
		return
	}
	c.transform.RotateAround(pivot.Point, util.WorldUp, angle)
}

// ComputeViewport projects the viewport from the current pose.
func (c *RTSCamera) ComputeViewport() (Viewport, bool) {
	return c.calculateViewport(mgl32.Vec3{})
}

func (c *RTSCamera) calculateViewport(offset mgl32.Vec3) (Viewport, bool) {
	centerHit, ok := c.raycast(c.transform.GetPosition().Add(offset), c.transform.GetForward())
	if !ok {
		return Viewport{}, false
	}
	center := centerHit.Point

	halfFOV := util.ToRadian(c.lens.FieldOfView) * 0.5
	halfHeight := c.zoomDistance * util.Tan(halfFOV)
	halfWidth := c.lens.Aspect() * halfHeight

	return NewViewport(center.X()-halfWidth, center.Z()-halfHeight, halfWidth*2, halfHeight*2), true
}

// SetTarget starts following the node, snapping to it immediately.
// scene.NoHandle stops following.
func (c *RTSCamera) SetTarget(target scene.Handle) {
	if target == c.target {
		return
	}

	c.target = target
	c.newPosition = mgl32.Vec3{}
	c.hasTarget = false

	if target == scene.NoHandle {
		util.LogCameraDebug("[RTSCamera] follow target cleared")
		return
	}

	if c.calculateTarget() {
		c.transform.SetPosition(c.followTarget)
	}
	if c.target == target {
		c.hasTarget = true
		util.LogCameraInfo(fmt.Sprintf("[RTSCamera] following %d", target))
	}
}

// calculateTarget places followTarget behind the target so that the view
// direction hits it, at the camera's current height above ground.
func (c *RTSCamera) calculateTarget() bool {
	node, ok := c.nodes.Get(c.target)
	if !ok {
		util.LogCameraInfo(fmt.Sprintf("[RTSCamera] follow target %d is gone", c.target))
		c.target = scene.NoHandle
		c.hasTarget = false
		return false
	}
	targetPosition := node.Transform.GetPosition()

	down, ok := c.raycast(c.transform.GetPosition(), util.WorldDown)
	if !ok {
		return false
	}
	c.hitDistance = down.Distance
	anchor := targetPosition.Add(util.WorldUp.Mul(c.hitDistance))

	ahead, ok := c.raycast(anchor, c.transform.GetForward())
	if !ok {
		return false
	}
	offset := ahead.Point.Sub(targetPosition)
	direction, ok := util.SafeNormalize(util.ProjectOnPlane(offset, c.transform.GetRight()))
	if !ok {
		return false
	}
	c.followDirection = direction.Mul(-1)
	c.followDistance = offset.Len()
	c.followTarget = anchor.Add(c.followDirection.Mul(c.followDistance))
	return true
}

// OnNodeRemoved clears the follow state if the followed node was removed.
func (c *RTSCamera) OnNodeRemoved(handle scene.Handle) {
	if handle != scene.NoHandle && handle == c.target {
		c.SetTarget(scene.NoHandle)
	}
}

func (c *RTSCamera) raycast(origin, direction mgl32.Vec3) (physics.Hit, bool) {
	return c.world.Raycast(physics.NewRay(origin, direction), c.settings.Mask)
}

func (c *RTSCamera) DrawGizmos(d debugdraw.Drawer) {
	if c.settings.DebugViewport {
		d.WireBox(c.viewport.Center(), c.viewport.Size(), debugdraw.Magenta)
	}
	if c.settings.DebugBounds {
		d.WireBox(c.settings.BoundsRoot, mgl32.Vec3{c.settings.BoundsSize.X(), 0, c.settings.BoundsSize.Y()}, debugdraw.Yellow)
	}
}

func (c *RTSCamera) Transform() *util.Transform {
	return c.transform
}

func (c *RTSCamera) Lens() Lens {
	return c.lens
}

func (c *RTSCamera) Settings() RTSCameraSettings {
	return c.settings
}

func (c *RTSCamera) Viewport() Viewport {
	return c.viewport
}

func (c *RTSCamera) Bounds() Rect {
	return c.boundsRect
}

func (c *RTSCamera) ZoomDistance() float32 {
	return c.zoomDistance
}

func (c *RTSCamera) Target() scene.Handle {
	return c.target
}

func (c *RTSCamera) HasTarget() bool {
	return c.hasTarget
}

func (c *RTSCamera) IsPanning() bool {
	return c.panning
}

func (c *RTSCamera) IsRotating() bool {
	return c.rotating
}

// PointerHit is the ground point under the pointer from the last Update.
func (c *RTSCamera) PointerHit() (physics.Hit, bool) {
	return c.hit, c.hasHit
}
