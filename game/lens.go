package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/rtsrig/engine/physics"
	"github.com/memmaker/rtsrig/engine/util"
)

// Lens holds the perspective parameters of a camera. FieldOfView is the
// vertical angle in degrees.
type Lens struct {
	FieldOfView  float32
	ScreenWidth  int
	ScreenHeight int
	Near, Far    float32
}

func NewLens(fieldOfView float32, screenWidth, screenHeight int) Lens {
	return Lens{
		FieldOfView:  fieldOfView,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		Near:         0.1,
		Far:          1000,
	}
}

func (l Lens) Aspect() float32 {
	if l.ScreenHeight == 0 {
		return 1
	}
	return float32(l.ScreenWidth) / float32(l.ScreenHeight)
}

func (l Lens) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(util.ToRadian(l.FieldOfView), l.Aspect(), l.Near, l.Far)
}

// ScreenPointToRay returns the ray from the camera through pixel (x, y),
// with (0, 0) at the top left of the screen.
func (l Lens) ScreenPointToRay(camera *util.Transform, x, y float64) physics.Ray {
	// normalize x and y to -1..1
	normalizedX := float32(x/float64(l.ScreenWidth))*2 - 1
	normalizedY := (float32(y/float64(l.ScreenHeight))*2 - 1) * -1

	tanHalfFov := util.Tan(util.ToRadian(l.FieldOfView) * 0.5)
	direction := camera.GetForward().
		Add(camera.GetRight().Mul(normalizedX * tanHalfFov * l.Aspect())).
		Add(camera.GetUp().Mul(normalizedY * tanHalfFov)).
		Normalize()
	return physics.NewRay(camera.GetPosition(), direction)
}

// WorldToScreenPoint is the inverse of ScreenPointToRay. It reports false
// for points behind the camera.
func (l Lens) WorldToScreenPoint(camera *util.Transform, point mgl32.Vec3) (float64, float64, bool) {
	offset := point.Sub(camera.GetPosition())
	depth := offset.Dot(camera.GetForward())
	if depth <= 0 {
		return 0, 0, false
	}
	tanHalfFov := util.Tan(util.ToRadian(l.FieldOfView) * 0.5)
	normalizedX := offset.Dot(camera.GetRight()) / (depth * tanHalfFov * l.Aspect())
	normalizedY := offset.Dot(camera.GetUp()) / (depth * tanHalfFov)

	x := float64(normalizedX+1) / 2 * float64(l.ScreenWidth)
	y := float64(1-normalizedY) / 2 * float64(l.ScreenHeight)
	return x, y, true
}
