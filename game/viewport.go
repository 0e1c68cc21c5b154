package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Viewport is the ground-plane rectangle the camera currently sees.
type Viewport struct {
	X, Z         float32
	Width, Depth float32
}

func NewViewport(x, z, width, depth float32) Viewport {
	return Viewport{X: x, Z: z, Width: width, Depth: depth}
}

func (v *Viewport) UpdatePosition(x, z float32) {
	v.X = x
	v.Z = z
}

func (v *Viewport) UpdateSize(width, depth float32) {
	v.Width = width
	v.Depth = depth
}

func (v Viewport) Center() mgl32.Vec3 {
	return mgl32.Vec3{v.X + v.Width/2, 0, v.Z + v.Depth/2}
}

func (v Viewport) Size() mgl32.Vec3 {
	return mgl32.Vec3{v.Width, 0, v.Depth}
}

func (v Viewport) String() string {
	return fmt.Sprintf("Viewport(x: %0.2f, z: %0.2f, w: %0.2f, d: %0.2f)", v.X, v.Z, v.Width, v.Depth)
}

// Rect is a fixed ground rectangle, used for the camera's pan bounds.
type Rect struct {
	X, Z         float32
	Width, Depth float32
}

// NewRectAround centers a rectangle of size (width, depth) on root.
func NewRectAround(root mgl32.Vec3, width, depth float32) Rect {
	return Rect{
		X:     root.X() - width/2,
		Z:     root.Z() - depth/2,
		Width: width,
		Depth: depth,
	}
}

func (r Rect) MaxX() float32 {
	return r.X + r.Width
}

func (r Rect) MaxZ() float32 {
	return r.Z + r.Depth
}

// CrossesX reports whether v touches or leaves the rectangle along X.
func (r Rect) CrossesX(v Viewport) bool {
	return v.X <= r.X || v.X+v.Width >= r.MaxX()
}

func (r Rect) CrossesZ(v Viewport) bool {
	return v.Z <= r.Z || v.Z+v.Depth >= r.MaxZ()
}

func (r Rect) Contains(v Viewport) bool {
	return v.X >= r.X && v.X+v.Width <= r.MaxX() && v.Z >= r.Z && v.Z+v.Depth <= r.MaxZ()
}
