package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Plane is an infinite horizontal ground at a fixed height.
type Plane struct {
	Height float32
}

func NewGroundPlane(height float32) *Plane {
	return &Plane{Height: height}
}

func (p *Plane) Name() string {
	return fmt.Sprintf("Plane(y=%0.2f)", p.Height)
}

func (p *Plane) IntersectRay(ray Ray) (Hit, bool) {
	const epsilon = 1e-6
	dy := ray.Direction.Y()
	if dy > -epsilon && dy < epsilon {
		return Hit{}, false
	}
	distance := (p.Height - ray.Origin.Y()) / dy
	if distance <= epsilon {
		return Hit{}, false
	}
	normal := mgl32.Vec3{0, 1, 0}
	if dy > 0 {
		normal = mgl32.Vec3{0, -1, 0}
	}
	return Hit{Point: ray.At(distance), Normal: normal, Distance: distance}, true
}
