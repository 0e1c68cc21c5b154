package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/rtsrig/engine/util"
)

// Box is an axis aligned box. extents is the full size per axis. When a
// transform is attached the box follows its position every query.
type Box struct {
	center  mgl32.Vec3
	extents mgl32.Vec3
	follow  *util.Transform
}

func NewBox(center, extents mgl32.Vec3) *Box {
	return &Box{center: center, extents: extents}
}

// NewTrackingBox keeps offset relative to the transform's position.
func NewTrackingBox(transform *util.Transform, offset, extents mgl32.Vec3) *Box {
	return &Box{center: offset, extents: extents, follow: transform}
}

func (b *Box) Name() string {
	if b.follow != nil {
		return fmt.Sprintf("Box(%s)", b.follow.GetName())
	}
	return fmt.Sprintf("Box(%v)", b.center)
}

func (b *Box) Center() mgl32.Vec3 {
	if b.follow != nil {
		return b.follow.GetPosition().Add(b.center)
	}
	return b.center
}

func (b *Box) Extents() mgl32.Vec3 {
	return b.extents
}

func (b *Box) Min() mgl32.Vec3 {
	return b.Center().Sub(b.extents.Mul(0.5))
}

func (b *Box) Max() mgl32.Vec3 {
	return b.Center().Add(b.extents.Mul(0.5))
}

func (b *Box) Contains(point mgl32.Vec3) bool {
	min, max := b.Min(), b.Max()
	return util.InRange(point.X(), min.X(), max.X()) &&
		util.InRange(point.Y(), min.Y(), max.Y()) &&
		util.InRange(point.Z(), min.Z(), max.Z())
}

func (b *Box) IntersectRay(ray Ray) (Hit, bool) {
	min, max := b.Min(), b.Max()
	tNear, tFar, ok := slabIntersection(ray, min, max)
	if !ok {
		return Hit{}, false
	}
	distance := tNear
	if distance <= 0 {
		// origin inside the box
		distance = tFar
	}
	if distance <= 0 {
		return Hit{}, false
	}
	point := ray.At(distance)
	return Hit{Point: point, Normal: boxNormal(point, min, max), Distance: distance}, true
}

// slabIntersection returns the entry and exit distances of the ray through
// the box, or false if it misses or the box lies behind the origin.
func slabIntersection(ray Ray, min, max mgl32.Vec3) (float32, float32, bool) {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		origin := float64(ray.Origin[axis])
		dir := float64(ray.Direction[axis])
		lo, hi := float64(min[axis]), float64(max[axis])
		if math.Abs(dir) < 1e-9 {
			if origin < lo || origin > hi {
				return 0, 0, false
			}
			continue
		}
		t1 := (lo - origin) / dir
		t2 := (hi - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)
		if tNear > tFar {
			return 0, 0, false
		}
	}
	if tFar < 0 {
		return 0, 0, false
	}
	return float32(tNear), float32(tFar), true
}

func boxNormal(point, min, max mgl32.Vec3) mgl32.Vec3 {
	const bias = 1e-3
	for axis := 0; axis < 3; axis++ {
		var n mgl32.Vec3
		if util.Abs(point[axis]-min[axis]) < bias {
			n[axis] = -1
			return n
		}
		if util.Abs(point[axis]-max[axis]) < bias {
			n[axis] = 1
			return n
		}
	}
	return mgl32.Vec3{0, 1, 0}
}
