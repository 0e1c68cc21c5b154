package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Triangle [3]mgl32.Vec3

// TriangleMesh is a static triangle soup in world space, tested with a
// bounding box first.
type TriangleMesh struct {
	name      string
	triangles []Triangle
	min, max  mgl32.Vec3
}

func NewTriangleMesh(name string, triangles []Triangle) *TriangleMesh {
	m := &TriangleMesh{name: name, triangles: triangles}
	m.computeBounds()
	return m
}

func (m *TriangleMesh) Name() string {
	return fmt.Sprintf("TriangleMesh(%s, %d tris)", m.name, len(m.triangles))
}

func (m *TriangleMesh) Triangles() []Triangle {
	return m.triangles
}

func (m *TriangleMesh) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	return m.min, m.max
}

func (m *TriangleMesh) computeBounds() {
	inf := float32(math.Inf(1))
	m.min = mgl32.Vec3{inf, inf, inf}
	m.max = mgl32.Vec3{-inf, -inf, -inf}
	for _, tri := range m.triangles {
		for _, v := range tri {
			for axis := 0; axis < 3; axis++ {
				m.min[axis] = float32(math.Min(float64(m.min[axis]), float64(v[axis])))
				m.max[axis] = float32(math.Max(float64(m.max[axis]), float64(v[axis])))
			}
		}
	}
}

func (m *TriangleMesh) IntersectRay(ray Ray) (Hit, bool) {
	if len(m.triangles) == 0 {
		return Hit{}, false
	}
	if _, _, ok := slabIntersection(ray, m.min, m.max); !ok {
		return Hit{}, false
	}
	var best Hit
	found := false
	for _, tri := range m.triangles {
		distance, ok := intersectRayTriangle(ray.Origin, ray.Direction, tri[0], tri[1], tri[2])
		if !ok {
			continue
		}
		if !found || distance < best.Distance {
			normal := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])).Normalize()
			if normal.Dot(ray.Direction) > 0 {
				normal = normal.Mul(-1)
			}
			best = Hit{Point: ray.At(distance), Normal: normal, Distance: distance}
			found = true
		}
	}
	return best, found
}

// bench: no allocs
func intersectRayTriangle(origin, direction mgl32.Vec3, v0, v1, v2 mgl32.Vec3) (float32, bool) {
	const EPSILON = 0.000001

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	h := direction.Cross(edge2)
	a := edge1.Dot(h)

	if a > -EPSILON && a < EPSILON {
		return 0, false // parallel to the triangle
	}

	f := 1.0 / a
	s := origin.Sub(v0)
	u := f * s.Dot(h)

	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * direction.Dot(q)

	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	if t > EPSILON {
		return t, true
	}
	// line intersection behind the origin
	return 0, false
}

// NewHeightfieldMesh triangulates a regular grid of heights laid out row by
// row along +X then +Z, starting at origin.
func NewHeightfieldMesh(name string, origin mgl32.Vec3, width, depth int, cellSize float32, heights []float32) *TriangleMesh {
	if width < 2 || depth < 2 || len(heights) < width*depth {
		return NewTriangleMesh(name, nil)
	}
	vertex := func(x, z int) mgl32.Vec3 {
		return origin.Add(mgl32.Vec3{float32(x) * cellSize, heights[z*width+x], float32(z) * cellSize})
	}
	triangles := make([]Triangle, 0, (width-1)*(depth-1)*2)
	for z := 0; z < depth-1; z++ {
		for x := 0; x < width-1; x++ {
			a, b := vertex(x, z), vertex(x+1, z)
			c, d := vertex(x, z+1), vertex(x+1, z+1)
			triangles = append(triangles, Triangle{a, c, b}, Triangle{b, c, d})
		}
	}
	return NewTriangleMesh(name, triangles)
}
