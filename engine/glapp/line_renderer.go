package glapp

import (
	"math"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/rtsrig/engine/debugdraw"
)

const sphereSegments = 16

// LineRenderer replays recorded debug draw commands as GL lines.
// Call Draw on the main thread with a current context.
type LineRenderer struct {
	projection mgl32.Mat4
	view       mgl32.Mat4
}

func NewLineRenderer() *LineRenderer {
	return &LineRenderer{projection: mgl32.Ident4(), view: mgl32.Ident4()}
}

func (r *LineRenderer) SetCamera(projection, view mgl32.Mat4) {
	r.projection = projection
	r.view = view
}

func (r *LineRenderer) Draw(commands []debugdraw.Command) {
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(&r.projection[0])
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadMatrixf(&r.view[0])

	gl.Begin(gl.LINES)
	for _, cmd := range commands {
		gl.Color4ub(cmd.Color.R, cmd.Color.G, cmd.Color.B, cmd.Color.A)
		if cmd.Shape == debugdraw.ShapeSphere {
			sphereLines(cmd.A, cmd.Radius)
			continue
		}
		for _, edge := range cmd.Edges() {
			vertex(edge[0])
			vertex(edge[1])
		}
	}
	gl.End()
}

// sphereLines outlines a sphere with one circle per axis plane.
func sphereLines(center mgl32.Vec3, radius float32) {
	point := func(axis int, angle float64) mgl32.Vec3 {
		s, c := float32(math.Sin(angle))*radius, float32(math.Cos(angle))*radius
		switch axis {
		case 0:
			return center.Add(mgl32.Vec3{0, s, c})
		case 1:
			return center.Add(mgl32.Vec3{s, 0, c})
		}
		return center.Add(mgl32.Vec3{s, c, 0})
	}
	for axis := 0; axis < 3; axis++ {
		for i := 0; i < sphereSegments; i++ {
			a0 := float64(i) / sphereSegments * 2 * math.Pi
			a1 := float64(i+1) / sphereSegments * 2 * math.Pi
			vertex(point(axis, a0))
			vertex(point(axis, a1))
		}
	}
}

func vertex(v mgl32.Vec3) {
	gl.Vertex3f(v.X(), v.Y(), v.Z())
}
