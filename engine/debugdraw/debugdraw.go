// Package debugdraw collects wireframe diagnostics. Nothing drawn here has
// any effect on gameplay.
package debugdraw

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	Magenta = color.RGBA{R: 255, B: 255, A: 255}
	Yellow  = color.RGBA{R: 255, G: 235, A: 255}
	Green   = color.RGBA{G: 200, A: 255}
	Blue    = color.RGBA{B: 255, A: 255}
	Red     = color.RGBA{R: 230, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

type Drawer interface {
	WireBox(center, size mgl32.Vec3, c color.RGBA)
	Line(from, to mgl32.Vec3, c color.RGBA)
	Sphere(center mgl32.Vec3, radius float32, c color.RGBA)
}

// Gizmo is implemented by anything that can visualise itself.
type Gizmo interface {
	DrawGizmos(d Drawer)
}

type Shape int

const (
	ShapeLine Shape = iota
	ShapeWireBox
	ShapeSphere
)

type Command struct {
	Shape  Shape
	A, B   mgl32.Vec3 // line endpoints, or box center and size
	Radius float32
	Color  color.RGBA
}

// Recorder stores the commands of one frame for a backend to replay.
type Recorder struct {
	commands []Command
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) WireBox(center, size mgl32.Vec3, c color.RGBA) {
	r.commands = append(r.commands, Command{Shape: ShapeWireBox, A: center, B: size, Color: c})
}

func (r *Recorder) Line(from, to mgl32.Vec3, c color.RGBA) {
	r.commands = append(r.commands, Command{Shape: ShapeLine, A: from, B: to, Color: c})
}

func (r *Recorder) Sphere(center mgl32.Vec3, radius float32, c color.RGBA) {
	r.commands = append(r.commands, Command{Shape: ShapeSphere, A: center, Radius: radius, Color: c})
}

func (r *Recorder) Commands() []Command {
	return r.commands
}

func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

// Edges expands a wire box into its twelve edges.
func (c Command) Edges() [][2]mgl32.Vec3 {
	switch c.Shape {
	case ShapeLine:
		return [][2]mgl32.Vec3{{c.A, c.B}}
	case ShapeWireBox:
		h := c.B.Mul(0.5)
		var corners [8]mgl32.Vec3
		for i := range corners {
			sign := mgl32.Vec3{-1, -1, -1}
			if i&1 != 0 {
				sign[0] = 1
			}
			if i&2 != 0 {
				sign[1] = 1
			}
			if i&4 != 0 {
				sign[2] = 1
			}
			corners[i] = c.A.Add(mgl32.Vec3{sign[0] * h[0], sign[1] * h[1], sign[2] * h[2]})
		}
		edges := make([][2]mgl32.Vec3, 0, 12)
		for i := 0; i < 8; i++ {
			for bit := 1; bit < 8; bit <<= 1 {
				if i&bit == 0 {
					edges = append(edges, [2]mgl32.Vec3{corners[i], corners[i|bit]})
				}
			}
		}
		return edges
	}
	return nil
}
