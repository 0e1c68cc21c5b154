package debugdraw

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWireBoxHasTwelveEdges(t *testing.T) {
	r := NewRecorder()
	r.WireBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 2}, Yellow)
	edges := r.Commands()[0].Edges()
	if len(edges) != 12 {
		t.Fatalf("expected 12 edges, got %d", len(edges))
	}
	for _, e := range edges {
		if d := e[1].Sub(e[0]).Len(); d != 2 {
			t.Errorf("edge %v has length %v", e, d)
		}
	}
	r.Reset()
	if len(r.Commands()) != 0 {
		t.Errorf("reset left %d commands", len(r.Commands()))
	}
}

func TestRenderTopDownPaintsCommands(t *testing.T) {
	r := NewRecorder()
	r.Line(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{10, 0, 5}, Green)
	r.Sphere(mgl32.Vec3{2, 0, 2}, 0.5, Red)

	img := RenderTopDown(r.Commands(), Area{MinX: 0, MinZ: 0, Width: 10, Depth: 10}, 4)
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 40 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	if c := img.RGBAAt(20, 20); c.G < 150 {
		t.Errorf("line pixel not green: %v", c)
	}
	if c := img.RGBAAt(8, 8); c.R < 150 {
		t.Errorf("sphere pixel not red: %v", c)
	}
	if c := img.RGBAAt(35, 35); c.R > 50 || c.G > 50 {
		t.Errorf("background pixel painted: %v", c)
	}

	var buf bytes.Buffer
	if err := WriteWebP(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("RIFF")) {
		t.Errorf("output is not a RIFF container")
	}
}
