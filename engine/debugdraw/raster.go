package debugdraw

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"github.com/pkg/errors"
	"golang.org/x/image/vector"
)

// Area is the ground rectangle (X/Z) a top-down snapshot covers.
type Area struct {
	MinX, MinZ   float32
	Width, Depth float32
}

// RenderTopDown projects the commands onto the XZ plane, looking down.
func RenderTopDown(commands []Command, area Area, pixelsPerUnit float32) *image.RGBA {
	w := int(math.Ceil(float64(area.Width * pixelsPerUnit)))
	h := int(math.Ceil(float64(area.Depth * pixelsPerUnit)))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 24, G: 24, B: 28, A: 255}), image.Point{}, draw.Src)

	toPixel := func(x, z float32) (float32, float32) {
		return (x - area.MinX) * pixelsPerUnit, (z - area.MinZ) * pixelsPerUnit
	}

	for _, cmd := range commands {
		r := vector.NewRasterizer(w, h)
		switch cmd.Shape {
		case ShapeSphere:
			cx, cy := toPixel(cmd.A.X(), cmd.A.Z())
			radius := cmd.Radius * pixelsPerUnit
			if radius < 1.5 {
				radius = 1.5
			}
			fillCircle(r, cx, cy, radius)
		default:
			for _, edge := range cmd.Edges() {
				x0, y0 := toPixel(edge[0].X(), edge[0].Z())
				x1, y1 := toPixel(edge[1].X(), edge[1].Z())
				strokeLine(r, x0, y0, x1, y1, 2)
			}
		}
		r.Draw(img, img.Bounds(), image.NewUniform(cmd.Color), image.Point{})
	}
	return img
}

// strokeLine adds a quad of the given width around the segment.
func strokeLine(r *vector.Rasterizer, x0, y0, x1, y1, width float32) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length < 1e-3 {
		// vertical edges collapse to a point when seen from above
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	r.MoveTo(x0+nx, y0+ny)
	r.LineTo(x1+nx, y1+ny)
	r.LineTo(x1-nx, y1-ny)
	r.LineTo(x0-nx, y0-ny)
	r.ClosePath()
}

func fillCircle(r *vector.Rasterizer, cx, cy, radius float32) {
	const segments = 24
	for i := 0; i <= segments; i++ {
		angle := 2 * math.Pi * float64(i) / segments
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		if i == 0 {
			r.MoveTo(x, y)
		} else {
			r.LineTo(x, y)
		}
	}
	r.ClosePath()
}

func WriteWebP(w io.Writer, img image.Image) error {
	return errors.Wrap(nativewebp.Encode(w, img, nil), "encode webp")
}

func SaveWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create snapshot %s", path)
	}
	defer f.Close()
	if err := WriteWebP(f, img); err != nil {
		return errors.Wrapf(err, "write snapshot %s", path)
	}
	return nil
}
