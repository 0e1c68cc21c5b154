package assets

import (
	"compress/gzip"
	"fmt"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/rtsrig/engine/physics"
	"github.com/memmaker/rtsrig/engine/util"
	"github.com/pkg/errors"
)

// Heightmap is a regular grid of terrain heights stored as a gzipped NBT
// compound. Heights are integers scaled by HeightScale.
type Heightmap struct {
	Width       int32   `nbt:"Width"`
	Depth       int32   `nbt:"Depth"`
	CellSize    float32 `nbt:"CellSize"`
	HeightScale float32 `nbt:"HeightScale"`
	Heights     []int32 `nbt:"Heights"`
}

func (h *Heightmap) Validate() error {
	if h.Width < 2 || h.Depth < 2 {
		return errors.Errorf("heightmap must be at least 2x2, got %dx%d", h.Width, h.Depth)
	}
	if h.CellSize <= 0 {
		return errors.Errorf("cell size must be positive, got %f", h.CellSize)
	}
	if int(h.Width*h.Depth) != len(h.Heights) {
		return errors.Errorf("expected %d heights, got %d", h.Width*h.Depth, len(h.Heights))
	}
	return nil
}

func (h *Heightmap) HeightAt(x, z int) float32 {
	return float32(h.Heights[z*int(h.Width)+x]) * h.HeightScale
}

// Mesh triangulates the grid with its first sample at origin.
func (h *Heightmap) Mesh(name string, origin mgl32.Vec3) *physics.TriangleMesh {
	heights := make([]float32, len(h.Heights))
	for i, v := range h.Heights {
		heights[i] = float32(v) * h.HeightScale
	}
	return physics.NewHeightfieldMesh(name, origin, int(h.Width), int(h.Depth), h.CellSize, heights)
}

func LoadHeightmap(filename string) (*Heightmap, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open heightmap %s", filename)
	}
	defer file.Close()
	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, errors.Wrapf(err, "gunzip heightmap %s", filename)
	}
	defer gzipReader.Close()

	var value Heightmap
	decoder := nbt.NewDecoder(gzipReader)
	if _, err := decoder.Decode(&value); err != nil {
		return nil, errors.Wrapf(err, "decode heightmap %s", filename)
	}
	if err := value.Validate(); err != nil {
		return nil, errors.Wrapf(err, "heightmap %s", filename)
	}
	util.LogAssetInfo(fmt.Sprintf("[Assets] Loaded heightmap %s (%dx%d)", filename, value.Width, value.Depth))
	return &value, nil
}

func SaveHeightmap(filename string, heightmap *Heightmap) error {
	if err := heightmap.Validate(); err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create heightmap %s", filename)
	}
	defer file.Close()
	gzipWriter := gzip.NewWriter(file)
	if err := nbt.NewEncoder(gzipWriter).Encode(heightmap, "Heightmap"); err != nil {
		return errors.Wrapf(err, "encode heightmap %s", filename)
	}
	return errors.Wrapf(gzipWriter.Close(), "flush heightmap %s", filename)
}
