// Package physics answers ray queries against layered static and tracking
// colliders. It does not simulate anything.
package physics

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/rtsrig/engine/scene"
	"github.com/pkg/errors"
)

type LayerMask uint32

const (
	LayerDefault LayerMask = 1 << iota
	LayerTerrain
	LayerSelectable
	LayerIgnoreRaycast

	AllLayers LayerMask = ^LayerMask(0)
)

var layerNames = map[string]LayerMask{
	"default":    LayerDefault,
	"terrain":    LayerTerrain,
	"selectable": LayerSelectable,
	"ignore":     LayerIgnoreRaycast,
	"all":        AllLayers,
}

func (m LayerMask) Has(layer LayerMask) bool {
	return m&layer != 0
}

// ParseLayerMask combines named layers. An empty list selects every layer.
func ParseLayerMask(names []string) (LayerMask, error) {
	if len(names) == 0 {
		return AllLayers, nil
	}
	var mask LayerMask
	for _, name := range names {
		layer, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, errors.Errorf("unknown layer %q", name)
		}
		mask |= layer
	}
	return mask, nil
}

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

func NewRay(origin, direction mgl32.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

func (r Ray) At(distance float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(distance))
}

type Hit struct {
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
	Owner    scene.Handle
}

// Collider reports the nearest intersection of a ray with a normalized
// direction. Distances are measured along the ray and must be positive.
type Collider interface {
	IntersectRay(ray Ray) (Hit, bool)
	Name() string
}

// Raycaster is the query interface gameplay code depends on.
type Raycaster interface {
	Raycast(ray Ray, mask LayerMask) (Hit, bool)
}
