package physics

import (
	"fmt"

	"github.com/memmaker/rtsrig/engine/scene"
	"github.com/memmaker/rtsrig/engine/util"
)

type Body struct {
	Collider Collider
	Layer    LayerMask
	Owner    scene.Handle
}

type World struct {
	bodies []*Body
}

func NewWorld() *World {
	return &World{}
}

func (w *World) Add(collider Collider, layer LayerMask, owner scene.Handle) *Body {
	body := &Body{Collider: collider, Layer: layer, Owner: owner}
	w.bodies = append(w.bodies, body)
	util.LogSceneInfo(fmt.Sprintf("[Physics] Added collider %s on layer %b", collider.Name(), layer))
	return body
}

func (w *World) Remove(body *Body) {
	for i, b := range w.bodies {
		if b == body {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

// RemoveOwner drops every body that belongs to the node.
func (w *World) RemoveOwner(owner scene.Handle) {
	kept := w.bodies[:0]
	for _, b := range w.bodies {
		if b.Owner != owner {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(w.bodies); i++ {
		w.bodies[i] = nil
	}
	w.bodies = kept
}

func (w *World) Bodies() []*Body {
	return w.bodies
}

// Raycast returns the nearest hit among bodies whose layer is in mask.
// A miss is normal and reported with false.
func (w *World) Raycast(ray Ray, mask LayerMask) (Hit, bool) {
	direction, ok := util.SafeNormalize(ray.Direction)
	if !ok {
		return Hit{}, false
	}
	ray.Direction = direction

	var nearest Hit
	found := false
	for _, body := range w.bodies {
		if !mask.Has(body.Layer) {
			continue
		}
		hit, ok := body.Collider.IntersectRay(ray)
		if !ok {
			continue
		}
		if !found || hit.Distance < nearest.Distance {
			hit.Owner = body.Owner
			nearest = hit
			found = true
		}
	}
	return nearest, found
}
