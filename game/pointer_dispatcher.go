package game

import (
	"github.com/memmaker/rtsrig/engine/physics"
	"github.com/memmaker/rtsrig/engine/scene"
)

// PointerSource supplies the ray under the pointer, normally the camera.
type PointerSource interface {
	PointerRay() physics.Ray
}

// PointerDispatcher finds the node under the pointer every frame and sends
// enter, over and exit notifications to its handler. Terrain in front of
// a node blocks it.
type PointerDispatcher struct {
	source   PointerSource
	world    physics.Raycaster
	mask     physics.LayerMask
	handlers map[scene.Handle]PointerHandler
	current  scene.Handle
}

func NewPointerDispatcher(source PointerSource, world physics.Raycaster) *PointerDispatcher {
	return &PointerDispatcher{
		source:   source,
		world:    world,
		mask:     physics.LayerTerrain | physics.LayerSelectable,
		handlers: make(map[scene.Handle]PointerHandler),
	}
}

func (d *PointerDispatcher) Register(handle scene.Handle, handler PointerHandler) {
	d.handlers[handle] = handler
}

// Unregister drops the handler without an exit notification.
func (d *PointerDispatcher) Unregister(handle scene.Handle) {
	delete(d.handlers, handle)
	if d.current == handle {
		d.current = scene.NoHandle
	}
}

func (d *PointerDispatcher) Hovered() scene.Handle {
	return d.current
}

func (d *PointerDispatcher) Update(deltaTime float64) {
	next := scene.NoHandle
	if hit, ok := d.world.Raycast(d.source.PointerRay(), d.mask); ok {
		if _, registered := d.handlers[hit.Owner]; registered {
			next = hit.Owner
		}
	}

	if next != d.current {
		if handler, ok := d.handlers[d.current]; ok {
			handler.OnPointerExit()
		}
		d.current = next
		if handler, ok := d.handlers[next]; ok {
			handler.OnPointerEnter()
		}
	}
	if handler, ok := d.handlers[d.current]; ok {
		handler.OnPointerOver()
	}
}
