// Package scene keeps the named transforms of a level and hands out weak
// handles to them.
package scene

import (
	"fmt"

	"github.com/memmaker/rtsrig/engine/util"
)

// Handle identifies a node without owning it. A handle whose node was
// removed simply resolves to nothing.
type Handle uint32

const NoHandle Handle = 0

type Node struct {
	Handle    Handle
	Name      string
	Transform *util.Transform
}

type Registry struct {
	nodes     map[Handle]*Node
	order     []Handle
	next      Handle
	listeners []func(Handle)
}

func NewRegistry() *Registry {
	return &Registry{
		nodes: make(map[Handle]*Node),
		next:  1,
	}
}

func (r *Registry) Spawn(name string, transform *util.Transform) *Node {
	if transform == nil {
		transform = util.NewDefaultTransform(name)
	}
	transform.SetName(name)
	node := &Node{
		Handle:    r.next,
		Name:      name,
		Transform: transform,
	}
	r.next++
	r.nodes[node.Handle] = node
	r.order = append(r.order, node.Handle)
	util.LogSceneInfo(fmt.Sprintf("[Scene] Spawned %s(%d)", name, node.Handle))
	return node
}

func (r *Registry) Get(handle Handle) (*Node, bool) {
	node, ok := r.nodes[handle]
	return node, ok
}

// Find returns the first node spawned with the given name.
func (r *Registry) Find(name string) (*Node, bool) {
	for _, handle := range r.order {
		if node := r.nodes[handle]; node.Name == name {
			return node, true
		}
	}
	return nil, false
}

// Remove deletes the node and notifies every OnRemove listener.
func (r *Registry) Remove(handle Handle) {
	node, ok := r.nodes[handle]
	if !ok {
		return
	}
	delete(r.nodes, handle)
	for i, h := range r.order {
		if h == handle {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	util.LogSceneInfo(fmt.Sprintf("[Scene] Removed %s(%d)", node.Name, handle))
	for _, listener := range r.listeners {
		listener(handle)
	}
}

func (r *Registry) OnRemove(listener func(Handle)) {
	r.listeners = append(r.listeners, listener)
}

func (r *Registry) Nodes() []*Node {
	result := make([]*Node, 0, len(r.order))
	for _, handle := range r.order {
		result = append(result, r.nodes[handle])
	}
	return result
}

func (r *Registry) Len() int {
	return len(r.nodes)
}
