// Package scene holds the data a stage renders: a tree of objects with
// wireframe geometry, and the cameras that look at it.
package scene

import (
	"image/color"

	"github.com/kamstrup/intmap"
)

// Scene is the root of an object graph.
type Scene struct {
	Background color.RGBA

	roots  []*Object
	byId   *intmap.Map[ObjectId, *Object]
	nextId ObjectId
}

// New creates an empty scene with a black background.
func New() *Scene {
	return &Scene{
		Background: color.RGBA{A: 255},
		byId:       intmap.New[ObjectId, *Object](64),
	}
}

// Add attaches objects at the top level of the scene.
// Objects already attached elsewhere are moved.
func (s *Scene) Add(objects ...*Object) {
	for _, o := range objects {
		if o == nil {
			continue
		}
		o.detach()
		s.roots = append(s.roots, o)
		s.index(o)
	}
}

// Remove detaches the object, wherever it sits in this scene.
func (s *Scene) Remove(o *Object) bool {
	if o == nil || o.scene != s {
		return false
	}
	o.detach()
	return true
}

// Get looks up an attached object by id.
func (s *Scene) Get(id ObjectId) (*Object, bool) {
	return s.byId.Get(id)
}

// Len returns the number of attached objects, descendants included.
func (s *Scene) Len() int {
	return s.byId.Len()
}

// Objects returns the top level objects in insertion order. Later Add or
// Remove calls do not modify the returned slice.
func (s *Scene) Objects() []*Object {
	return s.roots
}

// Clear detaches every object.
func (s *Scene) Clear() {
	for _, o := range s.roots {
		o.Traverse(func(n *Object) bool {
			n.scene = nil
			n.id = 0
			return true
		})
	}
	s.roots = nil
	s.byId.Clear()
}

// Traverse visits every attached object depth first until fn returns false.
func (s *Scene) Traverse(fn func(*Object) bool) {
	for _, o := range s.roots {
		if !o.Traverse(fn) {
			return
		}
	}
}

func (s *Scene) index(o *Object) {
	o.Traverse(func(n *Object) bool {
		if n.scene != nil && n.scene != s {
			n.scene.byId.Del(n.id)
		}
		if n.scene != s {
			s.nextId++
			n.id = s.nextId
			n.scene = s
			s.byId.Put(n.id, n)
		}
		return true
	})
}

func (s *Scene) unindex(o *Object) {
	o.Traverse(func(n *Object) bool {
		s.byId.Del(n.id)
		n.scene = nil
		n.id = 0
		return true
	})
}

func (s *Scene) removeRoot(o *Object) {
	s.roots = without(s.roots, o)
}
