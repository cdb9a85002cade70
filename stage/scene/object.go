package scene

import (
	"image/color"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// ObjectId identifies an object within the scene it is attached to.
// Zero means the object is not attached to any scene.
type ObjectId uint32

// Object is a node of the scene graph. Its transform is relative to its parent.
type Object struct {
	Name     string
	Position mgl32.Vec3
	// Rotation holds Euler angles in radians, applied in X, Y, Z order.
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Geometry *Geometry
	Color    color.RGBA
	Visible  bool

	id       ObjectId
	scene    *Scene
	parent   *Object
	children []*Object
}

// NewObject creates a visible object with unit scale and a white color.
// geometry may be nil for pure grouping nodes.
func NewObject(name string, geometry *Geometry) *Object {
	return &Object{
		Name:     name,
		Scale:    mgl32.Vec3{1, 1, 1},
		Geometry: geometry,
		Color:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Visible:  true,
	}
}

// Id returns the object id, or zero when the object is detached.
func (o *Object) Id() ObjectId {
	return o.id
}

func (o *Object) Parent() *Object {
	return o.parent
}

// Children returns the direct children. Later Add or Remove calls do not
// modify the returned slice.
func (o *Object) Children() []*Object {
	return o.children
}

// Add attaches child under o, detaching it from any previous parent.
// When o belongs to a scene, child and its descendants are indexed there too.
// Adding an ancestor of o under o would form a cycle and is ignored.
func (o *Object) Add(child *Object) {
	if child == nil || child.IsAncestorOf(o) {
		return
	}
	child.detach()
	child.parent = o
	o.children = append(o.children, child)
	if o.scene != nil {
		o.scene.index(child)
	}
}

// Remove detaches child from o. It reports false when child is not a direct child of o.
func (o *Object) Remove(child *Object) bool {
	if child == nil || child.parent != o {
		return false
	}
	child.detach()
	return true
}

// IsAncestorOf reports whether o is n or one of n's parents.
func (o *Object) IsAncestorOf(n *Object) bool {
	for p := n; p != nil; p = p.parent {
		if p == o {
			return true
		}
	}
	return false
}

func (o *Object) detach() {
	if o.parent != nil {
		o.parent.children = without(o.parent.children, o)
		o.parent = nil
	} else if o.scene != nil {
		o.scene.removeRoot(o)
	}
	if o.scene != nil {
		o.scene.unindex(o)
	}
}

// LocalMatrix returns translation * rotation * scale for this object alone.
func (o *Object) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z())
	r := mgl32.HomogRotate3DZ(o.Rotation.Z()).
		Mul4(mgl32.HomogRotate3DY(o.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DX(o.Rotation.X()))
	s := mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix composes the local matrices from the root down to o.
func (o *Object) WorldMatrix() mgl32.Mat4 {
	m := o.LocalMatrix()
	for p := o.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Traverse visits o and its descendants depth first until fn returns false.
func (o *Object) Traverse(fn func(*Object) bool) bool {
	if !fn(o) {
		return false
	}
	for _, c := range o.children {
		if !c.Traverse(fn) {
			return false
		}
	}
	return true
}

// without returns list minus o in a new backing array, so slices handed out
// by Children and Objects stay valid while callers remove from them.
func without(list []*Object, o *Object) []*Object {
	i := slices.Index(list, o)
	if i < 0 {
		return list
	}
	return slices.Delete(slices.Clone(list), i, i+1)
}
