package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Segment is a projected edge in screen pixels, origin at the top left.
type Segment struct {
	X0, Y0, X1, Y1 float32
	Color          color.RGBA
}

// Project transforms every visible edge in s through camera c into a
// width x height viewport. Edges with an endpoint behind the camera, or
// outside its near and far planes, are dropped.
func Project(s *Scene, c Camera, width, height int) []Segment {
	if s == nil || c == nil || width <= 0 || height <= 0 {
		return nil
	}

	viewProjection := c.ProjectionMatrix().Mul4(c.ViewMatrix())
	w, h := float32(width), float32(height)

	var segments []Segment
	var points []mgl32.Vec3
	var visible []bool

	var visit func(o *Object, parent mgl32.Mat4)
	visit = func(o *Object, parent mgl32.Mat4) {
		if !o.Visible {
			return
		}
		world := parent.Mul4(o.LocalMatrix())

		if g := o.Geometry; g != nil && len(g.Edges) > 0 {
			mvp := viewProjection.Mul4(world)
			points = points[:0]
			visible = visible[:0]
			for _, v := range g.Vertices {
				clip := mvp.Mul4x1(v.Vec4(1))
				if clip.W() <= 1e-6 || clip.Z() < -clip.W() || clip.Z() > clip.W() {
					points = append(points, mgl32.Vec3{})
					visible = append(visible, false)
					continue
				}
				ndc := clip.Vec3().Mul(1 / clip.W())
				points = append(points, mgl32.Vec3{
					(ndc.X() + 1) / 2 * w,
					(1 - ndc.Y()) / 2 * h,
					ndc.Z(),
				})
				visible = append(visible, true)
			}

			for _, e := range g.Edges {
				a, b := e[0], e[1]
				if a < 0 || b < 0 || a >= len(points) || b >= len(points) {
					continue
				}
				if !visible[a] || !visible[b] {
					continue
				}
				segments = append(segments, Segment{
					X0: points[a].X(), Y0: points[a].Y(),
					X1: points[b].X(), Y1: points[b].Y(),
					Color: o.Color,
				})
			}
		}

		for _, child := range o.children {
			visit(child, world)
		}
	}

	for _, o := range s.roots {
		visit(o, mgl32.Ident4())
	}
	return segments
}
