package main

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/stagehand/stage"
	"github.com/plus3/stagehand/stage/scene"
)

var pastelColors = []color.RGBA{
	{255, 179, 186, 255},
	{179, 229, 252, 255},
	{255, 223, 186, 255},
	{186, 255, 201, 255},
	{217, 186, 255, 255},
}

// FloorActor lays a grid under the scene once.
type FloorActor struct {
	stage.BaseActor
	Size      float32
	Divisions int
}

func (f *FloorActor) Start() {
	floor := scene.NewObject("floor", scene.NewGrid(f.Size, f.Divisions))
	floor.Position = mgl32.Vec3{0, -1, 0}
	floor.Color = color.RGBA{90, 90, 110, 255}
	f.Scene().Add(floor)
}

// SpinnerActor places a ring of shapes and spins each one about its own axes.
type SpinnerActor struct {
	stage.BaseActor
	Count  int
	Radius float32
	Speed  float32

	ring   *scene.Object
	shapes []*scene.Object
}

func (s *SpinnerActor) Start() {
	s.ring = scene.NewObject("ring", nil)
	for i := 0; i < s.Count; i++ {
		geometry := scene.NewBox(0.8, 0.8, 0.8)
		if i%2 == 1 {
			geometry = scene.NewTetrahedron(0.6)
		}
		shape := scene.NewObject("shape", geometry)
		angle := 2 * math32.Pi * float32(i) / float32(s.Count)
		shape.Position = mgl32.Vec3{s.Radius * math32.Cos(angle), 0, s.Radius * math32.Sin(angle)}
		shape.Color = pastelColors[i%len(pastelColors)]
		s.ring.Add(shape)
		s.shapes = append(s.shapes, shape)
	}
	s.Scene().Add(s.ring)
}

func (s *SpinnerActor) Update(delta float64) {
	dt := float32(delta)
	s.ring.Rotation[1] += dt * s.Speed * 0.25
	for i, shape := range s.shapes {
		shape.Rotation[0] += dt * s.Speed
		shape.Rotation[1] += dt * s.Speed * float32(i+1) / float32(len(s.shapes))
	}
}

// PulseActor scales a centre piece with a sine wave.
type PulseActor struct {
	stage.BaseActor
	Period float32

	core *scene.Object
	t    float32
}

func (p *PulseActor) Start() {
	p.core = scene.NewObject("core", scene.NewTetrahedron(1))
	p.core.Color = color.RGBA{255, 255, 186, 255}
	p.Scene().Add(p.core)
}

func (p *PulseActor) Update(delta float64) {
	p.t += float32(delta)
	k := 1 + 0.25*math32.Sin(2*math32.Pi*p.t/p.Period)
	p.core.Scale = mgl32.Vec3{k, k, k}
}

// OrbitActor circles the camera around the origin at a fixed height.
type OrbitActor struct {
	stage.BaseActor
	Distance float32
	Height   float32
	Speed    float32

	angle float32
}

func (o *OrbitActor) Update(delta float64) {
	o.angle += float32(delta) * o.Speed

	var eye *scene.Eye
	switch camera := o.Camera().(type) {
	case *scene.PerspectiveCamera:
		eye = &camera.Eye
	case *scene.OrthographicCamera:
		eye = &camera.Eye
	default:
		return
	}
	eye.Position = mgl32.Vec3{
		o.Distance * math32.Sin(o.angle),
		o.Height,
		o.Distance * math32.Cos(o.angle),
	}
	eye.LookAt(mgl32.Vec3{})
}

// CameraToggleActor swaps between a perspective and an orthographic camera every Interval seconds.
type CameraToggleActor struct {
	stage.BaseActor
	Interval float32

	elapsed float32
	other   scene.Camera
}

func (c *CameraToggleActor) Start() {
	aspect, ok := aspectOf(c.Camera())
	if !ok {
		aspect = 1
	}
	c.other = scene.NewOrthographicCamera(12, aspect, stage.DefaultNear, stage.DefaultFar)
}

func (c *CameraToggleActor) Update(delta float64) {
	if c.Interval <= 0 {
		return
	}
	c.elapsed += float32(delta)
	if c.elapsed < c.Interval {
		return
	}
	c.elapsed = 0

	current := c.Camera()
	// The inactive camera misses resize events, so carry the aspect over.
	if next, ok := c.other.(scene.AspectCamera); ok {
		if aspect, ok := aspectOf(current); ok {
			next.SetAspect(aspect)
			next.UpdateProjectionMatrix()
		}
	}
	c.SetCamera(c.other)
	c.other = current
}

func aspectOf(c scene.Camera) (float32, bool) {
	switch camera := c.(type) {
	case *scene.PerspectiveCamera:
		return camera.Aspect, true
	case *scene.OrthographicCamera:
		return camera.Aspect, true
	}
	return 0, false
}
