package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera supplies the view and projection used to draw a scene.
type Camera interface {
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
}

// AspectCamera is a camera whose projection follows the viewport aspect ratio.
type AspectCamera interface {
	Camera
	SetAspect(aspect float32)
	UpdateProjectionMatrix()
}

// Eye positions a camera in world space.
type Eye struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
}

func defaultEye() Eye {
	return Eye{
		Target: mgl32.Vec3{0, 0, -1},
		Up:     mgl32.Vec3{0, 1, 0},
	}
}

// LookAt points the camera at target.
func (e *Eye) LookAt(target mgl32.Vec3) {
	e.Target = target
}

// ViewMatrix returns the world to camera transform.
func (e *Eye) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(e.Position, e.Target, e.Up)
}

// PerspectiveCamera projects with a vertical field of view given in degrees.
type PerspectiveCamera struct {
	Eye
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	projection mgl32.Mat4
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Eye:    defaultEye(),
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
	c.UpdateProjectionMatrix()
	return c
}

func (c *PerspectiveCamera) SetAspect(aspect float32) {
	c.Aspect = aspect
}

// UpdateProjectionMatrix must be called after changing FOV, Aspect, Near or Far.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// OrthographicCamera projects a box of fixed height; its width follows the aspect ratio.
type OrthographicCamera struct {
	Eye
	Height float32
	Aspect float32
	Near   float32
	Far    float32

	projection mgl32.Mat4
}

func NewOrthographicCamera(height, aspect, near, far float32) *OrthographicCamera {
	c := &OrthographicCamera{
		Eye:    defaultEye(),
		Height: height,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
	c.UpdateProjectionMatrix()
	return c
}

func (c *OrthographicCamera) SetAspect(aspect float32) {
	c.Aspect = aspect
}

func (c *OrthographicCamera) UpdateProjectionMatrix() {
	h := c.Height / 2
	w := h * c.Aspect
	c.projection = mgl32.Ortho(-w, w, -h, h, c.Near, c.Far)
}

func (c *OrthographicCamera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}
