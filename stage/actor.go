package stage

import "github.com/plus3/stagehand/stage/scene"

// Actor is a unit of per-frame behavior driven by a Manager.
// The Manager calls Setup once, then Start once, then Update every frame.
type Actor interface {
	Setup(sceneAccessor Accessor[*scene.Scene], cameraAccessor Accessor[scene.Camera])
	Start()
	Update(delta float64)
}

// BaseActor implements Actor with no-op hooks. Embed it and override Start or Update.
//
//	type Spinner struct {
//		stage.BaseActor
//		cube *scene.Object
//	}
//
//	func (s *Spinner) Start() {
//		s.cube = scene.NewObject("cube", scene.NewBox(1, 1, 1))
//		s.Scene().Add(s.cube)
//	}
type BaseActor struct {
	scene  Accessor[*scene.Scene]
	camera Accessor[scene.Camera]
}

// Setup installs the accessors. Only the owning Manager should call it.
func (a *BaseActor) Setup(sceneAccessor Accessor[*scene.Scene], cameraAccessor Accessor[scene.Camera]) {
	a.scene = sceneAccessor
	a.camera = cameraAccessor
}

func (a *BaseActor) Start() {}

// Update receives the seconds elapsed since the previous frame.
func (a *BaseActor) Update(delta float64) {}

// Scene returns the manager's current scene, or nil before Setup.
func (a *BaseActor) Scene() *scene.Scene {
	return a.scene.Get()
}

func (a *BaseActor) SetScene(s *scene.Scene) {
	a.scene.Set(s)
}

// Camera returns the manager's current camera, or nil before Setup.
func (a *BaseActor) Camera() scene.Camera {
	return a.camera.Get()
}

func (a *BaseActor) SetCamera(c scene.Camera) {
	a.camera.Set(c)
}

// ActorFunc adapts plain functions to an Actor. Nil hooks are skipped.
type ActorFunc struct {
	BaseActor
	OnStart  func(a *ActorFunc)
	OnUpdate func(a *ActorFunc, delta float64)
}

func (f *ActorFunc) Start() {
	if f.OnStart != nil {
		f.OnStart(f)
	}
}

func (f *ActorFunc) Update(delta float64) {
	if f.OnUpdate != nil {
		f.OnUpdate(f, delta)
	}
}
