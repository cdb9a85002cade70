// Package stage drives a renderer, a scene and a camera through a frame loop
// and hands per-frame callbacks to Actors.
package stage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/plus3/stagehand/stage/scene"
)

const (
	DefaultFOV  = 75
	DefaultNear = 0.1
	DefaultFar  = 2000
)

type managerState int

const (
	stateConstructed managerState = iota
	stateStarted
	stateStopped
)

// Manager owns the renderer, scene and camera, and runs the frame loop.
type Manager struct {
	canvas   Canvas
	host     Host
	renderer Renderer
	logger   *slog.Logger
	clock    *Clock

	mu     sync.RWMutex
	scene  *scene.Scene
	camera scene.Camera

	lifecycle    sync.Mutex
	state        managerState
	cancel       context.CancelFunc
	cancelResize func()

	actors []Actor

	// statsMu guards the counters below and the clock, so Stats may be
	// called from any goroutine.
	statsMu        sync.Mutex
	actorStats     []*actorStatsInternal
	frames         int64
	skippedRenders int64
}

// NewManager builds the renderer from opts.Canvas, an empty scene, a default
// perspective camera, and subscribes to viewport resizes on the host.
func NewManager(opts Options) (*Manager, error) {
	if isNil(opts.Canvas) {
		return nil, ErrNoCanvas
	}

	m := &Manager{
		canvas: opts.Canvas,
		host:   opts.Host,
		logger: opts.Logger,
		clock:  NewClock(opts.Now),
	}
	if isNil(m.host) {
		m.host, _ = opts.Canvas.(Host)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}

	renderer, err := opts.Canvas.Context(opts.Render)
	if err != nil {
		return nil, fmt.Errorf("stage: acquire rendering context: %w", err)
	}
	if isNil(renderer) {
		return nil, errors.New("stage: canvas returned no renderer")
	}
	m.renderer = renderer

	width, height := opts.Canvas.Size()
	m.renderer.SetSize(width, height)
	m.scene = scene.New()
	m.camera = scene.NewPerspectiveCamera(DefaultFOV, aspect(width, height), DefaultNear, DefaultFar)

	if m.host != nil {
		m.cancelResize = m.host.OnResize(m.resize)
	}

	return m, nil
}

// isNil also catches typed nil pointers stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

func (m *Manager) resize(width, height int) {
	m.logger.Debug("viewport resized", "width", width, "height", height)
	m.renderer.SetSize(width, height)

	if camera, ok := m.Camera().(scene.AspectCamera); ok {
		camera.SetAspect(aspect(width, height))
		camera.UpdateProjectionMatrix()
	}
}

// Start binds every actor to the manager, calls Start on each in order,
// then runs the frame loop until ctx is done, Stop is called, or the host closes.
// A manager can only be started once, and not after Stop.
func (m *Manager) Start(ctx context.Context, actors ...Actor) error {
	m.lifecycle.Lock()
	if m.state != stateConstructed {
		m.lifecycle.Unlock()
		return ErrAlreadyStarted
	}
	if m.host == nil {
		m.lifecycle.Unlock()
		return ErrNoHost
	}
	m.state = stateStarted
	ctx, m.cancel = context.WithCancel(ctx)
	m.lifecycle.Unlock()
	defer m.cancel()

	sceneAccessor := NewAccessor(m.Scene, m.SetScene)
	cameraAccessor := NewAccessor(m.Camera, m.SetCamera)

	m.actors = actors
	actorStats := make([]*actorStatsInternal, len(actors))
	for i, actor := range actors {
		actor.Setup(sceneAccessor, cameraAccessor)
		actorStats[i] = newActorStats(actor)
	}

	m.statsMu.Lock()
	m.actorStats = actorStats
	m.clock.Start()
	m.statsMu.Unlock()

	for _, actor := range actors {
		actor.Start()
	}

	m.logger.Info("manager started", "actors", len(actors))
	err := m.host.Run(ctx, frameLoop{m})

	m.lifecycle.Lock()
	m.state = stateStopped
	m.lifecycle.Unlock()

	stats := m.Stats()
	m.logger.Info("manager stopped", "frames", stats.Frames, "elapsed", stats.Elapsed)
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}

// Stop ends the frame loop. Start returns once the current frame completes.
func (m *Manager) Stop() {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	if m.state == stateStarted && m.cancel != nil {
		m.cancel()
	}
	m.state = stateStopped
}

// Dispose stops the loop and releases the resize subscription.
func (m *Manager) Dispose() {
	m.Stop()

	m.lifecycle.Lock()
	cancelResize := m.cancelResize
	m.cancelResize = nil
	m.lifecycle.Unlock()

	if cancelResize != nil {
		cancelResize()
	}
}

type frameLoop struct {
	m *Manager
}

func (l frameLoop) Update() error {
	l.m.update()
	return nil
}

func (l frameLoop) Render() {
	l.m.render()
}

func (m *Manager) update() {
	m.statsMu.Lock()
	delta := m.clock.Delta()
	m.statsMu.Unlock()

	for i, actor := range m.actors {
		start := time.Now()
		actor.Update(delta)
		elapsed := time.Since(start)

		m.statsMu.Lock()
		m.actorStats[i].record(elapsed)
		m.statsMu.Unlock()
	}

	m.statsMu.Lock()
	m.frames++
	m.statsMu.Unlock()
}

func (m *Manager) render() {
	s, c := m.Scene(), m.Camera()
	if m.renderer == nil || s == nil || isNil(c) {
		m.statsMu.Lock()
		m.skippedRenders++
		frame := m.frames
		m.statsMu.Unlock()
		m.logger.Debug("render skipped", "frame", frame, "scene", s != nil, "camera", !isNil(c))
		return
	}
	m.renderer.Render(s, c)
}

// Scene returns the current scene.
func (m *Manager) Scene() *scene.Scene {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scene
}

// SetScene replaces the scene. Actors see the new scene on their next read.
func (m *Manager) SetScene(s *scene.Scene) {
	m.mu.Lock()
	m.scene = s
	m.mu.Unlock()
}

// Camera returns the current camera.
func (m *Manager) Camera() scene.Camera {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.camera
}

// SetCamera replaces the camera. Actors see the new camera on their next read.
func (m *Manager) SetCamera(c scene.Camera) {
	m.mu.Lock()
	m.camera = c
	m.mu.Unlock()
}

func (m *Manager) Renderer() Renderer {
	return m.renderer
}

func (m *Manager) Canvas() Canvas {
	return m.canvas
}

// Stats returns a snapshot of frame loop statistics. It is safe to call
// from any goroutine, including an actor's Update.
func (m *Manager) Stats() Stats {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()

	stats := Stats{
		Frames:         m.frames,
		SkippedRenders: m.skippedRenders,
		Elapsed:        m.clock.Elapsed(),
		Actors:         make([]ActorStats, len(m.actorStats)),
	}
	for i, internal := range m.actorStats {
		stats.Actors[i] = internal.snapshot()
	}
	return stats
}
