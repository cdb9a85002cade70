// Package headless runs a stage without a window. Frames are driven by a
// ticker and rendering is recorded instead of drawn.
package headless

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/plus3/stagehand/stage"
	"github.com/plus3/stagehand/stage/scene"
)

// Config controls the headless window.
type Config struct {
	Width  int
	Height int
	// Hz is the tick rate. Defaults to 60.
	Hz int
	// Frames stops Run after that many frames. Zero runs until cancelled.
	Frames uint64
	// Unthrottled runs frames back to back, ignoring Hz.
	Unthrottled bool
}

type resizeEvent struct {
	width, height int
}

// Window is both the canvas and the host of a headless stage.
type Window struct {
	cfg       Config
	listeners stage.ResizeListeners

	mu      sync.Mutex
	width   int
	height  int
	pending []resizeEvent
}

// New creates a headless window. Width and height default to 800x600.
func New(cfg Config) *Window {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	return &Window{
		cfg:    cfg,
		width:  cfg.Width,
		height: cfg.Height,
	}
}

func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// Context returns a Recorder bound to this window.
func (w *Window) Context(opts stage.RenderOptions) (stage.Renderer, error) {
	return &Recorder{Options: opts}, nil
}

func (w *Window) OnResize(fn stage.ResizeFunc) func() {
	return w.listeners.Subscribe(fn)
}

// Resize changes the window size. Listeners are notified before the next frame.
func (w *Window) Resize(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.pending = append(w.pending, resizeEvent{width, height})
	w.mu.Unlock()
}

// DispatchResizes delivers queued resize events now. Run calls it before every frame.
func (w *Window) DispatchResizes() {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()

	for _, e := range pending {
		w.listeners.Dispatch(e.width, e.height)
	}
}

// Run drives loop at the configured rate.
func (w *Window) Run(ctx context.Context, loop stage.Loop) error {
	if w.cfg.Unthrottled {
		return w.runUnthrottled(ctx, loop)
	}

	d := time.Second / time.Duration(w.cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("headless: invalid hz: %d", w.cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var frame uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := w.Step(loop); err != nil {
				return err
			}
			frame++
			if w.cfg.Frames > 0 && frame >= w.cfg.Frames {
				return nil
			}
		}
	}
}

func (w *Window) runUnthrottled(ctx context.Context, loop stage.Loop) error {
	for frame := uint64(1); ; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.Step(loop); err != nil {
			return err
		}
		if w.cfg.Frames > 0 && frame >= w.cfg.Frames {
			return nil
		}
	}
}

// Step runs a single frame: pending resizes, then update, then render.
func (w *Window) Step(loop stage.Loop) error {
	w.DispatchResizes()
	if err := loop.Update(); err != nil {
		return err
	}
	loop.Render()
	return nil
}

// Recorder is a Renderer that keeps track of what it was asked to draw.
type Recorder struct {
	Options stage.RenderOptions

	mu         sync.Mutex
	width      int
	height     int
	renders    int
	segments   int
	lastScene  *scene.Scene
	lastCamera scene.Camera
}

func (r *Recorder) SetSize(width, height int) {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
}

// Render projects the scene to count visible segments.
func (r *Recorder) Render(s *scene.Scene, c scene.Camera) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders++
	r.lastScene = s
	r.lastCamera = c
	r.segments = len(scene.Project(s, c, r.width, r.height))
}

func (r *Recorder) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// Renders returns the number of Render calls.
func (r *Recorder) Renders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders
}

// Segments returns the segment count of the last render.
func (r *Recorder) Segments() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.segments
}

// Last returns the scene and camera of the last render.
func (r *Recorder) Last() (*scene.Scene, scene.Camera) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastScene, r.lastCamera
}
