// Package raylib hosts a stage in a raylib window.
package raylib

import (
	"context"
	"image/color"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/plus3/stagehand/stage"
	"github.com/plus3/stagehand/stage/scene"
)

// Window is both the canvas and the host of a stage running under raylib.
type Window struct {
	title     string
	fps       int32
	listeners stage.ResizeListeners

	mu     sync.Mutex
	width  int
	height int
}

// NewWindow describes a resizable window targeting fps frames per second.
// Nothing is opened until Run.
func NewWindow(title string, width, height int, fps int32) *Window {
	if fps <= 0 {
		fps = 60
	}
	return &Window{
		title:  title,
		fps:    fps,
		width:  width,
		height: height,
	}
}

func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

func (w *Window) Context(opts stage.RenderOptions) (stage.Renderer, error) {
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}
	return &Renderer{opts: opts}, nil
}

func (w *Window) OnResize(fn stage.ResizeFunc) func() {
	return w.listeners.Subscribe(fn)
}

// Run opens the window and blocks until it is closed or ctx is done.
// raylib needs the OS main thread, so call it from main.
func (w *Window) Run(ctx context.Context, loop stage.Loop) error {
	width, height := w.Size()
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(width), int32(height), w.title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(w.fps)

	for !rl.WindowShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if rl.IsWindowResized() {
			w.resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
		}

		if err := loop.Update(); err != nil {
			return err
		}

		rl.BeginDrawing()
		loop.Render()
		rl.EndDrawing()
	}
	return nil
}

func (w *Window) resize(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()
	w.listeners.Dispatch(width, height)
}

// Renderer draws the projected wireframe with raylib lines.
// It must only be used between BeginDrawing and EndDrawing.
type Renderer struct {
	opts   stage.RenderOptions
	width  int
	height int
}

func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
}

func (r *Renderer) Render(s *scene.Scene, c scene.Camera) {
	background := s.Background
	if r.opts.ClearColor != (color.RGBA{}) {
		background = r.opts.ClearColor
	}
	rl.ClearBackground(background)

	for _, seg := range scene.Project(s, c, r.width, r.height) {
		rl.DrawLineEx(
			rl.NewVector2(seg.X0, seg.Y0),
			rl.NewVector2(seg.X1, seg.Y1),
			r.opts.LineWidth,
			seg.Color,
		)
	}
}
