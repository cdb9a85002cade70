// Package ebiten hosts a stage in an Ebiten window.
package ebiten

import (
	"context"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/stagehand/stage"
	"github.com/plus3/stagehand/stage/scene"
)

// Overlay draws on top of the stage, e.g. a Dear ImGui backend.
// BeginFrame and EndFrame bracket the actors' updates.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

// Window is both the canvas and the host of a stage running under Ebiten.
type Window struct {
	title     string
	listeners stage.ResizeListeners
	overlay   Overlay

	mu      sync.Mutex
	width   int
	height  int
	resized bool
	screen  *ebiten.Image
}

// NewWindow describes a resizable window. Nothing is opened until Run.
func NewWindow(title string, width, height int) *Window {
	return &Window{
		title:  title,
		width:  width,
		height: height,
	}
}

// SetOverlay installs an overlay drawn after every render. Call before Run.
func (w *Window) SetOverlay(o Overlay) {
	w.overlay = o
}

func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// Context returns a line renderer drawing into the window's screen image.
func (w *Window) Context(opts stage.RenderOptions) (stage.Renderer, error) {
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}
	return &Renderer{window: w, opts: opts}, nil
}

func (w *Window) OnResize(fn stage.ResizeFunc) func() {
	return w.listeners.Subscribe(fn)
}

// Run opens the window and blocks until it closes or ctx is done.
// It must be called from the main goroutine.
func (w *Window) Run(ctx context.Context, loop stage.Loop) error {
	width, height := w.Size()
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	err := ebiten.RunGame(&game{ctx: ctx, window: w, loop: loop})
	if err == nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (w *Window) dispatchResize() {
	w.mu.Lock()
	resized := w.resized
	width, height := w.width, w.height
	w.resized = false
	w.mu.Unlock()

	if resized {
		w.listeners.Dispatch(width, height)
	}
}

func (w *Window) setScreen(screen *ebiten.Image) {
	w.mu.Lock()
	w.screen = screen
	w.mu.Unlock()
}

func (w *Window) target() *ebiten.Image {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.screen
}

// game implements ebiten.Game on top of a stage loop.
type game struct {
	ctx    context.Context
	window *Window
	loop   stage.Loop
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	g.window.dispatchResize()

	if o := g.window.overlay; o != nil {
		o.BeginFrame()
		defer o.EndFrame()
	}
	return g.loop.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.window.setScreen(screen)
	g.loop.Render()

	if o := g.window.overlay; o != nil {
		o.Draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := g.window
	w.mu.Lock()
	if outsideWidth != w.width || outsideHeight != w.height {
		w.width, w.height = outsideWidth, outsideHeight
		w.resized = true
	}
	w.mu.Unlock()

	if o := w.overlay; o != nil {
		o.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Renderer strokes the projected wireframe of a scene with ebiten/vector.
type Renderer struct {
	window *Window
	opts   stage.RenderOptions
	width  int
	height int
}

func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
}

func (r *Renderer) Render(s *scene.Scene, c scene.Camera) {
	screen := r.window.target()
	if screen == nil {
		return
	}

	background := s.Background
	if r.opts.ClearColor != (color.RGBA{}) {
		background = r.opts.ClearColor
	}
	screen.Fill(background)

	for _, seg := range scene.Project(s, c, r.width, r.height) {
		vector.StrokeLine(screen, seg.X0, seg.Y0, seg.X1, seg.Y1, r.opts.LineWidth, seg.Color, r.opts.Antialias)
	}
}
