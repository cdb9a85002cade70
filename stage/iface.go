package stage

import (
	"context"
	"image/color"
	"log/slog"
	"time"

	"github.com/plus3/stagehand/stage/scene"
)

// Renderer draws a scene as seen by a camera into its canvas.
type Renderer interface {
	SetSize(width, height int)
	Render(s *scene.Scene, c scene.Camera)
}

// Canvas is the drawing surface a Manager renders into.
type Canvas interface {
	// Size returns the current viewport size in pixels.
	Size() (width, height int)
	// Context acquires a renderer bound to this canvas.
	Context(opts RenderOptions) (Renderer, error)
}

// ResizeFunc receives the new viewport size.
type ResizeFunc func(width, height int)

// Host supplies frame ticks and viewport resize events.
type Host interface {
	// OnResize registers fn for every resize event until cancel is called.
	// Events are delivered on the frame goroutine, between frames.
	OnResize(fn ResizeFunc) (cancel func())
	// Run calls loop.Update then loop.Render once per tick until ctx is done,
	// Update returns an error, or the host closes.
	Run(ctx context.Context, loop Loop) error
}

// Loop is one iteration of the frame loop, split the way hosts present frames.
type Loop interface {
	Update() error
	Render()
}

// RenderOptions are handed unchanged to Canvas.Context.
type RenderOptions struct {
	ClearColor color.RGBA
	LineWidth  float32
	Antialias  bool
}

// Options configures a Manager.
type Options struct {
	// Canvas is required.
	Canvas Canvas
	// Host drives frames and resize events. Defaults to Canvas when it implements Host.
	Host   Host
	Render RenderOptions
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Now is the clock source. Defaults to time.Now.
	Now func() time.Time
}
