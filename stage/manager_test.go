package stage_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/plus3/stagehand/stage"
	"github.com/plus3/stagehand/stage/headless"
	"github.com/plus3/stagehand/stage/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type traceActor struct {
	stage.BaseActor
	name   string
	events *[]string

	startSawScene  bool
	startSawCamera bool
	updates        int
	deltas         []float64
	cameras        []scene.Camera
}

func (a *traceActor) Setup(sceneAccessor stage.Accessor[*scene.Scene], cameraAccessor stage.Accessor[scene.Camera]) {
	*a.events = append(*a.events, "setup:"+a.name)
	a.BaseActor.Setup(sceneAccessor, cameraAccessor)
}

func (a *traceActor) Start() {
	*a.events = append(*a.events, "start:"+a.name)
	a.startSawScene = a.Scene() != nil
	a.startSawCamera = a.Camera() != nil
}

func (a *traceActor) Update(delta float64) {
	a.updates++
	*a.events = append(*a.events, fmt.Sprintf("update:%s:%d", a.name, a.updates))
	a.deltas = append(a.deltas, delta)
	a.cameras = append(a.cameras, a.Camera())
}

func newHeadlessManager(t *testing.T, cfg headless.Config) (*stage.Manager, *headless.Window) {
	t.Helper()
	if cfg.Hz == 0 {
		cfg.Hz = 1000
	}
	window := headless.New(cfg)
	m, err := stage.NewManager(stage.Options{Canvas: window, Logger: quietLogger})
	require.NoError(t, err)
	return m, window
}

func recorderOf(t *testing.T, m *stage.Manager) *headless.Recorder {
	t.Helper()
	recorder, ok := m.Renderer().(*headless.Recorder)
	require.True(t, ok)
	return recorder
}

type failingCanvas struct{ err error }

func (c failingCanvas) Size() (int, int) { return 640, 480 }

func (c failingCanvas) Context(stage.RenderOptions) (stage.Renderer, error) { return nil, c.err }

type canvasOnly struct{ contexts int }

func (c *canvasOnly) Size() (int, int) { return 640, 480 }

func (c *canvasOnly) Context(opts stage.RenderOptions) (stage.Renderer, error) {
	c.contexts++
	return &headless.Recorder{Options: opts}, nil
}

func TestNewManager(t *testing.T) {
	t.Run("missing canvas", func(t *testing.T) {
		m, err := stage.NewManager(stage.Options{Logger: quietLogger})
		assert.Nil(t, m)
		assert.ErrorIs(t, err, stage.ErrNoCanvas)
	})

	t.Run("nil canvas pointer", func(t *testing.T) {
		m, err := stage.NewManager(stage.Options{Canvas: (*headless.Window)(nil), Logger: quietLogger})
		assert.Nil(t, m)
		assert.ErrorIs(t, err, stage.ErrNoCanvas)
	})

	t.Run("context failure is wrapped", func(t *testing.T) {
		boom := errors.New("no gl")
		_, err := stage.NewManager(stage.Options{Canvas: failingCanvas{err: boom}, Logger: quietLogger})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("defaults", func(t *testing.T) {
		m, _ := newHeadlessManager(t, headless.Config{Width: 800, Height: 600})

		assert.NotNil(t, m.Scene())
		assert.Equal(t, 0, m.Scene().Len())

		camera, ok := m.Camera().(*scene.PerspectiveCamera)
		require.True(t, ok)
		assert.Equal(t, float32(75), camera.FOV)
		assert.InDelta(t, 800.0/600.0, camera.Aspect, 1e-6)

		w, h := recorderOf(t, m).Size()
		assert.Equal(t, 800, w)
		assert.Equal(t, 600, h)
	})

	t.Run("render options pass through", func(t *testing.T) {
		window := headless.New(headless.Config{})
		opts := stage.RenderOptions{LineWidth: 3, Antialias: true}
		m, err := stage.NewManager(stage.Options{Canvas: window, Render: opts, Logger: quietLogger})
		require.NoError(t, err)

		assert.Equal(t, opts, recorderOf(t, m).Options)
	})

	t.Run("start without host", func(t *testing.T) {
		canvas := &canvasOnly{}
		m, err := stage.NewManager(stage.Options{Canvas: canvas, Logger: quietLogger})
		require.NoError(t, err)
		assert.Equal(t, 1, canvas.contexts)

		assert.ErrorIs(t, m.Start(context.Background()), stage.ErrNoHost)
	})

	t.Run("explicit host", func(t *testing.T) {
		host := headless.New(headless.Config{Hz: 1000, Frames: 2})
		m, err := stage.NewManager(stage.Options{Canvas: &canvasOnly{}, Host: host, Logger: quietLogger})
		require.NoError(t, err)

		assert.NoError(t, m.Start(context.Background()))
		assert.Equal(t, int64(2), m.Stats().Frames)
	})
}

func TestManagerLifecycle(t *testing.T) {
	t.Run("setup then start then update in order", func(t *testing.T) {
		m, _ := newHeadlessManager(t, headless.Config{Frames: 2})

		var events []string
		a := &traceActor{name: "a", events: &events}
		b := &traceActor{name: "b", events: &events}

		require.NoError(t, m.Start(context.Background(), a, b))

		assert.Equal(t, []string{
			"setup:a", "setup:b",
			"start:a", "start:b",
			"update:a:1", "update:b:1",
			"update:a:2", "update:b:2",
		}, events)

		assert.True(t, a.startSawScene)
		assert.True(t, a.startSawCamera)
		assert.True(t, b.startSawScene)
		assert.True(t, b.startSawCamera)
	})

	t.Run("deltas come from the clock", func(t *testing.T) {
		window := headless.New(headless.Config{Hz: 1000, Frames: 3})
		now := time.Unix(0, 0)
		m, err := stage.NewManager(stage.Options{
			Canvas: window,
			Logger: quietLogger,
			Now: func() time.Time {
				now = now.Add(250 * time.Millisecond)
				return now
			},
		})
		require.NoError(t, err)

		var events []string
		a := &traceActor{name: "a", events: &events}
		require.NoError(t, m.Start(context.Background(), a))

		assert.Equal(t, []float64{0.25, 0.25, 0.25}, a.deltas)
	})

	t.Run("renders once per frame", func(t *testing.T) {
		m, _ := newHeadlessManager(t, headless.Config{Frames: 4})

		box := &stage.ActorFunc{OnStart: func(a *stage.ActorFunc) {
			a.Scene().Add(scene.NewObject("box", scene.NewBox(1, 1, 1)))
		}}
		require.NoError(t, m.Start(context.Background(), box))

		recorder := recorderOf(t, m)
		assert.Equal(t, 4, recorder.Renders())
		lastScene, lastCamera := recorder.Last()
		assert.Same(t, m.Scene(), lastScene)
		assert.Equal(t, m.Camera(), lastCamera)
		assert.Equal(t, 1, m.Scene().Len())
	})

	t.Run("start twice", func(t *testing.T) {
		m, _ := newHeadlessManager(t, headless.Config{Frames: 1})
		require.NoError(t, m.Start(context.Background()))
		assert.ErrorIs(t, m.Start(context.Background()), stage.ErrAlreadyStarted)
	})

	t.Run("stop from an actor", func(t *testing.T) {
		m, _ := newHeadlessManager(t, headless.Config{})

		stopper := &stage.ActorFunc{OnUpdate: func(a *stage.ActorFunc, delta float64) {
			if m.Stats().Frames == 4 {
				m.Stop()
			}
		}}

		assert.NoError(t, m.Start(context.Background(), stopper))
		assert.Equal(t, int64(5), m.Stats().Frames)
	})

	t.Run("context cancellation", func(t *testing.T) {
		m, _ := newHeadlessManager(t, headless.Config{})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() {
			done <- m.Start(ctx)
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("manager did not stop after context cancellation")
		}
		assert.Greater(t, m.Stats().Frames, int64(0))
	})

	t.Run("stop before start", func(t *testing.T) {
		m, _ := newHeadlessManager(t, headless.Config{Frames: 1})
		m.Stop()
		assert.ErrorIs(t, m.Start(context.Background()), stage.ErrAlreadyStarted)
	})
}

func TestManagerSceneAndCamera(t *testing.T) {
	t.Run("camera swap is seen by every actor", func(t *testing.T) {
		m, _ := newHeadlessManager(t, headless.Config{Frames: 3})
		original := m.Camera()
		replacement := scene.NewOrthographicCamera(10, 1, 0.1, 100)

		var events []string
		swapper := &stage.ActorFunc{OnUpdate: func(a *stage.ActorFunc, delta float64) {
			if m.Stats().Frames == 1 {
				m.SetCamera(replacement)
			}
		}}
		first := &traceActor{name: "first", events: &events}
		second := &traceActor{name: "second", events: &events}

		require.NoError(t, m.Start(context.Background(), first, swapper, second))

		assert.Equal(t, []scene.Camera{original, original, replacement}, first.cameras)
		assert.Equal(t, []scene.Camera{original, replacement, replacement}, second.cameras)
	})

	t.Run("actors replace the scene through their accessor", func(t *testing.T) {
		m, _ := newHeadlessManager(t, headless.Config{Frames: 1})
		replacement := scene.New()

		actor := &stage.ActorFunc{OnStart: func(a *stage.ActorFunc) {
			a.SetScene(replacement)
		}}
		require.NoError(t, m.Start(context.Background(), actor))

		assert.Same(t, replacement, m.Scene())
	})

	t.Run("nil scene skips rendering", func(t *testing.T) {
		m, _ := newHeadlessManager(t, headless.Config{Frames: 3})

		actor := &stage.ActorFunc{OnStart: func(a *stage.ActorFunc) {
			a.SetScene(nil)
		}}
		require.NoError(t, m.Start(context.Background(), actor))

		stats := m.Stats()
		assert.Equal(t, int64(3), stats.Frames)
		assert.Equal(t, int64(3), stats.SkippedRenders)
		assert.Equal(t, 0, recorderOf(t, m).Renders())
	})

	t.Run("nil camera skips only while unset", func(t *testing.T) {
		m, _ := newHeadlessManager(t, headless.Config{Frames: 4})
		camera := m.Camera()

		actor := &stage.ActorFunc{OnUpdate: func(a *stage.ActorFunc, delta float64) {
			switch m.Stats().Frames {
			case 0:
				a.SetCamera(nil)
			case 2:
				a.SetCamera(camera)
			}
		}}
		require.NoError(t, m.Start(context.Background(), actor))

		assert.Equal(t, int64(2), m.Stats().SkippedRenders)
		assert.Equal(t, 2, recorderOf(t, m).Renders())
	})

	t.Run("nil camera pointer skips rendering", func(t *testing.T) {
		m, _ := newHeadlessManager(t, headless.Config{Frames: 2})
		m.SetCamera((*scene.PerspectiveCamera)(nil))

		require.NoError(t, m.Start(context.Background()))

		assert.Equal(t, int64(2), m.Stats().SkippedRenders)
		assert.Equal(t, 0, recorderOf(t, m).Renders())
	})
}

func TestManagerResize(t *testing.T) {
	t.Run("resize updates renderer and camera", func(t *testing.T) {
		m, window := newHeadlessManager(t, headless.Config{Width: 800, Height: 600})

		window.Resize(1024, 512)
		window.DispatchResizes()

		w, h := recorderOf(t, m).Size()
		assert.Equal(t, 1024, w)
		assert.Equal(t, 512, h)
		assert.InDelta(t, 2.0, m.Camera().(*scene.PerspectiveCamera).Aspect, 1e-6)

		window.Resize(300, 300)
		window.DispatchResizes()
		assert.InDelta(t, 1.0, m.Camera().(*scene.PerspectiveCamera).Aspect, 1e-6)
	})

	t.Run("resize is delivered before the next frame", func(t *testing.T) {
		m, window := newHeadlessManager(t, headless.Config{Width: 800, Height: 600, Frames: 1})
		window.Resize(400, 100)

		var aspect float32
		probe := &stage.ActorFunc{OnUpdate: func(a *stage.ActorFunc, delta float64) {
			aspect = a.Camera().(*scene.PerspectiveCamera).Aspect
		}}
		require.NoError(t, m.Start(context.Background(), probe))

		assert.InDelta(t, 4.0, aspect, 1e-6)
	})

	t.Run("resize without camera", func(t *testing.T) {
		m, window := newHeadlessManager(t, headless.Config{})
		m.SetCamera(nil)

		window.Resize(640, 480)
		assert.NotPanics(t, window.DispatchResizes)

		w, h := recorderOf(t, m).Size()
		assert.Equal(t, 640, w)
		assert.Equal(t, 480, h)
	})

	t.Run("dispose cancels the subscription", func(t *testing.T) {
		m, window := newHeadlessManager(t, headless.Config{Width: 800, Height: 600})
		m.Dispose()
		m.Dispose()

		window.Resize(100, 100)
		window.DispatchResizes()

		w, h := recorderOf(t, m).Size()
		assert.Equal(t, 800, w)
		assert.Equal(t, 600, h)
	})
}

func TestManagerStats(t *testing.T) {
	m, _ := newHeadlessManager(t, headless.Config{Frames: 3})

	var events []string
	require.NoError(t, m.Start(context.Background(),
		&traceActor{name: "a", events: &events},
		&stage.ActorFunc{},
	))

	stats := m.Stats()
	assert.Equal(t, int64(3), stats.Frames)
	require.Len(t, stats.Actors, 2)
	assert.Equal(t, "traceActor", stats.Actors[0].Name)
	assert.Equal(t, "ActorFunc", stats.Actors[1].Name)
	for _, actor := range stats.Actors {
		assert.Equal(t, int64(3), actor.UpdateCount)
		assert.LessOrEqual(t, actor.MinDuration, actor.MaxDuration)
		assert.Equal(t, actor.TotalDuration/3, actor.AvgDuration)
	}
}

func TestManagerStatsConcurrentRead(t *testing.T) {
	m, _ := newHeadlessManager(t, headless.Config{Hz: 1000, Frames: 50})

	done := make(chan struct{})
	reads := make(chan int64)
	go func() {
		var last int64
		for {
			select {
			case <-done:
				reads <- last
				return
			default:
				stats := m.Stats()
				if stats.Frames < last {
					reads <- -1
					return
				}
				last = stats.Frames
			}
		}
	}()

	require.NoError(t, m.Start(context.Background(), &stage.ActorFunc{}))
	close(done)

	assert.GreaterOrEqual(t, <-reads, int64(0), "frame count never goes backwards")
	assert.Equal(t, int64(50), m.Stats().Frames)
}
