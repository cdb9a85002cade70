package stage_test

import (
	"testing"
	"time"

	"github.com/plus3/stagehand/stage"
	"github.com/plus3/stagehand/stage/scene"
	"github.com/stretchr/testify/assert"
)

func TestBaseActorBeforeSetup(t *testing.T) {
	var a stage.BaseActor

	assert.NotPanics(t, func() {
		a.Start()
		a.Update(0.016)
		a.SetScene(scene.New())
		a.SetCamera(scene.NewPerspectiveCamera(75, 1, 0.1, 10))
	})
	assert.Nil(t, a.Scene())
	assert.Nil(t, a.Camera())
}

func TestBaseActorAccessors(t *testing.T) {
	var current *scene.Scene
	var a stage.BaseActor
	a.Setup(
		stage.NewAccessor(func() *scene.Scene { return current }, func(s *scene.Scene) { current = s }),
		stage.NewAccessor[scene.Camera](nil, nil),
	)

	assert.Nil(t, a.Scene())

	first := scene.New()
	current = first
	assert.Same(t, first, a.Scene(), "reads are not cached")

	second := scene.New()
	a.SetScene(second)
	assert.Same(t, second, current)
	assert.Nil(t, a.Camera())
}

func TestAccessor(t *testing.T) {
	var unbound stage.Accessor[int]
	assert.False(t, unbound.Bound())
	assert.Equal(t, 0, unbound.Get())
	assert.NotPanics(t, func() { unbound.Set(3) })

	value := 1
	bound := stage.NewAccessor(func() int { return value }, func(v int) { value = v })
	assert.True(t, bound.Bound())
	bound.Set(7)
	assert.Equal(t, 7, value)
	assert.Equal(t, 7, bound.Get())

	readOnly := stage.NewAccessor(func() int { return value }, nil)
	readOnly.Set(9)
	assert.Equal(t, 7, readOnly.Get())
}

func TestClock(t *testing.T) {
	now := time.Unix(100, 0)
	clock := stage.NewClock(func() time.Time { return now })

	assert.Equal(t, time.Duration(0), clock.Elapsed())
	assert.Equal(t, 0.0, clock.Delta(), "first delta starts the clock")

	now = now.Add(500 * time.Millisecond)
	assert.InDelta(t, 0.5, clock.Delta(), 1e-9)

	now = now.Add(100 * time.Millisecond)
	assert.InDelta(t, 0.1, clock.Delta(), 1e-9)
	assert.Equal(t, 600*time.Millisecond, clock.Elapsed())

	clock.Start()
	assert.Equal(t, time.Duration(0), clock.Elapsed())
	assert.Equal(t, 0.0, clock.Delta())
}

func TestResizeListeners(t *testing.T) {
	t.Run("dispatch in subscription order", func(t *testing.T) {
		var l stage.ResizeListeners
		var calls []string

		l.Subscribe(func(w, h int) { calls = append(calls, "a") })
		l.Subscribe(func(w, h int) { calls = append(calls, "b") })
		l.Subscribe(nil)

		l.Dispatch(10, 20)
		assert.Equal(t, []string{"a", "b"}, calls)
		assert.Equal(t, 2, l.Len())
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		var l stage.ResizeListeners
		count := 0
		cancel := l.Subscribe(func(w, h int) { count++ })
		other := l.Subscribe(func(w, h int) {})

		cancel()
		cancel()
		l.Dispatch(1, 1)

		assert.Equal(t, 0, count)
		assert.Equal(t, 1, l.Len())
		other()
		assert.Equal(t, 0, l.Len())
	})

	t.Run("listeners may cancel themselves while dispatching", func(t *testing.T) {
		var l stage.ResizeListeners
		var sizes [][2]int
		var cancel func()
		cancel = l.Subscribe(func(w, h int) {
			sizes = append(sizes, [2]int{w, h})
			cancel()
		})

		l.Dispatch(3, 4)
		l.Dispatch(5, 6)

		assert.Equal(t, [][2]int{{3, 4}}, sizes)
	})
}
