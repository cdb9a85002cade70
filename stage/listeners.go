package stage

import (
	"slices"
	"sync"

	"github.com/kamstrup/intmap"
)

// ResizeListeners is a registry of resize callbacks for Host implementations.
// The zero value is ready to use.
type ResizeListeners struct {
	mu    sync.Mutex
	next  uint32
	fns   *intmap.Map[uint32, ResizeFunc]
	order []uint32
}

// Subscribe adds fn. The returned cancel func is idempotent.
func (l *ResizeListeners) Subscribe(fn ResizeFunc) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fns == nil {
		l.fns = intmap.New[uint32, ResizeFunc](8)
	}
	l.next++
	id := l.next
	l.fns.Put(id, fn)
	l.order = append(l.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *ResizeListeners) remove(id uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fns == nil || !l.fns.Has(id) {
		return
	}
	l.fns.Del(id)
	if i := slices.Index(l.order, id); i >= 0 {
		l.order = slices.Delete(l.order, i, i+1)
	}
}

// Dispatch calls every listener in subscription order.
// Listeners may subscribe or cancel from inside the callback.
func (l *ResizeListeners) Dispatch(width, height int) {
	l.mu.Lock()
	fns := make([]ResizeFunc, 0, len(l.order))
	for _, id := range l.order {
		if fn, ok := l.fns.Get(id); ok {
			fns = append(fns, fn)
		}
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(width, height)
	}
}

// Len returns the number of active listeners.
func (l *ResizeListeners) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}
