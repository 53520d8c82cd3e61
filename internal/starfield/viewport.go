package starfield

import "sync"

// Viewport broadcasts surface size changes to registered listeners. Each
// registration returns its own cancel, so instances sharing a viewport
// never overwrite one another's handlers.
type Viewport struct {
	mu        sync.Mutex
	width     int
	height    int
	nextID    int
	listeners map[int]func(width, height int)
}

func NewViewport(width, height int) *Viewport {
	return &Viewport{
		width:     width,
		height:    height,
		listeners: make(map[int]func(int, int)),
	}
}

func (v *Viewport) Size() (width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

// OnResize registers fn and returns the function that removes it.
func (v *Viewport) OnResize(fn func(width, height int)) (cancel func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.listeners, id)
			v.mu.Unlock()
		})
	}
}

// Resize records the new size and notifies listeners synchronously.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	v.width, v.height = width, height
	fns := make([]func(int, int), 0, len(v.listeners))
	for _, fn := range v.listeners {
		fns = append(fns, fn)
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn(width, height)
	}
}

// Listeners reports how many resize handlers are registered.
func (v *Viewport) Listeners() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.listeners)
}
