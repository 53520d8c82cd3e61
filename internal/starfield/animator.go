package starfield

import (
	"context"
	"sync"
	"time"
)

// Animator drives one Field onto one Surface, one step per frame tick.
type Animator struct {
	mu       sync.Mutex
	field    *Field
	surface  Surface
	viewport *Viewport
	frames   int
}

func NewAnimator(field *Field, surface Surface, viewport *Viewport) *Animator {
	w, h := viewport.Size()
	field.Resize(w, h)
	return &Animator{field: field, surface: surface, viewport: viewport}
}

// Run steps the field on every value received from frames until ctx is
// done or frames is closed. The first tick only records the clock. Steps
// never overlap: the next tick is read only after the current draw returns.
func (a *Animator) Run(ctx context.Context, frames <-chan time.Time) error {
	cancel := a.viewport.OnResize(func(width, height int) {
		a.mu.Lock()
		a.field.Resize(width, height)
		a.mu.Unlock()
	})
	defer cancel()

	var prev time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-frames:
			if !ok {
				return nil
			}
			if prev.IsZero() {
				prev = now
				continue
			}
			a.step(now.Sub(prev))
			prev = now
		}
	}
}

func (a *Animator) step(elapsed time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.field.Advance(elapsed)
	a.field.Draw(a.surface)
	a.frames++
}

// Frames reports how many steps have been drawn.
func (a *Animator) Frames() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frames
}
