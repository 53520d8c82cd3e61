package chat

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrUnknownProfile  = errors.New("unknown chat profile")
	ErrTooManySessions = errors.New("too many chat sessions")
	ErrNotFound        = errors.New("chat session not found")
)

const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 1000
)

type RegistryOptions struct {
	TTL         time.Duration
	MaxSessions int
	Observer    Observer
	OnTurn      func(profile string, outcome Outcome)
	OnCount     func(n int)
	// OnUnmount is called with the id of every widget that leaves the
	// registry, whether unmounted, swept or closed with the registry.
	OnUnmount func(id string)
}

// Registry holds the mounted widgets of every visitor.
type Registry struct {
	mu        sync.RWMutex
	widgets   map[string]*Widget
	completer Completer
	opts      RegistryOptions
	stopChan  chan struct{}
	stopOnce  sync.Once
}

// NewRegistry starts a sweeper that unmounts widgets idle for longer than
// the TTL. Call Close to stop it.
func NewRegistry(completer Completer, opts RegistryOptions) *Registry {
	if opts.TTL <= 0 {
		opts.TTL = DefaultSessionTTL
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}

	r := &Registry{
		widgets:   make(map[string]*Widget),
		completer: completer,
		opts:      opts,
		stopChan:  make(chan struct{}),
	}

	// Cleanup goroutine
	go func() {
		ticker := time.NewTicker(sweepInterval(opts.TTL))
		defer ticker.Stop()
		for {
			select {
			case <-r.stopChan:
				return
			case now := <-ticker.C:
				if n := r.Sweep(now); n > 0 {
					slog.Info("swept idle chat sessions", "count", n)
				}
			}
		}
	}()

	return r
}

func sweepInterval(ttl time.Duration) time.Duration {
	if d := ttl / 2; d > time.Second {
		return d
	}
	return time.Second
}

func (r *Registry) TTL() time.Duration { return r.opts.TTL }

// Mount creates a widget for the named profile.
func (r *Registry) Mount(profileName string) (*Widget, error) {
	p, ok := LookupProfile(profileName)
	if !ok {
		return nil, ErrUnknownProfile
	}

	r.mu.Lock()
	if len(r.widgets) >= r.opts.MaxSessions {
		r.mu.Unlock()
		return nil, ErrTooManySessions
	}
	w := NewWidget(p, r.completer, r.opts.Observer)
	w.onTurn = r.opts.OnTurn
	r.widgets[w.id] = w
	n := len(r.widgets)
	r.mu.Unlock()

	r.reportCount(n)
	return w, nil
}

func (r *Registry) Get(id string) (*Widget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.widgets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return w, nil
}

// Unmount closes and forgets the widget.
func (r *Registry) Unmount(id string) error {
	r.mu.Lock()
	w, ok := r.widgets[id]
	if ok {
		delete(r.widgets, id)
	}
	n := len(r.widgets)
	r.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	w.Close()
	r.reportUnmount(id)
	r.reportCount(n)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.widgets)
}

// Sweep unmounts idle widgets last used before now minus the TTL and
// reports how many were removed. Widgets awaiting a reply are kept.
func (r *Registry) Sweep(now time.Time) int {
	var expired []*Widget

	r.mu.Lock()
	for id, w := range r.widgets {
		last, idle := w.idleSince()
		if idle && now.Sub(last) > r.opts.TTL {
			delete(r.widgets, id)
			expired = append(expired, w)
		}
	}
	n := len(r.widgets)
	r.mu.Unlock()

	for _, w := range expired {
		w.Close()
		r.reportUnmount(w.id)
	}
	if len(expired) > 0 {
		r.reportCount(n)
	}
	return len(expired)
}

// Close stops the sweeper and unmounts every widget.
func (r *Registry) Close() {
	r.stopOnce.Do(func() { close(r.stopChan) })

	r.mu.Lock()
	widgets := r.widgets
	r.widgets = make(map[string]*Widget)
	r.mu.Unlock()

	for _, w := range widgets {
		w.Close()
		r.reportUnmount(w.id)
	}
	r.reportCount(0)
}

func (r *Registry) reportCount(n int) {
	if r.opts.OnCount != nil {
		r.opts.OnCount(n)
	}
}

func (r *Registry) reportUnmount(id string) {
	if r.opts.OnUnmount != nil {
		r.opts.OnUnmount(id)
	}
}
