package session

import (
	"context"
	"sync"
	"time"

	"github.com/docviewer/viewer/internal/navigation"
	"github.com/docviewer/viewer/internal/record"
	"github.com/docviewer/viewer/internal/search"
	"github.com/google/uuid"
)

// State is everything a session remembers between requests. It must only be used between
// Registry.Acquire and Release.
type State struct {
	mu sync.Mutex
	// guarded by the registry lock
	lastUsed time.Time
	waiting  int

	Search     *search.Navigator
	Navigation navigation.Context
	// Record is the record opened in the viewer, if any
	Record *record.Record
	Pager  record.Pager
}

// Release hands the state over to the next request of the session
func (s *State) Release() {
	s.mu.Unlock()
}

// Registry keeps one State per session and drops those idle for longer than its timeout
type Registry struct {
	mu      sync.Mutex
	states  map[string]*State
	factory func() *State
	timeout time.Duration
	now     func() time.Time
}

// NewRegistry returns a registry creating new states with factory
func NewRegistry(timeout time.Duration, factory func() *State) *Registry {
	return &Registry{
		states:  map[string]*State{},
		factory: factory,
		timeout: timeout,
		now:     time.Now,
	}
}

// NewID returns a random session identifier
func NewID() string {
	return uuid.NewString()
}

// Acquire returns the state of session id, creating it if needed, and blocks until no other
// request of the same session holds it. Callers must call Release when done.
func (r *Registry) Acquire(id string) *State {
	s := r.reserve(id)
	s.mu.Lock()
	r.acquired(s)
	return s
}

// reserve returns the state of session id and marks it as awaited, so that it is not swept
// before the request gets hold of it
func (r *Registry) reserve(id string) *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[id]
	if !ok {
		s = r.factory()
		r.states[id] = s
	}
	s.waiting++
	s.lastUsed = r.now()
	return s
}

func (r *Registry) acquired(s *State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.waiting--
	s.lastUsed = r.now()
}

// Sweep drops the states idle for longer than the registry timeout and returns how many
// were dropped. States in use or awaited by a request are kept.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, s := range r.states {
		if s.waiting > 0 || !s.mu.TryLock() {
			continue
		}
		if r.now().Sub(s.lastUsed) > r.timeout {
			delete(r.states, id)
			dropped++
		}
		s.mu.Unlock()
	}
	return dropped
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

// Run sweeps the registry every interval until ctx is done. If onSweep is not nil, it is
// called after every sweep with the number of live sessions.
func (r *Registry) Run(ctx context.Context, interval time.Duration, onSweep func(live int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
			if onSweep != nil {
				onSweep(r.Len())
			}
		}
	}
}
