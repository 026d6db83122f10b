package session

import "time"

func (r *Registry) SetClock(now func() time.Time) {
	r.now = now
}

// Reserve and Acquired split Acquire in two, to stop a request between both steps
func (r *Registry) Reserve(id string) *State {
	return r.reserve(id)
}

func (r *Registry) Acquired(s *State) {
	s.mu.Lock()
	r.acquired(s)
}
