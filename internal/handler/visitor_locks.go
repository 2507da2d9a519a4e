package handler

import "sync"

// visitorLocks serializes requests per visitor so a session's
// load, mutate and flush steps never interleave with another request.
type visitorLocks struct {
	mu    sync.Mutex
	locks map[string]*visitorLock
}

type visitorLock struct {
	mu   sync.Mutex
	refs int
}

func newVisitorLocks() *visitorLocks {
	return &visitorLocks{locks: make(map[string]*visitorLock)}
}

// Lock blocks until id is free and returns the matching unlock.
func (v *visitorLocks) Lock(id string) func() {
	v.mu.Lock()
	l, ok := v.locks[id]
	if !ok {
		l = &visitorLock{}
		v.locks[id] = l
	}
	l.refs++
	v.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		v.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(v.locks, id)
		}
		v.mu.Unlock()
	}
}
