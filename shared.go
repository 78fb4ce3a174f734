package rope

import "sync"

// Shared is a rope which may be used by multiple goroutines. Writers are
// exclusive; readers work on snapshots.
//
// As rope nodes are never modified in place, a snapshot taken under the lock
// stays valid and unchanged for as long as a reader holds it, even while
// writers proceed.
type Shared struct {
	mu   sync.RWMutex
	rope Rope
}

// NewShared wraps a rope for concurrent use.
func NewShared(r Rope) *Shared {
	return &Shared{rope: r}
}

// Snapshot returns the current version of the rope.
func (s *Shared) Snapshot() Rope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rope
}

// Edit runs f with exclusive access to a working copy of the rope. If f
// returns an error, the working copy is dropped and the error is returned;
// otherwise the working copy becomes the current version. f must not retain
// the pointer it is handed.
func (s *Shared) Edit(f func(*Rope) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	working := s.rope
	if err := f(&working); err != nil {
		T().Debugf("shared rope: edit dropped: %v", err)
		return err
	}
	s.rope = working
	return nil
}

// Len returns the length of the current version of the rope.
func (s *Shared) Len() uint64 {
	r := s.Snapshot()
	return r.Len()
}
