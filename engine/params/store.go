package params

import "sync"

// Store is the parameter store shared between input callbacks, the config watcher and the frame loop.
// Writers mutate it under a lock; the frame loop reads one immutable Snapshot per frame.
type Store struct {
	mu       *sync.Mutex
	controls Controls
}

// NewStore creates a Store holding the normalized initial controls.
//
// Parameters:
//   - initial: the starting controls
//
// Returns:
//   - *Store: the store
func NewStore(initial Controls) *Store {
	return &Store{
		mu:       &sync.Mutex{},
		controls: initial.Normalize(),
	}
}

// Snapshot returns a copy of the current controls.
func (s *Store) Snapshot() Controls {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controls
}

// Update applies fn to the controls and normalizes the result.
//
// Parameters:
//   - fn: the mutation to apply
//
// Returns:
//   - Controls: the controls after the update
func (s *Store) Update(fn func(*Controls)) Controls {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.controls
	fn(&next)
	s.controls = next.Normalize()
	return s.controls
}

// Apply replaces every persisted control with c. The reload generation and speed edit count are kept.
//
// Parameters:
//   - c: the new controls
func (s *Store) Apply(c Controls) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Reload = s.controls.Reload
	c.SpeedEdits = s.controls.SpeedEdits
	s.controls = c.Normalize()
}

// RequestReload bumps the reload generation so the next frame rebuilds the scene.
func (s *Store) RequestReload() {
	s.Update(func(c *Controls) {
		c.Reload++
	})
}
