package shader

import "sync"

// ProgramContext tracks which program is currently bound on a graphics context.
// Every Program built against the same context shares it, so binding is skipped when
// the requested program is already active. A fresh context has no program bound.
type ProgramContext struct {
	mu     *sync.Mutex
	active uint32
	bound  bool
}

// NewProgramContext creates a ProgramContext with no program bound.
//
// Returns:
//   - *ProgramContext: the shared binding state
func NewProgramContext() *ProgramContext {
	return &ProgramContext{mu: &sync.Mutex{}}
}

// Active returns the handle of the bound program.
//
// Returns:
//   - uint32: the active program handle
//   - bool: false if no program has been bound since creation or the last Reset
func (c *ProgramContext) Active() (uint32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, c.bound
}

// Reset forgets the bound program, so the next Use always binds.
func (c *ProgramContext) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = 0
	c.bound = false
}

// bind records handle as active and reports whether it differed from the previous one.
func (c *ProgramContext) bind(handle uint32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bound && c.active == handle {
		return false
	}
	c.active = handle
	c.bound = true
	return true
}

// release clears the active program if it is handle.
func (c *ProgramContext) release(handle uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bound && c.active == handle {
		c.active = 0
		c.bound = false
	}
}
