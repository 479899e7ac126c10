package model

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend"
	"go.uber.org/zap"
)

// Tessellator rebuilds stale slots. Mesh generation is fanned out to a worker pool and joined
// before any upload, so every backend call stays on the caller's (graphics) thread.
type Tessellator struct {
	pool   worker.DynamicWorkerPool
	logger *zap.Logger
}

// TessellatorBuilderOption is a functional option for configuring a Tessellator.
type TessellatorBuilderOption func(*tessellatorConfig)

type tessellatorConfig struct {
	workers int
	logger  *zap.Logger
}

// WithWorkers is an option builder that sets the worker pool size. Defaults to GOMAXPROCS.
//
// Parameters:
//   - n: the number of workers
//
// Returns:
//   - TessellatorBuilderOption: a function that applies the workers option
func WithWorkers(n int) TessellatorBuilderOption {
	return func(c *tessellatorConfig) {
		c.workers = n
	}
}

// WithLogger is an option builder that sets the logger rebuilds are reported to.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - TessellatorBuilderOption: a function that applies the logger option
func WithLogger(logger *zap.Logger) TessellatorBuilderOption {
	return func(c *tessellatorConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewTessellator creates a Tessellator with its own worker pool.
//
// Parameters:
//   - options: TessellatorBuilderOption functions
//
// Returns:
//   - *Tessellator: the tessellator
func NewTessellator(options ...TessellatorBuilderOption) *Tessellator {
	c := &tessellatorConfig{
		workers: runtime.GOMAXPROCS(0),
		logger:  zap.NewNop(),
	}
	for _, option := range options {
		option(c)
	}
	return &Tessellator{
		pool:   worker.NewDynamicWorkerPool(c.workers, 16, 1*time.Second),
		logger: c.logger,
	}
}

// Rebuild brings every requested slot up to date. Slots that are not stale are skipped,
// and a slot listed twice is rebuilt once at the first requested level.
//
// Parameters:
//   - b: the backend to upload to
//   - requests: the slots and their desired levels
//
// Returns:
//   - int: the number of slots rebuilt
func (t *Tessellator) Rebuild(b backend.Backend, requests ...RebuildRequest) int {
	seen := make(map[*Slot]bool, len(requests))
	stale := make([]RebuildRequest, 0, len(requests))
	for _, r := range requests {
		if r.Slot == nil || seen[r.Slot] || !r.Slot.Stale(r.Level) {
			continue
		}
		seen[r.Slot] = true
		stale = append(stale, r)
	}
	if len(stale) == 0 {
		return 0
	}

	meshes := make([]Mesh, len(stale))
	var wg sync.WaitGroup
	for i, r := range stale {
		wg.Add(1)
		t.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				meshes[i] = r.Slot.Tessellate(r.Level)
				return nil, nil
			},
		})
	}
	wg.Wait()

	for i, r := range stale {
		r.Slot.Replace(b, r.Level, meshes[i])
		logRebuild(t.logger, r.Slot)
	}
	return len(stale)
}

// Stop shuts the worker pool down. The Tessellator must not be used afterwards.
func (t *Tessellator) Stop() {
	t.pool.Stop()
}
