package engine

import (
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-fireball/engine/profiler"
	"github.com/Carmen-Shannon/oxy-fireball/engine/scene"
	"github.com/Carmen-Shannon/oxy-fireball/engine/window"
	"go.uber.org/zap"
)

// engine implements the Engine interface.
// Everything runs on the thread that owns the window's graphics context.
type engine struct {
	logger *zap.Logger

	quit atomic.Bool

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It runs a single-threaded, cooperative frame loop: poll input, run the frame callback,
// advance every active scene in z-order, swap buffers.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameCallback registers the function called once per frame before the scenes advance.
	// Use this for continuous input such as held keys.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key and sizes it to the window.
	// Scenes advance in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining frame order (lower first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run runs the frame loop on the calling goroutine, locked to its OS thread.
	// Blocks until the window closes or Quit is called.
	Run()

	// Quit stops the frame loop after the current frame.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Panics if no window is supplied via WithWindow.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, frame limit, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger: zap.NewNop(),
		scenes: make(map[int]scene.Scene),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.window == nil {
		panic("engine: NewEngine requires a Window")
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	e.window.SetResizeCallback(func(width, height int) {
		for _, s := range e.scenes {
			s.Resize(width, height)
		}
	})
	for _, s := range e.scenes {
		s.Resize(e.window.Width(), e.window.Height())
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	e.window.MakeContextCurrent()
	e.logger.Info("frame loop started", zap.Int("scenes", len(e.scenes)))

	last := time.Now()
	for !e.quit.Load() {
		frameStart := time.Now()
		dt := float32(frameStart.Sub(last).Seconds())
		last = frameStart

		if !e.step(dt) {
			break
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
	e.logger.Info("frame loop stopped")
}

// step runs one frame.
//
// Returns:
//   - bool: false once the window has closed
func (e *engine) step(dt float32) bool {
	if !e.window.PollEvents() {
		return false
	}

	if e.frameCallback != nil {
		e.frameCallback(dt)
	}

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			s.Frame()
		}
	}

	e.window.SwapBuffers()

	if e.profilingEnabled {
		e.profiler.Tick()
	}
	return true
}

func (e *engine) Quit() {
	if e.quit.CompareAndSwap(false, true) {
		e.window.RequestClose()
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.frameCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
	s.Resize(e.window.Width(), e.window.Height())
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

// frameDuration converts a frame rate cap to the minimum frame duration; 0 means uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
