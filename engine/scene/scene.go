package scene

import (
	"fmt"
	"io/fs"
	"sync"

	"cogentcore.org/core/base/randx"
	"github.com/Carmen-Shannon/oxy-fireball/common"
	"github.com/Carmen-Shannon/oxy-fireball/engine/animator"
	"github.com/Carmen-Shannon/oxy-fireball/engine/camera"
	"github.com/Carmen-Shannon/oxy-fireball/engine/model"
	"github.com/Carmen-Shannon/oxy-fireball/engine/params"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Slot keys of the fireball geometry.
const (
	SlotBackground = "background"
	SlotRim        = "rim"
	SlotVortex     = "vortex"
	SlotBase       = "base"
)

// Shell radii of the fireball layers.
const (
	BaseScale   = 1.0
	RimScale    = 1.3
	VortexScale = 1.6
)

// jitterScale scales shake intensity times speed into a per-axis jitter bound b.
// Each axis is drawn uniformly from [-b, b).
const jitterScale = 0.5

// Scene drives the fireball effect one frame at a time: it reads the parameter store,
// rebuilds stale geometry, advances the speed state machine, moves and shakes the camera,
// pushes uniforms to every program and issues the ordered draw passes.
// Frame must be called from the thread that owns the graphics context.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether Frame does any work.
	Active() bool

	// SetActive enables or disables the scene.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Animator returns the speed state machine.
	Animator() animator.SpeedAnimator

	// Store returns the parameter store the scene reads each frame.
	Store() *params.Store

	// Slot returns the geometry slot for key, or nil if unknown.
	//
	// Parameters:
	//   - key: one of the Slot* constants
	//
	// Returns:
	//   - *model.Slot: the slot
	Slot(key string) *model.Slot

	// Time returns the frame counter pushed as u_Time.
	Time() float32

	// Angle returns the accumulated vortex angle pushed as u_Angle.
	Angle() float32

	// Jitter returns the camera jitter applied by the last frame.
	Jitter() mgl32.Vec3

	// Resize propagates a new framebuffer size to the renderer, the camera projection and the
	// background dimensions. Applying the same size again changes nothing.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	Resize(width, height int)

	// Frame advances the effect by one frame and draws it.
	Frame()

	// Release frees every slot's geometry and stops the tessellation workers.
	Release()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.Mutex

	name   string
	active bool
	logger *zap.Logger

	cam      camera.Camera
	renderer renderer.Renderer
	store    *params.Store
	animator animator.SpeedAnimator
	rng      randx.Rand

	shaderFS    fs.FS
	tessellator *model.Tessellator
	workers     int
	animOptions []animator.SpeedAnimatorBuilderOption

	slots    map[string]*model.Slot
	programs map[string]shader.Program

	slowAnchor mgl32.Vec3
	fastAnchor mgl32.Vec3

	prev   params.Controls
	time   float32
	angle  float32
	jitter mgl32.Vec3
	width  int
	height int
}

var _ Scene = &scene{}

// NewScene creates the fireball scene and links its programs through the renderer.
// Panics if the camera, renderer or store is nil.
//
// Parameters:
//   - name: the scene's identifier
//   - cam: the camera the scene moves and shakes
//   - r: the renderer programs are registered with and draws go through
//   - store: the parameter store read each frame
//   - options: SceneBuilderOption functions to configure the scene
//
// Returns:
//   - Scene: the scene
//   - error: a wrapped *shader.CompileError or *shader.LinkError if a program fails to build
func NewScene(name string, cam camera.Camera, r renderer.Renderer, store *params.Store, options ...SceneBuilderOption) (Scene, error) {
	if cam == nil || r == nil || store == nil {
		panic("scene: NewScene requires a non-nil Camera, Renderer and Store")
	}

	s := &scene{
		mu:         &sync.Mutex{},
		name:       name,
		active:     true,
		logger:     zap.NewNop(),
		cam:        cam,
		renderer:   r,
		store:      store,
		shaderFS:   embeddedShaders,
		slots:      make(map[string]*model.Slot),
		programs:   make(map[string]shader.Program),
		slowAnchor: mgl32.Vec3{0, 0, 6},
		fastAnchor: mgl32.Vec3{0, 0, 4},
	}
	for _, opt := range options {
		opt(s)
	}

	s.prev = store.Snapshot()
	if s.animator == nil {
		opts := append([]animator.SpeedAnimatorBuilderOption{
			animator.WithInitialSpeed(s.prev.Speed),
			animator.WithLogger(s.logger),
		}, s.animOptions...)
		s.animator = animator.NewSpeedAnimator(opts...)
	}
	if s.rng == nil {
		s.rng = randx.NewSysRand(1)
	}
	if s.tessellator == nil {
		topts := []model.TessellatorBuilderOption{model.WithLogger(s.logger)}
		if s.workers > 0 {
			topts = append(topts, model.WithWorkers(s.workers))
		}
		s.tessellator = model.NewTessellator(topts...)
	}

	origin := mgl32.Vec3{}
	s.slots[SlotBackground] = model.NewSlot(SlotBackground, model.SquareFactory(origin))
	s.slots[SlotRim] = model.NewSlot(SlotRim, model.IcosphereFactory(origin, RimScale))
	s.slots[SlotVortex] = model.NewSlot(SlotVortex, model.IcosphereFactory(origin, VortexScale))
	s.slots[SlotBase] = model.NewSlot(SlotBase, model.IcosphereFactory(origin, BaseScale))

	for _, key := range programKeys {
		shaders, err := loadShaders(s.shaderFS, key)
		if err != nil {
			s.tessellator.Stop()
			return nil, fmt.Errorf("failed to load %s shaders: %w", key, err)
		}
		p, err := r.RegisterProgram(key, shaders...)
		if err != nil {
			s.tessellator.Stop()
			return nil, err
		}
		s.programs[key] = p
	}

	s.width, s.height = r.Size()
	s.logger.Info("scene created", zap.String("name", name), zap.Int("programs", len(s.programs)))
	return s, nil
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.renderer
}

func (s *scene) Animator() animator.SpeedAnimator {
	return s.animator
}

func (s *scene) Store() *params.Store {
	return s.store
}

func (s *scene) Slot(key string) *model.Slot {
	return s.slots[key]
}

func (s *scene) Time() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.time
}

func (s *scene) Angle() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.angle
}

func (s *scene) Jitter() mgl32.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jitter
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer.SetSize(width, height)
	s.cam.SetAspectRatio(float32(width) / float32(height))
	s.cam.UpdateProjectionMatrix()
	s.width, s.height = width, height
}

func (s *scene) Frame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}

	controls := s.store.Snapshot()
	s.handleInput(controls)
	s.rebuild(controls)

	speed := s.animator.Tick()
	s.angle += speed
	s.moveCamera(speed, controls.Shake)
	s.pushUniforms(speed, controls)
	s.draw(controls)

	s.time++
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots {
		slot.Release()
	}
	s.tessellator.Stop()
}

// handleInput compares the snapshot against the previous frame's. Any manual change hands
// the speed back to the idle phase; a changed speed is adopted as the current speed and a
// reload request invalidates every slot and restarts the clock.
func (s *scene) handleInput(c params.Controls) {
	prev := s.prev
	s.prev = c
	if c == prev {
		return
	}

	speed := s.animator.Speed()
	if c.Speed != prev.Speed || c.SpeedEdits != prev.SpeedEdits {
		speed = c.Speed
	}
	s.animator.Override(speed)

	if c.Reload != prev.Reload {
		for _, slot := range s.slots {
			slot.Invalidate()
		}
		s.time = 0
		s.angle = 0
		s.logger.Info("scene reloaded", zap.String("name", s.name), zap.Uint64("generation", c.Reload))
	}
}

// rebuild brings every slot that will be drawn this frame up to its requested level.
func (s *scene) rebuild(c params.Controls) {
	requests := []model.RebuildRequest{
		{Slot: s.slots[SlotBackground], Level: 0},
		{Slot: s.slots[SlotBase], Level: c.BaseTessellation},
	}
	if c.ShowRim {
		requests = append(requests, model.RebuildRequest{Slot: s.slots[SlotRim], Level: c.RimTessellation})
	}
	if c.ShowVortex {
		requests = append(requests, model.RebuildRequest{Slot: s.slots[SlotVortex], Level: c.VortexTessellation})
	}
	s.tessellator.Rebuild(s.renderer.Backend(), requests...)
}

// moveCamera eases the camera between the fast and slow anchors and applies the frame's shake.
func (s *scene) moveCamera(speed, shake float32) {
	t := common.EaseInOutExpo(1 - speed)
	s.cam.SetPosition(common.LerpVec3(s.fastAnchor, s.slowAnchor, t))

	bound := shake * speed * jitterScale
	s.jitter = mgl32.Vec3{
		(2*s.rng.Float32() - 1) * bound,
		(2*s.rng.Float32() - 1) * bound,
		(2*s.rng.Float32() - 1) * bound,
	}
	s.cam.Update(s.jitter)
}

func (s *scene) pushUniforms(speed float32, c params.Controls) {
	color1 := common.ResolveColor(c.PrimaryColor)
	color2 := common.ResolveColor(c.SecondaryColor)
	for _, key := range programKeys {
		p := s.programs[key]
		p.SetTime(s.time)
		p.SetSpeed(speed)
		p.SetAngle(s.angle)
		p.SetColor1(color1)
		p.SetColor2(color2)
	}
	s.programs[ProgramBackground].SetDimensions(float32(s.width), float32(s.height))
}

// draw issues the passes in order: background, rim, vortex, base.
func (s *scene) draw(c params.Controls) {
	r := s.renderer
	color := common.ResolveColor(c.PrimaryColor)
	r.Clear()

	r.SetDepthTest(false)
	r.SetCullFace(backend.CullNone)
	s.pass(SlotBackground, ProgramBackground)
	r.SetDepthTest(true)

	if c.ShowRim {
		r.SetCullFace(backend.CullFront)
		s.pass(SlotRim, ProgramRim, color)
	}
	if c.ShowVortex {
		r.SetCullFace(backend.CullNone)
		s.pass(SlotVortex, ProgramVortex, color)
	}

	r.SetCullFace(backend.CullBack)
	s.pass(SlotBase, ProgramFireball, color)
}

func (s *scene) pass(slotKey, programKey string, color ...mgl32.Vec4) {
	m := s.slots[slotKey].Model()
	if m == nil {
		return
	}
	s.renderer.Render(s.cam, []model.Drawable{m}, []shader.Program{s.programs[programKey]}, color...)
}
