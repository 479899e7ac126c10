package cmd

import (
	"context"
	"fmt"

	"cogentcore.org/core/base/randx"
	"github.com/Carmen-Shannon/oxy-fireball/engine"
	"github.com/Carmen-Shannon/oxy-fireball/engine/animator"
	"github.com/Carmen-Shannon/oxy-fireball/engine/camera"
	"github.com/Carmen-Shannon/oxy-fireball/engine/config"
	"github.com/Carmen-Shannon/oxy-fireball/engine/logger"
	"github.com/Carmen-Shannon/oxy-fireball/engine/params"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fireball/engine/renderer/backend/opengl"
	"github.com/Carmen-Shannon/oxy-fireball/engine/scene"
	"github.com/Carmen-Shannon/oxy-fireball/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	watchConfig bool
	profile     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the fireball window",
	Args:  cobra.NoArgs,
	RunE:  Run,
}

func init() {
	rootCmd.AddCommand(runCmd)
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().BoolVar(&watchConfig, "watch", true, "re-apply [controls] when the config file changes")
		c.Flags().BoolVar(&profile, "profile", false, "log frame rate and memory stats every second")
	}
}

func Run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if profile {
		cfg.Engine.Profiling = true
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	w, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithSwapInterval(cfg.Engine.SwapInterval),
	)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	b, err := opengl.NewBackend()
	if err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("opengl ready", zap.String("version", opengl.Version()))

	r := renderer.NewRenderer(b, renderer.WithClearColor(0.2, 0.2, 0.2, 1), renderer.WithLogger(log))
	defer r.Release()

	slow := mgl32.Vec3(cfg.Animation.SlowAnchor)
	fast := mgl32.Vec3(cfg.Animation.FastAnchor)
	cam := camera.NewCamera(slow, mgl32.Vec3{},
		camera.WithAspect(float32(w.Width())/float32(max(w.Height(), 1))),
		camera.WithController(camera.NewCameraController(slow, mgl32.Vec3{},
			camera.WithRadiusBounds(1.5, 50),
		)),
	)

	store := params.NewStore(cfg.Controls)
	options := []scene.SceneBuilderOption{
		scene.WithLogger(log),
		scene.WithAnchors(slow, fast),
		scene.WithRandom(randx.NewSysRand(cfg.Engine.Seed)),
		scene.WithAnimatorOptions(
			animator.WithSpeedUpTimer(cfg.Animation.SpeedUpTimer),
			animator.WithSpeedUpDuration(cfg.Animation.SpeedUpDuration),
			animator.WithSpeedDownTimer(cfg.Animation.SpeedDownTimer),
			animator.WithSpeedDownDuration(cfg.Animation.SpeedDownDuration),
		),
	}
	if cfg.Engine.Workers > 0 {
		options = append(options, scene.WithWorkers(cfg.Engine.Workers))
	}
	sc, err := scene.NewScene("fireball", cam, r, store, options...)
	if err != nil {
		log.Error("failed to build scene", zap.Error(err))
		return err
	}
	defer sc.Release()

	if watchConfig {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		watcher, err := params.NewWatcher(configPath, store, config.LoadControls, params.WithLogger(log))
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			log.Warn("config hot reload disabled", zap.Error(err))
			_ = watcher.Stop()
		} else {
			defer func() { _ = watcher.Stop() }()
		}
	}

	eng := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithLogger(log),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithRenderFrameLimit(cfg.Engine.FrameLimit),
		engine.WithScene(0, sc),
	)
	bindInput(eng, cam, store, sc.Animator().Speed)

	eng.Run()
	return nil
}
