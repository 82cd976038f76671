package main

import (
	"os"
	"runtime"

	"github.com/gekko3d/instancing/rt/app"
	"github.com/gekko3d/instancing/rt/core"
	"github.com/gekko3d/instancing/rt/gpu"
	"github.com/gekko3d/instancing/rt/logging"
	"github.com/gekko3d/instancing/rt/platform"
	"github.com/google/uuid"
)

func init() {
	// GLFW and the surface must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	cfg := core.DefaultConfig()

	zl := logging.New("instancing", cfg.Debug)
	defer zl.Sync()
	logger := zl.With("run", uuid.NewString())

	if err := run(cfg, logger); err != nil {
		logger.Errorf("%v", err)
		zl.Sync()
		os.Exit(1)
	}
}

func run(cfg core.Config, logger logging.Logger) error {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	window, err := platform.NewWindow(cfg.WindowWidth, cfg.WindowHeight, cfg.WindowTitle)
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := gpu.NewRenderer(window.Handle(), gpu.RendererConfig{
		VSync:      cfg.VSync,
		ClearColor: cfg.ClearColor,
	}, logger)
	if err != nil {
		return err
	}

	application := app.NewApp(cfg, window, renderer, logger)
	defer application.Release()

	if err := application.Init(); err != nil {
		return err
	}
	window.SetResizeCallback(application.Resize)

	logger.Infof("Rendering up to %d cubes, press Escape to quit", cfg.MaxInstances)
	application.Run()
	return nil
}
