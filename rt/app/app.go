package app

import (
	"fmt"

	"github.com/gekko3d/instancing/rt/core"
	"github.com/gekko3d/instancing/rt/logging"
	"github.com/go-gl/mathgl/mgl32"
)

// Window is the part of the platform window the frame loop drives.
type Window interface {
	Time() float64
	KeyPressed(key core.Key) bool
	ShouldClose() bool
	RequestClose()
	PollEvents()
	FramebufferSize() (int, int)
}

// Renderer is the GPU side of the frame loop.
type Renderer interface {
	Upload(mesh core.Mesh, instances *core.InstanceArena) error
	Resize(width, height int) error
	Clear() error
	UploadCamera(view, projection mgl32.Mat4) error
	DrawInstanced(indexCount, instanceCount uint32)
	Present() error
	Release()
}

type Viewport struct {
	Width  int
	Height int
}

func (v Viewport) Aspect() float32 {
	if v.Height == 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// App holds all renderer state for one run: nothing lives in package globals.
type App struct {
	Config   core.Config
	Window   Window
	Renderer Renderer
	Camera   *core.Camera
	Mesh     core.Mesh
	Arena    *core.InstanceArena
	Profiler *Profiler
	Logger   logging.Logger

	Viewport      Viewport
	resizePending bool

	LastTime float64
	released bool
}

func NewApp(cfg core.Config, window Window, renderer Renderer, logger logging.Logger) *App {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	cfg = cfg.WithDefaults()
	return &App{
		Config:   cfg,
		Window:   window,
		Renderer: renderer,
		Camera:   core.NewCamera(cfg),
		Mesh:     core.CubeMesh(),
		Profiler: NewProfiler(),
		Logger:   logger,
		Viewport: Viewport{Width: cfg.WindowWidth, Height: cfg.WindowHeight},
	}
}

// Init generates the instances and uploads geometry and instance data. The
// instance buffers never change after this.
func (a *App) Init() error {
	if err := a.Config.Validate(); err != nil {
		return err
	}

	if w, h := a.Window.FramebufferSize(); w > 0 && h > 0 {
		a.Viewport = Viewport{Width: w, Height: h}
	}

	a.Arena = core.NewInstanceArena(a.Config.MaxInstances)
	gen := core.NewGenerator(a.Config.SceneExtent, a.Config.Seed)
	if err := gen.Generate(a.Arena, a.Config.InstanceCount); err != nil {
		return err
	}
	a.Logger.Infof("Generated %d instances in a %d unit cube", a.Arena.Len(), a.Config.SceneExtent)

	if err := a.Renderer.Upload(a.Mesh, a.Arena); err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	a.LastTime = a.Window.Time()
	return nil
}

// Resize records the new framebuffer size. The renderer picks it up at the
// start of the next frame; zero sizes from a minimized window are dropped.
func (a *App) Resize(w, h int) {
	if w > 0 && h > 0 {
		a.Viewport = Viewport{Width: w, Height: h}
		a.resizePending = true
	}
}

// Frame renders one frame and reports whether the loop should continue.
func (a *App) Frame() bool {
	now := a.Window.Time()
	dt := now - a.LastTime
	a.LastTime = now

	if a.resizePending {
		a.resizePending = false
		if err := a.Renderer.Resize(a.Viewport.Width, a.Viewport.Height); err != nil {
			a.Logger.Errorf("resize to %dx%d: %v", a.Viewport.Width, a.Viewport.Height, err)
		}
	}

	clearErr := a.Renderer.Clear()
	logging.Errorw(a.Logger, clearErr, "clear")

	if a.Window.KeyPressed(core.KeyEscape) {
		a.Window.RequestClose()
	}
	if a.Window.ShouldClose() {
		return false
	}
	if clearErr != nil {
		a.Window.PollEvents()
		return true
	}

	a.Profiler.BeginScope("update")
	a.Camera.Update(float32(dt))
	projection := core.Projection(a.Viewport.Aspect(), a.Config.Lens)
	logging.Errorw(a.Logger, a.Renderer.UploadCamera(a.Camera.View(), projection), "upload camera")
	a.Profiler.EndScope("update")

	a.Profiler.BeginScope("render")
	a.Renderer.DrawInstanced(a.Mesh.IndexCount(), uint32(a.Config.MaxInstances))
	logging.Errorw(a.Logger, a.Renderer.Present(), "present")
	a.Profiler.EndScope("render")

	a.Window.PollEvents()

	if a.Profiler.Tick(dt) && a.Logger.DebugEnabled() {
		a.Logger.Debugf("%s z=%.1f", a.Profiler.GetStatsString(), a.Camera.Position.Z())
	}
	return true
}

func (a *App) Run() {
	for a.Frame() {
	}
	a.Logger.Infof("Rendered %d frames in %.1fs, average %.1f fps",
		a.Profiler.TotalFrames, a.Profiler.TotalTime, a.Profiler.AverageFPS())
}

// Release frees GPU resources. The window belongs to the caller and is
// destroyed after this.
func (a *App) Release() {
	if a.released {
		return
	}
	a.released = true
	a.Renderer.Release()
}
