package platform

import (
	"fmt"

	"github.com/gekko3d/instancing/rt/core"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var keyToGlfw = map[core.Key]glfw.Key{
	core.KeyEscape: glfw.KeyEscape,
	core.KeySpace:  glfw.KeySpace,
	core.KeyEnter:  glfw.KeyEnter,
	core.KeyTab:    glfw.KeyTab,
}

// Window wraps the GLFW window the renderer presents to. GLFW must be driven
// from the main thread, so callers lock the OS thread before NewWindow.
type Window struct {
	handle *glfw.Window
}

// NewWindow initializes GLFW and opens a resizable window without a client
// API; the surface is created by WebGPU.
func NewWindow(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw: %v", core.ErrInitialization, err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: create window: %v", core.ErrInitialization, err)
	}
	return &Window{handle: win}, nil
}

func (w *Window) Handle() *glfw.Window {
	return w.handle
}

// Time is seconds since GLFW was initialized.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) KeyPressed(key core.Key) bool {
	glfwKey, ok := keyToGlfw[key]
	if !ok {
		return false
	}
	return w.handle.GetKey(glfwKey) == glfw.Press
}

func (w *Window) ShouldClose() bool {
	return w.handle.ShouldClose()
}

func (w *Window) RequestClose() {
	w.handle.SetShouldClose(true)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) FramebufferSize() (int, int) {
	return w.handle.GetFramebufferSize()
}

// SetResizeCallback forwards framebuffer size changes. The callback runs
// inside PollEvents.
func (w *Window) SetResizeCallback(fn func(width, height int)) {
	w.handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		fn(width, height)
	})
}

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	if w.handle == nil {
		return
	}
	w.handle.Destroy()
	w.handle = nil
	glfw.Terminate()
}
