// Package platform hosts the background in a GLFW window: the window is the
// drawable surface and FrameLoop is its refresh-synchronised scheduler.
package platform

import (
	"fmt"

	"emberglow/internal/config"
	"emberglow/internal/graphics"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type resizeListener struct {
	id int
	fn func()
}

// Window is a GLFW window with an OpenGL 4.1 core context. glfw.Init must
// have been called, and every method must run on the main thread.
type Window struct {
	win    *glfw.Window
	vsync  bool
	device *graphics.GLDevice

	listeners []resizeListener
	nextID    int
}

// OpenWindow creates the window. The context is not made current until
// Context is called.
func OpenWindow(cfg config.WindowConfig) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	if cfg.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &Window{win: win, vsync: cfg.VSync}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.notifyResize()
	})
	return w, nil
}

// Context makes the window's context current and returns a device over it.
// Releasing the device detaches the context from the thread.
func (w *Window) Context() (graphics.Device, error) {
	w.win.MakeContextCurrent()
	if w.vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	dev, err := graphics.NewGLDevice(func() {
		w.device = nil
		glfw.DetachCurrentContext()
	})
	if err != nil {
		glfw.DetachCurrentContext()
		return nil, fmt.Errorf("load OpenGL 4.1: %w", err)
	}
	w.device = dev
	return dev, nil
}

// DisplaySize returns the framebuffer size in pixels.
func (w *Window) DisplaySize() (int, int) {
	return w.win.GetFramebufferSize()
}

// OnResize registers fn for framebuffer size changes.
func (w *Window) OnResize(fn func()) func() {
	id := w.nextID
	w.nextID++
	w.listeners = append(w.listeners, resizeListener{id: id, fn: fn})
	return func() {
		for i, l := range w.listeners {
			if l.id == id {
				w.listeners = append(w.listeners[:i], w.listeners[i+1:]...)
				return
			}
		}
	}
}

func (w *Window) notifyResize() {
	// Copy so a listener may detach itself.
	for _, l := range append([]resizeListener(nil), w.listeners...) {
		l.fn()
	}
}

// GLFW exposes the underlying window for input callbacks.
func (w *Window) GLFW() *glfw.Window {
	return w.win
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// drawCount returns the draws issued through the live device.
func (w *Window) drawCount() (uint64, bool) {
	if w.device == nil {
		return 0, false
	}
	return w.device.DrawCount(), true
}

func (w *Window) swapBuffers() {
	w.win.SwapBuffers()
}

// Destroy closes the window.
func (w *Window) Destroy() {
	w.win.Destroy()
}

// RefreshRate returns the primary monitor's refresh rate, or 60 when it
// cannot be determined.
func RefreshRate() int {
	if m := glfw.GetPrimaryMonitor(); m != nil {
		if mode := m.GetVideoMode(); mode != nil && mode.RefreshRate > 0 {
			return mode.RefreshRate
		}
	}
	return 60
}
