package main

import (
	"emberglow/internal/background"
	"emberglow/internal/config"
	"emberglow/internal/platform"
	"emberglow/internal/scroll"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func setupInputHandlers(window *platform.Window, surface *background.RenderSurface, cfg config.ScrollConfig) {
	_, height := window.DisplaySize()
	tracker := scroll.New(cfg, float64(height), surface)

	window.OnResize(func() {
		_, h := window.DisplaySize()
		tracker.SetViewportHeight(float64(h))
	})

	win := window.GLFW()
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		tracker.Scroll(yoff)
	})

	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		switch key {
		case glfw.KeyDown:
			tracker.Scroll(-1)
		case glfw.KeyUp:
			tracker.Scroll(1)
		case glfw.KeyPageDown, glfw.KeySpace:
			tracker.Page(1)
		case glfw.KeyPageUp:
			tracker.Page(-1)
		case glfw.KeyHome:
			tracker.Home()
		case glfw.KeyEnd:
			tracker.End()
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		}
	})

	// Stop animating while nobody can see the window.
	win.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		if iconified {
			surface.StopRendering()
		} else {
			surface.StartRendering()
		}
	})
}
