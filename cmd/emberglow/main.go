package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"emberglow/internal/background"
	"emberglow/internal/config"
	"emberglow/internal/platform"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (defaults are embedded)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "emberglow:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := setupLogger(cfg.Log)
	if err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := platform.OpenWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	var pacer *platform.Pacer
	if !cfg.Window.VSync {
		pacer = platform.NewPacer(platform.RefreshRate())
	}
	loop := platform.NewFrameLoop(window, pacer, log)

	surface := background.New(window, loop, background.WithLogger(log))
	defer surface.Dispose()
	if surface.State() == background.Failed {
		log.Warn("continuing without animated background")
	}

	setupInputHandlers(window, surface, cfg.Scroll)

	surface.StartRendering()
	loop.Run()
	return nil
}

func setupLogger(cfg config.LogConfig) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return log, nil
}
