package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/cam-per/sixel/graphics"
	"github.com/cam-per/sixel/internal/grid"
	"github.com/cam-per/sixel/internal/rendering"
)

func init() {
	// GLFW event handling must run on the main thread.
	runtime.LockOSThread()
}

func (a *app) viewCommand() *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "Show the sixel images of the input in a window",
		ArgsUsage: "INPUT",
		Flags:     inputFlags()[:3],
		Action: func(ctx context.Context, cmd *cli.Command) error {
			data, err := readInput(cmd)
			if err != nil {
				return err
			}
			all, err := bodies(cmd, data)
			if err != nil {
				return err
			}

			rasters := make([]*graphics.Raster, 0, len(all))
			for _, body := range all {
				decoder, err := a.decode(body)
				if err != nil {
					return cli.Exit(err, 1)
				}
				rasters = append(rasters, decoder.Raster(graphics.NextID(), a.cfg.Cell.Height))
			}

			if err := a.view(ctx, rasters); err != nil {
				return cli.Exit(err, 1)
			}
			return nil
		},
	}
}

// layout stacks rasters top to bottom from column 0 into a fresh store
// sized for a width x height framebuffer.
func (a *app) layout(rasters []*graphics.Raster, width, height int, evict func(uint64)) *grid.Store {
	cell := a.cfg.Cell
	store := grid.NewStore(height/cell.Height, width/cell.Width)
	store.OnEvict(evict)

	line := 0
	for _, raster := range rasters {
		if raster.Empty() {
			continue
		}
		store.Insert(raster, line, 0, cell.Width)
		line += (raster.Height() + cell.Height - 1) / cell.Height
	}
	return store
}

func (a *app) view(ctx context.Context, rasters []*graphics.Raster) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initializing glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(a.cfg.Window.Width, a.cfg.Window.Height, a.cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing gl: %w", err)
	}
	a.logger.Debug("gl context ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	shaders := rendering.NewShaders()
	if err := shaders.Load(rendering.Embedded()); err != nil {
		return err
	}
	if err := shaders.Compile(); err != nil {
		return err
	}
	defer shaders.Delete()

	renderer, err := rendering.NewImageRenderer(shaders)
	if err != nil {
		return err
	}
	defer renderer.Delete()

	cache := graphics.NewTextureCache(renderer)
	defer cache.Purge()

	width, height := window.GetFramebufferSize()
	size := graphics.SizeInfo{
		CellWidth:  float32(a.cfg.Cell.Width),
		CellHeight: float32(a.cfg.Cell.Height),
		Width:      float32(width),
		Height:     float32(height),
	}
	store := a.layout(rasters, width, height, cache.Evict)

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		size.Width, size.Height = float32(width), float32(height)
		store.Reset()
		store = a.layout(rasters, width, height, cache.Evict)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	for !window.ShouldClose() {
		if ctx.Err() != nil {
			break
		}

		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		for _, p := range store.Placements() {
			if err := cache.DrawCell(p.Raster, p.Line, p.Column, p.StartColumn, p.OffsetY, size); err != nil {
				return err
			}
		}

		window.SwapBuffers()
		glfw.WaitEventsTimeout(0.1)
	}
	return nil
}
