// Package viewer implements the interactive main loop: it pumps SDL
// input into the orbit camera, renders frames on the CPU and presents
// them through the OpenGL blit display.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/verdantfx/grassfield/internal/config"
	"github.com/verdantfx/grassfield/internal/engine/camera"
	"github.com/verdantfx/grassfield/internal/engine/display"
	"github.com/verdantfx/grassfield/internal/engine/input"
	"github.com/verdantfx/grassfield/internal/engine/scene"
	"github.com/verdantfx/grassfield/internal/engine/window"
	"github.com/verdantfx/grassfield/internal/logger"
	"github.com/verdantfx/grassfield/internal/paramserver"
)

// Viewer is the interactive application instance.
type Viewer struct {
	cfg     *config.Config
	running bool

	window  *window.Window
	display *display.Display
	scene   *scene.Scene
	camera  *camera.OrbitCamera
	input   *input.Input

	params       *paramserver.Server
	cancelParams context.CancelFunc

	dragging bool
}

// New creates a viewer instance.
func New(cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	v := &Viewer{
		cfg: cfg,
	}

	// Create window (this also creates the OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      "grassfield",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create display (AFTER window, since the OpenGL context must exist)
	v.display, err = display.New()
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create display: %w", err)
	}

	v.scene, err = scene.Build(cfg)
	if err != nil {
		v.display.Close()
		v.window.Close()
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	v.camera = camera.NewOrbitCamera()
	v.camera.Center = v.scene.Heightmap.Center()

	v.input = input.New()

	if cfg.ParamServer.Enabled {
		v.params = paramserver.New(paramserver.Tunables{
			WindDirX:     cfg.Grass.WindDirX,
			WindDirZ:     cfg.Grass.WindDirZ,
			WindSpeed:    cfg.Grass.WindSpeed,
			WindStrength: cfg.Grass.WindStrength,
			Density:      cfg.Grass.Density,
			BendMin:      cfg.Grass.BendMin,
			BendMax:      cfg.Grass.BendMax,
			BaseColor:    cfg.Grass.BaseColor,
			TipColor:     cfg.Grass.TipColor,
		})
		ctx, cancel := context.WithCancel(context.Background())
		v.cancelParams = cancel
		go func() {
			if err := v.params.ListenAndServe(ctx, cfg.ParamServer.Listen); err != nil {
				logger.Error("param server failed", zap.Error(err))
			}
		}()
	}

	logger.Info("viewer initialized")
	return v, nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	startTime := time.Now()
	lastTime := startTime
	frameCount := 0
	fpsTimer := time.Now()

	base := v.scene.BaseFrame(&v.cfg.Grass)
	aspect := float32(v.cfg.Graphics.Width) / float32(v.cfg.Graphics.Height)

	logger.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		v.handleMovement(dt)

		// 2. Build the frame parameter snapshot
		frame := base
		if v.params != nil {
			v.params.Apply(&frame)
		}
		frame.Time = float32(now.Sub(startTime).Seconds())
		frame.CameraPos = v.camera.Position()
		frame.CameraForward = v.camera.Forward()
		frame.CameraTarget = v.camera.Target()
		frame.ViewProj = v.camera.ViewProj(aspect)

		// 3. Render on the CPU
		img := v.scene.Renderer.RenderFrame(&frame)

		// 4. Present
		v.display.Present(img)
		v.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			stats := v.scene.Renderer.Stats()
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("triangles", stats.Triangles),
				zap.Duration("geometry", stats.Geometry),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.cancelParams != nil {
		v.cancelParams()
	}
	if v.display != nil {
		v.display.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

// handleEvents processes discrete input events.
func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.display.Resize(event.Width, event.Height)
		case input.EventKeyDown:
			if event.Key == sdl.SCANCODE_ESCAPE {
				v.running = false
			}
		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_LEFT {
				v.dragging = true
			}
		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_LEFT {
				v.dragging = false
			}
		case input.EventMouseMove:
			if v.dragging {
				v.camera.HandleDrag(float32(event.RelX), float32(event.RelY))
			}
		case input.EventMouseWheel:
			v.camera.HandleZoom(event.WheelY)
		}
	}
}

// handleMovement applies held-key camera panning.
func (v *Viewer) handleMovement(dt float32) {
	var forward, right, up float32
	if v.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward += 1
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward -= 1
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_D) {
		right += 1
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_A) {
		right -= 1
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_E) {
		up += 1
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_Q) {
		up -= 1
	}
	if forward == 0 && right == 0 && up == 0 {
		return
	}
	// Scale to a per-second rate; HandleMovement applies distance scaling.
	scale := dt * 30
	v.camera.HandleMovement(forward*scale, right*scale, up*scale)
}
