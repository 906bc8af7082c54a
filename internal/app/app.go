// Package app runs the viewer's main loop: poll input, feed the view root,
// render the composed frame and present it.
package app

import (
	"fmt"
	"image"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/dentview/internal/assets"
	"github.com/Faultbox/dentview/internal/config"
	"github.com/Faultbox/dentview/internal/engine/debug"
	"github.com/Faultbox/dentview/internal/engine/input"
	"github.com/Faultbox/dentview/internal/engine/renderer"
	"github.com/Faultbox/dentview/internal/engine/window"
	"github.com/Faultbox/dentview/internal/logger"
	"github.com/Faultbox/dentview/internal/scene"
	"github.com/Faultbox/dentview/internal/viewer"
)

// hitRegionColor is the overlay color of model hit regions.
var hitRegionColor = [3]float32{1, 0.6, 0}

// App is the running viewer.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	loader   *assets.Loader
	viewer   *viewer.Viewer
	shots    *debug.ScreenshotCapture

	running        bool
	selected       scene.ModelID
	light          viewer.Light
	showHitRegions bool
	screenshot     bool
	title          string
}

// New creates the window, renderer and view root from cfg.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}
	a.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("assets", cfg.Assets.Root),
	)

	opts, err := viewer.OptionsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("building view options: %w", err)
	}

	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// the renderer needs the GL context the window created
	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      dw,
		Height:     dh,
		ClearColor: [3]float32{0.1, 0.1, 0.15},
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	ww, wh := a.window.GetSize()
	a.input = input.New(ww, wh)
	a.loader = assets.NewLoader(os.DirFS(cfg.Assets.Root))
	a.viewer = viewer.New(opts, a.loader)
	a.viewer.Resize(ww, wh)
	a.shots = debug.NewScreenshotCapture(cfg.Screenshots.Dir, "dentview")

	if err := a.viewer.Mount(); err != nil {
		a.Close()
		return nil, err
	}

	a.log.Info("viewer initialized")
	return a, nil
}

// Run starts the main loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")
	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}
		for _, ev := range a.input.Events() {
			a.handleEvent(ev)
		}

		a.render()
		a.updateTitle()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("draws", a.renderer.DrawCalls()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

// Close releases everything New created.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.viewer != nil {
		a.viewer.Unmount()
	}
	if a.loader != nil {
		a.loader.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventWindowResize:
		a.viewer.Resize(ev.Width, ev.Height)
		a.renderer.Resize(a.window.DrawableSize())
	case input.EventWindowLeave:
		a.viewer.PointerLeave()
	case input.EventPointerDown:
		a.viewer.PointerDown(pointerEvent(ev))
	case input.EventPointerMove:
		a.viewer.PointerMove(pointerEvent(ev))
	case input.EventPointerUp:
		a.viewer.PointerUp(pointerEvent(ev))
	case input.EventWheel:
		a.viewer.Wheel(ev.WheelY)
	case input.EventKeyDown:
		a.handleKey(ev)
	}
}

func (a *App) render() {
	frame := a.viewer.Frame()
	vw, vh := a.viewer.Viewport()
	a.renderer.Render(frame, vw, vh)

	if a.showHitRegions {
		a.renderer.DrawLines(debug.HitRegionLines(frame), hitRegionColor)
	}

	if a.screenshot {
		a.screenshot = false
		pixels, w, h, err := a.renderer.Capture(frame, vw, vh, a.cfg.Screenshots.Scale)
		if err != nil {
			a.log.Error("screenshot failed", zap.Error(err))
			return
		}
		img, err := debug.ImageFromPixels(pixels, w, h)
		if err != nil {
			a.log.Error("screenshot failed", zap.Error(err))
			return
		}
		var shot image.Image = img
		if a.cfg.Screenshots.Resample {
			shot = debug.Downsample(img, a.cfg.Screenshots.Scale)
		}
		name, err := a.shots.CaptureFromImage(shot)
		if err != nil {
			a.log.Error("screenshot failed", zap.Error(err))
			return
		}
		a.log.Info("screenshot saved", zap.String("file", name))
	}
}

// updateTitle shows the selection, light and policy in the window title.
func (a *App) updateTitle() {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s", a.cfg.Window.Title, a.viewer.ModelName(a.selected))
	st := a.viewer.State()
	m := st.Model(a.selected)
	fmt.Fprintf(&b, " [%s, opacity %.2f", m.Tint.Hex(), m.Opacity)
	if !m.Visible {
		b.WriteString(", hidden")
	}
	if s := a.viewer.Status(a.selected); s != assets.StatusReady {
		fmt.Fprintf(&b, ", %s", s)
	}
	fmt.Fprintf(&b, "] light %s, intensity %.2f | %s", a.light, st.Lighting.Intensity, a.viewer.Policy())
	if id, ok := a.viewer.Dispatcher().DragRotate().Dragging(); ok {
		fmt.Fprintf(&b, " (rotating %s)", a.viewer.ModelName(id))
	}

	if t := b.String(); t != a.title {
		a.title = t
		a.window.SetTitle(t)
	}
}
