// Package viewer is the view root: it owns the view state snapshot, the model
// arena and the interaction policy, and turns them into one frame per tick.
package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/dentview/internal/assets"
	"github.com/Faultbox/dentview/internal/engine/camera"
	"github.com/Faultbox/dentview/internal/engine/lighting"
	"github.com/Faultbox/dentview/internal/engine/picking"
	"github.com/Faultbox/dentview/internal/interaction"
	"github.com/Faultbox/dentview/internal/logger"
	"github.com/Faultbox/dentview/internal/scene"
	"github.com/Faultbox/dentview/pkg/math"
)

// Source resolves mesh paths in the background.
type Source interface {
	Request(path string)
	Lookup(path string) (*scene.Group, assets.Status, error)
}

// ModelSpec is one model to show and its initial appearance.
type ModelSpec struct {
	Name       string
	Path       string
	Appearance scene.Appearance
}

// Options configure a Viewer.
type Options struct {
	Models   []ModelSpec
	Camera   camera.State
	Mode     interaction.Mode
	Settings interaction.Settings
	Lighting scene.LightingState
	Refresh  lighting.Refresh
}

// Viewer is the view root.
type Viewer struct {
	opts Options
	src  Source
	log  *zap.Logger

	state    scene.ViewState
	reg      *scene.Registry
	cam      camera.State
	rig      *lighting.Rig
	disp     *interaction.Dispatcher
	composer *scene.Composer

	width, height float32
	mounted       bool
	status        []assets.Status
}

// New creates an unmounted viewer. The initial view state comes from opts.
func New(opts Options, src Source) *Viewer {
	v := &Viewer{
		opts:     opts,
		src:      src,
		log:      logger.Named("viewer"),
		reg:      scene.NewRegistry(),
		cam:      opts.Camera,
		rig:      lighting.NewRig(opts.Refresh),
		composer: scene.NewComposer(),
	}
	v.state.Models = make([]scene.Appearance, len(opts.Models))
	for i, m := range opts.Models {
		v.state.Models[i] = m.Appearance
	}
	v.state.Lighting = opts.Lighting
	v.disp = interaction.NewDispatcher(&v.cam, v.reg, interaction.PickerFunc(v.HitTest), opts.Settings)
	return v
}

// Mount registers the models, requests their meshes and activates the
// configured interaction policy.
func (v *Viewer) Mount() error {
	if v.mounted {
		return interaction.ErrMounted
	}
	for _, m := range v.opts.Models {
		v.reg.Add(m.Name, m.Path)
		v.src.Request(m.Path)
	}
	v.status = make([]assets.Status, len(v.opts.Models))

	if err := v.disp.Mount(v.opts.Mode); err != nil {
		v.reg.Reset()
		return fmt.Errorf("mounting viewer: %w", err)
	}
	v.mounted = true
	v.log.Info("viewer mounted",
		zap.Int("models", len(v.opts.Models)),
		zap.String("mode", string(v.opts.Mode)))
	return nil
}

// Unmount removes the interaction policy and its handlers and releases the
// model arena. The view state snapshot is kept.
func (v *Viewer) Unmount() {
	if !v.mounted {
		return
	}
	v.disp.Unmount()
	v.reg.Reset()
	v.composer.Forget()
	v.status = nil
	v.mounted = false
	v.log.Info("viewer unmounted")
}

// Mounted reports whether the viewer is mounted.
func (v *Viewer) Mounted() bool {
	return v.mounted
}

// SetPolicy switches the interaction policy, remounting the dispatcher.
func (v *Viewer) SetPolicy(mode interaction.Mode) error {
	if _, err := interaction.ParseMode(string(mode)); err != nil {
		return err
	}
	if !v.mounted {
		v.opts.Mode = mode
		return nil
	}
	if mode == v.opts.Mode {
		return nil
	}
	v.disp.Unmount()
	if err := v.disp.Mount(mode); err != nil {
		return fmt.Errorf("switching policy: %w", err)
	}
	v.opts.Mode = mode
	return nil
}

// Policy returns the active interaction policy.
func (v *Viewer) Policy() interaction.Mode {
	return v.opts.Mode
}

// Dispatcher exposes the interaction dispatcher.
func (v *Viewer) Dispatcher() *interaction.Dispatcher {
	return v.disp
}

// State returns the current view state snapshot.
func (v *Viewer) State() scene.ViewState {
	return v.state
}

// Camera returns the shared camera.
func (v *Viewer) Camera() camera.State {
	return v.cam
}

// Registry exposes the model arena.
func (v *Viewer) Registry() *scene.Registry {
	return v.reg
}

// Models returns the number of configured models.
func (v *Viewer) Models() int {
	return len(v.opts.Models)
}

// ModelName returns the configured name of id.
func (v *Viewer) ModelName(id scene.ModelID) string {
	if id < 0 || int(id) >= len(v.opts.Models) {
		return ""
	}
	return v.opts.Models[id].Name
}

// Status returns the load status of id.
func (v *Viewer) Status(id scene.ModelID) assets.Status {
	if id < 0 || int(id) >= len(v.status) {
		return assets.StatusNone
	}
	return v.status[id]
}

// Apply folds a control change into a new view state snapshot.
func (v *Viewer) Apply(cmd Command) error {
	s := v.state
	model := func(id scene.ModelID, f func(a scene.Appearance) scene.Appearance) error {
		if id < 0 || int(id) >= len(s.Models) {
			return fmt.Errorf("apply %T: unknown model %d", cmd, id)
		}
		s = s.WithModel(id, f(s.Model(id)))
		return nil
	}
	light := func(f func(l scene.LightingState) scene.LightingState) {
		s = s.WithLighting(f(s.Lighting))
	}

	var err error
	switch c := cmd.(type) {
	case SetOpacity:
		err = model(c.Model, func(a scene.Appearance) scene.Appearance {
			a.Opacity = OpacityRange.Snap(c.Value)
			return a
		})
	case StepOpacity:
		err = model(c.Model, func(a scene.Appearance) scene.Appearance {
			a.Opacity = OpacityRange.Add(a.Opacity, c.Steps)
			return a
		})
	case SetVisible:
		err = model(c.Model, func(a scene.Appearance) scene.Appearance {
			a.Visible = c.Visible
			return a
		})
	case ToggleVisible:
		err = model(c.Model, func(a scene.Appearance) scene.Appearance {
			a.Visible = !a.Visible
			return a
		})
	case SetTint:
		err = model(c.Model, func(a scene.Appearance) scene.Appearance {
			a.Tint = c.Color
			return a
		})
	case StepChannel:
		err = model(c.Model, func(a scene.Appearance) scene.Appearance {
			a.Tint = stepChannel(a.Tint, c.Channel, c.Steps)
			return a
		})
	case SetIntensity:
		light(func(l scene.LightingState) scene.LightingState {
			l.Intensity = IntensityRange.Snap(c.Value)
			return l
		})
	case StepIntensity:
		light(func(l scene.LightingState) scene.LightingState {
			l.Intensity = IntensityRange.Add(l.Intensity, c.Steps)
			return l
		})
	case SetLightPosition:
		light(func(l scene.LightingState) scene.LightingState {
			return withLightPosition(l, c.Light, snapPosition(c.Position))
		})
	case StepLightAxis:
		light(func(l scene.LightingState) scene.LightingState {
			return withLightPosition(l, c.Light, stepAxis(lightPosition(l, c.Light), c.Axis, c.Steps))
		})
	default:
		err = fmt.Errorf("apply: unsupported command %T", cmd)
	}
	if err != nil {
		return err
	}

	v.state = s
	v.log.Debug("control changed", zap.String("command", fmt.Sprintf("%T", cmd)))
	return nil
}

func lightPosition(l scene.LightingState, which Light) math.Vec3 {
	if which == FillLight {
		return l.FillPosition
	}
	return l.KeyPosition
}

func withLightPosition(l scene.LightingState, which Light, p math.Vec3) scene.LightingState {
	if which == FillLight {
		l.FillPosition = p
	} else {
		l.KeyPosition = p
	}
	return l
}

// Resize sets the viewport size in pixels.
func (v *Viewer) Resize(width, height int) {
	v.width, v.height = float32(width), float32(height)
	v.disp.Resize(v.width, v.height)
}

// Viewport returns the viewport size in pixels.
func (v *Viewer) Viewport() (width, height float32) {
	return v.width, v.height
}

// PointerDown forwards a press to the active policy.
func (v *Viewer) PointerDown(ev interaction.PointerEvent) { v.disp.PointerDown(ev) }

// PointerMove forwards a motion to the active policy.
func (v *Viewer) PointerMove(ev interaction.PointerEvent) { v.disp.PointerMove(ev) }

// PointerUp forwards a release to the active policy.
func (v *Viewer) PointerUp(ev interaction.PointerEvent) { v.disp.PointerUp(ev) }

// PointerLeave ends any drag when the pointer leaves the window.
func (v *Viewer) PointerLeave() { v.disp.PointerLeave() }

// Wheel forwards a wheel tick and reports whether it was consumed.
func (v *Viewer) Wheel(deltaY float32) bool {
	return v.disp.Wheel(deltaY)
}

// HitTest returns the nearest rendered model under pixel (x, y).
func (v *Viewer) HitTest(x, y float32) (scene.ModelID, bool) {
	if v.width <= 0 || v.height <= 0 {
		return 0, false
	}
	if !v.mounted {
		return 0, false
	}
	v.resolve()
	// hit regions only need geometry; the light rig is left alone
	frame := v.composer.Compose(v.state, v.reg, v.cam, lighting.Set{})
	hit, ok := picking.PickScreen(x, y, v.width, v.height, frame)
	return hit.ID, ok
}

// Frame attaches newly loaded meshes, refreshes the lights and composes the
// frame for the current snapshot.
func (v *Viewer) Frame() scene.Frame {
	if !v.mounted {
		return scene.Frame{Camera: v.cam}
	}
	v.resolve()

	l := v.state.Lighting
	lights, _ := v.rig.Update(lighting.Params{
		Intensity: l.Intensity,
		Key:       l.KeyPosition,
		Fill:      l.FillPosition,
	})
	return v.composer.Compose(v.state, v.reg, v.cam, lights)
}

// LightRecomputes returns how many times the light rig was recomputed.
func (v *Viewer) LightRecomputes() int {
	return v.rig.Recomputes()
}

// resolve polls pending loads. Ready meshes are attached; a failed mesh is
// logged once and its model stays out of the frame.
func (v *Viewer) resolve() {
	for _, id := range v.reg.IDs() {
		if st := v.status[id]; st == assets.StatusReady || st == assets.StatusFailed {
			continue
		}
		e, _ := v.reg.Get(id)
		g, st, err := v.src.Lookup(e.Source)
		v.status[id] = st
		switch st {
		case assets.StatusReady:
			_ = v.reg.SetGroup(id, g)
			v.log.Info("model ready", zap.String("model", e.Name), zap.Int("meshes", len(g.Meshes)))
		case assets.StatusFailed:
			v.log.Error("model unavailable", zap.String("model", e.Name), zap.Error(err))
		}
	}
}
