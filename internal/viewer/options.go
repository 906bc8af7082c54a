package viewer

import (
	"fmt"

	"github.com/Faultbox/dentview/internal/config"
	"github.com/Faultbox/dentview/internal/engine/camera"
	"github.com/Faultbox/dentview/internal/engine/lighting"
	"github.com/Faultbox/dentview/internal/interaction"
	"github.com/Faultbox/dentview/internal/scene"
	"github.com/Faultbox/dentview/pkg/math"
)

// OptionsFromConfig converts a validated config into viewer options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	mode, err := interaction.ParseMode(cfg.Camera.Controller)
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Camera: camera.NewState(math.V3(cfg.Camera.Position), cfg.Camera.Zoom),
		Mode:   mode,
		Settings: interaction.Settings{
			ZoomSpeed:   cfg.Camera.ZoomSpeed,
			RotateSpeed: cfg.Camera.RotateSpeed,
			PanSpeed:    cfg.Camera.PanSpeed,
			MinZoom:     cfg.Camera.MinZoom,
			MaxZoom:     cfg.Camera.MaxZoom,
		},
		Lighting: scene.LightingState{
			Intensity:    IntensityRange.Snap(cfg.Lighting.Intensity),
			KeyPosition:  math.V3(cfg.Lighting.KeyPosition),
			FillPosition: math.V3(cfg.Lighting.FillPosition),
		},
		Refresh: lighting.OnChange,
	}
	if cfg.Lighting.Refresh == config.RefreshEveryFrame {
		opts.Refresh = lighting.EveryFrame
	}

	for _, m := range cfg.Models {
		tint, err := scene.ParseHex(m.Color)
		if err != nil {
			return Options{}, fmt.Errorf("model %s: %w", m.Name, err)
		}
		opts.Models = append(opts.Models, ModelSpec{
			Name: m.Name,
			Path: m.Path,
			Appearance: scene.Appearance{
				Tint:    tint,
				Opacity: OpacityRange.Snap(m.Opacity),
				Visible: m.Visible,
			},
		})
	}
	return opts, nil
}
