// Package config handles viewer configuration loading and management.
package config

// Controller policy names accepted in camera.controller.
const (
	ControllerDragRotate = "drag-rotate"
	ControllerPan        = "pan"
	ControllerOrbit      = "orbit"
	ControllerTrackball  = "trackball"
)

// Light refresh policies accepted in lighting.refresh.
const (
	RefreshOnChange   = "on-change"
	RefreshEveryFrame = "every-frame"
)

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig     `yaml:"window"`
	Assets      AssetsConfig     `yaml:"assets"`
	Models      []ModelConfig    `yaml:"models"`
	Camera      CameraConfig     `yaml:"camera"`
	Lighting    LightingConfig   `yaml:"lighting"`
	Logging     LoggingConfig    `yaml:"logging"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// AssetsConfig holds where mesh files are read from.
type AssetsConfig struct {
	Root string `yaml:"root"`
}

// ModelConfig describes one loaded mesh and its initial appearance.
type ModelConfig struct {
	Name    string  `yaml:"name"`
	Path    string  `yaml:"path"`  // relative to assets.root
	Color   string  `yaml:"color"` // #rrggbb
	Opacity float32 `yaml:"opacity"`
	Visible bool    `yaml:"visible"`
}

// CameraConfig holds the initial camera and the interaction policy.
type CameraConfig struct {
	Controller  string     `yaml:"controller"`
	Position    [3]float32 `yaml:"position"`
	Zoom        float32    `yaml:"zoom"`
	ZoomSpeed   float32    `yaml:"zoom_speed"`
	RotateSpeed float32    `yaml:"rotate_speed"`
	PanSpeed    float32    `yaml:"pan_speed"`
	MinZoom     float32    `yaml:"min_zoom"`
	MaxZoom     float32    `yaml:"max_zoom"`
}

// LightingConfig holds the light rig inputs.
type LightingConfig struct {
	Intensity    float32    `yaml:"intensity"`
	KeyPosition  [3]float32 `yaml:"key_position"`
	FillPosition [3]float32 `yaml:"fill_position"`
	Refresh      string     `yaml:"refresh"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ScreenshotConfig holds where captured frames are written.
type ScreenshotConfig struct {
	Dir      string `yaml:"dir"`
	Scale    int    `yaml:"scale"`    // multiple of the drawable size
	Resample bool   `yaml:"resample"` // filter back down to the drawable size
}

// Default returns a Config with the stock three-model scene.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Dentview",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Assets: AssetsConfig{
			Root: "models",
		},
		Models: []ModelConfig{
			{Name: "Upper", Path: "Upper.obj", Color: "#f5f5dc", Opacity: 1, Visible: true},
			{Name: "Lower", Path: "Lower.obj", Color: "#f5f5dc", Opacity: 1, Visible: true},
			{Name: "Crown21", Path: "Crown21.obj", Color: "#ffffff", Opacity: 1, Visible: true},
		},
		Camera: CameraConfig{
			Controller:  ControllerDragRotate,
			Position:    [3]float32{0, 0, 100},
			Zoom:        15,
			ZoomSpeed:   1,
			RotateSpeed: 1,
			PanSpeed:    1,
			MinZoom:     5,
			MaxZoom:     50,
		},
		Lighting: LightingConfig{
			Intensity:    1,
			KeyPosition:  [3]float32{5, 5, 5},
			FillPosition: [3]float32{-5, -5, -5},
			Refresh:      RefreshOnChange,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Screenshots: ScreenshotConfig{
			Dir:   "screenshots",
			Scale: 1,
		},
	}
}
