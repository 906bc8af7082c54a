package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the viewer cannot start with.
func (c *Config) Validate() error {
	switch c.Camera.Controller {
	case ControllerDragRotate, ControllerPan, ControllerOrbit, ControllerTrackball:
	default:
		return fmt.Errorf("camera.controller: unknown policy %q", c.Camera.Controller)
	}
	switch c.Lighting.Refresh {
	case RefreshOnChange, RefreshEveryFrame:
	default:
		return fmt.Errorf("lighting.refresh: unknown policy %q", c.Lighting.Refresh)
	}
	if c.Camera.Zoom <= 0 {
		return fmt.Errorf("camera.zoom must be positive, got %v", c.Camera.Zoom)
	}
	if c.Camera.MinZoom <= 0 {
		return fmt.Errorf("camera.min_zoom must be positive, got %v", c.Camera.MinZoom)
	}
	if c.Camera.MinZoom > c.Camera.MaxZoom {
		return fmt.Errorf("camera.min_zoom %v exceeds max_zoom %v", c.Camera.MinZoom, c.Camera.MaxZoom)
	}
	if c.Screenshots.Scale < 1 || c.Screenshots.Scale > 4 {
		return fmt.Errorf("screenshots.scale must be 1-4, got %d", c.Screenshots.Scale)
	}
	for i, m := range c.Models {
		if m.Path == "" {
			return fmt.Errorf("models[%d]: path is required", i)
		}
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Dentview")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Dentview")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "dentview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "dentview")
	}
}

// DefaultModelColor is the tint of a model entry that names no color.
const DefaultModelColor = "#ffffff"

// UnmarshalYAML fills the appearance fields an entry leaves out: white,
// opaque and visible.
func (m *ModelConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain ModelConfig
	p := plain{Color: DefaultModelColor, Opacity: 1, Visible: true}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*m = ModelConfig(p)
	return nil
}

// loadFromFile loads config from a YAML file, merging with existing values.
// A models list in the file replaces the default list as a whole; each
// entry starts from the model defaults.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
