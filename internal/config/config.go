// Package config handles loading and saving of the render CLI settings.
package config

// Config holds all CLI settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds image and shading settings. A zero width or height
// keeps the scene's own size.
type RenderConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	OutputDir  string  `yaml:"output_dir"`
	Shading    string  `yaml:"shading"`     // normal, uv or depth
	DepthRange float64 `yaml:"depth_range"` // Distance mapped to black in depth shading
}

// SceneConfig selects the scene to render.
type SceneConfig struct {
	Name string `yaml:"name"` // Built-in name or path to a .yaml scene file
	Dir  string `yaml:"dir"`  // Directory searched when listing scene files
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			OutputDir:  "output",
			Shading:    "normal",
			DepthRange: 20,
		},
		Scene: SceneConfig{
			Name: "default",
			Dir:  "scenes",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
