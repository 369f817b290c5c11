package config

import (
	"flag"
	"io"
)

// Flags holds command-line overrides. Zero values leave the config untouched.
type Flags struct {
	ConfigPath string
	Scene      string
	Width      int
	Height     int
	Output     string
	Shading    string
	Debug      bool
	LogFile    string
	List       bool
}

// ParseFlags parses command-line arguments, excluding the program name.
// Usage and parse errors are written to output.
func ParseFlags(args []string, output io.Writer) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("raykernel", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.StringVar(&f.Scene, "scene", "", "Built-in scene name or path to a .yaml scene file")
	fs.IntVar(&f.Width, "width", 0, "Image width (0 keeps the scene's size)")
	fs.IntVar(&f.Height, "height", 0, "Image height (0 keeps the scene's size)")
	fs.StringVar(&f.Output, "output", "", "Output directory")
	fs.StringVar(&f.Shading, "shading", "", "Shading mode: normal, uv or depth")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file")
	fs.BoolVar(&f.List, "list", false, "List available scenes and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// apply copies the set flags over cfg.
func (f *Flags) apply(cfg *Config) {
	if f.Scene != "" {
		cfg.Scene.Name = f.Scene
	}
	if f.Width > 0 {
		cfg.Render.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Render.Height = f.Height
	}
	if f.Output != "" {
		cfg.Render.OutputDir = f.Output
	}
	if f.Shading != "" {
		cfg.Render.Shading = f.Shading
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
}
