package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-raykernel/internal/config"
	"github.com/df07/go-raykernel/internal/logger"
	"github.com/df07/go-raykernel/pkg/renderer"
	"github.com/df07/go-raykernel/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout)
	logger.Sync()
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run renders the configured scene and writes it as a PNG. Results are
// reported on stdout, diagnostics go through the logger.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags, err := config.ParseFlags(args, stdout)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	log := logger.Log

	if flags.List {
		return listScenes(cfg.Scene.Dir, stdout, log)
	}

	shading, err := renderer.ParseShading(cfg.Render.Shading)
	if err != nil {
		return err
	}

	log.Info("loading scene", zap.String("scene", cfg.Scene.Name))
	s, err := scene.Load(cfg.Scene.Name, cfg.Render.Width, cfg.Render.Height, log)
	if err != nil {
		return fmt.Errorf("failed to load scene: %w", err)
	}
	log.Info("scene ready",
		zap.String("name", s.Name),
		zap.Int("shapes", len(s.Shapes)),
		zap.Int("primitives", s.GetPrimitiveCount()),
		zap.Int("width", s.Width),
		zap.Int("height", s.Height))

	raycaster := renderer.NewRaycaster(s, s.Width, s.Height)
	raycaster.SetLogger(log)
	raycaster.SetConfig(renderer.Config{Shading: shading, DepthRange: cfg.Render.DepthRange})

	img, stats, err := raycaster.Render(ctx)
	if err != nil {
		return err
	}

	outputDir := createOutputDir(cfg.Render.OutputDir, cfg.Scene.Name)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	if err := savePNG(filename, img); err != nil {
		return err
	}
	logger.Sugar.Debugf("wrote %s (mean luminance %.4f)", filename, stats.Luminance)

	fmt.Fprintf(stdout, "Rendered %s (%dx%d) in %v, %.1f%% of rays hit\n",
		s.Name, s.Width, s.Height, stats.Elapsed, 100*stats.HitRatio())
	fmt.Fprintf(stdout, "Render saved as %s\n", filename)
	return nil
}

// createOutputDir returns the directory for a scene's renders. Scene files
// use their base name so renders of different files don't collide.
func createOutputDir(base, sceneName string) string {
	name := sceneName
	if ext := filepath.Ext(name); ext == ".yaml" || ext == ".yml" {
		name = strings.TrimSuffix(filepath.Base(name), ext)
	}
	return filepath.Join(base, name)
}

func savePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return file.Close()
}

func listScenes(dir string, stdout io.Writer, log *zap.Logger) error {
	scenes, err := scene.ListScenes(dir, log)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Available scenes:")
	for _, info := range scenes {
		fmt.Fprintf(stdout, "  %-24s %s", info.ID, info.Name)
		if info.Description != "" {
			fmt.Fprintf(stdout, " - %s", info.Description)
		}
		fmt.Fprintln(stdout)
	}
	return nil
}
