package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Scene types
const (
	TypeBuiltin = "builtin"
	TypeFile    = "file"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Name accepted by Load
	Name        string // Display name
	Description string // Optional description
	Type        string // TypeBuiltin or TypeFile
	FilePath    string // Path to the YAML file (file type only)
}

// Image size for built-in scenes when the caller passes zero
const (
	DefaultWidth  = 400
	DefaultHeight = 225
)

type builder func(width, height int, cameraOverrides ...CameraConfig) (*Scene, error)

var builtinScenes = []struct {
	info  SceneInfo
	build builder
}{
	{
		info:  SceneInfo{ID: "default", Name: "Default Scene", Description: "Spheres resting on a ground mesh"},
		build: NewDefaultScene,
	},
	{
		info:  SceneInfo{ID: "quadrics", Name: "Quadrics", Description: "Clipped spheres and cylinders under rotation and scaling"},
		build: NewQuadricsScene,
	},
	{
		info:  SceneInfo{ID: "mesh", Name: "Triangle Meshes", Description: "Box, pyramid and icosahedron meshes"},
		build: NewMeshScene,
	},
}

// BuiltinNames returns the IDs of the built-in scenes
func BuiltinNames() []string {
	names := make([]string, len(builtinScenes))
	for i, b := range builtinScenes {
		names[i] = b.info.ID
	}
	return names
}

// Load builds a scene by built-in name or from a .yaml/.yml file path.
// A zero width or height falls back to the file's size or DefaultWidth/DefaultHeight.
func Load(name string, width, height int, logger *zap.Logger) (*Scene, error) {
	if isSceneFile(name) {
		return LoadFile(name, width, height, logger)
	}

	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.build(width, height)
		}
	}
	return nil, fmt.Errorf("%q (built-in scenes: %s): %w", name, strings.Join(BuiltinNames(), ", "), ErrUnknownScene)
}

func isSceneFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// ListScenes returns the built-in scenes followed by the scene files in dir,
// sorted by display name. A missing dir yields only the built-ins.
func ListScenes(dir string, logger *zap.Logger) ([]SceneInfo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.Type = TypeBuiltin
		scenes = append(scenes, info)
	}

	if dir == "" {
		return scenes, nil
	}
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return scenes, nil
		}
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	var fileScenes []SceneInfo
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Keep listing the other files
			logger.Warn("skipping scene file", zap.String("file", filePath), zap.Error(err))
			continue
		}
		fileScenes = append(fileScenes, info)
	}

	sort.Slice(fileScenes, func(i, j int) bool {
		return fileScenes[i].Name < fileScenes[j].Name
	})
	return append(scenes, fileScenes...), nil
}

// ParseSceneMetadata reads the name and description of a scene file
// without building the scene
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	info := SceneInfo{
		ID:       filePath,
		Name:     titleCase(sceneID(filePath)),
		Type:     TypeFile,
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}

	var meta struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	}
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return info, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	if meta.Name != "" {
		info.Name = meta.Name
	}
	info.Description = meta.Description
	return info, nil
}

// sceneID returns the file name without directory or extension
func sceneID(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
