package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/loaders"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Name passed to --scene
	Name        string // Display name
	Description string // Optional description
	Type        string // "builtin" or "file"
	FilePath    string // Path to the YAML file (file type only)
}

// ScenesDirs are the directories searched for scene files, in order
var ScenesDirs = []string{"scenes", "../scenes"}

// ListSceneFiles scans the first existing scenes directory for YAML scene files
func ListSceneFiles() ([]SceneInfo, error) {
	var scenesDir string
	for _, path := range ScenesDirs {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			scenesDir = path
			break
		}
	}

	if scenesDir == "" {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}

	return ListSceneFilesIn(scenesDir)
}

// ListSceneFilesIn returns the YAML scene files in dir sorted by name.
// Files that fail to parse are skipped with a warning.
func ListSceneFilesIn(dir string) ([]SceneInfo, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneMetadata reads the name and description of a YAML scene file
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Type:     "file",
		FilePath: filePath,
	}

	sceneFile, err := loaders.LoadSceneFile(filePath)
	if err != nil {
		return sceneInfo, err
	}
	if sceneFile.Name != "" {
		sceneInfo.Name = sceneFile.Name
	}
	sceneInfo.Description = sceneFile.Description

	return sceneInfo, nil
}

// ListAllScenes returns the built-in scenes followed by discovered scene files
func ListAllScenes() ([]SceneInfo, error) {
	var scenes []SceneInfo
	for _, id := range BuiltInSceneIDs() {
		s, err := NewBuiltInScene(id)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, SceneInfo{
			ID:          id,
			Name:        s.Name,
			Description: s.Description,
			Type:        "builtin",
		})
	}

	fileScenes, err := ListSceneFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}

	return append(scenes, fileScenes...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "three-metals" -> "Three Metals"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
