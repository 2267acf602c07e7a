package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

const (
	defaultDescription = "Three metal spheres on a grey ground"
	groundDescription  = "Grey sphere resting on a grey ground sphere"
	emptyDescription   = "Sky gradient only"
)

// ErrUnknownScene is returned for scene IDs with no built-in scene
var ErrUnknownScene = errors.New("unknown scene")

// builtInScenes maps scene IDs to their constructors
var builtInScenes = map[string]func(...renderer.CameraConfig) (*Scene, error){
	"default": NewDefaultScene,
	"ground":  NewGroundScene,
	"empty":   NewEmptyScene,
}

// defaultCameraConfig looks down -z from the origin
func defaultCameraConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		AspectRatio: 4.0 / 3.0,
		Width:       800,
		VFov:        70,
		Up:          core.NewVec3(0, 1, 0),
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
	}
}

func mergeOverrides(cameraOverrides []renderer.CameraConfig) renderer.CameraConfig {
	cameraConfig := defaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}
	return cameraConfig
}

// NewBuiltInScene creates the built-in scene with the given ID
func NewBuiltInScene(id string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	create, ok := builtInScenes[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, id)
	}
	return create(cameraOverrides...)
}

// BuiltInSceneIDs returns the IDs of all built-in scenes in sorted order
func BuiltInSceneIDs() []string {
	ids := make([]string, 0, len(builtInScenes))
	for id := range builtInScenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewDefaultScene creates three metal spheres resting on a large grey ground sphere
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	cameraConfig := mergeOverrides(cameraOverrides)

	metalPurple := material.NewMetal(core.NewVec3(0.5, 0.0, 0.5), 0.0)
	metalRed := material.NewMetal(core.NewVec3(1.0, 0.0, 0.0), 0.25)
	metalBlue := material.NewMetal(core.NewVec3(0.0, 0.0, 1.0), 0.25)
	lambertianGrey := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.1, metalPurple),
		geometry.NewSphere(core.NewVec3(-0.5, 0, -1), 0.25, metalRed),
		geometry.NewSphere(core.NewVec3(0.5, 0, -1), 0.25, metalBlue),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGrey),
	)

	return newScene("Default Scene", defaultDescription,
		cameraConfig, world, renderer.DefaultSamplingConfig())
}

// NewGroundScene creates a grey sphere on a grey ground sphere
func NewGroundScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	cameraConfig := mergeOverrides(cameraOverrides)

	grey := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, grey),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, grey),
	)

	return newScene("Ground", groundDescription,
		cameraConfig, world, renderer.DefaultSamplingConfig())
}

// NewEmptyScene creates a scene with no objects
func NewEmptyScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	return newScene("Empty", emptyDescription,
		mergeOverrides(cameraOverrides), geometry.NewWorld(), renderer.DefaultSamplingConfig())
}
