package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewSceneFromFile loads a YAML scene file and builds a renderable scene
func NewSceneFromFile(path string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	sceneFile, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	if sceneFile.Name == "" {
		name := filepath.Base(path)
		sceneFile.Name = titleCase(strings.TrimSuffix(name, filepath.Ext(name)))
	}
	return FromSceneFile(sceneFile, cameraOverrides...)
}

// FromSceneFile converts a decoded scene description into a Scene.
// Zero camera scalars and sampling fields fall back to the default scene's values.
func FromSceneFile(sceneFile *loaders.SceneFile, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	fileCamera, err := cameraConfigFromSpec(sceneFile.Camera)
	if err != nil {
		return nil, err
	}
	cameraConfig := withCameraDefaults(fileCamera)
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	sampling, err := samplingConfigFromSpec(sceneFile.Sampling)
	if err != nil {
		return nil, err
	}

	world := geometry.NewWorld()
	for i, object := range sceneFile.Objects {
		sphere, err := sphereFromSpec(object)
		if err != nil {
			return nil, fmt.Errorf("objects[%d]: %w", i, err)
		}
		world.Add(sphere)
	}

	s, err := newScene(sceneFile.Name, sceneFile.Description, cameraConfig, world, sampling)
	if err != nil {
		return nil, err
	}

	if sceneFile.Background.Top != nil {
		if s.TopColor, err = loaders.ToColor(sceneFile.Background.Top, "background.top"); err != nil {
			return nil, err
		}
		if s.BottomColor, err = loaders.ToColor(sceneFile.Background.Bottom, "background.bottom"); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func cameraConfigFromSpec(spec loaders.CameraSpec) (renderer.CameraConfig, error) {
	up, err := loaders.ToVec3(spec.VectorUp, "camera.vector_up")
	if err != nil {
		return renderer.CameraConfig{}, err
	}
	lookFrom, err := loaders.ToVec3(spec.LookFrom, "camera.look_from")
	if err != nil {
		return renderer.CameraConfig{}, err
	}
	lookAt, err := loaders.ToVec3(spec.LookAt, "camera.look_at")
	if err != nil {
		return renderer.CameraConfig{}, err
	}

	return renderer.CameraConfig{
		AspectRatio: spec.Aspect,
		Width:       spec.ImageWidth,
		VFov:        spec.VerticalFov,
		Up:          up,
		LookFrom:    lookFrom,
		LookAt:      lookAt,
	}, nil
}

// withCameraDefaults fills zero scalar fields from the default camera. The file's
// vectors are always used as given.
func withCameraDefaults(config renderer.CameraConfig) renderer.CameraConfig {
	defaults := defaultCameraConfig()
	if config.AspectRatio == 0 {
		config.AspectRatio = defaults.AspectRatio
	}
	if config.Width == 0 {
		config.Width = defaults.Width
	}
	if config.VFov == 0 {
		config.VFov = defaults.VFov
	}
	return config
}

func samplingConfigFromSpec(spec loaders.SamplingSpec) (renderer.SamplingConfig, error) {
	sampling := renderer.DefaultSamplingConfig()
	if spec.SamplesPerPixel != 0 {
		sampling.SamplesPerPixel = spec.SamplesPerPixel
	}
	if spec.MaxDepth != 0 {
		sampling.MaxDepth = spec.MaxDepth
	}
	if spec.Technique != "" {
		technique, err := renderer.ParseTechnique(spec.Technique)
		if err != nil {
			return sampling, fmt.Errorf("sampling.technique: %w", err)
		}
		sampling.Technique = technique
	}
	return sampling, nil
}

func sphereFromSpec(spec loaders.ObjectSpec) (*geometry.Sphere, error) {
	center, err := loaders.ToVec3(spec.Center, "center")
	if err != nil {
		return nil, err
	}
	albedo, err := loaders.ToColor(spec.Material.Albedo, "material.albedo")
	if err != nil {
		return nil, err
	}

	var mat material.Material
	switch spec.Material.Type {
	case "lambertian":
		mat = material.NewLambertian(albedo)
	case "metal":
		mat = material.NewMetal(albedo, spec.Material.Roughness)
	default:
		return nil, fmt.Errorf("material.type: unknown material %q", spec.Material.Type)
	}

	return geometry.NewSphere(center, spec.Radius, mat), nil
}
