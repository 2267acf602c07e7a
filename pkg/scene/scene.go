package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Description    string
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	World          *geometry.World
	SamplingConfig renderer.SamplingConfig
	TopColor       core.Vec3 // Sky color straight up
	BottomColor    core.Vec3 // Sky color straight down
}

// newScene builds the camera and fills in the default sky
func newScene(name, description string, cameraConfig renderer.CameraConfig, world *geometry.World, sampling renderer.SamplingConfig) (*Scene, error) {
	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}

	sky := integrator.NewPathTracingIntegrator()
	return &Scene{
		Name:           name,
		Description:    description,
		Camera:         camera,
		CameraConfig:   cameraConfig,
		World:          world,
		SamplingConfig: sampling,
		TopColor:       sky.TopColor,
		BottomColor:    sky.BottomColor,
	}, nil
}

// SetCameraConfig applies overrides to the camera configuration and rebuilds the camera
func (s *Scene) SetCameraConfig(overrides renderer.CameraConfig) error {
	config := renderer.MergeCameraConfig(s.CameraConfig, overrides)
	camera, err := renderer.NewCamera(config)
	if err != nil {
		return err
	}
	s.CameraConfig = config
	s.Camera = camera
	return nil
}

// Integrator returns a path tracer using the scene's sky colors
func (s *Scene) Integrator() *integrator.PathTracingIntegrator {
	return &integrator.PathTracingIntegrator{
		TopColor:    s.TopColor,
		BottomColor: s.BottomColor,
	}
}

// NewRaytracer creates a raytracer for the scene with the given sampling configuration
func (s *Scene) NewRaytracer(sampling renderer.SamplingConfig, logger core.Logger) (*renderer.Raytracer, error) {
	rt, err := renderer.NewRaytracer(s.Camera, s.World, sampling, logger)
	if err != nil {
		return nil, err
	}
	rt.SetIntegrator(s.Integrator())
	return rt, nil
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
