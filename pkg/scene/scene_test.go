package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

const testSceneYAML = `name: Test Spheres
description: Two spheres for tests
camera:
  aspect: 2
  image_width: 20
  vertical_fov: 90
  vector_up: [0, 1, 0]
  look_from: [0, 0, 1]
  look_at: [0, 0, -1]
sampling:
  samples_per_pixel: 4
  technique: none
  max_depth: 8
background:
  top: [0.1, 0.2, 0.3]
  bottom: [0.9, 0.9, 0.9]
objects:
  - center: [0, 0, -1]
    radius: 0.5
    material:
      type: metal
      albedo: [0.8, 0.6, 0.2]
      roughness: 0.3
  - center: [0, -100.5, -1]
    radius: 100
    material:
      type: lambertian
      albedo: [0.5, 0.5, 0.5]
`

const minimalSceneYAML = `camera:
  vector_up: [0, 1, 0]
  look_from: [0, 0, 0]
  look_at: [0, 0, -1]
`

type silentLogger struct{}

func (silentLogger) Printf(format string, args ...interface{}) {}

func TestBuiltInScenes(t *testing.T) {
	tests := []struct {
		id         string
		primitives int
	}{
		{"default", 4},
		{"ground", 2},
		{"empty", 0},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, err := NewBuiltInScene(tt.id)
			if err != nil {
				t.Fatalf("NewBuiltInScene(%q) failed: %v", tt.id, err)
			}
			if s.GetPrimitiveCount() != tt.primitives {
				t.Errorf("Expected %d primitives, got %d", tt.primitives, s.GetPrimitiveCount())
			}
			if s.Camera.ImageWidth() != 800 || s.Camera.ImageHeight() != 600 {
				t.Errorf("Expected 800x600, got %dx%d", s.Camera.ImageWidth(), s.Camera.ImageHeight())
			}
			if s.SamplingConfig.SamplesPerPixel != 10 || s.SamplingConfig.Technique != renderer.TechniqueSuperSampling {
				t.Errorf("Unexpected sampling %+v", s.SamplingConfig)
			}
			if s.Name == "" || s.Description == "" {
				t.Error("Expected name and description")
			}
		})
	}

	if _, err := NewBuiltInScene("cornell"); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestNewDefaultScene_CameraOverrides(t *testing.T) {
	s, err := NewDefaultScene(renderer.CameraConfig{Width: 40})
	if err != nil {
		t.Fatalf("NewDefaultScene failed: %v", err)
	}
	if s.Camera.ImageWidth() != 40 || s.Camera.ImageHeight() != 30 {
		t.Errorf("Expected 40x30, got %dx%d", s.Camera.ImageWidth(), s.Camera.ImageHeight())
	}
	if s.CameraConfig.VFov != 70 {
		t.Errorf("Expected fov 70 kept from defaults, got %v", s.CameraConfig.VFov)
	}

	if _, err := NewDefaultScene(renderer.CameraConfig{Width: -5}); !errors.Is(err, renderer.ErrInvalidCamera) {
		t.Errorf("Expected ErrInvalidCamera, got %v", err)
	}
}

func TestScene_SetCameraConfig(t *testing.T) {
	s, err := NewEmptyScene()
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetCameraConfig(renderer.CameraConfig{Width: 100, AspectRatio: 2}); err != nil {
		t.Fatalf("SetCameraConfig failed: %v", err)
	}
	if s.Camera.ImageWidth() != 100 || s.Camera.ImageHeight() != 50 {
		t.Errorf("Expected 100x50, got %dx%d", s.Camera.ImageWidth(), s.Camera.ImageHeight())
	}

	before := s.CameraConfig
	if err := s.SetCameraConfig(renderer.CameraConfig{VFov: 200}); err == nil {
		t.Error("Expected error for invalid fov")
	}
	if s.CameraConfig != before {
		t.Error("Failed update should leave the camera unchanged")
	}
}

func TestFromSceneFile(t *testing.T) {
	sceneFile, err := loaders.ParseSceneFile(strings.NewReader(testSceneYAML))
	if err != nil {
		t.Fatal(err)
	}

	s, err := FromSceneFile(sceneFile)
	if err != nil {
		t.Fatalf("FromSceneFile failed: %v", err)
	}

	if s.Name != "Test Spheres" || s.GetPrimitiveCount() != 2 {
		t.Errorf("Unexpected scene %q with %d primitives", s.Name, s.GetPrimitiveCount())
	}
	if s.Camera.ImageWidth() != 20 || s.Camera.ImageHeight() != 10 {
		t.Errorf("Expected 20x10, got %dx%d", s.Camera.ImageWidth(), s.Camera.ImageHeight())
	}
	if !s.CameraConfig.LookFrom.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("Unexpected look from %v", s.CameraConfig.LookFrom)
	}

	expectedSampling := renderer.SamplingConfig{SamplesPerPixel: 4, MaxDepth: 8, Technique: renderer.TechniqueNone}
	if s.SamplingConfig != expectedSampling {
		t.Errorf("Expected sampling %+v, got %+v", expectedSampling, s.SamplingConfig)
	}

	integ := s.Integrator()
	if !integ.TopColor.Equals(core.NewVec3(0.1, 0.2, 0.3)) || !integ.BottomColor.Equals(core.NewVec3(0.9, 0.9, 0.9)) {
		t.Errorf("Background not applied: top %v bottom %v", integ.TopColor, integ.BottomColor)
	}
}

func TestFromSceneFile_Defaults(t *testing.T) {
	sceneFile, err := loaders.ParseSceneFile(strings.NewReader(minimalSceneYAML))
	if err != nil {
		t.Fatal(err)
	}

	s, err := FromSceneFile(sceneFile, renderer.CameraConfig{Width: 8})
	if err != nil {
		t.Fatalf("FromSceneFile failed: %v", err)
	}

	if s.SamplingConfig != renderer.DefaultSamplingConfig() {
		t.Errorf("Expected default sampling, got %+v", s.SamplingConfig)
	}
	if s.CameraConfig.VFov != 70 || s.CameraConfig.AspectRatio != 4.0/3.0 {
		t.Errorf("Expected default fov and aspect, got %+v", s.CameraConfig)
	}
	if s.Camera.ImageWidth() != 8 {
		t.Errorf("Expected override width 8, got %d", s.Camera.ImageWidth())
	}
	if !s.TopColor.Equals(core.NewVec3(0.5, 0.7, 1.0)) {
		t.Errorf("Expected default sky top, got %v", s.TopColor)
	}
}

func TestFromSceneFile_BadTechnique(t *testing.T) {
	content := strings.Replace(testSceneYAML, "technique: none", "technique: blurry", 1)
	sceneFile, err := loaders.ParseSceneFile(strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := FromSceneFile(sceneFile); err == nil || !strings.Contains(err.Error(), "sampling.technique") {
		t.Errorf("Expected technique error, got %v", err)
	}
}

func TestNewSceneFromFile(t *testing.T) {
	path := writeSceneFile(t, t.TempDir(), "sky-only.yaml", minimalSceneYAML)

	s, err := NewSceneFromFile(path)
	if err != nil {
		t.Fatalf("NewSceneFromFile failed: %v", err)
	}
	if s.Name != "Sky Only" {
		t.Errorf("Expected name from filename, got %q", s.Name)
	}

	if _, err := NewSceneFromFile(path + ".missing"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestScene_NewRaytracerUsesBackground(t *testing.T) {
	sceneFile, err := loaders.ParseSceneFile(strings.NewReader(minimalSceneYAML +
		"background:\n  top: [0, 0, 0]\n  bottom: [0, 0, 0]\n"))
	if err != nil {
		t.Fatal(err)
	}
	s, err := FromSceneFile(sceneFile, renderer.CameraConfig{Width: 4})
	if err != nil {
		t.Fatal(err)
	}

	rt, err := s.NewRaytracer(renderer.SamplingConfig{SamplesPerPixel: 2, Technique: renderer.TechniqueSuperSampling, Seed: 3}, silentLogger{})
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	pixels, _ := rt.Render()
	for i, b := range pixels {
		if b != 0 {
			t.Fatalf("Expected a black sky, byte %d is %d", i, b)
		}
	}
}

func TestFromSceneFile_LookAtOrigin(t *testing.T) {
	content := strings.Replace(minimalSceneYAML, "look_from: [0, 0, 0]", "look_from: [3, 3, 3]", 1)
	content = strings.Replace(content, "look_at: [0, 0, -1]", "look_at: [0, 0, 0]", 1)
	sceneFile, err := loaders.ParseSceneFile(strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}

	s, err := FromSceneFile(sceneFile, renderer.CameraConfig{Width: 10})
	if err != nil {
		t.Fatalf("FromSceneFile failed: %v", err)
	}

	if !s.CameraConfig.LookFrom.Equals(core.NewVec3(3, 3, 3)) {
		t.Errorf("Expected look from (3,3,3), got %v", s.CameraConfig.LookFrom)
	}
	if !s.CameraConfig.LookAt.Equals(core.NewVec3(0, 0, 0)) {
		t.Errorf("Expected look at the origin, got %v", s.CameraConfig.LookAt)
	}

	// The center ray points from the camera toward the origin
	center := s.Camera.GetRay(0.5, 0.5).Direction.Normalize()
	expected := core.NewVec3(-1, -1, -1).Normalize()
	if !center.ApproxEquals(expected, 1e-9) {
		t.Errorf("Expected center direction %v, got %v", expected, center)
	}
}
