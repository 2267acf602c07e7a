package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-pathtracer/pkg/core"
)

// SceneFile is the YAML description of a camera, sampling settings and a list of objects
type SceneFile struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Camera      CameraSpec     `yaml:"camera"`
	Sampling    SamplingSpec   `yaml:"sampling"`
	Objects     []ObjectSpec   `yaml:"objects"`
	Background  BackgroundSpec `yaml:"background"`
}

// CameraSpec mirrors the camera configuration fields
type CameraSpec struct {
	Aspect      float64   `yaml:"aspect"`
	ImageWidth  int       `yaml:"image_width"`
	VerticalFov float64   `yaml:"vertical_fov"`
	VectorUp    []float64 `yaml:"vector_up"`
	LookFrom    []float64 `yaml:"look_from"`
	LookAt      []float64 `yaml:"look_at"`
}

// SamplingSpec holds optional sampling settings; zero values mean "use the default"
type SamplingSpec struct {
	SamplesPerPixel int    `yaml:"samples_per_pixel"`
	Technique       string `yaml:"technique"`
	MaxDepth        int    `yaml:"max_depth"`
}

// BackgroundSpec optionally overrides the sky gradient colors
type BackgroundSpec struct {
	Top    []float64 `yaml:"top"`
	Bottom []float64 `yaml:"bottom"`
}

// ObjectSpec describes one primitive. Only spheres are supported.
type ObjectSpec struct {
	Type     string       `yaml:"type"`
	Center   []float64    `yaml:"center"`
	Radius   float64      `yaml:"radius"`
	Material MaterialSpec `yaml:"material"`
}

// MaterialSpec describes a lambertian or metal surface
type MaterialSpec struct {
	Type      string    `yaml:"type"`
	Albedo    []float64 `yaml:"albedo"`
	Roughness float64   `yaml:"roughness"`
}

// LoadSceneFile reads and validates a YAML scene file
func LoadSceneFile(path string) (*SceneFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sceneFile, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sceneFile, nil
}

// ParseSceneFile decodes and validates a YAML scene description
func ParseSceneFile(r io.Reader) (*SceneFile, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var sceneFile SceneFile
	if err := decoder.Decode(&sceneFile); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty scene file")
		}
		return nil, fmt.Errorf("failed to decode scene file: %w", err)
	}

	if err := sceneFile.Validate(); err != nil {
		return nil, err
	}
	return &sceneFile, nil
}

// Validate checks the structure of the scene description
func (sf *SceneFile) Validate() error {
	for _, field := range []struct {
		name  string
		value []float64
	}{
		{"camera.vector_up", sf.Camera.VectorUp},
		{"camera.look_from", sf.Camera.LookFrom},
		{"camera.look_at", sf.Camera.LookAt},
	} {
		if _, err := ToVec3(field.value, field.name); err != nil {
			return err
		}
	}

	if sf.Background.Top != nil || sf.Background.Bottom != nil {
		if _, err := ToColor(sf.Background.Top, "background.top"); err != nil {
			return err
		}
		if _, err := ToColor(sf.Background.Bottom, "background.bottom"); err != nil {
			return err
		}
	}

	for i, object := range sf.Objects {
		prefix := fmt.Sprintf("objects[%d]", i)
		if object.Type != "" && object.Type != "sphere" {
			return fmt.Errorf("%s.type: unsupported shape %q", prefix, object.Type)
		}
		if _, err := ToVec3(object.Center, prefix+".center"); err != nil {
			return err
		}
		if !(object.Radius > 0) {
			return fmt.Errorf("%s.radius: must be positive, got %v", prefix, object.Radius)
		}
		if err := object.Material.validate(prefix + ".material"); err != nil {
			return err
		}
	}
	return nil
}

func (ms MaterialSpec) validate(prefix string) error {
	if _, err := ToColor(ms.Albedo, prefix+".albedo"); err != nil {
		return err
	}
	switch ms.Type {
	case "lambertian":
		return nil
	case "metal":
		if ms.Roughness < 0 || ms.Roughness > 1 {
			return fmt.Errorf("%s.roughness: must be in [0, 1], got %v", prefix, ms.Roughness)
		}
		return nil
	default:
		return fmt.Errorf("%s.type: unknown material %q", prefix, ms.Type)
	}
}

// ToVec3 converts a three element list into a vector
func ToVec3(values []float64, field string) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%s: expected 3 components, got %d", field, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

// ToColor converts a three element list into an RGB color with channels in [0, 1]
func ToColor(values []float64, field string) (core.Vec3, error) {
	c, err := ToVec3(values, field)
	if err != nil {
		return core.Vec3{}, err
	}
	for _, channel := range values {
		if !(channel >= 0 && channel <= 1) {
			return core.Vec3{}, fmt.Errorf("%s: channels must be in [0, 1], got %v", field, values)
		}
	}
	return c, nil
}
