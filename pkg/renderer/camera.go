package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidCamera is returned for camera configurations with a degenerate basis or viewport
var ErrInvalidCamera = errors.New("invalid camera configuration")

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	AspectRatio float64   // Width / height
	Width       int       // Image width in pixels
	VFov        float64   // Vertical field of view in degrees
	Up          core.Vec3 // World up direction
	LookFrom    core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera looks at
}

// ImageHeight returns round(Width / AspectRatio)
func (c CameraConfig) ImageHeight() int {
	return int(math.Round(float64(c.Width) / c.AspectRatio))
}

// Validate reports configuration errors that would produce a degenerate camera
func (c CameraConfig) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidCamera, c.Width)
	}
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0) {
		return fmt.Errorf("%w: aspect ratio must be positive, got %v", ErrInvalidCamera, c.AspectRatio)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("%w: vertical fov must be in (0, 180) degrees, got %v", ErrInvalidCamera, c.VFov)
	}
	if c.Up.IsNaN() || c.LookFrom.IsNaN() || c.LookAt.IsNaN() {
		return fmt.Errorf("%w: NaN in camera vectors", ErrInvalidCamera)
	}
	if c.LookFrom.Equals(c.LookAt) {
		return fmt.Errorf("%w: look-from and look-at are the same point %v", ErrInvalidCamera, c.LookFrom)
	}
	if c.Up.Cross(c.LookFrom.Subtract(c.LookAt)).NearZero() {
		return fmt.Errorf("%w: up vector %v is zero or parallel to the view direction", ErrInvalidCamera, c.Up)
	}
	if c.ImageHeight() < 1 {
		return fmt.Errorf("%w: width %d and aspect %v give an empty image", ErrInvalidCamera, c.Width, c.AspectRatio)
	}
	return nil
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal basis: right, up, backward
	imageWidth      int
	imageHeight     int
}

// NewCamera creates a pinhole camera from the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(2 * halfWidth)
	vertical := v.Multiply(2 * halfHeight)
	lowerLeftCorner := origin.
		Subtract(u.Multiply(halfWidth)).
		Subtract(v.Multiply(halfHeight)).
		Subtract(w)

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		imageWidth:      config.Width,
		imageHeight:     config.ImageHeight(),
	}, nil
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// The direction is left unnormalized.
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// ImageWidth returns the output width in pixels
func (c *Camera) ImageWidth() int {
	return c.imageWidth
}

// ImageHeight returns the output height in pixels
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}


// MergeCameraConfig returns base with the non-zero scalar fields of override applied.
// Vectors always come from base: the zero vector is a valid position.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	return result
}
