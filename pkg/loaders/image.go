package loaders

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"os"
)

// ImageWriteError reports a failure to persist a rendered image
type ImageWriteError struct {
	Path string // Destination file
	Op   string // "create", "encode" or "close"
	Err  error
}

func (e *ImageWriteError) Error() string {
	return fmt.Sprintf("failed to %s image %s: %v", e.Op, e.Path, e.Err)
}

func (e *ImageWriteError) Unwrap() error {
	return e.Err
}

// PixelsToImage converts a row-major, top-down RGB byte buffer into an RGBA image
func PixelsToImage(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if len(pixels) != width*height*3 {
		return nil, fmt.Errorf("pixel buffer has %d bytes, expected %d for %dx%d RGB",
			len(pixels), width*height*3, width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := 3 * (y*width + x)
			img.SetRGBA(x, y, color.RGBA{R: pixels[i], G: pixels[i+1], B: pixels[i+2], A: 255})
		}
	}
	return img, nil
}

// WritePNG encodes an RGB byte buffer as an 8-bit PNG at path
func WritePNG(path string, pixels []byte, width, height int) (err error) {
	img, err := PixelsToImage(pixels, width, height)
	if err != nil {
		return &ImageWriteError{Path: path, Op: "encode", Err: err}
	}

	file, err := os.Create(path)
	if err != nil {
		return &ImageWriteError{Path: path, Op: "create", Err: err}
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = &ImageWriteError{Path: path, Op: "close", Err: closeErr}
		}
	}()

	if err := png.Encode(file, img); err != nil {
		return &ImageWriteError{Path: path, Op: "encode", Err: err}
	}
	return nil
}

// ImageData contains a loaded image as a row-major RGB byte buffer
type ImageData struct {
	Width  int
	Height int
	Pixels []byte
}

// LoadImage loads a PNG or JPEG image into an RGB byte buffer
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]byte, width*height*3)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns 16-bit channels
			i := 3 * (y*width + x)
			pixels[i] = uint8(r >> 8)
			pixels[i+1] = uint8(g >> 8)
			pixels[i+2] = uint8(b >> 8)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}
