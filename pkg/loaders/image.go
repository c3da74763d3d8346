package loaders

import (
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/material"
	"golang.org/x/xerrors"
)

// ImagesEnv names the directory searched first for texture images
const ImagesEnv = "RTW_IMAGES"

// maxParentLevels is how many "../" levels are tried when searching for images/
const maxParentLevels = 6

// ErrImageNotFound is returned when no search path yields a decodable image
var ErrImageNotFound = xerrors.New("image not found")

// ImageData contains a decoded image as packed RGB bytes, row-major from the top
type ImageData struct {
	Width  int
	Height int
	Pixels []byte
}

// Texture wraps the image in a texture that samples it by (u, v)
func (d *ImageData) Texture() *material.ImageTexture {
	return material.NewImageTexture(d.Width, d.Height, d.Pixels)
}

// srgbToLinear maps an 8-bit encoded channel to the 8-bit value of its
// gamma 2.2 linearized intensity
var srgbToLinear = func() [256]byte {
	var lut [256]byte
	for i := range lut {
		lut[i] = floatToByte(math.Pow(float64(i)/255, 2.2))
	}
	return lut
}()

func floatToByte(v float64) byte {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return byte(256 * v)
	}
}

// LoadImage loads a PNG or JPEG image, linearizes it and packs it as RGB bytes
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, xerrors.Errorf("while opening image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, xerrors.Errorf("while decoding image %q: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]byte, 0, 3*width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]; the high byte is the 8-bit value
			pixels = append(pixels, srgbToLinear[r>>8], srgbToLinear[g>>8], srgbToLinear[b>>8])
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// ImageSearchPaths lists the candidate locations for name in search order:
// $RTW_IMAGES/name, name, images/name, then ../images/name up to six levels up.
func ImageSearchPaths(name string) []string {
	var paths []string
	if dir, ok := os.LookupEnv(ImagesEnv); ok && dir != "" {
		paths = append(paths, filepath.Join(dir, name))
	}
	paths = append(paths, name, filepath.Join("images", name))
	for level := 1; level <= maxParentLevels; level++ {
		up := strings.Repeat("../", level)
		paths = append(paths, filepath.Join(up, "images", name))
	}
	return paths
}

// FindImage loads the first candidate from ImageSearchPaths that decodes
func FindImage(name string) (*ImageData, error) {
	for _, p := range ImageSearchPaths(name) {
		if data, err := LoadImage(p); err == nil {
			return data, nil
		}
	}
	return nil, xerrors.Errorf("could not load image file %q: %w", name, ErrImageNotFound)
}
