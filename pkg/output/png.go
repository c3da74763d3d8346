package output

import (
	"image"
	"image/png"
	"io"
	"path"
	"strings"

	"golang.org/x/xerrors"
)

// Format identifies an output image encoding
type Format string

const (
	FormatPNG Format = "png"
	FormatPPM Format = "ppm"
)

// FormatForPath picks the encoding from the file extension, defaulting to PNG
func FormatForPath(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".ppm":
		return FormatPPM
	default:
		return FormatPNG
	}
}

// EncodePNG writes img to w as a PNG
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return xerrors.Errorf("while encoding PNG: %w", err)
	}
	return nil
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPPM:
		return EncodePPM(w, img)
	case FormatPNG:
		return EncodePNG(w, img)
	default:
		return xerrors.Errorf("unsupported output format %q", format)
	}
}
