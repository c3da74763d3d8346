package output

import (
	"bufio"
	"fmt"
	"image"
	"io"

	"golang.org/x/xerrors"
)

// PPMWriter streams a binary (P6) PPM image one scanline at a time.
// It satisfies renderer.RowSink.
type PPMWriter struct {
	w      *bufio.Writer
	width  int
	height int
	next   int
}

// NewPPMWriter writes the PPM header for a width x height image to w
func NewPPMWriter(w io.Writer, width, height int) (*PPMWriter, error) {
	if width <= 0 || height <= 0 {
		return nil, xerrors.Errorf("invalid PPM dimensions %dx%d", width, height)
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height); err != nil {
		return nil, xerrors.Errorf("while writing PPM header: %w", err)
	}
	return &PPMWriter{w: bw, width: width, height: height}, nil
}

// WriteRow appends scanline y, which must be the next row in order
func (p *PPMWriter) WriteRow(y int, rgb []byte) error {
	if y != p.next {
		return xerrors.Errorf("PPM row %d written out of order, expected row %d", y, p.next)
	}
	if y >= p.height {
		return xerrors.Errorf("PPM row %d beyond image height %d", y, p.height)
	}
	if len(rgb) != 3*p.width {
		return xerrors.Errorf("PPM row %d has %d bytes, expected %d", y, len(rgb), 3*p.width)
	}
	if _, err := p.w.Write(rgb); err != nil {
		return xerrors.Errorf("while writing PPM row %d: %w", y, err)
	}
	p.next++
	return nil
}

// Flush writes any buffered data and reports whether every row arrived
func (p *PPMWriter) Flush() error {
	if err := p.w.Flush(); err != nil {
		return xerrors.Errorf("while flushing PPM data: %w", err)
	}
	if p.next != p.height {
		return xerrors.Errorf("PPM image incomplete: %d of %d rows written", p.next, p.height)
	}
	return nil
}

// EncodePPM writes img to w as a binary PPM, dropping alpha
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	ppm, err := NewPPMWriter(w, bounds.Dx(), bounds.Dy())
	if err != nil {
		return err
	}

	row := make([]byte, 0, 3*bounds.Dx())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row = row[:0]
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			row = append(row, byte(r>>8), byte(g>>8), byte(b>>8))
		}
		if err := ppm.WriteRow(y-bounds.Min.Y, row); err != nil {
			return err
		}
	}
	return ppm.Flush()
}
