package resample

import (
	"bytes"
	"fmt"
	"math"
)

// MaxChannels is the largest supported number of channels per pixel.
const MaxChannels = 4

// MaxPixels limits the number of pixels in a single raster.
const MaxPixels = 1 << 28

// Pixel holds the channel values of a single pixel.
type Pixel []uint8

// Raster is a rectangular grid of 8-bit pixels stored in row-major order.
//
// The pixel at (y, x) starts at Pix[(y*Cols+x)*Channels].
// Channel layouts are 1 (gray), 2 (gray, alpha), 3 (RGB) and 4 (RGBA).
type Raster struct {
	Rows     int
	Cols     int
	Channels int
	Pix      []uint8
}

// NewRaster allocates a zeroed raster with the given dimensions.
func NewRaster(rows, cols, channels int) (*Raster, error) {
	err := checkShape(rows, cols, channels)
	if err != nil {
		return nil, err
	}

	return &Raster{
		Rows:     rows,
		Cols:     cols,
		Channels: channels,
		Pix:      make([]uint8, rows*cols*channels),
	}, nil
}

func checkShape(rows, cols, channels int) error {
	if rows < 1 || cols < 1 {
		return newDegenerateSource("raster must have at least one row and column, got %dx%d", cols, rows)
	}
	if channels < 1 || channels > MaxChannels {
		return newDegenerateSource("unsupported channel count %d", channels)
	}
	if rows > math.MaxInt32 || cols > math.MaxInt32 || rows*cols > MaxPixels {
		return newDegenerateSource("raster too large: %dx%d", cols, rows)
	}
	return nil
}

// Validate checks that the raster dimensions are usable and match the
// length of the pixel buffer.
func (r *Raster) Validate() error {
	if r == nil {
		return newDegenerateSource("raster is nil")
	}
	err := checkShape(r.Rows, r.Cols, r.Channels)
	if err != nil {
		return err
	}
	expected := r.Rows * r.Cols * r.Channels
	if len(r.Pix) != expected {
		return newDegenerateSource("pixel buffer has %d bytes, expected %d", len(r.Pix), expected)
	}
	return nil
}

// Stride is the number of bytes per row.
func (r *Raster) Stride() int {
	return r.Cols * r.Channels
}

// Offset returns the index of the first channel of pixel (y, x) in Pix.
func (r *Raster) Offset(y, x int) int {
	return y*r.Stride() + x*r.Channels
}

// At returns a copy of the pixel at row y and column x.
func (r *Raster) At(y, x int) Pixel {
	i := r.Offset(y, x)
	p := make(Pixel, r.Channels)
	copy(p, r.Pix[i:i+r.Channels])
	return p
}

// Set copies p into the pixel at row y and column x.
// p must have exactly as many values as the raster has channels.
func (r *Raster) Set(y, x int, p Pixel) error {
	if len(p) != r.Channels {
		return channelMismatch{want: r.Channels, got: len(p)}
	}
	i := r.Offset(y, x)
	copy(r.Pix[i:i+r.Channels], p)
	return nil
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	pix := make([]uint8, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{
		Rows:     r.Rows,
		Cols:     r.Cols,
		Channels: r.Channels,
		Pix:      pix,
	}
}

// Equal reports whether both rasters have the same shape and pixel values.
func (r *Raster) Equal(o *Raster) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.Rows == o.Rows &&
		r.Cols == o.Cols &&
		r.Channels == o.Channels &&
		bytes.Equal(r.Pix, o.Pix)
}

func (r *Raster) String() string {
	return fmt.Sprintf("Raster(%dx%d, %d channels)", r.Cols, r.Rows, r.Channels)
}

// DiffStats describes the per-channel difference between two rasters.
type DiffStats struct {
	Mean float64
	Max  int
}

// Diff compares two rasters of the same shape channel by channel.
func Diff(a, b *Raster) (DiffStats, error) {
	var s DiffStats
	if err := a.Validate(); err != nil {
		return s, err
	}
	if err := b.Validate(); err != nil {
		return s, err
	}
	if a.Channels != b.Channels {
		return s, channelMismatch{want: a.Channels, got: b.Channels}
	}
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return s, newSizeMismatch("cannot compare %dx%d with %dx%d", a.Cols, a.Rows, b.Cols, b.Rows)
	}

	var sum float64
	for i, v := range a.Pix {
		d := int(v) - int(b.Pix[i])
		if d < 0 {
			d = -d
		}
		if d > s.Max {
			s.Max = d
		}
		sum += float64(d)
	}
	s.Mean = sum / float64(len(a.Pix))
	return s, nil
}
