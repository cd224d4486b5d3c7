package resample

import (
	"math"
	"runtime"
	"unsafe"

	"golang.org/x/sync/errgroup"

	"github.com/akeil/resample/internal/logging"
)

// Resampler scales rasters with bilinear interpolation.
//
// Workers sets the number of goroutines that share the destination rows.
// A value of zero or less uses one goroutine per CPU.
// The output does not depend on the number of workers.
type Resampler struct {
	Workers int
}

var defaultResampler = &Resampler{Workers: 1}

// Resize scales src by the given factors with a single worker.
// See Resampler.Resize.
func Resize(src *Raster, scaleX, scaleY float64) (*Raster, error) {
	return defaultResampler.Resize(src, scaleX, scaleY)
}

// Size returns the destination size for a source of the given size.
// Each dimension is rounded half up.
func Size(rows, cols int, scaleX, scaleY float64) (int, int, error) {
	err := checkScale(scaleX, scaleY)
	if err != nil {
		return 0, 0, err
	}

	dstRows, err := scaledDim(rows, scaleY)
	if err != nil {
		return 0, 0, err
	}
	dstCols, err := scaledDim(cols, scaleX)
	if err != nil {
		return 0, 0, err
	}
	if dstRows*dstCols > MaxPixels {
		return 0, 0, newInvalidScale("result of %dx%d pixels is too large", dstCols, dstRows)
	}
	return dstRows, dstCols, nil
}

func checkScale(scaleX, scaleY float64) error {
	for _, s := range []float64{scaleX, scaleY} {
		if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
			return newInvalidScale("scale factor must be a positive finite number, got (%v, %v)", scaleX, scaleY)
		}
	}
	return nil
}

func scaledDim(n int, scale float64) (int, error) {
	f := float64(n)*scale + 0.5
	if f >= math.MaxInt32 {
		return 0, newInvalidScale("scaling %d by %v exceeds the maximum raster size", n, scale)
	}
	d := int(f)
	if d < 1 {
		return 0, newInvalidScale("scaling %d by %v yields an empty raster", n, scale)
	}
	return d, nil
}

// Resize creates a new raster from src, scaled by scaleX horizontally and
// scaleY vertically.
//
// The destination has round(src.Cols*scaleX) columns and
// round(src.Rows*scaleY) rows and the same number of channels as src.
// Invalid sources and scale factors are rejected before anything is
// allocated.
func (r *Resampler) Resize(src *Raster, scaleX, scaleY float64) (*Raster, error) {
	err := src.Validate()
	if err != nil {
		return nil, err
	}
	rows, cols, err := Size(src.Rows, src.Cols, scaleX, scaleY)
	if err != nil {
		return nil, err
	}

	dst, err := NewRaster(rows, cols, src.Channels)
	if err != nil {
		return nil, err
	}

	err = r.resize(dst, src, scaleX, scaleY)
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// ResizeInto scales src into an existing destination raster.
//
// dst must have the size that Resize would produce and the same channel
// count as src. Its pixel buffer must not overlap the one of src.
func (r *Resampler) ResizeInto(dst, src *Raster, scaleX, scaleY float64) error {
	err := src.Validate()
	if err != nil {
		return err
	}
	rows, cols, err := Size(src.Rows, src.Cols, scaleX, scaleY)
	if err != nil {
		return err
	}

	err = dst.Validate()
	if err != nil {
		return Wrap(err, "invalid destination")
	}
	if dst == src || overlaps(dst.Pix, src.Pix) {
		return newSizeMismatch("destination must not share pixels with the source raster")
	}
	if dst.Channels != src.Channels {
		return channelMismatch{want: src.Channels, got: dst.Channels}
	}
	if dst.Rows != rows || dst.Cols != cols {
		return newSizeMismatch("destination is %dx%d, expected %dx%d", dst.Cols, dst.Rows, cols, rows)
	}

	return r.resize(dst, src, scaleX, scaleY)
}

func (r *Resampler) resize(dst, src *Raster, scaleX, scaleY float64) error {
	logging.Debug("Resize %v to %v, scale (%v, %v)", src, dst, scaleX, scaleY)

	cols := mapAxis(dst.Cols, src.Cols, scaleX)

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > dst.Rows {
		workers = dst.Rows
	}
	if workers == 1 {
		resizeRows(dst, src, cols, scaleY, 0, dst.Rows)
		return nil
	}

	// several bands per worker so uneven bands do not leave workers idle
	band := (dst.Rows + bandsPerWorker*workers - 1) / (bandsPerWorker * workers)
	var group errgroup.Group
	group.SetLimit(workers)
	for start := 0; start < dst.Rows; start += band {
		y0 := start
		y1 := start + band
		if y1 > dst.Rows {
			y1 = dst.Rows
		}
		group.Go(func() error {
			resizeRows(dst, src, cols, scaleY, y0, y1)
			return nil
		})
	}
	return group.Wait()
}

const bandsPerWorker = 4

// overlaps reports whether a and b share any bytes of their backing arrays.
func overlaps(a, b []uint8) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(&a[0]))
	b0 := uintptr(unsafe.Pointer(&b[0]))
	return a0 < b0+uintptr(len(b)) && b0 < a0+uintptr(len(a))
}

// sample holds the clamped neighbor indices and the weight for one
// destination coordinate along a single axis.
type sample struct {
	lo, hi int
	frac   float64
}

// mapAxis maps destination indices onto the source axis using pixel
// centers.
//
// The low neighbor is clamped to n-2 and the high neighbor to n-1. For a
// single-pixel axis both collapse to zero. The weight is not clamped and
// may exceed 1 next to the far edge.
func mapAxis(dstLen, srcLen int, scale float64) []sample {
	s := make([]sample, dstLen)
	for i := range s {
		s[i] = mapCoord(i, srcLen, scale)
	}
	return s
}

func mapCoord(i, srcLen int, scale float64) sample {
	norm := (float64(i) + 0.5) / scale
	lo := int(math.Floor(norm))
	hi := lo + 1

	lo = clamp(lo, 0, srcLen-2)
	hi = clamp(hi, 0, srcLen-1)

	return sample{
		lo:   lo,
		hi:   hi,
		frac: norm - float64(lo),
	}
}

// clamp limits v to max first and then to min,
// so min wins when max < min.
func clamp(v, min, max int) int {
	if v > max {
		v = max
	}
	if v < min {
		v = min
	}
	return v
}

func resizeRows(dst, src *Raster, cols []sample, scaleY float64, y0, y1 int) {
	ch := src.Channels
	for y := y0; y < y1; y++ {
		row := mapCoord(y, src.Rows, scaleY)
		dy := row.frac
		top := row.lo * src.Stride()
		bottom := row.hi * src.Stride()

		out := dst.Pix[y*dst.Stride() : (y+1)*dst.Stride()]
		for x, col := range cols {
			dx := col.frac
			left := col.lo * ch
			right := col.hi * ch

			p1 := src.Pix[top+left : top+left+ch]
			p2 := src.Pix[top+right : top+right+ch]
			p3 := src.Pix[bottom+left : bottom+left+ch]
			p4 := src.Pix[bottom+right : bottom+right+ch]

			px := out[x*ch : x*ch+ch]
			for c := range px {
				px[c] = blend(p1[c], p2[c], p3[c], p4[c], dx, dy)
			}
		}
	}
}

// blend interpolates between the four neighbors
//
//	p1 p2
//	p3 p4
//
// first vertically, then horizontally. The result is saturated to the
// channel range and truncated.
func blend(p1, p2, p3, p4 uint8, dx, dy float64) uint8 {
	// Keep the lerp form: it is exact for equal neighbors, the expanded
	// weighted sum is not and breaks collapsed rows and columns.
	left := lerp(float64(p1), float64(p3), dy)
	right := lerp(float64(p2), float64(p4), dy)
	return saturate(lerp(left, right, dx))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func saturate(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
