// Package codec reads and writes rasters as encoded image files.
//
// Decoding supports PNG, JPEG, GIF, BMP, TIFF and WebP.
// Encoding supports PNG, JPEG, GIF, BMP, TIFF and single-page PDF.
package codec

import (
	"bufio"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/akeil/resample"
	"github.com/akeil/resample/internal/imaging"
	"github.com/akeil/resample/internal/logging"
)

// Source provides decoded rasters.
type Source interface {
	Load(path string) (*resample.Raster, error)
}

// FileSource loads rasters from image files.
type FileSource struct{}

var _ Source = FileSource{}

// Load reads and decodes the image at path.
func (FileSource) Load(path string) (*resample.Raster, error) {
	return Load(path)
}

// Load reads and decodes the image file at path.
//
// A missing or unreadable file and an unsupported format all result in
// an error for which resample.IsDecodeError is true.
func Load(path string) (*resample.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, resample.NewDecodeError(path, err)
	}
	defer f.Close()

	r, format, err := decode(bufio.NewReader(f))
	if err != nil {
		return nil, resample.NewDecodeError(path, err)
	}
	logging.Debug("Decoded %q as %v: %v", path, format, r)
	return r, nil
}

// Decode reads an encoded image from r.
func Decode(r io.Reader) (*resample.Raster, error) {
	raster, _, err := decode(r)
	if err != nil {
		return nil, resample.NewDecodeError("", err)
	}
	return raster, nil
}

func decode(r io.Reader) (*resample.Raster, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}

	raster, err := imaging.ToRaster(img)
	if err != nil {
		return nil, "", err
	}
	return raster, format, nil
}
