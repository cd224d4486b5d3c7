package codec

import (
	"fmt"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/akeil/resample"
	"github.com/akeil/resample/internal/fs"
	"github.com/akeil/resample/internal/imaging"
	"github.com/akeil/resample/internal/logging"
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 90

// Sink accepts finished rasters, e.g. to store or display them.
type Sink interface {
	Put(name string, r *resample.Raster) error
}

var formatsByExt = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".pdf":  "pdf",
}

// FormatFor determines the output format from the extension of a file name.
func FormatFor(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	format, ok := formatsByExt[ext]
	if !ok {
		return "", fmt.Errorf("unsupported output format %q", ext)
	}
	return format, nil
}

// FileSink writes rasters to image files.
//
// The format is chosen from the file extension. Relative names are
// resolved against Dir. Files are written to a temporary file first and
// moved into place once encoding succeeded.
type FileSink struct {
	Dir     string
	Quality int
}

var _ Sink = (*FileSink)(nil)

// Put encodes r and stores it under name.
func (s *FileSink) Put(name string, r *resample.Raster) error {
	format, err := FormatFor(name)
	if err != nil {
		return err
	}

	path := name
	if s.Dir != "" && !filepath.IsAbs(name) {
		path = filepath.Join(s.Dir, name)
	}

	tmp := fs.TempName(path)
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	err = Encode(f, format, r, s.Quality)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil {
		err = fs.Move(tmp, path)
	}
	if err != nil {
		os.Remove(tmp)
		return resample.Wrap(err, "write %q", path)
	}

	logging.Info("Saved %v as %q", r, path)
	return nil
}

type discard struct{}

func (discard) Put(name string, r *resample.Raster) error {
	logging.Debug("Discard %v (%q)", r, name)
	return r.Validate()
}

// Discard is a Sink that drops every raster it receives.
var Discard Sink = discard{}

// Encode writes r to w in the given format.
// quality is only used for JPEG; values outside 1..100 select DefaultQuality.
func Encode(w io.Writer, format string, r *resample.Raster, quality int) error {
	img, err := imaging.ToImage(r)
	if err != nil {
		return err
	}

	switch format {
	case "png":
		return png.Encode(w, img)
	case "jpeg":
		if quality < 1 || quality > 100 {
			quality = DefaultQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case "gif":
		return gif.Encode(w, img, nil)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "pdf":
		return encodePDF(w, img)
	}
	return fmt.Errorf("unsupported output format %q", format)
}
