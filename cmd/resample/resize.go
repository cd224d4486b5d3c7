package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akeil/resample"
	"github.com/akeil/resample/pkg/codec"
)

func doResize(s settings, input, output string) error {
	// check the output format before doing any work
	if output != "" {
		_, err := codec.FormatFor(output)
		if err != nil {
			return err
		}
	}

	return resizeWith(codec.FileSource{}, &codec.FileSink{Quality: s.quality}, s, input, output)
}

func resizeWith(src codec.Source, sink codec.Sink, s settings, input, output string) error {
	fmt.Printf("%v load %q\n", ellipsis, input)
	r, err := src.Load(input)
	if err != nil {
		return err
	}

	rs := &resample.Resampler{Workers: s.workers}
	dst, err := rs.Resize(r, s.scaleX, s.scaleY)
	if err != nil {
		return err
	}

	if output == "" {
		output = defaultOutput(input, dst)
	}

	err = sink.Put(output, dst)
	if err != nil {
		return err
	}

	fmt.Printf("%v resized %q (%dx%d) to %q (%dx%d)\n", checkmark, input, r.Cols, r.Rows, output, dst.Cols, dst.Rows)
	return nil
}

// defaultOutput names the result after the input, with the new size
// appended, e.g. "face.jpg" -> "face_768x960.png".
func defaultOutput(input string, r *resample.Raster) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	return fmt.Sprintf("%v_%dx%d.png", base, r.Cols, r.Rows)
}
