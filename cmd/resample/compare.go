package main

import (
	"fmt"

	"github.com/akeil/resample"
	"github.com/akeil/resample/internal/imaging"
	"github.com/akeil/resample/pkg/codec"
)

func doCompare(s settings, input string) error {
	src, err := codec.Load(input)
	if err != nil {
		return err
	}

	stats, dst, err := compareReference(src, s.scaleX, s.scaleY)
	if err != nil {
		return err
	}

	fmt.Printf("%v %q: %dx%d -> %dx%d, %d channels\n", checkmark, input, src.Cols, src.Rows, dst.Cols, dst.Rows, dst.Channels)
	fmt.Printf("  difference to x/image/draw.BiLinear: mean %.3f, max %d\n", stats.Mean, stats.Max)
	return nil
}

// compareReference resizes src and measures the difference to the result
// of the bilinear scaler from golang.org/x/image.
func compareReference(src *resample.Raster, scaleX, scaleY float64) (resample.DiffStats, *resample.Raster, error) {
	var stats resample.DiffStats
	dst, err := resample.Resize(src, scaleX, scaleY)
	if err != nil {
		return stats, nil, err
	}

	img, err := imaging.ToImage(src)
	if err != nil {
		return stats, nil, err
	}
	ref := imaging.Reference(img, dst.Cols, dst.Rows)

	// bring the reference into the same layout
	refRaster, err := resample.NewRaster(dst.Rows, dst.Cols, dst.Channels)
	if err != nil {
		return stats, nil, err
	}
	for y := 0; y < dst.Rows; y++ {
		for x := 0; x < dst.Cols; x++ {
			c := ref.NRGBAAt(x, y)
			var p resample.Pixel
			switch dst.Channels {
			case 1:
				p = resample.Pixel{c.R}
			case 2:
				p = resample.Pixel{c.R, c.A}
			case 3:
				p = resample.Pixel{c.R, c.G, c.B}
			default:
				p = resample.Pixel{c.R, c.G, c.B, c.A}
			}
			err = refRaster.Set(y, x, p)
			if err != nil {
				return stats, nil, err
			}
		}
	}

	stats, err = resample.Diff(dst, refRaster)
	return stats, dst, err
}
