package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/akeil/resample"
)

// ChannelsFor picks the raster layout for the given image.
//
// Gray images map to one channel, opaque images to three (RGB) and all
// others to four (RGBA, non-premultiplied).
func ChannelsFor(i image.Image) int {
	switch i.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	}
	if o, ok := i.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

// ToRaster copies the pixels of i into a new raster.
// The layout is chosen with ChannelsFor.
func ToRaster(i image.Image) (*resample.Raster, error) {
	b := i.Bounds()
	ch := ChannelsFor(i)
	r, err := resample.NewRaster(b.Dy(), b.Dx(), ch)
	if err != nil {
		return nil, err
	}

	var px []uint8
	for y := 0; y < r.Rows; y++ {
		for x := 0; x < r.Cols; x++ {
			o := r.Offset(y, x)
			px = r.Pix[o : o+ch]
			c := i.At(b.Min.X+x, b.Min.Y+y)
			if ch == 1 {
				px[0] = color.GrayModel.Convert(c).(color.Gray).Y
				continue
			}

			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			px[0], px[1], px[2] = n.R, n.G, n.B
			if ch == 4 {
				px[3] = n.A
			}
		}
	}
	return r, nil
}

// ToImage creates an image with the pixels from r.
//
// Single channel rasters become *image.Gray, all others *image.NRGBA.
// Gray with alpha is expanded to RGBA.
func ToImage(r *resample.Raster) (image.Image, error) {
	err := r.Validate()
	if err != nil {
		return nil, err
	}

	rect := image.Rect(0, 0, r.Cols, r.Rows)
	if r.Channels == 1 {
		g := image.NewGray(rect)
		for y := 0; y < r.Rows; y++ {
			copy(g.Pix[y*g.Stride:], r.Pix[y*r.Stride():(y+1)*r.Stride()])
		}
		return g, nil
	}

	dst := image.NewNRGBA(rect)
	for y := 0; y < r.Rows; y++ {
		for x := 0; x < r.Cols; x++ {
			o := r.Offset(y, x)
			src := r.Pix[o : o+r.Channels]
			d := dst.PixOffset(x, y)
			switch r.Channels {
			case 2:
				dst.Pix[d], dst.Pix[d+1], dst.Pix[d+2], dst.Pix[d+3] = src[0], src[0], src[0], src[1]
			case 3:
				dst.Pix[d], dst.Pix[d+1], dst.Pix[d+2], dst.Pix[d+3] = src[0], src[1], src[2], 255
			case 4:
				copy(dst.Pix[d:d+4], src)
			}
		}
	}
	return dst, nil
}

// Reference scales i to the given size with the bilinear scaler from
// golang.org/x/image/draw.
func Reference(i image.Image, cols, rows int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	draw.BiLinear.Scale(dst, dst.Bounds(), i, i.Bounds(), draw.Src, nil)
	return dst
}
