package codec

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// encodePDF writes a single page PDF with the page size set to the image
// size, one point per pixel.
func encodePDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	err := png.Encode(&buf, img)
	if err != nil {
		return err
	}

	orientation := "P" // [P]ortrait or [L]andscape
	sizeUnit := "pt"
	fontDir := ""
	pdf := gofpdf.New(orientation, sizeUnit, "A4", fontDir)
	pdf.SetMargins(0, 0, 0) // left, top, right
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetProducer("resample", true)

	name := "raster"
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, &buf)

	b := img.Bounds()
	width := float64(b.Dx())
	height := float64(b.Dy())
	pdf.AddPageFormat(orientation, gofpdf.SizeType{Wd: width, Ht: height})

	x := 0.0
	y := 0.0
	flow := false
	link := 0
	linkStr := ""
	pdf.ImageOptions(name, x, y, width, height, flow, opts, link, linkStr)

	return pdf.Output(w)
}
