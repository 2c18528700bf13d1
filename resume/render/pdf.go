package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// jpegQuality balances page-image sharpness against file size.
const jpegQuality = 92

// WritePDF assembles the page bands into an A4 PDF with zero margins,
// one full-bleed JPEG-compressed image per page positioned at the page
// origin. The last band may be shorter than a page; the remainder of
// that page is left blank.
func WritePDF(bands []image.Image, w io.Writer) error {
	if len(bands) == 0 {
		return fmt.Errorf("no pages to write")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	for i, band := range bands {
		bounds := band.Bounds()
		if bounds.Dx() == 0 || bounds.Dy() == 0 {
			return fmt.Errorf("page %d has empty bounds", i+1)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, band, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return fmt.Errorf("encode page %d: %w", i+1, err)
		}

		name := fmt.Sprintf("page-%d", i+1)
		pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "JPEG"}, &buf)

		// Band height in mm follows from the band's pixel aspect at
		// full page width.
		heightMM := PageWidthMM * float64(bounds.Dy()) / float64(bounds.Dx())

		pdf.AddPage()
		pdf.ImageOptions(name, 0, 0, PageWidthMM, heightMM, false, gofpdf.ImageOptions{ImageType: "JPEG"}, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// PaginateCapture slices a full-height capture into A4 page bands.
func PaginateCapture(img image.Image) []image.Image {
	if img == nil {
		return nil
	}
	return Paginate(img, PageHeightFor(img.Bounds().Dx()))
}
