// Package render turns a canonical resume document into exportable
// files: a paginated raster PDF captured from the projected HTML, and
// an editable flow DOCX built directly from the document.
package render

import (
	"image"
)

// A4 geometry. The raster path works in pixels at the projection's
// logical width; PDF assembly works in millimetres.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0

	// FitTolerancePx absorbs rounding slack when deciding whether the
	// capture fits a single page.
	FitTolerancePx = 4
)

// PageHeightFor returns the page height in pixels for a bitmap of the
// given width, derived from the A4 aspect ratio.
func PageHeightFor(widthPx int) int {
	if widthPx <= 0 {
		return 0
	}
	return int(float64(widthPx)*PageHeightMM/PageWidthMM + 0.5)
}

// PageCount returns ceil(contentHeight/pageHeight).
func PageCount(contentHeight, pageHeight int) int {
	if contentHeight <= 0 || pageHeight <= 0 {
		return 0
	}
	return (contentHeight + pageHeight - 1) / pageHeight
}

// Paginate slices a full-height capture into horizontal bands of one
// page each. A capture within tolerance of a single page yields one
// band (the whole image). Bands share the source's pixels and
// concatenate top-to-bottom back into the original exactly: no gaps,
// no overlaps, only the last band may be shorter.
//
// Slicing is purely pixel-row based. An element straddling a page
// boundary is cut; that is the accepted trade-off of image-based
// export, not something this layer tries to repair.
func Paginate(img image.Image, pageHeight int) []image.Image {
	if img == nil || pageHeight <= 0 {
		return nil
	}
	bounds := img.Bounds()
	height := bounds.Dy()
	if height == 0 {
		return nil
	}

	if height <= pageHeight+FitTolerancePx {
		return []image.Image{img}
	}

	pages := PageCount(height, pageHeight)
	bands := make([]image.Image, 0, pages)
	for i := 0; i < pages; i++ {
		top := bounds.Min.Y + i*pageHeight
		bottom := top + pageHeight
		if bottom > bounds.Max.Y {
			bottom = bounds.Max.Y
		}
		bands = append(bands, crop(img, image.Rect(bounds.Min.X, top, bounds.Max.X, bottom)))
	}
	return bands
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func crop(img image.Image, r image.Rectangle) image.Image {
	if s, ok := img.(subImager); ok {
		return s.SubImage(r)
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			out.Set(x, y, img.At(r.Min.X+x, r.Min.Y+y))
		}
	}
	return out
}
