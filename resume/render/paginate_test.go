package render

import (
	"image"
	"image/color"
	"testing"
)

func TestPageCount(t *testing.T) {
	cases := []struct {
		height, page, want int
	}{
		{950, 297, 4},
		{297, 297, 1},
		{298, 297, 2},
		{1, 297, 1},
		{0, 297, 0},
		{297, 0, 0},
	}
	for _, tc := range cases {
		if got := PageCount(tc.height, tc.page); got != tc.want {
			t.Fatalf("PageCount(%d, %d) = %d, want %d", tc.height, tc.page, got, tc.want)
		}
	}
}

func TestPageHeightForA4Aspect(t *testing.T) {
	// 794px wide A4 page is 1123px tall at 96dpi.
	if got := PageHeightFor(794); got != 1123 {
		t.Fatalf("PageHeightFor(794) = %d, want 1123", got)
	}
	if got := PageHeightFor(0); got != 0 {
		t.Fatalf("PageHeightFor(0) = %d, want 0", got)
	}
}

func TestPaginateSinglePageWithinTolerance(t *testing.T) {
	img := gradientImage(210, 297+FitTolerancePx)
	bands := Paginate(img, 297)
	if len(bands) != 1 {
		t.Fatalf("bands = %d, want 1", len(bands))
	}
	if bands[0].Bounds().Dy() != 297+FitTolerancePx {
		t.Fatalf("single band must be the whole image")
	}
}

func TestPaginateBandCountAndLastBand(t *testing.T) {
	img := gradientImage(210, 950)
	bands := Paginate(img, 297)

	if len(bands) != 4 {
		t.Fatalf("bands = %d, want 4", len(bands))
	}
	for i := 0; i < 3; i++ {
		if h := bands[i].Bounds().Dy(); h != 297 {
			t.Fatalf("band %d height = %d, want 297", i, h)
		}
	}
	if h := bands[3].Bounds().Dy(); h != 59 {
		t.Fatalf("last band height = %d, want 59", h)
	}
}

func TestPaginateReconstructsSourceExactly(t *testing.T) {
	img := gradientImage(64, 950)
	bands := Paginate(img, 297)

	y := img.Bounds().Min.Y
	for bi, band := range bands {
		b := band.Bounds()
		if b.Min.Y != y {
			t.Fatalf("band %d starts at %d, want %d (gap or overlap)", bi, b.Min.Y, y)
		}
		for row := b.Min.Y; row < b.Max.Y; row++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if band.At(x, row) != img.At(x, row) {
					t.Fatalf("band %d pixel (%d,%d) differs from source", bi, x, row)
				}
			}
		}
		y = b.Max.Y
	}
	if y != img.Bounds().Max.Y {
		t.Fatalf("bands end at %d, want %d", y, img.Bounds().Max.Y)
	}
}

func TestPaginateNilAndEmpty(t *testing.T) {
	if got := Paginate(nil, 297); got != nil {
		t.Fatalf("nil image should yield nil bands")
	}
	if got := Paginate(gradientImage(10, 10), 0); got != nil {
		t.Fatalf("non-positive page height should yield nil bands")
	}
}

func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}
