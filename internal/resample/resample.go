package resample

import (
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Source is a decoded bitmap plus the display density it was authored for.
// A Scale of 2 means the bitmap is an @2x rendition; 0 is treated as 1.
type Source struct {
	Image image.Image
	Scale float64
}

// PixelSize returns the stored pixel dimensions of the bitmap.
func (s Source) PixelSize() image.Point {
	if s.Image == nil {
		return image.Point{}
	}
	return s.Image.Bounds().Size()
}

// LogicalSize returns the pixel size divided by the density factor.
func (s Source) LogicalSize() (float64, float64) {
	px := s.PixelSize()
	scale := s.Scale
	if scale <= 0 {
		scale = 1
	}
	return float64(px.X) / scale, float64(px.Y) / scale
}

type Filter string

const (
	CatmullRom      Filter = "catmullrom"
	BiLinear        Filter = "bilinear"
	ApproxBiLinear  Filter = "approxbilinear"
	NearestNeighbor Filter = "nearest"
	Lanczos3        Filter = "lanczos3"

	DefaultFilter = CatmullRom
)

// MaxSize is the largest edge ResizeWith will allocate.
const MaxSize = 16384

// Filters lists every filter name ResizeWith understands.
var Filters = []Filter{CatmullRom, BiLinear, ApproxBiLinear, NearestNeighbor, Lanczos3}

// Known reports whether name is one of Filters.
func Known(name string) bool {
	for _, f := range Filters {
		if string(f) == name {
			return true
		}
	}
	return false
}

func interpolator(f Filter) draw.Interpolator {
	switch f {
	case BiLinear:
		return draw.BiLinear
	case ApproxBiLinear:
		return draw.ApproxBiLinear
	case NearestNeighbor:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize renders src onto a blank size×size canvas with the default filter.
func Resize(src Source, size int) *image.NRGBA {
	return ResizeWith(src, size, DefaultFilter)
}

// ResizeWith renders src stretched onto a transparent size×size canvas.
//
// The canvas is allocated in pixels, so the result is exactly size×size no
// matter what Scale the source carries. Aspect ratio is not preserved.
//
// A source with no pixels (nil image, empty bounds) yields the blank canvas
// rather than an error. A size outside 1..MaxSize yields an empty image;
// callers are expected to reject those sizes before getting here.
func ResizeWith(src Source, size int, f Filter) *image.NRGBA {
	if size < 1 || size > MaxSize {
		return image.NewNRGBA(image.Rectangle{})
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	if src.Image == nil || src.Image.Bounds().Empty() {
		return dst
	}

	if f == Lanczos3 {
		m := resize.Resize(uint(size), uint(size), src.Image, resize.Lanczos3)
		draw.Draw(dst, dst.Rect, m, m.Bounds().Min, draw.Src)
		return dst
	}

	interpolator(f).Scale(dst, dst.Rect, src.Image, src.Image.Bounds(), draw.Over, nil)
	return dst
}
