package imageio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"appiconset/internal/resample"
)

// Apple-style density suffix: "logo@2x.png", "logo@1.5x.jpg".
var scaleSuffix = regexp.MustCompile(`@(\d+(?:\.\d+)?)x$`)

// Load opens and decodes the image at path. The density factor is taken
// from an @Nx suffix on the file name.
func Load(path string) (resample.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return resample.Source{}, fmt.Errorf("open source image: %w", err)
	}
	defer f.Close()

	return Decode(f, path)
}

// Decode reads a PNG, JPEG, GIF, BMP, TIFF or WebP bitmap from r.
// name is only used for density detection and error messages.
func Decode(r io.Reader, name string) (resample.Source, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return resample.Source{}, fmt.Errorf("decode %s: %w", filepath.Base(name), err)
	}
	return resample.Source{Image: img, Scale: ScaleFromName(name)}, nil
}

// ScaleFromName returns the density factor encoded in a file name, or 1.
func ScaleFromName(name string) float64 {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	m := scaleSuffix.FindStringSubmatch(base)
	if m == nil {
		return 1
	}
	scale, err := strconv.ParseFloat(m[1], 64)
	if err != nil || scale <= 0 {
		return 1
	}
	return scale
}
