package iconset

import (
	"bufio"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// Encoder turns a rendered icon into file bytes. *png.Encoder satisfies it.
type Encoder interface {
	Encode(w io.Writer, m image.Image) error
}

// PNGEncoder returns an Encoder using the given zlib level.
func PNGEncoder(level png.CompressionLevel) Encoder {
	return &png.Encoder{CompressionLevel: level}
}

// writeFileAtomic writes through a temp file in the same directory and
// renames it over path. A failed write leaves path untouched.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
