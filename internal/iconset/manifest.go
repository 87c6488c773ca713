package iconset

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
)

//go:embed Contents.json
var bundledManifest []byte

// BundledManifest returns a copy of the Contents.json template shipped with
// the binary. It names the logical slot of every file in the default size
// list and is the same regardless of which icons a run manages to write.
func BundledManifest() []byte {
	return bytes.Clone(bundledManifest)
}

// LoadManifest reads a replacement template from disk.
func LoadManifest(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest template: %w", err)
	}
	return data, nil
}

// writeManifest copies the template verbatim.
func (e *Exporter) writeManifest(path string) error {
	if len(e.Manifest) == 0 {
		return ErrNoManifest
	}
	return writeFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write(e.Manifest)
		return err
	})
}
