package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrUnsupported = errors.New("free space query not supported on this platform")

// FreeSpace reports the bytes available to the current user on the volume
// that holds dir. dir does not need to exist yet; its nearest existing
// ancestor is probed instead.
func FreeSpace(dir string) (uint64, error) {
	return freeSpace(NearestExisting(dir))
}

// NearestExisting walks up from dir to the first path that exists.
func NearestExisting(dir string) string {
	dir = filepath.Clean(dir)
	for {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

// FormatBytes renders n with a binary unit, e.g. "1.5 GiB".
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
