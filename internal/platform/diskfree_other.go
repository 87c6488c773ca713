//go:build !linux && !darwin && !windows

package platform

func freeSpace(dir string) (uint64, error) {
	return 0, ErrUnsupported
}
