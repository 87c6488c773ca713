package iconset

import (
	"errors"
	"fmt"
)

// ErrNoManifest is recorded when there is no template to copy.
var ErrNoManifest = errors.New("no manifest template")

// DirError is the one fatal error of a run: the set directory could not be
// created, so nothing else was attempted.
type DirError struct {
	Dir string
	Err error
}

func (e *DirError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("create icon set directory %s: %v", e.Dir, e.Err)
}

func (e *DirError) Unwrap() error { return e.Err }

// WriteError records why a single size was not written.
type WriteError struct {
	Size int
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("icon %d (%s): %v", e.Size, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
