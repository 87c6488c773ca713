package iconset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Status int

const (
	Success Status = iota
	PartialFailure
	Failure
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case PartialFailure:
		return "partial_failure"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Process exit codes for each status.
const (
	ExitSuccess        = 0
	ExitPartialFailure = 1
	ExitFailure        = 2
)

// SuccessMessage is what a caller shows when every icon was written.
const SuccessMessage = "Generated Successfully!"

// Entry is the outcome of one configured size. Err is nil when the file
// was written.
type Entry struct {
	Size int
	Path string
	Err  error
}

func (e Entry) Written() bool { return e.Err == nil }

func (e Entry) MarshalJSON() ([]byte, error) {
	out := struct {
		Size   int    `json:"size"`
		Path   string `json:"path"`
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}{Size: e.Size, Path: e.Path, Status: "written"}
	if e.Err != nil {
		out.Status = "failed"
		out.Error = e.Err.Error()
	}
	return json.Marshal(out)
}

// Report is the result of one export run.
type Report struct {
	Status  Status
	Dir     string
	Entries []Entry

	ManifestPath string
	// ManifestErr never affects Status; a missing or unwritable manifest is
	// tolerated.
	ManifestErr error

	// Err is set only with Status == Failure.
	Err error
}

// Failed returns the entries that were not written, in order.
func (r *Report) Failed() []Entry {
	var failed []Entry
	for _, e := range r.Entries {
		if !e.Written() {
			failed = append(failed, e)
		}
	}
	return failed
}

// Written counts the entries that were written.
func (r *Report) Written() int {
	return len(r.Entries) - len(r.Failed())
}

// Message is a one-line summary suitable for an alert.
func (r *Report) Message() string {
	switch r.Status {
	case Success:
		return SuccessMessage
	case PartialFailure:
		failed := r.Failed()
		sizes := make([]string, len(failed))
		for i, e := range failed {
			sizes[i] = strconv.Itoa(e.Size)
		}
		return fmt.Sprintf("Generated %d of %d icons; failed sizes: %s", len(r.Entries)-len(failed), len(r.Entries), strings.Join(sizes, ", "))
	default:
		if r.Err != nil {
			return "Generation failed: " + r.Err.Error()
		}
		return "Generation failed"
	}
}

func (r *Report) ExitCode() int {
	switch r.Status {
	case Success:
		return ExitSuccess
	case PartialFailure:
		return ExitPartialFailure
	default:
		return ExitFailure
	}
}

func (r *Report) MarshalJSON() ([]byte, error) {
	out := struct {
		Status        Status  `json:"status"`
		Dir           string  `json:"dir"`
		Entries       []Entry `json:"entries"`
		ManifestPath  string  `json:"manifest_path,omitempty"`
		ManifestError string  `json:"manifest_error,omitempty"`
		Error         string  `json:"error,omitempty"`
	}{
		Status:       r.Status,
		Dir:          r.Dir,
		Entries:      r.Entries,
		ManifestPath: r.ManifestPath,
	}
	if out.Entries == nil {
		out.Entries = []Entry{}
	}
	if r.ManifestErr != nil {
		out.ManifestError = r.ManifestErr.Error()
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}
