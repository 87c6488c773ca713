package iconset

import (
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"appiconset/internal/config"
	"appiconset/internal/resample"
)

// Exporter renders one source image into an icon set directory.
//
// A run is strictly sequential: sizes are processed one at a time in list
// order, and nothing is shared between runs, so an Exporter can be reused
// but should not be mutated while a run is in flight.
type Exporter struct {
	// Sizes in generation order. Each entry is one write attempt.
	Sizes []int

	// Manifest is copied byte-for-byte into ManifestName. Empty means no
	// manifest, which is logged and tolerated.
	Manifest     []byte
	ManifestName string

	Filter  resample.Filter
	Encoder Encoder
	Logger  *log.Logger
}

// New builds an Exporter from cfg. A manifest template that cannot be read
// is logged and leaves the exporter without a manifest.
func New(cfg *config.Config, logger *log.Logger) *Exporter {
	e := &Exporter{
		Sizes:        slices.Clone(cfg.Sizes),
		Manifest:     BundledManifest(),
		ManifestName: cfg.ManifestName,
		Filter:       resample.Filter(cfg.Filter),
		Encoder:      PNGEncoder(cfg.PNGCompression()),
		Logger:       logger,
	}

	if cfg.ManifestTemplate != "" {
		data, err := LoadManifest(cfg.ManifestTemplate)
		if err != nil {
			e.logger().Printf("Manifest template unavailable, set will have no manifest: %v", err)
		}
		e.Manifest = data
	}
	return e
}

// FileName is the output name for a size. Equal sizes map to the same file.
func FileName(size int) string {
	return strconv.Itoa(size) + ".png"
}

// Run generates the icon set into destDir and reports the outcome.
//
// Only a failure to create destDir is fatal. A manifest failure is logged
// and recorded in Report.ManifestErr without changing the status, and a
// failure on one size does not stop the remaining sizes.
func (e *Exporter) Run(src resample.Source, destDir string) *Report {
	logger := e.logger()
	report := &Report{Dir: destDir}

	px := src.PixelSize()
	logger.Printf("Generating %d icons from %dx%d source (@%gx) into %s", len(e.Sizes), px.X, px.Y, scaleOf(src), destDir)

	// 1. Create the set directory (and parents)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		report.Status = Failure
		report.Err = &DirError{Dir: destDir, Err: err}
		logger.Printf("Aborting: %v", report.Err)
		return report
	}

	// 2. Manifest
	report.ManifestPath = filepath.Join(destDir, e.manifestName())
	if err := e.writeManifest(report.ManifestPath); err != nil {
		report.ManifestErr = err
		logger.Printf("Manifest not written (ignored): %v", err)
	}

	// 3. Every size, in order
	report.Entries = make([]Entry, 0, len(e.Sizes))
	for _, size := range e.Sizes {
		report.Entries = append(report.Entries, e.export(src, size, destDir))
	}

	// 4. Summarise
	report.Status = Success
	if len(report.Failed()) > 0 {
		report.Status = PartialFailure
	}
	logger.Printf("Done: %s (%d/%d written)", report.Status, report.Written(), len(report.Entries))
	return report
}

func (e *Exporter) export(src resample.Source, size int, dir string) Entry {
	path := filepath.Join(dir, FileName(size))
	entry := Entry{Size: size, Path: path}

	if size <= 0 || size > resample.MaxSize {
		entry.Err = &WriteError{Size: size, Path: path, Err: fmt.Errorf("unsupported size %d (want 1..%d)", size, resample.MaxSize)}
		e.logger().Printf("Skipped: %v", entry.Err)
		return entry
	}

	img := resample.ResizeWith(src, size, e.Filter)
	enc := e.encoder()
	err := writeFileAtomic(path, func(w io.Writer) error {
		return enc.Encode(w, img)
	})
	if err != nil {
		entry.Err = &WriteError{Size: size, Path: path, Err: err}
		e.logger().Printf("Failed: %v", entry.Err)
		return entry
	}

	e.logger().Printf("Wrote %s (%dx%d)", path, size, size)
	return entry
}

func (e *Exporter) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}

func (e *Exporter) encoder() Encoder {
	if e.Encoder != nil {
		return e.Encoder
	}
	return PNGEncoder(png.DefaultCompression)
}

func (e *Exporter) manifestName() string {
	if e.ManifestName != "" {
		return e.ManifestName
	}
	return config.DefaultManifestName
}

func scaleOf(src resample.Source) float64 {
	if src.Scale <= 0 {
		return 1
	}
	return src.Scale
}
