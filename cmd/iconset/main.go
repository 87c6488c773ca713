package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"appiconset/internal/config"
	"appiconset/internal/iconset"
	"appiconset/internal/imageio"
	"appiconset/internal/platform"
	"appiconset/internal/resample"
	"appiconset/internal/ui"
	"appiconset/internal/watch"
)

// Bad flags, bad config or an unreadable source image.
const exitInvalidInput = 3

type options struct {
	src        string
	out        string
	configPath string
	setName    string
	flat       bool
	sizes      string
	filter     string
	watch      bool
	verbose    bool
	quiet      bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return iconset.ExitSuccess
		}
		ui.Error(err.Error())
		return exitInvalidInput
	}

	logger := log.New(io.Discard, "", 0)
	if opts.verbose {
		logger = log.New(stderr, "iconset: ", log.LstdFlags)
	}
	if !opts.quiet && !opts.verbose {
		ui.PrintLogo()
	}

	// 1. Config
	cfg, err := loadConfig(opts)
	if err != nil {
		ui.Error(err.Error())
		return exitInvalidInput
	}

	// 2. Source image
	src, err := imageio.Load(opts.src)
	if err != nil {
		ui.Error("Cannot read source image: " + err.Error())
		return exitInvalidInput
	}

	destDir := opts.out
	if !opts.flat && cfg.SetName != "" {
		destDir = filepath.Join(opts.out, cfg.SetName)
	}

	exp := iconset.New(cfg, logger)
	code := generate(exp, src, destDir, logger)
	if !opts.watch {
		return code
	}

	// 3. Watch mode: regenerate on every save until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.Info("Watching " + opts.src + " for changes (Ctrl+C to stop)")
	err = watch.Watch(ctx, opts.src, logger, func() {
		src, err := imageio.Load(opts.src)
		if err != nil {
			ui.Warning("Skipping change: " + err.Error())
			return
		}
		code = generate(exp, src, destDir, logger)
	})
	if err != nil {
		ui.Error(err.Error())
		return exitInvalidInput
	}
	return code
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("iconset", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.src, "src", "", "Source image (png, jpeg, gif, bmp, tiff, webp). Required.")
	fs.StringVar(&opts.out, "out", "", "Folder the icon set is created in. Required.")
	fs.StringVar(&opts.configPath, "config", "", "Config file (.toml, .yaml). Defaults to the per-user config if present.")
	fs.StringVar(&opts.setName, "set", "", "Icon set folder name (default from config: "+config.DefaultSetName+")")
	fs.BoolVar(&opts.flat, "flat", false, "Write icons straight into -out instead of a set folder")
	fs.StringVar(&opts.sizes, "sizes", "", "Comma-separated pixel sizes, overriding the config")
	fs.StringVar(&opts.filter, "filter", "", "Resampling filter: catmullrom, bilinear, approxbilinear, nearest, lanczos3")
	fs.BoolVar(&opts.watch, "watch", false, "Regenerate whenever the source image changes")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose logging to stderr")
	fs.BoolVar(&opts.quiet, "q", false, "Do not print the banner")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if opts.src == "" {
		return opts, errors.New("-src is required")
	}
	if opts.out == "" {
		return opts, errors.New("-out is required")
	}
	return opts, nil
}

func loadConfig(opts options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if opts.sizes != "" {
		sizes, err := parseSizes(opts.sizes)
		if err != nil {
			return nil, err
		}
		cfg.Sizes = sizes
	}
	if opts.filter != "" {
		cfg.Filter = opts.filter
	}
	if opts.setName != "" {
		cfg.SetName = opts.setName
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func parseSizes(raw string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		size, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q", field)
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

// generate runs one export and prints its busy/idle transitions.
func generate(exp *iconset.Exporter, src resample.Source, destDir string, logger *log.Logger) int {
	if free, err := platform.FreeSpace(destDir); err == nil {
		logger.Printf("%s free at %s", platform.FormatBytes(free), platform.NearestExisting(destDir))
	}

	var report *iconset.Report
	for state := range exp.Start(src, destDir) {
		if state.Busy {
			ui.Busy(state.Message())
			continue
		}
		report = state.Report
	}

	for _, e := range report.Failed() {
		ui.Warning(e.Err.Error())
	}
	if report.ManifestErr != nil {
		ui.Warning("Manifest not written: " + report.ManifestErr.Error())
	}

	ui.Idle(report.Status.String(), report.Message())
	if report.Status == iconset.Success {
		ui.Info("Icon set: " + report.Dir)
	}
	return report.ExitCode()
}
