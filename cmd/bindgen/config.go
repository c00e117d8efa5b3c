package main

import (
	"flag"
	"io"

	"github.com/xyproto/env/v2"

	"github.com/wippyai/bindgen/errors"
)

type config struct {
	template    string
	out         string
	pkg         string
	pointerSize int
	workers     int
	verbose     bool
	list        bool
	wit         bool
	wasm        bool
	interactive bool
}

// parseConfig reads flags from args. BINDGEN_* environment variables
// provide the defaults, so explicit flags win.
func parseConfig(args []string, output io.Writer) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("bindgen", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.template, "template", "windows", "Template to generate")
	fs.StringVar(&cfg.out, "out", env.Str("BINDGEN_OUT"), "Output directory for generated sources")
	fs.StringVar(&cfg.pkg, "package", env.Str("BINDGEN_PACKAGE"), "Java package (defaults to the template package)")
	fs.IntVar(&cfg.pointerSize, "ptr", env.Int("BINDGEN_POINTER_SIZE", 8), "Target pointer size in bytes (4 or 8)")
	fs.IntVar(&cfg.workers, "workers", 0, "Parallel emission workers (0 for no limit)")
	fs.BoolVar(&cfg.verbose, "v", env.Bool("BINDGEN_VERBOSE"), "Verbose logging")
	fs.BoolVar(&cfg.list, "list", false, "List declared types and exit")
	fs.BoolVar(&cfg.wit, "wit", false, "Print the WIT projection and exit")
	fs.BoolVar(&cfg.wasm, "wasm", false, "Print core wasm signatures and exit")
	fs.BoolVar(&cfg.interactive, "i", false, "Interactive mode with TUI")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.pointerSize != 4 && cfg.pointerSize != 8 {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Value(cfg.pointerSize).
			Detail("pointer size must be 4 or 8, got %d", cfg.pointerSize).
			Build()
	}
	if _, ok := templates[cfg.template]; !ok {
		return nil, errors.NotFound(errors.PhaseConfig, "template", cfg.template)
	}
	if cfg.workers < 0 {
		return nil, errors.InvalidInput(errors.PhaseConfig, "workers must not be negative")
	}
	return cfg, nil
}

// generates reports whether cfg writes sources rather than inspecting the
// graph.
func (c *config) generates() bool {
	return !c.list && !c.wit && !c.wasm && !c.interactive
}
