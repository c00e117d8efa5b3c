package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/bindgen/declare"
	"github.com/wippyai/bindgen/emit"
	"github.com/wippyai/bindgen/registry"
	"github.com/wippyai/bindgen/templates/windows"
)

type template struct {
	build   func(*zap.Logger) (*declare.Graph, error)
	pkg     string
	classes []string
}

var templates = map[string]template{
	"windows": {build: windows.Build, pkg: windows.Package, classes: windows.Classes},
}

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: bindgen -out <dir> [-template windows] [-package name] [-ptr 4|8]")
		fmt.Fprintln(os.Stderr, "       bindgen -list | -wit | -wasm")
		fmt.Fprintln(os.Stderr, "       bindgen -i  (interactive mode)")
		os.Exit(1)
	}
	if cfg.generates() && cfg.out == "" {
		fmt.Fprintln(os.Stderr, "Usage: bindgen -out <dir> [-template windows] [-package name] [-ptr 4|8]")
		os.Exit(1)
	}

	logger := zap.NewNop()
	if cfg.verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer func() { _ = logger.Sync() }()
	registry.SetLogger(logger.Named("registry"))
	emit.SetLogger(logger.Named("emit"))

	if err := run(context.Background(), cfg, logger, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config, logger *zap.Logger, w io.Writer) error {
	tmpl := templates[cfg.template]
	graph, err := tmpl.build(logger)
	if err != nil {
		return fmt.Errorf("declare %s: %w", cfg.template, err)
	}
	pkg := cfg.pkg
	if pkg == "" {
		pkg = tmpl.pkg
	}

	switch {
	case cfg.interactive:
		return runInteractive(graph, cfg.template)
	case cfg.list:
		return listTypes(w, graph, isTerminal(w))
	case cfg.wit:
		return printWIT(w, graph, tmpl.classes, cfg.pointerSize)
	case cfg.wasm:
		return printWasm(ctx, w, graph, tmpl.classes, cfg.pointerSize, logger)
	}
	return generate(ctx, cfg, pkg, tmpl.classes, graph, logger)
}

func generate(ctx context.Context, cfg *config, pkg string, classes []string, graph *declare.Graph, logger *zap.Logger) error {
	e, err := emit.NewEmitter(pkg, cfg.pointerSize)
	if err != nil {
		return err
	}
	results, err := e.Batch(ctx, graph.Functions().All(), cfg.workers)
	if err != nil {
		return fmt.Errorf("emit: %w", err)
	}

	javaDir := filepath.Join(cfg.out, "java", filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/")))
	nativeDir := filepath.Join(cfg.out, "c")
	for _, dir := range []string{javaDir, nativeDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	header := fmt.Sprintf("// Generated by bindgen. Do not edit.\npackage %s;\n\nimport org.lwjgl.system.*;\n\n", pkg)
	write := func(path, content string) error {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debug("wrote file", zap.String("path", path), zap.Int("bytes", len(content)))
		return nil
	}

	for _, class := range classes {
		var classResults []emit.Result
		for _, r := range results {
			if r.Function.Class == class {
				classResults = append(classResults, r)
			}
		}
		if len(classResults) == 0 {
			continue
		}
		java, err := e.JavaFile(class, classResults)
		if err != nil {
			return fmt.Errorf("render %s: %w", class, err)
		}
		if err := write(filepath.Join(javaDir, class+".java"), java); err != nil {
			return err
		}
		native, err := e.NativeFile(classResults)
		if err != nil {
			return fmt.Errorf("render %s: %w", class, err)
		}
		if err := write(filepath.Join(nativeDir, "org_lwjgl_"+class+".c"), native); err != nil {
			return err
		}
	}

	for _, def := range graph.Structs().All() {
		src, err := e.StructClass(def)
		if err != nil {
			return err
		}
		if err := write(filepath.Join(javaDir, def.JavaClassName()+".java"), header+src+"\n"); err != nil {
			return err
		}
	}
	for _, cb := range graph.Callbacks().All() {
		src, err := e.CallbackTrampoline(cb)
		if err != nil {
			return err
		}
		if err := write(filepath.Join(javaDir, cb.JavaClassName()+"I.java"), header+src+"\n"); err != nil {
			return err
		}
	}

	logger.Info("generated bindings",
		zap.String("template", cfg.template),
		zap.String("package", pkg),
		zap.Int("functions", len(results)),
		zap.Int("structs", graph.Structs().Len()),
		zap.Int("callbacks", graph.Callbacks().Len()))
	return nil
}
