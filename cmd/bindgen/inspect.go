package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/bindgen/declare"
	"github.com/wippyai/bindgen/nativetype"
	"github.com/wippyai/bindgen/registry"
	"github.com/wippyai/bindgen/wasmabi"
	"github.com/wippyai/bindgen/witmap"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var typeColumns = []string{"Type", "Kind", "Mapping", "Java", "JNI", "Signature"}

func typeRow(t *nativetype.Type) []string {
	return []string{
		t.Spelling(),
		t.Kind().String(),
		t.Mapping().String(),
		t.UserFacingType(),
		t.NativeCallType(),
		t.Signature(true),
	}
}

func listTypes(w io.Writer, graph *declare.Graph, styled bool) error {
	var rows [][]string
	for _, t := range graph.Types() {
		rows = append(rows, typeRow(t))
	}

	if styled {
		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(borderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			}).
			Headers(typeColumns...).
			Rows(rows...)
		_, err := fmt.Fprintln(w, tbl.String())
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(typeColumns, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func printWIT(w io.Writer, graph *declare.Graph, classes []string, pointerSize int) error {
	for _, class := range classes {
		m, err := witmap.NewMapper(pointerSize)
		if err != nil {
			return err
		}
		out, err := m.Interface(class, graph.Functions().ByClass(class))
		if err != nil {
			return fmt.Errorf("wit %s: %w", class, err)
		}
		fmt.Fprintln(w, out)
	}
	return nil
}

// printWasm prints the core signature of every function, then
// instantiates one host module per class to check the signatures
// against wazero.
func printWasm(ctx context.Context, w io.Writer, graph *declare.Graph, classes []string, pointerSize int, logger *zap.Logger) error {
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	unbound := func(ctx context.Context, fn *registry.Function, mod api.Module, stack []uint64) {
		logger.Warn("call to unbound native function", zap.String("function", fn.QualifiedName()))
		for i := range stack {
			stack[i] = 0
		}
	}

	for _, class := range classes {
		fns := graph.Functions().ByClass(class)
		fmt.Fprintf(w, "%s:\n", class)
		for _, fn := range fns {
			sig, err := wasmabi.FunctionSignature(fn, pointerSize)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %s %s\n", fn.Name, sig)
		}
		mod, err := wasmabi.HostModule(ctx, r, witmap.Kebab(class), fns, pointerSize, unbound)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  host module %s: %d exports\n\n", mod.Name(), len(mod.ExportedFunctionDefinitions()))
	}
	return nil
}
