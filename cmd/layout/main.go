package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/isaiahaiasi/webgpu-demos/structbuf"
	"github.com/isaiahaiasi/webgpu-demos/structbuf/presets"
)

var presetSpecs = map[string]func() (*structbuf.Struct, bool){
	"automaton":    func() (*structbuf.Struct, bool) { return presets.AutomatonParams(), true },
	"slime-params": func() (*structbuf.Struct, bool) { return presets.SlimeParams(), true },
	"slime-agents": func() (*structbuf.Struct, bool) { return presets.SlimeAgents(8), false },
	"triangle":     func() (*structbuf.Struct, bool) { return presets.Triangle(), true },
}

func main() {
	var (
		specFile    = flag.String("spec", "", "Path to JSON layout spec")
		preset      = flag.String("preset", "", "Built-in layout ("+strings.Join(presetNames(), ", ")+")")
		uniform     = flag.Bool("uniform", false, "Apply uniform address space rules")
		valuesFile  = flag.String("values", "", "Path to JSON values to apply")
		hexDump     = flag.Bool("hex", false, "Dump record bytes")
		printSpec   = flag.Bool("print-spec", false, "Print the spec as compact JSON and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if (*specFile == "") == (*preset == "") {
		fmt.Fprintln(os.Stderr, "Usage: layout -spec <file.json> [-uniform] [-values <file.json>] [-hex]")
		fmt.Fprintln(os.Stderr, "       layout -preset <name> [-values <file.json>] [-hex]")
		fmt.Fprintln(os.Stderr, "       layout -spec <file.json> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			structbuf.SetLogger(logger)
			defer func() { _ = logger.Sync() }()
		}
	}

	spec, isUniform, err := loadSpec(*specFile, *preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *uniform {
		isUniform = true
	}

	if *printSpec {
		data, err := structbuf.MarshalSpec(spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	rec, err := newRecord(spec, isUniform, *valuesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(rec, sourceName(*specFile, *preset)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(renderTable(rec))
	} else {
		fmt.Print(rec.Dump())
	}
	if *hexDump {
		fmt.Print("\n" + rec.HexDump())
	}
}

func presetNames() []string {
	names := make([]string, 0, len(presetSpecs))
	for name := range presetSpecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sourceName(specFile, preset string) string {
	if specFile != "" {
		return specFile
	}
	return "preset " + preset
}

// loadSpec reads the spec from a file or a preset. Presets report whether
// they are meant to be bound as uniform buffers.
func loadSpec(specFile, preset string) (*structbuf.Struct, bool, error) {
	if preset != "" {
		fn, ok := presetSpecs[preset]
		if !ok {
			return nil, false, fmt.Errorf("unknown preset %q (have %s)", preset, strings.Join(presetNames(), ", "))
		}
		spec, uniform := fn()
		return spec, uniform, nil
	}

	data, err := os.ReadFile(specFile)
	if err != nil {
		return nil, false, fmt.Errorf("read spec: %w", err)
	}
	spec, err := structbuf.ParseSpec(data)
	if err != nil {
		return nil, false, err
	}
	return spec, false, nil
}

func newRecord(spec *structbuf.Struct, uniform bool, valuesFile string) (*structbuf.Record, error) {
	var opts []structbuf.Option
	if uniform {
		opts = append(opts, structbuf.WithUniform())
	}
	rec, err := structbuf.New(spec, opts...)
	if err != nil {
		return nil, err
	}

	if valuesFile != "" {
		data, err := os.ReadFile(valuesFile)
		if err != nil {
			return nil, fmt.Errorf("read values: %w", err)
		}
		values, err := structbuf.ParseValues(data)
		if err != nil {
			return nil, err
		}
		if err := rec.SetAll(values); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func renderTable(rec *structbuf.Record) string {
	header := titleStyle.Render("Layout")
	summary := fmt.Sprintf(" %d bytes, align %d", rec.Size(), rec.Layout().Align())
	if rec.Uniform() {
		summary += ", uniform"
	}

	rows := fieldRows(rec)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(helpStyle).
		Headers("FIELD", "TYPE", "OFFSET", "SIZE", "ALIGN", "VALUE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			case col == 0:
				return fieldStyle.Padding(0, 1)
			case col == 1:
				return typeStyle.Padding(0, 1)
			default:
				return lipgloss.NewStyle().Padding(0, 1)
			}
		})

	return header + summary + "\n" + t.String()
}

func fieldRows(rec *structbuf.Record) [][]string {
	fields := rec.Fields()
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		v, err := rec.Get(f.Path...)
		value := fmt.Sprint(v)
		if err != nil {
			value = err.Error()
		}
		rows = append(rows, []string{
			f.Key(),
			f.Tag,
			strconv.FormatUint(uint64(f.Offset), 10),
			strconv.FormatUint(uint64(f.Size), 10),
			strconv.FormatUint(uint64(f.Align), 10),
			value,
		})
	}
	return rows
}
