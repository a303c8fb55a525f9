// Package main is the CTilde compiler's CLI entry point: flag parsing,
// single-shot compile or -watch recompile loop, and diagnostic rendering
// (spec §6's CLI as an out-of-core collaborator; SPEC_FULL §2.1).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ctilde/ctilde/internal/build"
	"github.com/ctilde/ctilde/internal/codegen"
	"github.com/ctilde/ctilde/internal/config"
	"github.com/ctilde/ctilde/internal/diagnostic"
	"github.com/ctilde/ctilde/internal/source"
)

const (
	version              = "0.1.0"
	defaultTerminalWidth = 100
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		jsonOutput  = flag.Bool("json", false, "emit diagnostics as JSON instead of the terminal caret form")
		constFold   = flag.Bool("fold", false, "enable the optional AST constant-folding stage")
		target      = flag.String("target", "", "semver constraint on the compiler's supported target")
		watch       = flag.Bool("watch", false, "recompile whenever the entry file's include closure changes on disk")
		verbose     = flag.Bool("v", false, "log optimizer activity")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("ctildec v%s\n", version)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: ctildec [flags] <entry.ct>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	opts := config.Options{
		EntryPath: args[0],
		ConstFold: *constFold,
		Target:    *target,
		Watch:     *watch,
		JSON:      *jsonOutput,
		Verbose:   *verbose,
	}
	if err := opts.ValidateTarget(); err != nil {
		log.Fatalf("ctildec: invalid -target: %v", err)
	}

	stub := &codegen.Stub{}
	comp := &build.Compilation{Options: opts, Codegen: stub}
	if opts.ConstFold {
		comp.Optimizer = stub
	}
	if *verbose {
		comp.LogWriter = os.Stderr
	}

	if !*watch {
		os.Exit(runOnce(comp, opts))
	}
	runWatch(comp, opts)
}

// runOnce runs one compilation and renders its diagnostics, returning the
// process exit code spec §7 specifies: nonzero iff an Error-severity
// diagnostic was emitted.
func runOnce(comp *build.Compilation, opts config.Options) int {
	res, err := comp.Run()
	if err != nil {
		log.Printf("ctildec: %v", err)
		return 1
	}

	printDiagnostics(res.Diags, opts.JSON)
	if res.Diags != nil && res.Diags.HasErrors() {
		return 1
	}
	return 0
}

// printDiagnostics renders diags in (path,line,column) order, either as
// JSON (SPEC_FULL §4 item 3) or as the terminal caret form (spec §6),
// truncating long source lines to the controlling terminal's width
// (SPEC_FULL §3.5).
func printDiagnostics(diags *diagnostic.Bag, asJSON bool) {
	if diags == nil {
		return
	}
	sorted := diags.Sorted()

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(sorted)
		return
	}

	width := terminalWidth()
	sourceCache := make(map[string]string)
	for _, d := range sorted {
		src, ok := sourceCache[d.Path]
		if !ok {
			if data, err := os.ReadFile(d.Path); err == nil {
				src = string(data)
			}
			sourceCache[d.Path] = src
		}
		fmt.Print(truncateLines(diagnostic.Render(d, src), width))
	}
}

// truncateLines shortens every line of s past width columns, appending
// "..." so a caret diagnostic against a very long source line stays
// readable on a narrow terminal.
func truncateLines(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if len(line) > width {
			lines[i] = line[:width-3] + "..."
		}
	}
	return strings.Join(lines, "\n")
}

// closureFiles returns every file in the entry's #include closure, used by
// -watch to decide which paths to arm fsnotify on.
func closureFiles(entry string) ([]string, error) {
	return source.Discover(entry)
}
