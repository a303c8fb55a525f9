// Package build implements the Compilation driver: the four sequential
// stages spec §4.9 names (parse, analyze, optimize, generate), the
// two-phase service wiring spec §9 calls for, and the stage-short-circuit/
// scoped-resource discipline spec §5 requires.
package build

import (
	"io"

	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/codegen"
	"github.com/ctilde/ctilde/internal/config"
	"github.com/ctilde/ctilde/internal/diagnostic"
	"github.com/ctilde/ctilde/internal/layout"
	"github.com/ctilde/ctilde/internal/resolver"
	"github.com/ctilde/ctilde/internal/semantic"
	"github.com/ctilde/ctilde/internal/source"
	"github.com/ctilde/ctilde/internal/types"
)

// Compilation drives one end-to-end compile. Codegen is required; Optimizer
// and the destination for -v logging are optional (spec §4.9 stage 3 is
// itself optional, gated by Options.ConstFold).
type Compilation struct {
	Options   config.Options
	Codegen   codegen.Codegen
	Optimizer codegen.Optimizer
	LogWriter io.Writer // destination for -v optimizer logging; nil discards it
}

// Result is everything a completed (or short-circuited) Run produced.
type Result struct {
	Program  *ast.Program
	Assembly string
	Diags    *diagnostic.Bag
}

// Run executes the four stages in order, short-circuiting after any stage
// that leaves an Error-severity diagnostic in Diags (spec §4.9, §5's
// ordering guarantee: "a diagnostic from an earlier stage is always
// observable before any from a later stage, because stages are strictly
// sequential").
func (c *Compilation) Run() (Result, error) {
	optLog := openOptimizerLog(c.Options.Verbose, c.LogWriter)
	defer optLog.Close()

	// Stage 1: Parse.
	prog, diags, err := source.Load(c.Options.EntryPath)
	if err != nil {
		return Result{}, err
	}
	if diags.HasErrors() {
		return Result{Program: prog, Diags: diags}, nil
	}

	// Stage 2: Analyze. Two circular dependencies are broken by late-bound
	// setters before any unit is walked (spec §9): TypeResolver<->
	// Monomorphizer, and FunctionResolver<->SemanticAnalyzer.
	repo := types.NewRepository()
	for _, unit := range prog.Units {
		repo.IndexUnit(unit)
	}

	typeRes := resolver.NewTypeResolver(repo)
	mono := resolver.NewMonomorphizer(repo)
	typeRes.SetMonomorphizer(mono)
	mono.SetResolver(typeRes)

	layoutMgr := layout.NewMemoryLayoutManager(repo, typeRes)
	vtables := layout.NewVTableManager(repo)
	funcRes := resolver.NewFunctionResolver(repo, typeRes, prog.Units)

	analyzer := semantic.New(repo, typeRes, funcRes, layoutMgr)
	funcRes.SetExprTyper(analyzer)

	for _, unit := range prog.Units {
		analyzer.AnalyzeUnit(unit)
	}
	for _, d := range analyzer.Diags.All() {
		diags.Add(d)
	}
	if diags.HasErrors() {
		return Result{Program: prog, Diags: diags}, nil
	}

	units := codegen.Units{
		Program:   prog,
		Repo:      repo,
		TypeRes:   typeRes,
		FuncRes:   funcRes,
		VTables:   vtables,
		Layout:    layoutMgr,
		Analyzer:  analyzer,
		ConstFold: c.Options.ConstFold,
	}

	// Stage 3: Optimize (optional, out-of-core per spec §1/§4.9).
	if c.Options.ConstFold && c.Optimizer != nil {
		optLog.Printf("folding constants")
		if err := c.Optimizer.Fold(units); err != nil {
			return Result{Program: prog, Diags: diags}, err
		}
	}

	// Stage 4: Generate (out-of-core per spec §1/§6).
	asm, err := c.Codegen.Generate(units)
	if err != nil {
		return Result{Program: prog, Diags: diags}, err
	}

	return Result{Program: prog, Assembly: asm, Diags: diags}, nil
}
