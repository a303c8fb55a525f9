// Package codegen defines the narrow Go-side contracts for the collaborators
// spec.md keeps out of the analysis core: AST constant folding, assembly
// text generation, peephole rewriting, and the assembler process launcher
// (spec §4.9 stage 3/4, §6). internal/build depends only on these
// interfaces; nothing in this package implements a real x86 backend.
package codegen

import (
	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/layout"
	"github.com/ctilde/ctilde/internal/resolver"
	"github.com/ctilde/ctilde/internal/semantic"
	"github.com/ctilde/ctilde/internal/types"
)

// Units bundles the services a Codegen or Optimizer collaborator needs to
// read back resolved types, layouts, and call targets (spec §6's Codegen
// contract: "given (Program, TypeRepository, TypeResolver, FunctionResolver,
// VTableManager, MemoryLayoutManager, SemanticAnalyzer, Options)").
type Units struct {
	Program   *ast.Program
	Repo      *types.Repository
	TypeRes   *resolver.TypeResolver
	FuncRes   *resolver.FunctionResolver
	VTables   *layout.VTableManager
	Layout    *layout.MemoryLayoutManager
	Analyzer  *semantic.Analyzer
	ConstFold bool
}

// Optimizer performs the optional AST constant-folding pass (spec §4.9 stage
// 3). It is out-of-core per spec §1/§4.9; the driver invokes it only when
// Units.ConstFold is set and skips the stage entirely otherwise.
type Optimizer interface {
	Fold(units Units) error
}

// Codegen lowers the analyzed Program to assembly text (spec §4.9 stage 4,
// §6).
type Codegen interface {
	Generate(units Units) (string, error)
}

// PeepholeOptimizer rewrites generated assembly text at the string level
// (spec §6): redundant same-register push/pop pairs, and coalescing
// consecutive `add esp, N` adjustments.
type PeepholeOptimizer interface {
	Optimize(asm string) (string, error)
}

// CommandSpec describes one external process invocation, mirroring the
// teacher's own build.CommandSpec (internal/build/toolchain.go) used there
// to shell out to the Go toolchain.
type CommandSpec struct {
	Cmd     string
	Args    []string
	WorkDir string
}

// Assembler launches an external assembler process on a filesystem path
// (spec §6). Assemble never interprets the assembler's output; it only reports
// whether the process succeeded.
type Assembler interface {
	Assemble(spec CommandSpec) error
}
