package source

import (
	"testing"

	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/diagnostic"
	"github.com/ctilde/ctilde/internal/token"
)

func unitWithImports(path string, imports ...*ast.Import) *ast.CompilationUnit {
	return &ast.CompilationUnit{Path: path, Imports: imports}
}

func TestMergeImportsUnionsByLibraryName(t *testing.T) {
	diags := &diagnostic.Bag{}
	units := []*ast.CompilationUnit{
		unitWithImports("a.ct", &ast.Import{LibraryName: "libfoo"}),
		unitWithImports("b.ct", &ast.Import{LibraryName: "libfoo"}),
		unitWithImports("b.ct", &ast.Import{LibraryName: "libbar"}),
	}
	merged := mergeImports(units, diags)
	if len(merged) != 2 {
		t.Fatalf("expected 2 unioned libraries, got %d: %v", len(merged), merged)
	}
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
}

func TestMergeImportsValidatesVersionConstraint(t *testing.T) {
	diags := &diagnostic.Bag{}
	units := []*ast.CompilationUnit{
		unitWithImports("a.ct", &ast.Import{LibraryName: "libfoo", VersionConstraint: "not-a-constraint", Token: token.Token{Line: 1, Column: 1}}),
	}
	merged := mergeImports(units, diags)
	if len(merged) != 0 {
		t.Fatalf("expected the malformed import to be dropped, got %v", merged)
	}
	if !diags.HasErrors() {
		t.Fatal("expected a diagnostic for the malformed version constraint")
	}
}

func TestMergeImportsAcceptsValidConstraint(t *testing.T) {
	diags := &diagnostic.Bag{}
	units := []*ast.CompilationUnit{
		unitWithImports("a.ct", &ast.Import{LibraryName: "libfoo", VersionConstraint: "^1.2.0"}),
	}
	merged := mergeImports(units, diags)
	if len(merged) != 1 || merged[0].VersionConstraint != "^1.2.0" {
		t.Fatalf("expected libfoo with its constraint preserved, got %v", merged)
	}
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
}

func TestMergeImportsReportsConflictingConstraints(t *testing.T) {
	diags := &diagnostic.Bag{}
	units := []*ast.CompilationUnit{
		unitWithImports("a.ct", &ast.Import{LibraryName: "libfoo", VersionConstraint: "^1.0.0"}),
		unitWithImports("b.ct", &ast.Import{LibraryName: "libfoo", VersionConstraint: "^2.0.0", Token: token.Token{Line: 1, Column: 1}}),
	}
	merged := mergeImports(units, diags)
	if len(merged) != 1 {
		t.Fatalf("expected libfoo still unioned once, got %v", merged)
	}
	if !diags.HasErrors() {
		t.Fatal("expected a conflicting-constraint diagnostic")
	}
}
