package semantic

import (
	"testing"

	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/layout"
	"github.com/ctilde/ctilde/internal/parser"
	"github.com/ctilde/ctilde/internal/resolver"
	"github.com/ctilde/ctilde/internal/types"
)

func build(t *testing.T, src string) (*Analyzer, *ast.CompilationUnit) {
	t.Helper()
	p := parser.New(src, "a.ct")
	unit, diags := p.Parse()
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", diags.All())
	}

	repo := types.NewRepository()
	repo.IndexUnit(unit)

	typeRes := resolver.NewTypeResolver(repo)
	mono := resolver.NewMonomorphizer(repo)
	typeRes.SetMonomorphizer(mono)
	mono.SetResolver(typeRes)

	layoutMgr := layout.NewMemoryLayoutManager(repo, typeRes)
	funcRes := resolver.NewFunctionResolver(repo, typeRes, []*ast.CompilationUnit{unit})

	a := New(repo, typeRes, funcRes, layoutMgr)
	funcRes.SetExprTyper(a)
	return a, unit
}

func TestAnalyzeMinimalFunction(t *testing.T) {
	a, unit := build(t, `
int main(){ return 0; }
`)
	a.AnalyzeUnit(unit)
	if a.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", a.Diags.All())
	}
}

func TestAnalyzeInheritedMemberAccess(t *testing.T) {
	a, unit := build(t, `
struct Base { public: int x; };
struct Derived : Base { public: int Get(){ return x; } };
`)
	a.AnalyzeUnit(unit)
	if a.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", a.Diags.All())
	}
}

func TestAnalyzeRejectsPrivateFieldFromOutsideOwner(t *testing.T) {
	a, unit := build(t, `
struct Box { private: int secret; public: int Peek(){ return secret; } };
int main(){ Box* b; return b->secret; }
`)
	a.AnalyzeUnit(unit)
	if !a.Diags.HasErrors() {
		t.Fatal("expected an access-control diagnostic for the cross-struct private access")
	}
}

func TestAnalyzeAllowsPrivateFieldFromOwner(t *testing.T) {
	a, unit := build(t, `
struct Box { private: int secret; public: int Peek(){ return secret; } };
`)
	a.AnalyzeUnit(unit)
	if a.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", a.Diags.All())
	}
}

func TestAnalyzeDereferenceOfNonPointerIsRejected(t *testing.T) {
	a, unit := build(t, `
int main(){ int x; return *x; }
`)
	a.AnalyzeUnit(unit)
	if !a.Diags.HasErrors() {
		t.Fatal("expected a dereference-of-non-pointer diagnostic")
	}
}

func TestAnalyzeGenericMonomorphizationMemberAccess(t *testing.T) {
	a, unit := build(t, `
struct Box<T> { public: T value; };
int main(){ Box<int>* b; return b->value; }
`)
	a.AnalyzeUnit(unit)
	if a.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", a.Diags.All())
	}
}

func TestAnalyzeMethodCallResolvesThroughExprTyper(t *testing.T) {
	a, unit := build(t, `
struct Counter { public: int Value(){ return 0; } };
int main(){ Counter* c; return c->Value(); }
`)
	a.AnalyzeUnit(unit)
	if a.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", a.Diags.All())
	}
}

func TestAnalyzeUndefinedVariableIsReported(t *testing.T) {
	a, unit := build(t, `
int main(){ return nope; }
`)
	a.AnalyzeUnit(unit)
	if !a.Diags.HasErrors() {
		t.Fatal("expected an undefined-variable diagnostic")
	}
}

func TestAnalyzePropertyValueOnlyLegalInSet(t *testing.T) {
	a, unit := build(t, `
struct Box {
  private: int backing;
  public: int Value { get { return backing; } set { backing = value; } };
};
`)
	a.AnalyzeUnit(unit)
	if a.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", a.Diags.All())
	}
}

func TestAnalyzeWrongArgumentCountIsReported(t *testing.T) {
	a, unit := build(t, `
int add(int a, int b){ return a; }
int main(){ return add(1); }
`)
	a.AnalyzeUnit(unit)
	if !a.Diags.HasErrors() {
		t.Fatal("expected a wrong-argument-count diagnostic")
	}
}
