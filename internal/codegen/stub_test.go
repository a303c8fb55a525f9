package codegen

import (
	"strings"
	"testing"

	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/token"
)

func TestStubGenerateListsFunctionsInOrder(t *testing.T) {
	unit := &ast.CompilationUnit{
		Path: "a.ct",
		Functions: []*ast.Function{
			{Name: token.Token{Text: "main"}},
		},
	}
	prog := &ast.Program{Units: []*ast.CompilationUnit{unit}}

	s := &Stub{}
	asm, err := s.Generate(Units{Program: prog})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(asm, "; function main") {
		t.Fatalf("expected generated text to mention main, got %q", asm)
	}
}

func TestStubPropagatesGenerateErr(t *testing.T) {
	s := &Stub{GenerateErr: errTest}
	if _, err := s.Generate(Units{Program: &ast.Program{}}); err != errTest {
		t.Fatalf("expected GenerateErr to propagate, got %v", err)
	}
}

func TestStubAssembleRecordsCalls(t *testing.T) {
	s := &Stub{}
	spec := CommandSpec{Cmd: "as", Args: []string{"out.asm"}}
	if err := s.Assemble(spec); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(s.AssembleLog) != 1 || s.AssembleLog[0].Cmd != "as" {
		t.Fatalf("expected the assemble call to be recorded, got %v", s.AssembleLog)
	}
}

var errTest = &stubErr{"boom"}

type stubErr struct{ msg string }

func (e *stubErr) Error() string { return e.msg }
