package ast

import (
	"testing"

	"github.com/ctilde/ctilde/internal/token"
)

func tok(kind token.Kind, text string) token.Token {
	return token.Token{Kind: kind, Text: text, Line: 1, Column: 1}
}

func TestLinkParentsSetsBackLinksThroughout(t *testing.T) {
	v := &Variable{Name: tok(token.Identifier, "x")}
	ret := &ReturnStmt{Value: v, Token: tok(token.KwReturn, "return")}
	block := &Block{Stmts: []Stmt{ret}, Token: tok(token.LBrace, "{")}
	fn := &Function{
		Name:       tok(token.Identifier, "f"),
		ReturnType: &SimpleType{Name: tok(token.KwInt, "int")},
		Body:       block,
	}
	unit := &CompilationUnit{Path: "a.ct", Functions: []*Function{fn}}

	LinkParents(unit)

	if fn.Parent() != Node(unit) {
		t.Errorf("function parent = %v, want unit", fn.Parent())
	}
	if block.Parent() != Node(fn) {
		t.Errorf("block parent = %v, want function", block.Parent())
	}
	if ret.Parent() != Node(block) {
		t.Errorf("return parent = %v, want block", ret.Parent())
	}
	if v.Parent() != Node(ret) {
		t.Errorf("variable parent = %v, want return stmt", v.Parent())
	}
}

func TestCloneStructSubstitutesGenericParameter(t *testing.T) {
	tmpl := &Struct{
		Name:          tok(token.Identifier, "List"),
		GenericParams: []token.Token{tok(token.Identifier, "T")},
		Members: []*MemberVariable{
			{Type: &SimpleType{Name: tok(token.Identifier, "T")}, Name: tok(token.Identifier, "v")},
		},
	}

	subst := map[string]TypeNode{"T": &SimpleType{Name: tok(token.KwInt, "int")}}
	clone := CloneStruct(tmpl, subst)

	if len(clone.GenericParams) != 0 {
		t.Errorf("clone should have no generic params left, got %v", clone.GenericParams)
	}
	got := clone.Members[0].Type.(*SimpleType).Name.Text
	if got != "int" {
		t.Errorf("member type = %q, want int", got)
	}
	// Original template must be untouched.
	orig := tmpl.Members[0].Type.(*SimpleType).Name.Text
	if orig != "T" {
		t.Errorf("template was mutated: member type = %q, want T", orig)
	}
}
