package parser

import (
	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/token"
)

// parseHashDirective handles `#import "lib" "constraint"?` and
// `#include "path"`. #include's payload is consumed here only to stay
// grammatically total (spec §4.2's directive production); the include
// closure itself is discovered by the out-of-core preprocessor
// (internal/source) before any file reaches this parser (spec §1, §6).
func (p *Parser) parseHashDirective(unit *ast.CompilationUnit) {
	hashTok := p.eat(token.Hash)
	kw := p.cur()

	if kw.Kind != token.Identifier || (kw.Text != "import" && kw.Text != "include") {
		p.errorf(kw, "expected 'import' or 'include' after '#', found %q", kw.Text)
		p.synchronize()
		return
	}
	p.advance()

	pathTok := p.eat(token.StringLiteral)

	if kw.Text == "include" {
		return
	}

	imp := &ast.Import{LibraryName: pathTok.Text, Token: hashTok}
	if p.at(token.StringLiteral) {
		verTok := p.advance()
		imp.VersionConstraint = verTok.Text
	}
	unit.Imports = append(unit.Imports, imp)
}

// parseUsing handles `using N;` and `using A = N;`.
func (p *Parser) parseUsing() *ast.Using {
	kwTok := p.eat(token.KwUsing)
	first := p.eat(token.Identifier)

	u := &ast.Using{Namespace: first.Text, Token: kwTok}
	if p.at(token.Assign) {
		p.advance()
		alias := p.eat(token.Identifier)
		u.Namespace = alias.Text
		u.Alias = first.Text
	}
	p.eat(token.Semicolon)
	return u
}

// parseNamespaceDirective handles `namespace N;`, which is file-scoped for
// every declaration that follows it (spec §6).
func (p *Parser) parseNamespaceDirective() {
	p.eat(token.KwNamespace)
	name := p.eat(token.Identifier)
	p.eat(token.Semicolon)
	p.namespace = name.Text
}
