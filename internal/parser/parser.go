// Package parser implements CTilde's recursive-descent parser: precedence
// climbing for expressions, speculative lookahead for the
// declaration-vs-expression-statement ambiguity, and panic-mode error
// recovery (spec §4.2).
package parser

import (
	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/diagnostic"
	"github.com/ctilde/ctilde/internal/lexer"
	"github.com/ctilde/ctilde/internal/token"
)

// Parser consumes a pre-lexed token stream and produces a CompilationUnit.
// The whole stream is materialized up front (rather than pulled lazily from
// the Lexer) so that speculative parsing can save and restore the cursor
// with a plain integer (spec §4.2's "Ambiguity rule — statement start").
type Parser struct {
	toks []token.Token
	pos  int

	path        string
	diags       *diagnostic.Bag
	namespace   string // current `namespace N;` scope, file-local
	speculative bool   // true while attempting the decl-vs-expr lookahead
}

// speculationFailed is panicked by eat/parsePrimary while p.speculative is
// true, and recovered by the speculative caller to signal "rewind and
// retry as an expression statement" (spec §4.2).
type speculationFailed struct{}

// New creates a Parser over src, reporting diagnostics against path.
func New(src, path string) *Parser {
	return &Parser{
		toks:  lexer.All(src),
		path:  path,
		diags: &diagnostic.Bag{},
	}
}

func (p *Parser) cur() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return token.Token{Kind: token.EOF}
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return token.Token{Kind: token.EOF}
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

// eat consumes the current token if it matches expected, returning it. On
// mismatch it records a diagnostic and returns a zero-width synthetic token
// without advancing, so the caller can keep building a partial tree
// (spec §4.2 "Eat(expected) that fails returns a zero-width synthetic
// token and continues").
func (p *Parser) eat(expected token.Kind) token.Token {
	if p.at(expected) {
		return p.advance()
	}
	if p.speculative {
		panic(speculationFailed{})
	}
	c := p.cur()
	p.errorf(c, "expected %s, found %s %q", expected, c.Kind, c.Text)
	return token.Token{Kind: expected, Text: "", Line: c.Line, Column: c.Column}
}

func (p *Parser) errorf(at token.Token, format string, args ...interface{}) {
	p.diags.Errorf(p.path, at.Line, at.Column, format, args...)
}

// save/restore implement the position save/restore used by speculative
// parsing (declaration-vs-expression-statement) and by parseBlock's recovery.
type savePoint struct {
	pos      int
	diagsLen int
}

func (p *Parser) save() savePoint {
	return savePoint{pos: p.pos, diagsLen: len(p.diags.All())}
}

func (p *Parser) restore(sp savePoint) {
	p.pos = sp.pos
	p.diags.Truncate(sp.diagsLen)
}

// synchronize implements panic-mode recovery: skip tokens until the next
// `;` (consuming it) or `}` (consuming it), or EOF (spec §4.2, §7).
func (p *Parser) synchronize() {
	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		if p.at(token.RBrace) {
			p.advance()
			return
		}
		p.advance()
	}
}

// Parse parses the whole token stream into a CompilationUnit, recording
// diagnostics along the way. It always terminates and always returns a
// non-nil unit (spec §8's parser-totality property).
func (p *Parser) Parse() (*ast.CompilationUnit, *diagnostic.Bag) {
	unit := &ast.CompilationUnit{Path: p.path}

	for !p.at(token.EOF) {
		p.parseTopLevel(unit)
	}

	ast.LinkParents(unit)
	return unit, p.diags
}

func (p *Parser) parseTopLevel(unit *ast.CompilationUnit) {
	defer func() {
		if r := recover(); r != nil {
			// A panic from a declaration parse (spec §4.2: "any exception
			// thrown during a declaration is caught") triggers
			// synchronization rather than aborting the whole parse.
			p.synchronize()
		}
	}()

	switch {
	case p.at(token.Hash):
		p.parseHashDirective(unit)
	case p.at(token.KwUsing):
		unit.Usings = append(unit.Usings, p.parseUsing())
	case p.at(token.KwNamespace):
		p.parseNamespaceDirective()
	case p.at(token.KwStruct):
		unit.Structs = append(unit.Structs, p.parseStruct())
	case p.at(token.KwEnum):
		unit.Enums = append(unit.Enums, p.parseEnum())
	case p.looksLikeTypeStart():
		unit.Functions = append(unit.Functions, p.parseFreeFunction())
	default:
		c := p.cur()
		p.errorf(c, "unexpected token %s %q at top level", c.Kind, c.Text)
		p.synchronize()
	}
}
