package parser

import (
	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/token"
)

// parseType implements the `type` production (spec §4.2):
//
//	type := ('struct'? IDENT ('::' IDENT)* | 'int'|'char'|'void') ('<' typeList '>')? '*'*
//
// '<' is only ever treated as a type-argument opener here, inside a
// type-parsing context; every other caller of expressions treats '<' as the
// relational operator (spec §4.2 "Generics vs. less-than").
func (p *Parser) parseType() ast.TypeNode {
	if p.at(token.KwStruct) {
		p.advance() // optional hint keyword, carries no semantic weight
	}

	nameTok := p.parseQualifiedTypeName()

	var base ast.TypeNode = &ast.SimpleType{Name: nameTok}
	if p.at(token.LAngle) {
		base = p.parseGenericSuffix(nameTok)
	}

	for p.at(token.Star) {
		p.advance()
		base = &ast.PointerType{Elem: base}
	}
	return base
}

// parseQualifiedTypeName consumes `int|char|void|IDENT` optionally followed
// by one or more `::IDENT` segments, composing them into a single
// synthetic token whose Text is the dotted-colon name (e.g. "ns::Widget").
// TypeResolver is responsible for splitting this back apart (spec §4.4).
func (p *Parser) parseQualifiedTypeName() token.Token {
	first := p.advanceTypeNameAtom()
	name := first

	for p.at(token.DoubleColon) {
		p.advance()
		next := p.eat(token.Identifier)
		name = token.Token{Kind: token.Identifier, Text: name.Text + "::" + next.Text, Line: name.Line, Column: name.Column}
	}
	return name
}

func (p *Parser) advanceTypeNameAtom() token.Token {
	switch p.cur().Kind {
	case token.KwInt, token.KwChar, token.KwVoid, token.Identifier:
		return p.advance()
	default:
		c := p.cur()
		p.errorf(c, "expected a type name, found %s %q", c.Kind, c.Text)
		if p.speculative {
			panic(speculationFailed{})
		}
		return token.Token{Kind: token.Identifier, Text: "unknown", Line: c.Line, Column: c.Column}
	}
}

// parseGenericSuffix parses `<typeList>` given that '<' is the current
// token, producing a GenericType rooted at nameTok.
func (p *Parser) parseGenericSuffix(nameTok token.Token) ast.TypeNode {
	p.eat(token.LAngle)

	g := &ast.GenericType{Name: nameTok}
	if !p.at(token.RAngle) {
		g.Args = append(g.Args, p.parseType())
		for p.at(token.Comma) {
			p.advance()
			g.Args = append(g.Args, p.parseType())
		}
	}
	p.eat(token.RAngle) // the closing '>' must match (spec §4.2)
	return g
}

// looksLikeTypeStart reports whether the current token could begin a
// `type` production, used by the declaration-vs-expression-statement
// speculation (spec §4.2) and by top-level dispatch.
func (p *Parser) looksLikeTypeStart() bool {
	switch p.cur().Kind {
	case token.KwInt, token.KwChar, token.KwVoid, token.Identifier, token.KwStruct:
		return true
	default:
		return false
	}
}
