package parser

import (
	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/token"
)

// operatorMangling maps the single token consumed after the `operator`
// keyword to the suffix used to synthesize the method name
// `operator_<mangled>` (spec §4.2).
var operatorMangling = map[token.Kind]string{
	token.Plus:   "Plus",
	token.Minus:  "Minus",
	token.Star:   "Mul",
	token.Slash:  "Div",
	token.Eq:     "Eq",
	token.Ne:     "Ne",
	token.Assign: "Assign",
	token.LAngle: "Lt",
	token.RAngle: "Gt",
	token.Amp:    "And",
}

// parseStruct implements:
//
//	struct := 'struct' IDENT genericParams? (':' IDENT)? '{' member* '}' ';'
func (p *Parser) parseStruct() *ast.Struct {
	p.eat(token.KwStruct)
	nameTok := p.eat(token.Identifier)

	s := &ast.Struct{Name: nameTok, Namespace: p.namespace}

	if p.at(token.LAngle) {
		s.GenericParams = p.parseGenericParams()
	}
	if p.at(token.Colon) {
		p.advance()
		base := p.eat(token.Identifier)
		s.BaseName = base.Text
	}

	p.eat(token.LBrace)
	access := ast.AccessPublic
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		p.parseMember(s, &access, nameTok.Text, s.FQN())
		if p.pos == before {
			// Guarantees progress on malformed input that parseMember
			// could not interpret as any member form (spec §8's parser
			// totality property): discard the offending token.
			p.advance()
		}
	}
	p.eat(token.RBrace)
	p.eat(token.Semicolon)
	return s
}

func (p *Parser) parseGenericParams() []token.Token {
	p.eat(token.LAngle)
	var params []token.Token
	if !p.at(token.RAngle) {
		params = append(params, p.eat(token.Identifier))
		for p.at(token.Comma) {
			p.advance()
			params = append(params, p.eat(token.Identifier))
		}
	}
	p.eat(token.RAngle)
	return params
}

// parseMember dispatches one struct member according to spec §4.2:
//
//	member := access ':' | ctor | dtor | field | method | property
func (p *Parser) parseMember(s *ast.Struct, access *ast.Access, structName, ownerFQN string) {
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
		}
	}()

	switch {
	case p.at(token.KwPublic) && p.peek().Kind == token.Colon:
		p.advance()
		p.advance()
		*access = ast.AccessPublic
	case p.at(token.KwPrivate) && p.peek().Kind == token.Colon:
		p.advance()
		p.advance()
		*access = ast.AccessPrivate
	case p.at(token.Tilde) || (p.at(token.KwVirtual) && p.peek().Kind == token.Tilde):
		s.Dtors = append(s.Dtors, p.parseDestructor(*access, ownerFQN))
	case p.at(token.Identifier) && p.cur().Text == structName && p.peek().Kind == token.LParen:
		s.Ctors = append(s.Ctors, p.parseConstructor(*access, structName, ownerFQN))
	default:
		p.parseFieldMethodOrProperty(s, *access, ownerFQN)
	}
}

func (p *Parser) parseDestructor(access ast.Access, ownerFQN string) *ast.Destructor {
	var isVirtual bool
	if p.at(token.KwVirtual) {
		p.advance()
		isVirtual = true
	}
	tildeTok := p.eat(token.Tilde)
	p.eat(token.Identifier) // repeats the struct name; not retained
	p.eat(token.LParen)
	p.eat(token.RParen)
	body := p.parseBlock()
	return &ast.Destructor{OwnerStruct: ownerFQN, Access: access, IsVirtual: isVirtual, Body: body, Token: tildeTok}
}

func (p *Parser) parseConstructor(access ast.Access, structName, ownerFQN string) *ast.Constructor {
	nameTok := p.eat(token.Identifier)
	params := p.parseParameterList()

	c := &ast.Constructor{OwnerStruct: ownerFQN, Access: access, Params: params, Token: nameTok}
	if p.at(token.Colon) {
		p.advance()
		p.eat(token.Identifier) // base-class name; implied by the struct's BaseName
		c.BaseInit = &ast.BaseInit{Args: p.parseArgList()}
	}
	c.Body = p.parseBlock()
	return c
}

// parseFieldMethodOrProperty parses the `type IDENT ...` shared prefix of
// field/method/property and dispatches on what follows the name
// (spec §4.2).
func (p *Parser) parseFieldMethodOrProperty(s *ast.Struct, access ast.Access, ownerFQN string) {
	isConst := false
	if p.at(token.KwConst) {
		p.advance()
		isConst = true
	}

	isVirtual, isOverride := false, false
	for {
		if p.at(token.KwVirtual) {
			p.advance()
			isVirtual = true
			continue
		}
		if p.at(token.KwOverride) {
			p.advance()
			isOverride = true
			continue
		}
		break
	}

	typ := p.parseType()

	var nameTok token.Token
	if p.at(token.KwOperator) {
		p.advance()
		opTok := p.advance()
		mangled, ok := operatorMangling[opTok.Kind]
		if !ok {
			p.errorf(opTok, "operator %q cannot be overloaded", opTok.Text)
			mangled = "Unknown"
		}
		nameTok = token.Token{Kind: token.Identifier, Text: "operator_" + mangled, Line: opTok.Line, Column: opTok.Column}
	} else {
		nameTok = p.eat(token.Identifier)
	}

	switch {
	case p.at(token.LParen):
		params := p.parseParameterList()
		fn := &ast.Function{
			ReturnType:  typ,
			Name:        nameTok,
			Params:      params,
			OwnerStruct: ownerFQN,
			Access:      access,
			IsVirtual:   isVirtual,
			IsOverride:  isOverride,
		}
		if p.at(token.LBrace) {
			fn.Body = p.parseBlock()
		} else {
			p.eat(token.Semicolon)
		}
		s.Methods = append(s.Methods, fn)
	case p.at(token.LBrace):
		s.Properties = append(s.Properties, p.parseProperty(typ, nameTok, access))
	default:
		p.eat(token.Semicolon)
		s.Members = append(s.Members, &ast.MemberVariable{IsConst: isConst, Type: typ, Name: nameTok, Access: access})
	}
}

// parseProperty implements:
//
//	property := type IDENT '{' ('get'|'set') ';' (('get'|'set') ';')? '}' ';'
//
// extended, per spec §9's design note, to accept a full accessor body in
// place of the bare `;` (the two stages of language development the
// source's surface syntax shows).
func (p *Parser) parseProperty(typ ast.TypeNode, nameTok token.Token, access ast.Access) *ast.Property {
	p.eat(token.LBrace)
	prop := &ast.Property{Type: typ, Name: nameTok, Access: access}

	for p.at(token.KwGet) || p.at(token.KwSet) {
		accTok := p.advance()
		acc := ast.Accessor{IsGet: accTok.Kind == token.KwGet, Token: accTok}
		if p.at(token.LBrace) {
			acc.Body = p.parseBlock()
		} else {
			p.eat(token.Semicolon)
		}
		prop.Accessors = append(prop.Accessors, acc)
	}

	p.eat(token.RBrace)
	p.eat(token.Semicolon)
	return prop
}

// parseEnum implements `enum Name { Member = N, ... };`.
func (p *Parser) parseEnum() *ast.Enum {
	p.eat(token.KwEnum)
	nameTok := p.eat(token.Identifier)
	e := &ast.Enum{Name: nameTok, Namespace: p.namespace}

	p.eat(token.LBrace)
	next := 0
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		memberTok := p.eat(token.Identifier)
		val := next
		if p.at(token.Assign) {
			p.advance()
			val = p.parseIntLiteralValue()
		}
		e.Members = append(e.Members, ast.EnumMember{Name: memberTok.Text, Value: val})
		next = val + 1

		if p.at(token.Comma) {
			p.advance()
		} else {
			break
		}
	}
	p.eat(token.RBrace)
	p.eat(token.Semicolon)
	return e
}

func (p *Parser) parseIntLiteralValue() int {
	lit := p.parseUnary()
	if n, ok := constIntValue(lit); ok {
		return n
	}
	return 0
}

// parseFreeFunction parses a top-level `type IDENT(params) (block|;)`.
func (p *Parser) parseFreeFunction() *ast.Function {
	typ := p.parseType()
	nameTok := p.eat(token.Identifier)
	params := p.parseParameterList()

	fn := &ast.Function{ReturnType: typ, Name: nameTok, Params: params, Namespace: p.namespace}
	if p.at(token.LBrace) {
		fn.Body = p.parseBlock()
	} else {
		p.eat(token.Semicolon)
	}
	return fn
}

func (p *Parser) parseParameterList() []*ast.Parameter {
	p.eat(token.LParen)
	var params []*ast.Parameter
	if !p.at(token.RParen) {
		params = append(params, p.parseParameter())
		for p.at(token.Comma) {
			p.advance()
			params = append(params, p.parseParameter())
		}
	}
	p.eat(token.RParen)
	return params
}

func (p *Parser) parseParameter() *ast.Parameter {
	typ := p.parseType()
	name := p.eat(token.Identifier)
	return &ast.Parameter{Type: typ, Name: name}
}
