package parser

import (
	"strconv"

	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/token"
)

// parseExpression is the entry point for expression parsing: precedence
// climbing from assignment (lowest, right-associative) down to primary
// (spec §4.2).
func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseEquality()
	if !p.at(token.Assign) {
		return left
	}
	eqTok := p.advance()
	right := p.parseAssignment() // right-associative

	if !isAssignable(left) {
		p.errorf(eqTok, "left side of assignment is not assignable")
	}
	return &ast.Assignment{Left: left, Right: right, Token: eqTok}
}

// isAssignable enforces spec §4.2's post-hoc legality rule: the left
// operand must be Variable, MemberAccess, or Unary(*, ...).
func isAssignable(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.Variable, *ast.MemberAccess:
		return true
	case *ast.Unary:
		return v.Op.Kind == token.Star
	default:
		return false
	}
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.at(token.Eq) || p.at(token.Ne) {
		op := p.advance()
		right := p.parseRelational()
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for p.at(token.LAngle) || p.at(token.RAngle) {
		op := p.advance()
		right := p.parseAdditive()
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.at(token.Plus) || p.at(token.Minus) {
		op := p.advance()
		right := p.parseMultiplicative()
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.at(token.Star) || p.at(token.Slash) {
		op := p.advance()
		right := p.parseUnary()
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left
}

// parseUnary handles `- + * &` prefix operators and prefix `new`
// (spec §4.2).
func (p *Parser) parseUnary() ast.Expr {
	switch p.cur().Kind {
	case token.Minus, token.Plus, token.Star, token.Amp:
		op := p.advance()
		right := p.parseUnary()
		return &ast.Unary{Op: op, Right: right}
	case token.KwNew:
		return p.parseNewExpr()
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parseNewExpr() ast.Expr {
	tok := p.eat(token.KwNew)
	typ := p.parseType()
	var args []ast.Expr
	if p.at(token.LParen) {
		args = p.parseArgList()
	}
	return &ast.New{Type: typ, Args: args, Token: tok}
}

// parsePostfix handles call, member access, and qualified access, all at
// the same (highest non-primary) precedence tier (spec §4.2).
func (p *Parser) parsePostfix() ast.Expr {
	left := p.parsePrimary()

	for {
		switch {
		case p.at(token.LParen):
			callTok := p.cur()
			args := p.parseArgList()
			left = &ast.Call{Callee: left, Args: args, Token: callTok}
		case p.at(token.Dot) || p.at(token.Arrow):
			op := p.advance()
			member := p.eat(token.Identifier)
			left = &ast.MemberAccess{Left: left, Op: op, Member: member}
		case p.at(token.DoubleColon):
			p.advance()
			member := p.eat(token.Identifier)
			left = &ast.QualifiedAccess{Left: left, Member: member}
		default:
			return left
		}
	}
}

func (p *Parser) parseArgList() []ast.Expr {
	p.eat(token.LParen)
	var args []ast.Expr
	if !p.at(token.RParen) {
		args = append(args, p.parseExpression())
		for p.at(token.Comma) {
			p.advance()
			args = append(args, p.parseExpression())
		}
	}
	p.eat(token.RParen)
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()

	switch tok.Kind {
	case token.IntLiteral:
		p.advance()
		n, _ := strconv.Atoi(tok.Text)
		return &ast.IntLit{Value: n, Token: tok}
	case token.HexLiteral:
		p.advance()
		n, _ := strconv.ParseInt(tok.Text[2:], 16, 64)
		return &ast.IntLit{Value: int(n), Token: tok}
	case token.StringLiteral:
		p.advance()
		return &ast.StringLit{Text: tok.Text, Token: tok}
	case token.Identifier:
		if tok.Text == "sizeof" && p.peek().Kind == token.LParen {
			return p.parseSizeof()
		}
		p.advance()
		return &ast.Variable{Name: tok}
	case token.LParen:
		p.advance()
		e := p.parseExpression()
		p.eat(token.RParen)
		return e
	default:
		p.errorf(tok, "expected an expression, found %s %q", tok.Kind, tok.Text)
		if p.speculative {
			panic(speculationFailed{})
		}
		p.advance()
		return &ast.Variable{Name: token.Token{Kind: token.Identifier, Text: "unknown", Line: tok.Line, Column: tok.Column}}
	}
}

// parseSizeof parses `sizeof(Type)`. `sizeof` is not a reserved word
// (spec §4.1's keyword list omits it); it is recognized contextually, the
// same way `import`/`include` are recognized only after `#` (spec §4.2).
func (p *Parser) parseSizeof() ast.Expr {
	tok := p.advance() // the "sizeof" identifier
	p.eat(token.LParen)
	typ := p.parseType()
	p.eat(token.RParen)
	return &ast.Sizeof{Type: typ, Token: tok}
}

// constIntValue evaluates a constant-folded integer literal expression,
// used only for explicit enum member values (spec §4.2's enum grammar).
func constIntValue(e ast.Expr) (int, bool) {
	switch v := e.(type) {
	case *ast.IntLit:
		return v.Value, true
	case *ast.Unary:
		if v.Op.Kind == token.Minus {
			if n, ok := constIntValue(v.Right); ok {
				return -n, true
			}
		}
	}
	return 0, false
}
