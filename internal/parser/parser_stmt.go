package parser

import (
	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/token"
)

// parseBlock parses `{ stmt* }`.
func (p *Parser) parseBlock() *ast.Block {
	openTok := p.eat(token.LBrace)
	b := &ast.Block{Token: openTok}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		sp := p.save()
		stmt := p.parseStatement()
		if _, ok := stmt.(*ast.DeclStmt); ok && p.at(token.LBrace) && p.pos > 0 && p.toks[p.pos-1].Kind == token.RParen {
			// `type name(...) {` cannot be a statement: this block is
			// unterminated and a function definition starts here, so leave
			// it to the caller.
			p.restore(sp)
			break
		}
		b.Stmts = append(b.Stmts, stmt)
	}
	p.eat(token.RBrace)
	return b
}

// parseStatement implements spec §4.2's `stmt` production.
func (p *Parser) parseStatement() ast.Stmt {
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
		}
	}()

	switch p.cur().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwReturn:
		return p.parseReturnStatement()
	case token.KwIf:
		return p.parseIfStatement()
	case token.KwWhile:
		return p.parseWhileStatement()
	case token.KwDelete:
		return p.parseDeleteStatement()
	default:
		if decl, ok := p.tryParseDeclaration(); ok {
			return decl
		}
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseReturnStatement() *ast.ReturnStmt {
	tok := p.eat(token.KwReturn)
	r := &ast.ReturnStmt{Token: tok}
	if !p.at(token.Semicolon) {
		r.Value = p.parseExpression()
	}
	p.eat(token.Semicolon)
	return r
}

func (p *Parser) parseIfStatement() *ast.IfStmt {
	tok := p.eat(token.KwIf)
	p.eat(token.LParen)
	cond := p.parseExpression()
	p.eat(token.RParen)
	then := p.parseStatement()

	stmt := &ast.IfStmt{Cond: cond, Then: then, Token: tok}
	if p.at(token.KwElse) {
		p.advance()
		stmt.Else = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStmt {
	tok := p.eat(token.KwWhile)
	p.eat(token.LParen)
	cond := p.parseExpression()
	p.eat(token.RParen)
	body := p.parseStatement()
	return &ast.WhileStmt{Cond: cond, Body: body, Token: tok}
}

func (p *Parser) parseDeleteStatement() *ast.DeleteStmt {
	tok := p.eat(token.KwDelete)
	e := p.parseExpression()
	p.eat(token.Semicolon)
	return &ast.DeleteStmt{Expr: e, Token: tok}
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStmt {
	e := p.parseExpression()
	p.eat(token.Semicolon)
	return &ast.ExpressionStmt{Expr: e}
}

// tryParseDeclaration implements spec §4.2's "Ambiguity rule — statement
// start": speculative type-prefix parsing guarded by save/restore of the
// position. If the speculation throws (a token doesn't fit the `decl`
// shape), the position is rewound and the caller parses an expression
// statement instead.
func (p *Parser) tryParseDeclaration() (*ast.DeclStmt, bool) {
	if !p.looksLikeTypeStart() {
		return nil, false
	}

	sp := p.save()
	p.speculative = true

	var decl *ast.DeclStmt
	ok := p.attemptDeclarationPrefix(&decl)

	p.speculative = false
	if !ok {
		p.restore(sp)
		return nil, false
	}

	p.finishDeclaration(decl)
	return decl, true
}

func (p *Parser) attemptDeclarationPrefix(out **ast.DeclStmt) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isSpecFail := r.(speculationFailed); isSpecFail {
				ok = false
				return
			}
			panic(r)
		}
	}()

	isConst := false
	if p.at(token.KwConst) {
		p.advance()
		isConst = true
	}
	typ := p.parseType()
	if !p.at(token.Identifier) {
		panic(speculationFailed{})
	}
	name := p.advance()

	*out = &ast.DeclStmt{IsConst: isConst, Type: typ, Name: name}
	return true
}

// finishDeclaration parses what follows the `type IDENT` prefix once the
// speculative attempt has committed: `decl := ... ('=' (initList | expr) |
// '(' args ')')? ';'` (spec §4.2).
func (p *Parser) finishDeclaration(decl *ast.DeclStmt) {
	switch {
	case p.at(token.Assign):
		p.advance()
		if p.at(token.LBrace) {
			decl.Init = p.parseInitializerList()
		} else {
			decl.Init = p.parseExpression()
		}
	case p.at(token.LParen):
		decl.CtorArgs = p.parseArgList()
	}
	p.eat(token.Semicolon)
}

func (p *Parser) parseInitializerList() ast.Expr {
	openTok := p.eat(token.LBrace)
	list := &ast.InitializerList{Open: openTok}
	if !p.at(token.RBrace) {
		list.Values = append(list.Values, p.parseExpression())
		for p.at(token.Comma) {
			p.advance()
			list.Values = append(list.Values, p.parseExpression())
		}
	}
	p.eat(token.RBrace)
	return list
}
