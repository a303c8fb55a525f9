package ast

import "github.com/ctilde/ctilde/internal/token"

// Block is a `{ ... }` statement sequence.
type Block struct {
	base

	Stmts []Stmt
	Token token.Token
}

func (b *Block) isStmt()          {}
func (b *Block) Tok() token.Token { return b.Token }

// ReturnStmt is `return expr?;`.
type ReturnStmt struct {
	base

	Value Expr // nil for a bare `return;`
	Token token.Token
}

func (r *ReturnStmt) isStmt()          {}
func (r *ReturnStmt) Tok() token.Token { return r.Token }

// IfStmt is `if (cond) then else?`.
type IfStmt struct {
	base

	Cond  Expr
	Then  Stmt
	Else  Stmt // nil when absent
	Token token.Token
}

func (i *IfStmt) isStmt()          {}
func (i *IfStmt) Tok() token.Token { return i.Token }

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	base

	Cond  Expr
	Body  Stmt
	Token token.Token
}

func (w *WhileStmt) isStmt()          {}
func (w *WhileStmt) Tok() token.Token { return w.Token }

// DeclStmt is a local variable declaration, in one of three surface forms
// (spec §4.2's `decl` production): a bare declaration, an initializer
// expression/initializer-list, or a constructor-call form (CtorArgs set).
type DeclStmt struct {
	base

	IsConst  bool
	Type     TypeNode
	Name     token.Token
	Init     Expr   // nil when absent; may be an *InitializerList
	CtorArgs []Expr // non-nil only for the `Type name(args);` form
}

func (d *DeclStmt) isStmt()          {}
func (d *DeclStmt) Tok() token.Token { return d.Name }

// ExpressionStmt is a bare expression used as a statement.
type ExpressionStmt struct {
	base

	Expr Expr
}

func (e *ExpressionStmt) isStmt()          {}
func (e *ExpressionStmt) Tok() token.Token { return e.Expr.Tok() }

// DeleteStmt is `delete expr;`.
type DeleteStmt struct {
	base

	Expr  Expr
	Token token.Token
}

func (d *DeleteStmt) isStmt()          {}
func (d *DeleteStmt) Tok() token.Token { return d.Token }
