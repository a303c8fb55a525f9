package ast

import "github.com/ctilde/ctilde/internal/token"

// IntLit is an integer literal (decimal or hex, both resolved to Value).
type IntLit struct {
	base

	Value int
	Token token.Token
}

func (e *IntLit) isExpr()          {}
func (e *IntLit) Tok() token.Token { return e.Token }

// StringLit is a string literal; Label is the codegen-facing symbol name
// assigned to its storage (out-of-core concern, carried for the
// collaborator contract in internal/codegen).
type StringLit struct {
	base

	Text  string
	Label string
	Token token.Token
}

func (e *StringLit) isExpr()          {}
func (e *StringLit) Tok() token.Token { return e.Token }

// Variable is a bare identifier reference.
type Variable struct {
	base

	Name token.Token
}

func (e *Variable) isExpr()          {}
func (e *Variable) Tok() token.Token { return e.Name }

// Unary is a prefix operator applied to Right: `- + * &`.
type Unary struct {
	base

	Op    token.Token
	Right Expr
}

func (e *Unary) isExpr()          {}
func (e *Unary) Tok() token.Token { return e.Op }

// Binary is a binary operator expression.
type Binary struct {
	base

	Left  Expr
	Op    token.Token
	Right Expr
}

func (e *Binary) isExpr()          {}
func (e *Binary) Tok() token.Token { return e.Op }

// Assignment is `left = right`. Left-operand legality (Variable,
// MemberAccess, or Unary(*, ...)) is checked post hoc by the parser
// (spec §4.2).
type Assignment struct {
	base

	Left  Expr
	Right Expr
	Token token.Token
}

func (e *Assignment) isExpr()          {}
func (e *Assignment) Tok() token.Token { return e.Token }

// MemberAccess is `left.member` or `left->member`.
type MemberAccess struct {
	base

	Left   Expr
	Op     token.Token // Dot or Arrow
	Member token.Token
}

func (e *MemberAccess) isExpr()          {}
func (e *MemberAccess) Tok() token.Token { return e.Member }

// QualifiedAccess is `left::member`, used for namespace/enum qualification.
type QualifiedAccess struct {
	base

	Left   Expr
	Member token.Token
}

func (e *QualifiedAccess) isExpr()          {}
func (e *QualifiedAccess) Tok() token.Token { return e.Member }

// Call is a function/method invocation.
type Call struct {
	base

	Callee Expr
	Args   []Expr
	Token  token.Token
}

func (e *Call) isExpr()          {}
func (e *Call) Tok() token.Token { return e.Token }

// New is `new Type(args...)`.
type New struct {
	base

	Type  TypeNode
	Args  []Expr
	Token token.Token
}

func (e *New) isExpr()          {}
func (e *New) Tok() token.Token { return e.Token }

// Sizeof is `sizeof(Type)`.
type Sizeof struct {
	base

	Type  TypeNode
	Token token.Token
}

func (e *Sizeof) isExpr()          {}
func (e *Sizeof) Tok() token.Token { return e.Token }

// InitializerList is a brace-enclosed value list, `{ v1, v2, ... }`.
type InitializerList struct {
	base

	Values []Expr
	Open   token.Token
}

func (e *InitializerList) isExpr()          {}
func (e *InitializerList) Tok() token.Token { return e.Open }
