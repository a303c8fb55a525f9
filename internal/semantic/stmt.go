package semantic

import (
	"strings"

	"github.com/ctilde/ctilde/internal/ast"
)

func (a *Analyzer) analyzeBlock(b *ast.Block) {
	prev := a.scope
	a.scope = NewScope(prev)
	for _, s := range b.Stmts {
		a.analyzeStmt(s)
	}
	a.scope = prev
}

func (a *Analyzer) analyzeStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.Block:
		a.analyzeBlock(v)
	case *ast.ReturnStmt:
		a.analyzeReturn(v)
	case *ast.IfStmt:
		a.analyzeExpr(v.Cond)
		a.analyzeStmt(v.Then)
		if v.Else != nil {
			a.analyzeStmt(v.Else)
		}
	case *ast.WhileStmt:
		a.analyzeExpr(v.Cond)
		a.analyzeStmt(v.Body)
	case *ast.DeclStmt:
		a.analyzeDecl(v)
	case *ast.ExpressionStmt:
		a.analyzeExpr(v.Expr)
	case *ast.DeleteStmt:
		a.analyzeDelete(v)
	default:
		panic("semantic: unhandled statement variant")
	}
}

func (a *Analyzer) analyzeReturn(r *ast.ReturnStmt) {
	expected := a.currentReturnType
	if r.Value == nil {
		if expected != "" && expected != "void" && expected != unknownType {
			a.errorAt(r.Token, "missing return value in function returning %q", expected)
		}
		return
	}
	if expected == "void" {
		a.errorAt(r.Token, "function returning void cannot return a value")
		a.analyzeExpr(r.Value)
		return
	}
	vt := a.analyzeExpr(r.Value)
	if expected != unknownType && vt != unknownType && !compatible(expected, vt, isIntLiteral(r.Value)) {
		a.errorAt(r.Token, "cannot return value of type %q from function returning %q", vt, expected)
	}
}

func (a *Analyzer) analyzeDelete(d *ast.DeleteStmt) {
	t := a.analyzeExpr(d.Expr)
	if t != unknownType && !strings.HasSuffix(t, "*") {
		a.errorAt(d.Token, "'delete' operand must be a pointer type, got %q", t)
	}
}

func (a *Analyzer) analyzeDecl(d *ast.DeclStmt) {
	declType := a.resolveOrUnknown(d.Type)
	a.scope.Define(d.Name.Text, declType)

	switch {
	case d.Init != nil:
		if initList, ok := d.Init.(*ast.InitializerList); ok {
			a.analyzeInitializerList(declType, initList)
			return
		}
		vt := a.analyzeExpr(d.Init)
		if declType != unknownType && vt != unknownType && !compatible(declType, vt, isIntLiteral(d.Init)) {
			a.errorAt(d.Init.Tok(), "cannot initialize %q with value of type %q", declType, vt)
		}

	case len(d.CtorArgs) > 0:
		argTypes := make([]string, len(d.CtorArgs))
		for i, arg := range d.CtorArgs {
			argTypes[i] = a.analyzeExpr(arg)
		}
		if declType == unknownType {
			return
		}
		baseFQN := strings.TrimSuffix(declType, "*")
		if s, ok := a.repo.FindStruct(baseFQN); ok {
			a.checkConstructorArgs(s, d.CtorArgs, argTypes, d.Name)
		}
	}
}

func (a *Analyzer) analyzeInitializerList(declType string, initList *ast.InitializerList) {
	if declType == unknownType {
		for _, val := range initList.Values {
			a.analyzeExpr(val)
		}
		return
	}

	s, ok := a.repo.FindStruct(declType)
	if !ok {
		a.errorAt(initList.Open, "initializer list requires a struct type, got %q", declType)
		for _, val := range initList.Values {
			a.analyzeExpr(val)
		}
		return
	}

	fields, err := a.layoutMgr.GetAllMembers(s.FQN(), a.currentUnit)
	if err != nil {
		a.errorAt(initList.Open, "%v", err)
		return
	}

	for i, val := range initList.Values {
		vt := a.analyzeExpr(val)
		if i >= len(fields) {
			a.errorAt(val.Tok(), "too many initializer values for %q", declType)
			break
		}
		if vt != unknownType && !compatible(fields[i].Type, vt, isIntLiteral(val)) {
			a.errorAt(val.Tok(), "cannot initialize field %q (type %q) with value of type %q", fields[i].Name, fields[i].Type, vt)
		}
	}
}
