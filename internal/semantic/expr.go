package semantic

import (
	"fmt"
	"strings"

	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/resolver"
	"github.com/ctilde/ctilde/internal/token"
)

// TypeOf implements resolver.ExprTyper: it lets the FunctionResolver ask for
// an expression's canonical type when resolving a `left.m(...)` call target
// (spec §4.7 step 3). A computed "unknown" becomes an error here so the
// resolver does not mistake it for a real struct FQN.
func (a *Analyzer) TypeOf(e ast.Expr, ctx resolver.Context) (string, error) {
	savedNS, savedUnit := a.currentNamespace, a.currentUnit
	a.currentNamespace, a.currentUnit = ctx.Namespace, ctx.Unit
	t := a.analyzeExpr(e)
	a.currentNamespace, a.currentUnit = savedNS, savedUnit
	if t == unknownType {
		return "", fmt.Errorf("cannot determine the type of this expression")
	}
	return t, nil
}

// analyzeExpr computes e's canonical type, emitting diagnostics for any
// violation along the way and returning unknownType to suppress further
// cascading complaints about the same sub-expression (spec §4.6).
func (a *Analyzer) analyzeExpr(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.IntLit:
		return "int"
	case *ast.StringLit:
		return "char*"
	case *ast.Sizeof:
		if _, err := a.typeRes.Resolve(v.Type, a.ctx()); err != nil {
			a.errorAt(v.Token, "sizeof: %v", err)
		}
		return "int"
	case *ast.Variable:
		return a.analyzeVariable(v)
	case *ast.Unary:
		return a.analyzeUnary(v)
	case *ast.Binary:
		lt := a.analyzeExpr(v.Left)
		rt := a.analyzeExpr(v.Right)
		if lt == unknownType || rt == unknownType {
			return unknownType
		}
		return "int"
	case *ast.Assignment:
		return a.analyzeAssignment(v)
	case *ast.MemberAccess:
		return a.analyzeMemberAccess(v)
	case *ast.QualifiedAccess:
		return a.analyzeQualifiedAccess(v)
	case *ast.Call:
		return a.analyzeCall(v)
	case *ast.New:
		return a.analyzeNew(v)
	case *ast.InitializerList:
		// Only legal as a DeclStmt initializer; reached directly here means
		// it appeared somewhere else the grammar doesn't actually allow, but
		// still analyze its elements for diagnostics' sake.
		for _, val := range v.Values {
			a.analyzeExpr(val)
		}
		return unknownType
	default:
		panic("semantic: unhandled expression variant")
	}
}

func (a *Analyzer) analyzeVariable(v *ast.Variable) string {
	name := v.Name.Text

	if a.currentProperty != nil && (name == "value" || name == "field") {
		if name == "value" && a.currentAccessorIsGet {
			a.errorAt(v.Name, "'value' is only legal within a property's set accessor")
		}
		return a.resolveOrUnknown(a.currentProperty.Type)
	}

	if t, ok := a.scope.Lookup(name); ok {
		return t
	}

	if _, _, ok := resolver.ResolveUnqualifiedEnumMember(a.repo, name, a.ctx()); ok {
		return "int"
	}

	if a.currentOwnerFQN != "" {
		if field, found, err := a.layoutMgr.FindField(a.currentOwnerFQN, name, a.currentUnit); err == nil && found {
			a.enforceFieldAccess(field, v.Name)
			return field.Type
		}
	}

	a.errorAt(v.Name, "undefined variable %q", name)
	return unknownType
}

func (a *Analyzer) analyzeUnary(v *ast.Unary) string {
	switch v.Op.Kind {
	case token.Amp:
		t := a.analyzeExpr(v.Right)
		if t == unknownType {
			return unknownType
		}
		return t + "*"
	case token.Star:
		t := a.analyzeExpr(v.Right)
		if t == unknownType {
			return unknownType
		}
		if !strings.HasSuffix(t, "*") {
			a.errorAt(v.Op, "cannot dereference non-pointer type %q", t)
			return unknownType
		}
		return strings.TrimSuffix(t, "*")
	default:
		return a.analyzeExpr(v.Right)
	}
}

func (a *Analyzer) analyzeAssignment(v *ast.Assignment) string {
	leftType := a.analyzeExpr(v.Left)
	rightType := a.analyzeExpr(v.Right)
	if leftType != unknownType && rightType != unknownType && !compatible(leftType, rightType, isIntLiteral(v.Right)) {
		a.errorAt(v.Token, "cannot assign value of type %q to target of type %q", rightType, leftType)
	}
	return leftType
}

func (a *Analyzer) analyzeMemberAccess(v *ast.MemberAccess) string {
	leftType := a.analyzeExpr(v.Left)
	if leftType == unknownType {
		return unknownType
	}
	baseFQN := strings.TrimSuffix(leftType, "*")

	field, found, err := a.layoutMgr.FindField(baseFQN, v.Member.Text, a.currentUnit)
	if err != nil {
		a.errorAt(v.Member, "%v", err)
		return unknownType
	}
	if found {
		a.enforceFieldAccess(field, v.Member)
		return field.Type
	}

	prop, declFQN, found := a.findProperty(baseFQN, v.Member.Text)
	if !found {
		a.errorAt(v.Member, "%q has no member %q", baseFQN, v.Member.Text)
		return unknownType
	}
	a.enforcePropertyAccess(prop, declFQN, v.Member)

	isLValue := false
	if assign, ok := v.Parent().(*ast.Assignment); ok && assign.Left == ast.Expr(v) {
		isLValue = true
	}
	if isLValue && !prop.HasSet() {
		a.errorAt(v.Member, "property %q has no set accessor", v.Member.Text)
	}
	if !isLValue && !prop.HasGet() {
		a.errorAt(v.Member, "property %q has no get accessor", v.Member.Text)
	}
	return a.resolveOrUnknown(prop.Type)
}

func (a *Analyzer) analyzeQualifiedAccess(v *ast.QualifiedAccess) string {
	qualifier, ok := resolver.FlattenQualifier(v.Left)
	if !ok {
		a.errorAt(v.Member, "cannot resolve qualifier of %q", v.Member.Text)
		return unknownType
	}

	if enumFQN, ok := a.typeRes.ResolveEnumTypeName(qualifier, a.ctx()); ok {
		if _, ok := resolver.GetEnumValue(a.repo, enumFQN, v.Member.Text); ok {
			return "int"
		}
		a.errorAt(v.Member, "enum %q has no member %q", enumFQN, v.Member.Text)
		return unknownType
	}

	if _, err := a.funcRes.ResolveQualifiedFunctionRef(qualifier, v.Member.Text); err == nil {
		return "void*"
	}

	a.errorAt(v.Member, "%q::%q does not resolve to any enum member or function", qualifier, v.Member.Text)
	return unknownType
}

func (a *Analyzer) analyzeCall(v *ast.Call) string {
	fn, err := a.funcRes.ResolveCall(v.Callee, resolver.CallContext{Context: a.ctx(), CallerFunction: a.currentFunction})
	argTypes := make([]string, len(v.Args))
	for i, arg := range v.Args {
		argTypes[i] = a.analyzeExpr(arg)
	}
	if err != nil {
		a.errorAt(v.Token, "%v", err)
		return unknownType
	}

	if fn.IsMethod() && fn.Access == ast.AccessPrivate && fn.OwnerStruct != a.currentOwnerFQN {
		a.errorAt(v.Token, "%q is private to %q", fn.Name.Text, fn.OwnerStruct)
	}
	if !resolver.MatchesArgCount(fn, len(v.Args)) {
		a.errorAt(v.Token, "%q expects %d argument(s), got %d", fn.Name.Text, len(fn.Params), len(v.Args))
	} else {
		a.checkArgTypes(fn.Params, v.Args, argTypes, fn.Namespace)
	}

	return a.resolveOrUnknown(fn.ReturnType)
}

func (a *Analyzer) analyzeNew(v *ast.New) string {
	resolved, err := a.typeRes.Resolve(v.Type, a.ctx())
	if err != nil {
		a.errorAt(v.Token, "%v", err)
		for _, arg := range v.Args {
			a.analyzeExpr(arg)
		}
		return unknownType
	}
	if isPrimitiveTypeName(resolved) {
		a.errorAt(v.Token, "'new' cannot be used with primitive type %q", resolved)
	}

	argTypes := make([]string, len(v.Args))
	for i, arg := range v.Args {
		argTypes[i] = a.analyzeExpr(arg)
	}
	if s, ok := a.repo.FindStruct(resolved); ok {
		a.checkConstructorArgs(s, v.Args, argTypes, v.Token)
	}
	return resolved + "*"
}

func isIntLiteral(e ast.Expr) bool {
	_, ok := e.(*ast.IntLit)
	return ok
}

func isPrimitiveTypeName(name string) bool {
	switch name {
	case "int", "char", "void":
		return true
	}
	return false
}
