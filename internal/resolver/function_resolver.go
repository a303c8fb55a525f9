package resolver

import (
	"strings"

	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/types"
)

// CallContext carries the caller-side information FunctionResolver needs:
// the enclosing function (for same-namespace/same-struct preference and
// access checks) and the compilation unit (for `using` search order)
// (spec §4.7).
type CallContext struct {
	Context
	CallerFunction *ast.Function
}

// ExprTyper is the narrow slice of the SemanticAnalyzer that FunctionResolver
// needs: the ability to compute an already-analyzed expression's canonical
// type. Resolving a `left.m(...)` call target requires `type(left)` (spec
// §4.7 step 3), which only the analyzer can compute — this is the
// FunctionResolver↔SemanticAnalyzer cycle the driver breaks with two-phase
// construction (spec §9).
type ExprTyper interface {
	TypeOf(e ast.Expr, ctx Context) (string, error)
}

// FunctionResolver resolves call targets, enum members, and operator
// methods (spec §4.7). It is constructed without its ExprTyper peer; the
// driver calls SetExprTyper once the SemanticAnalyzer exists.
type FunctionResolver struct {
	repo    *types.Repository
	typeRes *TypeResolver
	typer   ExprTyper
	freeFns map[string][]*ast.Function // "namespace\x00name" -> functions
	byName  map[string][]*ast.Function // bare name -> every free function with that name, any namespace
}

// NewFunctionResolver indexes every free function across unit into
// name-keyed buckets up front, since call resolution is performed
// repeatedly during the semantic walk.
func NewFunctionResolver(repo *types.Repository, typeRes *TypeResolver, units []*ast.CompilationUnit) *FunctionResolver {
	fr := &FunctionResolver{
		repo:    repo,
		typeRes: typeRes,
		freeFns: make(map[string][]*ast.Function),
		byName:  make(map[string][]*ast.Function),
	}
	for _, u := range units {
		for _, fn := range u.Functions {
			key := fn.Namespace + "\x00" + fn.Name.Text
			fr.freeFns[key] = append(fr.freeFns[key], fn)
			fr.byName[fn.Name.Text] = append(fr.byName[fn.Name.Text], fn)
		}
	}
	return fr
}

// SetExprTyper completes the two-phase wiring with the SemanticAnalyzer peer.
func (fr *FunctionResolver) SetExprTyper(t ExprTyper) { fr.typer = t }

// ResolveCall implements spec §4.7's three-way dispatch on the callee
// expression shape, followed by arity-only overload disambiguation.
func (fr *FunctionResolver) ResolveCall(callee ast.Expr, ctx CallContext) (*ast.Function, error) {
	switch v := callee.(type) {
	case *ast.Variable:
		return fr.resolveUnqualifiedCall(v.Name.Text, ctx)

	case *ast.QualifiedAccess:
		qualifier, ok := FlattenQualifier(v.Left)
		if !ok {
			return nil, errf("cannot resolve qualifier of call to %q", v.Member.Text)
		}
		return fr.resolveQualifiedCall(qualifier, v.Member.Text, ctx)

	case *ast.MemberAccess:
		if fr.typer == nil {
			return nil, errf("function resolver: ExprTyper not yet wired")
		}
		leftType, err := fr.typer.TypeOf(v.Left, ctx.Context)
		if err != nil {
			return nil, err
		}
		return fr.ResolveMethodCall(strings.TrimSuffix(leftType, "*"), v.Member.Text)

	default:
		return nil, errf("callee expression is not callable")
	}
}

// ResolveMethodCall resolves `left.m(...)` / `left->m(...)` once the caller
// (the SemanticAnalyzer, which alone computes expression types) has already
// determined the canonical struct FQN of left (spec §4.7 step 3).
func (fr *FunctionResolver) ResolveMethodCall(structFQN, member string) (*ast.Function, error) {
	for fqn := structFQN; fqn != ""; {
		s, ok := fr.repo.FindStruct(fqn)
		if !ok {
			break
		}
		var candidates []*ast.Function
		for _, m := range s.Methods {
			if m.Name.Text == member {
				candidates = append(candidates, m)
			}
		}
		if len(candidates) > 0 {
			return disambiguateByArity(candidates, true)
		}
		fqn = s.BaseName
	}
	return nil, errf("no method %q found on %q or its base classes", member, structFQN)
}

func (fr *FunctionResolver) resolveUnqualifiedCall(name string, ctx CallContext) (*ast.Function, error) {
	var searchOrder []string
	if ctx.CallerFunction != nil && ctx.CallerFunction.Namespace != "" {
		searchOrder = append(searchOrder, ctx.CallerFunction.Namespace)
	} else if ctx.Namespace != "" {
		searchOrder = append(searchOrder, ctx.Namespace)
	}
	for _, u := range ctx.Unit.Usings {
		if u.Alias == "" {
			searchOrder = append(searchOrder, u.Namespace)
		}
	}
	searchOrder = append(searchOrder, "")

	for _, ns := range searchOrder {
		if candidates := fr.freeFns[ns+"\x00"+name]; len(candidates) > 0 {
			return disambiguateByArity(candidates, false)
		}
	}
	return nil, errf("function %q not found", name)
}

// ResolveQualifiedFunctionRef resolves a `Namespace::name` or `Struct::name`
// reference used without a call (spec §4.6's QualifiedAccess rule: "otherwise
// try to resolve as a static function reference").
func (fr *FunctionResolver) ResolveQualifiedFunctionRef(qualifier, member string) (*ast.Function, error) {
	return fr.resolveQualifiedCall(qualifier, member, CallContext{})
}

func (fr *FunctionResolver) resolveQualifiedCall(qualifier, member string, ctx CallContext) (*ast.Function, error) {
	if s, ok := fr.repo.FindStruct(qualifier); ok {
		for _, m := range s.Methods {
			if m.Name.Text == member {
				return m, nil
			}
		}
		return nil, errf("no static/method %q found on %q", member, qualifier)
	}
	if candidates := fr.freeFns[qualifier+"\x00"+member]; len(candidates) > 0 {
		return disambiguateByArity(candidates, false)
	}
	return nil, errf("function %q not found in namespace %q", member, qualifier)
}

// disambiguateByArity picks the target among the overloads found for a name.
// The call-site argument count is not passed in here, so parameter counts are
// not compared: a single candidate resolves, and more than one candidate is
// reported as ambiguous whatever their arities.
func disambiguateByArity(candidates []*ast.Function, isMethod bool) (*ast.Function, error) {
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	return nil, errf("call is ambiguous among %d overloads", len(candidates))
}

// MatchesArgCount reports whether fn accepts argCount explicit arguments.
// Params never holds a method's implicit `this`, so the declared parameter
// count is compared as is.
func MatchesArgCount(fn *ast.Function, argCount int) bool {
	expected := len(fn.Params)
	return expected == argCount
}

// GetEnumValue is getEnumValue(enumFQN, memberName) from spec §4.7.
func GetEnumValue(repo *types.Repository, enumFQN, memberName string) (int, bool) {
	e, ok := repo.FindEnum(enumFQN)
	if !ok {
		return 0, false
	}
	for _, m := range e.Members {
		if m.Name == memberName {
			return m.Value, true
		}
	}
	return 0, false
}

// ResolveUnqualifiedEnumMember is resolveUnqualifiedEnumMember from
// spec §4.7: scans every enum reachable from ctx for a member named name.
// Reachability is approximated as "every enum in the program" since enums
// carry no access control (spec §3.3 restricts private-ness to struct
// members only).
func ResolveUnqualifiedEnumMember(repo *types.Repository, name string, ctx Context) (enumFQN string, value int, ok bool) {
	for fqn, e := range repo.AllEnums() {
		for _, m := range e.Members {
			if m.Name == name {
				return fqn, m.Value, true
			}
		}
	}
	return "", 0, false
}
