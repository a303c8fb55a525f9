package resolver

import (
	"strings"

	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/token"
	"github.com/ctilde/ctilde/internal/types"
)

// Monomorphizer produces concrete struct instances from generic templates by
// cloning their AST with a substitution map (spec §4.5). It depends on a
// TypeResolver to canonicalize each type argument, and the two are wired
// together after both exist (spec §9): construct the Monomorphizer with a
// late-bound resolver reference, then call SetResolver.
type Monomorphizer struct {
	repo     *types.Repository
	resolver *TypeResolver
}

// NewMonomorphizer constructs a Monomorphizer with no TypeResolver attached
// yet.
func NewMonomorphizer(repo *types.Repository) *Monomorphizer {
	return &Monomorphizer{repo: repo}
}

// SetResolver completes the two-phase wiring with the TypeResolver peer.
func (m *Monomorphizer) SetResolver(r *TypeResolver) { m.resolver = r }

// Instantiate implements spec §4.5's three-step algorithm for Generic(base, args).
func (m *Monomorphizer) Instantiate(g *ast.GenericType, ctx Context) (*ast.Struct, error) {
	if m.resolver == nil {
		return nil, errf("monomorphizer: TypeResolver not yet wired")
	}

	argNames := make([]string, 0, len(g.Args))
	for _, a := range g.Args {
		resolved, err := m.resolver.Resolve(a, ctx)
		if err != nil {
			return nil, err
		}
		argNames = append(argNames, resolved)
	}

	mangled := mangle(g.Name.Text, argNames)
	if existing, ok := m.repo.FindStruct(mangled); ok {
		return existing, nil
	}

	template, ok := m.findTemplate(g.Name.Text, ctx)
	if !ok {
		return nil, errf("generic template %q not found", g.Name.Text)
	}
	if len(template.GenericParams) != len(g.Args) {
		return nil, errf("generic %q expects %d type argument(s), got %d",
			g.Name.Text, len(template.GenericParams), len(g.Args))
	}

	subst := make(map[string]ast.TypeNode, len(template.GenericParams))
	for i, p := range template.GenericParams {
		subst[p.Text] = &ast.SimpleType{Name: token.Token{Kind: token.Identifier, Text: argNames[i]}}
	}

	clone := ast.CloneStruct(template, subst)
	clone.Name = token.Token{Kind: token.Identifier, Text: mangled}
	clone.Namespace = ""

	unit, _ := m.repo.UnitForStruct(template.FQN())
	ast.LinkStruct(clone, unit)
	return m.repo.RegisterStruct(mangled, clone, unit), nil
}

// findTemplate locates the generic struct template by its bare name,
// searching the same namespace candidates a TypeResolver would (spec §4.4's
// search order applied to the template's own name, since a generic
// declaration has no type arguments to canonicalize).
func (m *Monomorphizer) findTemplate(name string, ctx Context) (*ast.Struct, bool) {
	if ctx.Namespace != "" {
		if s, ok := m.repo.FindStruct(ctx.Namespace + "::" + name); ok {
			return s, true
		}
	}
	for _, u := range ctx.Unit.Usings {
		if u.Alias == "" {
			if s, ok := m.repo.FindStruct(u.Namespace + "::" + name); ok {
				return s, true
			}
		}
	}
	return m.repo.FindStruct(name)
}

// mangle builds the FQN of a concrete monomorphization, `base$arg1$arg2…`
// (spec §3.3, §4.5).
func mangle(base string, args []string) string {
	return base + "$" + strings.Join(args, "$")
}
