package resolver

import (
	"strings"

	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/types"
)

// TypeResolver resolves a TypeNode to its canonical string in the context of
// a (currentNamespace?, compilationUnit) pair (spec §4.4). It depends on the
// Monomorphizer for Generic() nodes; the two are wired together with
// late-bound setters by the driver to break their mutual dependency
// (spec §4.5, §9).
type TypeResolver struct {
	repo *types.Repository
	mono *Monomorphizer
}

// NewTypeResolver constructs a TypeResolver with no Monomorphizer attached
// yet. SetMonomorphizer must be called before resolving any Generic() node
// (two-phase construction, spec §9).
func NewTypeResolver(repo *types.Repository) *TypeResolver {
	return &TypeResolver{repo: repo}
}

// SetMonomorphizer completes the two-phase wiring with the Monomorphizer
// peer.
func (r *TypeResolver) SetMonomorphizer(m *Monomorphizer) { r.mono = m }

// isGenericParamName implements spec §4.4 and §9's flagged heuristic: a
// single uppercase letter is assumed to be an unbound generic parameter.
func isGenericParamName(name string) bool {
	return len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z'
}

var primitives = map[string]bool{"int": true, "char": true, "void": true}

// Resolve computes the canonical type string for t (spec §3.3, §4.4).
func (r *TypeResolver) Resolve(t ast.TypeNode, ctx Context) (string, error) {
	switch v := t.(type) {
	case *ast.PointerType:
		inner, err := r.Resolve(v.Elem, ctx)
		if err != nil {
			return "", err
		}
		return inner + "*", nil

	case *ast.GenericType:
		if r.mono == nil {
			return "", errf("type resolver: Monomorphizer not yet wired")
		}
		s, err := r.mono.Instantiate(v, ctx)
		if err != nil {
			return "", err
		}
		return s.FQN(), nil

	case *ast.SimpleType:
		return r.resolveSimple(v.Name.Text, ctx)

	default:
		return "", errf("type resolver: unhandled TypeNode variant")
	}
}

func (r *TypeResolver) resolveSimple(name string, ctx Context) (string, error) {
	if primitives[name] {
		return name, nil
	}
	if isGenericParamName(name) {
		return name, nil
	}
	if name == "unknown" {
		// spec §4.4/§9 open question: the source throws here to surface a
		// better error than a bare "not found" would give for a name that
		// already failed upstream.
		return "", errf("cannot resolve the error sentinel type; a prior stage already failed")
	}

	if idx := strings.Index(name, "::"); idx >= 0 {
		head, rest := name[:idx], name[idx+2:]
		for _, u := range ctx.Unit.Usings {
			if u.Alias == head {
				return u.Namespace + "::" + rest, nil
			}
		}
		return name, nil
	}

	candidates := map[string]bool{}
	if ctx.Namespace != "" {
		candidates[ctx.Namespace+"::"+name] = true
	}
	for _, u := range ctx.Unit.Usings {
		if u.Alias == "" {
			candidates[u.Namespace+"::"+name] = true
		}
	}
	candidates[name] = true

	var hits []string
	for cand := range candidates {
		if _, ok := r.repo.FindStruct(cand); ok {
			hits = append(hits, cand)
		} else if _, ok := r.repo.FindEnum(cand); ok {
			hits = append(hits, cand)
		}
	}

	switch len(hits) {
	case 0:
		return "", errf("type %q not found", name)
	case 1:
		return hits[0], nil
	default:
		return "", errf("type %q is ambiguous between %s", name, strings.Join(hits, ", "))
	}
}

// ResolveEnumTypeName is resolveEnumTypeName from spec §4.4: same
// namespace-search order as resolveSimple, but returns ("", false) instead
// of an error when nothing matches, so callers can treat absence as
// "not an enum" rather than a hard failure.
func (r *TypeResolver) ResolveEnumTypeName(name string, ctx Context) (string, bool) {
	if idx := strings.Index(name, "::"); idx >= 0 {
		head, rest := name[:idx], name[idx+2:]
		for _, u := range ctx.Unit.Usings {
			if u.Alias == head {
				name = u.Namespace + "::" + rest
				break
			}
		}
		if _, ok := r.repo.FindEnum(name); ok {
			return name, true
		}
		return "", false
	}

	var candidates []string
	if ctx.Namespace != "" {
		candidates = append(candidates, ctx.Namespace+"::"+name)
	}
	for _, u := range ctx.Unit.Usings {
		if u.Alias == "" {
			candidates = append(candidates, u.Namespace+"::"+name)
		}
	}
	candidates = append(candidates, name)

	for _, cand := range candidates {
		if _, ok := r.repo.FindEnum(cand); ok {
			return cand, true
		}
	}
	return "", false
}

// FlattenQualifier folds a left-leaning QualifiedAccess chain into a dotted
// "A::B::C" string by pure structural walk (spec §4.4), supporting
// `ns::Enum::Member` lookup.
func FlattenQualifier(e ast.Expr) (string, bool) {
	switch v := e.(type) {
	case *ast.Variable:
		return v.Name.Text, true
	case *ast.QualifiedAccess:
		left, ok := FlattenQualifier(v.Left)
		if !ok {
			return "", false
		}
		return left + "::" + v.Member.Text, true
	default:
		return "", false
	}
}
