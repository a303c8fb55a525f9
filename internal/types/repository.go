// Package types implements the TypeRepository: the index of every
// struct/enum definition by fully-qualified name (spec §4.3).
package types

import "github.com/ctilde/ctilde/internal/ast"

// Repository indexes every struct and enum parsed across a program by FQN,
// plus a side map from FQN to the owning CompilationUnit. It is mutated
// only during the parse-to-analysis transition and by the Monomorphizer
// (spec §5); monomorphization must be idempotent, so RegisterStruct returns
// the existing entry on a duplicate FQN rather than overwriting it.
type Repository struct {
	structs map[string]*ast.Struct
	enums   map[string]*ast.Enum
	unitOf  map[string]*ast.CompilationUnit
}

// NewRepository creates an empty Repository.
func NewRepository() *Repository {
	return &Repository{
		structs: make(map[string]*ast.Struct),
		enums:   make(map[string]*ast.Enum),
		unitOf:  make(map[string]*ast.CompilationUnit),
	}
}

// IndexUnit registers every struct and enum declared in unit under its FQN
// (spec §3.3).
func (r *Repository) IndexUnit(unit *ast.CompilationUnit) {
	for _, s := range unit.Structs {
		r.structs[s.FQN()] = s
		r.unitOf[s.FQN()] = unit
	}
	for _, e := range unit.Enums {
		r.enums[e.FQN()] = e
		r.unitOf[e.FQN()] = unit
	}
}

// FindStruct looks up a struct by FQN.
func (r *Repository) FindStruct(fqn string) (*ast.Struct, bool) {
	s, ok := r.structs[fqn]
	return s, ok
}

// FindEnum looks up an enum by FQN.
func (r *Repository) FindEnum(fqn string) (*ast.Enum, bool) {
	e, ok := r.enums[fqn]
	return e, ok
}

// UnitForStruct returns the CompilationUnit that declared the struct or
// enum at fqn.
func (r *Repository) UnitForStruct(fqn string) (*ast.CompilationUnit, bool) {
	u, ok := r.unitOf[fqn]
	return u, ok
}

// RegisterStruct registers a monomorphized struct under mangledFQN. If a
// struct is already registered under that name, the existing node is
// returned unchanged — this is what makes repeated monomorphization
// requests for the same generic instantiation idempotent (spec §5, §8).
func (r *Repository) RegisterStruct(mangledFQN string, s *ast.Struct, unit *ast.CompilationUnit) *ast.Struct {
	if existing, ok := r.structs[mangledFQN]; ok {
		return existing
	}
	r.structs[mangledFQN] = s
	r.unitOf[mangledFQN] = unit
	return s
}

// AllStructs returns every registered struct, for callers that need to walk
// the whole program's type set (e.g. codegen, layout precomputation).
func (r *Repository) AllStructs() map[string]*ast.Struct {
	return r.structs
}

// AllEnums returns every registered enum, for callers scanning reachable
// enums for an unqualified member (spec §4.6 Variable rule 3, §4.7's
// resolveUnqualifiedEnumMember).
func (r *Repository) AllEnums() map[string]*ast.Enum {
	return r.enums
}

// FQNOfOwner combines a function's Namespace and OwnerStruct: for a method
// it is the owning struct's FQN; for a free function it is the enclosing
// namespace (or "" at global scope) (spec §4.3).
func FQNOfOwner(f *ast.Function) string {
	if f.OwnerStruct != "" {
		return f.OwnerStruct
	}
	return f.Namespace
}
