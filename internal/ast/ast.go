// Package ast defines CTilde's closed sum-typed abstract syntax tree.
//
// Every node type implements Node. Parent links are explicit, set once by
// LinkParents after a unit is fully parsed (see walk.go); they are
// observational only and never imply ownership (spec §3.2/§3.3).
package ast

import "github.com/ctilde/ctilde/internal/token"

// Node is implemented by every AST node. Parent returns the node's upward
// back-link, or nil for the tree root.
type Node interface {
	Parent() Node
	setParent(Node)
	// Tok returns the token a diagnostic about this node should point at.
	Tok() token.Token
}

type base struct {
	parent Node
}

func (b *base) Parent() Node     { return b.parent }
func (b *base) setParent(p Node) { b.parent = p }

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	isExpr()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	isStmt()
}

// TypeNode is implemented by the three type-syntax variants (spec §3.2).
type TypeNode interface {
	Node
	isType()
}

// Access is struct/member visibility (spec §3.3).
type Access int

const (
	// AccessPublic is the default when no access-specifier section applies.
	AccessPublic Access = iota
	AccessPrivate
)

func (a Access) String() string {
	if a == AccessPrivate {
		return "private"
	}
	return "public"
}

// ---- Top level ----

// Program is the root node: the merged set of compilation units plus the
// dynamic-library imports gathered across all of them (spec §3.2).
type Program struct {
	base

	Imports []*Import
	Units   []*CompilationUnit
}

func (p *Program) Tok() token.Token { return token.Token{Line: 1, Column: 1} }

// CompilationUnit is the AST of one source file (spec §3.2).
type CompilationUnit struct {
	base

	Path      string
	Usings    []*Using
	Structs   []*Struct
	Functions []*Function
	Enums     []*Enum
	// Imports holds this unit's own `#import` directives; the driver
	// unions them by library name into Program.Imports when merging units
	// (spec §3.2, §4.9 stage 1).
	Imports []*Import
}

func (c *CompilationUnit) Tok() token.Token { return token.Token{Line: 1, Column: 1, Text: c.Path} }

// Using is a `using N;` or `using A = N;` directive.
type Using struct {
	base

	Namespace string
	Alias     string // empty when this using has no alias
	Token     token.Token
}

func (u *Using) Tok() token.Token { return u.Token }

// Import is a `#import "lib"` directive, optionally carrying a semver
// constraint on the imported library (SPEC_FULL §3.2/§4.1 supplement).
type Import struct {
	base

	LibraryName       string
	VersionConstraint string // empty when no constraint was given
	Token             token.Token
}

func (i *Import) Tok() token.Token { return i.Token }

// ---- Types ----

// SimpleType is a bare name: a primitive, a generic parameter, or a
// (possibly qualified) struct/enum name.
type SimpleType struct {
	base

	Name token.Token
}

func (t *SimpleType) isType()           {}
func (t *SimpleType) Tok() token.Token  { return t.Name }

// PointerType is Elem with one extra level of indirection.
type PointerType struct {
	base

	Elem TypeNode
}

func (t *PointerType) isType()          {}
func (t *PointerType) Tok() token.Token { return t.Elem.Tok() }

// GenericType is a generic instantiation syntax, `Name<Args...>`.
type GenericType struct {
	base

	Name token.Token
	Args []TypeNode
}

func (t *GenericType) isType()          {}
func (t *GenericType) Tok() token.Token { return t.Name }

// ---- Definitions ----

// EnumMember is one `Name = Value` entry of an Enum.
type EnumMember struct {
	Name  string
	Value int
}

// Enum is an `enum Name { Member = N, ... };` definition (spec §3.2).
type Enum struct {
	base

	Name      token.Token
	Namespace string
	Members   []EnumMember
}

func (e *Enum) Tok() token.Token { return e.Name }

// FQN returns the enum's fully-qualified name (spec §3.3).
func (e *Enum) FQN() string {
	if e.Namespace == "" {
		return e.Name.Text
	}
	return e.Namespace + "::" + e.Name.Text
}

// MemberVariable is a struct field declaration.
type MemberVariable struct {
	base

	IsConst bool
	Type    TypeNode
	Name    token.Token
	Access  Access
}

func (m *MemberVariable) Tok() token.Token { return m.Name }

// Accessor is one `get;`/`set;` or `get { ... }` clause of a Property.
type Accessor struct {
	IsGet bool // false means set
	Body  *Block // nil for the auto-property form (spec §9)
	Token token.Token
}

// Property is a struct property with get/set accessors (spec §3.2, §4.2).
type Property struct {
	base

	Type      TypeNode
	Name      token.Token
	Access    Access
	Accessors []Accessor
}

func (p *Property) Tok() token.Token { return p.Name }

func (p *Property) HasGet() bool {
	for _, a := range p.Accessors {
		if a.IsGet {
			return true
		}
	}
	return false
}

func (p *Property) HasSet() bool {
	for _, a := range p.Accessors {
		if !a.IsGet {
			return true
		}
	}
	return false
}

// Parameter is one function/method/constructor parameter.
type Parameter struct {
	base

	Type TypeNode
	Name token.Token
}

func (p *Parameter) Tok() token.Token { return p.Name }

// Function is a free function or a struct method (OwnerStruct != "")
// (spec §3.2).
type Function struct {
	base

	ReturnType  TypeNode
	Name        token.Token
	Params      []*Parameter
	Body        *Block // nil for a prototype-only declaration
	OwnerStruct string // FQN of the owning struct, or "" for a free function
	Namespace   string
	Access      Access
	IsVirtual   bool
	IsOverride  bool
}

func (f *Function) Tok() token.Token { return f.Name }

// IsMethod reports whether f is a struct method (has an implicit `this`).
func (f *Function) IsMethod() bool { return f.OwnerStruct != "" }

// BaseInit is the `: Base(args...)` clause of a Constructor.
type BaseInit struct {
	Args []Expr
}

// Constructor is a struct constructor (spec §3.2, §4.2).
type Constructor struct {
	base

	OwnerStruct string
	Namespace   string
	Access      Access
	Params      []*Parameter
	BaseInit    *BaseInit // nil when absent
	Body        *Block
	Token       token.Token // the struct-name token that introduced it
}

func (c *Constructor) Tok() token.Token { return c.Token }

// Destructor is a struct destructor (spec §3.2, §4.2).
type Destructor struct {
	base

	OwnerStruct string
	Namespace   string
	Access      Access
	IsVirtual   bool
	Body        *Block
	Token       token.Token
}

func (d *Destructor) Tok() token.Token { return d.Token }

// Struct is a `struct Name<T...> : Base { ... };` definition (spec §3.2).
type Struct struct {
	base

	Name          token.Token
	GenericParams []token.Token
	BaseName      string // base struct name as written after ':', or ""; looked up as an FQN, not namespace-resolved
	Namespace     string
	Members       []*MemberVariable
	Properties    []*Property
	Methods       []*Function
	Ctors         []*Constructor
	Dtors         []*Destructor
}

func (s *Struct) Tok() token.Token { return s.Name }

// FQN returns the struct's fully-qualified name (spec §3.3).
func (s *Struct) FQN() string {
	if s.Namespace == "" {
		return s.Name.Text
	}
	return s.Namespace + "::" + s.Name.Text
}

// IsGeneric reports whether s is an unbound generic template.
func (s *Struct) IsGeneric() bool { return len(s.GenericParams) > 0 }
