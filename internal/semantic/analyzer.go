// Package semantic implements the SemanticAnalyzer: per-variant expression
// and statement analysis, implicit-conversion compatibility, and the
// "unknown" sentinel cascade-suppression discipline (spec §4.6).
package semantic

import (
	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/diagnostic"
	"github.com/ctilde/ctilde/internal/layout"
	"github.com/ctilde/ctilde/internal/resolver"
	"github.com/ctilde/ctilde/internal/token"
	"github.com/ctilde/ctilde/internal/types"
)

// unknownType is the reserved sentinel meaning "error propagated"
// (spec §3.3, §9: flagged for replacement by a proper Type::Error variant;
// kept stringly-typed here to match the canonical-type-string model the
// rest of the core already uses).
const unknownType = "unknown"

// Analyzer walks a CompilationUnit's function bodies, dispatching per AST
// node variant, and records diagnostics into Diags. It implements
// resolver.ExprTyper so the FunctionResolver can ask it for an already
// -computed expression type when resolving a method-call target
// (spec §4.7 step 3, §9).
type Analyzer struct {
	Diags *diagnostic.Bag

	repo      *types.Repository
	typeRes   *resolver.TypeResolver
	funcRes   *resolver.FunctionResolver
	layoutMgr *layout.MemoryLayoutManager

	currentUnit       *ast.CompilationUnit
	currentNamespace  string
	currentOwnerFQN   string // enclosing struct FQN, "" outside any method/ctor/dtor
	currentFunction   *ast.Function
	currentReturnType string

	currentProperty      *ast.Property
	currentAccessorIsGet bool

	scope      *Scope
	frameStack []savedFrame
}

// New constructs an Analyzer. layoutMgr may be nil only for tests that never
// touch struct members.
func New(repo *types.Repository, typeRes *resolver.TypeResolver, funcRes *resolver.FunctionResolver, layoutMgr *layout.MemoryLayoutManager) *Analyzer {
	return &Analyzer{
		Diags:     &diagnostic.Bag{},
		repo:      repo,
		typeRes:   typeRes,
		funcRes:   funcRes,
		layoutMgr: layoutMgr,
	}
}

func (a *Analyzer) ctx() resolver.Context {
	return resolver.Context{Namespace: a.currentNamespace, Unit: a.currentUnit}
}

func (a *Analyzer) errorAt(tok token.Token, format string, args ...interface{}) {
	a.Diags.Errorf(a.currentUnit.Path, tok.Line, tok.Column, format, args...)
}

// AnalyzeUnit walks every struct and free function in unit.
func (a *Analyzer) AnalyzeUnit(unit *ast.CompilationUnit) {
	a.currentUnit = unit
	for _, s := range unit.Structs {
		a.analyzeStruct(s)
	}
	for _, fn := range unit.Functions {
		a.analyzeFreeFunction(fn)
	}
}

func (a *Analyzer) analyzeStruct(s *ast.Struct) {
	if s.IsGeneric() {
		// An unbound template has no concrete layout to check members
		// against, so it is skipped. Its monomorphized instances are
		// created lazily at resolution time and only registered in the
		// type repository; their bodies are not walked either.
		return
	}
	for _, c := range s.Ctors {
		a.analyzeConstructor(s, c)
	}
	for _, d := range s.Dtors {
		a.analyzeDestructor(s, d)
	}
	for _, fn := range s.Methods {
		a.analyzeMethod(s, fn)
	}
	for _, p := range s.Properties {
		a.analyzeProperty(s, p)
	}
}

func (a *Analyzer) analyzeFreeFunction(fn *ast.Function) {
	if fn.Body == nil {
		return
	}
	a.enterFunctionScope(fn.Namespace, "", fn)
	a.currentReturnType = a.resolveOrUnknown(fn.ReturnType)
	for _, p := range fn.Params {
		a.scope.Define(p.Name.Text, a.resolveOrUnknown(p.Type))
	}
	a.analyzeBlock(fn.Body)
	a.exitFunctionScope()
}

func (a *Analyzer) analyzeMethod(s *ast.Struct, fn *ast.Function) {
	if fn.Body == nil {
		return
	}
	a.enterFunctionScope(s.Namespace, s.FQN(), fn)
	a.currentReturnType = a.resolveOrUnknown(fn.ReturnType)
	a.scope.Define("this", s.FQN()+"*")
	for _, p := range fn.Params {
		a.scope.Define(p.Name.Text, a.resolveOrUnknown(p.Type))
	}
	a.analyzeBlock(fn.Body)
	a.exitFunctionScope()
}

func (a *Analyzer) analyzeConstructor(s *ast.Struct, c *ast.Constructor) {
	a.enterFunctionScope(s.Namespace, s.FQN(), nil)
	a.currentReturnType = "void"
	a.scope.Define("this", s.FQN()+"*")
	for _, p := range c.Params {
		a.scope.Define(p.Name.Text, a.resolveOrUnknown(p.Type))
	}
	if c.BaseInit != nil {
		argTypes := make([]string, len(c.BaseInit.Args))
		for i, arg := range c.BaseInit.Args {
			argTypes[i] = a.analyzeExpr(arg)
		}
		if base, ok := a.repo.FindStruct(s.BaseName); ok {
			a.checkConstructorArgs(base, c.BaseInit.Args, argTypes, c.Token)
		}
	}
	if c.Body != nil {
		a.analyzeBlock(c.Body)
	}
	a.exitFunctionScope()
}

func (a *Analyzer) analyzeDestructor(s *ast.Struct, d *ast.Destructor) {
	a.enterFunctionScope(s.Namespace, s.FQN(), nil)
	a.currentReturnType = "void"
	a.scope.Define("this", s.FQN()+"*")
	if d.Body != nil {
		a.analyzeBlock(d.Body)
	}
	a.exitFunctionScope()
}

func (a *Analyzer) analyzeProperty(s *ast.Struct, p *ast.Property) {
	propType := a.resolveOrUnknown(p.Type)
	for i := range p.Accessors {
		acc := &p.Accessors[i]
		if acc.Body == nil {
			continue // auto-property form has no body to walk (spec §9)
		}
		a.enterFunctionScope(s.Namespace, s.FQN(), nil)
		a.currentReturnType = "void"
		if acc.IsGet {
			a.currentReturnType = propType
		}
		a.currentProperty = p
		a.currentAccessorIsGet = acc.IsGet
		a.scope.Define("this", s.FQN()+"*")
		a.analyzeBlock(acc.Body)
		a.currentProperty = nil
		a.exitFunctionScope()
	}
}

// savedFrame is a single saved analyzer frame so enter/exitFunctionScope can
// nest (a constructor's BaseInit arguments are analyzed inside the ctor's
// own frame, and nothing currently nests a second function frame inside
// that, but the stack keeps the push/pop symmetric regardless).
type savedFrame struct {
	namespace  string
	ownerFQN   string
	fn         *ast.Function
	returnType string
	scope      *Scope
}

func (a *Analyzer) enterFunctionScope(namespace, ownerFQN string, fn *ast.Function) {
	a.frameStack = append(a.frameStack, savedFrame{
		namespace: a.currentNamespace, ownerFQN: a.currentOwnerFQN,
		fn: a.currentFunction, returnType: a.currentReturnType, scope: a.scope,
	})
	a.currentNamespace = namespace
	a.currentOwnerFQN = ownerFQN
	a.currentFunction = fn
	a.scope = NewScope(nil)
}

func (a *Analyzer) exitFunctionScope() {
	n := len(a.frameStack) - 1
	f := a.frameStack[n]
	a.frameStack = a.frameStack[:n]
	a.currentNamespace = f.namespace
	a.currentOwnerFQN = f.ownerFQN
	a.currentFunction = f.fn
	a.currentReturnType = f.returnType
	a.scope = f.scope
}

func (a *Analyzer) resolveOrUnknown(t ast.TypeNode) string {
	resolved, err := a.typeRes.Resolve(t, a.ctx())
	if err != nil {
		return unknownType
	}
	return resolved
}
