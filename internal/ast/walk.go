package ast

// LinkParents sets the Parent back-link of every node reachable from unit,
// by a single hand-written structural traversal (spec §4.2's parent-link
// pass; spec §9 flags the source's reflective walker for replacement by a
// hand-written or generated traversal — this is that traversal).
func LinkParents(unit *CompilationUnit) {
	for _, u := range unit.Usings {
		link(u, unit)
	}
	for _, i := range unit.Imports {
		link(i, unit)
	}
	for _, s := range unit.Structs {
		LinkStruct(s, unit)
	}
	for _, e := range unit.Enums {
		link(e, unit)
	}
	for _, f := range unit.Functions {
		linkFunction(f, unit)
	}
}

func link(n Node, parent Node) {
	if n == nil {
		return
	}
	n.setParent(parent)
}

// LinkStruct links one struct and everything reachable from it. It is
// exported so the Monomorphizer can re-link a freshly cloned struct, which
// is built outside of any CompilationUnit's own LinkParents pass
// (spec §4.5, §9).
func LinkStruct(s *Struct, parent Node) {
	link(s, parent)
	for _, m := range s.Members {
		link(m, s)
		linkType(m.Type, m)
	}
	for _, p := range s.Properties {
		link(p, s)
		linkType(p.Type, p)
		for _, acc := range p.Accessors {
			if acc.Body != nil {
				linkBlock(acc.Body, p)
			}
		}
	}
	for _, fn := range s.Methods {
		linkFunction(fn, s)
	}
	for _, c := range s.Ctors {
		linkCtor(c, s)
	}
	for _, d := range s.Dtors {
		linkDtor(d, s)
	}
}

func linkFunction(f *Function, parent Node) {
	link(f, parent)
	linkType(f.ReturnType, f)
	for _, p := range f.Params {
		link(p, f)
		linkType(p.Type, p)
	}
	if f.Body != nil {
		linkBlock(f.Body, f)
	}
}

func linkCtor(c *Constructor, parent Node) {
	link(c, parent)
	for _, p := range c.Params {
		link(p, c)
		linkType(p.Type, p)
	}
	if c.BaseInit != nil {
		for _, a := range c.BaseInit.Args {
			linkExpr(a, c)
		}
	}
	if c.Body != nil {
		linkBlock(c.Body, c)
	}
}

func linkDtor(d *Destructor, parent Node) {
	link(d, parent)
	if d.Body != nil {
		linkBlock(d.Body, d)
	}
}

func linkType(t TypeNode, parent Node) {
	if t == nil {
		return
	}
	link(t, parent)
	switch v := t.(type) {
	case *PointerType:
		linkType(v.Elem, v)
	case *GenericType:
		for _, a := range v.Args {
			linkType(a, v)
		}
	}
}

func linkBlock(b *Block, parent Node) {
	link(b, parent)
	for _, s := range b.Stmts {
		linkStmt(s, b)
	}
}

func linkStmt(s Stmt, parent Node) {
	if s == nil {
		return
	}
	link(s, parent)
	switch v := s.(type) {
	case *Block:
		for _, st := range v.Stmts {
			linkStmt(st, v)
		}
	case *ReturnStmt:
		linkExpr(v.Value, v)
	case *IfStmt:
		linkExpr(v.Cond, v)
		linkStmt(v.Then, v)
		linkStmt(v.Else, v)
	case *WhileStmt:
		linkExpr(v.Cond, v)
		linkStmt(v.Body, v)
	case *DeclStmt:
		linkType(v.Type, v)
		linkExpr(v.Init, v)
		for _, a := range v.CtorArgs {
			linkExpr(a, v)
		}
	case *ExpressionStmt:
		linkExpr(v.Expr, v)
	case *DeleteStmt:
		linkExpr(v.Expr, v)
	}
}

func linkExpr(e Expr, parent Node) {
	if e == nil {
		return
	}
	link(e, parent)
	switch v := e.(type) {
	case *Unary:
		linkExpr(v.Right, v)
	case *Binary:
		linkExpr(v.Left, v)
		linkExpr(v.Right, v)
	case *Assignment:
		linkExpr(v.Left, v)
		linkExpr(v.Right, v)
	case *MemberAccess:
		linkExpr(v.Left, v)
	case *QualifiedAccess:
		linkExpr(v.Left, v)
	case *Call:
		linkExpr(v.Callee, v)
		for _, a := range v.Args {
			linkExpr(a, v)
		}
	case *New:
		linkType(v.Type, v)
		for _, a := range v.Args {
			linkExpr(a, v)
		}
	case *Sizeof:
		linkType(v.Type, v)
	case *InitializerList:
		for _, val := range v.Values {
			linkExpr(val, v)
		}
	}
}
