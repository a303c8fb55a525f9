package ast

// CloneStruct produces a structural deep copy of a generic template with
// every SimpleType whose name is a key of subst replaced by a clone of the
// corresponding replacement (spec §4.5). All other nodes are reconstructed
// identically; immutable leaves (tokens) are copied by value, which is
// cheap and side-effect free. The clone is never cyclic: a generic
// template's AST is a finite tree, and substitution only ever replaces
// SimpleType leaves with resolver-supplied canonical type nodes.
func CloneStruct(s *Struct, subst map[string]TypeNode) *Struct {
	out := &Struct{
		Name:      s.Name,
		BaseName:  s.BaseName,
		Namespace: s.Namespace,
		// The clone is a concrete instantiation: it carries no further
		// generic parameters of its own.
		GenericParams: nil,
	}
	for _, m := range s.Members {
		out.Members = append(out.Members, &MemberVariable{
			IsConst: m.IsConst,
			Type:    cloneType(m.Type, subst),
			Name:    m.Name,
			Access:  m.Access,
		})
	}
	for _, p := range s.Properties {
		np := &Property{
			Type:   cloneType(p.Type, subst),
			Name:   p.Name,
			Access: p.Access,
		}
		for _, acc := range p.Accessors {
			np.Accessors = append(np.Accessors, Accessor{
				IsGet: acc.IsGet,
				Body:  cloneBlock(acc.Body, subst),
				Token: acc.Token,
			})
		}
		out.Properties = append(out.Properties, np)
	}
	for _, fn := range s.Methods {
		out.Methods = append(out.Methods, cloneFunction(fn, subst))
	}
	for _, c := range s.Ctors {
		out.Ctors = append(out.Ctors, cloneCtor(c, subst))
	}
	for _, d := range s.Dtors {
		out.Dtors = append(out.Dtors, cloneDtor(d, subst))
	}
	return out
}

func cloneFunction(f *Function, subst map[string]TypeNode) *Function {
	nf := &Function{
		ReturnType:  cloneType(f.ReturnType, subst),
		Name:        f.Name,
		OwnerStruct: f.OwnerStruct,
		Namespace:   f.Namespace,
		Access:      f.Access,
		IsVirtual:   f.IsVirtual,
		IsOverride:  f.IsOverride,
	}
	for _, p := range f.Params {
		nf.Params = append(nf.Params, &Parameter{Type: cloneType(p.Type, subst), Name: p.Name})
	}
	nf.Body = cloneBlock(f.Body, subst)
	return nf
}

func cloneCtor(c *Constructor, subst map[string]TypeNode) *Constructor {
	nc := &Constructor{
		OwnerStruct: c.OwnerStruct,
		Namespace:   c.Namespace,
		Access:      c.Access,
		Token:       c.Token,
	}
	for _, p := range c.Params {
		nc.Params = append(nc.Params, &Parameter{Type: cloneType(p.Type, subst), Name: p.Name})
	}
	if c.BaseInit != nil {
		nc.BaseInit = &BaseInit{}
		for _, a := range c.BaseInit.Args {
			nc.BaseInit.Args = append(nc.BaseInit.Args, cloneExpr(a, subst))
		}
	}
	nc.Body = cloneBlock(c.Body, subst)
	return nc
}

func cloneDtor(d *Destructor, subst map[string]TypeNode) *Destructor {
	return &Destructor{
		OwnerStruct: d.OwnerStruct,
		Namespace:   d.Namespace,
		Access:      d.Access,
		IsVirtual:   d.IsVirtual,
		Body:        cloneBlock(d.Body, subst),
		Token:       d.Token,
	}
}

func cloneType(t TypeNode, subst map[string]TypeNode) TypeNode {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case *SimpleType:
		if repl, ok := subst[v.Name.Text]; ok {
			return cloneType(repl, subst)
		}
		return &SimpleType{Name: v.Name}
	case *PointerType:
		return &PointerType{Elem: cloneType(v.Elem, subst)}
	case *GenericType:
		ng := &GenericType{Name: v.Name}
		for _, a := range v.Args {
			ng.Args = append(ng.Args, cloneType(a, subst))
		}
		return ng
	default:
		panic("ast: Clone not implemented for type variant")
	}
}

func cloneBlock(b *Block, subst map[string]TypeNode) *Block {
	if b == nil {
		return nil
	}
	nb := &Block{Token: b.Token}
	for _, s := range b.Stmts {
		nb.Stmts = append(nb.Stmts, cloneStmt(s, subst))
	}
	return nb
}

func cloneStmt(s Stmt, subst map[string]TypeNode) Stmt {
	if s == nil {
		return nil
	}
	switch v := s.(type) {
	case *Block:
		return cloneBlock(v, subst)
	case *ReturnStmt:
		return &ReturnStmt{Value: cloneExpr(v.Value, subst), Token: v.Token}
	case *IfStmt:
		return &IfStmt{
			Cond:  cloneExpr(v.Cond, subst),
			Then:  cloneStmt(v.Then, subst),
			Else:  cloneStmt(v.Else, subst),
			Token: v.Token,
		}
	case *WhileStmt:
		return &WhileStmt{Cond: cloneExpr(v.Cond, subst), Body: cloneStmt(v.Body, subst), Token: v.Token}
	case *DeclStmt:
		nd := &DeclStmt{
			IsConst: v.IsConst,
			Type:    cloneType(v.Type, subst),
			Name:    v.Name,
			Init:    cloneExpr(v.Init, subst),
		}
		for _, a := range v.CtorArgs {
			nd.CtorArgs = append(nd.CtorArgs, cloneExpr(a, subst))
		}
		return nd
	case *ExpressionStmt:
		return &ExpressionStmt{Expr: cloneExpr(v.Expr, subst)}
	case *DeleteStmt:
		return &DeleteStmt{Expr: cloneExpr(v.Expr, subst), Token: v.Token}
	default:
		panic("ast: Clone not implemented for statement variant")
	}
}

func cloneExpr(e Expr, subst map[string]TypeNode) Expr {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case *IntLit:
		return &IntLit{Value: v.Value, Token: v.Token}
	case *StringLit:
		return &StringLit{Text: v.Text, Label: v.Label, Token: v.Token}
	case *Variable:
		return &Variable{Name: v.Name}
	case *Unary:
		return &Unary{Op: v.Op, Right: cloneExpr(v.Right, subst)}
	case *Binary:
		return &Binary{Left: cloneExpr(v.Left, subst), Op: v.Op, Right: cloneExpr(v.Right, subst)}
	case *Assignment:
		return &Assignment{Left: cloneExpr(v.Left, subst), Right: cloneExpr(v.Right, subst), Token: v.Token}
	case *MemberAccess:
		return &MemberAccess{Left: cloneExpr(v.Left, subst), Op: v.Op, Member: v.Member}
	case *QualifiedAccess:
		return &QualifiedAccess{Left: cloneExpr(v.Left, subst), Member: v.Member}
	case *Call:
		nc := &Call{Callee: cloneExpr(v.Callee, subst), Token: v.Token}
		for _, a := range v.Args {
			nc.Args = append(nc.Args, cloneExpr(a, subst))
		}
		return nc
	case *New:
		nn := &New{Type: cloneType(v.Type, subst), Token: v.Token}
		for _, a := range v.Args {
			nn.Args = append(nn.Args, cloneExpr(a, subst))
		}
		return nn
	case *Sizeof:
		return &Sizeof{Type: cloneType(v.Type, subst), Token: v.Token}
	case *InitializerList:
		nl := &InitializerList{Open: v.Open}
		for _, val := range v.Values {
			nl.Values = append(nl.Values, cloneExpr(val, subst))
		}
		return nl
	default:
		panic("ast: Clone not implemented for expression variant")
	}
}
