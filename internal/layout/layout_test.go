package layout

import (
	"testing"

	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/parser"
	"github.com/ctilde/ctilde/internal/resolver"
	"github.com/ctilde/ctilde/internal/types"
)

func setup(t *testing.T, src string) (*types.Repository, *resolver.TypeResolver, *ast.CompilationUnit) {
	t.Helper()
	p := parser.New(src, "a.ct")
	unit, diags := p.Parse()
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", diags.All())
	}
	repo := types.NewRepository()
	repo.IndexUnit(unit)
	tr := resolver.NewTypeResolver(repo)
	mono := resolver.NewMonomorphizer(repo)
	tr.SetMonomorphizer(mono)
	mono.SetResolver(tr)
	return repo, tr, unit
}

func TestGetAllMembersOrdersBaseBeforeDerived(t *testing.T) {
	repo, tr, unit := setup(t, `
struct A { public: int x; };
struct B : A { public: char y; };
`)
	m := NewMemoryLayoutManager(repo, tr)

	fields, err := m.GetAllMembers("B", unit)
	if err != nil {
		t.Fatalf("GetAllMembers: %v", err)
	}
	if len(fields) != 2 || fields[0].Name != "x" || fields[1].Name != "y" {
		t.Fatalf("expected [x, y], got %+v", fields)
	}
	if fields[0].Offset != 0 {
		t.Fatalf("expected x at offset 0, got %d", fields[0].Offset)
	}
	if fields[1].Offset != 4 {
		t.Fatalf("expected y at offset 4 (after a 4-byte int), got %d", fields[1].Offset)
	}
}

func TestGetMemberInfoFindsBaseField(t *testing.T) {
	repo, tr, unit := setup(t, `
struct A { public: int x; };
struct B : A {};
`)
	m := NewMemoryLayoutManager(repo, tr)

	offset, typ, err := m.GetMemberInfo("B", "x", unit)
	if err != nil {
		t.Fatalf("GetMemberInfo: %v", err)
	}
	if offset != 0 || typ != "int" {
		t.Fatalf("got (%d, %q)", offset, typ)
	}
}

func TestSizeOfPointerIsFourBytes(t *testing.T) {
	repo, tr, unit := setup(t, "struct A { public: int x; };")
	m := NewMemoryLayoutManager(repo, tr)

	size, err := m.SizeOf("A*", unit)
	if err != nil || size != 4 {
		t.Fatalf("got (%d, %v)", size, err)
	}
}

func TestVTableAssignsNewSlotsInDeclarationOrder(t *testing.T) {
	repo, _, _ := setup(t, `
struct A {
public:
	virtual int First(){ return 0; }
	virtual int Second(){ return 0; }
};
`)
	vt := NewVTableManager(repo)
	slots, err := vt.BuildVTable("A")
	if err != nil {
		t.Fatalf("BuildVTable: %v", err)
	}
	if len(slots) != 2 || slots[0].Name != "First" || slots[1].Name != "Second" {
		t.Fatalf("got %+v", slots)
	}
}

func TestVTableOverrideReplacesSlotInPlace(t *testing.T) {
	repo, _, _ := setup(t, `
struct A { public: virtual int Get(){ return 0; } };
struct B : A { public: override int Get(){ return 1; } };
`)
	vt := NewVTableManager(repo)
	slots, err := vt.BuildVTable("B")
	if err != nil {
		t.Fatalf("BuildVTable: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected the override to reuse the single base slot, got %+v", slots)
	}
	if slots[0].OwnerStruct != "B" {
		t.Fatalf("expected B to own the overridden slot, got %+v", slots[0])
	}
}
