// Package layout computes struct memory layout (field offsets across an
// inheritance chain) and virtual-method-table slot assignment (spec §4.8).
// Both are pure functions of the already-resolved type repository; they are
// consumed by the semantic analyzer's constructor/field checks and by the
// codegen collaborator.
package layout

import (
	"fmt"

	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/resolver"
	"github.com/ctilde/ctilde/internal/types"
)

// Target sizes for 32-bit x86 (spec §1): a machine word and a pointer are
// both 4 bytes.
const (
	sizeInt     = 4
	sizeChar    = 1
	sizePointer = 4
)

// FieldInfo is one entry of a struct's flattened, offset-assigned member
// list (spec §4.8's `getAllMembers` tuple).
type FieldInfo struct {
	Name         string
	Type         string // canonical type string
	Offset       int
	IsConst      bool
	Access       ast.Access
	DeclaringFQN string // FQN of the struct that declares this field
}

// MemoryLayoutManager implements getMemberInfo/getAllMembers (spec §4.8). It
// depends on a TypeResolver to canonicalize member types it has not already
// resolved, and memoizes per-struct layouts since member queries repeat
// heavily during the semantic walk.
type MemoryLayoutManager struct {
	repo    *types.Repository
	typeRes *resolver.TypeResolver
	cache   map[string][]FieldInfo
}

// NewMemoryLayoutManager constructs a manager over repo, resolving member
// types through typeRes.
func NewMemoryLayoutManager(repo *types.Repository, typeRes *resolver.TypeResolver) *MemoryLayoutManager {
	return &MemoryLayoutManager{repo: repo, typeRes: typeRes, cache: make(map[string][]FieldInfo)}
}

// GetAllMembers returns structFQN's full member list with offsets, base
// fields preceding derived fields in layout order (spec §4.8).
func (m *MemoryLayoutManager) GetAllMembers(structFQN string, unit *ast.CompilationUnit) ([]FieldInfo, error) {
	if cached, ok := m.cache[structFQN]; ok {
		return cached, nil
	}

	s, ok := m.repo.FindStruct(structFQN)
	if !ok {
		return nil, fmt.Errorf("layout: struct %q not found", structFQN)
	}

	var fields []FieldInfo
	offset := 0

	if s.BaseName != "" {
		baseFields, err := m.GetAllMembers(s.BaseName, unit)
		if err != nil {
			return nil, err
		}
		fields = append(fields, baseFields...)
		if n := len(baseFields); n > 0 {
			last := baseFields[n-1]
			offset = last.Offset + m.sizeOf(last.Type)
		}
	}

	ctx := resolver.Context{Namespace: s.Namespace, Unit: unit}
	for _, mv := range s.Members {
		resolved, err := m.typeRes.Resolve(mv.Type, ctx)
		if err != nil {
			return nil, fmt.Errorf("layout: resolving field %q of %q: %w", mv.Name.Text, structFQN, err)
		}
		fields = append(fields, FieldInfo{
			Name:         mv.Name.Text,
			Type:         resolved,
			Offset:       offset,
			IsConst:      mv.IsConst,
			Access:       mv.Access,
			DeclaringFQN: structFQN,
		})
		offset += m.sizeOf(resolved)
	}

	m.cache[structFQN] = fields
	return fields, nil
}

// GetMemberInfo finds memberName in structFQN's flattened member list
// (spec §4.8).
func (m *MemoryLayoutManager) GetMemberInfo(structFQN, memberName string, unit *ast.CompilationUnit) (offset int, resolvedType string, err error) {
	fields, err := m.GetAllMembers(structFQN, unit)
	if err != nil {
		return 0, "", err
	}
	for _, f := range fields {
		if f.Name == memberName {
			return f.Offset, f.Type, nil
		}
	}
	return 0, "", fmt.Errorf("layout: %q has no member %q", structFQN, memberName)
}

// FindField returns the full FieldInfo for memberName in structFQN's
// flattened member list, including the declaring struct and access level
// the SemanticAnalyzer needs to enforce visibility (spec §3.3).
func (m *MemoryLayoutManager) FindField(structFQN, memberName string, unit *ast.CompilationUnit) (FieldInfo, bool, error) {
	fields, err := m.GetAllMembers(structFQN, unit)
	if err != nil {
		return FieldInfo{}, false, err
	}
	for _, f := range fields {
		if f.Name == memberName {
			return f, true, nil
		}
	}
	return FieldInfo{}, false, nil
}

// SizeOf returns the byte size of a canonical type string, recursing into
// registered struct layouts for non-pointer struct types.
func (m *MemoryLayoutManager) SizeOf(canonical string, unit *ast.CompilationUnit) (int, error) {
	switch canonical {
	case "int":
		return sizeInt, nil
	case "char":
		return sizeChar, nil
	case "void":
		return 0, fmt.Errorf("layout: cannot size incomplete type 'void'")
	}
	if len(canonical) > 0 && canonical[len(canonical)-1] == '*' {
		return sizePointer, nil
	}
	fields, err := m.GetAllMembers(canonical, unit)
	if err != nil {
		return 0, err
	}
	if len(fields) == 0 {
		return 0, nil
	}
	last := fields[len(fields)-1]
	return last.Offset + m.sizeOf(last.Type), nil
}

// sizeOf is SizeOf's cache-only fast path used while a GetAllMembers call is
// still assembling a layout (no unit needed because the base chain is
// already in the cache by construction order).
func (m *MemoryLayoutManager) sizeOf(canonical string) int {
	switch canonical {
	case "int":
		return sizeInt
	case "char":
		return sizeChar
	}
	if len(canonical) > 0 && canonical[len(canonical)-1] == '*' {
		return sizePointer
	}
	if fields, ok := m.cache[canonical]; ok && len(fields) > 0 {
		last := fields[len(fields)-1]
		return last.Offset + m.sizeOf(last.Type)
	}
	return 0
}
