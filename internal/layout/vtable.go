package layout

import (
	"fmt"

	"github.com/ctilde/ctilde/internal/types"
)

// VTableSlot is one entry of a struct's virtual method table: the method
// name and the struct that currently owns the implementation occupying the
// slot.
type VTableSlot struct {
	Name        string
	OwnerStruct string
}

// VTableManager assigns virtual-method slots in declaration order across an
// inheritance chain, with `override` reusing the base slot (spec §4.8).
type VTableManager struct {
	repo  *types.Repository
	cache map[string][]VTableSlot
}

// NewVTableManager constructs a manager over repo.
func NewVTableManager(repo *types.Repository) *VTableManager {
	return &VTableManager{repo: repo, cache: make(map[string][]VTableSlot)}
}

// BuildVTable computes structFQN's vtable: inherited slots first (in the
// base's own slot order), each either kept as-is, replaced in place by a
// matching `override` method, or — for a new `virtual` method declared
// directly on structFQN — appended as a new slot.
func (vt *VTableManager) BuildVTable(structFQN string) ([]VTableSlot, error) {
	if cached, ok := vt.cache[structFQN]; ok {
		return cached, nil
	}

	s, ok := vt.repo.FindStruct(structFQN)
	if !ok {
		return nil, fmt.Errorf("layout: struct %q not found", structFQN)
	}

	var slots []VTableSlot
	if s.BaseName != "" {
		baseSlots, err := vt.BuildVTable(s.BaseName)
		if err != nil {
			return nil, err
		}
		slots = append(slots, baseSlots...)
	}

	for _, fn := range s.Methods {
		switch {
		case fn.IsOverride:
			replaced := false
			for i := range slots {
				if slots[i].Name == fn.Name.Text {
					slots[i] = VTableSlot{Name: fn.Name.Text, OwnerStruct: structFQN}
					replaced = true
					break
				}
			}
			if !replaced {
				// No base slot to override: treat as a fresh virtual entry
				// rather than failing the whole layout pass.
				slots = append(slots, VTableSlot{Name: fn.Name.Text, OwnerStruct: structFQN})
			}
		case fn.IsVirtual:
			slots = append(slots, VTableSlot{Name: fn.Name.Text, OwnerStruct: structFQN})
		}
	}

	vt.cache[structFQN] = slots
	return slots, nil
}

// SlotIndex returns the index of methodName in structFQN's vtable, or -1 if
// it is not a virtual method.
func (vt *VTableManager) SlotIndex(structFQN, methodName string) (int, error) {
	slots, err := vt.BuildVTable(structFQN)
	if err != nil {
		return -1, err
	}
	for i, s := range slots {
		if s.Name == methodName {
			return i, nil
		}
	}
	return -1, nil
}
