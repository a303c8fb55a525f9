package codegen

import (
	"fmt"
	"strings"
)

// Stub is a deterministic Codegen/Optimizer/PeepholeOptimizer/Assembler
// implementation used only by internal/build's driver tests, so the
// sequential-stage short-circuiting (spec §4.9) can be exercised without a
// real x86 backend. It records every call it receives for assertions.
type Stub struct {
	FoldErr      error
	GenerateErr  error
	OptimizeErr  error
	AssembleErr  error
	FoldCalls    int
	AssembleLog  []CommandSpec
}

func (s *Stub) Fold(units Units) error {
	s.FoldCalls++
	return s.FoldErr
}

// Generate returns one `; function <name>` comment line per function and
// method in units.Program. Within each unit it lists the free functions
// first, then each struct's methods as `Struct::method`, giving driver tests a
// deterministic, inspectable "assembly" string without a real backend.
func (s *Stub) Generate(units Units) (string, error) {
	if s.GenerateErr != nil {
		return "", s.GenerateErr
	}
	var b strings.Builder
	for _, unit := range units.Program.Units {
		for _, fn := range unit.Functions {
			fmt.Fprintf(&b, "; function %s\n", fn.Name.Text)
		}
		for _, st := range unit.Structs {
			for _, m := range st.Methods {
				fmt.Fprintf(&b, "; function %s::%s\n", st.Name.Text, m.Name.Text)
			}
		}
	}
	return b.String(), nil
}

func (s *Stub) Optimize(asm string) (string, error) {
	if s.OptimizeErr != nil {
		return "", s.OptimizeErr
	}
	return asm, nil
}

func (s *Stub) Assemble(spec CommandSpec) error {
	s.AssembleLog = append(s.AssembleLog, spec)
	return s.AssembleErr
}
