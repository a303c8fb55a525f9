package source

import (
	"github.com/Masterminds/semver/v3"

	"github.com/ctilde/ctilde/internal/ast"
	"github.com/ctilde/ctilde/internal/diagnostic"
)

// mergeImports unions every unit's `#import` directives by library name
// (spec §4.9 stage 1). Each import's version constraint, when present, is
// validated with semver.NewConstraint (SPEC_FULL §3.2); a malformed
// constraint is reported as a diagnostic rather than aborting the merge
// (SPEC_FULL §4 item 1: "a Resolution-tier diagnostic, not fatal"). A
// library named with two different non-empty constraints across the
// closure is reported as conflicting, since this front-end has no package
// registry to test whether some single version could satisfy both.
func mergeImports(units []*ast.CompilationUnit, diags *diagnostic.Bag) []*ast.Import {
	byName := make(map[string]*ast.Import)
	var order []string

	for _, unit := range units {
		for _, imp := range unit.Imports {
			if imp.VersionConstraint != "" {
				if _, err := semver.NewConstraint(imp.VersionConstraint); err != nil {
					diags.Errorf(unit.Path, imp.Token.Line, imp.Token.Column,
						"malformed version constraint %q for #import %q: %v", imp.VersionConstraint, imp.LibraryName, err)
					continue
				}
			}

			existing, ok := byName[imp.LibraryName]
			if !ok {
				byName[imp.LibraryName] = imp
				order = append(order, imp.LibraryName)
				continue
			}
			if existing.VersionConstraint == "" {
				existing.VersionConstraint = imp.VersionConstraint
				continue
			}
			if imp.VersionConstraint != "" && imp.VersionConstraint != existing.VersionConstraint {
				diags.Errorf(unit.Path, imp.Token.Line, imp.Token.Column,
					"conflicting version constraints for #import %q: %q vs %q", imp.LibraryName, existing.VersionConstraint, imp.VersionConstraint)
			}
		}
	}

	merged := make([]*ast.Import, 0, len(order))
	for _, name := range order {
		merged = append(merged, byName[name])
	}
	return merged
}
