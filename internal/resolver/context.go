// Package resolver implements name/type resolution: the TypeResolver,
// Monomorphizer, and FunctionResolver, wired with two-phase construction to
// break their mutual dependency cycles (spec §4.4, §4.5, §4.7, §9).
package resolver

import (
	"fmt"

	"github.com/ctilde/ctilde/internal/ast"
)

// ResolutionError is a recoverable error raised by name/type resolution; the
// driver converts it to a diagnostic.Diagnostic located at the offending
// token (spec §7).
type ResolutionError struct {
	Message string
}

func (e *ResolutionError) Error() string { return e.Message }

func errf(format string, args ...interface{}) error {
	return &ResolutionError{Message: fmt.Sprintf(format, args...)}
}

// Context is the `(currentNamespace?, compilationUnit)` pair every
// resolution method is parameterized over (spec §4.4).
type Context struct {
	Namespace string
	Unit      *ast.CompilationUnit
}
