// Package config carries the CLI-surfaced compiler switches as a plain
// value type, threaded by value into build.Compilation rather than read
// from global state (SPEC_FULL §2.3), mirroring how the teacher threads
// flags from cmd/orizon-compiler/main.go into its pipeline calls.
package config

import "github.com/Masterminds/semver/v3"

// Options is the compiler's full set of user-facing switches.
type Options struct {
	// EntryPath is the root source file passed to internal/source.Load.
	EntryPath string

	// ConstFold enables the optional AST constant-folding stage (spec
	// §4.9 stage 3).
	ConstFold bool

	// Target is an optional semver constraint string, validated with
	// Masterminds/semver (SPEC_FULL §3.2); empty means unconstrained.
	Target string

	// Watch enables cmd/ctildec's fsnotify-driven recompile loop
	// (SPEC_FULL §3.3). It has no effect on the analysis core itself.
	Watch bool

	// JSON selects JSON diagnostic output over the terminal caret form
	// (SPEC_FULL §4 item 3).
	JSON bool

	// Verbose enables -v log lines reporting optimizer activity (SPEC_FULL
	// §2.1); no stage timing is logged.
	Verbose bool
}

// ValidateTarget parses Target as a semver constraint, returning an error if
// it is non-empty and malformed. An empty Target is always valid.
func (o Options) ValidateTarget() error {
	if o.Target == "" {
		return nil
	}
	_, err := semver.NewConstraint(o.Target)
	return err
}
