// Package source implements the preprocessor's include-closure discovery and
// per-file parse-and-merge driver (spec §1, §4.9 stage 1, §6).
package source

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// includeTarget matches a `#include "relative/path"` line. The grammar
// (spec §4.2) requires the directive to be its own token sequence, but
// discovery only needs the quoted payload, so a line scan is enough and
// keeps this package independent of internal/lexer.
func includeTarget(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "#include") {
		return "", false
	}
	rest := strings.TrimSpace(line[len("#include"):])
	if len(rest) < 2 || rest[0] != '"' {
		return "", false
	}
	end := strings.IndexByte(rest[1:], '"')
	if end < 0 {
		return "", false
	}
	return rest[1 : 1+end], true
}

// Discover walks the `#include` edges reachable from entry and returns every
// file in depth-first post-order (dependencies before dependents), so that a
// file never appears before anything it includes (spec §6). A visited set
// breaks cycles silently: a file reached a second time (directly or via a
// cycle) is not re-descended into and is not duplicated in the result.
func Discover(entry string) ([]string, error) {
	entry, err := filepath.Abs(entry)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var order []string

	var walk func(path string) error
	walk = func(path string) error {
		if visited[path] {
			return nil
		}
		if onStack[path] {
			return nil // cycle: silently broken (spec §6)
		}
		onStack[path] = true
		defer delete(onStack, path)

		includes, err := scanIncludes(path)
		if err != nil {
			return err
		}
		dir := filepath.Dir(path)
		for _, inc := range includes {
			childPath := filepath.Join(dir, inc)
			if err := walk(childPath); err != nil {
				return err
			}
		}

		if !visited[path] {
			visited[path] = true
			order = append(order, path)
		}
		return nil
	}

	if err := walk(entry); err != nil {
		return nil, err
	}
	return order, nil
}

// scanIncludes reads path and returns every `#include` target it names, in
// the order they appear.
func scanIncludes(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: cannot open %s: %w", path, err)
	}
	defer f.Close()

	var includes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if target, ok := includeTarget(scanner.Text()); ok {
			includes = append(includes, target)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("source: cannot read %s: %w", path, err)
	}
	return includes, nil
}
