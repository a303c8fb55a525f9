package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctilde/ctilde/internal/build"
	"github.com/ctilde/ctilde/internal/codegen"
	"github.com/ctilde/ctilde/internal/config"
	"github.com/ctilde/ctilde/internal/diagnostic"
)

func TestTruncateLinesShortensLongLines(t *testing.T) {
	in := "short\n" + "0123456789012345678901234567890\n" + "\n"
	got := truncateLines(in, 10)
	want := "short\n" + "0123456..." + "\n" + "\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTruncateLinesNoopOnZeroWidth(t *testing.T) {
	in := "a very long line that would otherwise be cut down to size\n"
	if got := truncateLines(in, 0); got != in {
		t.Fatalf("expected no truncation with width 0, got %q", got)
	}
}

func TestPrintDiagnosticsJSONRoundTrips(t *testing.T) {
	bag := &diagnostic.Bag{}
	bag.Errorf("a.ct", 3, 5, "unexpected token")

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	old := os.Stdout
	os.Stdout = w
	printDiagnostics(bag, true)
	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)

	var decoded []diagnostic.Diagnostic
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v\noutput: %s", err, buf.String())
	}
	if len(decoded) != 1 || decoded[0].Message != "unexpected token" {
		t.Fatalf("unexpected decoded diagnostics: %+v", decoded)
	}
}

func TestRunOnceReturnsNonzeroOnParseError(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.ct")
	if err := os.WriteFile(entry, []byte("int main(){ return 0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	comp := &build.Compilation{
		Options: config.Options{EntryPath: entry},
		Codegen: &codegen.Stub{},
	}
	if code := runOnce(comp, comp.Options); code == 0 {
		t.Fatalf("expected a nonzero exit code for a syntax error")
	}
}

func TestRunOnceReturnsZeroOnCleanEntry(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "main.ct")
	src := "int main(){ return 0; }\n"
	if err := os.WriteFile(entry, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	comp := &build.Compilation{
		Options: config.Options{EntryPath: entry},
		Codegen: &codegen.Stub{},
	}
	if code := runOnce(comp, comp.Options); code != 0 {
		t.Fatalf("expected a zero exit code for a clean compile, got %d", code)
	}
}
