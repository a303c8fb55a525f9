package build

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/ctilde/ctilde/internal/codegen"
	"github.com/ctilde/ctilde/internal/config"
	"github.com/ctilde/ctilde/internal/diagnostic"
)

// TestGoldenFixtures runs every testdata/*.txtar archive as a full
// Compilation and checks its diagnostics against the archive's
// expected.diagnostics file, grounded on the teacher's test/golden layout
// (SPEC_FULL §2.4).
//
// Each archive's Comment names the entry file as "entry: <path>"; every
// other file is written into a fresh temp directory preserving its
// relative path, so an archive can bundle a multi-file #include closure.
// expected.diagnostics holds one "<Severity> <file>: <message>" line per
// diagnostic, sorted the same way Bag.Sorted() orders them; it omits
// line/column since those depend on exact token positions the fixture
// author would otherwise have to hand-compute.
func TestGoldenFixtures(t *testing.T) {
	archives, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(archives) == 0 {
		t.Fatal("no golden fixtures found under testdata/")
	}

	for _, archivePath := range archives {
		archivePath := archivePath
		t.Run(strings.TrimSuffix(filepath.Base(archivePath), ".txtar"), func(t *testing.T) {
			runGoldenFixture(t, archivePath)
		})
	}
}

func runGoldenFixture(t *testing.T, archivePath string) {
	t.Helper()
	ar, err := txtar.ParseFile(archivePath)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	entry := entryFromComment(ar.Comment)
	if entry == "" {
		t.Fatalf("%s: missing \"entry: <path>\" in the archive comment", archivePath)
	}

	dir := t.TempDir()
	var expected string
	haveExpected := false
	for _, f := range ar.Files {
		if f.Name == "expected.diagnostics" {
			expected = string(f.Data)
			haveExpected = true
			continue
		}
		full := filepath.Join(dir, f.Name)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(full, f.Data, 0o644); err != nil {
			t.Fatalf("WriteFile %s: %v", full, err)
		}
	}
	if !haveExpected {
		t.Fatalf("%s: missing expected.diagnostics section", archivePath)
	}

	comp := &Compilation{
		Options: config.Options{EntryPath: filepath.Join(dir, entry)},
		Codegen: &codegen.Stub{},
	}
	res, err := comp.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := renderGoldenDiagnostics(res.Diags, dir)
	if got != strings.TrimSpace(expected) {
		t.Fatalf("diagnostics mismatch\n got:\n%s\nwant:\n%s", got, strings.TrimSpace(expected))
	}
}

// renderGoldenDiagnostics formats d in the fixture's comparison form,
// stripping dir so paths read as they do inside the archive.
func renderGoldenDiagnostics(d *diagnostic.Bag, dir string) string {
	if d == nil {
		return ""
	}
	var lines []string
	for _, diag := range d.Sorted() {
		rel, err := filepath.Rel(dir, diag.Path)
		if err != nil {
			rel = diag.Path
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s", diag.Severity, filepath.ToSlash(rel), diag.Message))
	}
	return strings.Join(lines, "\n")
}

func entryFromComment(comment []byte) string {
	for _, line := range strings.Split(string(comment), "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "entry:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}
