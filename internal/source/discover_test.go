package source

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writeFile %s: %v", name, err)
	}
	return path
}

func TestDiscoverPostOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "leaf.ct", `int leaf(){ return 0; }`)
	writeFile(t, dir, "mid.ct", "#include \"leaf.ct\"\nint mid(){ return 0; }")
	entry := writeFile(t, dir, "main.ct", "#include \"mid.ct\"\nint main(){ return 0; }")

	files, err := Discover(entry)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "leaf.ct" {
		t.Fatalf("expected leaf.ct first (post-order), got %s", filepath.Base(files[0]))
	}
	if filepath.Base(files[len(files)-1]) != "main.ct" {
		t.Fatalf("expected main.ct last (post-order), got %s", filepath.Base(files[len(files)-1]))
	}
}

func TestDiscoverBreaksCycles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ct", "#include \"b.ct\"\nint a(){ return 0; }")
	entry := writeFile(t, dir, "b.ct", "#include \"a.ct\"\nint b(){ return 0; }")

	files, err := Discover(entry)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected the cycle broken into 2 files, got %d: %v", len(files), files)
	}
}

func TestDiscoverDiamondVisitsSharedDependencyOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shared.ct", `int shared(){ return 0; }`)
	writeFile(t, dir, "left.ct", "#include \"shared.ct\"\nint left(){ return 0; }")
	writeFile(t, dir, "right.ct", "#include \"shared.ct\"\nint right(){ return 0; }")
	entry := writeFile(t, dir, "main.ct", "#include \"left.ct\"\n#include \"right.ct\"\nint main(){ return 0; }")

	files, err := Discover(entry)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("expected shared.ct to appear exactly once, got %d files: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "shared.ct" {
		t.Fatalf("expected shared.ct first, got %s", filepath.Base(files[0]))
	}
}
