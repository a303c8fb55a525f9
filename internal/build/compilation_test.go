package build

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/ctilde/ctilde/internal/codegen"
	"github.com/ctilde/ctilde/internal/config"
)

func writeEntry(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.ct")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writeEntry: %v", err)
	}
	return path
}

func TestCompilationRunShortCircuitsOnParseErrors(t *testing.T) {
	entry := writeEntry(t, `int main(`)
	stub := &codegen.Stub{}
	c := &Compilation{Options: config.Options{EntryPath: entry}, Codegen: stub}

	res, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Diags.HasErrors() {
		t.Fatal("expected a parse-stage diagnostic")
	}
	if res.Assembly != "" {
		t.Fatal("expected codegen to be skipped after a parse error")
	}
}

func TestCompilationRunShortCircuitsOnAnalyzeErrors(t *testing.T) {
	entry := writeEntry(t, `int main(){ return nope; }`)
	stub := &codegen.Stub{}
	c := &Compilation{Options: config.Options{EntryPath: entry}, Codegen: stub}

	res, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Diags.HasErrors() {
		t.Fatal("expected an analyze-stage diagnostic for the undefined variable")
	}
	if res.Assembly != "" {
		t.Fatal("expected codegen to be skipped after an analyze error")
	}
}

func TestCompilationRunGeneratesAssemblyOnCleanAnalysis(t *testing.T) {
	entry := writeEntry(t, `int main(){ return 0; }`)
	stub := &codegen.Stub{}
	c := &Compilation{Options: config.Options{EntryPath: entry}, Codegen: stub}

	res, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diags.All())
	}
	if !strings.Contains(res.Assembly, "; function main") {
		t.Fatalf("expected generated assembly to mention main, got %q", res.Assembly)
	}
}

func TestCompilationRunSkipsOptimizeWhenConstFoldDisabled(t *testing.T) {
	entry := writeEntry(t, `int main(){ return 0; }`)
	stub := &codegen.Stub{}
	c := &Compilation{Options: config.Options{EntryPath: entry}, Codegen: stub, Optimizer: stub}

	if _, err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stub.FoldCalls != 0 {
		t.Fatalf("expected Fold not to be called without -fold, got %d calls", stub.FoldCalls)
	}
}

func TestCompilationRunInvokesOptimizeWhenConstFoldEnabled(t *testing.T) {
	entry := writeEntry(t, `int main(){ return 0; }`)
	stub := &codegen.Stub{}
	c := &Compilation{Options: config.Options{EntryPath: entry, ConstFold: true}, Codegen: stub, Optimizer: stub}

	if _, err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stub.FoldCalls != 1 {
		t.Fatalf("expected Fold to be called once, got %d calls", stub.FoldCalls)
	}
}

func TestCompilationRunPropagatesCodegenErrorViaMock(t *testing.T) {
	entry := writeEntry(t, `int main(){ return 0; }`)
	ctrl := gomock.NewController(t)
	mockGen := NewMockCodegen(ctrl)
	boom := errGenerate{"backend exploded"}
	mockGen.EXPECT().Generate(gomock.Any()).Return("", boom)

	c := &Compilation{Options: config.Options{EntryPath: entry}, Codegen: mockGen}
	_, err := c.Run()
	if err != boom {
		t.Fatalf("expected the mock's error to propagate, got %v", err)
	}
}

type errGenerate struct{ msg string }

func (e errGenerate) Error() string { return e.msg }
