package build

import (
	"bytes"
	"testing"
)

func TestOpenOptimizerLogDiscardsWhenNotVerbose(t *testing.T) {
	var buf bytes.Buffer
	ol := openOptimizerLog(false, &buf)
	ol.Printf("should not appear")
	if err := ol.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written when not verbose, got %q", buf.String())
	}
}

func TestOpenOptimizerLogWritesWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	ol := openOptimizerLog(true, &buf)
	ol.Printf("folding constants")
	if err := ol.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("folding constants")) {
		t.Fatalf("expected the message to be written, got %q", buf.String())
	}
}
