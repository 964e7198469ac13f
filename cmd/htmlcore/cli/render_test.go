package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRenderCommandPrintsTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.html")
	if err := os.WriteFile(path, []byte("<!DOCTYPE html><html><head></head><body>Test</body></html>"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out bytes.Buffer
	renderCmd.SetOut(&out)
	renderCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"render", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := out.String()
	want := "#document\n| <!DOCTYPE html>\n| <html>\n|   <head>\n|   <body>\n|     \"Test\"\n"
	if got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRenderCommandErrorsOnMissingFile(t *testing.T) {
	rootCmd.SetArgs([]string{"render", filepath.Join(t.TempDir(), "missing.html")})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
