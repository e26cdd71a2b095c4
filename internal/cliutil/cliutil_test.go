package cliutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.positiveTargetSites.csv")
	b := filepath.Join(dir, "b.positiveTargetSites.csv")
	_ = os.WriteFile(a, []byte("h\n"), 0o644)
	_ = os.WriteFile(b, []byte("h\n"), 0o644)
	got, err := ExpandPositionals([]string{filepath.Join(dir, "*.csv"), "-"})
	if err != nil || len(got) != 3 {
		t.Fatalf("expand: err=%v got=%v", err, got)
	}
	if got[2] != "-" {
		t.Fatalf("stdin marker should pass through, got %v", got)
	}
}

func TestExpandPositionals_NoMatch(t *testing.T) {
	_, err := ExpandPositionals([]string{filepath.Join(t.TempDir(), "*.csv")})
	if err == nil {
		t.Fatalf("expected error for empty glob")
	}
}

func TestRequireFiles(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "x.csv")
	_ = os.WriteFile(f, nil, 0o644)
	if err := RequireFiles([]string{f, "-"}); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := RequireFiles([]string{dir}); err == nil {
		t.Fatalf("directory must be rejected")
	}
	if err := RequireFiles([]string{filepath.Join(dir, "missing.csv")}); err == nil {
		t.Fatalf("missing file must be rejected")
	}
}

func TestCountStdin(t *testing.T) {
	if n := CountStdin([]string{"-", "a", "-"}); n != 2 {
		t.Fatalf("got %d", n)
	}
}
