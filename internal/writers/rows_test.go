// internal/writers/rows_test.go
package writers

import (
	"bytes"
	"errors"
	"strings"
	"syscall"
	"testing"
)

func TestRowWriter_HeaderAndQuotedDiagram(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartRowWriter(&buf, []string{"GeneName", "Pairing"}, 2)
	in <- []string{"g1", "5' AC  3' miRNA\n   ||\n3' UG  5' mRNA"}
	in <- []string{"g2", ""}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer err: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "GeneName\tPairing\n") {
		t.Fatalf("missing header: %q", out)
	}
	if !strings.Contains(out, "g1\t\"5' AC  3' miRNA\n   ||\n3' UG  5' mRNA\"\n") {
		t.Fatalf("diagram should be quoted: %q", out)
	}
	if !strings.HasSuffix(out, "g2\t\n") {
		t.Fatalf("empty annotation row missing: %q", out)
	}
}

func TestRowWriter_NoHeader(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartRowWriter(&buf, nil, 0)
	in <- []string{"a", "b"}
	close(in)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if buf.String() != "a\tb\n" {
		t.Fatalf("got %q", buf.String())
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, syscall.EPIPE }

func TestRowWriter_ReportsBrokenPipe(t *testing.T) {
	in, done := StartRowWriter(failWriter{}, []string{"h"}, 1)
	for i := 0; i < 10; i++ {
		in <- []string{strings.Repeat("x", 5000)}
	}
	close(in)
	err := <-done
	if !IsBrokenPipe(err) {
		t.Fatalf("want broken pipe, got %v", err)
	}
	if !errors.Is(err, syscall.EPIPE) {
		t.Fatalf("want EPIPE in chain, got %v", err)
	}
}
