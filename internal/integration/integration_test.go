// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mirpair/internal/app"
)

func readTSV(t *testing.T, s string) [][]string {
	t.Helper()
	cr := csv.NewReader(strings.NewReader(s))
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	return recs
}

func TestPairingEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := write(t, filepath.Join(dir, "exp.positiveTargetSites.csv"),
		table(siteRow("g1", 1001, "0.93", "-12.3", stem)))

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"pairing", "--quiet", in}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}

	recs := readTSV(t, read(t, filepath.Join(dir, "exp.pairing.positiveTargetSites.csv")))
	if len(recs) != 2 || recs[0][17] != "Pairing" {
		t.Fatalf("unexpected output table: %q", recs)
	}
	want := "5'   " + mirna + strings.Repeat(" ", 17) + "  3' miRNA\n" +
		"     |||||" + strings.Repeat(" ", 33) + "\n" +
		"3' GUGUUGUAAGUACAAAAAUUAUACGUUGUACCUUAUAAUA  5' mRNA"
	if diff := cmp.Diff(want, recs[1][17]); diff != "" {
		t.Fatalf("diagram mismatch (-want +got):\n%s", diff)
	}
}

func TestBindingAtEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := write(t, filepath.Join(dir, "sites.csv"), table(
		siteRow("hit", 1001, "0.9", "-12", stem),
		siteRow("far", 5001, "0.9", "-12", stem),
	))

	var errBuf bytes.Buffer
	code := app.Run([]string{"binding-at", "--pos", "1036", "-q", in}, &bytes.Buffer{}, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}
	recs := readTSV(t, read(t, filepath.Join(dir, "sites.BindingAt.csv")))
	if recs[0][17] != "BindingAtPos_1036" {
		t.Fatalf("header: %q", recs[0])
	}
	if !strings.Contains(recs[1][17], "{") {
		t.Fatalf("bond at 1036 should be marked: %q", recs[1][17])
	}
	if recs[2][17] != "" {
		t.Fatalf("window without the position must be empty: %q", recs[2][17])
	}
}

func TestBindingAtRequiresPos(t *testing.T) {
	dir := t.TempDir()
	in := write(t, filepath.Join(dir, "sites.csv"), table())
	var errBuf bytes.Buffer
	if code := app.Run([]string{"binding-at", in}, &bytes.Buffer{}, &errBuf); code != 2 {
		t.Fatalf("want exit 2, got %d (%s)", code, errBuf.String())
	}
}

func TestExperimentFolder(t *testing.T) {
	root := t.TempDir()
	dir := experiment(t, root, "exp1", table(siteRow("g1", 1001, "0.9", "-12", stem)))

	var errBuf bytes.Buffer
	code := app.Run([]string{"pairing", "-q", "--experiment", dir, "-p"}, &bytes.Buffer{}, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "exp1.pairing.positiveTargetSites.csv")); err != nil {
		t.Fatalf("derived output missing: %v", err)
	}

	// Negative file does not exist.
	code = app.Run([]string{"pairing", "-q", "--experiment", dir, "-n"}, &bytes.Buffer{}, &errBuf)
	if code != 2 {
		t.Fatalf("missing target file should be a usage error, got %d", code)
	}
}

func TestFailurePolicyOmitViaConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := write(t, filepath.Join(dir, "mirpair.yaml"), "failure_policy: omit\n")
	in := write(t, filepath.Join(dir, "sites.csv"), table(
		siteRow("good", 1001, "0.9", "-12", stem),
		siteRow("bad", 1001, "0.9", "-12", stem[:10]),
	))

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"pairing", "--config", cfg, "--stdout", "-q", in}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}
	recs := readTSV(t, out.String())
	if len(recs) != 2 || recs[1][0] != "good" {
		t.Fatalf("bad row should be omitted: %q", recs)
	}

	// The flag beats the file.
	out.Reset()
	code = app.Run([]string{"pairing", "--config", cfg, "--failure-policy", "empty", "--stdout", "-q", in}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if recs := readTSV(t, out.String()); len(recs) != 3 {
		t.Fatalf("empty policy keeps the row, got %d rows", len(recs))
	}
}

func TestStrictAlignmentExit3(t *testing.T) {
	dir := t.TempDir()
	row := strings.Replace(siteRow("bad", 1001, "0.9", "-12", stem), "\t2\t3\t9\t", "\t38\t3\t9\t", 1)
	in := write(t, filepath.Join(dir, "sites.csv"), table(row))

	var errBuf bytes.Buffer
	code := app.Run([]string{"pairing", "--strict-alignment", "--stdout", "-q", in}, &bytes.Buffer{}, &errBuf)
	if code != 3 {
		t.Fatalf("want exit 3, got %d (%s)", code, errBuf.String())
	}
	if !strings.Contains(errBuf.String(), "alignment inconsistency") {
		t.Fatalf("stderr should name the failure: %s", errBuf.String())
	}
}

func TestFailedRunLeavesNoOutputFile(t *testing.T) {
	dir := t.TempDir()
	good := siteRow("good", 1001, "0.9", "-12", stem)
	bad := strings.Replace(siteRow("bad", 1001, "0.9", "-12", stem), "\t2\t3\t9\t", "\t38\t3\t9\t", 1)
	in := write(t, filepath.Join(dir, "sites.csv"), table(good, bad))

	var errBuf bytes.Buffer
	code := app.Run([]string{"pairing", "--strict-alignment", "-q", in}, &bytes.Buffer{}, &errBuf)
	if code != 3 {
		t.Fatalf("want exit 3, got %d (%s)", code, errBuf.String())
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "sites.csv" {
			t.Fatalf("failed run left %s behind", e.Name())
		}
	}
}

func TestJSONLOutput(t *testing.T) {
	dir := t.TempDir()
	in := write(t, filepath.Join(dir, "sites.csv"), table(siteRow("g1", 1001, "0.9", "-12", stem)))
	code := app.Run([]string{"pairing", "--format", "jsonl", "-q", in}, &bytes.Buffer{}, &bytes.Buffer{})
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	got := read(t, filepath.Join(dir, "sites.pairing.jsonl"))
	if !strings.Contains(got, `"column":"Pairing"`) || !strings.Contains(got, `"bond_count":5`) {
		t.Fatalf("unexpected jsonl: %s", got)
	}
}

func TestCutoffEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := write(t, filepath.Join(dir, "sites.csv"), table(
		siteRow("keep", 1001, "0.95", "-20", stem),
		siteRow("weak", 1001, "0.95", "-5", stem),
		siteRow("unlikely", 1001, "0.40", "-20", stem),
	))

	var errBuf bytes.Buffer
	code := app.Run([]string{"cutoff", "-q", "--prob", "0.9", "--energy", "-10", in}, &bytes.Buffer{}, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}
	recs := readTSV(t, read(t, filepath.Join(dir, "sites.cutoffFiltered.csv")))
	if len(recs) != 2 || recs[1][0] != "keep" {
		t.Fatalf("unexpected filtered rows: %q", recs)
	}

	if code := app.Run([]string{"cutoff", "--energy", "5", in}, &bytes.Buffer{}, &bytes.Buffer{}); code != 2 {
		t.Fatalf("positive energy must be rejected, got %d", code)
	}
}

func TestBatchScriptEndToEnd(t *testing.T) {
	root := t.TempDir()
	experiment(t, root, "b", table())
	experiment(t, root, "a", table())

	var errBuf bytes.Buffer
	code := app.Run([]string{"batch-script", "-q", "--out-folder", root, "--name", "all", "-p", "-n"}, &bytes.Buffer{}, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}
	want := "#!/bin/sh\n" +
		fmt.Sprintf("mirpair pairing --experiment %s -p -n\n", filepath.Join(root, "a")) +
		fmt.Sprintf("mirpair pairing --experiment %s -p -n\n", filepath.Join(root, "b"))
	if diff := cmp.Diff(want, read(t, filepath.Join(root, "all.sh"))); diff != "" {
		t.Fatalf("script mismatch (-want +got):\n%s", diff)
	}
}

func TestConflictsEndToEnd(t *testing.T) {
	root := t.TempDir()
	dir := experiment(t, root, "e1", table(siteRow("mixed", 1001, "0.9", "-12", stem), siteRow("clean", 1001, "0.9", "-12", stem)))
	summary := "GeneName\tGeneId\tmiRNA\tPrediction\tHighestPredVal\tLowestPredVal\tPosSites\tNegSites\tRemovedSites\n" +
		"mixed\tid1\thsa-miR-1\t1\t0.9\t0.2\t1\t1\t0\n" +
		"clean\tid2\thsa-miR-1\t1\t0.9\t0.9\t1\t0\t0\n"
	write(t, filepath.Join(dir, "e1.targetPredictionOutput.csv"), summary)
	write(t, filepath.Join(dir, "e1.negativeTargetSites.csv"), table(siteRow("mixed", 2001, "0.1", "-3", stem)))
	write(t, filepath.Join(dir, "e1.allTargetSites.csv"), table(
		siteRow("mixed", 1001, "0.9", "-12", stem),
		siteRow("clean", 1001, "0.9", "-12", stem),
		siteRow("mixed", 2001, "0.1", "-3", stem),
	))

	var errBuf bytes.Buffer
	if code := app.Run([]string{"conflicts", "-q", dir}, &bytes.Buffer{}, &errBuf); code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errBuf.String())
	}
	genes := func(name string) []string {
		var out []string
		for _, r := range readTSV(t, read(t, filepath.Join(dir, name)))[1:] {
			out = append(out, r[0])
		}
		return out
	}
	cases := map[string][]string{
		"e1.allTargetSites.withoutConflicts.csv":      {"clean"},
		"e1.allTargetSites.onlyConflicts.csv":         {"mixed", "mixed"},
		"e1.positiveTargetSites.withoutConflicts.csv": {"clean"},
		"e1.negativeTargetSites.withoutConflicts.csv": nil,
	}
	for name, want := range cases {
		if diff := cmp.Diff(want, genes(name)); diff != "" {
			t.Errorf("%s (-want +got):\n%s", name, diff)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "e1.positiveTargetSites.onlyConflicts.csv")); !os.IsNotExist(err) {
		t.Fatalf("only the all table gets an onlyConflicts file: %v", err)
	}

	if code := app.Run([]string{"conflicts", "-q", filepath.Join(root, "missing")}, &bytes.Buffer{}, &bytes.Buffer{}); code != 2 {
		t.Fatalf("missing experiment files: want exit 2, got %d", code)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	dir := t.TempDir()
	in := write(t, filepath.Join(dir, "many.csv"), manyRows(200))

	run := func(threads int) string {
		var out, errB bytes.Buffer
		code := app.Run([]string{
			"pairing", "--stdout", "-q",
			"--threads", fmt.Sprint(threads),
			in,
		}, &out, &errB)
		if code != 0 {
			t.Fatalf("exit %d err %s", code, errB.String())
		}
		return out.String()
	}

	serial := run(1)
	parallel := run(8)
	if serial != parallel {
		t.Fatalf("parallel output differs from serial\nserial: %s\nparallel:%s", serial, parallel)
	}
}

func TestUsageErrors(t *testing.T) {
	cases := [][]string{
		{"pairing"},
		{"pairing", "--no-such-flag"},
		{"pairing", "--threads=-2", "x.csv"},
		{"frobnicate"},
	}
	for _, argv := range cases {
		if code := app.Run(argv, &bytes.Buffer{}, &bytes.Buffer{}); code != 2 {
			t.Errorf("%v: want exit 2, got %d", argv, code)
		}
	}
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	if code := app.Run([]string{"version"}, &out, &bytes.Buffer{}); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.HasPrefix(out.String(), "mirpair version ") {
		t.Fatalf("unexpected: %q", out.String())
	}
}
