package integration

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"mirpair/internal/record"
)

const (
	site  = "ATAATATTCCATGTTGCATATTAAAAACATGAATGTTGTG"
	mirna = "GTAAACATCCTCGACTGGAAG"
)

var stem = strings.Repeat(".", 33) + "(((((" + ".." + ")))))" + strings.Repeat(".", 16)

// siteRow is a miRAW row for the window [start, start+40).
func siteRow(gene string, start int, prob, mfe, bracket string) string {
	return strings.Join([]string{
		gene, "hsa-miR-1", strconv.Itoa(start), strconv.Itoa(start + 40), prob, "2", "3", "9",
		"5", "4", "1", mfe, "none", site, mirna, bracket, "{}",
	}, "\t")
}

func table(rows ...string) string {
	return strings.Join(append([]string{strings.Join(record.Header(), "\t")}, rows...), "\n") + "\n"
}

func write(t *testing.T, path, data string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

// experiment creates dir/<name>/<name>.positiveTargetSites.csv.
func experiment(t *testing.T, root, name, data string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	write(t, filepath.Join(dir, name+".positiveTargetSites.csv"), data)
	return dir
}

func manyRows(n int) string {
	rows := make([]string, 0, n)
	for i := 0; i < n; i++ {
		bracket := stem
		if i%7 == 3 {
			bracket = stem[:20] // notation failure
		}
		rows = append(rows, siteRow("g"+strconv.Itoa(i), 1000+i, "0.9", "-12", bracket))
	}
	return table(rows...)
}
