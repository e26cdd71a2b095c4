// internal/tsv/paths.go
package tsv

import (
	"path/filepath"
	"strings"
)

// Target-site file selectors used by experiment folders.
const (
	TailPositive = ".positiveTargetSites.csv"
	TailNegative = ".negativeTargetSites.csv"
	TailAll      = ".allTargetSites.csv"
)

var targetTails = []string{TailPositive, TailNegative, TailAll}

// InsertInfix puts "."+infix before the file extension:
// a/b.csv + BindingAt -> a/b.BindingAt.csv.
func InsertInfix(path, infix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + infix + ext
}

// PairingPath inserts the pairing infix before a miRAW result tail when the
// file has one (x.positiveTargetSites.csv -> x.pairing.positiveTargetSites.csv),
// or before the plain extension otherwise.
func PairingPath(path string) string {
	for _, tail := range targetTails {
		if strings.HasSuffix(path, tail) {
			return strings.TrimSuffix(path, tail) + ".pairing" + tail
		}
	}
	return InsertInfix(path, "pairing")
}

// ExperimentFiles resolves the target-site files of one miRAW experiment
// folder: dir/<base(dir)><tail> for each requested tail.
func ExperimentFiles(dir string, tails []string) []string {
	dir = filepath.Clean(dir)
	prefix := filepath.Join(dir, filepath.Base(dir))
	out := make([]string, 0, len(tails))
	for _, t := range tails {
		out = append(out, prefix+t)
	}
	return out
}
