// Package conflicts separates gene:miRNA pairs that miRAW reported with both
// positive and negative target sites.
package conflicts

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"mirpair/internal/record"
	"mirpair/internal/tsv"
	"mirpair/internal/writers"
)

// TailSummary selects the per-pair prediction summary of an experiment folder.
const TailSummary = ".targetPredictionOutput.csv"

// Output infixes.
const (
	InfixWithout = "withoutConflicts"
	InfixOnly    = "onlyConflicts"
)

// Summary columns: GeneName GeneId miRNA Prediction HighestPredVal
// LowestPredVal PosSites NegSites RemovedSites.
const (
	sumGene  = 0
	sumMirna = 2
	sumPos   = 6
	sumNeg   = 7
)

var sumNames = map[int]string{sumGene: "GeneName", sumMirna: "miRNA", sumPos: "PosSites", sumNeg: "NegSites"}

// Pair names one gene:miRNA prediction.
type Pair struct {
	Gene  string
	Mirna string
}

// Set holds the conflicted pairs.
type Set map[Pair]struct{}

// Has reports whether gene:mirna is conflicted.
func (s Set) Has(gene, mirna string) bool {
	_, ok := s[Pair{Gene: gene, Mirna: mirna}]
	return ok
}

// ReadSummary collects every pair with at least one positive and one
// negative site.
func ReadSummary(src *tsv.Reader) (Set, error) {
	set := Set{}
	for {
		fields, n, err := src.Next()
		if errors.Is(err, io.EOF) {
			return set, nil
		}
		if err != nil {
			return nil, err
		}
		pos, err := count(fields, sumPos, n)
		if err != nil {
			return nil, err
		}
		neg, err := count(fields, sumNeg, n)
		if err != nil {
			return nil, err
		}
		if pos > 0 && neg > 0 {
			set[Pair{Gene: fields[sumGene], Mirna: fields[sumMirna]}] = struct{}{}
		}
	}
}

func count(fields []string, col, row int) (int, error) {
	if col >= len(fields) {
		return 0, &record.FormatError{Row: row, Column: sumNames[col], Reason: "missing"}
	}
	v, err := strconv.Atoi(strings.TrimSpace(fields[col]))
	if err != nil {
		return 0, &record.FormatError{Row: row, Column: sumNames[col],
			Reason: fmt.Sprintf("not an integer: %q", fields[col])}
	}
	return v, nil
}

// Stats counts split rows.
type Stats struct {
	Rows       int
	Kept       int
	Conflicted int
}

// Split copies the header and every row of src whose pair is not in set to
// keep. Conflicted rows go to only when it is non-nil and are dropped
// otherwise.
func Split(src *tsv.Reader, keep, only io.Writer, set Set, log *slog.Logger) (Stats, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	var st Stats
	kept, keptDone := writers.StartRowWriter(keep, src.Header(), 0)
	var hits chan<- []string
	var hitsDone <-chan error
	if only != nil {
		hits, hitsDone = writers.StartRowWriter(only, src.Header(), 0)
	}

	var err error
	for {
		var fields []string
		var n int
		fields, n, err = src.Next()
		if err != nil {
			break
		}
		st.Rows++
		if len(fields) <= record.ColMiRNA {
			err = &record.FormatError{Row: n, Reason: fmt.Sprintf("%d fields, need a gene and a miRNA", len(fields))}
			break
		}
		if !set.Has(fields[record.ColGeneName], fields[record.ColMiRNA]) {
			st.Kept++
			kept <- fields
			continue
		}
		st.Conflicted++
		if hits != nil {
			hits <- fields
		}
	}
	close(kept)
	werr := <-keptDone
	if hits != nil {
		close(hits)
		if herr := <-hitsDone; werr == nil {
			werr = herr
		}
	}

	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		return st, err
	}
	if werr != nil {
		return st, fmt.Errorf("write: %w", werr)
	}
	log.Info("conflicts split", "rows", st.Rows, "kept", st.Kept, "conflicted", st.Conflicted)
	return st, nil
}
