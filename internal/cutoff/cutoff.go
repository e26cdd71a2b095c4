// Package cutoff filters miRAW predictions by probability and free energy.
package cutoff

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"mirpair/internal/record"
	"mirpair/internal/tsv"
	"mirpair/internal/writers"
)

// Filter keeps rows whose |Prediction| >= Prob and |MFE| >= Energy. A zero
// threshold disables that test.
type Filter struct {
	Prob   float64 // in [0,1]
	Energy float64 // <= 0, compared by magnitude
}

// NewFilter validates the thresholds.
func NewFilter(prob, energy float64) (Filter, error) {
	if math.IsNaN(prob) || math.Abs(prob) > 1 {
		return Filter{}, fmt.Errorf("probability cutoff must be between 0 and 1, got %v", prob)
	}
	if math.IsNaN(energy) || energy > 0 {
		return Filter{}, fmt.Errorf("energy cutoff must be <= 0, got %v", energy)
	}
	return Filter{Prob: math.Abs(prob), Energy: math.Abs(energy)}, nil
}

// Active reports whether any threshold is set.
func (f Filter) Active() bool { return f.Prob != 0 || f.Energy != 0 }

// Keep applies the thresholds to one raw row.
func (f Filter) Keep(fields []string, row int) (bool, error) {
	checks := []struct {
		col int
		min float64
	}{
		{record.ColPrediction, f.Prob},
		{record.ColMFE, f.Energy},
	}
	for _, c := range checks {
		if c.min == 0 {
			continue
		}
		if c.col >= len(fields) {
			return false, &record.FormatError{Row: row, Column: record.Schema[c.col].Name, Reason: "missing"}
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[c.col]), 64)
		if err != nil {
			return false, &record.FormatError{Row: row, Column: record.Schema[c.col].Name,
				Reason: fmt.Sprintf("not a number: %q", fields[c.col])}
		}
		if math.Abs(v) < c.min {
			return false, nil
		}
	}
	return true, nil
}

// Stats counts kept and dropped rows.
type Stats struct {
	Rows    int
	Kept    int
	Dropped int
}

// Apply copies the header and every kept row from src to out. A row whose
// threshold column is not a number aborts the run.
func Apply(src *tsv.Reader, out io.Writer, f Filter, log *slog.Logger) (Stats, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	var st Stats
	rows, done := writers.StartRowWriter(out, src.Header(), 0)

	var err error
	for {
		var fields []string
		var n int
		fields, n, err = src.Next()
		if err != nil {
			break
		}
		st.Rows++
		var keep bool
		if keep, err = f.Keep(fields, n); err != nil {
			break
		}
		if !keep {
			st.Dropped++
			continue
		}
		st.Kept++
		rows <- fields
	}
	close(rows)
	werr := <-done

	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		return st, err
	}
	if werr != nil {
		return st, fmt.Errorf("write: %w", werr)
	}
	log.Info("cutoff done", "prob", f.Prob, "energy", -f.Energy, "rows", st.Rows, "kept", st.Kept, "dropped", st.Dropped)
	return st, nil
}
