package annotate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"mirpair/internal/config"
	"mirpair/internal/pipeline"
	"mirpair/internal/record"
	"mirpair/internal/tsv"
)

// Output formats.
const (
	FormatTSV   = "tsv"
	FormatJSONL = "jsonl"
)

// Options controls one annotation run.
type Options struct {
	Threads         int
	Format          string // FormatTSV (default) or FormatJSONL
	FailurePolicy   string // config.PolicyEmpty or config.PolicyOmit
	StrictAlignment bool
	Decode          record.DecodeOptions
	Logger          *slog.Logger
}

// Summary counts what happened to the rows of one run.
type Summary struct {
	Rows      int
	Annotated int            // rows with a non-empty cell
	Failed    map[string]int // by kind
	Omitted   int
}

// Failures is the total number of failed rows.
func (s Summary) Failures() int {
	n := 0
	for _, v := range s.Failed {
		n += v
	}
	return n
}

type rowIn struct {
	fields []string
	row    int
}

// rowOut is a processed row on its way to the sink.
type rowOut struct {
	row    int
	fields []string
	rec    *record.PredictionRecord // nil when decoding failed
	cell   Cell
	kind   string // empty on success
	err    error
}

// Run reads every row from src, appends ann's column and writes the result
// to out in the configured format. Row order is preserved.
func Run(ctx context.Context, src *tsv.Reader, out io.Writer, ann Annotator, o Options) (Summary, error) {
	log := o.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	sum := Summary{Failed: map[string]int{}}

	snk, err := openSink(o.Format, out, src.Header(), ann.Column(), o.Threads*4)
	if err != nil {
		return sum, err
	}

	next := func() (rowIn, error) {
		f, n, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return rowIn{}, io.EOF
			}
			return rowIn{}, fmt.Errorf("read: %w", err)
		}
		return rowIn{fields: f, row: n}, nil
	}

	work := func(_ context.Context, in rowIn) (rowOut, error) {
		res := rowOut{row: in.row, fields: in.fields}
		rec, err := record.Decode(in.fields, in.row, o.Decode)
		if err == nil {
			res.rec = &rec
			res.cell, err = ann.Annotate(rec, log)
		}
		if err == nil {
			return res, nil
		}
		res.kind, res.err = Classify(err), err
		if o.StrictAlignment && res.kind == KindAlignment {
			return rowOut{}, &RowError{Row: in.row, Kind: res.kind, Err: err}
		}
		log.Warn("row failed", "row", in.row, "gene", field(in.fields, record.ColGeneName),
			"mirna", field(in.fields, record.ColMiRNA), "kind", res.kind, "err", err)
		return res, nil
	}

	visit := func(r rowOut) error {
		sum.Rows++
		switch {
		case r.kind != "":
			sum.Failed[r.kind]++
			if o.FailurePolicy == config.PolicyOmit {
				sum.Omitted++
				return nil
			}
		case r.cell.Text != "":
			sum.Annotated++
		}
		return snk.emit(ctx, r)
	}

	perr := pipeline.ForEachOrdered(ctx, pipeline.Config{Threads: o.Threads}, next, work, visit)
	werr := snk.close()

	if perr != nil {
		return sum, perr
	}
	if werr != nil {
		return sum, fmt.Errorf("write: %w", werr)
	}
	log.Info("annotation done", "column", ann.Column(), "rows", sum.Rows,
		"annotated", sum.Annotated, "failed", sum.Failures(), "omitted", sum.Omitted)
	return sum, nil
}

func field(f []string, i int) string {
	if i < len(f) {
		return f[i]
	}
	return ""
}
