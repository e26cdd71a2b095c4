// Package annotate turns decoded miRAW predictions into one extra output
// column: the duplex diagram (Pairing) or a bond lookup (BindingAt).
package annotate

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"mirpair/core/duplex"
	"mirpair/core/locate"
	"mirpair/core/notation"
	"mirpair/internal/record"
)

// Cell is the computed annotation for one record.
type Cell struct {
	Text    string          // value of the appended TSV column
	Diagram duplex.Diagram  // rendered duplex; zero when none was built
	Binding *locate.Binding // set by position lookups
}

// Annotator computes the appended column for one record.
type Annotator interface {
	// Column is the header of the appended column.
	Column() string
	// Annotate returns the cell. An error means the row failed and the
	// failure policy decides what is written.
	Annotate(rec record.PredictionRecord, log *slog.Logger) (Cell, error)
}

// Pairing writes the three-line duplex diagram.
type Pairing struct{}

func (Pairing) Column() string { return "Pairing" }

func (Pairing) Annotate(rec record.PredictionRecord, log *slog.Logger) (Cell, error) {
	res, err := build(rec, log)
	if err != nil {
		return Cell{}, err
	}
	return Cell{Text: res.Diagram.String(), Diagram: res.Diagram}, nil
}

// BindingAt writes the diagram with the bond at Pos highlighted, or an empty
// cell when Pos is outside the window or unbonded. Records whose window does
// not contain Pos are not rendered at all.
type BindingAt struct {
	Pos             int
	Marker          byte
	TranscriptStart int
}

func (b BindingAt) Column() string { return "BindingAtPos_" + strconv.Itoa(b.Pos) }

func (b BindingAt) Annotate(rec record.PredictionRecord, log *slog.Logger) (Cell, error) {
	w := rec.Window(b.TranscriptStart)
	if !w.Contains(b.Pos) {
		hit := locate.Binding{Status: locate.NotInWindow, Position: b.Pos, WindowIndex: -1, SiteIndex: -1, Column: -1}
		return Cell{Binding: &hit}, nil
	}
	res, err := build(rec, log)
	if err != nil {
		return Cell{}, err
	}
	hit := locate.Locate(res.Diagram, w, b.Pos, b.Marker)
	if log != nil {
		log.Debug("binding lookup", "row", rec.Row, "pos", b.Pos,
			"status", hit.Status.String(), "window_index", hit.WindowIndex, "column", hit.Column)
	}
	cell := Cell{Diagram: res.Diagram, Binding: &hit}
	if hit.Bonded() {
		cell.Text = hit.Diagram.String()
	}
	return cell, nil
}

func build(rec record.PredictionRecord, log *slog.Logger) (duplex.Result, error) {
	res, err := duplex.Build(rec.DuplexInput())
	if err != nil {
		return duplex.Result{}, err
	}
	if log != nil {
		if res.Aligned.Clamped {
			log.Warn("pair start outside window, clamped",
				"row", rec.Row, "gene", rec.GeneName, "mirna", rec.MirnaID,
				"pair_start", rec.PairStartInSite, "anchor", res.Aligned.Anchor)
		}
		if res.UTRPairsRemoved > 0 || res.MirnaPairsRemoved > 0 {
			log.Debug("intramolecular pairs removed", "row", rec.Row,
				"utr", res.UTRPairsRemoved, "mirna", res.MirnaPairsRemoved)
		}
	}
	return res, nil
}

// Failure kinds, as logged and counted.
const (
	KindFormat    = "format"
	KindNotation  = "notation"
	KindAlignment = "alignment"
	KindSequence  = "sequence"
	KindOther     = "other"
)

// Classify maps a per-record error to its failure kind.
func Classify(err error) string {
	var nfe *notation.FormatError
	switch {
	case errors.Is(err, record.ErrFormat):
		return KindFormat
	case errors.As(err, &nfe):
		return KindNotation
	case errors.Is(err, duplex.ErrAlignmentInconsistency):
		return KindAlignment
	case errors.Is(err, duplex.ErrSequenceLength):
		return KindSequence
	default:
		return KindOther
	}
}

// RowError is a record failure that aborted the run.
type RowError struct {
	Row  int
	Kind string
	Err  error
}

func (e *RowError) Error() string { return fmt.Sprintf("row %d: %s: %v", e.Row, e.Kind, e.Err) }

func (e *RowError) Unwrap() error { return e.Err }
