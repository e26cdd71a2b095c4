// internal/record/record.go
package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mirpair/core/duplex"
	"mirpair/core/locate"
)

// ErrFormat is wrapped by every row decoding failure.
var ErrFormat = errors.New("format error")

// FormatError describes a row that does not follow Schema.
type FormatError struct {
	Row    int
	Column string // empty for whole-row problems
	Reason string
}

func (e *FormatError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("row %d: column %s: %s", e.Row, e.Column, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// PredictionRecord is one decoded miRAW target-site row.
type PredictionRecord struct {
	Row int // 1-based data row (header excluded)

	GeneName string
	MirnaID  string

	SiteStart int // inclusive
	SiteEnd   int // inclusive

	Prediction      float64
	PairStartInSite int
	SeedStart       int
	SeedEnd         int
	MFE             float64

	SiteTranscript  string
	MatureMirna     string
	BracketNotation string

	Fields []string // the raw row, written back verbatim
}

// DecodeOptions controls coordinate handling.
type DecodeOptions struct {
	// SiteEndExclusive is true for miRAW output, whose SiteEnd is one past
	// the last nucleotide of the window.
	SiteEndExclusive bool
}

// Decode builds a record from a raw row. Extra trailing columns are kept in
// Fields.
func Decode(fields []string, row int, opt DecodeOptions) (PredictionRecord, error) {
	if len(fields) < NumColumns {
		return PredictionRecord{}, &FormatError{Row: row, Reason: fmt.Sprintf("%d columns, want at least %d", len(fields), NumColumns)}
	}
	r := PredictionRecord{
		Row:             row,
		GeneName:        fields[ColGeneName],
		MirnaID:         fields[ColMiRNA],
		SiteTranscript:  strings.ToUpper(strings.TrimSpace(fields[ColSiteTranscript])),
		MatureMirna:     strings.ToUpper(strings.TrimSpace(fields[ColMatureMiRNATranscript])),
		BracketNotation: strings.TrimSpace(fields[ColBracketNotation]),
		Fields:          fields,
	}

	var err error
	ints := []struct {
		col int
		dst *int
	}{
		{ColSiteStart, &r.SiteStart},
		{ColSiteEnd, &r.SiteEnd},
		{ColPairStartInSite, &r.PairStartInSite},
		{ColSeedStart, &r.SeedStart},
		{ColSeedEnd, &r.SeedEnd},
	}
	for _, f := range ints {
		if *f.dst, err = parseInt(fields, f.col, row); err != nil {
			return PredictionRecord{}, err
		}
	}
	if r.Prediction, err = parseFloat(fields, ColPrediction, row); err != nil {
		return PredictionRecord{}, err
	}
	if r.MFE, err = parseFloat(fields, ColMFE, row); err != nil {
		return PredictionRecord{}, err
	}

	if opt.SiteEndExclusive {
		r.SiteEnd--
	}
	if r.SiteEnd < r.SiteStart {
		return PredictionRecord{}, &FormatError{Row: row, Column: Schema[ColSiteEnd].Name,
			Reason: fmt.Sprintf("window end %d before start %d", r.SiteEnd, r.SiteStart)}
	}
	return r, nil
}

// DuplexInput is the part of the record the duplex renderer consumes.
func (r PredictionRecord) DuplexInput() duplex.Input {
	return duplex.Input{
		SiteTranscript:  r.SiteTranscript,
		MatureMirna:     r.MatureMirna,
		BracketNotation: r.BracketNotation,
		PairStartInSite: r.PairStartInSite,
	}
}

// Window returns the site window for position lookups.
func (r PredictionRecord) Window(transcriptStart int) locate.Window {
	return locate.Window{Start: r.SiteStart, End: r.SiteEnd, TranscriptStart: transcriptStart}
}

func parseInt(fields []string, col, row int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(fields[col]))
	if err != nil {
		return 0, &FormatError{Row: row, Column: Schema[col].Name, Reason: fmt.Sprintf("not an integer: %q", fields[col])}
	}
	return v, nil
}

func parseFloat(fields []string, col, row int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[col]), 64)
	if err != nil {
		return 0, &FormatError{Row: row, Column: Schema[col].Name, Reason: fmt.Sprintf("not a number: %q", fields[col])}
	}
	return v, nil
}
