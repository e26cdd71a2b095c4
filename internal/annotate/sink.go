package annotate

import (
	"context"
	"fmt"
	"io"

	"mirpair/core/duplex"
	"mirpair/internal/record"
	"mirpair/internal/writers"
	"mirpair/pkg/api"
)

type sink interface {
	emit(ctx context.Context, r rowOut) error
	close() error
}

func openSink(format string, out io.Writer, header []string, column string, bufSize int) (sink, error) {
	switch format {
	case "", FormatTSV:
		h := make([]string, 0, len(header)+1)
		h = append(h, header...)
		h = append(h, column)
		ch, done := writers.StartRowWriter(out, h, bufSize)
		return &tsvSink{ch: ch, done: done}, nil
	case FormatJSONL:
		ch, done := writers.StartAnnotationJSONLWriter(out, bufSize)
		return &jsonlSink{ch: ch, done: done, column: column}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want %s or %s)", format, FormatTSV, FormatJSONL)
	}
}

type tsvSink struct {
	ch   chan<- []string
	done <-chan error
}

func (s *tsvSink) emit(ctx context.Context, r rowOut) error {
	line := make([]string, 0, len(r.fields)+1)
	line = append(line, r.fields...)
	line = append(line, r.cell.Text)
	select {
	case s.ch <- line:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *tsvSink) close() error {
	close(s.ch)
	return <-s.done
}

type jsonlSink struct {
	ch     chan<- api.AnnotationV1
	done   <-chan error
	column string
}

func (s *jsonlSink) emit(ctx context.Context, r rowOut) error {
	select {
	case s.ch <- toAPI(r, s.column):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *jsonlSink) close() error {
	close(s.ch)
	return <-s.done
}

// toAPI converts a processed row to the v1 wire type.
func toAPI(r rowOut, column string) api.AnnotationV1 {
	a := api.AnnotationV1{
		Row:      r.row,
		GeneName: field(r.fields, record.ColGeneName),
		MirnaID:  field(r.fields, record.ColMiRNA),
		Column:   column,
	}
	if r.rec != nil {
		a.SiteStart, a.SiteEnd = r.rec.SiteStart, r.rec.SiteEnd
		a.PairStartInSite = r.rec.PairStartInSite
	}
	if r.err != nil {
		a.ErrorKind, a.Error = r.kind, r.err.Error()
		return a
	}
	d := r.cell.Diagram
	if b := r.cell.Binding; b != nil {
		a.Binding = &api.BindingV1{
			Position:    b.Position,
			Status:      b.Status.String(),
			WindowIndex: b.WindowIndex,
			SiteIndex:   b.SiteIndex,
			Column:      b.Column,
		}
		if b.Bonded() {
			d = b.Diagram
		}
	}
	if !d.IsZero() {
		a.Diagram = toAPIDiagram(d)
		a.BondCount = r.cell.Diagram.Bonds()
	}
	return a
}

func toAPIDiagram(d duplex.Diagram) *api.DiagramV1 {
	return &api.DiagramV1{Mirna: d.MirnaLine, Bonds: d.BondLine, UTR: d.UTRLine}
}
