// internal/tsv/reader.go
package tsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Reader reads tab-separated rows with a leading header line. Quoted fields
// may span lines, which is how multi-line diagrams are stored.
type Reader struct {
	cr     *csv.Reader
	header []string
	row    int
	closer io.Closer
}

// NewReader wraps r and consumes the header line.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	h, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty input: missing header line")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	return &Reader{cr: cr, header: h}, nil
}

// Open opens path for reading; "-" is stdin.
func Open(path string) (*Reader, error) {
	if path == "-" {
		return NewReader(os.Stdin)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(fh)
	if err != nil {
		_ = fh.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.closer = fh
	return r, nil
}

// Header returns the header fields.
func (r *Reader) Header() []string { return r.header }

// Next returns the next row and its 1-based data row number. It returns
// io.EOF after the last row.
func (r *Reader) Next() ([]string, int, error) {
	rec, err := r.cr.Read()
	if err != nil {
		return nil, 0, err
	}
	r.row++
	return rec, r.row, nil
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
