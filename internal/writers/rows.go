// internal/writers/rows.go
package writers

import (
	"encoding/csv"
	"io"
)

// StartRowWriter spins up a writer goroutine for tab-separated rows. The
// header (when non-nil) is written first. After the first write error the
// goroutine keeps draining the channel so senders never block; the error is
// reported once the channel is closed.
func StartRowWriter(out io.Writer, header []string, bufSize int) (chan<- []string, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan []string, bufSize)
	errCh := make(chan error, 1)

	go func() {
		cw := csv.NewWriter(out)
		cw.Comma = '\t'

		var err error
		if header != nil {
			err = cw.Write(header)
		}
		for row := range in {
			if err != nil {
				continue
			}
			err = cw.Write(row)
		}
		if err == nil {
			cw.Flush()
			err = cw.Error()
		}
		errCh <- err
	}()

	return in, errCh
}
