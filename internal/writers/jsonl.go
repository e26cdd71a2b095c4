// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"mirpair/internal/jsonlutil"
	"mirpair/pkg/api"
)

// StartAnnotationJSONLWriter streams each annotation as one JSON line (v1).
func StartAnnotationJSONLWriter(out io.Writer, bufSize int) (chan<- api.AnnotationV1, <-chan error) {
	return jsonlutil.Start[api.AnnotationV1](out, bufSize,
		func(enc *json.Encoder, a api.AnnotationV1) error {
			return enc.Encode(a)
		},
		IsBrokenPipe,
	)
}
