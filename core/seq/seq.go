// core/seq/seq.go
package seq

import (
	"fmt"
	"strings"
)

var transcribe [256]byte

func init() {
	for c := 0; c < 256; c++ {
		transcribe[c] = byte(c)
	}
	transcribe['T'] = 'U'
	transcribe['t'] = 'u'
}

// Reverse returns s with its bytes in reverse order.
func Reverse(s string) string {
	n := len(s)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = s[n-1-i]
	}
	return string(out)
}

// Transcribe replaces T with U, leaving every other symbol untouched.
func Transcribe(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = transcribe[s[i]]
	}
	return string(out)
}

// ReverseTranscribe turns a 5'→3' DNA window into the 3'→5' RNA strand
// that faces a miRNA read 5'→3'.
func ReverseTranscribe(dna string) string {
	n := len(dna)
	if n == 0 {
		return ""
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = transcribe[dna[n-1-i]]
	}
	return string(out)
}

// Validate uppercases s and rejects anything outside the IUPAC nucleotide
// alphabet (U accepted alongside T).
func Validate(s string) (string, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for i := 0; i < len(up); i++ {
		switch up[i] {
		case 'A', 'C', 'G', 'T', 'U', 'R', 'Y', 'S', 'W', 'K', 'M', 'B', 'D', 'H', 'V', 'N':
		default:
			return "", fmt.Errorf("invalid nucleotide %q at position %d", up[i], i)
		}
	}
	return up, nil
}
