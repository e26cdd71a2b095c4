// core/duplex/align.go
package duplex

import (
	"bytes"
	"strings"

	"mirpair/core/notation"
	"mirpair/core/seq"
)

// MaxWindowLength is the site window size the predictor scans with.
const MaxWindowLength = 40

// AlignedNotation is the realigned notation pair for one prediction.
type AlignedNotation struct {
	UTRSide   string // cleaned, 3'→5', shifted so the first pair sits at Anchor
	MirnaSide string // 5'→3'
	Offset    int    // >0: padded at the front, <0: shifted left
	Anchor    int    // index in UTRSide where pairing is reported to start
	Clamped   bool   // the reported pair offset fell outside the frame
}

// Align reverses the cleaned UTR notation and shifts it so its first '('
// lands on the reported pair start. pairStart counts from the 3' end of the
// window, which is index 0 once the UTR side is reversed (its 5'→3' window
// index is MaxWindowLength-1-pairStart).
//
// Front padding never grows the notation past max(len(utr), MaxWindowLength);
// symbols pushed beyond that are dropped from the tail.
func Align(utrClean, mirnaClean string, pairStart int) AlignedNotation {
	rev := seq.Reverse(utrClean)
	frame := frameWidth(len(rev))

	an := AlignedNotation{MirnaSide: mirnaClean, Anchor: pairStart}
	switch {
	case an.Anchor < 0:
		an.Anchor, an.Clamped = 0, true
	case an.Anchor > frame-1:
		an.Anchor, an.Clamped = frame-1, true
	}

	first := strings.IndexByte(rev, notation.Open)
	switch {
	case first < 0 || first == an.Anchor:
		an.UTRSide = rev
	case first < an.Anchor:
		shift := an.Anchor - first
		buf := make([]byte, 0, len(rev)+shift)
		buf = append(buf, bytes.Repeat([]byte{notation.Unpaired}, shift)...)
		buf = append(buf, rev...)
		if len(buf) > frame {
			buf = buf[:frame]
		}
		an.UTRSide = string(buf)
		an.Offset = shift
	default:
		shift := first - an.Anchor
		buf := make([]byte, 0, len(rev))
		buf = append(buf, rev[shift:]...)
		buf = append(buf, bytes.Repeat([]byte{notation.Unpaired}, shift)...)
		an.UTRSide = string(buf)
		an.Offset = -shift
	}
	return an
}

// Frame applies the notation's shift to a 3'→5' UTR sequence so that index i
// of the result and of UTRSide name the same nucleotide. Positions without a
// nucleotide are spaces.
func (an AlignedNotation) Frame(utr string) string {
	switch {
	case an.Offset > 0:
		out := strings.Repeat(" ", an.Offset) + utr
		if w := frameWidth(len(utr)); len(out) > w {
			out = out[:w]
		}
		return out
	case an.Offset < 0:
		k := -an.Offset
		if k > len(utr) {
			k = len(utr)
		}
		return utr[k:] + strings.Repeat(" ", k)
	default:
		return utr
	}
}

func frameWidth(n int) int {
	if n < MaxWindowLength {
		return MaxWindowLength
	}
	return n
}
