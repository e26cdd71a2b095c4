// Package notation splits a combined dot-bracket string into its UTR and
// miRNA halves and strips structure that does not cross strands.
package notation

import (
	"fmt"
	"strings"
)

const (
	Unpaired = '.'
	Open     = '('
	Close    = ')'
)

// FormatError reports a dot-bracket string that cannot describe the
// sequences it came with.
type FormatError struct {
	Kind     string // "length" or "alphabet"
	Got      int
	Want     int
	Position int
	Symbol   byte
}

func (e *FormatError) Error() string {
	switch e.Kind {
	case "alphabet":
		return fmt.Sprintf("notation: invalid symbol %q at %d", e.Symbol, e.Position)
	default:
		return fmt.Sprintf("notation: length %d, want %d (site + miRNA)", e.Got, e.Want)
	}
}

// Split cuts bracket into the UTR side (first utrLen symbols) and the miRNA
// side (the rest). Both keep their original 5'→3' orientation.
func Split(bracket string, utrLen, mirnaLen int) (utr, mirna string, err error) {
	if utrLen < 0 || mirnaLen < 0 || len(bracket) != utrLen+mirnaLen {
		return "", "", &FormatError{Kind: "length", Got: len(bracket), Want: utrLen + mirnaLen}
	}
	if i := strings.IndexFunc(bracket, func(r rune) bool {
		return r != Unpaired && r != Open && r != Close
	}); i >= 0 {
		return "", "", &FormatError{Kind: "alphabet", Position: i, Symbol: bracket[i]}
	}
	return bracket[:utrLen], bracket[utrLen:], nil
}

// CleanUTR flattens intramolecular pairs on the UTR side. The leftmost ')'
// always closes the nearest '(' before it that is still open, so pairs are
// removed innermost first. A ')' with nothing to close is flattened alone.
// It returns the cleaned notation and the number of ')' removed.
func CleanUTR(utr string) (string, int) {
	buf := []byte(utr)
	removed := 0
	for {
		closeAt := indexByte(buf, Close, 0)
		if closeAt < 0 {
			break
		}
		buf[closeAt] = Unpaired
		if openAt := lastIndexByte(buf[:closeAt], Open); openAt >= 0 {
			buf[openAt] = Unpaired
		}
		removed++
	}
	return string(buf), removed
}

// CleanMirna flattens pairs that open and close on the miRNA side, plus any
// '(' left open. What remains are the ')' that close a UTR-side '('.
func CleanMirna(mirna string) (string, int) {
	buf := []byte(mirna)
	removed := 0
	var open []int
	for i, c := range buf {
		switch c {
		case Open:
			open = append(open, i)
		case Close:
			if n := len(open); n > 0 {
				buf[open[n-1]] = Unpaired
				buf[i] = Unpaired
				open = open[:n-1]
				removed++
			}
		}
	}
	for _, i := range open {
		buf[i] = Unpaired
		removed++
	}
	return string(buf), removed
}

// CountPairs returns the number of '(' and ')' in s.
func CountPairs(s string) (open, closed int) {
	return strings.Count(s, string(Open)), strings.Count(s, string(Close))
}

func indexByte(b []byte, c byte, from int) int {
	for i := from; i < len(b); i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}

func lastIndexByte(b []byte, c byte) int {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] == c {
			return i
		}
	}
	return -1
}
