// core/duplex/render.go
package duplex

import (
	"fmt"

	"mirpair/core/notation"
)

// Rendering is a Diagram plus the gapped notations it was drawn from.
type Rendering struct {
	Diagram       Diagram
	UTRNotation   string // parallel to Diagram.UTRLine
	MirnaNotation string // parallel to Diagram.MirnaLine
}

type lines struct {
	mirna, bond, utr []byte
	mNot, uNot       []byte
}

func newLines(width int) *lines {
	return &lines{
		mirna: make([]byte, 0, width), bond: make([]byte, 0, width), utr: make([]byte, 0, width),
		mNot: make([]byte, 0, width), uNot: make([]byte, 0, width),
	}
}

func (l *lines) emit(m, mn, b, u, un byte) {
	l.mirna = append(l.mirna, m)
	l.mNot = append(l.mNot, mn)
	l.bond = append(l.bond, b)
	l.utr = append(l.utr, u)
	l.uNot = append(l.uNot, un)
}

// Render walks both sides of an aligned notation and draws the duplex.
// utrRNA is the 3'→5' UTR sequence before framing; mirna is 5'→3'.
//
// A '(' facing a '.' puts a gap in the UTR line, a '.' facing a ')' puts a
// gap in the miRNA line. Gaps the miRNA line collects before its first bond
// are drawn as leading spaces instead.
func Render(an AlignedNotation, utrRNA, mirna string) (Rendering, error) {
	utr := an.Frame(utrRNA)
	u, m := an.UTRSide, an.MirnaSide
	if len(utr) != len(u) {
		return Rendering{}, fmt.Errorf("%w: UTR %d nt, notation %d", ErrSequenceLength, len(utr), len(u))
	}
	if len(mirna) != len(m) {
		return Rendering{}, fmt.Errorf("%w: miRNA %d nt, notation %d", ErrSequenceLength, len(mirna), len(m))
	}

	l := newLines(len(u) + len(m))
	firstBond := -1
	i, j := 0, 0
	for i < len(u) || j < len(m) {
		col := len(l.bond)
		switch {
		case i >= len(u):
			if m[j] != notation.Unpaired {
				return Rendering{}, &AlignmentError{Column: col, Mirna: m[j]}
			}
			l.emit(mirna[j], m[j], ' ', ' ', ' ')
			j++
		case j >= len(m):
			if u[i] != notation.Unpaired {
				return Rendering{}, &AlignmentError{Column: col, UTR: u[i]}
			}
			l.emit(' ', ' ', ' ', utr[i], u[i])
			i++
		case u[i] == notation.Open && m[j] == notation.Close:
			if firstBond < 0 {
				firstBond = col
			}
			l.emit(mirna[j], m[j], BondGlyph, utr[i], u[i])
			i, j = i+1, j+1
		case u[i] == notation.Open && m[j] == notation.Unpaired:
			l.emit(mirna[j], m[j], ' ', GapGlyph, GapGlyph)
			j++
		case u[i] == notation.Unpaired && m[j] == notation.Close:
			l.emit(GapGlyph, GapGlyph, ' ', utr[i], u[i])
			i++
		case u[i] == notation.Unpaired && m[j] == notation.Unpaired:
			l.emit(mirna[j], m[j], ' ', utr[i], u[i])
			i, j = i+1, j+1
		default:
			return Rendering{}, &AlignmentError{Column: col, UTR: u[i], Mirna: m[j]}
		}
	}

	if firstBond < 0 {
		firstBond = len(l.bond)
	}
	leadWithSpaces(l.mirna[:firstBond])
	leadWithSpaces(l.mNot[:firstBond])

	return Rendering{
		Diagram: Diagram{
			MirnaLine: string(l.mirna),
			BondLine:  string(l.bond),
			UTRLine:   string(l.utr),
			Offset:    an.Offset,
			SiteLen:   len(utrRNA),
		},
		UTRNotation:   string(l.uNot),
		MirnaNotation: string(l.mNot),
	}, nil
}

// leadWithSpaces moves every gap glyph in b to the front as a space,
// keeping the order of everything else.
func leadWithSpaces(b []byte) {
	w := len(b)
	for r := len(b) - 1; r >= 0; r-- {
		if b[r] == GapGlyph {
			continue
		}
		w--
		b[w] = b[r]
	}
	for k := 0; k < w; k++ {
		b[k] = ' '
	}
}
