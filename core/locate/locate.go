// Package locate maps an absolute transcript coordinate onto a rendered
// duplex and reports whether the nucleotide there is bonded.
package locate

import (
	"mirpair/core/duplex"
)

// DefaultMarker replaces the bond glyph at a queried bonded position.
const DefaultMarker = '{'

// Window is a site window in absolute, inclusive transcript coordinates.
type Window struct {
	Start, End      int
	TranscriptStart int // first coordinate of the transcript (0 for miRAW)
}

// Len is the number of nucleotides in the window.
func (w Window) Len() int { return w.End - w.Start + 1 }

// Contains reports whether pos lies inside the window.
func (w Window) Contains(pos int) bool { return pos >= w.Start && pos <= w.End }

// Status is the outcome of a lookup.
type Status int

const (
	NotInWindow Status = iota
	NoBond
	Bond
)

func (s Status) String() string {
	switch s {
	case NotInWindow:
		return "not-in-window"
	case NoBond:
		return "no-bond"
	case Bond:
		return "bond"
	default:
		return "unknown"
	}
}

// Binding is the answer to one position query.
type Binding struct {
	Status      Status
	Position    int
	WindowIndex int            // distance from the window's 3' end; -1 outside the window
	SiteIndex   int            // nucleotide index in the drawn site, from its 3' end; -1 when not drawn
	Column      int            // diagram column; -1 when not found
	Diagram     duplex.Diagram // annotated copy, set only for Bond
}

// Bonded reports whether the position carries a bond.
func (b Binding) Bonded() bool { return b.Status == Bond }

// WindowIndex converts pos into a distance from the window's 3' end on the
// predictor's 40-nt frame. A short window that starts at the transcript's
// first nucleotide has no missing 3' flank, so it is measured from its own end.
func WindowIndex(w Window, pos int) (int, bool) {
	if !w.Contains(pos) {
		return -1, false
	}
	if w.Len() < duplex.MaxWindowLength && w.Start == w.TranscriptStart {
		return w.End - pos, true
	}
	return duplex.MaxWindowLength - 1 - (pos - w.Start), true
}

// Column finds the column of the target-th non-gap symbol in a gapped UTR
// line, so bulges inserted while rendering do not shift the lookup.
func Column(utrLine string, target int) (int, bool) {
	if target < 0 {
		return -1, false
	}
	seen := 0
	for c := 0; c < len(utrLine); c++ {
		if utrLine[c] == duplex.GapGlyph {
			continue
		}
		if seen == target {
			return c, true
		}
		seen++
	}
	return -1, false
}

// SiteIndex returns the 3'-counted index of pos among the nucleotides d was
// drawn from. The drawn site starts at w.Start; a site trimmed to the 40-nt
// frame drops its 3' tail. Diagrams without SiteLen fall back to idx.
func SiteIndex(d duplex.Diagram, w Window, pos, idx int) (int, bool) {
	if d.SiteLen <= 0 {
		return idx, idx >= 0
	}
	r := w.Start + d.SiteLen - 1 - pos
	if r < 0 || r >= d.SiteLen {
		return -1, false
	}
	return r, true
}

// Locate answers whether pos is bonded in d. The lookup follows the shift d
// was framed with, so the column found always holds the nucleotide at pos.
// Nucleotides shifted out of the diagram are NoBond. A bonded column is
// marked with marker (DefaultMarker when zero) in the returned diagram.
func Locate(d duplex.Diagram, w Window, pos int, marker byte) Binding {
	b := Binding{Position: pos, WindowIndex: -1, SiteIndex: -1, Column: -1}
	idx, ok := WindowIndex(w, pos)
	if !ok {
		b.Status = NotInWindow
		return b
	}
	b.WindowIndex = idx
	b.Status = NoBond

	r, ok := SiteIndex(d, w, pos, idx)
	if !ok {
		return b
	}
	b.SiteIndex = r

	col, ok := Column(d.UTRLine, r+d.Offset)
	if !ok {
		return b
	}
	b.Column = col
	if col < len(d.BondLine) && d.BondLine[col] == duplex.BondGlyph {
		if marker == 0 {
			marker = DefaultMarker
		}
		b.Status = Bond
		b.Diagram = d.WithBondGlyph(col, marker)
	}
	return b
}
