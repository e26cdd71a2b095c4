// core/duplex/diagram.go
package duplex

import "strings"

const (
	BondGlyph = '|'
	GapGlyph  = '-'
)

// Diagram is the three-line duplex drawing. All lines have the same length.
type Diagram struct {
	MirnaLine string // 5'→3'
	BondLine  string
	UTRLine   string // 3'→5'

	// Offset is the shift applied to the UTR line when it was framed: the
	// site nucleotide r places from the 3' end is the (r+Offset)-th non-gap
	// symbol of UTRLine. Negative offsets push nucleotides off the front.
	Offset int
	// SiteLen is the number of site nucleotides the diagram was drawn from;
	// zero when unknown.
	SiteLen int
}

// Width is the number of columns.
func (d Diagram) Width() int { return len(d.BondLine) }

// Bonds counts the bond glyphs.
func (d Diagram) Bonds() int { return strings.Count(d.BondLine, string(BondGlyph)) }

// IsZero reports whether the diagram is empty.
func (d Diagram) IsZero() bool { return d.MirnaLine == "" && d.BondLine == "" && d.UTRLine == "" }

// WithBondGlyph returns a copy with the bond line glyph at col replaced by g.
func (d Diagram) WithBondGlyph(col int, g byte) Diagram {
	if col < 0 || col >= len(d.BondLine) {
		return d
	}
	b := []byte(d.BondLine)
	b[col] = g
	d.BondLine = string(b)
	return d
}

// String renders the labelled block written into the Pairing column.
func (d Diagram) String() string {
	var b strings.Builder
	b.Grow(3*d.Width() + 40)
	b.WriteString("5' ")
	b.WriteString(d.MirnaLine)
	b.WriteString("  3' miRNA\n   ")
	b.WriteString(d.BondLine)
	b.WriteString("\n3' ")
	b.WriteString(d.UTRLine)
	b.WriteString("  5' mRNA")
	return b.String()
}
