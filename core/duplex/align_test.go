// core/duplex/align_test.go
package duplex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dots(n int) string { return strings.Repeat(".", n) }

func TestAlign_NoShiftWhenFirstPairOnAnchor(t *testing.T) {
	an := Align(dots(33)+"((((("+"..", ")))))", 2)
	assert.Equal(t, ".."+"((((("+dots(33), an.UTRSide)
	assert.Equal(t, 0, an.Offset)
	assert.Equal(t, 2, an.Anchor)
	assert.False(t, an.Clamped)
}

func TestAlign_PadsFrontAndTruncatesFullWindow(t *testing.T) {
	an := Align(dots(35)+"(((((", ")))))", 3)
	require.Len(t, an.UTRSide, MaxWindowLength)
	assert.Equal(t, "..."+"((((("+dots(32), an.UTRSide)
	assert.Equal(t, 3, an.Offset)

	utr := strings.Repeat("ACGU", 10)
	framed := an.Frame(utr)
	require.Len(t, framed, MaxWindowLength)
	assert.Equal(t, "   "+utr[:37], framed)
}

func TestAlign_ShiftsLeftWhenFirstPairPastAnchor(t *testing.T) {
	// reversed: 5 dots then the stem
	an := Align(dots(30)+"((((("+dots(5), ")))))", 2)
	assert.Equal(t, "..((((("+dots(33), an.UTRSide)
	assert.Equal(t, -3, an.Offset)

	utr := strings.Repeat("ACGU", 10)
	assert.Equal(t, utr[3:]+"   ", an.Frame(utr))
}

func TestAlign_ShortWindowPadsWithoutTruncation(t *testing.T) {
	// 30-nt window cut at the transcript's 3' end: the predictor counts the
	// pair start on a 40-nt frame.
	an := Align(dots(25)+"(((((", ")))))", 10)
	require.Len(t, an.UTRSide, MaxWindowLength)
	assert.Equal(t, dots(10)+"((((("+dots(25), an.UTRSide)
	assert.Equal(t, 10, an.Offset)

	utr := strings.Repeat("A", 30)
	assert.Equal(t, strings.Repeat(" ", 10)+utr, an.Frame(utr))
}

func TestAlign_ClampsOutOfRangePairStart(t *testing.T) {
	an := Align(dots(39)+"(", ")", 55)
	assert.True(t, an.Clamped)
	assert.Equal(t, MaxWindowLength-1, an.Anchor)

	an = Align("("+dots(39), ")", -4)
	assert.True(t, an.Clamped)
	assert.Equal(t, 0, an.Anchor)
}

func TestAlign_NoPairsLeavesNotation(t *testing.T) {
	an := Align("..........", "....", 7)
	assert.Equal(t, "..........", an.UTRSide)
	assert.Equal(t, 0, an.Offset)
	assert.Equal(t, "ACGU", an.Frame("ACGU"))
}
