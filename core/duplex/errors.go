// core/duplex/errors.go
package duplex

import (
	"errors"
	"fmt"
)

var (
	// ErrAlignmentInconsistency means a bond on one strand has no partner on
	// the other after realignment. It points at a predictor/input mismatch,
	// not at an absence of pairing.
	ErrAlignmentInconsistency = errors.New("alignment inconsistency")

	// ErrSequenceLength means a sequence does not match its notation.
	ErrSequenceLength = errors.New("sequence/notation length mismatch")
)

// AlignmentError locates an inconsistency in the aligned notation.
type AlignmentError struct {
	Column int  // diagram column where the walk stopped
	UTR    byte // UTR-side symbol ('\x00' when that side was exhausted)
	Mirna  byte // miRNA-side symbol ('\x00' when that side was exhausted)
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("%v at column %d (utr %s, mirna %s)",
		ErrAlignmentInconsistency, e.Column, symbol(e.UTR), symbol(e.Mirna))
}

func (e *AlignmentError) Unwrap() error { return ErrAlignmentInconsistency }

func symbol(b byte) string {
	if b == 0 {
		return "<end>"
	}
	return fmt.Sprintf("%q", b)
}
