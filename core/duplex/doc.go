// Package duplex realigns the two halves of a miRNA:target dot-bracket
// prediction and draws the three-line duplex diagram.
//
// The UTR side is read 3'→5' so that it faces the miRNA read 5'→3'. Column i
// of every line in a Diagram describes the same rung of the duplex.
package duplex
