// core/duplex/build.go
package duplex

import (
	"mirpair/core/notation"
	"mirpair/core/seq"
)

// Input is the slice of a prediction the duplex needs.
type Input struct {
	SiteTranscript  string // DNA, 5'→3'
	MatureMirna     string // RNA, 5'→3'
	BracketNotation string // UTR side first
	PairStartInSite int
}

// Result is everything Build derives for one prediction.
type Result struct {
	Rendering
	Aligned           AlignedNotation
	UTRPairsRemoved   int
	MirnaPairsRemoved int
	SiteTrimmed       bool // the site was longer than the window the notation covers
}

// Build splits, cleans, aligns and renders one prediction.
func Build(in Input) (Result, error) {
	var res Result
	site := in.SiteTranscript
	if len(site) > MaxWindowLength && len(in.BracketNotation) == MaxWindowLength+len(in.MatureMirna) {
		site = site[:MaxWindowLength]
		res.SiteTrimmed = true
	}

	utrRaw, mirnaRaw, err := notation.Split(in.BracketNotation, len(site), len(in.MatureMirna))
	if err != nil {
		return Result{}, err
	}
	utrClean, nu := notation.CleanUTR(utrRaw)
	mirnaClean, nm := notation.CleanMirna(mirnaRaw)
	res.UTRPairsRemoved, res.MirnaPairsRemoved = nu, nm

	res.Aligned = Align(utrClean, mirnaClean, in.PairStartInSite)
	r, err := Render(res.Aligned, seq.ReverseTranscribe(site), in.MatureMirna)
	if err != nil {
		return Result{}, err
	}
	res.Rendering = r
	return res, nil
}
