// internal/record/schema.go
package record

// Column is one field of a miRAW target-site row.
type Column struct {
	Index int
	Name  string
}

// Column positions in miRAW *TargetSites.csv files. Rows are decoded by
// position; the header is carried through untouched.
const (
	ColGeneName = iota
	ColMiRNA
	ColSiteStart
	ColSiteEnd
	ColPrediction
	ColPairStartInSite
	ColSeedStart
	ColSeedEnd
	ColPairs
	ColWC
	ColWob
	ColMFE
	ColComment
	ColSiteTranscript
	ColMatureMiRNATranscript
	ColBracketNotation
	ColAdditionalProperties

	NumColumns
)

// Schema lists every column in file order.
var Schema = [NumColumns]Column{
	{ColGeneName, "GeneName"},
	{ColMiRNA, "miRNA"},
	{ColSiteStart, "SiteStart"},
	{ColSiteEnd, "SiteEnd"},
	{ColPrediction, "Prediction"},
	{ColPairStartInSite, "PairStartInSite"},
	{ColSeedStart, "SeedStart"},
	{ColSeedEnd, "SeedEnd"},
	{ColPairs, "Pairs"},
	{ColWC, "WC"},
	{ColWob, "Wob"},
	{ColMFE, "MFE"},
	{ColComment, "Comment"},
	{ColSiteTranscript, "SiteTranscript"},
	{ColMatureMiRNATranscript, "MatureMiRNATranscript"},
	{ColBracketNotation, "BracketNotation"},
	{ColAdditionalProperties, "AdditionalProperties"},
}

// Header returns the column names in file order.
func Header() []string {
	h := make([]string, NumColumns)
	for i, c := range Schema {
		h[i] = c.Name
	}
	return h
}
