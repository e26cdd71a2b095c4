// pkg/api/annotation_v1.go
package api

// DiagramV1 is the three-line duplex rendering.
type DiagramV1 struct {
	Mirna string `json:"mirna"` // 5'→3'
	Bonds string `json:"bonds"`
	UTR   string `json:"utr"` // 3'→5'
}

// BindingV1 is the answer to a position lookup.
type BindingV1 struct {
	Position    int    `json:"position"`
	Status      string `json:"status"` // "not-in-window" | "no-bond" | "bond"
	WindowIndex int    `json:"window_index"`
	SiteIndex   int    `json:"site_index"`
	Column      int    `json:"column"`
}

// AnnotationV1 is the stable JSONL schema for one annotated prediction.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type AnnotationV1 struct {
	Row             int    `json:"row"`
	GeneName        string `json:"gene"`
	MirnaID         string `json:"mirna"`
	SiteStart       int    `json:"site_start"`
	SiteEnd         int    `json:"site_end"` // inclusive
	PairStartInSite int    `json:"pair_start_in_site"`

	Column    string     `json:"column"` // "Pairing" or "BindingAtPos_<N>"
	Diagram   *DiagramV1 `json:"diagram,omitempty"`
	BondCount int        `json:"bond_count,omitempty"`
	Binding   *BindingV1 `json:"binding,omitempty"`

	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`
}
