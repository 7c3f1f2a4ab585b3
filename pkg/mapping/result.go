package mapping

import "slices"

// Result is the output of one mapping pass.
//
// Elements are ordered deterministically: compounds (systems, then groups, in
// first-seen order), then instances in input node order, then edges in input
// edge order.
type Result struct {
	Compounds []Compound
	Instances []Instance
	Edges     []Edge

	// Conflicts lists nodes with more than one membership, in input order.
	Conflicts []Conflict
	// Warnings lists dropped edges, in input order.
	Warnings []Warning
	// Nesting maps nested group names to their containing system name.
	Nesting map[string]string
	// Pass is the token that qualifies every identifier of this pass.
	Pass string

	nodeDisplay map[string][]ID
	edgeDisplay map[string][]ID
	source      map[ID]string
	compoundIDs map[string]ID
}

// Stats summarizes a Result.
type Stats struct {
	Nodes      int `json:"nodes"`      // source nodes
	Instances  int `json:"instances"`
	Compounds  int `json:"compounds"`
	Nested     int `json:"nested"`     // compounds with a parent
	Edges      int `json:"edges"`      // display edges
	Dropped    int `json:"dropped"`    // dropped source edges
	Duplicated int `json:"duplicated"` // source nodes with more than one instance
}

// DisplayIDs returns the display instance IDs of a source node, in emission order.
func (r *Result) DisplayIDs(nodeID string) []ID {
	return slices.Clone(r.nodeDisplay[nodeID])
}

// EdgeDisplayIDs returns the display edge IDs of a source edge.
// Dropped edges return nil.
func (r *Result) EdgeDisplayIDs(edgeID string) []ID {
	return slices.Clone(r.edgeDisplay[edgeID])
}

// SourceOf returns the original node identity of a display instance.
func (r *Result) SourceOf(id ID) (string, bool) {
	s, ok := r.source[id]
	return s, ok
}

// Compound returns the compound for a membership, if it qualified.
func (r *Result) Compound(m Membership) (Compound, bool) {
	id, ok := r.compoundIDs[m.Key()]
	if !ok {
		return Compound{}, false
	}
	for _, c := range r.Compounds {
		if c.ID == id {
			return c, true
		}
	}
	return Compound{}, false
}

// Stats computes summary counts.
func (r *Result) Stats() Stats {
	s := Stats{
		Nodes:     len(r.nodeDisplay),
		Instances: len(r.Instances),
		Compounds: len(r.Compounds),
		Edges:     len(r.Edges),
		Dropped:   len(r.Warnings),
	}
	for _, c := range r.Compounds {
		if !c.Parent.IsZero() {
			s.Nested++
		}
	}
	for _, ids := range r.nodeDisplay {
		if len(ids) > 1 {
			s.Duplicated++
		}
	}
	return s
}
