package mapping

import (
	"fmt"
	"slices"
)

// Shape is an identifier-free description of a Result. Two passes over the
// same input have equal shapes even though their identifiers differ.
type Shape struct {
	Compounds []string // "group:Web in system:Prod (2)"
	Instances []string // "A as group:Web in group:Web"
	Edges     []string // "e1: A@group:Web -> C@system:Prod"
}

// Equal reports whether two shapes describe the same structure.
func (s Shape) Equal(o Shape) bool {
	return slices.Equal(s.Compounds, o.Compounds) &&
		slices.Equal(s.Instances, o.Instances) &&
		slices.Equal(s.Edges, o.Edges)
}

// Shape builds the structural description of r.
func (r *Result) Shape() Shape {
	compounds := make(map[ID]Compound, len(r.Compounds))
	for _, c := range r.Compounds {
		compounds[c.ID] = c
	}
	parent := func(id ID) string {
		if id.IsZero() {
			return "root"
		}
		return compounds[id].Membership().Key()
	}

	instances := make(map[ID]Instance, len(r.Instances))
	s := Shape{
		Compounds: make([]string, 0, len(r.Compounds)),
		Instances: make([]string, 0, len(r.Instances)),
		Edges:     make([]string, 0, len(r.Edges)),
	}

	for _, c := range r.Compounds {
		s.Compounds = append(s.Compounds,
			fmt.Sprintf("%s in %s (%d)", c.Membership().Key(), parent(c.Parent), c.Members))
	}
	for _, in := range r.Instances {
		instances[in.ID] = in
		s.Instances = append(s.Instances,
			fmt.Sprintf("%s as %s in %s", in.NodeID, in.Membership, parent(in.Parent)))
	}
	for _, e := range r.Edges {
		from, to := instances[e.From], instances[e.To]
		s.Edges = append(s.Edges,
			fmt.Sprintf("%s: %s@%s -> %s@%s", e.EdgeID, from.NodeID, from.Membership, to.NodeID, to.Membership))
	}

	return s
}
