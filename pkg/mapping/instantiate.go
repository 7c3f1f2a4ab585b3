package mapping

import (
	"slices"

	"github.com/matzehuels/assetmap/pkg/inventory"
)

// Instance is one visual copy of a source node.
type Instance struct {
	ID             ID
	NodeID         string // original node identity
	Label          string
	Classification string
	Parent         ID         // compound ID, zero when absent
	Membership     Membership // zero for standalone instances
}

// IsStandalone reports whether the instance has no membership.
func (in Instance) IsStandalone() bool { return in.Membership.IsZero() }

// effectiveMemberships returns a node's memberships after deduplication and
// hierarchical filtering: a system is dropped when one of the node's groups is
// nested inside it, since the node already appears inside that group.
func effectiveMemberships(set memberSet, nesting map[string]string) []Membership {
	systems := slices.Clone(set.systems)
	for _, g := range set.groups {
		if parent, ok := nesting[g]; ok {
			systems = slices.DeleteFunc(systems, func(s string) bool { return s == parent })
		}
	}

	ms := make([]Membership, 0, len(set.groups)+len(systems))
	for _, g := range set.groups {
		ms = append(ms, Group(g))
	}
	for _, s := range systems {
		ms = append(ms, System(s))
	}
	return ms
}

// instantiate emits one instance per effective membership of each node, or a
// single standalone instance when none remain. Memberships whose system or
// group did not qualify as a compound produce an instance without parent.
func instantiate(mc *mappingContext, nodes []inventory.Node, a *analysis, nesting map[string]string) []Instance {
	out := make([]Instance, 0, len(nodes))

	for i, n := range nodes {
		ms := effectiveMemberships(a.sets[i], nesting)
		ids := make([]ID, 0, max(len(ms), 1))

		emit := func(m Membership) {
			in := Instance{
				ID:             mc.ids.generate(prefixNode),
				NodeID:         n.ID,
				Label:          n.Label(),
				Classification: n.Classification,
				Membership:     m,
			}
			if !m.IsZero() {
				in.Parent = mc.compoundFor(m)
			}
			ids = append(ids, in.ID)
			out = append(out, in)
		}

		for _, m := range ms {
			emit(m)
		}
		if len(ms) == 0 {
			emit(Membership{})
		}

		mc.recordNode(n.ID, ids)
	}

	return out
}
