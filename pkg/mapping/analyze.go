package mapping

import "github.com/matzehuels/assetmap/pkg/inventory"

// MinCompoundMembers is the smallest member count for which a system or
// group materializes as a compound. Singletons never become containers.
const MinCompoundMembers = 2

// Conflict lists a node that belongs to more than one system or group.
// Conflicts are informational: multi-membership is resolved by duplication.
type Conflict struct {
	NodeID      string
	Memberships []Membership
}

// memberSet is a node's deduplicated system and group names.
type memberSet struct {
	systems []string
	groups  []string
}

// analysis is the output of the membership stage.
type analysis struct {
	systems   index
	groups    index
	sets      []memberSet // parallel to the input nodes
	conflicts []Conflict
}

// analyze scans nodes and builds the system and group member indexes.
// A node is counted once per distinct name, however often it lists it.
func analyze(nodes []inventory.Node) *analysis {
	a := &analysis{
		systems: newIndex(),
		groups:  newIndex(),
		sets:    make([]memberSet, len(nodes)),
	}

	for i, n := range nodes {
		set := memberSet{systems: dedupe(n.Systems), groups: dedupe(n.Groups)}
		a.sets[i] = set

		for _, s := range set.systems {
			a.systems.add(s, i)
		}
		for _, g := range set.groups {
			a.groups.add(g, i)
		}

		if len(set.systems)+len(set.groups) > 1 {
			ms := make([]Membership, 0, len(set.systems)+len(set.groups))
			for _, s := range set.systems {
				ms = append(ms, System(s))
			}
			for _, g := range set.groups {
				ms = append(ms, Group(g))
			}
			a.conflicts = append(a.conflicts, Conflict{NodeID: n.ID, Memberships: ms})
		}
	}

	return a
}
