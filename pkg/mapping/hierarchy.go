package mapping

// resolveHierarchy returns group -> containing system for every group that
// nests inside a system compound.
//
// A group with at least MinCompoundMembers members nests inside system S iff
// its members reference exactly one distinct system S, every member references
// S, and S qualifies as a compound. Groups spanning several systems stay
// top-level.
func resolveHierarchy(a *analysis) map[string]string {
	nesting := make(map[string]string)

	for _, g := range a.groups.names {
		members := a.groups.members[g]
		if len(members) < MinCompoundMembers {
			continue
		}

		var system string
		refs := 0
		crossSystem := false
		for _, node := range members {
			for _, s := range a.sets[node].systems {
				if system == "" {
					system = s
				}
				if s != system {
					crossSystem = true
					break
				}
				refs++
			}
			if crossSystem {
				break
			}
		}

		if crossSystem || system == "" {
			continue
		}
		if refs != len(members) || !a.systems.qualifies(system) {
			continue
		}
		nesting[g] = system
	}

	return nesting
}
