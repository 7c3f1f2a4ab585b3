package mapping

// Compound is a container for a qualifying system or group.
type Compound struct {
	ID      ID
	Kind    Kind
	Name    string
	Parent  ID  // zero for top-level compounds
	Members int // raw distinct member count
}

// Membership returns the membership the compound represents.
func (c Compound) Membership() Membership { return Membership{Kind: c.Kind, Name: c.Name} }

// buildCompounds emits system compounds, then group compounds. Systems come
// first so that nested groups can reference their parent's ID.
func buildCompounds(mc *mappingContext, a *analysis, nesting map[string]string) []Compound {
	var out []Compound

	for _, s := range a.systems.names {
		if !a.systems.qualifies(s) {
			continue
		}
		c := Compound{
			ID:      mc.ids.generate(prefixSystem),
			Kind:    KindSystem,
			Name:    s,
			Members: a.systems.count(s),
		}
		mc.compounds[c.Membership().Key()] = c.ID
		out = append(out, c)
	}

	for _, g := range a.groups.names {
		if !a.groups.qualifies(g) {
			continue
		}
		c := Compound{
			ID:      mc.ids.generate(prefixGroup),
			Kind:    KindGroup,
			Name:    g,
			Members: a.groups.count(g),
		}
		if s, ok := nesting[g]; ok {
			c.Parent = mc.compoundFor(System(s))
		}
		mc.compounds[c.Membership().Key()] = c.ID
		out = append(out, c)
	}

	return out
}
