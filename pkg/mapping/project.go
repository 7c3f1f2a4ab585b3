package mapping

import "github.com/matzehuels/assetmap/pkg/inventory"

// Edge is one visual copy of a source edge between two display instances.
type Edge struct {
	ID     ID
	EdgeID string // original edge identity
	From   ID
	To     ID
	Label  string
}

// Warning reports a source edge that was dropped during projection.
type Warning struct {
	EdgeID  string
	From    string
	To      string
	Missing []string // endpoint identities without display instances
}

// project rewrites source edges onto display instances. Edges with an
// endpoint that was never instantiated are dropped and reported.
func project(mc *mappingContext, edges []inventory.Edge, routing Routing) ([]Edge, []Warning) {
	var (
		out      = make([]Edge, 0, len(edges))
		warnings []Warning
	)

	for _, e := range edges {
		from := mc.nodeDisplay[e.From]
		to := mc.nodeDisplay[e.To]

		if len(from) == 0 || len(to) == 0 {
			w := Warning{EdgeID: e.ID, From: e.From, To: e.To}
			if len(from) == 0 {
				w.Missing = append(w.Missing, e.From)
			}
			if len(to) == 0 {
				w.Missing = append(w.Missing, e.To)
			}
			warnings = append(warnings, w)
			continue
		}

		for _, p := range routing.pairs(from, to) {
			pe := Edge{
				ID:     mc.ids.generate(prefixEdge),
				EdgeID: e.ID,
				From:   p[0],
				To:     p[1],
				Label:  e.Relationship,
			}
			mc.recordEdge(e.ID, []ID{pe.ID})
			out = append(out, pe)
		}
	}

	return out, warnings
}
