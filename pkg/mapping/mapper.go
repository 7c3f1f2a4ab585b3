package mapping

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetmap/pkg/inventory"
)

// Options configures a Mapper.
type Options struct {
	// Routing selects how edges between multi-instance nodes are projected.
	Routing Routing

	// Pass pins the identifier pass token. When empty, every call draws a
	// fresh random token, so identifiers differ between calls.
	Pass string

	// Logger receives debug diagnostics and dropped-edge warnings.
	// Nil discards all output.
	Logger *log.Logger
}

// Mapper converts inventories into compound graphs.
//
// A Mapper holds only configuration; all per-call state lives in a fresh
// context, so one Mapper can be used from multiple goroutines.
type Mapper struct {
	routing Routing
	pass    string
	logger  *log.Logger
}

// New creates a Mapper.
func New(opts Options) *Mapper {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Mapper{
		routing: opts.Routing,
		pass:    opts.Pass,
		logger:  logger,
	}
}

// Map runs the full pipeline on an inventory with default options.
func Map(inv inventory.Inventory) (*Result, error) {
	return New(Options{}).Map(inv.Nodes, inv.Edges)
}

// Map validates the input and builds the compound graph.
//
// Map fails fast when a node has no identity, when two nodes share an
// identity, or when an edge has no identity. Edges whose endpoints are not
// in nodes are dropped and reported in Result.Warnings. The inputs are not
// modified.
func (m *Mapper) Map(nodes []inventory.Node, edges []inventory.Edge) (*Result, error) {
	if err := inventory.ValidateNodes(nodes); err != nil {
		return nil, err
	}
	if err := inventory.ValidateEdges(edges); err != nil {
		return nil, err
	}

	pass := m.pass
	if pass == "" {
		pass = newPass()
	}
	mc := newMappingContext(pass)

	a := analyze(nodes)
	m.logger.Debug("analyzed memberships",
		"nodes", len(nodes),
		"systems", len(a.systems.names),
		"groups", len(a.groups.names),
		"conflicts", len(a.conflicts))

	nesting := resolveHierarchy(a)
	for _, g := range a.groups.names {
		if s, ok := nesting[g]; ok {
			m.logger.Debug("nested group", "group", g, "system", s)
		}
	}

	compounds := buildCompounds(mc, a, nesting)
	instances := instantiate(mc, nodes, a, nesting)
	projected, warnings := project(mc, edges, m.routing)

	for _, w := range warnings {
		m.logger.Warn("dropped edge with dangling endpoint",
			"edge", w.EdgeID, "from", w.From, "to", w.To, "missing", w.Missing)
	}

	m.logger.Debug("mapped inventory",
		"compounds", len(compounds),
		"instances", len(instances),
		"edges", len(projected),
		"dropped", len(warnings),
		"routing", m.routing)

	return &Result{
		Compounds:   compounds,
		Instances:   instances,
		Edges:       projected,
		Conflicts:   a.conflicts,
		Warnings:    warnings,
		Nesting:     nesting,
		Pass:        pass,
		nodeDisplay: mc.nodeDisplay,
		edgeDisplay: mc.edgeDisplay,
		source:      mc.source,
		compoundIDs: mc.compounds,
	}, nil
}
