package mapping

import "github.com/matzehuels/assetmap/pkg/errors"

// Routing selects which display instances carry a projected edge when an
// endpoint has more than one instance.
type Routing uint8

const (
	// RouteFirstInstance connects the first instance of each endpoint.
	RouteFirstInstance Routing = iota
	// RouteAllPairs connects every source instance to every target instance.
	RouteAllPairs
)

// Routing names accepted by ParseRouting.
const (
	RoutingFirst    = "first"
	RoutingAllPairs = "all-pairs"
)

func (r Routing) String() string {
	switch r {
	case RouteAllPairs:
		return RoutingAllPairs
	default:
		return RoutingFirst
	}
}

// ParseRouting parses a routing name. The empty string selects RouteFirstInstance.
func ParseRouting(s string) (Routing, error) {
	switch s {
	case "", RoutingFirst:
		return RouteFirstInstance, nil
	case RoutingAllPairs:
		return RouteAllPairs, nil
	}
	return RouteFirstInstance, errors.New(errors.ErrCodeInvalidRouting,
		"invalid routing: %q (must be one of: %s, %s)", s, RoutingFirst, RoutingAllPairs)
}

// pairs returns the (source, target) instance pairs for one logical edge.
// Both slices must be non-empty.
func (r Routing) pairs(from, to []ID) [][2]ID {
	if r != RouteAllPairs {
		return [][2]ID{{from[0], to[0]}}
	}
	out := make([][2]ID, 0, len(from)*len(to))
	for _, f := range from {
		for _, t := range to {
			out = append(out, [2]ID{f, t})
		}
	}
	return out
}
