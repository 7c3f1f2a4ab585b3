// Package inventory defines the input model for the compound-graph mapper.
//
// An [Inventory] is a flat business model: assets ([Node]) that may belong to
// any number of named systems and groups, and logical relationships ([Edge])
// between asset identities. The model is plain data; it is supplied fresh on
// every mapping call and is never modified by the mapper.
//
// Identities are assigned externally and must be unique per inventory. Use
// [Inventory.Validate] to reject malformed input before mapping.
package inventory

import (
	"fmt"

	"github.com/matzehuels/assetmap/pkg/errors"
)

// Node is a business asset.
type Node struct {
	ID             string   `json:"id" toml:"id" bson:"id"`
	Title          string   `json:"title,omitempty" toml:"title" bson:"title,omitempty"`
	Classification string   `json:"classification,omitempty" toml:"classification" bson:"classification,omitempty"`
	Systems        []string `json:"systems,omitempty" toml:"systems" bson:"systems,omitempty"`
	Groups         []string `json:"groups,omitempty" toml:"groups" bson:"groups,omitempty"`
}

// Label returns the display title, falling back to the identity.
func (n Node) Label() string {
	if n.Title != "" {
		return n.Title
	}
	return n.ID
}

// Edge is a logical relationship between two node identities.
type Edge struct {
	ID           string `json:"id" toml:"id" bson:"id"`
	From         string `json:"from" toml:"from" bson:"from"`
	To           string `json:"to" toml:"to" bson:"to"`
	Relationship string `json:"relationship,omitempty" toml:"relationship" bson:"relationship,omitempty"`
}

// Inventory bundles the two input lists of a mapping call.
type Inventory struct {
	Nodes []Node `json:"nodes" toml:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" toml:"edges" bson:"edges"`
}

// Validate checks node and edge identities and fails on the first offending entry.
//
// Nodes must carry a non-empty identity that is unique within the inventory.
// Edges must carry a non-empty identity. Edge endpoints are not checked here:
// a dangling endpoint is a mapping-time warning, not a validation failure.
func (inv Inventory) Validate() error {
	if err := ValidateNodes(inv.Nodes); err != nil {
		return err
	}
	return ValidateEdges(inv.Edges)
}

// ValidateNodes checks that every node has a valid, unique identity.
func ValidateNodes(nodes []Node) error {
	seen := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if err := errors.ValidateIdentity("node", n.ID); err != nil {
			return errors.New(errors.ErrCodeInvalidNode, "node at index %d (title %q): %s", i, n.Title, errors.UserMessage(err))
		}
		if first, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeDuplicateNode,
				"node %q at index %d duplicates index %d", n.ID, i, first)
		}
		seen[n.ID] = i
	}
	return nil
}

// ValidateEdges checks that every edge has a valid identity.
func ValidateEdges(edges []Edge) error {
	for i, e := range edges {
		if err := errors.ValidateIdentity("edge", e.ID); err != nil {
			return errors.New(errors.ErrCodeInvalidEdge, "edge at index %d (%s -> %s): %s", i, e.From, e.To, errors.UserMessage(err))
		}
	}
	return nil
}

// String implements fmt.Stringer for log output.
func (inv Inventory) String() string {
	return fmt.Sprintf("inventory(%d nodes, %d edges)", len(inv.Nodes), len(inv.Edges))
}
