package graph

import (
	"fmt"

	"github.com/matzehuels/assetmap/pkg/mapping"
)

// Element groups.
const (
	GroupNodes = "nodes"
	GroupEdges = "edges"
)

// Element is one node or edge of the render-ready graph.
// Node-only and edge-only fields are omitted when empty.
type Element struct {
	Group string `json:"group" bson:"group"`
	ID    string `json:"id" bson:"id"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`

	// Node fields
	ParentID       string `json:"parentId,omitempty" bson:"parent_id,omitempty"`
	IsCompound     bool   `json:"isCompound,omitempty" bson:"is_compound,omitempty"`
	CompoundKind   string `json:"compoundKind,omitempty" bson:"compound_kind,omitempty"`
	CompoundName   string `json:"compoundName,omitempty" bson:"compound_name,omitempty"`
	OriginalNodeID string `json:"originalNodeId,omitempty" bson:"original_node_id,omitempty"`
	MembershipKind string `json:"membershipKind,omitempty" bson:"membership_kind,omitempty"`
	MembershipName string `json:"membershipName,omitempty" bson:"membership_name,omitempty"`
	Classification string `json:"classification,omitempty" bson:"classification,omitempty"`

	// Edge fields
	SourceID       string `json:"sourceId,omitempty" bson:"source_id,omitempty"`
	TargetID       string `json:"targetId,omitempty" bson:"target_id,omitempty"`
	OriginalEdgeID string `json:"originalEdgeId,omitempty" bson:"original_edge_id,omitempty"`
}

// IsNode reports whether the element is a node (compound or instance).
func (e *Element) IsNode() bool { return e.Group == GroupNodes }

// IsEdge reports whether the element is an edge.
func (e *Element) IsEdge() bool { return e.Group == GroupEdges }

// FromResult flattens a mapping result into the ordered element list.
func FromResult(res *mapping.Result) []Element {
	out := make([]Element, 0, len(res.Compounds)+len(res.Instances)+len(res.Edges))

	for _, c := range res.Compounds {
		out = append(out, Element{
			Group:        GroupNodes,
			ID:           c.ID.String(),
			Label:        c.Name,
			ParentID:     c.Parent.String(),
			IsCompound:   true,
			CompoundKind: c.Kind.String(),
			CompoundName: c.Name,
		})
	}

	for _, in := range res.Instances {
		out = append(out, Element{
			Group:          GroupNodes,
			ID:             in.ID.String(),
			Label:          in.Label,
			ParentID:       in.Parent.String(),
			OriginalNodeID: in.NodeID,
			MembershipKind: in.Membership.Kind.String(),
			MembershipName: in.Membership.Name,
			Classification: in.Classification,
		})
	}

	for _, e := range res.Edges {
		out = append(out, Element{
			Group:          GroupEdges,
			ID:             e.ID.String(),
			Label:          e.Label,
			SourceID:       e.From.String(),
			TargetID:       e.To.String(),
			OriginalEdgeID: e.EdgeID,
		})
	}

	return out
}

// Validate checks that element ids are unique, that every parent is a
// compound listed before its child, and that edges connect known nodes.
func Validate(elems []Element) error {
	nodes := make(map[string]*Element, len(elems))
	seen := make(map[string]struct{}, len(elems))

	for i := range elems {
		e := &elems[i]
		if e.ID == "" {
			return fmt.Errorf("element %d: empty id", i)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("element %s: duplicate id", e.ID)
		}
		seen[e.ID] = struct{}{}

		switch e.Group {
		case GroupNodes:
			if e.ParentID != "" {
				parent, ok := nodes[e.ParentID]
				if !ok {
					return fmt.Errorf("node %s: unknown parent %s", e.ID, e.ParentID)
				}
				if !parent.IsCompound {
					return fmt.Errorf("node %s: parent %s is not a compound", e.ID, e.ParentID)
				}
			}
			nodes[e.ID] = e
		case GroupEdges:
			if _, ok := nodes[e.SourceID]; !ok {
				return fmt.Errorf("edge %s: unknown source %s", e.ID, e.SourceID)
			}
			if _, ok := nodes[e.TargetID]; !ok {
				return fmt.Errorf("edge %s: unknown target %s", e.ID, e.TargetID)
			}
		default:
			return fmt.Errorf("element %s: invalid group %q", e.ID, e.Group)
		}
	}

	return nil
}
