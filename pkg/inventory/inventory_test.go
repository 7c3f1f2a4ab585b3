package inventory

import (
	"strings"
	"testing"

	"github.com/matzehuels/assetmap/pkg/errors"
)

func TestNodeLabel(t *testing.T) {
	if got := (Node{ID: "a", Title: "Web 1"}).Label(); got != "Web 1" {
		t.Errorf("Label() = %q, want %q", got, "Web 1")
	}
	if got := (Node{ID: "a"}).Label(); got != "a" {
		t.Errorf("Label() = %q, want %q", got, "a")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		inv  Inventory
		code errors.Code
	}{
		{
			name: "valid",
			inv: Inventory{
				Nodes: []Node{{ID: "a"}, {ID: "b"}},
				Edges: []Edge{{ID: "e1", From: "a", To: "b"}},
			},
		},
		{
			name: "dangling edge is valid",
			inv: Inventory{
				Nodes: []Node{{ID: "a"}},
				Edges: []Edge{{ID: "e1", From: "a", To: "missing"}},
			},
		},
		{
			name: "missing node identity",
			inv:  Inventory{Nodes: []Node{{ID: "a"}, {Title: "orphan"}}},
			code: errors.ErrCodeInvalidNode,
		},
		{
			name: "duplicate node identity",
			inv:  Inventory{Nodes: []Node{{ID: "a"}, {ID: "a"}}},
			code: errors.ErrCodeDuplicateNode,
		},
		{
			name: "missing edge identity",
			inv: Inventory{
				Nodes: []Node{{ID: "a"}, {ID: "b"}},
				Edges: []Edge{{From: "a", To: "b"}},
			},
			code: errors.ErrCodeInvalidEdge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.inv.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestValidateNodesNamesOffendingEntry(t *testing.T) {
	err := ValidateNodes([]Node{{ID: "a"}, {ID: "b"}, {Title: "broken"}})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := errors.UserMessage(err)
	if msg != `node at index 2 (title "broken"): node identity cannot be empty` {
		t.Errorf("UserMessage() = %q", msg)
	}
	if got := strings.Count(err.Error(), string(errors.ErrCodeInvalidNode)); got != 1 {
		t.Errorf("Error() = %q, code appears %d times", err.Error(), got)
	}
}
