package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/assetmap/pkg/graph"
	"github.com/matzehuels/assetmap/pkg/inventory"
	"github.com/matzehuels/assetmap/pkg/mapping"
)

func scenario(t *testing.T) []graph.Element {
	t.Helper()
	inv := inventory.Inventory{
		Nodes: []inventory.Node{
			{ID: "A", Title: "Web A", Systems: []string{"Prod"}, Groups: []string{"Web"}},
			{ID: "B", Title: "Web B", Systems: []string{"Prod"}, Groups: []string{"Web"}},
			{ID: "C", Title: "DB", Systems: []string{"Prod"}},
		},
		Edges: []inventory.Edge{
			{ID: "e1", From: "A", To: "C", Relationship: "reads"},
			{ID: "e2", From: "B", To: "C"},
		},
	}
	res, err := mapping.New(mapping.Options{Pass: "t"}).Map(inv.Nodes, inv.Edges)
	if err != nil {
		t.Fatalf("Map() error: %v", err)
	}
	return graph.FromResult(res)
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(scenario(t), Options{})

	for _, want := range []string{
		"digraph G",
		"rankdir=TB",
		`subgraph "cluster_system.t-1"`,
		`subgraph "cluster_group.t-2"`,
		`label="system: Prod"`,
		`label="group: Web"`,
		`"node.t-3" [label="Web A"]`,
		`"node.t-3" -> "node.t-5" [label="reads"]`,
		`"node.t-4" -> "node.t-5";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q\n%s", want, dot)
		}
	}
}

func TestToDOT_Nesting(t *testing.T) {
	dot := ToDOT(scenario(t), Options{})

	sys := strings.Index(dot, `subgraph "cluster_system.t-1"`)
	grp := strings.Index(dot, `subgraph "cluster_group.t-2"`)
	db := strings.Index(dot, `"node.t-5" [label=`)
	if sys < 0 || grp < 0 || db < 0 {
		t.Fatalf("ToDOT() missing expected elements\n%s", dot)
	}
	if grp < sys {
		t.Error("group cluster should be written inside the system cluster")
	}

	// The group cluster is indented one level deeper than the system cluster.
	if !strings.Contains(dot, "\n    subgraph \"cluster_group.t-2\"") {
		t.Errorf("group cluster not nested\n%s", dot)
	}
	if !strings.Contains(dot, "\n      \"node.t-3\" [label=") {
		t.Errorf("group member not nested in group\n%s", dot)
	}
	if !strings.Contains(dot, "\n    \"node.t-5\" [label=") {
		t.Errorf("system member not nested in system\n%s", dot)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(scenario(t), Options{Detailed: true})

	if !strings.Contains(dot, `id: A`) {
		t.Error("ToDOT() detailed output missing original id")
	}
	if !strings.Contains(dot, `group: Web`) {
		t.Error("ToDOT() detailed output missing membership")
	}
}

func TestToDOT_Standalone(t *testing.T) {
	elems := []graph.Element{
		{Group: graph.GroupNodes, ID: "n1", OriginalNodeID: "X"},
	}
	dot := ToDOT(elems, Options{RankDir: "LR"})

	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("ToDOT() should honor RankDir")
	}
	if !strings.Contains(dot, `  "n1" [label="X"];`) {
		t.Errorf("ToDOT() should fall back to the original id as label\n%s", dot)
	}
	if strings.Contains(dot, "subgraph") {
		t.Error("ToDOT() should not emit clusters without compounds")
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(nil, Options{})
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT(nil) = %q", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(scenario(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("RenderSVG() root not normalized: %.200s", s)
	}
	if !strings.Contains(s, "Prod") {
		t.Error("RenderSVG() output missing cluster label")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %q, want %q", out, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() without viewBox changed input: %q", got)
	}
}
