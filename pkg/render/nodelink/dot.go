package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/assetmap/pkg/graph"
	"github.com/matzehuels/assetmap/pkg/render"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the original identity and membership to instance labels.
	Detailed bool
	// RankDir is the Graphviz rank direction. Empty means "TB".
	RankDir string
}

// Fill colors per compound kind.
var clusterFill = map[string]string{
	"system": "#eef4fb",
	"group":  "#fdf6e3",
}

// ToDOT converts an element list into Graphviz DOT. Compounds are written as
// nested "cluster_" subgraphs so that Graphviz draws containment.
// Children are emitted in element order below their parent.
func ToDOT(elems []graph.Element, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}

	children := make(map[string][]*graph.Element)
	var roots, edges []*graph.Element

	for i := range elems {
		e := &elems[i]
		switch {
		case e.IsEdge():
			edges = append(edges, e)
		case e.ParentID == "":
			roots = append(roots, e)
		default:
			children[e.ParentID] = append(children[e.ParentID], e)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")

	if len(roots) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range roots {
		writeNode(&buf, e, children, opts, 1)
	}

	if len(edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range edges {
		if e.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.SourceID, e.TargetID, e.Label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.SourceID, e.TargetID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, e *graph.Element, children map[string][]*graph.Element, opts Options, depth int) {
	indent := strings.Repeat("  ", depth)

	if !e.IsCompound {
		fmt.Fprintf(buf, "%s%q [label=%q];\n", indent, e.ID, fmtLabel(e, opts.Detailed))
		return
	}

	fmt.Fprintf(buf, "%ssubgraph %q {\n", indent, "cluster_"+e.ID)
	fmt.Fprintf(buf, "%s  label=%q;\n", indent, e.CompoundKind+": "+e.CompoundName)
	fmt.Fprintf(buf, "%s  style=\"rounded,filled\";\n", indent)
	if fill, ok := clusterFill[e.CompoundKind]; ok {
		fmt.Fprintf(buf, "%s  fillcolor=%q;\n", indent, fill)
	}
	for _, c := range children[e.ID] {
		writeNode(buf, c, children, opts, depth+1)
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}

func fmtLabel(e *graph.Element, detailed bool) string {
	label := e.Label
	if label == "" {
		label = e.OriginalNodeID
	}
	if !detailed {
		return label
	}

	parts := []string{label, "id: " + e.OriginalNodeID}
	if e.MembershipKind != "" {
		parts = append(parts, e.MembershipKind+": "+e.MembershipName)
	}
	if e.Classification != "" {
		parts = append(parts, "class: "+e.Classification)
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// pixel-sized one anchored at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	loc := svgTagRe.FindIndex(svg)
	if loc == nil {
		return svg
	}
	out := make([]byte, 0, len(svg)+len(root))
	out = append(out, svg[:loc[0]]...)
	out = append(out, root...)
	return append(out, svg[loc[1]:]...)
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
