// Package nodelink renders mapped compound graphs as Graphviz diagrams.
//
// # Overview
//
// Compounds become nested cluster subgraphs and display instances become
// boxes inside their parent cluster. Edges become arrows between instances.
// Graphviz computes the layout; this package only describes containment.
//
// # Usage
//
//	dot := nodelink.ToDOT(graph.FromResult(res), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: include the original node identity and membership in labels
//   - RankDir: Graphviz rank direction ("TB" by default, or "LR")
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
