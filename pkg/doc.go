// Package pkg provides the core libraries for assetmap inventory visualization.
//
// # Overview
//
// Assetmap turns a flat IT-asset inventory into a compound graph: systems and
// groups become nested containers, assets that belong to several containers
// are duplicated into each of them, and relationships between assets are
// re-routed onto the duplicates. The pkg directory is organized into:
//
//  1. [inventory] and [io] - The input model and its JSON, TOML and HCL readers
//  2. [mapping] - The compound-graph mapping engine
//  3. [graph] - The flat, render-ready element list
//  4. [render] and [render/nodelink] - Graphviz pictures and format conversion
//  5. [pipeline] - Orchestration (map → export → render) with artifact caching
//  6. [cache], [config], [observability], [errors], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow through assetmap:
//
//	Inventory file (JSON, TOML, HCL)
//	         ↓
//	    [io] package (decode into inventory.Inventory)
//	         ↓
//	    [mapping] package (compounds, instances, projected edges)
//	         ↓
//	    [graph] package (ordered elements)
//	         ↓
//	    [render/nodelink] package (DOT → SVG/PDF/PNG)
//
// # Quick Start
//
//	inv, _ := io.ImportFile("inventory.json")
//	res, _ := mapping.Map(inv)
//	elems := graph.FromResult(res)
//	dot := nodelink.ToDOT(elems, nodelink.Options{RankDir: "LR"})
//
// Or run everything, with caching, through a runner:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, _ := runner.Execute(ctx, inv, pipeline.Options{Formats: []string{"svg"}})
//
// # Testing
//
//	go test ./...
//	ASSETMAP_TEST_REDIS=localhost:6379 go test ./pkg/cache/...
//
// [inventory]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/inventory
// [io]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/io
// [mapping]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/mapping
// [graph]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/assetmap/pkg/buildinfo
package pkg
