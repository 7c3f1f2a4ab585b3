// Package graph provides the serialization format handed to compound-graph renderers.
//
// The mapping engine works with opaque identifiers; this package is the
// boundary where they are formatted as strings. The output is a flat ordered
// list of [Element] values, each either a node or an edge:
//
//	[
//	  {"group": "nodes", "id": "system.3fa8c1d2-1", "label": "Prod", "isCompound": true,
//	   "compoundKind": "system", "compoundName": "Prod"},
//	  {"group": "nodes", "id": "node.3fa8c1d2-3", "label": "web-a", "parentId": "group.3fa8c1d2-2",
//	   "originalNodeId": "A", "membershipKind": "group", "membershipName": "Web"},
//	  {"group": "edges", "id": "edge.3fa8c1d2-6", "sourceId": "node.3fa8c1d2-3",
//	   "targetId": "node.3fa8c1d2-5", "originalEdgeId": "e1", "label": "uses"}
//	]
//
// Renderers interpret parentId as containment and compute their own layout.
//
// # Ordering
//
// Compounds come first (systems, then groups), then display instances, then
// edges. Parents therefore always precede their children.
//
// # Common operations
//
//	elems := graph.FromResult(res)            // mapping.Result -> []Element
//	data, _ := graph.MarshalElements(elems)   // []Element -> []byte
//	graph.WriteElementsFile(elems, "out.json")
//	elems, _ = graph.ReadElementsFile("out.json")
package graph
