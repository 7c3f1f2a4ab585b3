// Package io reads asset inventories from JSON, TOML and HCL files.
//
// # Overview
//
// An inventory is a list of assets (nodes) with their system and group
// memberships, plus logical relationships (edges) between asset identities.
// All three formats decode into the same [inventory.Inventory].
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"id": "A", "title": "web-a", "systems": ["Prod"], "groups": ["Web"]},
//	    {"id": "C", "title": "db", "classification": "database", "systems": ["Prod"]}
//	  ],
//	  "edges": [
//	    {"id": "e1", "from": "A", "to": "C", "relationship": "uses"}
//	  ]
//	}
//
// # TOML Format
//
//	[[nodes]]
//	id = "A"
//	systems = ["Prod"]
//	groups = ["Web"]
//
//	[[edges]]
//	id = "e1"
//	from = "A"
//	to = "C"
//
// # HCL Format
//
//	asset "A" {
//	  title   = "web-a"
//	  systems = ["Prod"]
//	  groups  = ["Web"]
//	}
//
//	link "e1" {
//	  from         = "A"
//	  to           = "C"
//	  relationship = "uses"
//	}
//
// # Validation
//
// Readers only decode. Identity checks happen in [inventory.Inventory.Validate]
// and again in the mapper, which rejects nodes without identity.
package io
