// Package mapping converts a flat asset inventory into a render-ready compound graph.
//
// # Overview
//
// Assets may belong to zero, one or many named systems and groups at the same
// time, while compound-graph renderers only understand a strict single-parent
// containment tree. The [Mapper] resolves this mismatch by duplication: every
// asset gets one display instance per effective membership, placed inside the
// container ("compound") that represents that membership.
//
// # Pipeline
//
// A call to [Mapper.Map] runs five stages synchronously, each consuming the
// previous stage's output:
//
//  1. Membership analysis: index system and group members, report conflicts.
//  2. Hierarchy resolution: decide which groups nest inside a single system.
//  3. Compound building: one container per system/group with at least two members.
//  4. Node instantiation: one display instance per effective membership.
//  5. Edge projection: rewrite logical edges onto display instances.
//
// All scratch state (identifier counter, reverse lookup tables, compound table)
// lives in a per-call context, so a single [Mapper] is safe for concurrent use.
//
// # Containment rules
//
// A group nests inside system S when every member of the group references S
// and no other system, and S itself qualifies as a compound. Nested groups keep
// their members out of the parent system container:
//
//	A{systems:[Prod], groups:[Web]}  ->  one instance, parent Web
//	B{systems:[Prod], groups:[Web]}  ->  one instance, parent Web
//	C{systems:[Prod]}                ->  one instance, parent Prod
//	Web                              ->  compound, parent Prod
//
// Groups whose members span two or more systems stay top-level.
//
// # Identifiers
//
// Generated identifiers ([ID]) are opaque. They are unique within one call and
// are qualified by a pass token, so two calls on the same input produce the
// same structure with different identifiers. Compare results with
// [Result.Shape], never by identifier.
//
// # Edge routing
//
// An asset with several display instances still has one logical identity.
// [RouteFirstInstance] (the default) connects only the first instance of each
// endpoint; [RouteAllPairs] connects every pair of instances.
package mapping
