// Package transform provides graph transformations that prepare a DAG for
// layered layout.
//
// # Overview
//
// Caller-supplied digraphs rarely arrive in a form suitable for direct
// layered placement. This package provides the passes that transform an
// arbitrary digraph into a canonical form where:
//
//   - The effective edge direction is acyclic (back edges carry a reversed flag)
//   - Every node has an integer rank consistent with edge direction
//   - Edge segments connect only consecutive ranks (no long-spanning edges)
//
// The layout facade applies the passes in the correct order; each pass can
// also be run in isolation for testing.
//
// # Cycle Breaking
//
// [BreakCycles] finds edges that close a cycle during depth-first traversal
// and flips their effective direction, setting the Reversed flag on the edge
// instead of removing it. The caller's declared direction remains recoverable
// for arrow rendering. Self-loop edges are excluded from traversal entirely
// and left for the edge router to draw as local loops.
//
// # Rank Assignment
//
// [AssignRanks] computes the rank (layer) for each node as the length of the
// longest effective path from any source node, using a topological traversal.
// Source nodes and isolated nodes sit at rank 0; disconnected components are
// ranked independently.
//
// # Edge Subdivision
//
// [Subdivide] breaks edges spanning multiple ranks into chains of single-rank
// segments by inserting virtual nodes, one per intermediate rank:
//
//	Before: app (rank 0) → core (rank 3)
//	After:  app → app_v_1 → app_v_2 → core
//
// Virtual nodes are recorded on the owning edge's Chain so the edge router
// can later extract their coordinates as path points, then discard them.
package transform
