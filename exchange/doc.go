// Package exchange moves boundary data between the adjoint store and a
// partner solver.
//
// FSI couplings exchange forces and sensitivities over a matching boundary
// mesh, keyed by boundary position rather than global node index. Both sides
// must therefore enumerate the boundary in the same order; here that order is
// the vertex-slot order of the map, i.e. the order the driving solver marked
// the nodes. Gather packs matrix rows into a flat buffer in slot order,
// Scatter unpacks a partner buffer the same way.
//
// MarkFromClassifier populates a vertex map from a per-node predicate using a
// bounded worker pool: classification runs in parallel over disjoint index
// ranges, marking itself is a single sequential pass in ascending index order
// so slot assignment stays deterministic regardless of worker count.
package exchange
