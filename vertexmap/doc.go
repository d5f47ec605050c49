// Package vertexmap maps global node indices to compact boundary-vertex slots.
//
// In an adjoint FEA run only a small fraction of the mesh nodes lie on a
// domain boundary, yet boundary-coupled quantities are naturally addressed by
// the global node index. Map records, for each global index, whether the node
// is a boundary vertex and, for vertices only, a dense slot in [0, NumSlots).
// Slots are assigned in marking order, which downstream coupling buffers rely
// on when exchanging data with a partner solver that enumerates the same
// physical boundary in the same order.
//
// Membership is held in a Roaring bitmap, slots in a flat array with an
// explicit invalid sentinel. All operations are O(1) in-memory accesses; the
// map holds no locks, so concurrent mutation of the same index is not
// supported.
package vertexmap
