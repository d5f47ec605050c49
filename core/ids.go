package core

// PointIndex identifies a node across the whole mesh partition.
// It is strictly 32-bit, allowing for max 4 billion nodes per partition.
// Stable for the lifetime of a run; the indexing domain for all public operations.
type PointIndex uint32

// VertexSlot is the dense, compact index assigned to a boundary vertex.
// Slots are handed out in marking order and are never reassigned or reused.
// Used to size and index boundary-only storage arrays.
type VertexSlot uint32

// InvalidSlot marks a point that has no boundary slot assigned.
const InvalidSlot = ^VertexSlot(0)

// MaxPointIndex is the maximum possible value for a PointIndex.
const MaxPointIndex = ^PointIndex(0)
