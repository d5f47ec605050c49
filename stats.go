package adjbound

// MemoryStats is a point-in-time snapshot of what the state holds.
type MemoryStats struct {
	NumPoints   int
	NumDim      int
	NumVertices int

	// StateBytes is the size of the dense volumetric matrices.
	StateBytes uint64
	// BoundaryBytes is the size of the boundary-only matrices
	// (zero until AllocateBoundaryVariables, or always for
	// runs without boundary coupling).
	BoundaryBytes uint64

	BoundaryAllocated bool
}

// MemoryStats reports the current allocation footprint.
func (b *BoundState) MemoryStats() MemoryStats {
	return MemoryStats{
		NumPoints:         b.NumPoints(),
		NumDim:            b.numDim,
		NumVertices:       b.vm.NumVertices(),
		StateBytes:        b.State.sizeBytes,
		BoundaryBytes:     b.store.SizeBytes(),
		BoundaryAllocated: b.store.Allocated(),
	}
}
