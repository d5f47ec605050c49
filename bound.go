package adjbound

import (
	"context"

	"github.com/fealab/adjbound/boundvars"
	"github.com/fealab/adjbound/core"
	"github.com/fealab/adjbound/vertexmap"
)

// BoundState combines the dense volumetric adjoint container with the
// boundary-restricted extension: a vertex map classifying nodes and a lazily
// allocated store for the boundary-only quantities. Callers see a single
// accessor surface regardless of whether a node is on the boundary.
type BoundState struct {
	*State

	numDim   int
	coupling bool

	vm     *vertexmap.Map
	store  *boundvars.Store
	logger *Logger
}

// New creates a BoundState for numPoints mesh nodes in numDim spatial
// dimensions. The dense container is allocated immediately (subject to the
// resource controller's budget); boundary storage waits for
// AllocateBoundaryVariables.
func New(ctx context.Context, numPoints, numDim int, optFns ...Option) (*BoundState, error) {
	o := applyOptions(numDim, optFns)

	logger := o.logger.WithProblemSize(numPoints, numDim)

	st, err := newState(ctx, numPoints, o.numVar, o.timeDomain, o.controller)
	logger.LogStateAllocation(ctx, numPoints, o.numVar, o.timeDomain, err)
	if err != nil {
		return nil, err
	}

	vm := vertexmap.New(numPoints)
	return &BoundState{
		State:    st,
		numDim:   numDim,
		coupling: o.boundaryCoupling,
		vm:       vm,
		store:    boundvars.New(vm, numDim, o.controller),
		logger:   logger,
	}, nil
}

// NumDim returns the spatial dimension count.
func (b *BoundState) NumDim() int { return b.numDim }

// BoundaryCoupling reports whether boundary-coupled variables are enabled.
func (b *BoundState) BoundaryCoupling() bool { return b.coupling }

// SetVertex marks or unmarks point p as a boundary vertex. First-time marks
// assign the next compact slot, in call order. Fails with ErrFrozen once the
// boundary variables have been allocated.
func (b *BoundState) SetVertex(p core.PointIndex, isVertex bool) error {
	return translateError(b.vm.SetIsVertex(p, isVertex))
}

// IsVertex reports whether point p is a boundary vertex.
func (b *BoundState) IsVertex(p core.PointIndex) (bool, error) {
	ok, err := b.vm.GetIsVertex(p)
	return ok, translateError(err)
}

// VertexIndex returns the compact slot of point p, or false for non-vertices.
func (b *BoundState) VertexIndex(p core.PointIndex) (core.VertexSlot, bool) {
	return b.vm.GetVertexIndex(p)
}

// NumVertices returns the number of marked boundary vertices.
func (b *BoundState) NumVertices() int { return b.vm.NumVertices() }

// AllocateBoundaryVariables sizes the boundary-only matrices from the vertex
// count at call time and freezes boundary membership. Call exactly once,
// after all SetVertex calls.
//
// When boundary coupling is disabled the call is a logged no-op and the store
// stays empty; accessors then return zero and drop writes, so the surrounding
// solver needs no feature branching.
func (b *BoundState) AllocateBoundaryVariables(ctx context.Context) error {
	if !b.coupling {
		b.logger.DebugContext(ctx, "boundary coupling disabled, skipping allocation")
		return nil
	}

	err := b.store.Allocate(ctx)
	b.logger.LogBoundaryAllocation(ctx, b.vm.NumVertices(), b.numDim, b.store.SizeBytes(), err)
	return translateError(err)
}

// SetFlowTractionSensitivity writes the flow-traction sensitivity of point p
// in dimension dim. Silently dropped for non-boundary nodes.
func (b *BoundState) SetFlowTractionSensitivity(p core.PointIndex, dim int, v float64) error {
	return translateError(b.store.SetFlowTractionSensitivity(p, dim, v))
}

// FlowTractionSensitivity reads the flow-traction sensitivity of point p in
// dimension dim. Zero for non-boundary nodes.
func (b *BoundState) FlowTractionSensitivity(p core.PointIndex, dim int) (float64, error) {
	v, err := b.store.FlowTractionSensitivity(p, dim)
	return v, translateError(err)
}

// SetDispAdjointSourceTerm writes the displacement-adjoint source term of
// point p in dimension dim. Silently dropped for non-boundary nodes.
func (b *BoundState) SetDispAdjointSourceTerm(p core.PointIndex, dim int, v float64) error {
	return translateError(b.store.SetDispAdjointSourceTerm(p, dim, v))
}

// DispAdjointSourceTerm reads the displacement-adjoint source term of point p
// in dimension dim. Zero for non-boundary nodes.
func (b *BoundState) DispAdjointSourceTerm(p core.PointIndex, dim int) (float64, error) {
	v, err := b.store.DispAdjointSourceTerm(p, dim)
	return v, translateError(err)
}

// VertexMap returns the underlying vertex map, for coupling helpers that
// classify or enumerate the boundary directly.
func (b *BoundState) VertexMap() *vertexmap.Map { return b.vm }

// Store returns the underlying boundary variable store, for slot-ordered
// gather/scatter in the exchange package.
func (b *BoundState) Store() *boundvars.Store { return b.store }

// Close releases tracked memory back to the resource controller. The state
// must not be used afterwards.
func (b *BoundState) Close() {
	b.store.Close()
	b.State.release()
}
