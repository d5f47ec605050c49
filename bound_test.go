package adjbound

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fealab/adjbound/core"
	"github.com/fealab/adjbound/resource"
)

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()

	st, err := New(ctx, 10, 2, WithBoundaryCoupling())
	require.NoError(t, err)

	// Mark nodes 1, 3, 7 as boundary, in that order: slots 0, 1, 2.
	for _, p := range []core.PointIndex{1, 3, 7} {
		require.NoError(t, st.SetVertex(p, true))
	}
	require.Equal(t, 3, st.NumVertices())

	slot, ok := st.VertexIndex(7)
	require.True(t, ok)
	assert.Equal(t, core.VertexSlot(2), slot)

	require.NoError(t, st.AllocateBoundaryVariables(ctx))

	require.NoError(t, st.SetFlowTractionSensitivity(7, 0, 4.2))
	require.NoError(t, st.SetFlowTractionSensitivity(1, 1, -1.0))

	tests := []struct {
		point core.PointIndex
		dim   int
		want  float64
	}{
		{7, 0, 4.2},
		{1, 1, -1.0},
		{3, 0, 0},
		{0, 0, 0}, // node 0 never boundary
		{3, 1, 0},
	}
	for _, tt := range tests {
		v, err := st.FlowTractionSensitivity(tt.point, tt.dim)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v, "point %d dim %d", tt.point, tt.dim)
	}
}

func TestVertexPassThrough(t *testing.T) {
	st, err := New(context.Background(), 10, 2, WithBoundaryCoupling())
	require.NoError(t, err)

	require.NoError(t, st.SetVertex(4, true))

	ok, err := st.IsVertex(4)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.IsVertex(5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestErrorTranslation(t *testing.T) {
	ctx := context.Background()
	st, err := New(ctx, 10, 2, WithBoundaryCoupling())
	require.NoError(t, err)
	require.NoError(t, st.SetVertex(1, true))
	require.NoError(t, st.AllocateBoundaryVariables(ctx))

	require.ErrorIs(t, st.SetVertex(10, true), ErrOutOfRange)
	_, err = st.IsVertex(99)
	require.ErrorIs(t, err, ErrOutOfRange)
	require.ErrorIs(t, st.SetFlowTractionSensitivity(10, 0, 1), ErrOutOfRange)
	_, err = st.DispAdjointSourceTerm(1, 2)
	require.ErrorIs(t, err, ErrOutOfRange)

	require.ErrorIs(t, st.AllocateBoundaryVariables(ctx), ErrAlreadyAllocated)
	require.ErrorIs(t, st.SetVertex(2, true), ErrFrozen)
	require.ErrorIs(t, st.SetVertex(1, false), ErrFrozen)
}

func TestCouplingDisabled(t *testing.T) {
	ctx := context.Background()
	st, err := New(ctx, 10, 2)
	require.NoError(t, err)
	require.NoError(t, st.SetVertex(1, true))

	require.NoError(t, st.AllocateBoundaryVariables(ctx))
	assert.False(t, st.Store().Allocated())

	// Accessors still follow the silent-default contract.
	require.NoError(t, st.SetFlowTractionSensitivity(1, 0, 2.5))
	v, err := st.FlowTractionSensitivity(1, 0)
	require.NoError(t, err)
	assert.Zero(t, v)

	// Membership stays mutable: nothing was allocated.
	require.NoError(t, st.SetVertex(2, true))
}

func TestSourceTermRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, err := New(ctx, 10, 3, WithBoundaryCoupling())
	require.NoError(t, err)
	require.NoError(t, st.SetVertex(6, true))
	require.NoError(t, st.AllocateBoundaryVariables(ctx))

	for dim := 0; dim < 3; dim++ {
		require.NoError(t, st.SetDispAdjointSourceTerm(6, dim, float64(dim)+0.5))
	}
	for dim := 0; dim < 3; dim++ {
		v, err := st.DispAdjointSourceTerm(6, dim)
		require.NoError(t, err)
		assert.Equal(t, float64(dim)+0.5, v)
	}
}

func TestMemoryStats(t *testing.T) {
	ctx := context.Background()
	rc := resource.NewController(resource.Config{})

	st, err := New(ctx, 100, 2, WithBoundaryCoupling(), WithResourceController(rc))
	require.NoError(t, err)

	stats := st.MemoryStats()
	assert.Equal(t, 100, stats.NumPoints)
	assert.Equal(t, 2, stats.NumDim)
	assert.Equal(t, uint64(100*2*8), stats.StateBytes)
	assert.Zero(t, stats.BoundaryBytes)
	assert.False(t, stats.BoundaryAllocated)

	for p := core.PointIndex(0); p < 10; p++ {
		require.NoError(t, st.SetVertex(p, true))
	}
	require.NoError(t, st.AllocateBoundaryVariables(ctx))

	stats = st.MemoryStats()
	assert.Equal(t, 10, stats.NumVertices)
	assert.Equal(t, uint64(10*2*8*2), stats.BoundaryBytes)
	assert.True(t, stats.BoundaryAllocated)
	assert.Equal(t, int64(stats.StateBytes+stats.BoundaryBytes), rc.MemoryUsage())

	st.Close()
	assert.Zero(t, rc.MemoryUsage())
}

func TestStateBudgetRefusal(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64})

	_, err := New(context.Background(), 100, 2, WithResourceController(rc))
	var be *resource.ErrBudgetExceeded
	require.ErrorAs(t, err, &be)
	assert.Zero(t, rc.MemoryUsage())
}
