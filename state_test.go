package adjbound

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolutionRoundTrip(t *testing.T) {
	st, err := New(context.Background(), 5, 2)
	require.NoError(t, err)

	assert.Equal(t, 5, st.NumPoints())
	assert.Equal(t, 2, st.NumVar()) // defaults to numDim
	assert.False(t, st.TimeDomain())

	require.NoError(t, st.SetSolution(3, 1, -2.5))
	v, err := st.Solution(3, 1)
	require.NoError(t, err)
	assert.Equal(t, -2.5, v)

	v, err = st.Solution(3, 0)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestTimeDomainAllocatesVelAccel(t *testing.T) {
	st, err := New(context.Background(), 5, 2, WithTimeDomain())
	require.NoError(t, err)
	assert.True(t, st.TimeDomain())

	require.NoError(t, st.SetSolutionVel(2, 0, 1.0))
	require.NoError(t, st.SetSolutionAccel(2, 1, 2.0))

	v, err := st.SolutionVel(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = st.SolutionAccel(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestSteadyVelAccelDefaulted(t *testing.T) {
	st, err := New(context.Background(), 5, 2)
	require.NoError(t, err)

	require.NoError(t, st.SetSolutionVel(2, 0, 1.0))
	v, err := st.SolutionVel(2, 0)
	require.NoError(t, err)
	assert.Zero(t, v)

	v, err = st.SolutionAccel(2, 0)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestNumVarOverride(t *testing.T) {
	st, err := New(context.Background(), 5, 2, WithNumVar(4))
	require.NoError(t, err)
	assert.Equal(t, 4, st.NumVar())

	require.NoError(t, st.SetSolution(0, 3, 1.0))
	_, err = st.Solution(0, 4)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestSolutionRangeChecks(t *testing.T) {
	st, err := New(context.Background(), 5, 2)
	require.NoError(t, err)

	require.ErrorIs(t, st.SetSolution(5, 0, 1.0), ErrOutOfRange)
	_, err = st.Solution(5, 0)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = st.SolutionVel(0, -1)
	require.ErrorIs(t, err, ErrOutOfRange)
	require.ErrorIs(t, st.SetSolutionAccel(0, 2, 1.0), ErrOutOfRange)
}
