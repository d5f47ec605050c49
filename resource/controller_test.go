package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilControllerAllowsEverything(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireMemory(context.Background(), 1<<40))
	assert.True(t, c.TryAcquireMemory(1<<40))
	c.ReleaseMemory(1 << 40)
	assert.Zero(t, c.MemoryUsage())

	require.NoError(t, c.AcquireWorker(context.Background()))
	assert.True(t, c.TryAcquireWorker())
	c.ReleaseWorker()
	assert.Equal(t, 1, c.MaxWorkers())
}

func TestMemoryTrackingWithoutLimit(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(context.Background(), 100))
	require.NoError(t, c.AcquireMemory(context.Background(), 50))
	assert.Equal(t, int64(150), c.MemoryUsage())

	c.ReleaseMemory(100)
	assert.Equal(t, int64(50), c.MemoryUsage())

	// Zero and negative are no-ops.
	require.NoError(t, c.AcquireMemory(context.Background(), 0))
	c.ReleaseMemory(-5)
	assert.Equal(t, int64(50), c.MemoryUsage())
}

func TestMemoryBudget(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(context.Background(), 60))
	assert.False(t, c.TryAcquireMemory(50))
	assert.True(t, c.TryAcquireMemory(40))
	assert.Equal(t, int64(100), c.MemoryUsage())

	c.ReleaseMemory(40)
	assert.True(t, c.TryAcquireMemory(40))
}

func TestMemoryBudgetExceeded(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	err := c.AcquireMemory(context.Background(), 101)
	var be *ErrBudgetExceeded
	require.ErrorAs(t, err, &be)
	assert.Equal(t, int64(101), be.Requested)
	assert.Equal(t, int64(100), be.Limit)
	assert.Zero(t, c.MemoryUsage())

	assert.False(t, c.TryAcquireMemory(101))
}

func TestWorkerSlots(t *testing.T) {
	c := NewController(Config{MaxWorkers: 2})
	assert.Equal(t, 2, c.MaxWorkers())

	require.NoError(t, c.AcquireWorker(context.Background()))
	require.NoError(t, c.AcquireWorker(context.Background()))
	assert.False(t, c.TryAcquireWorker())

	c.ReleaseWorker()
	assert.True(t, c.TryAcquireWorker())

	c.ReleaseWorker()
	c.ReleaseWorker()
}

func TestWorkerAcquireCanceled(t *testing.T) {
	c := NewController(Config{MaxWorkers: 1})
	require.NoError(t, c.AcquireWorker(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, c.AcquireWorker(ctx))

	c.ReleaseWorker()
}
