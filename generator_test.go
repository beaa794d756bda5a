package blockgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/blockgen/metrics"
)

func TestGenerator_WrongStateRejection(t *testing.T) {
	listener := newFakeListener()
	g, err := New(listener, 1, WithBlockInterval(50), WithBlockQueueCapacity(4))
	require.NoError(t, err)

	// add before start
	err = g.Add(context.Background(), "x")
	require.ErrorIs(t, err, ErrWrongState)

	require.NoError(t, g.Start())

	// start again
	err = g.Start()
	require.ErrorIs(t, err, ErrWrongState)

	require.NoError(t, g.Stop())

	// add after stop
	err = g.Add(context.Background(), "y")
	require.ErrorIs(t, err, ErrWrongState)

	// stop again: no-op, no error
	require.NoError(t, g.Stop())

	require.True(t, g.IsStopped())
}

func TestGenerator_BasicRoll(t *testing.T) {
	listener := newFakeListener()
	g, err := New(listener, 7,
		WithBlockInterval(100),
		WithBlockQueueCapacity(4),
	)
	require.NoError(t, err)
	require.NoError(t, g.Start())

	ctx := context.Background()
	require.NoError(t, g.AddWithCallback(ctx, "a", "m"))
	require.NoError(t, g.AddWithCallback(ctx, "b", "m"))
	require.NoError(t, g.AddWithCallback(ctx, "c", "m"))

	time.Sleep(250 * time.Millisecond)
	require.NoError(t, g.Stop())

	pushed := listener.snapshotPushed()
	require.Len(t, pushed, 1)
	require.Equal(t, []any{"a", "b", "c"}, pushed[0].items)

	generated := listener.snapshotGenerated()
	require.Len(t, generated, 1)
	require.Equal(t, pushed[0].blockID, generated[0])

	addData := listener.snapshotAddData()
	require.Len(t, addData, 3)

	require.True(t, g.IsStopped())
}

func TestGenerator_StopOrdering(t *testing.T) {
	listener := newFakeListener()
	g, err := New(listener, 3, WithBlockInterval(100), WithBlockQueueCapacity(4))
	require.NoError(t, err)
	require.NoError(t, g.Start())

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		require.NoError(t, g.Add(ctx, i))
	}

	require.NoError(t, g.Stop())

	pushed := listener.snapshotPushed()
	require.Len(t, pushed, 1)
	require.Len(t, pushed[0].items, 10)

	err = g.Add(ctx, "late")
	require.ErrorIs(t, err, ErrWrongState)
	require.True(t, g.IsStopped())
}

func TestGenerator_EmptyRollProducesNoBlock(t *testing.T) {
	listener := newFakeListener()
	g, err := New(listener, 1, WithBlockInterval(30), WithBlockQueueCapacity(4))
	require.NoError(t, err)
	require.NoError(t, g.Start())

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, g.Stop())

	require.Empty(t, listener.snapshotPushed())
	require.Empty(t, listener.snapshotGenerated())
}

func TestGenerator_ListenerErrorRecovery(t *testing.T) {
	listener := newFakeListener()
	listener.generateHookAt = 0
	listener.generateHook = func(string) error { return errors.New("boom") }

	g, err := New(listener, 1, WithBlockInterval(50), WithBlockQueueCapacity(4))
	require.NoError(t, err)
	require.NoError(t, g.Start())

	ctx := context.Background()
	require.NoError(t, g.Add(ctx, "x1"))
	time.Sleep(120 * time.Millisecond) // first tick panics inside OnGenerateBlock

	require.NoError(t, g.Add(ctx, "x2"))
	time.Sleep(120 * time.Millisecond) // second tick must still produce a block

	require.NoError(t, g.Stop())

	errs := listener.snapshotErrors()
	require.NotEmpty(t, errs)

	generated := listener.snapshotGenerated()
	require.GreaterOrEqual(t, len(generated), 2)

	// further Add calls succeeded after the panic: no leaked lock.
	require.True(t, g.IsStopped())
}

func TestGenerator_MetricsRecordBlocksAndQueueDepth(t *testing.T) {
	provider := metrics.NewBasicProvider()
	listener := newFakeListener()
	g, err := New(listener, 5,
		WithBlockInterval(50),
		WithBlockQueueCapacity(4),
		WithMetricsProvider(provider),
	)
	require.NoError(t, err)
	require.NoError(t, g.Start())

	ctx := context.Background()
	require.NoError(t, g.Add(ctx, "a"))
	require.NoError(t, g.Add(ctx, "b"))

	time.Sleep(150 * time.Millisecond)
	require.NoError(t, g.Stop())

	generated := provider.Counter("blockgen.blocks.generated").(*metrics.BasicCounter)
	pushed := provider.Counter("blockgen.blocks.pushed").(*metrics.BasicCounter)
	depth := provider.UpDownCounter("blockgen.queue.depth").(*metrics.BasicUpDownCounter)
	latency := provider.Histogram("blockgen.push.latency").(*metrics.BasicHistogram)

	require.EqualValues(t, 1, generated.Snapshot())
	require.EqualValues(t, 1, pushed.Snapshot())
	require.EqualValues(t, 0, depth.Snapshot(), "queue depth must return to zero once the block is pushed")
	require.GreaterOrEqual(t, latency.Snapshot().Count, int64(1))
}

func TestGenerator_InvalidConfigRejected(t *testing.T) {
	_, err := New(newFakeListener(), 1, WithBlockInterval(0))
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(newFakeListener(), 1, WithBlockQueueCapacity(-1))
	require.ErrorIs(t, err, ErrInvalidConfig)
}
