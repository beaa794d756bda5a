// Package blockgen implements a single-node streaming-ingest block
// generator: it accepts a high-rate sequence of opaque items from an
// upstream producer, batches them into time-bounded blocks, and hands
// completed blocks to a downstream Listener.
//
// Construction
//   - New(listener, receiverID, opts...): options-based constructor.
//     Returns an error if BlockIntervalMS or BlockQueueCapacity is
//     non-positive.
//
// Lifecycle
// A Generator moves through five states (Initialized, Active,
// StoppedAddingData, StoppedGeneratingBlocks, StoppedAll) and never
// restarts:
//   - Start transitions Initialized -> Active and launches the roll
//     timer and the drain worker.
//   - Stop runs the orderly shutdown sequence: intake halts, then the
//     timer stops (rolling any final buffer), then the drain worker
//     finishes flushing the block queue.
//
// Defaults
// Unless overridden via options, the following defaults apply:
//   - BlockIntervalMS: 200
//   - BlockQueueCapacity: 10
//   - MaxRatePerSecond: 0 (unlimited)
//   - Logger: zerolog's disabled zero value (silent)
//   - MetricsProvider: metrics.NewNoopProvider()
//   - Clock: clock.System()
//
// Listener contract
// OnAddData and OnGenerateBlock are called under the Generator's state
// mutex and must be fast and non-blocking: the Generator guarantees they
// never interleave with each other or with buffer mutation. OnPushBlock
// runs single-threaded on the drain worker and may block freely.
// OnError may be called concurrently from either worker and must be
// concurrency-safe.
package blockgen
