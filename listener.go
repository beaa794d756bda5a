package blockgen

// Listener is the external capability set the Generator invokes at four
// well-defined points. Implementations are held by shared reference
// and must outlive the Generator.
//
// OnAddData and OnGenerateBlock are called under the Generator's state
// mutex and must be fast and non-blocking: they never interleave with
// each other or with buffer mutation, but a slow implementation stalls
// every producer and the roll worker.
//
// OnPushBlock is called single-threaded from the drain worker and may
// block freely; throughput loss from a slow OnPushBlock is local to that
// worker.
//
// OnError may be called concurrently from either worker and must be
// concurrency-safe and fast.
type Listener interface {
	// OnAddData is invoked after data has been appended to the current
	// buffer, while the Generator's mutex is held.
	OnAddData(data any, metadata any)

	// OnGenerateBlock is invoked once a block id has been assigned during
	// a roll, while the Generator's mutex is still held.
	OnGenerateBlock(blockID string)

	// OnPushBlock is invoked by the drain worker once a block has been
	// dequeued, immediately before the worker considers the block
	// delivered.
	OnPushBlock(blockID string, items []any)

	// OnError is invoked whenever the roll or drain worker catches an
	// error or recovers from a panic that it cannot otherwise propagate.
	OnError(message string, cause error)
}
