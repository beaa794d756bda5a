package blockgen

import "sync"

// lifecycleCoordinator encapsulates the shutdown sequence for a
// Generator. It is a wiring helper: it doesn't own the state
// mutex, the timer, or the queue; it orchestrates the prescribed phase
// transitions and worker joins in a deterministic order.
//
// Run is safe for concurrent calls; the sequence executes exactly once.
type lifecycleCoordinator struct {
	stopTimer       func()
	enterDraining   func()
	waitDrainWorker func()
	finalize        func()

	once sync.Once
}

// newLifecycleCoordinator builds the coordinator for the part of Stop
// that runs once intake has already been halted (the Active ->
// StoppedAddingData transition is the precondition check in Stop itself,
// not part of this deterministic tail sequence).
func newLifecycleCoordinator(
	stopTimer func(),
	enterDraining func(),
	waitDrainWorker func(),
	finalize func(),
) *lifecycleCoordinator {
	return &lifecycleCoordinator{
		stopTimer:       stopTimer,
		enterDraining:   enterDraining,
		waitDrainWorker: waitDrainWorker,
		finalize:        finalize,
	}
}

// Run executes the shutdown sequence exactly once: block formation must
// cease before block dispatch ceases.
//
//  1. stopTimer: non-interrupting Ticker.Stop; any in-flight roll
//     completes, then a final roll enqueues whatever is left in the
//     buffer.
//  2. enterDraining: StoppedAddingData -> StoppedGeneratingBlocks.
//  3. waitDrainWorker: block until the drain worker has flushed the
//     queue and exited.
//  4. finalize: StoppedGeneratingBlocks -> StoppedAll.
func (lc *lifecycleCoordinator) Run() {
	lc.once.Do(func() {
		lc.stopTimer()
		lc.enterDraining()
		lc.waitDrainWorker()
		lc.finalize()
	})
}
