package blockgen

import (
	"fmt"
	"time"
)

// roll is the timer's callback. It is invoked by the Ticker with the
// scheduled tick time, not the wall-clock time the goroutine actually
// woke up, so the computed block id is deterministic even under
// scheduling jitter.
func (g *Generator) roll(tickTime time.Time) {
	defer func() {
		if r := recover(); r != nil {
			g.reportError("roll panicked", fmt.Errorf("%v", r))
		}
	}()

	block, ok := g.sealCurrentBuffer(tickTime)
	if !ok {
		// Empty roll tick: no block produced, no listener call.
		return
	}

	g.blocksGenerated.Add(1)
	g.queueDepth.Add(1)

	// May block if the queue is full: the intended backpressure path.
	// This runs outside the mutex, so producers can still pass the state
	// checks in Add* while this insert is stalled; they simply keep
	// accumulating into the next buffer.
	g.queue.insert(block)
}

// sealCurrentBuffer runs under the state mutex: swap
// out the current buffer, assign a block id anchored to the start of the
// covered interval, invoke OnGenerateBlock while still holding the mutex,
// and release it. It reports ok=false when there was nothing to seal.
func (g *Generator) sealCurrentBuffer(tickTime time.Time) (Block, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.buffer) == 0 {
		return Block{}, false
	}

	oldBuffer := g.buffer
	g.buffer = nil

	intervalStart := tickTime.Add(-time.Duration(g.cfg.BlockIntervalMS) * time.Millisecond)
	blockID := makeID(g.receiverID, intervalStart.UnixMilli())

	g.listener.OnGenerateBlock(blockID)

	return Block{ID: blockID, Items: oldBuffer}, true
}
