package blockgen

import "fmt"

// keepPushingBlocks is the drain worker. It is the sole invoker of
// OnPushBlock, so concurrent invocations of that callback are impossible
// by construction. It polls with a short timeout so it can re-check the
// state flag promptly without busy-spinning.
func (g *Generator) keepPushingBlocks() {
	defer close(g.drainDone)

	for g.stateIsNot(StoppedGeneratingBlocks) {
		if b, ok := g.queue.poll(pollInterval); ok {
			g.pushBlock(b)
		}
	}

	remaining := g.queue.len()
	if remaining > 0 {
		g.cfg.Logger.Info().
			Int64("receiver_id", g.receiverID).
			Int("remaining", remaining).
			Msg("block generator drain: flushing remainder")
	}

	for g.queue.len() > 0 {
		g.pushBlock(g.queue.take())
	}
}

func (g *Generator) stateIsNot(s State) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state != s
}

// pushBlock invokes listener.OnPushBlock and logs, recovering from a
// panic in OnPushBlock and routing it to reportError; the worker loop
// continues either way.
func (g *Generator) pushBlock(b Block) {
	start := g.cfg.Clock.Now()

	defer func() {
		// The block has left the queue whether or not the push succeeded.
		g.queueDepth.Add(-1)
		if r := recover(); r != nil {
			g.reportError("push block panicked", fmt.Errorf("%v", r))
			return
		}
		g.blocksPushed.Add(1)
		g.pushLatency.Record(g.cfg.Clock.Now().Sub(start).Seconds())
	}()

	g.listener.OnPushBlock(b.ID, b.Items)

	g.cfg.Logger.Info().
		Int64("receiver_id", g.receiverID).
		Str("block_id", b.ID).
		Int("items", len(b.Items)).
		Msg("block pushed")
}
