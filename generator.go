package blockgen

import (
	"sync"
	"time"

	"github.com/ygrebnov/blockgen/clock"
	"github.com/ygrebnov/blockgen/metrics"
	"github.com/ygrebnov/blockgen/ratelimit"
)

// pollInterval is the drain worker's queue-poll timeout.
const pollInterval = 10 * time.Millisecond

// errorForwarderBuffer sizes the internal buffer errorForwarder drains
// into listener.OnError calls.
const errorForwarderBuffer = 256

// Generator is the block generator. It composes the
// clock-driven roll timer, the rate limiter, and the bounded block queue,
// and owns the current buffer, the two worker goroutines, and the state
// machine.
type Generator struct {
	receiverID int64
	listener   Listener
	cfg        Config
	limiter    ratelimit.Limiter

	mu     sync.Mutex
	state  State
	buffer []any

	queue  *blockQueue
	ticker *clock.Ticker
	errFwd *errorForwarder

	drainDone chan struct{}

	blocksGenerated metrics.Counter
	blocksPushed    metrics.Counter
	queueDepth      metrics.UpDownCounter
	pushLatency     metrics.Histogram
	errorsCounter   metrics.Counter
}

// New constructs a Generator for the given listener and receiver id.
// Configuration is supplied via functional options; see Config for the
// defaulted fields. New returns an error, rather than panicking, when
// BlockIntervalMS or BlockQueueCapacity is non-positive. The Generator is
// not started automatically; call Start.
func New(listener Listener, receiverID int64, opts ...Option) (*Generator, error) {
	cfg, err := buildConfig(opts...)
	if err != nil {
		return nil, err
	}

	provider := cfg.MetricsProvider
	if provider == nil {
		provider = metrics.NewNoopProvider()
	}

	g := &Generator{
		receiverID:      receiverID,
		listener:        listener,
		cfg:             cfg,
		limiter:         ratelimit.New(cfg.MaxRatePerSecond),
		state:           Initialized,
		queue:           newBlockQueue(cfg.BlockQueueCapacity),
		errFwd:          newErrorForwarder(listener, errorForwarderBuffer),
		blocksGenerated: provider.Counter("blockgen.blocks.generated"),
		blocksPushed:    provider.Counter("blockgen.blocks.pushed"),
		queueDepth:      provider.UpDownCounter("blockgen.queue.depth"),
		pushLatency:     provider.Histogram("blockgen.push.latency"),
		errorsCounter:   provider.Counter("blockgen.errors"),
	}

	return g, nil
}

// IsActive reports whether the Generator is currently in the Active
// state. This is a snapshot query: the result may be stale the instant
// it returns.
func (g *Generator) IsActive() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == Active
}

// IsStopped reports whether the Generator has completed its shutdown
// sequence (state == StoppedAll).
func (g *Generator) IsStopped() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == StoppedAll
}

// Start transitions the Generator from Initialized to Active and
// launches the timer worker and the drain worker. Calling Start
// from any other state fails with ErrWrongState.
func (g *Generator) Start() error {
	g.mu.Lock()
	if g.state != Initialized {
		s := g.state
		g.mu.Unlock()
		return newWrongStateError("start", s)
	}
	g.state = Active
	g.buffer = nil
	g.mu.Unlock()

	g.cfg.Logger.Info().
		Int64("receiver_id", g.receiverID).
		Str("state", Active.String()).
		Msg("block generator started")

	g.errFwd.start()

	g.ticker = clock.NewTicker(
		g.cfg.Clock,
		time.Duration(g.cfg.BlockIntervalMS)*time.Millisecond,
		g.roll,
	)
	g.ticker.Start()

	g.drainDone = make(chan struct{})
	go g.keepPushingBlocks()

	return nil
}

// Stop runs the orderly shutdown sequence: intake stops
// before block formation stops, which stops before block dispatch stops.
// Calling Stop when the state is not Active logs a warning and returns
// nil without error.
func (g *Generator) Stop() error {
	g.mu.Lock()
	if g.state != Active {
		s := g.state
		g.mu.Unlock()
		g.cfg.Logger.Warn().
			Int64("receiver_id", g.receiverID).
			Str("state", s.String()).
			Msg("stop called while not active")
		return nil
	}
	g.state = StoppedAddingData
	g.mu.Unlock()

	g.cfg.Logger.Info().
		Int64("receiver_id", g.receiverID).
		Msg("block generator stop: intake halted")

	coord := newLifecycleCoordinator(
		func() {
			g.ticker.Stop(false)
			// Intake is already halted. A tick that was in flight when the
			// ticker stopped may have sealed before the last Add landed, so
			// roll once more to seal whatever is left in the buffer.
			g.roll(g.cfg.Clock.Now())
		},
		func() {
			g.mu.Lock()
			g.state = StoppedGeneratingBlocks
			g.mu.Unlock()
		},
		func() { <-g.drainDone },
		func() {
			g.errFwd.stop()
			g.mu.Lock()
			g.state = StoppedAll
			g.mu.Unlock()
		},
	)
	coord.Run()

	g.cfg.Logger.Info().
		Int64("receiver_id", g.receiverID).
		Msg("block generator stop: complete")

	return nil
}

// reportError logs at error level and invokes listener.OnError. It is
// called from both the roll worker and the drain worker and may run
// concurrently with OnAddData/OnGenerateBlock.
func (g *Generator) reportError(message string, cause error) {
	g.errorsCounter.Add(1)
	g.cfg.Logger.Error().
		Int64("receiver_id", g.receiverID).
		Err(cause).
		Msg(message)
	g.errFwd.report(message, cause)
}
