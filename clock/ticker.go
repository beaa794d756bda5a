package clock

import (
	"sync"
	"time"
)

// Ticker invokes a callback every interval, on its own goroutine, from the
// first tick until Stop is called. Unlike time.Ticker it never drops a
// tick to catch up: if the callback overruns the interval, the next tick
// fires immediately rather than waiting out a skipped period.
type Ticker struct {
	clock    Clock
	interval time.Duration
	callback func(tickTime time.Time)

	mu        sync.Mutex
	started   bool
	stopCh    chan struct{}
	interrupt chan struct{}
	done      chan struct{}
}

// NewTicker constructs a Ticker. interval must be positive; callers are
// expected to have validated this already (see validateConfig).
func NewTicker(c Clock, interval time.Duration, callback func(tickTime time.Time)) *Ticker {
	return &Ticker{
		clock:     c,
		interval:  interval,
		callback:  callback,
		stopCh:    make(chan struct{}),
		interrupt: make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the ticking goroutine. Start must be called at most once.
func (t *Ticker) Start() {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return
	}
	t.started = true
	t.mu.Unlock()

	go t.run()
}

func (t *Ticker) run() {
	defer close(t.done)

	start := t.clock.Now()
	k := int64(1)

	for {
		next := start.Add(time.Duration(k) * t.interval)
		if wait := next.Sub(t.clock.Now()); wait > 0 {
			select {
			case <-t.clock.After(wait):
			case <-t.interrupt:
				return
			case <-t.stopCh:
				// A non-interrupting stop still owes the caller one final
				// tick: whatever accumulated since the last callback must
				// still be rolled, even though the next scheduled tick
				// hasn't arrived yet.
				t.callback(t.clock.Now())
				return
			}
		}

		select {
		case <-t.interrupt:
			return
		default:
		}

		t.callback(next)
		k++

		select {
		case <-t.interrupt:
			return
		case <-t.stopCh:
			return
		default:
		}
	}
}

// Stop halts future ticks. When interrupt is false, a tick already
// executing (inside callback) is allowed to run to completion, and if no
// tick is currently executing the callback fires once more before the
// worker goroutine exits, so whatever accumulated since the last tick is
// never silently dropped; Stop blocks until the worker goroutine has
// exited. When interrupt is true, the worker goroutine exits immediately
// after its current select, without waiting for an in-flight wait to
// elapse or firing a final callback (the callback itself, once started,
// is never preempted: Go has no mechanism to abort a running function).
func (t *Ticker) Stop(interrupt bool) {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	if interrupt {
		select {
		case <-t.interrupt:
		default:
			close(t.interrupt)
		}
	} else {
		select {
		case <-t.stopCh:
		default:
			close(t.stopCh)
		}
	}

	<-t.done
}
