package blockgen

import "context"

// Add appends one item to the current buffer. It fails with
// ErrWrongState if the Generator is not Active.
func (g *Generator) Add(ctx context.Context, item any) error {
	if err := g.admit(ctx); err != nil {
		return err
	}

	g.mu.Lock()
	if g.state != Active {
		s := g.state
		g.mu.Unlock()
		return newWrongStateError("add", s)
	}
	g.buffer = append(g.buffer, item)
	g.mu.Unlock()

	return nil
}

// AddWithCallback appends one item, then invokes listener.OnAddData(item,
// metadata) while still holding the state mutex. It fails with
// ErrWrongState if the Generator is not Active.
func (g *Generator) AddWithCallback(ctx context.Context, item any, metadata any) error {
	if err := g.admit(ctx); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Active {
		return newWrongStateError("add_with_callback", g.state)
	}
	g.buffer = append(g.buffer, item)
	g.listener.OnAddData(item, metadata)

	return nil
}

// AddManyWithCallback appends a whole group of items atomically: the
// group is guaranteed to land entirely in one block, since the append and
// the single OnAddData invocation both happen while the roll worker is
// excluded by the same mutex, then invokes listener.OnAddData(items,
// metadata) exactly once. It fails with ErrWrongState if the
// Generator is not Active.
func (g *Generator) AddManyWithCallback(ctx context.Context, items []any, metadata any) error {
	if err := g.admitMany(ctx, len(items)); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Active {
		return newWrongStateError("add_many_with_callback", g.state)
	}
	g.buffer = append(g.buffer, items...)
	g.listener.OnAddData(items, metadata)

	return nil
}

// admit runs the prologue shared by Add and AddWithCallback: a state
// snapshot, then one unit of rate-limiter credit consumed outside the
// state mutex. AddManyWithCallback uses admitMany instead.
func (g *Generator) admit(ctx context.Context) error {
	g.mu.Lock()
	state := g.state
	g.mu.Unlock()
	if state != Active {
		return newWrongStateError("add", state)
	}

	return g.limiter.Wait(ctx)
}

// admitMany consumes n units of rate-limiter credit, one per item, while
// building the group outside the state mutex; the current buffer is not
// touched here.
func (g *Generator) admitMany(ctx context.Context, n int) error {
	g.mu.Lock()
	state := g.state
	g.mu.Unlock()
	if state != Active {
		return newWrongStateError("add_many_with_callback", state)
	}

	for i := 0; i < n; i++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}
