package reactor

type effectState struct {
	shared
	rt       *Runtime
	id       NodeID
	timing   Timing
	fn       func()
	disposed bool
}

func (st *effectState) live() bool {
	return !st.disposed
}

// run clears the effect's old edges and invokes the closure under a fresh
// observer frame. The disposed flag is checked here, at call time, so a
// stale reference can never reach user code.
func (st *effectState) run() bool {
	if st.disposed || st.fn == nil {
		return false
	}
	fn := st.fn
	rt := st.rt
	if !rt.shutdown {
		rt.graph.ClearDependencies(st.id)
	}
	rt.pushFrame(frame{
		id:     st.id,
		kind:   KindEffect,
		timing: st.timing,
		live:   st.live,
	})
	defer rt.PopObserver()
	rt.invoke(st.id, fn)
	return true
}

func (st *effectState) dispose() {
	if st.disposed {
		return
	}
	st.disposed = true
	st.fn = nil
	rt := st.rt
	if rt.shutdown {
		return
	}
	delete(rt.effects, st.id)
	rt.graph.RemoveNode(st.id)
	rt.logger.Debug("effect disposed", "id", st.id)
}

// Effect is a side-effect subscriber. Its closure runs once on creation and
// again on every flush after a node it read changes. Each run starts from an
// empty dependency set, so branches that stop reading a signal also stop
// being notified by it.
type Effect struct {
	handle
	state *effectState
}

// NewEffect creates a Sync effect and runs fn immediately.
func NewEffect(rt *Runtime, fn func()) *Effect {
	return NewEffectWithTiming(rt, TimingSync, fn)
}

func NewEffectWithTiming(rt *Runtime, timing Timing, fn func()) *Effect {
	st := &effectState{
		rt:     rt,
		id:     nextNodeID(),
		timing: timing,
		fn:     fn,
	}
	st.retain()
	if !rt.shutdown {
		rt.effects[st.id] = st
	}
	st.run()
	return &Effect{state: st}
}

func (e *Effect) ID() NodeID {
	return e.state.id
}

func (e *Effect) Timing() Timing {
	return e.state.timing
}

func (e *Effect) IsDisposed() bool {
	return e.state.disposed
}

// Dispose stops the effect for every handle sharing it. It is safe to call
// from inside the effect's own closure: the running invocation completes but
// records no further dependencies.
func (e *Effect) Dispose() {
	e.state.dispose()
}

func (e *Effect) Clone() *Effect {
	e.state.retain()
	return &Effect{state: e.state}
}

// Release drops this handle, disposing the effect when it was the last one.
func (e *Effect) Release() {
	if !e.markReleased() {
		return
	}
	if e.state.release() {
		e.state.dispose()
	}
}
