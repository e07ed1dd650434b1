package reactor

type memoState[T any] struct {
	shared
	rt      *Runtime
	id      NodeID
	compute func() T
	value   T
	dirty   bool
}

func (st *memoState[T]) recompute() {
	rt := st.rt
	if !rt.shutdown {
		rt.graph.ClearDependencies(st.id)
	}
	rt.pushFrame(frame{
		id:   st.id,
		kind: KindMemo,
		live: st.alive,
	})
	defer rt.PopObserver()
	st.value = st.compute()
	st.dirty = false
}

// Memo caches the result of a computation over signals and other memos.
//
// A Memo is invalidated by hand: writing a signal it read does not mark it
// dirty. Call MarkDirty after the writes that should be reflected and the
// next Get recomputes.
type Memo[T any] struct {
	handle
	state *memoState[T]
}

// NewMemo stores compute without running it.
func NewMemo[T any](rt *Runtime, compute func() T) *Memo[T] {
	st := &memoState[T]{
		rt:      rt,
		id:      nextNodeID(),
		compute: compute,
		dirty:   true,
	}
	st.retain()
	return &Memo[T]{state: st}
}

func (m *Memo[T]) ID() NodeID {
	return m.state.id
}

// Get returns the cached value, recomputing first if the memo is dirty.
// Reads made by the computation are tracked against the memo, and the memo
// itself is tracked against the caller's observer.
func (m *Memo[T]) Get() T {
	st := m.state
	if st.dirty && st.compute != nil {
		st.recompute()
	}
	if st.alive() {
		st.rt.track(st.id, KindMemo)
	}
	return st.value
}

// MarkDirty forces the next Get to recompute and queues the memo's own
// subscribers so effects reading it re-run on the next flush.
func (m *Memo[T]) MarkDirty() {
	st := m.state
	st.dirty = true
	if st.alive() {
		st.rt.notify(st.id)
	}
}

func (m *Memo[T]) IsDirty() bool {
	return m.state.dirty
}

func (m *Memo[T]) Clone() *Memo[T] {
	m.state.retain()
	return &Memo[T]{state: m.state}
}

// Release drops this handle. The last release removes the memo from the
// graph and discards the computation; the cached value stays readable.
func (m *Memo[T]) Release() {
	if !m.markReleased() {
		return
	}
	st := m.state
	if st.release() {
		st.compute = nil
		st.rt.forget(st.id, KindMemo)
	}
}
