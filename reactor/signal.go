package reactor

type signalState[T any] struct {
	shared
	rt    *Runtime
	id    NodeID
	value T
}

// Signal is a reactive cell. Reading it under an observer subscribes the
// observer; writing it queues every subscriber for the next flush.
// Clones share the value and the NodeID.
type Signal[T any] struct {
	handle
	state *signalState[T]
}

// NewSignal allocates an id for the cell but leaves registration to the
// first tracked read.
func NewSignal[T any](rt *Runtime, initial T) *Signal[T] {
	st := &signalState[T]{
		rt:    rt,
		id:    nextNodeID(),
		value: initial,
	}
	st.retain()
	return &Signal[T]{state: st}
}

func (s *Signal[T]) ID() NodeID {
	return s.state.id
}

// Get returns the current value and subscribes the current observer.
// Repeated reads by the same observer create a single edge.
func (s *Signal[T]) Get() T {
	st := s.state
	if st.alive() {
		st.rt.track(st.id, KindSignal)
	}
	return st.value
}

// GetUntracked returns the current value without touching the graph.
func (s *Signal[T]) GetUntracked() T {
	return s.state.value
}

// Set stores v and queues the subscribers. There is no equality check:
// writing the same value still notifies.
func (s *Signal[T]) Set(v T) {
	st := s.state
	st.value = v
	if st.alive() {
		st.rt.notify(st.id)
	}
}

// Update mutates the value in place and notifies like Set.
func (s *Signal[T]) Update(fn func(value *T)) {
	st := s.state
	fn(&st.value)
	if st.alive() {
		st.rt.notify(st.id)
	}
}

// Clone returns another handle to the same cell.
func (s *Signal[T]) Clone() *Signal[T] {
	s.state.retain()
	return &Signal[T]{state: s.state}
}

// Release drops this handle. The cell leaves the graph when its last handle
// is released. Releasing the same handle twice does nothing.
func (s *Signal[T]) Release() {
	if !s.markReleased() {
		return
	}
	if s.state.release() {
		s.state.rt.forget(s.state.id, KindSignal)
	}
}
