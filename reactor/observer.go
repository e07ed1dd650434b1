package reactor

// frame is one entry of the observer stack. A zero id marks an untracked
// region: reads under it create no edges.
type frame struct {
	id     NodeID
	kind   NodeKind
	timing Timing

	// live reports whether the owner of the frame may still gain edges.
	// nil means always.
	live func() bool
}

// PushObserver makes id the target of subsequent tracked reads until the
// matching PopObserver.
func (rt *Runtime) PushObserver(id NodeID, kind NodeKind, timing Timing) {
	rt.pushFrame(frame{id: id, kind: kind, timing: timing})
}

func (rt *Runtime) PopObserver() {
	if len(rt.observers) == 0 {
		return
	}
	rt.observers[len(rt.observers)-1] = frame{}
	rt.observers = rt.observers[:len(rt.observers)-1]
}

// CurrentObserver returns the node currently tracking reads, if any.
func (rt *Runtime) CurrentObserver() (NodeID, bool) {
	if len(rt.observers) == 0 {
		return 0, false
	}
	top := rt.observers[len(rt.observers)-1]
	return top.id, top.id != 0
}

// Depth is the height of the observer stack, untracked regions included.
func (rt *Runtime) Depth() int {
	return len(rt.observers)
}

func (rt *Runtime) pushFrame(f frame) {
	rt.observers = append(rt.observers, f)
}

// track links source to the top of the observer stack, registering both
// nodes on first use.
func (rt *Runtime) track(source NodeID, kind NodeKind) {
	if rt.shutdown || len(rt.observers) == 0 {
		return
	}
	top := rt.observers[len(rt.observers)-1]
	if top.id == 0 || top.id == source {
		return
	}
	if top.live != nil && !top.live() {
		return
	}
	rt.graph.Register(source, kind)
	rt.graph.RegisterWithTiming(top.id, top.kind, top.timing)
	rt.graph.Subscribe(source, top.id)
}

// Untrack runs fn with tracking suspended. Reads inside fn never subscribe
// the enclosing observer.
func Untrack[T any](rt *Runtime, fn func() T) T {
	rt.pushFrame(frame{})
	defer rt.PopObserver()
	return fn()
}
