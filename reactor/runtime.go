package reactor

import (
	"io"
	"log/slog"
)

const defaultPendingCapacity = 64

// Runtime owns the dependency graph, the observer stack and the pending
// effect queue. Every Signal, Memo and Effect belongs to exactly one Runtime.
//
// A Runtime is not safe for concurrent use. Create one per goroutine that
// needs reactivity and keep its handles on that goroutine.
type Runtime struct {
	graph     *Graph
	observers []frame
	pending   *pendingSet
	effects   map[NodeID]*effectState

	logger   *slog.Logger
	onPanic  PanicHandler
	shutdown bool
}

type Option func(*Runtime)

func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// WithPanicHandler recovers panics raised by effect closures and hands them
// to h instead of unwinding through FlushPending.
func WithPanicHandler(h PanicHandler) Option {
	return func(rt *Runtime) {
		rt.onPanic = h
	}
}

// WithPendingCapacity presizes the pending queue for runtimes expected to
// fan out to many effects per flush.
func WithPendingCapacity(n int) Option {
	return func(rt *Runtime) {
		if n > 0 {
			rt.pending = newPendingSet(n)
		}
	}
}

func New(opts ...Option) *Runtime {
	rt := &Runtime{
		graph:   newGraph(),
		pending: newPendingSet(defaultPendingCapacity),
		effects: map[NodeID]*effectState{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Shutdown tears the runtime down. Every effect is disposed, the graph is
// emptied and later graph operations from handles become no-ops.
// Values held by signals and memos stay readable.
func (rt *Runtime) Shutdown() {
	if rt.shutdown {
		return
	}
	for _, e := range rt.effects {
		e.disposed = true
		e.fn = nil
	}
	nodes := rt.graph.Len()
	clear(rt.effects)
	rt.graph.reset()
	rt.pending.take()
	rt.observers = nil
	rt.shutdown = true
	rt.logger.Debug("runtime shut down", "nodes", nodes)
}

func (rt *Runtime) IsShutdown() bool {
	return rt.shutdown
}

// WithRegistry runs fn against the runtime's graph. It panics with
// ErrShutdown once the runtime is shut down.
func WithRegistry[R any](rt *Runtime, fn func(g *Graph) R) R {
	r, ok := TryWithRegistry(rt, fn)
	if !ok {
		panic(ErrShutdown)
	}
	return r
}

// TryWithRegistry runs fn against the runtime's graph, reporting false
// instead of running fn when the runtime is nil or shut down.
func TryWithRegistry[R any](rt *Runtime, fn func(g *Graph) R) (R, bool) {
	if rt == nil || rt.shutdown {
		var zero R
		return zero, false
	}
	return fn(rt.graph), true
}

// HasNode is shorthand for checking registration through TryWithRegistry.
func (rt *Runtime) HasNode(id NodeID) bool {
	ok, _ := TryWithRegistry(rt, func(g *Graph) bool {
		return g.HasNode(id)
	})
	return ok
}

// forget drops id from the graph when its last handle goes away.
func (rt *Runtime) forget(id NodeID, kind NodeKind) {
	if rt.shutdown {
		return
	}
	rt.graph.RemoveNode(id)
	rt.logger.Debug("node removed", "id", id, "kind", kind)
}

func (rt *Runtime) invoke(id NodeID, fn func()) {
	if rt.onPanic != nil {
		defer func() {
			if r := recover(); r != nil {
				rt.logger.Error("effect panicked", "id", id, "panic", r)
				rt.onPanic(id, r)
			}
		}()
	}
	fn()
}

type Stats struct {
	Nodes   int
	Signals int
	Memos   int
	Effects int
	Edges   int
	Pending int
	// LiveEffects counts effects that have not been disposed, registered in
	// the graph or not.
	LiveEffects int
}

func (rt *Runtime) Stats() Stats {
	s := Stats{
		Pending:     rt.pending.len(),
		LiveEffects: len(rt.effects),
	}
	for _, n := range rt.graph.nodes {
		s.Nodes++
		s.Edges += n.subscribers.Cardinality()
		switch n.kind {
		case KindSignal:
			s.Signals++
		case KindMemo:
			s.Memos++
		case KindEffect:
			s.Effects++
		}
	}
	return s
}
