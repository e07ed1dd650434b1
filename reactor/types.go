package reactor

// NodeID identifies a signal, memo or effect inside a Runtime's graph.
// Zero is never issued.
type NodeID uint64

type NodeKind uint8

const (
	KindSignal NodeKind = iota + 1
	KindMemo
	KindEffect
)

func (k NodeKind) String() string {
	switch k {
	case KindSignal:
		return "signal"
	case KindMemo:
		return "memo"
	case KindEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// Timing selects the flush tier an effect runs in. Sync effects are re-run
// before Batched effects within the same flush.
type Timing uint8

const (
	TimingSync Timing = iota
	TimingBatched
)

func (t Timing) String() string {
	switch t {
	case TimingSync:
		return "sync"
	case TimingBatched:
		return "batched"
	default:
		return "unknown"
	}
}

// PanicHandler receives values recovered from a panicking effect closure.
type PanicHandler func(id NodeID, recovered any)
