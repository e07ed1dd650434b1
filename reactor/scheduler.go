package reactor

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// pendingSet keeps ids in the order they were first enqueued, without
// duplicates.
type pendingSet struct {
	order []NodeID
	seen  mapset.Set[NodeID]
}

func newPendingSet(capacity int) *pendingSet {
	return &pendingSet{
		order: make([]NodeID, 0, capacity),
		seen:  mapset.NewThreadUnsafeSet[NodeID](),
	}
}

func (p *pendingSet) add(id NodeID) {
	if p.seen.Add(id) {
		p.order = append(p.order, id)
	}
}

func (p *pendingSet) take() []NodeID {
	ids := p.order
	p.order = make([]NodeID, 0, cap(ids))
	p.seen.Clear()
	return ids
}

func (p *pendingSet) len() int {
	return len(p.order)
}

// notify enqueues every direct subscriber of id.
func (rt *Runtime) notify(id NodeID) {
	if rt.shutdown {
		return
	}
	n, ok := rt.graph.nodes[id]
	if !ok {
		return
	}
	for _, sub := range sortedIDs(n.subscribers) {
		rt.pending.add(sub)
	}
}

// Pending returns the ids waiting for the next flush in enqueue order.
func (rt *Runtime) Pending() []NodeID {
	ids := make([]NodeID, len(rt.pending.order))
	copy(ids, rt.pending.order)
	return ids
}

// FlushPending takes everything queued since the previous flush and re-runs
// each effect once, Sync tier first then Batched, in enqueue order within a
// tier. Ids that are not live effects are dropped. Effects queued while the
// flush runs wait for the next flush. Returns the number of effects run.
func (rt *Runtime) FlushPending() int {
	if rt.shutdown {
		return 0
	}
	ids := rt.pending.take()
	if len(ids) == 0 {
		return 0
	}

	ran := 0
	for _, tier := range [...]Timing{TimingSync, TimingBatched} {
		for _, id := range ids {
			e, ok := rt.effects[id]
			if !ok || e.timing != tier {
				continue
			}
			if e.run() {
				ran++
			}
		}
	}
	rt.logger.Debug("flushed", "pending", len(ids), "ran", ran)
	return ran
}

// Settle flushes until nothing is pending. Effects that write signals they
// or their peers read can keep the queue non-empty forever; after maxRounds
// flushes Settle gives up with ErrFlushLimit.
func (rt *Runtime) Settle(maxRounds int) (int, error) {
	total := 0
	for round := 0; rt.pending.len() > 0; round++ {
		if round >= maxRounds {
			return total, fmt.Errorf("settle after %d rounds, %d pending: %w", round, rt.pending.len(), ErrFlushLimit)
		}
		total += rt.FlushPending()
	}
	return total, nil
}
