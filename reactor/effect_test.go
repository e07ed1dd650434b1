package reactor_test

import (
	"testing"

	"github.com/delaneyj/reactor/reactor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should stop hearing from the branch it no longer reads
func TestEffectBranchSwitch(t *testing.T) {
	rt := reactor.New()
	useA := reactor.NewSignal(rt, true)
	a := reactor.NewSignal(rt, 1)
	b := reactor.NewSignal(rt, 2)

	runs := 0
	var last int
	e := reactor.NewEffect(rt, func() {
		runs++
		if useA.Get() {
			last = a.Get()
		} else {
			last = b.Get()
		}
	})
	require.Equal(t, 1, runs)
	assert.Equal(t, []reactor.NodeID{e.ID()}, subscribers(rt, a.ID()))
	assert.False(t, rt.HasNode(b.ID()))

	b.Set(20)
	assert.Equal(t, 0, rt.FlushPending())

	useA.Set(false)
	rt.FlushPending()
	assert.Equal(t, 2, runs)
	assert.Equal(t, 20, last)
	assert.Empty(t, subscribers(rt, a.ID()))

	a.Set(100)
	assert.Equal(t, 0, rt.FlushPending())
	assert.Equal(t, 2, runs)

	b.Set(30)
	rt.FlushPending()
	assert.Equal(t, 3, runs)
	assert.Equal(t, 30, last)
}

// should run once per flush no matter how many sources changed
func TestEffectRunsOncePerFlush(t *testing.T) {
	rt := reactor.New()
	a := reactor.NewSignal(rt, 0)
	b := reactor.NewSignal(rt, 0)
	runs := 0
	reactor.NewEffect(rt, func() {
		runs++
		a.Get()
		b.Get()
	})

	a.Set(1)
	b.Set(1)
	a.Set(2)
	assert.Len(t, rt.Pending(), 1)
	assert.Equal(t, 1, rt.FlushPending())
	assert.Equal(t, 2, runs)
	assert.Equal(t, 0, rt.FlushPending())
}

// disposed effects never run again
func TestEffectDisposalFinality(t *testing.T) {
	rt := reactor.New()
	count := reactor.NewSignal(rt, 0)
	var log []int
	e := reactor.NewEffect(rt, func() {
		log = append(log, count.Get())
	})

	count.Set(1)
	e.Dispose()
	assert.True(t, e.IsDisposed())
	assert.False(t, rt.HasNode(e.ID()))
	assert.Empty(t, subscribers(rt, count.ID()))

	assert.Equal(t, 0, rt.FlushPending(), "queued before dispose, skipped after")
	count.Set(2)
	rt.FlushPending()
	assert.Equal(t, []int{0}, log)

	e.Dispose()
	assert.Equal(t, []int{0}, log)
}

func TestEffectReleaseLastHandleDisposes(t *testing.T) {
	rt := reactor.New()
	count := reactor.NewSignal(rt, 0)
	runs := 0
	e := reactor.NewEffect(rt, func() {
		runs++
		count.Get()
	})
	clone := e.Clone()
	assert.Equal(t, e.ID(), clone.ID())

	e.Release()
	assert.False(t, clone.IsDisposed())
	count.Set(1)
	rt.FlushPending()
	assert.Equal(t, 2, runs)

	clone.Release()
	assert.True(t, e.IsDisposed())
	count.Set(2)
	rt.FlushPending()
	assert.Equal(t, 2, runs)
}

// should finish the running invocation after disposing itself
func TestEffectSelfDispose(t *testing.T) {
	rt := reactor.New()
	trigger := reactor.NewSignal(rt, 0)
	after := reactor.NewSignal(rt, 0)

	var self *reactor.Effect
	runs, finished := 0, 0
	self = reactor.NewEffect(rt, func() {
		runs++
		if trigger.Get() > 0 {
			self.Dispose()
			after.Get()
		}
		finished++
	})

	trigger.Set(1)
	rt.FlushPending()
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, finished)
	assert.True(t, self.IsDisposed())
	assert.False(t, rt.HasNode(self.ID()))
	assert.Empty(t, subscribers(rt, trigger.ID()))
	assert.False(t, rt.HasNode(after.ID()), "reads after self-dispose create no edges")
	assert.Equal(t, 0, rt.Depth())

	trigger.Set(2)
	after.Set(1)
	rt.FlushPending()
	assert.Equal(t, 2, runs)
}

// sync tier runs before batched, enqueue order within a tier
func TestEffectTimingOrder(t *testing.T) {
	rt := reactor.New()
	s := reactor.NewSignal(rt, 0)
	var order []string

	batched := reactor.NewEffectWithTiming(rt, reactor.TimingBatched, func() {
		s.Get()
		order = append(order, "batched")
	})
	first := reactor.NewEffect(rt, func() {
		s.Get()
		order = append(order, "sync 1")
	})
	second := reactor.NewEffectWithTiming(rt, reactor.TimingSync, func() {
		s.Get()
		order = append(order, "sync 2")
	})
	assert.Equal(t, reactor.TimingBatched, batched.Timing())
	assert.Equal(t, reactor.TimingSync, first.Timing())
	assert.Equal(t, reactor.TimingSync, second.Timing())

	timing, ok := reactor.TryWithRegistry(rt, func(g *reactor.Graph) reactor.Timing {
		tm, _ := g.Timing(batched.ID())
		return tm
	})
	require.True(t, ok)
	assert.Equal(t, reactor.TimingBatched, timing)

	order = nil
	s.Set(1)
	assert.Equal(t, 3, rt.FlushPending())
	assert.Equal(t, []string{"sync 1", "sync 2", "batched"}, order)
}

// writes made by an effect wait for the next flush
func TestEffectWritesDuringFlush(t *testing.T) {
	rt := reactor.New()
	src := reactor.NewSignal(rt, 1)
	mirror := reactor.NewSignal(rt, 0)

	reactor.NewEffect(rt, func() {
		mirror.Set(src.Get())
	})
	var seen []int
	reactor.NewEffect(rt, func() {
		seen = append(seen, mirror.Get())
	})
	require.Equal(t, []int{1}, seen)

	src.Set(2)
	assert.Equal(t, 1, rt.FlushPending())
	assert.Equal(t, []int{1}, seen)
	assert.Equal(t, 1, rt.FlushPending())
	assert.Equal(t, []int{1, 2}, seen)
}

func TestEffectNested(t *testing.T) {
	rt := reactor.New()
	outer := reactor.NewSignal(rt, 0)
	inner := reactor.NewSignal(rt, 0)

	var innerEffect *reactor.Effect
	outerRuns, innerRuns := 0, 0
	outerEffect := reactor.NewEffect(rt, func() {
		outerRuns++
		outer.Get()
		if innerEffect == nil {
			innerEffect = reactor.NewEffect(rt, func() {
				innerRuns++
				inner.Get()
			})
		}
	})
	require.NotNil(t, innerEffect)

	assert.Equal(t, []reactor.NodeID{outerEffect.ID()}, subscribers(rt, outer.ID()))
	assert.Equal(t, []reactor.NodeID{innerEffect.ID()}, subscribers(rt, inner.ID()))

	inner.Set(1)
	rt.FlushPending()
	assert.Equal(t, 1, outerRuns)
	assert.Equal(t, 2, innerRuns)
}

func TestEffectPanicHandler(t *testing.T) {
	var got []any
	var from []reactor.NodeID
	rt := reactor.New(reactor.WithPanicHandler(func(id reactor.NodeID, recovered any) {
		from = append(from, id)
		got = append(got, recovered)
	}))
	s := reactor.NewSignal(rt, 0)
	after := 0

	e := reactor.NewEffect(rt, func() {
		if s.Get() > 0 {
			panic("bad value")
		}
	})
	second := reactor.NewEffect(rt, func() {
		s.Get()
		after++
	})

	s.Set(1)
	assert.Equal(t, 2, rt.FlushPending())
	assert.Equal(t, []any{"bad value"}, got)
	assert.Equal(t, []reactor.NodeID{e.ID()}, from)
	assert.Equal(t, 2, after, "later effects still run")
	assert.Equal(t, 0, rt.Depth())
	assert.ElementsMatch(t, []reactor.NodeID{e.ID(), second.ID()}, subscribers(rt, s.ID()))
}

func TestEffectPanicWithoutHandler(t *testing.T) {
	rt := reactor.New()
	s := reactor.NewSignal(rt, 0)
	reactor.NewEffect(rt, func() {
		if s.Get() > 0 {
			panic("bad value")
		}
	})

	s.Set(1)
	assert.PanicsWithValue(t, "bad value", func() { rt.FlushPending() })
	assert.Equal(t, 0, rt.Depth())
}
