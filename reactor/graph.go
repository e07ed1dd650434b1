package reactor

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

type node struct {
	kind   NodeKind
	timing Timing

	// subscribers read this node and are notified when it changes.
	subscribers mapset.Set[NodeID]
	// sources are the nodes this node read during its last run.
	sources mapset.Set[NodeID]
}

// Graph is the registry of tracked nodes and the edges between them.
// It is owned by a Runtime and, like the Runtime, must only be touched from
// one goroutine. Every method is a no-op for ids that are not registered.
type Graph struct {
	nodes map[NodeID]*node
}

func newGraph() *Graph {
	return &Graph{nodes: map[NodeID]*node{}}
}

// Register adds id to the graph with the Sync timing tier.
func (g *Graph) Register(id NodeID, kind NodeKind) {
	g.RegisterWithTiming(id, kind, TimingSync)
}

// RegisterWithTiming adds id to the graph. Registering an id twice keeps the
// first entry and its edges.
func (g *Graph) RegisterWithTiming(id NodeID, kind NodeKind, timing Timing) {
	if id == 0 {
		return
	}
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{
		kind:        kind,
		timing:      timing,
		subscribers: mapset.NewThreadUnsafeSet[NodeID](),
		sources:     mapset.NewThreadUnsafeSet[NodeID](),
	}
}

func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *Graph) Kind(id NodeID) (NodeKind, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return 0, false
	}
	return n.kind, true
}

func (g *Graph) Timing(id NodeID) (Timing, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return 0, false
	}
	return n.timing, true
}

// Subscribe records that subscriber read source. Both ends must already be
// registered. Returns true when the edge is new.
func (g *Graph) Subscribe(source, subscriber NodeID) bool {
	src, ok := g.nodes[source]
	if !ok {
		return false
	}
	sub, ok := g.nodes[subscriber]
	if !ok {
		return false
	}
	if !src.subscribers.Add(subscriber) {
		return false
	}
	sub.sources.Add(source)
	return true
}

// ClearDependencies detaches everything id currently depends on. Nodes that
// depend on id keep their edges.
func (g *Graph) ClearDependencies(id NodeID) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	for _, source := range n.sources.ToSlice() {
		if src, ok := g.nodes[source]; ok {
			src.subscribers.Remove(id)
		}
	}
	n.sources.Clear()
}

// RemoveNode deletes id and every edge touching it, in both directions.
func (g *Graph) RemoveNode(id NodeID) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	g.ClearDependencies(id)
	for _, subscriber := range n.subscribers.ToSlice() {
		if sub, ok := g.nodes[subscriber]; ok {
			sub.sources.Remove(id)
		}
	}
	delete(g.nodes, id)
}

// Subscribers returns the ids that read id, in ascending order.
func (g *Graph) Subscribers(id NodeID) []NodeID {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return sortedIDs(n.subscribers)
}

// Sources returns the ids that id read, in ascending order.
func (g *Graph) Sources(id NodeID) []NodeID {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return sortedIDs(n.sources)
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

// Edges counts subscription edges across the whole graph.
func (g *Graph) Edges() int {
	total := 0
	for _, n := range g.nodes {
		total += n.subscribers.Cardinality()
	}
	return total
}

// IDs returns every registered id in ascending order.
func (g *Graph) IDs() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (g *Graph) reset() {
	clear(g.nodes)
}

func sortedIDs(set mapset.Set[NodeID]) []NodeID {
	ids := set.ToSlice()
	slices.Sort(ids)
	return ids
}
