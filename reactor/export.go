package reactor

import (
	"encoding/binary"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the registered nodes and their edges. Two graphs with
// the same nodes, kinds, tiers and edges hash equal, which makes it cheap to
// assert that an operation left the graph untouched.
func (g *Graph) Fingerprint() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 32)
	for _, id := range g.IDs() {
		n := g.nodes[id]
		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint64(buf, uint64(id))
		buf = append(buf, byte(n.kind), byte(n.timing))
		for _, sub := range sortedIDs(n.subscribers) {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(sub))
		}
		d.Write(buf)
	}
	return d.Sum64()
}

type dotNode struct {
	ID          NodeID
	Kind        NodeKind
	Timing      Timing
	Subscribers []NodeID
}

func (g *Graph) dotNodes() []dotNode {
	ids := g.IDs()
	nodes := make([]dotNode, 0, len(ids))
	for _, id := range ids {
		n := g.nodes[id]
		nodes = append(nodes, dotNode{
			ID:          id,
			Kind:        n.kind,
			Timing:      n.timing,
			Subscribers: sortedIDs(n.subscribers),
		})
	}
	return nodes
}

// WriteDOT renders the graph in Graphviz DOT form, edges pointing from a
// node to the nodes that read it.
func (g *Graph) WriteDOT(w io.Writer) {
	writegraphDOT(w, g.dotNodes())
}

// DOT returns the graph in Graphviz DOT form.
func (g *Graph) DOT() string {
	return graphDOT(g.dotNodes())
}
