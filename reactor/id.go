package reactor

import "sync/atomic"

// lastNodeID is shared by every Runtime in the process so ids never collide
// when handles from different runtimes end up in the same map.
var lastNodeID atomic.Uint64

func nextNodeID() NodeID {
	return NodeID(lastNodeID.Add(1))
}
