// Package clusterstatus computes the health snapshot the REPL prints
// during `wait` (spec.md §6): per-node graph scans over established
// connections, reduced to cluster-wide maxima. Grounded on the
// original Cluster.hpp's getClusterStatus, trimmed to the four fields
// spec.md's output contract names (see SPEC_FULL.md §12).
package clusterstatus

import (
	"gossipsim/cluster"
	"gossipsim/graphscan"
	"gossipsim/ids"
)

// Status is the cluster-wide health snapshot: the per-node maxima of
// hops, connection count, and latency across a graph scan from every
// node using real (EMA) connection latencies, plus the summed
// inaccessible-node count across those scans.
type Status struct {
	MaxHops          int
	MaxConns         int
	MaxLatency       float64
	UnknownNodeCount int
}

// Compute runs one graph scan per live node over its established
// connections and folds the results into a Status.
func Compute(c *cluster.Cluster) Status {
	var st Status
	all := c.NodeIDs()

	jump := func(id ids.NodeID) []graphscan.Edge {
		node := c.FindNode(id)
		if node == nil {
			return nil
		}
		edges := make([]graphscan.Edge, 0, node.EstablishedPeerCount())
		for _, peerID := range node.EstablishedPeers() {
			connID := node.EstablishedPeerConn(peerID)
			edges = append(edges, graphscan.Edge{Peer: peerID, Latency: node.Conn(connID).Latency.Get()})
		}
		return edges
	}

	for _, node := range c.Nodes() {
		res := graphscan.Scan(node.ID, all, jump)
		if res.MaxHops > st.MaxHops {
			st.MaxHops = res.MaxHops
		}
		if res.MaxLatency > st.MaxLatency {
			st.MaxLatency = res.MaxLatency
		}
		if node.ConnCount() > st.MaxConns {
			st.MaxConns = node.ConnCount()
		}
		st.UnknownNodeCount += len(res.Inaccessible)
	}
	return st
}
