package cluster

import (
	"gossipsim/ids"
	"gossipsim/physical"
	"gossipsim/stats"
)

// KnownInfoConnection is the latency a node's gossip-published record
// claims for one of its peer links.
type KnownInfoConnection struct {
	Latency float64
}

// KnownInfoNode is a node's published view of itself: the peers it
// currently connects to and the latency to each, tagged with a
// monotonic version. Two nodes' versions are incomparable — only the
// sequence of versions published by the same node is ordered.
type KnownInfoNode struct {
	Conns       map[ids.NodeID]KnownInfoConnection
	InfoVersion uint64
}

// FallbackLatency is what a node reports for a peer it has no EMA for
// yet, or what the topology optimizer assumes when simulating a brand
// new edge (spec.md §4.7, §9.4).
const FallbackLatency float64 = 2 * physical.CrossDCLatency

// GetKnownLatency returns the EMA of observed direct RTTs to peerID,
// or FallbackLatency if none has been recorded.
func (n *Node) GetKnownLatency(peerID ids.NodeID) float64 {
	avg, ok := n.knownDirectLatency[peerID]
	if ok && avg.IsSet() {
		return avg.Get()
	}
	return FallbackLatency
}

// RecordDirectLatency folds an observed RTT into the EMA kept for
// peerID, independent of any one connection's own EMA.
func (n *Node) RecordDirectLatency(peerID ids.NodeID, rtt float64) {
	avg, ok := n.knownDirectLatency[peerID]
	if !ok {
		avg = &stats.ExpAvg{}
		n.knownDirectLatency[peerID] = avg
	}
	avg.Update(rtt)
}

// PrepareKnowledge bumps this node's own info_version and rebuilds
// its self-entry in known_nodes: for every peer that is both in the
// peer index and already known, it lists the direct latency (EMA, or
// the fallback). It returns the whole known_nodes map, the snapshot
// that gossip jobs forward to peers.
func (n *Node) PrepareKnowledge() map[ids.NodeID]KnownInfoNode {
	n.selfInfoVersion++
	me := KnownInfoNode{
		Conns:       map[ids.NodeID]KnownInfoConnection{},
		InfoVersion: n.selfInfoVersion,
	}
	for peerID := range n.connsByPeer {
		if _, known := n.knownNodes[peerID]; !known {
			continue
		}
		me.Conns[peerID] = KnownInfoConnection{Latency: n.GetKnownLatency(peerID)}
	}
	n.knownNodes[n.ID] = me
	return n.knownNodes
}

// ApplyKnowledge merges an incoming batch of published records into
// known_nodes, replacing a local record only when none exists yet or
// the incoming info_version is strictly greater.
func (n *Node) ApplyKnowledge(incoming map[ids.NodeID]KnownInfoNode) {
	for nodeID, info := range incoming {
		local, ok := n.knownNodes[nodeID]
		if !ok || info.InfoVersion > local.InfoVersion {
			n.knownNodes[nodeID] = info
		}
	}
}

// KnownNodes returns the current knowledge map. Callers must not
// mutate it.
func (n *Node) KnownNodes() map[ids.NodeID]KnownInfoNode {
	return n.knownNodes
}
