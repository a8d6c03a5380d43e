package sim

import (
	"gossipsim/cluster"
	"gossipsim/ids"
)

// JobGossip reschedules itself on a jittered interval, publishes a
// fresh self-record, and forwards a snapshot of its whole knowledge
// map to every current connection. Grounded on the original
// JobGossip.hpp.
type JobGossip struct {
	Sim  *Simulator
	Node ids.NodeID
}

func (j JobGossip) Fire() {
	node := j.Sim.Cluster.FindNode(j.Node)
	if node == nil {
		return
	}
	j.Sim.schedule(j.Sim.jitteredInterval(GossipInterval), j)

	known := node.PrepareKnowledge()
	// The event struct below holds Knowledge by value (a map copy), so
	// a later prepareKnowledge rebuilding the self-entry can't mutate
	// an in-flight gossip round's payload out from under it.
	snapshot := make(map[ids.NodeID]cluster.KnownInfoNode, len(known))
	for id, info := range known {
		snapshot[id] = info
	}

	for _, conn := range node.SortedConns() {
		j.Sim.schedule(j.Sim.pingDelay(j.Node, conn.PeerID), JobGossipSend{
			Sim: j.Sim, Origin: j.Node, Peer: conn.PeerID, Knowledge: snapshot,
		})
	}
}

// JobGossipSend lands on peer and merges the carried snapshot into
// its own knowledge using the strict-greater info_version rule.
type JobGossipSend struct {
	Sim       *Simulator
	Origin    ids.NodeID
	Peer      ids.NodeID
	Knowledge map[ids.NodeID]cluster.KnownInfoNode
}

func (j JobGossipSend) Fire() {
	peer := j.Sim.Cluster.FindNode(j.Peer)
	if peer == nil {
		return
	}
	peer.ApplyKnowledge(j.Knowledge)
}
