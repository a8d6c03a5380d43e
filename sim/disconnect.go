package sim

import (
	"strconv"

	"gossipsim/ids"
	"gossipsim/simlog"
)

// JobDisconnect removes a connection locally, then pings the peer to
// propagate the compensating removal on the other side.
// Grounded on the original JobConnect.hpp's disconnect path.
type JobDisconnect struct {
	Sim  *Simulator
	Node ids.NodeID
	Conn ids.ConnID
}

func (j JobDisconnect) Fire() {
	node := j.Sim.Cluster.FindNode(j.Node)
	if node == nil {
		return
	}
	conn := node.Conn(j.Conn)
	if conn == nil {
		return
	}
	peerID := conn.PeerID
	node.Disconnect(j.Conn)
	j.Sim.schedule(j.Sim.pingDelay(j.Node, peerID), JobDisconnectPeer{
		Sim: j.Sim, Node: j.Node, Peer: peerID, Conn: j.Conn,
	})
}

// JobDisconnectPeer removes the symmetric connection on the peer that
// initiated or received a disconnect elsewhere.
type JobDisconnectPeer struct {
	Sim  *Simulator
	Node ids.NodeID
	Peer ids.NodeID
	Conn ids.ConnID
}

func (j JobDisconnectPeer) Fire() {
	peer := j.Sim.Cluster.FindNode(j.Peer)
	if peer == nil {
		return
	}
	peer.Disconnect(j.Conn)
	simlog.Tracef("[%s] disconnect propagated from peer %s",
		strconv.FormatUint(uint64(j.Peer), 10), strconv.FormatUint(uint64(j.Node), 10))
}
