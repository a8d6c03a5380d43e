package sim

import (
	"strconv"

	"gossipsim/ids"
	"gossipsim/simlog"
)

// JobConnect is the first message of a handshake: origin allocates an
// outgoing pending connection to peer and pings it.
// Grounded on the original JobConnect.hpp.
type JobConnect struct {
	Sim    *Simulator
	Origin ids.NodeID
	Peer   ids.NodeID
}

func (j JobConnect) Fire() {
	node := j.Sim.Cluster.FindNode(j.Origin)
	if node == nil {
		return
	}
	connID := node.Connect(j.Peer)
	j.Sim.schedule(j.Sim.pingDelay(j.Origin, j.Peer), JobConnectAccept{
		Sim: j.Sim, Origin: j.Origin, Peer: j.Peer, Conn: connID, TimeStart: j.Sim.Scheduler.Now(),
	})
}

// JobConnectAccept lands on peer: it accepts the pending connection
// with the same ConnId origin already allocated, and pings back.
type JobConnectAccept struct {
	Sim       *Simulator
	Origin    ids.NodeID
	Peer      ids.NodeID
	Conn      ids.ConnID
	TimeStart uint64
}

func (j JobConnectAccept) Fire() {
	peer := j.Sim.Cluster.FindNode(j.Peer)
	if peer == nil {
		j.Sim.schedule(0, JobDisconnect{Sim: j.Sim, Node: j.Origin, Conn: j.Conn})
		return
	}
	peer.Accept(j.Conn, j.Origin)
	j.Sim.schedule(j.Sim.pingDelay(j.Peer, j.Origin), JobConnectNotifyNode{
		Sim: j.Sim, Origin: j.Origin, Peer: j.Peer, Conn: j.Conn,
		TimeStart: j.TimeStart, TimeAccept: j.Sim.Scheduler.Now(),
	})
}

// JobConnectNotifyNode lands back on origin: the handshake's first
// leg completes, establishing origin's side and recording the RTT.
type JobConnectNotifyNode struct {
	Sim        *Simulator
	Origin     ids.NodeID
	Peer       ids.NodeID
	Conn       ids.ConnID
	TimeStart  uint64
	TimeAccept uint64
}

func (j JobConnectNotifyNode) Fire() {
	node := j.Sim.Cluster.FindNode(j.Origin)
	if node == nil || !node.HasConn(j.Conn) {
		j.Sim.schedule(0, JobDisconnect{Sim: j.Sim, Node: j.Peer, Conn: j.Conn})
		return
	}
	rtt := float64(j.Sim.Scheduler.Now() - j.TimeStart)
	conn := node.Establish(j.Conn)
	conn.Latency.Update(rtt)
	node.RecordDirectLatency(j.Peer, rtt)
	j.Sim.schedule(j.Sim.pingDelay(j.Origin, j.Peer), JobConnectNotifyPeer{
		Sim: j.Sim, Origin: j.Origin, Peer: j.Peer, Conn: j.Conn, TimeAccept: j.TimeAccept,
	})
}

// JobConnectNotifyPeer lands back on peer: the handshake's second
// leg completes, establishing peer's side symmetrically.
type JobConnectNotifyPeer struct {
	Sim        *Simulator
	Origin     ids.NodeID
	Peer       ids.NodeID
	Conn       ids.ConnID
	TimeAccept uint64
}

func (j JobConnectNotifyPeer) Fire() {
	peer := j.Sim.Cluster.FindNode(j.Peer)
	if peer == nil || !peer.HasConn(j.Conn) {
		j.Sim.schedule(0, JobDisconnect{Sim: j.Sim, Node: j.Origin, Conn: j.Conn})
		return
	}
	rtt := float64(j.Sim.Scheduler.Now() - j.TimeAccept)
	conn := peer.Establish(j.Conn)
	conn.Latency.Update(rtt)
	peer.RecordDirectLatency(j.Origin, rtt)
	simlog.Tracef("[%s] connect established with peer %s (rtt=%.0f)",
		strconv.FormatUint(uint64(j.Peer), 10), strconv.FormatUint(uint64(j.Origin), 10), rtt)
}
