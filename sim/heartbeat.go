package sim

import "gossipsim/ids"

// JobHeartbeat reschedules itself on a jittered interval and pings
// every current connection. Grounded on the original JobHeartbeat.hpp.
type JobHeartbeat struct {
	Sim  *Simulator
	Node ids.NodeID
}

func (j JobHeartbeat) Fire() {
	node := j.Sim.Cluster.FindNode(j.Node)
	if node == nil {
		return
	}
	j.Sim.schedule(j.Sim.jitteredInterval(HeartbeatInterval), j)

	now := j.Sim.Scheduler.Now()
	for _, conn := range node.SortedConns() {
		j.Sim.schedule(j.Sim.pingDelay(j.Node, conn.PeerID), JobHeartbeatForth{
			Sim: j.Sim, Origin: j.Node, Peer: conn.PeerID, Conn: conn.ConnID, TimeStart: now,
		})
	}
}

// JobHeartbeatForth lands on peer: if it's gone, compensate with a
// disconnect; otherwise ping back so origin can measure the RTT.
type JobHeartbeatForth struct {
	Sim       *Simulator
	Origin    ids.NodeID
	Peer      ids.NodeID
	Conn      ids.ConnID
	TimeStart uint64
}

func (j JobHeartbeatForth) Fire() {
	peer := j.Sim.Cluster.FindNode(j.Peer)
	if peer == nil {
		j.Sim.schedule(0, JobDisconnect{Sim: j.Sim, Node: j.Origin, Conn: j.Conn})
		return
	}
	j.Sim.schedule(j.Sim.pingDelay(j.Peer, j.Origin), JobHeartbeatBack{
		Sim: j.Sim, Origin: j.Origin, Peer: j.Peer, Conn: j.Conn, TimeStart: j.TimeStart,
	})
}

// JobHeartbeatBack lands back on origin: records the observed RTT
// against both the connection's own EMA and the peer's direct-latency
// EMA.
type JobHeartbeatBack struct {
	Sim       *Simulator
	Origin    ids.NodeID
	Peer      ids.NodeID
	Conn      ids.ConnID
	TimeStart uint64
}

func (j JobHeartbeatBack) Fire() {
	node := j.Sim.Cluster.FindNode(j.Origin)
	if node == nil {
		j.Sim.schedule(0, JobDisconnect{Sim: j.Sim, Node: j.Peer, Conn: j.Conn})
		return
	}
	rtt := float64(j.Sim.Scheduler.Now() - j.TimeStart)
	if conn := node.Conn(j.Conn); conn != nil {
		conn.Latency.Update(rtt)
	}
	node.RecordDirectLatency(j.Peer, rtt)
}
