// Package cluster holds the process-wide node registry and the
// per-node connection table / knowledge store that the scheduler's
// jobs read and mutate. Grounded on the original ClusterBase.hpp and
// Cluster.hpp, adapted to single-threaded, lock-free event execution
// (spec.md §5: no locks are required because event execution is
// serialized — unlike the teacher's concurrent node/manager.go, which
// guards every field with a sync.RWMutex for real goroutines).
package cluster

import (
	"sort"

	"gossipsim/ids"
	"gossipsim/physical"
	"gossipsim/stats"
)

// Node is one simulated cluster member: its physical placement, its
// live connection table and peer index, and what it currently knows
// about the rest of the cluster via gossip.
type Node struct {
	ID       ids.NodeID
	Idx      int
	Physical physical.Node

	connGen     *ids.ConnIDGenerator
	connsByID   map[ids.ConnID]*Connection
	connsByPeer map[ids.NodeID]map[ids.ConnID]struct{}

	selfInfoVersion    uint64
	knownNodes         map[ids.NodeID]KnownInfoNode
	knownDirectLatency map[ids.NodeID]*stats.ExpAvg
}

func newNode(id ids.NodeID, idx int, phys physical.Node, connGen *ids.ConnIDGenerator) *Node {
	return &Node{
		ID:                 id,
		Idx:                idx,
		Physical:           phys,
		connGen:            connGen,
		connsByID:          map[ids.ConnID]*Connection{},
		connsByPeer:        map[ids.NodeID]map[ids.ConnID]struct{}{},
		knownNodes:         map[ids.NodeID]KnownInfoNode{},
		knownDirectLatency: map[ids.NodeID]*stats.ExpAvg{},
	}
}

// Connect creates a pending outgoing connection to peerID, allocating
// a fresh ConnID from the cluster-wide generator this node shares with
// every other node, so incoming and outgoing ids can never collide.
func (n *Node) Connect(peerID ids.NodeID) ids.ConnID {
	connID := n.connGen.Next()
	n.addConn(&Connection{ConnID: connID, PeerID: peerID, Direction: Outgoing, Status: Pending})
	return connID
}

// Accept creates the symmetric incoming pending connection using a
// ConnID that the initiating peer already allocated.
func (n *Node) Accept(connID ids.ConnID, peerID ids.NodeID) {
	n.addConn(&Connection{ConnID: connID, PeerID: peerID, Direction: Incoming, Status: Pending})
}

func (n *Node) addConn(c *Connection) {
	n.connsByID[c.ConnID] = c
	peers, ok := n.connsByPeer[c.PeerID]
	if !ok {
		peers = map[ids.ConnID]struct{}{}
		n.connsByPeer[c.PeerID] = peers
	}
	peers[c.ConnID] = struct{}{}
}

// Establish flips a pending connection to established and returns it
// so the caller can record the observed round-trip latency.
func (n *Node) Establish(connID ids.ConnID) *Connection {
	c := n.connsByID[connID]
	if c == nil {
		return nil
	}
	c.Status = Established
	return c
}

// Disconnect removes a connection and, if it was the peer's last
// connection, its now-empty peer-index entry.
func (n *Node) Disconnect(connID ids.ConnID) {
	c, ok := n.connsByID[connID]
	if !ok {
		return
	}
	peers := n.connsByPeer[c.PeerID]
	delete(peers, connID)
	if len(peers) == 0 {
		delete(n.connsByPeer, c.PeerID)
	}
	delete(n.connsByID, connID)
}

// HasConn reports whether connID is still live.
func (n *Node) HasConn(connID ids.ConnID) bool {
	_, ok := n.connsByID[connID]
	return ok
}

// Conn returns the connection for connID, or nil if it is gone.
func (n *Node) Conn(connID ids.ConnID) *Connection {
	return n.connsByID[connID]
}

// Conns returns the live connection table. Callers must not mutate
// the returned map.
func (n *Node) Conns() map[ids.ConnID]*Connection {
	return n.connsByID
}

// ConnCount returns the number of live connections.
func (n *Node) ConnCount() int {
	return len(n.connsByID)
}

// SortedConns returns the live connections ordered by ConnID, so
// callers that fan an RNG-consuming action out over every connection
// (heartbeat, gossip) draw from the PRNG in a fixed order regardless
// of Go's randomized map iteration (spec.md §8.8).
func (n *Node) SortedConns() []*Connection {
	conns := make([]*Connection, 0, len(n.connsByID))
	for _, c := range n.connsByID {
		conns = append(conns, c)
	}
	sort.Slice(conns, func(i, j int) bool { return conns[i].ConnID.Less(conns[j].ConnID) })
	return conns
}

// PeersRaw returns the peer index. Callers must not mutate it.
func (n *Node) PeersRaw() map[ids.NodeID]map[ids.ConnID]struct{} {
	return n.connsByPeer
}

// PeerCount returns the number of distinct peers this node has at
// least one connection to (established or not).
func (n *Node) PeerCount() int {
	return len(n.connsByPeer)
}

// HasPeer reports whether any connection (established or pending)
// exists to peerID.
func (n *Node) HasPeer(peerID ids.NodeID) bool {
	_, ok := n.connsByPeer[peerID]
	return ok
}

// HasEstablishedPeer reports whether at least one connection to
// peerID is established.
func (n *Node) HasEstablishedPeer(peerID ids.NodeID) bool {
	return n.hasEstablishedAmong(n.connsByPeer[peerID])
}

func (n *Node) hasEstablishedAmong(conns map[ids.ConnID]struct{}) bool {
	for connID := range conns {
		if n.connsByID[connID].IsEstablished() {
			return true
		}
	}
	return false
}

// EstablishedPeerCount returns how many distinct peers have at least
// one established connection.
func (n *Node) EstablishedPeerCount() int {
	count := 0
	for _, conns := range n.connsByPeer {
		if n.hasEstablishedAmong(conns) {
			count++
		}
	}
	return count
}

// Peers returns every peer this node has a connection to, ordered by
// NodeID so callers get a deterministic order regardless of Go's
// randomized map iteration (spec.md §8.8).
func (n *Node) Peers() []ids.NodeID {
	res := make([]ids.NodeID, 0, len(n.connsByPeer))
	for peerID := range n.connsByPeer {
		res = append(res, peerID)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Less(res[j]) })
	return res
}

// EstablishedPeers returns every peer with at least one established
// connection, ordered by NodeID (spec.md §8.8).
func (n *Node) EstablishedPeers() []ids.NodeID {
	var res []ids.NodeID
	for peerID, conns := range n.connsByPeer {
		if n.hasEstablishedAmong(conns) {
			res = append(res, peerID)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Less(res[j]) })
	return res
}

// PeerConns returns the set of ConnIDs currently connecting to peerID.
func (n *Node) PeerConns(peerID ids.NodeID) map[ids.ConnID]struct{} {
	return n.connsByPeer[peerID]
}

// EstablishedPeerConn returns the lowest established ConnID for
// peerID, or the zero ConnID if none is established. Scanning in
// ConnID order rather than map order keeps the choice deterministic
// when a peer has more than one established connection (spec.md §8.8).
func (n *Node) EstablishedPeerConn(peerID ids.NodeID) ids.ConnID {
	conns := n.connsByPeer[peerID]
	ordered := make([]ids.ConnID, 0, len(conns))
	for connID := range conns {
		ordered = append(ordered, connID)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Less(ordered[j]) })
	for _, connID := range ordered {
		if n.connsByID[connID].IsEstablished() {
			return connID
		}
	}
	return ids.ZeroConn
}
