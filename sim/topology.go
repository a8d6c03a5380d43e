package sim

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gossipsim/cluster"
	"gossipsim/graphscan"
	"gossipsim/ids"
	"gossipsim/physical"
	"gossipsim/rnd"
	"gossipsim/simlog"
)

// expectedLatency is the prosperity score's normalizing constant
// (spec.md §4.7).
const expectedLatency = 2 * (physical.CrossDCLatency + physical.CrossRackLatency + physical.MinimalLatency)

// OptimalConnCount is the target fan-out for a node that currently
// knows knownCount peers (itself included), per spec.md §4.7:
// max(INITIAL_CONNECT_COUNT, min(N-1, round(CONN_COEF*sqrt(N+INITIAL_CONNECT_COUNT)))).
func OptimalConnCount(knownCount int) int {
	rounded := int(math.Round(ConnCoef * math.Sqrt(float64(knownCount+InitialConnectCount))))
	ceiling := knownCount - 1
	if ceiling < 0 {
		ceiling = 0
	}
	if rounded > ceiling {
		rounded = ceiling
	}
	if rounded < InitialConnectCount {
		rounded = InitialConnectCount
	}
	return rounded
}

// topoView is the mutable "Topology" snapshot JobTopology searches
// over: a node's knowledge plus the hypothetical single-edge change
// (extraJump to add, extraDrop to remove) currently under evaluation.
// Grounded on the original JobTopology.hpp's Topology struct.
type topoView struct {
	node      *cluster.Node
	known     map[ids.NodeID]cluster.KnownInfoNode
	allKnown  map[ids.NodeID]struct{}
	connCount int
	extraJump ids.NodeID
	extraDrop ids.NodeID
	scan      graphscan.Result
}

func newTopoView(node *cluster.Node) *topoView {
	known := node.PrepareKnowledge()
	allKnown := make(map[ids.NodeID]struct{}, len(known))
	for id := range known {
		allKnown[id] = struct{}{}
	}
	v := &topoView{
		node:      node,
		known:     known,
		allKnown:  allKnown,
		connCount: node.ConnCount(),
		extraJump: ids.ZeroNode,
		extraDrop: ids.ZeroNode,
	}
	v.recalc()
	return v
}

func (v *topoView) knownCount() int { return len(v.known) }

func (v *topoView) optimalConnCount() int { return OptimalConnCount(v.knownCount()) }

// jump is the simulated adjacency function calcHopsAndLatency scans
// with: it reads known_nodes[x].conns, skips (self, extraDrop), and,
// when scanning self with extraJump set and not already listed,
// appends it with the pessimistic fallback latency (spec.md §4.7).
func (v *topoView) jump(x ids.NodeID) []graphscan.Edge {
	info, ok := v.known[x]
	if !ok {
		return nil
	}
	self := x == v.node.ID
	needExtraJump := self && v.extraJump.IsSet()

	edges := make([]graphscan.Edge, 0, len(info.Conns)+1)
	for peerID, connInfo := range info.Conns {
		if self && peerID == v.extraDrop {
			continue
		}
		if needExtraJump && peerID == v.extraJump {
			needExtraJump = false
		}
		edges = append(edges, graphscan.Edge{Peer: peerID, Latency: connInfo.Latency})
	}
	if needExtraJump {
		edges = append(edges, graphscan.Edge{Peer: v.extraJump, Latency: cluster.FallbackLatency})
	}
	return edges
}

func (v *topoView) recalc() {
	v.scan = graphscan.Scan(v.node.ID, v.allKnown, v.jump)
}

// prosperity is the scalar quality measure of this view's simulated
// local topology, weights exactly as spec.md §4.7 specifies.
func (v *topoView) prosperity() float64 {
	s := v.scan
	kMaxLat := expectedLatency / s.MaxLatency
	kAvgLat := expectedLatency / s.AvgLatency

	kMaxHops := 1.0
	if s.MaxHops > 2 {
		kMaxHops = 1 / math.Pow(float64(s.MaxHops-1), 2)
	}
	kAvgHops := 1.0
	if s.AvgHops > 2 {
		kAvgHops = 1 / math.Pow(s.AvgHops-1, 2)
	}

	optimal := float64(v.optimalConnCount())
	kConnCount := 1.0
	if float64(v.connCount) > optimal {
		kConnCount = optimal / float64(v.connCount)
	}

	score := 0.2*kMaxLat + 0.3*kAvgLat + kMaxHops + kAvgHops + kConnCount
	return score / float64(len(s.Inaccessible)+1)
}

func urgency(prosperity float64) float64 {
	return math.Min(1.0, math.Max(0.05, prosperity))
}

// sortedKnownIDs and sortedConnIDs give the add/drop candidate search
// a fixed scan order, so the first strictly-greater-prosperity
// candidate found (the tie-break the original's search relies on)
// doesn't depend on Go's randomized map iteration (spec.md §8.8).
func sortedKnownIDs(known map[ids.NodeID]cluster.KnownInfoNode) []ids.NodeID {
	out := make([]ids.NodeID, 0, len(known))
	for id := range known {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func sortedConnIDs(conns map[ids.NodeID]cluster.KnownInfoConnection) []ids.NodeID {
	out := make([]ids.NodeID, 0, len(conns))
	for id := range conns {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func sortedConnSet(conns map[ids.ConnID]struct{}) []ids.ConnID {
	out := make([]ids.ConnID, 0, len(conns))
	for id := range conns {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// JobTopology periodically searches for the single best edge add or
// drop that improves this node's prosperity score.
// Grounded on the original JobTopology.hpp.
type JobTopology struct {
	Sim  *Simulator
	Node ids.NodeID
}

func (j JobTopology) Fire() {
	node := j.Sim.Cluster.FindNode(j.Node)
	if node == nil {
		return
	}
	j.Sim.schedule(j.Sim.jitteredInterval(ThinkInterval), j)

	view := newTopoView(node)
	curProsperity := view.prosperity()
	if rnd.Float(j.Sim.Rng, 1) > urgency(curProsperity) {
		return
	}

	selfInfo := view.known[node.ID]
	optimal := view.optimalConnCount()
	var best = ids.ZeroNode

	if view.connCount < 2*optimal {
		view.connCount++
		for _, candidateID := range sortedKnownIDs(view.known) {
			if candidateID == node.ID {
				continue
			}
			info := view.known[candidateID]
			if _, alreadyPeer := selfInfo.Conns[candidateID]; alreadyPeer {
				continue
			}
			if len(info.Conns) > optimal {
				continue
			}
			view.extraJump = candidateID
			view.recalc()
			if p := view.prosperity(); p > curProsperity {
				best = candidateID
				curProsperity = p
			}
		}
		view.extraJump = ids.ZeroNode
		view.connCount--
	}

	if view.connCount >= optimal {
		view.connCount--
		for _, candidateID := range sortedConnIDs(selfInfo.Conns) {
			view.extraDrop = candidateID
			view.recalc()
			if p := view.prosperity(); p > curProsperity {
				best = candidateID
				curProsperity = p
			}
		}
		view.extraDrop = ids.ZeroNode
		view.connCount++
	}

	if best.IsSet() {
		nodeStr := strconv.FormatUint(uint64(node.ID), 10)
		bestStr := strconv.FormatUint(uint64(best), 10)
		if _, alreadyPeer := selfInfo.Conns[best]; !alreadyPeer {
			simlog.Tracef("[%s] topology decision: connect to %s (prosperity %.4f)", nodeStr, bestStr, curProsperity)
			j.Sim.schedule(0, JobConnect{Sim: j.Sim, Origin: node.ID, Peer: best})
		} else {
			simlog.Tracef("[%s] topology decision: drop %s (prosperity %.4f)", nodeStr, bestStr, curProsperity)
			for _, connID := range sortedConnSet(node.PeerConns(best)) {
				j.Sim.schedule(0, JobDisconnect{Sim: j.Sim, Node: node.ID, Conn: connID})
			}
		}
	}

	assertNoCoexistingOutgoingPending(node)
}

// assertNoCoexistingOutgoingPending checks spec.md §4.7 step 7: a peer
// with at least one established connection never also has an
// outgoing-pending connection coexisting by this node's own action.
// A violation is a programmer error, not a runtime condition to
// recover from.
func assertNoCoexistingOutgoingPending(node *cluster.Node) {
	for peerID, conns := range node.PeersRaw() {
		hasEstablished := false
		for connID := range conns {
			if node.Conn(connID).IsEstablished() {
				hasEstablished = true
				break
			}
		}
		if !hasEstablished {
			continue
		}
		for connID := range conns {
			c := node.Conn(connID)
			if !c.IsEstablished() && !c.IsIncoming() {
				panic(fmt.Sprintf("node %d: peer %d has an outgoing-pending connection coexisting with an established one", node.ID, peerID))
			}
		}
	}
}
